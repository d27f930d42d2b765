package screening

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/spigell/lead-screener/internal/policy"

	"go.uber.org/zap"
)

type stubGenerator struct {
	respond func(prompt string) (string, error)

	mu         sync.Mutex
	lastPrompt string
	calls      int
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.lastPrompt = prompt
	s.calls++
	s.mu.Unlock()
	return s.respond(prompt)
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func staticResponse(response string) *stubGenerator {
	return &stubGenerator{respond: func(string) (string, error) {
		return response, nil
	}}
}

func TestScreenHighRelevanceProfile(t *testing.T) {
	stub := staticResponse(`{"designation_relevance": "High", "how_relevant": "CIO owning IT infrastructure budget and vendor selection.", "geography": "India"}`)
	screener := NewScreener(stub, policy.Default(), zap.NewNop(), Options{})

	profileText := "Jane Doe, Chief Information Officer, ABC Manufacturing, owns IT infrastructure budget and vendor selection"
	verdict := screener.Screen(context.Background(), profileText)

	if verdict.Tier != policy.TierHigh {
		t.Fatalf("expected High, got %s", verdict.Tier)
	}
	if verdict.Rationale == "" {
		t.Fatalf("expected a non-empty rationale")
	}
	if verdict.Fallback {
		t.Fatalf("expected a genuine verdict")
	}
	if !strings.Contains(stub.lastPrompt, profileText) {
		t.Fatalf("compiled prompt must embed the profile verbatim")
	}
	if verdict.Raw == "" {
		t.Fatalf("raw model output must be preserved on the verdict")
	}
}

func TestScreenIrrelevantProfileRedirects(t *testing.T) {
	stub := staticResponse(`{"designation_relevance": "Low", "how_relevant": "HR director with no involvement in IT infrastructure decisions.", "geography": "India", "target_persona": "CIO/Head of IT Infrastructure", "next_step": "Ask for an introduction to the IT head."}`)
	screener := NewScreener(stub, policy.Default(), zap.NewNop(), Options{})

	verdict := screener.Screen(context.Background(), "Raj Kumar, HR Director, talent acquisition and employee relations")

	if verdict.Tier != policy.TierLow {
		t.Fatalf("expected Low, got %s", verdict.Tier)
	}
	if verdict.TargetPersona != "CIO/Head of IT Infrastructure" {
		t.Fatalf("expected the ideal buyer persona, got %q", verdict.TargetPersona)
	}
	if verdict.NextStep == "" {
		t.Fatalf("expected a next step for a redirect tier")
	}
}

func TestScreenProviderFailureFallsBack(t *testing.T) {
	p := policy.Default()
	stub := &stubGenerator{respond: func(string) (string, error) {
		return "", errors.New("quota exceeded")
	}}
	screener := NewScreener(stub, p, zap.NewNop(), Options{})

	verdict := screener.Screen(context.Background(), "any profile")

	assertFallback(t, p, verdict)
	if !strings.Contains(verdict.Rationale, string(FailureProvider)) {
		t.Fatalf("rationale must cite the provider failure: %q", verdict.Rationale)
	}
	if !strings.Contains(verdict.Rationale, "quota exceeded") {
		t.Fatalf("rationale must carry the underlying cause: %q", verdict.Rationale)
	}
}

func TestScreenMalformedResponseFallsBack(t *testing.T) {
	p := policy.Default()
	stub := staticResponse("I think this is Medium relevance")
	screener := NewScreener(stub, p, zap.NewNop(), Options{})

	verdict := screener.Screen(context.Background(), "any profile")

	assertFallback(t, p, verdict)
	if !strings.Contains(verdict.Rationale, string(FailureNoJSON)) {
		t.Fatalf("rationale must cite missing structured output: %q", verdict.Rationale)
	}
}

package screening

import (
	"strings"
	"testing"

	"github.com/spigell/lead-screener/internal/policy"
)

func TestCompilePromptIsDeterministic(t *testing.T) {
	p := policy.Default()
	profile := "Jane Doe, CIO at ABC Manufacturing.\nOwns IT budget."

	first := CompilePrompt(p, profile)
	for i := 0; i < 5; i++ {
		if got := CompilePrompt(p, profile); got != first {
			t.Fatalf("compilation is not deterministic on iteration %d", i)
		}
	}
}

func TestCompilePromptEmbedsProfileVerbatim(t *testing.T) {
	p := policy.Default()
	profile := "Line one.\n  Indented {braces} and \"quotes\" stay intact.\nLine three."

	prompt := CompilePrompt(p, profile)

	if !strings.Contains(prompt, profile) {
		t.Fatalf("profile text must be embedded verbatim")
	}
}

func TestCompilePromptListsRulesInPriorityOrder(t *testing.T) {
	p := policy.Default()
	prompt := CompilePrompt(p, "some profile")

	last := -1
	for _, rule := range p.Rules {
		idx := strings.Index(prompt, rule.Criteria)
		if idx == -1 {
			t.Fatalf("rule prose for tier %s is missing", rule.Tier)
		}
		if idx <= last {
			t.Fatalf("rule for tier %s is out of priority order", rule.Tier)
		}
		last = idx
	}
}

func TestCompilePromptDeclaresOutputSchema(t *testing.T) {
	p := policy.Default()
	prompt := CompilePrompt(p, "some profile")

	for _, key := range []string{respKeyTier, respKeyRationale, respKeyGeography, respKeyTargetPersona, respKeyNextStep} {
		if !strings.Contains(prompt, key) {
			t.Fatalf("schema key %q is missing from the prompt", key)
		}
	}

	if !strings.Contains(prompt, "RETURN ONLY a single JSON object") {
		t.Fatalf("prompt must demand a bare JSON object")
	}

	if !strings.Contains(prompt, "High/Medium/Low/No") {
		t.Fatalf("prompt must enumerate the tier set, got:\n%s", prompt)
	}
}

func TestCompilePromptHandlesSparsePolicies(t *testing.T) {
	p := &policy.Policy{
		Version:    "test",
		IdealBuyer: "CIO",
		Rules: []policy.Rule{
			{Tier: policy.TierHigh, Criteria: "Runs networks."},
			{Tier: policy.TierLow, Criteria: "Everything else.", RequireRedirect: true},
		},
	}

	prompt := CompilePrompt(p, "profile")

	if !strings.Contains(prompt, "Target roles: none") {
		t.Fatalf("empty role list must render as none")
	}
	if !strings.Contains(prompt, "Geography focus: none") {
		t.Fatalf("empty geography must render as none")
	}
	if !strings.Contains(prompt, "High/Low") {
		t.Fatalf("tier enumeration must follow the policy, got:\n%s", prompt)
	}
}

package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spigell/lead-screener/internal/policy"
	"github.com/spigell/lead-screener/internal/screening"
)

func sampleResults() []screening.Result {
	return []screening.Result{
		{
			Profile: "Jane Doe, CIO",
			Verdict: &screening.Verdict{
				Tier:      policy.TierHigh,
				Rationale: "Owns IT budget, with a comma",
				Geography: "India",
			},
		},
		{
			Profile: "Raj Kumar, HR Director",
			Verdict: &screening.Verdict{
				Tier:          policy.TierLow,
				Rationale:     "No IT involvement",
				Geography:     "India",
				TargetPersona: "CIO/Head of IT Infrastructure",
				NextStep:      "Ask for an introduction",
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for name, expected := range map[string]Format{
		"csv":   FormatCSV,
		" TSV ": FormatTSV,
		"Json":  FormatJSON,
	} {
		format, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", name, err)
		}
		if format != expected {
			t.Fatalf("expected %s for %q, got %s", expected, name, format)
		}
	}

	if _, err := ParseFormat("xlsx"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, sampleResults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
	}
	if lines[0] != "Designation Relevance,How Relevant,Geography,Target Persona,Next Step" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Owns IT budget, with a comma"`) {
		t.Fatalf("rationale with a comma must be quoted: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Low,") {
		t.Fatalf("unexpected second record: %q", lines[2])
	}
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatTSV, sampleResults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.Contains(lines[0], "Designation Relevance\tHow Relevant") {
		t.Fatalf("expected tab-separated header, got %q", lines[0])
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleResults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []screening.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("export must be valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 results, got %d", len(decoded))
	}
	if decoded[1].Verdict.TargetPersona != "CIO/Head of IT Infrastructure" {
		t.Fatalf("unexpected persona after round trip: %q", decoded[1].Verdict.TargetPersona)
	}
}

func TestWriteRejectsMissingVerdict(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, FormatCSV, []screening.Result{{Profile: "x"}})
	if err == nil {
		t.Fatalf("expected error for a result without a verdict")
	}
}

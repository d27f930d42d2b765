package screening

import "github.com/spigell/lead-screener/internal/policy"

// Verdict is the structured classification result for one profile under
// one policy. It is created whole: either a validated model response or
// the canonical fallback, never a partial record.
type Verdict struct {
	Tier          policy.Tier `json:"tier"`
	Rationale     string      `json:"rationale"`
	Geography     string      `json:"geography,omitempty"`
	TargetPersona string      `json:"target_persona,omitempty"`
	NextStep      string      `json:"next_step,omitempty"`
	// Fallback marks verdicts produced without a trusted model response.
	Fallback bool `json:"fallback,omitempty"`
	// Raw carries the unparsed model output for debugging. Not serialized.
	Raw string `json:"-"`
}

// Result pairs one input profile with its verdict.
type Result struct {
	Profile string   `json:"profile"`
	Verdict *Verdict `json:"verdict"`
}

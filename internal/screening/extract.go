package screening

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/lead-screener/internal/policy"

	"github.com/mitchellh/mapstructure"
)

// FailureKind labels why a fallback verdict was produced. The label ends
// up in the rationale so operators can tell a provider failure apart from
// malformed model output.
type FailureKind string

const (
	FailureProvider FailureKind = "provider error"
	FailureNoJSON   FailureKind = "no structured output"
	FailureBadJSON  FailureKind = "parse error"
	FailureSchema   FailureKind = "schema violation"
)

const fallbackNextStep = "Route the profile to manual review"

// modelResponse mirrors the JSON object the prompt instructs the model to
// return. Decoded weakly typed since the model occasionally emits numbers
// or booleans where strings are expected.
type modelResponse struct {
	DesignationRelevance string `mapstructure:"designation_relevance"`
	HowRelevant          string `mapstructure:"how_relevant"`
	Geography            string `mapstructure:"geography"`
	TargetPersona        string `mapstructure:"target_persona"`
	NextStep             string `mapstructure:"next_step"`
}

// Extract parses raw model output into a verdict. The output is untrusted
// free text that is supposed to contain JSON but may not; any failure is
// absorbed into a fallback verdict. Extract never returns an error.
func Extract(p *policy.Policy, raw string) *Verdict {
	span, ok := extractObject(strings.TrimSpace(raw))
	if !ok {
		return Fallback(p, FailureNoJSON, errors.New("model output contained no balanced JSON object"))
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(span), &fields); err != nil {
		return Fallback(p, FailureBadJSON, err)
	}

	var resp modelResponse
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &resp,
	})
	if err != nil {
		return Fallback(p, FailureBadJSON, err)
	}
	if err := decoder.Decode(fields); err != nil {
		return Fallback(p, FailureBadJSON, err)
	}

	tier, ok := p.Normalize(resp.DesignationRelevance)
	if !ok {
		return Fallback(p, FailureSchema, fmt.Errorf("unrecognized tier value %q", resp.DesignationRelevance))
	}

	verdict := &Verdict{
		Tier:          tier,
		Rationale:     strings.TrimSpace(resp.HowRelevant),
		Geography:     strings.TrimSpace(resp.Geography),
		TargetPersona: strings.TrimSpace(resp.TargetPersona),
		NextStep:      strings.TrimSpace(resp.NextStep),
	}

	if verdict.Rationale == "" {
		return Fallback(p, FailureSchema, fmt.Errorf("missing required key %q", respKeyRationale))
	}

	if rule, ok := p.RuleFor(tier); ok && rule.RequireRedirect {
		if verdict.TargetPersona == "" {
			return Fallback(p, FailureSchema, fmt.Errorf("missing required key %q for tier %s", respKeyTargetPersona, tier))
		}
		if verdict.NextStep == "" {
			return Fallback(p, FailureSchema, fmt.Errorf("missing required key %q for tier %s", respKeyNextStep, tier))
		}
	}

	return verdict
}

// Fallback constructs the conservative verdict used whenever the model
// response cannot be trusted: lowest tier, the policy's ideal buyer as the
// recommended persona, and a manual-review next step. A single malformed
// response must never abort a batch, so every failure path ends here.
func Fallback(p *policy.Policy, kind FailureKind, cause error) *Verdict {
	rationale := fmt.Sprintf("manual review required (%s)", kind)
	if cause != nil {
		rationale = fmt.Sprintf("manual review required (%s): %v", kind, cause)
	}

	return &Verdict{
		Tier:          p.Lowest(),
		Rationale:     rationale,
		Geography:     p.Geography,
		TargetPersona: p.IdealBuyer,
		NextStep:      fallbackNextStep,
		Fallback:      true,
	}
}

// extractObject locates the first balanced {...} span in the text. A
// depth-counting scan is used instead of a greedy regex, which breaks on
// nested objects. Brace characters inside JSON strings are ignored.
func extractObject(raw string) (string, bool) {
	for start := 0; start < len(raw); start++ {
		if raw[start] != '{' {
			continue
		}
		if end, ok := scanBalanced(raw, start); ok {
			return raw[start : end+1], true
		}
	}
	return "", false
}

func scanBalanced(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}

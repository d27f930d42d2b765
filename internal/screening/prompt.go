package screening

import (
	"fmt"
	"strings"

	_ "embed"

	"github.com/spigell/lead-screener/internal/policy"
)

// Keys of the JSON object the model is instructed to return.
const (
	respKeyTier          = "designation_relevance"
	respKeyRationale     = "how_relevant"
	respKeyGeography     = "geography"
	respKeyTargetPersona = "target_persona"
	respKeyNextStep      = "next_step"
)

//go:embed prompt.md
var promptTemplate string

// CompilePrompt renders the policy and the raw profile text into a single
// model instruction. The profile text is embedded verbatim and the rule
// prose of every tier appears in priority order. Compilation is pure:
// the same policy and profile always produce the same string.
func CompilePrompt(p *policy.Policy, profileText string) string {
	tiers := p.Tiers()
	tierNames := make([]string, 0, len(tiers))
	for _, tier := range tiers {
		tierNames = append(tierNames, string(tier))
	}

	var rules strings.Builder
	for i, rule := range p.Rules {
		if i > 0 {
			rules.WriteString("\n")
		}
		fmt.Fprintf(&rules, "%d. %s: %s", i+1, rule.Tier, rule.Criteria)
	}

	prompt := promptTemplate
	prompt = strings.ReplaceAll(prompt, "{{COMPANY}}", p.Company)
	prompt = strings.ReplaceAll(prompt, "{{PRODUCT}}", p.Product)
	prompt = strings.ReplaceAll(prompt, "{{PROFILE}}", profileText)
	prompt = strings.ReplaceAll(prompt, "{{TARGET_ROLES}}", joinOrNone(p.TargetRoles))
	prompt = strings.ReplaceAll(prompt, "{{TARGET_INDUSTRIES}}", joinOrNone(p.TargetIndustries))
	prompt = strings.ReplaceAll(prompt, "{{GEOGRAPHY}}", valueOrNone(p.Geography))
	prompt = strings.ReplaceAll(prompt, "{{IDEAL_BUYER}}", p.IdealBuyer)
	prompt = strings.ReplaceAll(prompt, "{{TIER_NAMES}}", strings.Join(tierNames, "/"))
	prompt = strings.ReplaceAll(prompt, "{{TIER_RULES}}", rules.String())

	return prompt
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func valueOrNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "none"
	}
	return value
}

package policy

import (
	"fmt"
	"strings"
)

// Tier is the ordinal relevance classification assigned to a profile.
// The canonical casing is the one declared by the policy rules.
type Tier string

const (
	TierHigh   Tier = "High"
	TierMedium Tier = "Medium"
	TierLow    Tier = "Low"
	TierNo     Tier = "No"
)

// Rule binds one tier to the prose criteria the model evaluates and to the
// output fields the extractor requires for that tier. Rules are evaluated
// in declaration order; the first matching tier wins.
type Rule struct {
	Tier Tier `yaml:"tier"`
	// Criteria is rule prose sent to the model verbatim, not code.
	Criteria string `yaml:"criteria"`
	// RequireJustification demands a non-empty rationale for this tier.
	// The rationale is required for every tier regardless; the flag exists
	// so a policy file can state the requirement explicitly.
	RequireJustification bool `yaml:"require-justification"`
	// RequireRedirect demands a target persona and a next step, used by
	// tiers where the profile itself is not worth pursuing.
	RequireRedirect bool `yaml:"require-redirect"`
}

// Policy is the versioned, data-driven rule set for one sales motion.
// It is pure configuration: swapping a policy must never require touching
// the prompt compiler, the extractor, or the batch runner.
type Policy struct {
	Version string `yaml:"version"`
	// Company and Product describe the seller for the prompt context block.
	Company string `yaml:"company"`
	Product string `yaml:"product"`
	// IdealBuyer is the canonical persona recommended when a profile is
	// not relevant, and the persona used by fallback verdicts.
	IdealBuyer       string   `yaml:"ideal-buyer"`
	TargetRoles      []string `yaml:"target-roles"`
	TargetIndustries []string `yaml:"target-industries"`
	Geography        string   `yaml:"geography"`
	// Rules in descending sales priority.
	Rules []Rule `yaml:"rules"`
}

// Default returns the canonical built-in policy. It carries the four-tier
// rule set of the 2024-09 revision; older three-tier revisions can still
// be loaded from a policy file.
func Default() *Policy {
	return &Policy{
		Version:    "2024-09",
		Company:    "Syntel + Altai Super Wi-Fi",
		Product:    "enterprise Wi-Fi and network infrastructure solutions",
		IdealBuyer: "CIO/Head of IT Infrastructure",
		TargetRoles: []string{
			"CIO", "CTO", "IT Infrastructure Manager", "Network Architect", "Operations Head",
		},
		TargetIndustries: []string{
			"Manufacturing", "Warehouses", "BFSI", "Education", "Healthcare", "Hospitality",
		},
		Geography: "India",
		Rules: []Rule{
			{
				Tier:                 TierHigh,
				Criteria:             "Direct IT/network infrastructure roles (CIO, CTO, IT Infrastructure Manager, Network Architect, Wireless Engineer) with ownership of infrastructure budgets or vendor selection.",
				RequireJustification: true,
			},
			{
				Tier:                 TierMedium,
				Criteria:             "Indirect influence on infrastructure decisions (Operations Head, Facilities Manager, COO, Head of Plant).",
				RequireJustification: true,
			},
			{
				Tier:                 TierLow,
				Criteria:             "Limited involvement in IT decisions.",
				RequireJustification: true,
				RequireRedirect:      true,
			},
			{
				Tier:                 TierNo,
				Criteria:             "No relevance to IT infrastructure.",
				RequireJustification: true,
				RequireRedirect:      true,
			},
		},
	}
}

// Validate checks the structural invariants every policy must hold.
func (p *Policy) Validate() error {
	if p == nil {
		return fmt.Errorf("policy is required")
	}
	if strings.TrimSpace(p.Version) == "" {
		return fmt.Errorf("policy version is required")
	}
	if strings.TrimSpace(p.IdealBuyer) == "" {
		return fmt.Errorf("policy ideal-buyer is required")
	}
	if len(p.Rules) == 0 {
		return fmt.Errorf("policy must declare at least one rule")
	}

	seen := make(map[string]struct{}, len(p.Rules))
	for i, rule := range p.Rules {
		name := strings.TrimSpace(string(rule.Tier))
		if name == "" {
			return fmt.Errorf("rule %d: tier name is required", i)
		}
		if strings.TrimSpace(rule.Criteria) == "" {
			return fmt.Errorf("rule %d (%s): criteria prose is required", i, rule.Tier)
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("rule %d: duplicate tier %q", i, rule.Tier)
		}
		seen[key] = struct{}{}
	}

	return nil
}

// Tiers returns the tier names in descending priority order.
func (p *Policy) Tiers() []Tier {
	tiers := make([]Tier, 0, len(p.Rules))
	for _, rule := range p.Rules {
		tiers = append(tiers, rule.Tier)
	}
	return tiers
}

// Lowest returns the lowest-priority tier. It is the default assignment
// for profiles nothing matched and the tier of every fallback verdict.
func (p *Policy) Lowest() Tier {
	if len(p.Rules) == 0 {
		return TierLow
	}
	return p.Rules[len(p.Rules)-1].Tier
}

// Normalize resolves a raw tier string from model output to its canonical
// form. Matching is case-insensitive; the second return reports whether
// the value names a defined tier at all.
func (p *Policy) Normalize(raw string) (Tier, bool) {
	raw = strings.TrimSpace(raw)
	for _, rule := range p.Rules {
		if strings.EqualFold(raw, string(rule.Tier)) {
			return rule.Tier, true
		}
	}
	return "", false
}

// RuleFor returns the rule declared for the given tier.
func (p *Policy) RuleFor(tier Tier) (Rule, bool) {
	for _, rule := range p.Rules {
		if rule.Tier == tier {
			return rule, true
		}
	}
	return Rule{}, false
}

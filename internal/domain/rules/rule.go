// Package rules contains the core domain logic for dietary rule derivation
// and conflict resolution. Rules are derived fresh per request from detected
// conditions, free-text instructions and allergies, then resolved into a
// consistent set before plan assembly.
package rules

// Priority expresses how strongly a rule binds. REQUIRED strictly dominates
// RECOMMENDED, which dominates OPTIONAL.
type Priority string

const (
	PriorityRequired    Priority = "required"
	PriorityRecommended Priority = "recommended"
	PriorityOptional    Priority = "optional"
)

// rank returns the dominance order of a priority; lower wins.
func (p Priority) rank() int {
	switch p {
	case PriorityRequired:
		return 0
	case PriorityRecommended:
		return 1
	case PriorityOptional:
		return 2
	default:
		return 3
	}
}

// Dominates reports whether p is strictly stronger than other.
func (p Priority) Dominates(other Priority) bool {
	return p.rank() < other.rank()
}

// Action expresses what a rule does to the food categories it targets.
// EXCLUDE strictly dominates LIMIT, which dominates INCLUDE.
type Action string

const (
	ActionExclude Action = "exclude"
	ActionLimit   Action = "limit"
	ActionInclude Action = "include"
)

// rank returns the dominance order of an action; lower wins.
func (a Action) rank() int {
	switch a {
	case ActionExclude:
		return 0
	case ActionLimit:
		return 1
	case ActionInclude:
		return 2
	default:
		return 3
	}
}

// Source tags where a rule came from. It is carried for traceability only
// and never participates in conflict resolution.
type Source string

const (
	SourceCondition   Source = "condition"
	SourceInstruction Source = "instruction"
	SourceAllergy     Source = "allergy"
	SourceEnrichment  Source = "enrichment"
)

// DietRule is a single dietary directive. It is a value object: derived,
// resolved and attached to a plan, never mutated in place.
type DietRule struct {
	RuleText       string
	Priority       Priority
	Action         Action
	FoodCategories []FoodCategory
	Source         Source
	IsAllergy      bool
}

// Validate checks the structural invariants of a rule.
func (r DietRule) Validate() error {
	if r.RuleText == "" {
		return ErrEmptyRuleText
	}
	if len(r.FoodCategories) == 0 {
		return ErrNoCategories
	}
	if r.Priority.rank() > PriorityOptional.rank() {
		return ErrUnknownPriority
	}
	if r.Action.rank() > ActionInclude.rank() {
		return ErrUnknownAction
	}
	return nil
}

// IsGlobal reports whether the rule targets every category via the "all"
// sentinel rather than specific categories.
func (r DietRule) IsGlobal() bool {
	for _, c := range r.FoodCategories {
		if c == CategoryAll {
			return true
		}
	}
	return false
}

// Touches reports whether the rule applies to the given category.
func (r DietRule) Touches(category FoodCategory) bool {
	for _, c := range r.FoodCategories {
		if c == category || c == CategoryAll {
			return true
		}
	}
	return false
}

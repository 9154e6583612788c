package rules

import "strings"

// Keyword groups for the priority heuristic. Checked top to bottom; the
// first matching step decides, so the order below is part of the contract.
var (
	allergyTerms     = []string{"allergy", "allergic", "anaphylaxis", "intoleran"}
	requiredTerms    = []string{"avoid", "must not", "critical", "essential", "must"}
	recommendedTerms = []string{"recommend", "should"}
	optionalTerms    = []string{"prefer", "optional", "consider"}
)

// AssignPriority derives a rule's priority from its text, action and allergy
// flag. The heuristic is a ladder evaluated top to bottom:
//
//  1. allergy flag or allergy terms           -> REQUIRED
//  2. EXCLUDE action or hard directive terms  -> REQUIRED
//  3. INCLUDE action or advisory terms        -> RECOMMENDED
//  4. soft preference terms                   -> OPTIONAL
//  5. anything else (typically bare LIMIT)    -> RECOMMENDED
func AssignPriority(ruleText string, action Action, isAllergy bool) Priority {
	text := strings.ToLower(ruleText)

	if isAllergy || containsAny(text, allergyTerms) {
		return PriorityRequired
	}
	if action == ActionExclude || containsAny(text, requiredTerms) {
		return PriorityRequired
	}
	if action == ActionInclude || containsAny(text, recommendedTerms) {
		return PriorityRecommended
	}
	if containsAny(text, optionalTerms) {
		return PriorityOptional
	}
	return PriorityRecommended
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

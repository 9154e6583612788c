package rules

// Resolve reduces a set of candidate rules, possibly contradictory, to a
// minimal consistent set: one rule per contended food category plus all
// non-contended rules, deduplicated by rule text.
//
// Within a category, candidates are ranked by priority (REQUIRED first)
// then action (EXCLUDE first) and the top-ranked rule wins. A rule tagged
// "all" is retained only when no specific-category rule appears in the
// input; specific rules always win over global ones. Equal-rank ties keep
// the first-seen rule, so identical inputs always resolve to identical
// outputs in the same order.
func Resolve(candidates []DietRule) []DietRule {
	if len(candidates) == 0 {
		return []DietRule{}
	}

	hasSpecific := false
	for _, rule := range candidates {
		if !rule.IsGlobal() {
			hasSpecific = true
			break
		}
	}

	// Global rules cover every category, so a single specific rule is
	// already a conflict they lose.
	contenders := make([]DietRule, 0, len(candidates))
	for _, rule := range candidates {
		if hasSpecific && rule.IsGlobal() {
			continue
		}
		contenders = append(contenders, rule)
	}

	var categoryOrder []FoodCategory
	winners := make(map[FoodCategory]DietRule)
	for _, rule := range contenders {
		for _, category := range rule.FoodCategories {
			current, contested := winners[category]
			if !contested {
				categoryOrder = append(categoryOrder, category)
				winners[category] = rule
				continue
			}
			if outranks(rule, current) {
				winners[category] = rule
			}
		}
	}

	resolved := make([]DietRule, 0, len(categoryOrder))
	seenText := make(map[string]struct{}, len(categoryOrder))
	for _, category := range categoryOrder {
		winner := winners[category]
		if _, dup := seenText[winner.RuleText]; dup {
			continue
		}
		seenText[winner.RuleText] = struct{}{}
		resolved = append(resolved, winner)
	}
	return resolved
}

// outranks reports whether a strictly beats b: stronger priority first,
// stronger action as the tie-break. Equal rank is not a win, which keeps
// resolution stable on input order.
func outranks(a, b DietRule) bool {
	if a.Priority.rank() != b.Priority.rank() {
		return a.Priority.rank() < b.Priority.rank()
	}
	return a.Action.rank() < b.Action.rank()
}

// ExcludedCategories returns the categories placed under an EXCLUDE rule by
// a resolved set, in first-seen order. Assemblers use this as the only hard
// filter; LIMIT and INCLUDE rules affect ranking only.
func ExcludedCategories(resolved []DietRule) []FoodCategory {
	var out []FoodCategory
	seen := make(map[FoodCategory]struct{})
	for _, rule := range resolved {
		if rule.Action != ActionExclude {
			continue
		}
		for _, category := range rule.FoodCategories {
			if _, ok := seen[category]; ok {
				continue
			}
			seen[category] = struct{}{}
			out = append(out, category)
		}
	}
	return out
}

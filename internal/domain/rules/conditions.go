package rules

import "strings"

// conditionRuleSet maps a condition keyword to its rule templates. The
// tables are static, read-only reference data; matching is case-insensitive
// substring matching, never fuzzy.
type conditionRuleSet struct {
	keyword   string
	templates []DietRule
}

// conditionTable is ordered so that derivation is deterministic when a
// condition string matches more than one keyword.
var conditionTable = []conditionRuleSet{
	{
		keyword: "diabetes",
		templates: []DietRule{
			{RuleText: "Avoid sugary foods and sweets", Priority: PriorityRequired, Action: ActionExclude, FoodCategories: []FoodCategory{CategorySweets}, Source: SourceCondition},
			{RuleText: "Limit refined carbohydrates", Priority: PriorityRecommended, Action: ActionLimit, FoodCategories: []FoodCategory{CategoryCarbs}, Source: SourceCondition},
			{RuleText: "Include high-fiber foods", Priority: PriorityRecommended, Action: ActionInclude, FoodCategories: []FoodCategory{CategoryFiber}, Source: SourceCondition},
		},
	},
	{
		keyword: "prediabetes",
		templates: []DietRule{
			{RuleText: "Limit sugary foods", Priority: PriorityRecommended, Action: ActionLimit, FoodCategories: []FoodCategory{CategorySweets}, Source: SourceCondition},
			{RuleText: "Include high-fiber foods", Priority: PriorityRecommended, Action: ActionInclude, FoodCategories: []FoodCategory{CategoryFiber}, Source: SourceCondition},
		},
	},
	{
		keyword: "hypertension",
		templates: []DietRule{
			{RuleText: "Avoid high-sodium foods", Priority: PriorityRequired, Action: ActionExclude, FoodCategories: []FoodCategory{CategorySodium}, Source: SourceCondition},
			{RuleText: "Limit caffeine intake", Priority: PriorityRecommended, Action: ActionLimit, FoodCategories: []FoodCategory{CategoryCaffeine}, Source: SourceCondition},
			{RuleText: "Limit saturated fats", Priority: PriorityRecommended, Action: ActionLimit, FoodCategories: []FoodCategory{CategoryFats}, Source: SourceCondition},
		},
	},
	{
		keyword: "obesity",
		templates: []DietRule{
			{RuleText: "Limit fatty and fried foods", Priority: PriorityRecommended, Action: ActionLimit, FoodCategories: []FoodCategory{CategoryFats}, Source: SourceCondition},
			{RuleText: "Limit sugary foods", Priority: PriorityRecommended, Action: ActionLimit, FoodCategories: []FoodCategory{CategorySweets}, Source: SourceCondition},
			{RuleText: "Avoid processed foods", Priority: PriorityRequired, Action: ActionExclude, FoodCategories: []FoodCategory{CategoryProcessed}, Source: SourceCondition},
			{RuleText: "Include high-fiber foods", Priority: PriorityRecommended, Action: ActionInclude, FoodCategories: []FoodCategory{CategoryFiber}, Source: SourceCondition},
		},
	},
	{
		keyword: "overweight",
		templates: []DietRule{
			{RuleText: "Limit fatty and fried foods", Priority: PriorityRecommended, Action: ActionLimit, FoodCategories: []FoodCategory{CategoryFats}, Source: SourceCondition},
			{RuleText: "Limit sugary foods", Priority: PriorityRecommended, Action: ActionLimit, FoodCategories: []FoodCategory{CategorySweets}, Source: SourceCondition},
		},
	},
	{
		keyword: "cholesterol",
		templates: []DietRule{
			{RuleText: "Limit saturated fats", Priority: PriorityRecommended, Action: ActionLimit, FoodCategories: []FoodCategory{CategoryFats}, Source: SourceCondition},
			{RuleText: "Avoid processed foods", Priority: PriorityRequired, Action: ActionExclude, FoodCategories: []FoodCategory{CategoryProcessed}, Source: SourceCondition},
			{RuleText: "Include high-fiber foods", Priority: PriorityRecommended, Action: ActionInclude, FoodCategories: []FoodCategory{CategoryFiber}, Source: SourceCondition},
		},
	},
	{
		keyword: "kidney",
		templates: []DietRule{
			{RuleText: "Avoid high-sodium foods", Priority: PriorityRequired, Action: ActionExclude, FoodCategories: []FoodCategory{CategorySodium}, Source: SourceCondition},
			{RuleText: "Limit protein portions", Priority: PriorityRecommended, Action: ActionLimit, FoodCategories: []FoodCategory{CategoryProtein}, Source: SourceCondition},
		},
	},
	{
		keyword: "fatty liver",
		templates: []DietRule{
			{RuleText: "Avoid alcohol", Priority: PriorityRequired, Action: ActionExclude, FoodCategories: []FoodCategory{CategoryAlcohol}, Source: SourceCondition},
			{RuleText: "Limit fatty and fried foods", Priority: PriorityRecommended, Action: ActionLimit, FoodCategories: []FoodCategory{CategoryFats}, Source: SourceCondition},
		},
	},
	{
		keyword: "anemia",
		templates: []DietRule{
			{RuleText: "Include iron-rich protein sources", Priority: PriorityRecommended, Action: ActionInclude, FoodCategories: []FoodCategory{CategoryProtein}, Source: SourceCondition},
		},
	},
	{
		keyword: "gout",
		templates: []DietRule{
			{RuleText: "Avoid alcohol", Priority: PriorityRequired, Action: ActionExclude, FoodCategories: []FoodCategory{CategoryAlcohol}, Source: SourceCondition},
			{RuleText: "Limit red meat and organ protein", Priority: PriorityRecommended, Action: ActionLimit, FoodCategories: []FoodCategory{CategoryProtein}, Source: SourceCondition},
			{RuleText: "Limit seafood", Priority: PriorityRecommended, Action: ActionLimit, FoodCategories: []FoodCategory{CategorySeafood}, Source: SourceCondition},
		},
	},
	{
		keyword: "celiac",
		templates: []DietRule{
			{RuleText: "Avoid gluten", Priority: PriorityRequired, Action: ActionExclude, FoodCategories: []FoodCategory{CategoryGluten}, Source: SourceCondition},
		},
	},
}

// MapCondition maps a detected health condition to its candidate diet rules.
// Matching is case-insensitive substring matching against the static table:
// "type 2 diabetes" matches the "diabetes" entry. An unknown condition
// yields an empty slice, never an error; callers treat no mapping as no
// additional constraint.
func MapCondition(condition string) []DietRule {
	normalized := strings.ToLower(strings.TrimSpace(condition))
	if normalized == "" {
		return nil
	}

	var derived []DietRule
	for _, entry := range conditionTable {
		if !strings.Contains(normalized, entry.keyword) {
			continue
		}
		for _, template := range entry.templates {
			rule := template
			rule.FoodCategories = append([]FoodCategory(nil), template.FoodCategories...)
			derived = append(derived, rule)
		}
	}
	return derived
}

// MapAllergy derives a REQUIRED exclusion from a declared allergy. The
// allergen text is matched against the taxonomy; if it names no known
// category the rule falls back to a category tag of its own so assemblers
// can still match it against item allergen lists.
func MapAllergy(allergen string) (DietRule, bool) {
	normalized := strings.ToLower(strings.TrimSpace(allergen))
	if normalized == "" {
		return DietRule{}, false
	}

	categories := CategoriesFor(normalized)
	if len(categories) == 0 {
		categories = []FoodCategory{FoodCategory(normalized)}
	}

	text := "Avoid " + normalized + " - allergy"
	return DietRule{
		RuleText:       text,
		Priority:       AssignPriority(text, ActionExclude, true),
		Action:         ActionExclude,
		FoodCategories: categories,
		Source:         SourceAllergy,
		IsAllergy:      true,
	}, true
}

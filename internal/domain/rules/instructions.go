package rules

import "strings"

// instructionMapping binds trigger phrases to an action and target
// categories. The rule text of a derived rule is the original instruction
// so the priority heuristic can see directive words like "avoid" or
// "prefer" exactly as the doctor wrote them.
type instructionMapping struct {
	phrases    []string
	action     Action
	categories []FoodCategory
}

// instructionTable is ordered; the first entry with a matching phrase wins.
var instructionTable = []instructionMapping{
	{phrases: []string{"avoid sugar", "no sugar", "cut sugar", "stop sugar", "quit sugar"}, action: ActionExclude, categories: []FoodCategory{CategorySweets}},
	{phrases: []string{"less sugar", "reduce sugar", "limit sugar", "low sugar"}, action: ActionLimit, categories: []FoodCategory{CategorySweets}},
	{phrases: []string{"avoid salt", "no salt", "avoid sodium"}, action: ActionExclude, categories: []FoodCategory{CategorySodium}},
	{phrases: []string{"low salt", "less salt", "reduce salt", "low sodium", "less sodium"}, action: ActionLimit, categories: []FoodCategory{CategorySodium}},
	{phrases: []string{"avoid dairy", "no dairy", "no milk", "avoid milk"}, action: ActionExclude, categories: []FoodCategory{CategoryDairy}},
	{phrases: []string{"avoid fried", "no fried", "avoid oily", "no oily", "avoid fatty"}, action: ActionExclude, categories: []FoodCategory{CategoryFats}},
	{phrases: []string{"low fat", "less oil", "reduce fat", "limit fat"}, action: ActionLimit, categories: []FoodCategory{CategoryFats}},
	{phrases: []string{"avoid alcohol", "no alcohol", "stop drinking"}, action: ActionExclude, categories: []FoodCategory{CategoryAlcohol}},
	{phrases: []string{"avoid caffeine", "no caffeine", "no coffee"}, action: ActionExclude, categories: []FoodCategory{CategoryCaffeine}},
	{phrases: []string{"less coffee", "limit caffeine", "reduce caffeine"}, action: ActionLimit, categories: []FoodCategory{CategoryCaffeine}},
	{phrases: []string{"avoid processed", "no junk", "avoid junk", "no fast food"}, action: ActionExclude, categories: []FoodCategory{CategoryProcessed}},
	{phrases: []string{"more fiber", "more fibre", "high fiber", "high fibre", "more vegetables", "eat vegetables"}, action: ActionInclude, categories: []FoodCategory{CategoryFiber}},
	{phrases: []string{"more protein", "high protein", "increase protein"}, action: ActionInclude, categories: []FoodCategory{CategoryProtein}},
	{phrases: []string{"prefer whole grains", "consider whole grains"}, action: ActionInclude, categories: []FoodCategory{CategoryCarbs, CategoryFiber}},
	{phrases: []string{"less rice", "reduce rice", "less carbs", "reduce carbs", "limit carbs"}, action: ActionLimit, categories: []FoodCategory{CategoryCarbs}},
	{phrases: []string{"avoid gluten", "no gluten", "gluten free"}, action: ActionExclude, categories: []FoodCategory{CategoryGluten}},
	{phrases: []string{"eat light", "small portions"}, action: ActionLimit, categories: []FoodCategory{CategoryAll}},
}

// MapInstruction maps a free-text instruction snippet to a diet rule.
// Matching is case-insensitive substring matching over the static phrase
// table. An unrecognized instruction returns false, never an error, so
// unmapped text never blocks plan generation.
func MapInstruction(text string) (DietRule, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return DietRule{}, false
	}

	for _, entry := range instructionTable {
		for _, phrase := range entry.phrases {
			if !strings.Contains(normalized, phrase) {
				continue
			}
			ruleText := strings.TrimSpace(text)
			return DietRule{
				RuleText:       ruleText,
				Priority:       AssignPriority(ruleText, entry.action, false),
				Action:         entry.action,
				FoodCategories: append([]FoodCategory(nil), entry.categories...),
				Source:         SourceInstruction,
			}, true
		}
	}
	return DietRule{}, false
}

package rules

import "strings"

// FoodCategory groups related food items for rule application.
type FoodCategory string

const (
	// CategoryAll is the sentinel that makes a rule apply to every category.
	// Specific-category rules always win over it during resolution.
	CategoryAll FoodCategory = "all"

	CategorySweets    FoodCategory = "sweets"
	CategoryFats      FoodCategory = "fats"
	CategorySodium    FoodCategory = "sodium"
	CategoryFiber     FoodCategory = "fiber"
	CategoryDairy     FoodCategory = "dairy"
	CategoryCarbs     FoodCategory = "carbs"
	CategoryProtein   FoodCategory = "protein"
	CategoryCaffeine  FoodCategory = "caffeine"
	CategoryAlcohol   FoodCategory = "alcohol"
	CategoryProcessed FoodCategory = "processed"
	CategorySeafood   FoodCategory = "seafood"
	CategoryNuts      FoodCategory = "nuts"
	CategoryGluten    FoodCategory = "gluten"
)

// categoryOrder fixes the iteration order of the taxonomy so keyword lookups
// are deterministic regardless of map iteration.
var categoryOrder = []FoodCategory{
	CategorySweets,
	CategoryFats,
	CategorySodium,
	CategoryFiber,
	CategoryDairy,
	CategoryCarbs,
	CategoryProtein,
	CategoryCaffeine,
	CategoryAlcohol,
	CategoryProcessed,
	CategorySeafood,
	CategoryNuts,
	CategoryGluten,
}

// categoryKeywords maps each category to the keywords that signal it in
// free text. Static, read-only reference data.
var categoryKeywords = map[FoodCategory][]string{
	CategorySweets:    {"sugar", "sweet", "dessert", "candy", "chocolate", "soda", "honey"},
	CategoryFats:      {"fat", "fried", "oil", "oily", "butter", "ghee", "greasy"},
	CategorySodium:    {"salt", "sodium", "pickle", "brine"},
	CategoryFiber:     {"fiber", "fibre", "vegetable", "whole grain", "oats", "leafy"},
	CategoryDairy:     {"dairy", "milk", "cheese", "yogurt", "lactose", "cream"},
	CategoryCarbs:     {"carb", "rice", "bread", "pasta", "potato", "starch"},
	CategoryProtein:   {"protein", "meat", "chicken", "egg", "lentil", "iron"},
	CategoryCaffeine:  {"caffeine", "coffee", "tea", "cola"},
	CategoryAlcohol:   {"alcohol", "beer", "wine", "liquor"},
	CategoryProcessed: {"processed", "junk", "packaged", "instant", "fast food"},
	CategorySeafood:   {"seafood", "fish", "shellfish", "prawn", "shrimp"},
	CategoryNuts:      {"nut", "peanut", "almond", "cashew"},
	CategoryGluten:    {"gluten", "wheat"},
}

// CategoriesFor returns the food categories whose keywords appear in the
// given text, in taxonomy order. Unknown text yields an empty slice.
func CategoriesFor(text string) []FoodCategory {
	normalized := strings.ToLower(text)
	var matched []FoodCategory
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(normalized, keyword) {
				matched = append(matched, category)
				break
			}
		}
	}
	return matched
}

// KnownCategories returns every specific category in taxonomy order.
func KnownCategories() []FoodCategory {
	out := make([]FoodCategory, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

package planner

import (
	"time"

	"github.com/nutriplan/v2/internal/domain/mealplan"
	"github.com/nutriplan/v2/internal/ports/inbound"
)

// planToDTO converts the aggregate to its wire shape. Sentinel slots become
// unavailable selections carrying the sentinel note so renderers can show
// the restriction explanation instead of treating the slot as an error.
func planToDTO(plan *mealplan.MealPlan) *inbound.MealPlanDTO {
	days := plan.Days()
	dayDTOs := make([]inbound.MealDayDTO, len(days))
	for i, day := range days {
		meals := make(map[string]inbound.MealSelectionDTO, len(day.Meals))
		for slot, selection := range day.Meals {
			meals[string(slot)] = selectionToDTO(selection)
		}
		dayDTOs[i] = inbound.MealDayDTO{Day: day.Day, Meals: meals}
	}

	resolved := plan.ResolvedRules()
	ruleDTOs := make([]inbound.DietRuleDTO, len(resolved))
	for i, rule := range resolved {
		categories := make([]string, len(rule.FoodCategories))
		for j, category := range rule.FoodCategories {
			categories[j] = string(category)
		}
		ruleDTOs[i] = inbound.DietRuleDTO{
			RuleText:       rule.RuleText,
			Priority:       string(rule.Priority),
			Action:         string(rule.Action),
			FoodCategories: categories,
			Source:         string(rule.Source),
		}
	}

	return &inbound.MealPlanDTO{
		ID:                 plan.ID(),
		DailyCalorieTarget: plan.CalorieTarget(),
		Days:               dayDTOs,
		Rules:              ruleDTOs,
		CreatedAt:          plan.CreatedAt().Format(time.RFC3339),
	}
}

func selectionToDTO(selection mealplan.MealSelection) inbound.MealSelectionDTO {
	if selection.IsSentinel() {
		return inbound.MealSelectionDTO{Available: false, Note: selection.Note}
	}

	food := selection.Food
	categories := make([]string, len(food.Categories))
	for i, category := range food.Categories {
		categories[i] = string(category)
	}
	return inbound.MealSelectionDTO{
		Available: true,
		Food: &inbound.FoodItemDTO{
			Name:       food.Name,
			Calories:   food.Calories,
			ProteinG:   food.ProteinG,
			CarbsG:     food.CarbsG,
			FatG:       food.FatG,
			FiberG:     food.FiberG,
			Categories: categories,
		},
	}
}

package gorm

import (
	"encoding/json"
	"fmt"

	"github.com/nutriplan/v2/internal/domain/mealplan"
	"github.com/nutriplan/v2/internal/domain/rules"
)

// Persistence records for the JSON columns. These are private to the
// adapter; the domain never sees them.

type dayRecord struct {
	Day   int                   `json:"day"`
	Meals map[string]mealRecord `json:"meals"`
}

type mealRecord struct {
	Sentinel bool        `json:"sentinel"`
	Note     string      `json:"note,omitempty"`
	Food     *foodRecord `json:"food,omitempty"`
}

type foodRecord struct {
	Name       string   `json:"name"`
	Calories   float64  `json:"calories"`
	ProteinG   float64  `json:"protein_g"`
	CarbsG     float64  `json:"carbs_g"`
	FatG       float64  `json:"fat_g"`
	FiberG     float64  `json:"fiber_g"`
	Categories []string `json:"categories"`
	Allergens  []string `json:"allergens,omitempty"`
}

type ruleRecord struct {
	RuleText   string   `json:"rule_text"`
	Priority   string   `json:"priority"`
	Action     string   `json:"action"`
	Categories []string `json:"categories"`
	Source     string   `json:"source"`
	IsAllergy  bool     `json:"is_allergy,omitempty"`
}

// PlanToModel converts a domain plan to its GORM model.
func PlanToModel(plan *mealplan.MealPlan) (*MealPlanModel, error) {
	days := plan.Days()
	dayRecords := make([]dayRecord, len(days))
	for i, day := range days {
		meals := make(map[string]mealRecord, len(day.Meals))
		for slot, selection := range day.Meals {
			meals[string(slot)] = selectionToRecord(selection)
		}
		dayRecords[i] = dayRecord{Day: day.Day, Meals: meals}
	}

	resolved := plan.ResolvedRules()
	ruleRecords := make([]ruleRecord, len(resolved))
	for i, rule := range resolved {
		ruleRecords[i] = ruleToRecord(rule)
	}

	daysJSON, err := json.Marshal(dayRecords)
	if err != nil {
		return nil, fmt.Errorf("marshal plan days: %w", err)
	}
	rulesJSON, err := json.Marshal(ruleRecords)
	if err != nil {
		return nil, fmt.Errorf("marshal plan rules: %w", err)
	}

	return &MealPlanModel{
		ID:            plan.ID(),
		CalorieTarget: plan.CalorieTarget(),
		Days:          daysJSON,
		Rules:         rulesJSON,
		CreatedAt:     plan.CreatedAt(),
	}, nil
}

// ModelToPlan rehydrates a domain plan from its GORM model.
func ModelToPlan(model *MealPlanModel) (*mealplan.MealPlan, error) {
	var dayRecords []dayRecord
	if err := json.Unmarshal(model.Days, &dayRecords); err != nil {
		return nil, fmt.Errorf("unmarshal plan days: %w", err)
	}
	var ruleRecords []ruleRecord
	if err := json.Unmarshal(model.Rules, &ruleRecords); err != nil {
		return nil, fmt.Errorf("unmarshal plan rules: %w", err)
	}

	days := make([]mealplan.MealPlanDay, len(dayRecords))
	for i, record := range dayRecords {
		meals := make(map[mealplan.MealSlot]mealplan.MealSelection, len(record.Meals))
		for slot, meal := range record.Meals {
			meals[mealplan.MealSlot(slot)] = recordToSelection(meal)
		}
		days[i] = mealplan.MealPlanDay{Day: record.Day, Meals: meals}
	}

	resolved := make([]rules.DietRule, len(ruleRecords))
	for i, record := range ruleRecords {
		resolved[i] = recordToRule(record)
	}

	return mealplan.RehydratePlan(model.ID, days, resolved, model.CalorieTarget, model.CreatedAt), nil
}

// FoodModelToItem converts a catalog row to a domain food item.
func FoodModelToItem(model *FoodItemModel) mealplan.FoodItem {
	categories := make([]rules.FoodCategory, len(model.Categories))
	for i, category := range model.Categories {
		categories[i] = rules.FoodCategory(category)
	}
	return mealplan.FoodItem{
		Name:       model.Name,
		Calories:   model.Calories,
		ProteinG:   model.ProteinG,
		CarbsG:     model.CarbsG,
		FatG:       model.FatG,
		FiberG:     model.FiberG,
		Categories: categories,
		Allergens:  append([]string(nil), model.Allergens...),
	}
}

func selectionToRecord(selection mealplan.MealSelection) mealRecord {
	if selection.IsSentinel() {
		return mealRecord{Sentinel: true, Note: selection.Note}
	}
	food := selection.Food
	categories := make([]string, len(food.Categories))
	for i, category := range food.Categories {
		categories[i] = string(category)
	}
	return mealRecord{
		Food: &foodRecord{
			Name:       food.Name,
			Calories:   food.Calories,
			ProteinG:   food.ProteinG,
			CarbsG:     food.CarbsG,
			FatG:       food.FatG,
			FiberG:     food.FiberG,
			Categories: categories,
			Allergens:  append([]string(nil), food.Allergens...),
		},
	}
}

func recordToSelection(record mealRecord) mealplan.MealSelection {
	if record.Sentinel || record.Food == nil {
		note := record.Note
		if note == "" {
			note = mealplan.SentinelNote
		}
		return mealplan.MealSelection{Note: note}
	}
	categories := make([]rules.FoodCategory, len(record.Food.Categories))
	for i, category := range record.Food.Categories {
		categories[i] = rules.FoodCategory(category)
	}
	return mealplan.MealSelection{
		Food: &mealplan.FoodItem{
			Name:       record.Food.Name,
			Calories:   record.Food.Calories,
			ProteinG:   record.Food.ProteinG,
			CarbsG:     record.Food.CarbsG,
			FatG:       record.Food.FatG,
			FiberG:     record.Food.FiberG,
			Categories: categories,
			Allergens:  append([]string(nil), record.Food.Allergens...),
		},
	}
}

func ruleToRecord(rule rules.DietRule) ruleRecord {
	categories := make([]string, len(rule.FoodCategories))
	for i, category := range rule.FoodCategories {
		categories[i] = string(category)
	}
	return ruleRecord{
		RuleText:   rule.RuleText,
		Priority:   string(rule.Priority),
		Action:     string(rule.Action),
		Categories: categories,
		Source:     string(rule.Source),
		IsAllergy:  rule.IsAllergy,
	}
}

func recordToRule(record ruleRecord) rules.DietRule {
	categories := make([]rules.FoodCategory, len(record.Categories))
	for i, category := range record.Categories {
		categories[i] = rules.FoodCategory(category)
	}
	return rules.DietRule{
		RuleText:       record.RuleText,
		Priority:       rules.Priority(record.Priority),
		Action:         rules.Action(record.Action),
		FoodCategories: categories,
		Source:         rules.Source(record.Source),
		IsAllergy:      record.IsAllergy,
	}
}

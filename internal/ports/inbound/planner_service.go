// Package inbound defines the interfaces for inbound ports (primary/driving
// adapters). These are the use cases the application exposes to HTTP
// handlers and other driving adapters.
package inbound

import (
	"context"

	"github.com/google/uuid"
)

// PlannerService defines the diet-plan use cases.
type PlannerService interface {
	// Commands
	GeneratePlan(ctx context.Context, cmd GeneratePlanCommand) (*MealPlanDTO, error)
	SwapMeal(ctx context.Context, cmd SwapMealCommand) (*MealPlanDTO, error)
	DeletePlan(ctx context.Context, planID uuid.UUID) error

	// Queries
	GetPlanByID(ctx context.Context, planID uuid.UUID) (*MealPlanDTO, error)
	ListRecentPlans(ctx context.Context, limit int) ([]MealPlanDTO, error)
}

// GeneratePlanCommand contains everything needed to derive rules and
// assemble a plan. Conditions and instructions arrive as plain strings from
// the upstream extraction pipeline; metrics are optional and screened
// against the canonical threshold table.
type GeneratePlanCommand struct {
	Conditions         []string       `json:"conditions"`
	Instructions       []string       `json:"instructions"`
	Allergies          []string       `json:"allergies"`
	Metrics            *MetricsInput  `json:"metrics,omitempty"`
	DailyCalorieTarget float64        `json:"daily_calorie_target" validate:"required,gt=0"`
	Days               int            `json:"days" validate:"required,gte=1,lte=31"`
	Seed               *int64         `json:"seed,omitempty"`
}

// MetricsInput carries optional extracted report metrics.
type MetricsInput struct {
	FastingGlucoseMgDl float64 `json:"fasting_glucose_mg_dl" validate:"gte=0"`
	BMI                float64 `json:"bmi" validate:"gte=0"`
	SystolicMmHg       float64 `json:"systolic_mm_hg" validate:"gte=0"`
	DiastolicMmHg      float64 `json:"diastolic_mm_hg" validate:"gte=0"`
	LDLMgDl            float64 `json:"ldl_mg_dl" validate:"gte=0"`
}

// SwapMealCommand replaces a single day/slot selection of an existing plan.
type SwapMealCommand struct {
	PlanID uuid.UUID `json:"plan_id" validate:"required"`
	Day    int       `json:"day" validate:"gte=0"`
	Slot   string    `json:"slot" validate:"required"`
}

// Response DTOs

// MealPlanDTO is the wire shape of a generated plan.
type MealPlanDTO struct {
	ID                 uuid.UUID     `json:"id"`
	DailyCalorieTarget float64       `json:"daily_calorie_target"`
	Days               []MealDayDTO  `json:"days"`
	Rules              []DietRuleDTO `json:"rules"`
	CreatedAt          string        `json:"created_at"`
}

// MealDayDTO is one plan day.
type MealDayDTO struct {
	Day   int                         `json:"day"`
	Meals map[string]MealSelectionDTO `json:"meals"`
}

// MealSelectionDTO is a slot outcome. Available=false with a note renders
// the "no suitable meal" sentinel; that is a valid plan state, not an error.
type MealSelectionDTO struct {
	Available bool         `json:"available"`
	Note      string       `json:"note,omitempty"`
	Food      *FoodItemDTO `json:"food,omitempty"`
}

// FoodItemDTO is the wire shape of a selected food item.
type FoodItemDTO struct {
	Name       string   `json:"name"`
	Calories   float64  `json:"calories"`
	ProteinG   float64  `json:"protein_g"`
	CarbsG     float64  `json:"carbs_g"`
	FatG       float64  `json:"fat_g"`
	FiberG     float64  `json:"fiber_g"`
	Categories []string `json:"categories"`
}

// DietRuleDTO is the wire shape of a resolved rule.
type DietRuleDTO struct {
	RuleText       string   `json:"rule_text"`
	Priority       string   `json:"priority"`
	Action         string   `json:"action"`
	FoodCategories []string `json:"food_categories"`
	Source         string   `json:"source"`
}

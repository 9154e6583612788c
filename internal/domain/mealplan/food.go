// Package mealplan contains the meal-plan aggregate and the assembler that
// turns resolved diet rules, a calorie target and per-slot food pools into
// a structured multi-day plan.
package mealplan

import (
	"errors"
	"strings"

	"github.com/nutriplan/v2/internal/domain/rules"
)

// FoodItem is a candidate meal for a slot.
type FoodItem struct {
	Name       string
	Calories   float64
	ProteinG   float64
	CarbsG     float64
	FatG       float64
	FiberG     float64
	Categories []rules.FoodCategory
	Allergens  []string
}

// Validate validates the food item.
func (f FoodItem) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("food item name is required")
	}
	if f.Calories < 0 {
		return errors.New("food item calories cannot be negative")
	}
	return nil
}

// InCategory reports whether the item carries the given category tag.
func (f FoodItem) InCategory(category rules.FoodCategory) bool {
	for _, c := range f.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// MealSlot identifies one of the fixed daily meal slots.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
)

// slotShares is the fixed proportional split of the daily calorie target.
var slotShares = map[MealSlot]float64{
	SlotBreakfast: 0.25,
	SlotLunch:     0.35,
	SlotDinner:    0.30,
	SlotSnack:     0.10,
}

// Slots returns the meal slots in daily order.
func Slots() []MealSlot {
	return []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}
}

// CalorieShare returns the slot's fraction of the daily calorie target.
func (s MealSlot) CalorieShare() float64 {
	return slotShares[s]
}

// Valid reports whether s is one of the fixed slots.
func (s MealSlot) Valid() bool {
	_, ok := slotShares[s]
	return ok
}

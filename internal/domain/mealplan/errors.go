package mealplan

import "errors"

// Domain errors for plan generation. Malformed caller input fails fast at
// the entry point; everything else is representable as values (sentinel
// selections), never raised.

var (
	ErrInvalidCalorieTarget = errors.New("daily calorie target must be greater than zero")
	ErrInvalidDays          = errors.New("plan must cover at least one day")
	ErrEmptyMealPools       = errors.New("no meal pools supplied for any slot")
	ErrUnknownSlot          = errors.New("unknown meal slot")
	ErrDayOutOfRange        = errors.New("day index out of plan range")
	ErrPlanNotFound         = errors.New("meal plan not found")
)

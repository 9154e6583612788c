package mealplan

import (
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v2/internal/domain/rules"
	"github.com/nutriplan/v2/internal/domain/shared"
)

// SentinelNote is the designated non-error placeholder for a slot whose
// candidate pool is empty after EXCLUDE filtering. A plan containing
// sentinel slots is valid and renderable; it is not a failure.
const SentinelNote = "no suitable meal (restrictions)"

// MealSelection is the outcome for one slot on one day: either a food item
// or the explicit sentinel.
type MealSelection struct {
	Food *FoodItem
	Note string
}

// IsSentinel reports whether the selection is the "no suitable meal" value.
func (s MealSelection) IsSentinel() bool {
	return s.Food == nil
}

// sentinelSelection is the single sentinel value used across the package.
func sentinelSelection() MealSelection {
	return MealSelection{Note: SentinelNote}
}

// MealPlanDay holds the selections of one plan day.
type MealPlanDay struct {
	Day   int
	Meals map[MealSlot]MealSelection
}

// MealPlan is the aggregate produced once per generation request. It is
// immutable afterwards except for explicit single-meal swaps.
type MealPlan struct {
	shared.AggregateRoot

	id            uuid.UUID
	days          []MealPlanDay
	resolvedRules []rules.DietRule
	calorieTarget float64
	createdAt     time.Time
}

// newMealPlan is called by the assembler only; plans are never constructed
// from raw parts elsewhere.
func newMealPlan(days []MealPlanDay, resolved []rules.DietRule, calorieTarget float64) *MealPlan {
	plan := &MealPlan{
		id:            uuid.New(),
		days:          days,
		resolvedRules: resolved,
		calorieTarget: calorieTarget,
		createdAt:     time.Now(),
	}
	plan.AddEvent(PlanGeneratedEvent{
		PlanID:      plan.id,
		Days:        len(days),
		RuleCount:   len(resolved),
		GeneratedAt: plan.createdAt,
	})
	return plan
}

// RehydratePlan rebuilds a plan loaded from persistence. No events are
// raised; the generation already happened.
func RehydratePlan(id uuid.UUID, days []MealPlanDay, resolved []rules.DietRule, calorieTarget float64, createdAt time.Time) *MealPlan {
	return &MealPlan{
		id:            id,
		days:          days,
		resolvedRules: resolved,
		calorieTarget: calorieTarget,
		createdAt:     createdAt,
	}
}

// ID returns the plan identifier.
func (p *MealPlan) ID() uuid.UUID {
	return p.id
}

// Days returns the plan days in order.
func (p *MealPlan) Days() []MealPlanDay {
	return p.days
}

// ResolvedRules returns the conflict-resolved rule set the plan was built
// under.
func (p *MealPlan) ResolvedRules() []rules.DietRule {
	return p.resolvedRules
}

// CalorieTarget returns the daily calorie target.
func (p *MealPlan) CalorieTarget() float64 {
	return p.calorieTarget
}

// CreatedAt returns when the plan was generated.
func (p *MealPlan) CreatedAt() time.Time {
	return p.createdAt
}

// Selection returns the current selection for a day and slot.
func (p *MealPlan) Selection(day int, slot MealSlot) (MealSelection, error) {
	if day < 0 || day >= len(p.days) {
		return MealSelection{}, ErrDayOutOfRange
	}
	if !slot.Valid() {
		return MealSelection{}, ErrUnknownSlot
	}
	return p.days[day].Meals[slot], nil
}

// ApplySwap replaces the selection of a single day and slot, leaving the
// rest of the plan untouched.
func (p *MealPlan) ApplySwap(day int, slot MealSlot, selection MealSelection) error {
	if day < 0 || day >= len(p.days) {
		return ErrDayOutOfRange
	}
	if !slot.Valid() {
		return ErrUnknownSlot
	}

	previous := p.days[day].Meals[slot]
	p.days[day].Meals[slot] = selection

	p.AddEvent(MealSwappedEvent{
		PlanID:    p.id,
		Day:       day,
		Slot:      string(slot),
		OldMeal:   selectionName(previous),
		NewMeal:   selectionName(selection),
		SwappedAt: time.Now(),
	})
	return nil
}

// UsedNames returns the names of the items selected on the given day,
// excluding sentinel slots. Swap callers pass these as the excluded set so
// a swap never duplicates another meal of the same day.
func (p *MealPlan) UsedNames(day int) (map[string]struct{}, error) {
	if day < 0 || day >= len(p.days) {
		return nil, ErrDayOutOfRange
	}
	used := make(map[string]struct{})
	for _, selection := range p.days[day].Meals {
		if selection.Food != nil {
			used[selection.Food.Name] = struct{}{}
		}
	}
	return used, nil
}

func selectionName(s MealSelection) string {
	if s.Food == nil {
		return SentinelNote
	}
	return s.Food.Name
}

// Domain events

// PlanGeneratedEvent is raised when a plan is assembled.
type PlanGeneratedEvent struct {
	PlanID      uuid.UUID
	Days        int
	RuleCount   int
	GeneratedAt time.Time
}

func (e PlanGeneratedEvent) EventName() string     { return "mealplan.generated" }
func (e PlanGeneratedEvent) OccurredAt() time.Time { return e.GeneratedAt }

// MealSwappedEvent is raised when a single slot selection is replaced.
type MealSwappedEvent struct {
	PlanID    uuid.UUID
	Day       int
	Slot      string
	OldMeal   string
	NewMeal   string
	SwappedAt time.Time
}

func (e MealSwappedEvent) EventName() string     { return "mealplan.meal_swapped" }
func (e MealSwappedEvent) OccurredAt() time.Time { return e.SwappedAt }

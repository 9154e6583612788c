// Package outbound defines the interfaces for outbound ports
// (secondary/driven adapters): persistence, catalog access, caching and
// optional rule enrichment.
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v2/internal/domain/mealplan"
	"github.com/nutriplan/v2/internal/domain/rules"
)

// PlanRepository persists generated meal plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *mealplan.MealPlan) error
	Update(ctx context.Context, plan *mealplan.MealPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error)
	FindRecent(ctx context.Context, limit int) ([]*mealplan.MealPlan, error)
}

// FoodCatalog supplies the per-slot candidate pools. Loading and parsing of
// the underlying JSON/CSV or database rows is the adapter's concern; the
// engine only sees already-built pools. Implementations must return pools
// in a stable order so plan generation stays deterministic.
type FoodCatalog interface {
	MealPools(ctx context.Context) (map[mealplan.MealSlot][]mealplan.FoodItem, error)
	SlotPool(ctx context.Context, slot mealplan.MealSlot) ([]mealplan.FoodItem, error)
}

// CacheRepository defines the caching operations the planner uses for plan
// DTO lookups.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RuleEnricher is an optional, best-effort collaborator (e.g. an ML
// classifier over doctor notes) that may contribute extra candidate rules.
// Its output feeds the same resolver as the keyword mappers; failures are
// logged and ignored, never fatal.
type RuleEnricher interface {
	EnrichRules(ctx context.Context, conditions, instructions []string) ([]rules.DietRule, error)
}

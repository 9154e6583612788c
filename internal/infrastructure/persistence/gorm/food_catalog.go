package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/nutriplan/v2/internal/domain/mealplan"
	"github.com/nutriplan/v2/internal/ports/outbound"
)

// FoodCatalog implements the food catalog interface on top of the
// food_items table. Rows are returned in seed order (position ASC) so
// pool ordering stays stable across runs.
type FoodCatalog struct {
	db *gorm.DB
}

// NewFoodCatalog creates a new database-backed food catalog
func NewFoodCatalog(db *gorm.DB) outbound.FoodCatalog {
	return &FoodCatalog{db: db}
}

// MealPools returns the candidate pool for every meal slot
func (c *FoodCatalog) MealPools(ctx context.Context) (map[mealplan.MealSlot][]mealplan.FoodItem, error) {
	pools := make(map[mealplan.MealSlot][]mealplan.FoodItem, len(mealplan.Slots()))
	for _, slot := range mealplan.Slots() {
		pool, err := c.SlotPool(ctx, slot)
		if err != nil {
			return nil, err
		}
		pools[slot] = pool
	}
	return pools, nil
}

// SlotPool returns the candidate pool for a single meal slot
func (c *FoodCatalog) SlotPool(ctx context.Context, slot mealplan.MealSlot) ([]mealplan.FoodItem, error) {
	var models []FoodItemModel

	result := c.db.WithContext(ctx).
		Where("slot = ?", string(slot)).
		Order("position ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]mealplan.FoodItem, len(models))
	for i := range models {
		items[i] = FoodModelToItem(&models[i])
	}
	return items, nil
}

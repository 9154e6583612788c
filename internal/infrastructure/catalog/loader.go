// Package catalog provides a file-backed food catalog. The JSON file maps
// meal slots to candidate food items; file order is preserved so plan
// generation stays deterministic.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nutriplan/v2/internal/domain/mealplan"
	"github.com/nutriplan/v2/internal/domain/rules"
	"github.com/nutriplan/v2/internal/ports/outbound"
)

type fileItem struct {
	Name       string   `json:"name"`
	Calories   float64  `json:"calories"`
	ProteinG   float64  `json:"protein_g"`
	CarbsG     float64  `json:"carbs_g"`
	FatG       float64  `json:"fat_g"`
	FiberG     float64  `json:"fiber_g"`
	Categories []string `json:"categories"`
	Allergens  []string `json:"allergens"`
}

// FileCatalog serves meal pools loaded from a JSON file.
type FileCatalog struct {
	pools map[mealplan.MealSlot][]mealplan.FoodItem
}

// LoadFileCatalog reads and validates a JSON catalog file.
func LoadFileCatalog(path string) (*FileCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog builds a catalog from raw JSON.
func ParseCatalog(data []byte) (*FileCatalog, error) {
	var raw map[string][]fileItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	pools := make(map[mealplan.MealSlot][]mealplan.FoodItem, len(mealplan.Slots()))
	for _, slot := range mealplan.Slots() {
		entries := raw[string(slot)]
		items := make([]mealplan.FoodItem, 0, len(entries))
		for _, entry := range entries {
			item := toFoodItem(entry)
			if err := item.Validate(); err != nil {
				return nil, fmt.Errorf("invalid catalog item %q in slot %s: %w", entry.Name, slot, err)
			}
			items = append(items, item)
		}
		pools[slot] = items
	}

	return &FileCatalog{pools: pools}, nil
}

var _ outbound.FoodCatalog = (*FileCatalog)(nil)

// MealPools returns a copy of every slot pool.
func (c *FileCatalog) MealPools(ctx context.Context) (map[mealplan.MealSlot][]mealplan.FoodItem, error) {
	pools := make(map[mealplan.MealSlot][]mealplan.FoodItem, len(c.pools))
	for slot := range c.pools {
		pools[slot] = append([]mealplan.FoodItem(nil), c.pools[slot]...)
	}
	return pools, nil
}

// SlotPool returns a copy of the pool for one slot.
func (c *FileCatalog) SlotPool(ctx context.Context, slot mealplan.MealSlot) ([]mealplan.FoodItem, error) {
	return append([]mealplan.FoodItem(nil), c.pools[slot]...), nil
}

func toFoodItem(entry fileItem) mealplan.FoodItem {
	categories := make([]rules.FoodCategory, len(entry.Categories))
	for i, category := range entry.Categories {
		categories[i] = rules.FoodCategory(category)
	}
	return mealplan.FoodItem{
		Name:       entry.Name,
		Calories:   entry.Calories,
		ProteinG:   entry.ProteinG,
		CarbsG:     entry.CarbsG,
		FatG:       entry.FatG,
		FiberG:     entry.FiberG,
		Categories: categories,
		Allergens:  append([]string(nil), entry.Allergens...),
	}
}

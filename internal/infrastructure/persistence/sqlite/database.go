// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormModels "github.com/nutriplan/v2/internal/infrastructure/persistence/gorm"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&gormModels.MealPlanModel{},
		&gormModels.FoodItemModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedCatalog populates the food catalog with a baseline set of items.
// Position encodes the order within each slot; the planner relies on it
// for deterministic pool ordering.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	db.Model(&gormModels.FoodItemModel{}).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	type seedItem struct {
		name       string
		calories   float64
		protein    float64
		carbs      float64
		fat        float64
		fiber      float64
		categories []string
		allergens  []string
	}

	seeds := map[string][]seedItem{
		"breakfast": {
			{"Oatmeal with Berries", 320, 10, 54, 7, 8, []string{"carbs", "fiber"}, []string{"gluten"}},
			{"Greek Yogurt Parfait", 280, 18, 34, 8, 3, []string{"dairy", "sweets"}, []string{"dairy"}},
			{"Scrambled Eggs and Toast", 380, 20, 32, 18, 3, []string{"protein", "carbs"}, []string{"eggs", "gluten"}},
			{"Avocado Toast", 340, 9, 36, 18, 9, []string{"carbs", "fats", "fiber"}, []string{"gluten"}},
			{"Banana Smoothie", 260, 8, 48, 5, 4, []string{"sweets", "dairy"}, []string{"dairy"}},
			{"Vegetable Omelette", 300, 19, 8, 22, 2, []string{"protein", "fats"}, []string{"eggs"}},
			{"Whole Grain Pancakes", 420, 11, 68, 11, 6, []string{"carbs", "sweets"}, []string{"gluten", "eggs", "dairy"}},
			{"Chia Pudding", 240, 8, 26, 12, 11, []string{"fiber", "seafood"}, nil},
		},
		"lunch": {
			{"Grilled Chicken Salad", 450, 38, 18, 25, 6, []string{"protein"}, nil},
			{"Lentil Soup with Bread", 420, 20, 62, 9, 14, []string{"fiber", "carbs", "protein"}, []string{"gluten"}},
			{"Turkey Sandwich", 480, 28, 48, 18, 5, []string{"protein", "carbs", "processed"}, []string{"gluten"}},
			{"Salmon Rice Bowl", 560, 34, 58, 20, 4, []string{"seafood", "protein", "carbs"}, []string{"fish"}},
			{"Quinoa Veggie Bowl", 490, 16, 70, 16, 10, []string{"carbs", "fiber"}, nil},
			{"Beef Burrito", 650, 32, 64, 28, 8, []string{"protein", "carbs", "fats"}, []string{"gluten", "dairy"}},
			{"Caprese Pasta", 580, 20, 76, 22, 5, []string{"carbs", "dairy"}, []string{"gluten", "dairy"}},
			{"Tofu Stir Fry", 430, 24, 40, 19, 7, []string{"protein", "sodium"}, []string{"soy"}},
		},
		"dinner": {
			{"Baked Salmon with Vegetables", 540, 40, 24, 30, 7, []string{"seafood", "protein"}, []string{"fish"}},
			{"Grilled Chicken with Quinoa", 520, 42, 44, 18, 6, []string{"protein", "carbs"}, nil},
			{"Beef Steak with Potatoes", 680, 45, 42, 34, 5, []string{"protein", "fats", "carbs"}, nil},
			{"Vegetable Curry with Rice", 510, 12, 78, 16, 9, []string{"carbs", "fiber"}, nil},
			{"Shrimp Pasta", 590, 30, 68, 20, 4, []string{"seafood", "carbs"}, []string{"shellfish", "gluten"}},
			{"Stuffed Bell Peppers", 440, 24, 46, 18, 8, []string{"protein", "fiber"}, []string{"dairy"}},
			{"Fried Chicken Plate", 760, 38, 52, 44, 3, []string{"fats", "processed"}, []string{"gluten"}},
			{"Mushroom Risotto", 530, 14, 72, 20, 4, []string{"carbs", "dairy"}, []string{"dairy"}},
		},
		"snack": {
			{"Mixed Nuts", 200, 6, 8, 17, 3, []string{"nuts", "fats"}, []string{"nuts"}},
			{"Apple with Peanut Butter", 220, 6, 28, 10, 5, []string{"nuts", "fiber"}, []string{"peanuts"}},
			{"Hummus and Carrots", 180, 6, 22, 8, 6, []string{"fiber"}, nil},
			{"Cheese and Crackers", 240, 9, 20, 14, 1, []string{"dairy", "processed"}, []string{"dairy", "gluten"}},
			{"Dark Chocolate Square", 150, 2, 14, 10, 2, []string{"sweets", "caffeine"}, []string{"dairy"}},
			{"Protein Bar", 210, 20, 22, 7, 3, []string{"protein", "processed"}, []string{"nuts", "soy"}},
			{"Fruit Salad", 120, 1, 30, 0, 4, []string{"sweets", "fiber"}, nil},
			{"Rice Cakes", 100, 2, 22, 1, 1, []string{"carbs"}, nil},
		},
	}

	for slot, items := range seeds {
		for position, item := range items {
			model := gormModels.FoodItemModel{
				ID:         uuid.New(),
				Name:       item.name,
				Slot:       slot,
				Position:   position,
				Calories:   item.calories,
				ProteinG:   item.protein,
				CarbsG:     item.carbs,
				FatG:       item.fat,
				FiberG:     item.fiber,
				Categories: item.categories,
				Allergens:  item.allergens,
			}
			if err := db.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to seed food item %q: %w", item.name, err)
			}
		}
	}

	return nil
}

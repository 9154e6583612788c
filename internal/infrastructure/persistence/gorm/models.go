// Package gorm provides GORM model definitions and repository
// implementations for meal plans and the food catalog.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MealPlanModel represents the GORM model for generated meal plans. Days
// and rules are stored as JSON documents; plans are read back whole, never
// queried by their interior structure.
type MealPlanModel struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	CalorieTarget float64   `gorm:"not null"`
	Days          JSONField `gorm:"type:json"`
	Rules         JSONField `gorm:"type:json"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

// TableName overrides the table name
func (MealPlanModel) TableName() string {
	return "meal_plans"
}

// FoodItemModel represents the GORM model for catalog entries. Position
// preserves the seed order so pool ordering, and therefore plan generation,
// stays deterministic.
type FoodItemModel struct {
	ID         uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Name       string      `gorm:"type:varchar(255);not null;index"`
	Slot       string      `gorm:"type:varchar(20);not null;index"`
	Position   int         `gorm:"not null"`
	Calories   float64     `gorm:"not null"`
	ProteinG   float64
	CarbsG     float64
	FatG       float64
	FiberG     float64
	Categories StringSlice `gorm:"type:json"`
	Allergens  StringSlice `gorm:"type:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the table name
func (FoodItemModel) TableName() string {
	return "food_items"
}

// StringSlice is a custom type for JSON string arrays
type StringSlice []string

// Value implements driver.Valuer
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// JSONField is a custom type for arbitrary JSON documents
type JSONField []byte

// Value implements driver.Valuer
func (j JSONField) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "null", nil
	}
	return string(j), nil
}

// Scan implements sql.Scanner
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[:0], v...)
		return nil
	case string:
		*j = JSONField(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into JSONField", value)
	}
}

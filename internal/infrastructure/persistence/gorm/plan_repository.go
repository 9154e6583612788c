package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriplan/v2/internal/domain/mealplan"
	"github.com/nutriplan/v2/internal/ports/outbound"
)

// PlanRepository implements the plan repository interface using GORM
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) outbound.PlanRepository {
	return &PlanRepository{db: db}
}

// Create persists a newly generated plan
func (r *PlanRepository) Create(ctx context.Context, plan *mealplan.MealPlan) error {
	model, err := PlanToModel(plan)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Create(model)
	return result.Error
}

// Update saves a plan after a swap
func (r *PlanRepository) Update(ctx context.Context, plan *mealplan.MealPlan) error {
	model, err := PlanToModel(plan)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return mealplan.ErrPlanNotFound
	}
	return nil
}

// Delete removes a plan by ID
func (r *PlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&MealPlanModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return mealplan.ErrPlanNotFound
	}
	return nil
}

// FindByID finds a plan by ID. A missing plan returns (nil, nil); the
// application layer decides whether that is an error.
func (r *PlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	var model MealPlanModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return ModelToPlan(&model)
}

// FindRecent returns the most recently generated plans
func (r *PlanRepository) FindRecent(ctx context.Context, limit int) ([]*mealplan.MealPlan, error) {
	var models []MealPlanModel

	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	plans := make([]*mealplan.MealPlan, len(models))
	for i := range models {
		plan, err := ModelToPlan(&models[i])
		if err != nil {
			return nil, err
		}
		plans[i] = plan
	}
	return plans, nil
}

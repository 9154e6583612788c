// Package planner provides the application layer for diet-plan generation.
// It implements the use cases defined in the inbound ports by wiring the
// screening, rule mapping, conflict resolution and assembly domain logic to
// persistence, catalog and cache adapters.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v2/internal/domain/mealplan"
	"github.com/nutriplan/v2/internal/domain/rules"
	"github.com/nutriplan/v2/internal/domain/screening"
	"github.com/nutriplan/v2/internal/ports/inbound"
	"github.com/nutriplan/v2/internal/ports/outbound"
	"github.com/nutriplan/v2/pkg/errors"
)

const planCacheTTL = time.Hour

// PlannerService implements the planner use cases.
type PlannerService struct {
	planRepo  outbound.PlanRepository
	catalog   outbound.FoodCatalog
	cache     outbound.CacheRepository
	enricher  outbound.RuleEnricher
	assembler *mealplan.Assembler
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewPlannerService creates a new planner service. The enricher may be nil;
// keyword mapping is the documented fallback and is always applied.
func NewPlannerService(
	planRepo outbound.PlanRepository,
	catalog outbound.FoodCatalog,
	cache outbound.CacheRepository,
	enricher outbound.RuleEnricher,
	logger *zap.Logger,
) inbound.PlannerService {
	return &PlannerService{
		planRepo:  planRepo,
		catalog:   catalog,
		cache:     cache,
		enricher:  enricher,
		assembler: mealplan.NewAssembler(),
		validate:  validator.New(),
		logger:    logger.Named("planner-service"),
	}
}

// GeneratePlan derives rules from the command's conditions, instructions,
// allergies and screened metrics, resolves conflicts and assembles a plan.
func (s *PlannerService) GeneratePlan(ctx context.Context, cmd inbound.GeneratePlanCommand) (*inbound.MealPlanDTO, error) {
	s.logger.Info("Generating meal plan",
		zap.Int("conditions", len(cmd.Conditions)),
		zap.Int("instructions", len(cmd.Instructions)),
		zap.Int("allergies", len(cmd.Allergies)),
		zap.Float64("calorie_target", cmd.DailyCalorieTarget),
		zap.Int("days", cmd.Days),
	)

	if err := s.validate.Struct(cmd); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	candidates := s.deriveRules(ctx, cmd)
	resolved := rules.Resolve(candidates)

	pools, err := s.catalog.MealPools(ctx)
	if err != nil {
		return nil, errors.NewExternalServiceError("food catalog", err)
	}

	plan, err := s.assembler.Generate(resolved, cmd.DailyCalorieTarget, cmd.Days, pools, cmd.Seed)
	if err != nil {
		switch err {
		case mealplan.ErrEmptyMealPools:
			return nil, errors.NewCatalogEmptyError()
		case mealplan.ErrInvalidCalorieTarget, mealplan.ErrInvalidDays:
			return nil, errors.NewInvalidPlanRequestError(err.Error())
		default:
			return nil, errors.Wrap(err, "failed to assemble plan")
		}
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, errors.NewDatabaseError("create meal plan", err)
	}
	s.logEvents(plan)

	dto := planToDTO(plan)
	s.cachePlan(ctx, dto)

	s.logger.Info("Meal plan generated",
		zap.String("plan_id", dto.ID.String()),
		zap.Int("resolved_rules", len(dto.Rules)),
	)
	return dto, nil
}

// SwapMeal replaces one day/slot selection, excluding every meal already
// used that day so the swap never duplicates a neighbour slot.
func (s *PlannerService) SwapMeal(ctx context.Context, cmd inbound.SwapMealCommand) (*inbound.MealPlanDTO, error) {
	s.logger.Info("Swapping meal",
		zap.String("plan_id", cmd.PlanID.String()),
		zap.Int("day", cmd.Day),
		zap.String("slot", cmd.Slot),
	)

	if err := s.validate.Struct(cmd); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	slot := mealplan.MealSlot(cmd.Slot)
	if !slot.Valid() {
		return nil, errors.NewInvalidSwapRequestError(fmt.Sprintf("unknown meal slot %q", cmd.Slot))
	}

	plan, err := s.planRepo.FindByID(ctx, cmd.PlanID)
	if err != nil {
		return nil, errors.NewDatabaseError("find meal plan", err)
	}
	if plan == nil {
		return nil, errors.NewPlanNotFoundError(cmd.PlanID.String())
	}

	usedNames, err := plan.UsedNames(cmd.Day)
	if err != nil {
		return nil, errors.NewInvalidSwapRequestError(err.Error())
	}

	pool, err := s.catalog.SlotPool(ctx, slot)
	if err != nil {
		return nil, errors.NewExternalServiceError("food catalog", err)
	}

	selection, err := s.assembler.Swap(plan.ResolvedRules(), plan.CalorieTarget(), slot, pool, usedNames)
	if err != nil {
		return nil, errors.Wrap(err, "failed to swap meal")
	}

	if err := plan.ApplySwap(cmd.Day, slot, selection); err != nil {
		return nil, errors.NewInvalidSwapRequestError(err.Error())
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, errors.NewDatabaseError("update meal plan", err)
	}
	s.logEvents(plan)
	s.invalidatePlanCache(ctx, plan.ID())

	return planToDTO(plan), nil
}

// DeletePlan deletes a plan.
func (s *PlannerService) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	if err := s.planRepo.Delete(ctx, planID); err != nil {
		return errors.NewDatabaseError("delete meal plan", err)
	}
	s.invalidatePlanCache(ctx, planID)
	return nil
}

// GetPlanByID retrieves a plan, cache first.
func (s *PlannerService) GetPlanByID(ctx context.Context, planID uuid.UUID) (*inbound.MealPlanDTO, error) {
	if cached := s.getCachedPlan(ctx, planID); cached != nil {
		return cached, nil
	}

	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, errors.NewDatabaseError("find meal plan", err)
	}
	if plan == nil {
		return nil, errors.NewPlanNotFoundError(planID.String())
	}

	dto := planToDTO(plan)
	s.cachePlan(ctx, dto)
	return dto, nil
}

// ListRecentPlans returns the most recently generated plans.
func (s *PlannerService) ListRecentPlans(ctx context.Context, limit int) ([]inbound.MealPlanDTO, error) {
	if limit <= 0 {
		limit = 10
	}
	plans, err := s.planRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("list meal plans", err)
	}

	dtos := make([]inbound.MealPlanDTO, len(plans))
	for i, plan := range plans {
		dtos[i] = *planToDTO(plan)
	}
	return dtos, nil
}

// deriveRules collects candidate rules from every source. Unmapped
// conditions and instructions contribute nothing; the enricher is
// best-effort and its failure is logged, never propagated.
func (s *PlannerService) deriveRules(ctx context.Context, cmd inbound.GeneratePlanCommand) []rules.DietRule {
	conditions := append([]string(nil), cmd.Conditions...)
	if cmd.Metrics != nil {
		screened := screening.Screen(screening.Metrics{
			FastingGlucoseMgDl: cmd.Metrics.FastingGlucoseMgDl,
			BMI:                cmd.Metrics.BMI,
			SystolicMmHg:       cmd.Metrics.SystolicMmHg,
			DiastolicMmHg:      cmd.Metrics.DiastolicMmHg,
			LDLMgDl:            cmd.Metrics.LDLMgDl,
		})
		if len(screened) > 0 {
			s.logger.Debug("Metrics screened into conditions", zap.Strings("conditions", screened))
			conditions = append(conditions, screened...)
		}
	}

	var candidates []rules.DietRule
	for _, condition := range conditions {
		candidates = append(candidates, rules.MapCondition(condition)...)
	}
	for _, instruction := range cmd.Instructions {
		if rule, ok := rules.MapInstruction(instruction); ok {
			candidates = append(candidates, rule)
		} else {
			s.logger.Debug("Instruction not mapped", zap.String("instruction", instruction))
		}
	}
	for _, allergen := range cmd.Allergies {
		if rule, ok := rules.MapAllergy(allergen); ok {
			candidates = append(candidates, rule)
		}
	}

	if s.enricher != nil {
		enriched, err := s.enricher.EnrichRules(ctx, conditions, cmd.Instructions)
		if err != nil {
			s.logger.Warn("Rule enricher failed, continuing with keyword rules", zap.Error(err))
		} else {
			candidates = append(candidates, enriched...)
		}
	}

	return candidates
}

// logEvents drains and logs the plan's pending domain events.
func (s *PlannerService) logEvents(plan *mealplan.MealPlan) {
	for _, event := range plan.Events() {
		s.logger.Info("Domain event",
			zap.String("event", event.EventName()),
			zap.Time("occurred_at", event.OccurredAt()),
		)
	}
}

// Cache operations

func planCacheKey(planID uuid.UUID) string {
	return fmt.Sprintf("plan:%s", planID.String())
}

func (s *PlannerService) getCachedPlan(ctx context.Context, planID uuid.UUID) *inbound.MealPlanDTO {
	data, err := s.cache.Get(ctx, planCacheKey(planID))
	if err != nil || len(data) == 0 {
		return nil
	}
	var dto inbound.MealPlanDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		s.logger.Debug("Failed to decode cached plan", zap.Error(err))
		return nil
	}
	return &dto
}

func (s *PlannerService) cachePlan(ctx context.Context, dto *inbound.MealPlanDTO) {
	data, err := json.Marshal(dto)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, planCacheKey(dto.ID), data, planCacheTTL); err != nil {
		s.logger.Debug("Failed to cache plan", zap.Error(err))
	}
}

func (s *PlannerService) invalidatePlanCache(ctx context.Context, planID uuid.UUID) {
	if err := s.cache.Delete(ctx, planCacheKey(planID)); err != nil {
		s.logger.Debug("Failed to invalidate plan cache", zap.Error(err))
	}
}

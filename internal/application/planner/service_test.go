package planner

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/nutriplan/v2/internal/domain/mealplan"
	"github.com/nutriplan/v2/internal/domain/rules"
	"github.com/nutriplan/v2/internal/ports/inbound"
	"github.com/nutriplan/v2/internal/ports/outbound"
	"github.com/nutriplan/v2/pkg/errors"
)

// Hand-rolled mocks for the outbound ports.

type mockPlanRepo struct {
	plans       map[uuid.UUID]*mealplan.MealPlan
	createCalls int
	updateCalls int
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{plans: make(map[uuid.UUID]*mealplan.MealPlan)}
}

func (m *mockPlanRepo) Create(ctx context.Context, plan *mealplan.MealPlan) error {
	m.createCalls++
	m.plans[plan.ID()] = plan
	return nil
}

func (m *mockPlanRepo) Update(ctx context.Context, plan *mealplan.MealPlan) error {
	m.updateCalls++
	m.plans[plan.ID()] = plan
	return nil
}

func (m *mockPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.plans, id)
	return nil
}

func (m *mockPlanRepo) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	return m.plans[id], nil
}

func (m *mockPlanRepo) FindRecent(ctx context.Context, limit int) ([]*mealplan.MealPlan, error) {
	var out []*mealplan.MealPlan
	for _, plan := range m.plans {
		if len(out) == limit {
			break
		}
		out = append(out, plan)
	}
	return out, nil
}

type mockCatalog struct {
	pools map[mealplan.MealSlot][]mealplan.FoodItem
}

func (m *mockCatalog) MealPools(ctx context.Context) (map[mealplan.MealSlot][]mealplan.FoodItem, error) {
	return m.pools, nil
}

func (m *mockCatalog) SlotPool(ctx context.Context, slot mealplan.MealSlot) ([]mealplan.FoodItem, error) {
	return m.pools[slot], nil
}

type mockCache struct {
	data     map[string][]byte
	getCalls int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.getCalls++
	return m.data[key], nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

type mockEnricher struct {
	rules []rules.DietRule
	err   error
}

func (m *mockEnricher) EnrichRules(ctx context.Context, conditions, instructions []string) ([]rules.DietRule, error) {
	return m.rules, m.err
}

// PlannerServiceTestSuite wires the service against the mocks.
type PlannerServiceTestSuite struct {
	suite.Suite
	faker *gofakeit.Faker
}

func (suite *PlannerServiceTestSuite) SetupSuite() {
	suite.faker = gofakeit.New(7)
}

func (suite *PlannerServiceTestSuite) buildPools() map[mealplan.MealSlot][]mealplan.FoodItem {
	pools := make(map[mealplan.MealSlot][]mealplan.FoodItem)
	pools[mealplan.SlotBreakfast] = []mealplan.FoodItem{
		{Name: "Oatmeal", Calories: 450, Categories: []rules.FoodCategory{rules.CategoryCarbs, rules.CategoryFiber}},
		{Name: "Yogurt Parfait", Calories: 420, Categories: []rules.FoodCategory{rules.CategoryDairy}, Allergens: []string{"dairy"}},
	}
	pools[mealplan.SlotLunch] = []mealplan.FoodItem{
		{Name: "Chicken Salad", Calories: 650, Categories: []rules.FoodCategory{rules.CategoryProtein}},
		{Name: "Cheese Pasta", Calories: 640, Categories: []rules.FoodCategory{rules.CategoryCarbs, rules.CategoryDairy}, Allergens: []string{"dairy", "gluten"}},
	}
	pools[mealplan.SlotDinner] = []mealplan.FoodItem{
		{Name: "Baked Salmon", Calories: 560, Categories: []rules.FoodCategory{rules.CategorySeafood, rules.CategoryProtein}, Allergens: []string{"fish"}},
		{Name: "Veggie Curry", Calories: 540, Categories: []rules.FoodCategory{rules.CategoryCarbs, rules.CategoryFiber}},
	}
	// Snack pool gets synthetic filler items
	snacks := make([]mealplan.FoodItem, 0, 3)
	for i := 0; i < 3; i++ {
		snacks = append(snacks, mealplan.FoodItem{
			Name:       suite.faker.Snack(),
			Calories:   float64(150 + i*20),
			Categories: []rules.FoodCategory{rules.CategoryFiber},
		})
	}
	pools[mealplan.SlotSnack] = snacks
	return pools
}

func (suite *PlannerServiceTestSuite) newService(repo outbound.PlanRepository, catalog outbound.FoodCatalog, cache outbound.CacheRepository, enricher outbound.RuleEnricher) inbound.PlannerService {
	return NewPlannerService(repo, catalog, cache, enricher, zap.NewNop())
}

func (suite *PlannerServiceTestSuite) TestGeneratePlan() {
	suite.Run("ValidCommand_ShouldGeneratePersistAndCache", func() {
		// Arrange
		repo := newMockPlanRepo()
		cache := newMockCache()
		service := suite.newService(repo, &mockCatalog{pools: suite.buildPools()}, cache, nil)

		cmd := inbound.GeneratePlanCommand{
			Conditions:         []string{"type 2 diabetes"},
			Allergies:          []string{"dairy"},
			DailyCalorieTarget: 1800,
			Days:               3,
		}

		// Act
		dto, err := service.GeneratePlan(context.Background(), cmd)

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), dto)
		assert.Len(suite.T(), dto.Days, 3)
		assert.NotEmpty(suite.T(), dto.Rules)
		assert.Equal(suite.T(), 1, repo.createCalls)
		assert.Len(suite.T(), cache.data, 1)

		// Dairy allergy is a hard exclusion
		for _, day := range dto.Days {
			for _, meal := range day.Meals {
				if meal.Food != nil {
					assert.NotEqual(suite.T(), "Yogurt Parfait", meal.Food.Name)
					assert.NotEqual(suite.T(), "Cheese Pasta", meal.Food.Name)
				}
			}
		}
	})

	suite.Run("InvalidCalorieTarget_ShouldFailValidation", func() {
		// Arrange
		service := suite.newService(newMockPlanRepo(), &mockCatalog{pools: suite.buildPools()}, newMockCache(), nil)
		cmd := inbound.GeneratePlanCommand{DailyCalorieTarget: 0, Days: 3}

		// Act
		_, err := service.GeneratePlan(context.Background(), cmd)

		// Assert
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeValidationFailed, errors.GetCode(err))
	})

	suite.Run("TooManyDays_ShouldFailValidation", func() {
		service := suite.newService(newMockPlanRepo(), &mockCatalog{pools: suite.buildPools()}, newMockCache(), nil)
		cmd := inbound.GeneratePlanCommand{DailyCalorieTarget: 2000, Days: 60}

		_, err := service.GeneratePlan(context.Background(), cmd)

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeValidationFailed, errors.GetCode(err))
	})

	suite.Run("EmptyCatalog_ShouldReturnCatalogEmpty", func() {
		// Arrange
		service := suite.newService(newMockPlanRepo(), &mockCatalog{pools: map[mealplan.MealSlot][]mealplan.FoodItem{}}, newMockCache(), nil)
		cmd := inbound.GeneratePlanCommand{DailyCalorieTarget: 2000, Days: 3}

		// Act
		_, err := service.GeneratePlan(context.Background(), cmd)

		// Assert
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeCatalogEmpty, errors.GetCode(err))
	})

	suite.Run("EnricherFailure_ShouldNotBlockGeneration", func() {
		// Arrange
		enricher := &mockEnricher{err: assert.AnError}
		service := suite.newService(newMockPlanRepo(), &mockCatalog{pools: suite.buildPools()}, newMockCache(), enricher)
		cmd := inbound.GeneratePlanCommand{
			Conditions:         []string{"hypertension"},
			DailyCalorieTarget: 2000,
			Days:               2,
		}

		// Act
		dto, err := service.GeneratePlan(context.Background(), cmd)

		// Assert
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), dto.Days, 2)
	})

	suite.Run("MetricsScreened_ShouldDeriveConditionRules", func() {
		// Arrange: no explicit conditions, but diabetic-range glucose
		service := suite.newService(newMockPlanRepo(), &mockCatalog{pools: suite.buildPools()}, newMockCache(), nil)
		cmd := inbound.GeneratePlanCommand{
			Metrics:            &inbound.MetricsInput{FastingGlucoseMgDl: 130},
			DailyCalorieTarget: 2000,
			Days:               1,
		}

		// Act
		dto, err := service.GeneratePlan(context.Background(), cmd)

		// Assert
		require.NoError(suite.T(), err)
		var texts []string
		for _, rule := range dto.Rules {
			texts = append(texts, rule.RuleText)
		}
		assert.Contains(suite.T(), texts, "Avoid sugary foods and sweets")
	})
}

func (suite *PlannerServiceTestSuite) TestSwapMeal() {
	suite.Run("UnknownSlot_ShouldFail", func() {
		service := suite.newService(newMockPlanRepo(), &mockCatalog{pools: suite.buildPools()}, newMockCache(), nil)
		cmd := inbound.SwapMealCommand{PlanID: uuid.New(), Day: 0, Slot: "brunch"}

		_, err := service.SwapMeal(context.Background(), cmd)

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeInvalidSwapRequest, errors.GetCode(err))
	})

	suite.Run("PlanNotFound_ShouldFail", func() {
		service := suite.newService(newMockPlanRepo(), &mockCatalog{pools: suite.buildPools()}, newMockCache(), nil)
		cmd := inbound.SwapMealCommand{PlanID: uuid.New(), Day: 0, Slot: "lunch"}

		_, err := service.SwapMeal(context.Background(), cmd)

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodePlanNotFound, errors.GetCode(err))
	})

	suite.Run("ValidSwap_ShouldReplaceMealAndUpdatePlan", func() {
		// Arrange: generate a plan first, then swap its lunch on day 0
		repo := newMockPlanRepo()
		cache := newMockCache()
		service := suite.newService(repo, &mockCatalog{pools: suite.buildPools()}, cache, nil)

		generated, err := service.GeneratePlan(context.Background(), inbound.GeneratePlanCommand{
			DailyCalorieTarget: 1800,
			Days:               2,
		})
		require.NoError(suite.T(), err)
		before := generated.Days[0].Meals["lunch"]
		require.NotNil(suite.T(), before.Food)

		// Act
		swapped, err := service.SwapMeal(context.Background(), inbound.SwapMealCommand{
			PlanID: generated.ID,
			Day:    0,
			Slot:   "lunch",
		})

		// Assert
		require.NoError(suite.T(), err)
		after := swapped.Days[0].Meals["lunch"]
		require.NotNil(suite.T(), after.Food)
		assert.NotEqual(suite.T(), before.Food.Name, after.Food.Name)
		assert.Equal(suite.T(), 1, repo.updateCalls)

		// The swap invalidates the cached plan
		assert.Empty(suite.T(), cache.data)
	})
}

func (suite *PlannerServiceTestSuite) TestQueries() {
	suite.Run("GetPlanByID_CacheMissAndNoPlan_ShouldReturnNotFound", func() {
		service := suite.newService(newMockPlanRepo(), &mockCatalog{pools: suite.buildPools()}, newMockCache(), nil)

		_, err := service.GetPlanByID(context.Background(), uuid.New())

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodePlanNotFound, errors.GetCode(err))
	})

	suite.Run("GetPlanByID_SecondReadServedFromCache", func() {
		// Arrange
		repo := newMockPlanRepo()
		cache := newMockCache()
		service := suite.newService(repo, &mockCatalog{pools: suite.buildPools()}, cache, nil)

		generated, err := service.GeneratePlan(context.Background(), inbound.GeneratePlanCommand{
			DailyCalorieTarget: 2000,
			Days:               1,
		})
		require.NoError(suite.T(), err)

		// Act
		fetched, err := service.GetPlanByID(context.Background(), generated.ID)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), generated.ID, fetched.ID)
		assert.Equal(suite.T(), 1, cache.getCalls)
	})

	suite.Run("ListRecentPlans_ShouldReturnStoredPlans", func() {
		// Arrange
		repo := newMockPlanRepo()
		service := suite.newService(repo, &mockCatalog{pools: suite.buildPools()}, newMockCache(), nil)
		for i := 0; i < 2; i++ {
			_, err := service.GeneratePlan(context.Background(), inbound.GeneratePlanCommand{
				DailyCalorieTarget: 2000,
				Days:               1,
			})
			require.NoError(suite.T(), err)
		}

		// Act
		plans, err := service.ListRecentPlans(context.Background(), 0)

		// Assert
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), plans, 2)
	})
}

func TestPlannerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PlannerServiceTestSuite))
}

package mealplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nutriplan/v2/internal/domain/rules"
)

// AssemblerTestSuite provides a test suite for plan assembly
type AssemblerTestSuite struct {
	suite.Suite
	assembler *Assembler
}

func (suite *AssemblerTestSuite) SetupSuite() {
	suite.assembler = NewAssembler()
}

// testPools builds a small deterministic catalog covering every slot.
func testPools() map[MealSlot][]FoodItem {
	return map[MealSlot][]FoodItem{
		SlotBreakfast: {
			{Name: "Oatmeal", Calories: 500, CarbsG: 54, FiberG: 8, Categories: []rules.FoodCategory{rules.CategoryCarbs, rules.CategoryFiber}},
			{Name: "Pancakes", Calories: 520, CarbsG: 68, Categories: []rules.FoodCategory{rules.CategoryCarbs, rules.CategorySweets}},
			{Name: "Omelette", Calories: 480, ProteinG: 19, Categories: []rules.FoodCategory{rules.CategoryProtein}, Allergens: []string{"eggs"}},
		},
		SlotLunch: {
			{Name: "Chicken Salad", Calories: 700, ProteinG: 38, Categories: []rules.FoodCategory{rules.CategoryProtein}},
			{Name: "Pasta", Calories: 720, CarbsG: 76, Categories: []rules.FoodCategory{rules.CategoryCarbs, rules.CategoryDairy}, Allergens: []string{"gluten", "dairy"}},
		},
		SlotDinner: {
			{Name: "Salmon", Calories: 600, ProteinG: 40, Categories: []rules.FoodCategory{rules.CategorySeafood, rules.CategoryProtein}, Allergens: []string{"fish"}},
			{Name: "Fried Chicken", Calories: 640, FatG: 44, Categories: []rules.FoodCategory{rules.CategoryFats, rules.CategoryProcessed}},
		},
		SlotSnack: {
			{Name: "Mixed Nuts", Calories: 200, FatG: 17, Categories: []rules.FoodCategory{rules.CategoryNuts, rules.CategoryFats}, Allergens: []string{"nuts"}},
			{Name: "Fruit Salad", Calories: 190, CarbsG: 30, Categories: []rules.FoodCategory{rules.CategorySweets, rules.CategoryFiber}},
		},
	}
}

func (suite *AssemblerTestSuite) TestGenerateValidation() {
	suite.Run("NonPositiveCalorieTarget_ShouldFail", func() {
		_, err := suite.assembler.Generate(nil, 0, 3, testPools(), nil)
		assert.ErrorIs(suite.T(), err, ErrInvalidCalorieTarget)

		_, err = suite.assembler.Generate(nil, -100, 3, testPools(), nil)
		assert.ErrorIs(suite.T(), err, ErrInvalidCalorieTarget)
	})

	suite.Run("ZeroDays_ShouldFail", func() {
		_, err := suite.assembler.Generate(nil, 2000, 0, testPools(), nil)
		assert.ErrorIs(suite.T(), err, ErrInvalidDays)
	})

	suite.Run("AllPoolsEmpty_ShouldFail", func() {
		_, err := suite.assembler.Generate(nil, 2000, 3, map[MealSlot][]FoodItem{}, nil)
		assert.ErrorIs(suite.T(), err, ErrEmptyMealPools)
	})
}

func (suite *AssemblerTestSuite) TestGenerate() {
	suite.Run("NoRules_PicksClosestToSlotShare", func() {
		// Arrange: breakfast share of 2000 is 500, Oatmeal hits it exactly
		plan, err := suite.assembler.Generate(nil, 2000, 1, testPools(), nil)

		// Assert
		require.NoError(suite.T(), err)
		selection, err := plan.Selection(0, SlotBreakfast)
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), selection.Food)
		assert.Equal(suite.T(), "Oatmeal", selection.Food.Name)

		// Lunch share is 700, Chicken Salad is the exact match
		selection, err = plan.Selection(0, SlotLunch)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Chicken Salad", selection.Food.Name)
	})

	suite.Run("ExcludeRule_NeverSelectsExcludedItem", func() {
		// Arrange
		resolved := []rules.DietRule{
			{RuleText: "Avoid sugary foods and sweets", Priority: rules.PriorityRequired, Action: rules.ActionExclude, FoodCategories: []rules.FoodCategory{rules.CategorySweets}},
		}

		// Act
		plan, err := suite.assembler.Generate(resolved, 2000, 5, testPools(), nil)

		// Assert: no sweets item appears anywhere in the plan
		require.NoError(suite.T(), err)
		for _, day := range plan.Days() {
			for _, selection := range day.Meals {
				if selection.Food != nil {
					assert.False(suite.T(), selection.Food.InCategory(rules.CategorySweets),
						"excluded item %q selected", selection.Food.Name)
				}
			}
		}
	})

	suite.Run("AllergenMatch_ExcludedByCategoryName", func() {
		// Arrange: "eggs" is no taxonomy category, the rule carries its own tag
		resolved := []rules.DietRule{
			{RuleText: "Avoid eggs - allergy", Priority: rules.PriorityRequired, Action: rules.ActionExclude, FoodCategories: []rules.FoodCategory{rules.FoodCategory("eggs")}, IsAllergy: true},
		}

		// Act
		plan, err := suite.assembler.Generate(resolved, 2000, 3, testPools(), nil)

		// Assert
		require.NoError(suite.T(), err)
		for _, day := range plan.Days() {
			for _, selection := range day.Meals {
				if selection.Food != nil {
					assert.NotEqual(suite.T(), "Omelette", selection.Food.Name)
				}
			}
		}
	})

	suite.Run("EmptyFilteredPool_ShouldYieldSentinel", func() {
		// Arrange: every snack is either nuts or sweets
		resolved := []rules.DietRule{
			{RuleText: "Avoid nuts - allergy", Priority: rules.PriorityRequired, Action: rules.ActionExclude, FoodCategories: []rules.FoodCategory{rules.CategoryNuts}, IsAllergy: true},
			{RuleText: "Avoid sugary foods and sweets", Priority: rules.PriorityRequired, Action: rules.ActionExclude, FoodCategories: []rules.FoodCategory{rules.CategorySweets}},
		}

		// Act
		plan, err := suite.assembler.Generate(resolved, 2000, 2, testPools(), nil)

		// Assert: plan still generates, snack slots carry the sentinel
		require.NoError(suite.T(), err)
		for day := 0; day < 2; day++ {
			selection, err := plan.Selection(day, SlotSnack)
			require.NoError(suite.T(), err)
			assert.True(suite.T(), selection.IsSentinel())
			assert.Equal(suite.T(), SentinelNote, selection.Note)
		}
	})

	suite.Run("NoRepeat_UntilPoolExhausted_ThenReset", func() {
		// Arrange: breakfast pool has 3 items, 4 days forces a reset
		plan, err := suite.assembler.Generate(nil, 2000, 4, testPools(), nil)
		require.NoError(suite.T(), err)

		// Assert: first three days are distinct, day four repeats day one
		var names []string
		for day := 0; day < 4; day++ {
			selection, err := plan.Selection(day, SlotBreakfast)
			require.NoError(suite.T(), err)
			require.NotNil(suite.T(), selection.Food)
			names = append(names, selection.Food.Name)
		}
		assert.Len(suite.T(), map[string]bool{names[0]: true, names[1]: true, names[2]: true}, 3)
		assert.Equal(suite.T(), names[0], names[3])
	})

	suite.Run("Deterministic_SameInputsSamePlan", func() {
		// Act
		first, err := suite.assembler.Generate(nil, 1800, 3, testPools(), nil)
		require.NoError(suite.T(), err)
		second, err := suite.assembler.Generate(nil, 1800, 3, testPools(), nil)
		require.NoError(suite.T(), err)

		// Assert: same selections in the same order
		for day := 0; day < 3; day++ {
			for _, slot := range Slots() {
				a, _ := first.Selection(day, slot)
				b, _ := second.Selection(day, slot)
				assert.Equal(suite.T(), selectionName(a), selectionName(b))
			}
		}
	})

	suite.Run("SeededGeneration_ReproduciblePerSeed", func() {
		// Arrange
		seed := int64(42)

		// Act
		first, err := suite.assembler.Generate(nil, 1800, 3, testPools(), &seed)
		require.NoError(suite.T(), err)
		second, err := suite.assembler.Generate(nil, 1800, 3, testPools(), &seed)
		require.NoError(suite.T(), err)

		// Assert
		for day := 0; day < 3; day++ {
			for _, slot := range Slots() {
				a, _ := first.Selection(day, slot)
				b, _ := second.Selection(day, slot)
				assert.Equal(suite.T(), selectionName(a), selectionName(b))
			}
		}
	})

	suite.Run("LimitRule_PushesFlaggedItemDown", func() {
		// Arrange: dinner share of 2140 is 642, so Fried Chicken (640) wins
		// on calorie distance alone. The fats LIMIT penalty must flip the
		// order toward Salmon (600).
		limitFats := []rules.DietRule{
			{RuleText: "Limit fatty and fried foods", Priority: rules.PriorityRecommended, Action: rules.ActionLimit, FoodCategories: []rules.FoodCategory{rules.CategoryFats}},
		}

		// Act
		unrestricted, err := suite.assembler.Generate(nil, 2140, 1, testPools(), nil)
		require.NoError(suite.T(), err)
		restricted, err := suite.assembler.Generate(limitFats, 2140, 1, testPools(), nil)
		require.NoError(suite.T(), err)

		// Assert
		selection, _ := unrestricted.Selection(0, SlotDinner)
		assert.Equal(suite.T(), "Fried Chicken", selection.Food.Name)
		selection, _ = restricted.Selection(0, SlotDinner)
		assert.Equal(suite.T(), "Salmon", selection.Food.Name)
	})

	suite.Run("IncludeRule_PullsPreferredItemUp", func() {
		// Arrange: breakfast share of 1900 is 475, so Omelette (480) wins on
		// calorie distance alone. The fiber INCLUDE bonus must pull Oatmeal
		// ahead.
		includeFiber := []rules.DietRule{
			{RuleText: "Include high-fiber foods", Priority: rules.PriorityRecommended, Action: rules.ActionInclude, FoodCategories: []rules.FoodCategory{rules.CategoryFiber}},
		}

		// Act
		unrestricted, err := suite.assembler.Generate(nil, 1900, 1, testPools(), nil)
		require.NoError(suite.T(), err)
		preferred, err := suite.assembler.Generate(includeFiber, 1900, 1, testPools(), nil)
		require.NoError(suite.T(), err)

		// Assert
		selection, _ := unrestricted.Selection(0, SlotBreakfast)
		assert.Equal(suite.T(), "Omelette", selection.Food.Name)
		selection, _ = preferred.Selection(0, SlotBreakfast)
		assert.Equal(suite.T(), "Oatmeal", selection.Food.Name)
	})
}

func (suite *AssemblerTestSuite) TestSwap() {
	suite.Run("ExcludedNames_NeverReturned", func() {
		// Arrange
		pool := testPools()[SlotBreakfast]
		excluded := map[string]struct{}{"Oatmeal": {}}

		// Act
		selection, err := suite.assembler.Swap(nil, 2000, SlotBreakfast, pool, excluded)

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), selection.Food)
		assert.NotEqual(suite.T(), "Oatmeal", selection.Food.Name)
	})

	suite.Run("WholePoolExcluded_TopRankedReturnedAnyway", func() {
		// Arrange
		pool := testPools()[SlotBreakfast]
		excluded := map[string]struct{}{"Oatmeal": {}, "Pancakes": {}, "Omelette": {}}

		// Act
		selection, err := suite.assembler.Swap(nil, 2000, SlotBreakfast, pool, excluded)

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), selection.Food)
		assert.Equal(suite.T(), "Oatmeal", selection.Food.Name)
	})

	suite.Run("EmptyFilteredPool_ShouldYieldSentinel", func() {
		// Arrange
		resolved := []rules.DietRule{
			{RuleText: "Eat light", Priority: rules.PriorityRecommended, Action: rules.ActionExclude, FoodCategories: []rules.FoodCategory{rules.CategoryAll}},
		}

		// Act
		selection, err := suite.assembler.Swap(resolved, 2000, SlotLunch, testPools()[SlotLunch], nil)

		// Assert
		require.NoError(suite.T(), err)
		assert.True(suite.T(), selection.IsSentinel())
	})

	suite.Run("UnknownSlot_ShouldFail", func() {
		_, err := suite.assembler.Swap(nil, 2000, MealSlot("brunch"), testPools()[SlotLunch], nil)
		assert.ErrorIs(suite.T(), err, ErrUnknownSlot)
	})

	suite.Run("NonPositiveCalorieTarget_ShouldFail", func() {
		_, err := suite.assembler.Swap(nil, 0, SlotLunch, testPools()[SlotLunch], nil)
		assert.ErrorIs(suite.T(), err, ErrInvalidCalorieTarget)
	})
}

func TestAssemblerTestSuite(t *testing.T) {
	suite.Run(t, new(AssemblerTestSuite))
}

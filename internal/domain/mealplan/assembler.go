package mealplan

import (
	"math"
	"math/rand"
	"sort"

	"github.com/nutriplan/v2/internal/domain/rules"
)

// Ranking weights. EXCLUDE is the only hard filter; LIMIT pushes flagged
// items down the order and INCLUDE pulls preferred items up, both relative
// to the slot's calorie share so the nudge scales with the target.
const (
	limitPenaltyFactor = 0.5
	includeBonusFactor = 0.1
)

// Assembler builds meal plans from resolved rules and per-slot food pools.
// It holds no state; construct once and inject.
type Assembler struct{}

// NewAssembler creates a new assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Generate assembles a plan of the requested number of days.
//
// Per slot, the candidate pool is hard-filtered by EXCLUDE rules, ranked by
// absolute distance between item calories and the slot's share of the daily
// target, and selected without repetition until the pool is exhausted, at
// which point repeats become allowed. A slot whose filtered pool is empty
// gets the sentinel selection for every day; that is non-fatal.
//
// Identical inputs, including pool order, produce identical plans. A non-nil
// seed shuffles equal candidates for cross-run variety while staying
// reproducible for that seed.
func (a *Assembler) Generate(resolved []rules.DietRule, dailyCalorieTarget float64, days int, pools map[MealSlot][]FoodItem, seed *int64) (*MealPlan, error) {
	if dailyCalorieTarget <= 0 {
		return nil, ErrInvalidCalorieTarget
	}
	if days < 1 {
		return nil, ErrInvalidDays
	}
	hasCandidates := false
	for _, slot := range Slots() {
		if len(pools[slot]) > 0 {
			hasCandidates = true
			break
		}
	}
	if !hasCandidates {
		return nil, ErrEmptyMealPools
	}

	var rng *rand.Rand
	if seed != nil {
		rng = rand.New(rand.NewSource(*seed))
	}

	ranked := make(map[MealSlot][]FoodItem, len(slotShares))
	for _, slot := range Slots() {
		ranked[slot] = a.rankPool(resolved, slot, dailyCalorieTarget, pools[slot], rng)
	}

	used := make(map[MealSlot]map[string]struct{}, len(slotShares))
	for _, slot := range Slots() {
		used[slot] = make(map[string]struct{})
	}

	planDays := make([]MealPlanDay, 0, days)
	for day := 0; day < days; day++ {
		meals := make(map[MealSlot]MealSelection, len(slotShares))
		for _, slot := range Slots() {
			pool := ranked[slot]
			if len(pool) == 0 {
				meals[slot] = sentinelSelection()
				continue
			}
			item := pickNext(pool, used[slot])
			meals[slot] = MealSelection{Food: &item}
		}
		planDays = append(planDays, MealPlanDay{Day: day, Meals: meals})
	}

	return newMealPlan(planDays, resolved, dailyCalorieTarget), nil
}

// Swap re-runs the slot's filter and ranking and returns the best item not
// named in excludedNames. When the whole filtered pool is excluded the
// top-ranked item is returned anyway; repeats are allowed only after
// exhaustion. An empty filtered pool yields the sentinel.
func (a *Assembler) Swap(resolved []rules.DietRule, dailyCalorieTarget float64, slot MealSlot, pool []FoodItem, excludedNames map[string]struct{}) (MealSelection, error) {
	if dailyCalorieTarget <= 0 {
		return MealSelection{}, ErrInvalidCalorieTarget
	}
	if !slot.Valid() {
		return MealSelection{}, ErrUnknownSlot
	}

	ranked := a.rankPool(resolved, slot, dailyCalorieTarget, pool, nil)
	if len(ranked) == 0 {
		return sentinelSelection(), nil
	}
	for _, item := range ranked {
		if _, skip := excludedNames[item.Name]; skip {
			continue
		}
		item := item
		return MealSelection{Food: &item}, nil
	}
	top := ranked[0]
	return MealSelection{Food: &top}, nil
}

// rankPool applies the EXCLUDE hard filter and orders survivors for the
// slot. LIMIT and INCLUDE never remove items.
func (a *Assembler) rankPool(resolved []rules.DietRule, slot MealSlot, dailyCalorieTarget float64, pool []FoodItem, rng *rand.Rand) []FoodItem {
	excluded := rules.ExcludedCategories(resolved)

	survivors := make([]FoodItem, 0, len(pool))
	for _, item := range pool {
		if itemExcluded(item, excluded) {
			continue
		}
		survivors = append(survivors, item)
	}
	if len(survivors) == 0 {
		return nil
	}

	if rng != nil {
		rng.Shuffle(len(survivors), func(i, j int) {
			survivors[i], survivors[j] = survivors[j], survivors[i]
		})
	}

	slotTarget := slot.CalorieShare() * dailyCalorieTarget
	type scoredItem struct {
		item  FoodItem
		score float64
	}
	scored := make([]scoredItem, len(survivors))
	for i, item := range survivors {
		scored[i] = scoredItem{item: item, score: a.score(resolved, item, slotTarget)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score < scored[j].score
	})

	ranked := make([]FoodItem, len(scored))
	for i, s := range scored {
		ranked[i] = s.item
	}
	return ranked
}

// score is the ranking key: calorie distance, nudged by LIMIT penalties and
// INCLUDE bonuses.
func (a *Assembler) score(resolved []rules.DietRule, item FoodItem, slotTarget float64) float64 {
	score := math.Abs(item.Calories - slotTarget)
	for _, rule := range resolved {
		switch rule.Action {
		case rules.ActionLimit:
			if touchesItem(rule, item) && exceedsLimitThreshold(item, rule.FoodCategories) {
				score += slotTarget * limitPenaltyFactor
			}
		case rules.ActionInclude:
			if touchesItem(rule, item) {
				score -= slotTarget * includeBonusFactor
			}
		}
	}
	return score
}

// itemExcluded is the hard filter: the item's categories, or its declared
// allergens, intersect a category under an EXCLUDE rule.
func itemExcluded(item FoodItem, excluded []rules.FoodCategory) bool {
	for _, category := range excluded {
		if category == rules.CategoryAll {
			return true
		}
		if item.InCategory(category) {
			return true
		}
		for _, allergen := range item.Allergens {
			if allergen == string(category) {
				return true
			}
		}
	}
	return false
}

// touchesItem reports whether a rule's categories cover the item.
func touchesItem(rule rules.DietRule, item FoodItem) bool {
	if rule.IsGlobal() {
		return true
	}
	for _, category := range rule.FoodCategories {
		if item.InCategory(category) {
			return true
		}
	}
	return false
}

// exceedsLimitThreshold decides whether a LIMIT-flagged item is actually
// over the macro threshold for the limited category. Categories without a
// macro proxy (sodium, caffeine, processed) are always treated as over.
func exceedsLimitThreshold(item FoodItem, categories []rules.FoodCategory) bool {
	for _, category := range categories {
		switch category {
		case rules.CategoryFats:
			if item.FatG > 15 {
				return true
			}
		case rules.CategorySweets:
			if item.CarbsG > 30 {
				return true
			}
		case rules.CategoryCarbs:
			if item.CarbsG > 45 {
				return true
			}
		case rules.CategoryProtein:
			if item.ProteinG > 30 {
				return true
			}
		default:
			return true
		}
	}
	return false
}

// pickNext returns the first ranked item not yet used for the slot,
// resetting the used set once the whole pool has been served.
func pickNext(pool []FoodItem, used map[string]struct{}) FoodItem {
	for _, item := range pool {
		if _, taken := used[item.Name]; !taken {
			used[item.Name] = struct{}{}
			return item
		}
	}
	for name := range used {
		delete(used, name)
	}
	top := pool[0]
	used[top.Name] = struct{}{}
	return top
}

// Package enrichment provides the built-in rule enricher. It contributes
// complementary guideline rules for recognized conditions, on top of what
// the keyword mappers already derive. The enricher is best-effort: its
// output feeds the same conflict resolver, and callers treat failures as
// non-fatal.
package enrichment

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/nutriplan/v2/internal/domain/rules"
	"github.com/nutriplan/v2/internal/ports/outbound"
)

type guideline struct {
	keyword string
	rules   []rules.DietRule
}

// guidelines carries positive-guidance rules that the condition mappers do
// not emit themselves. Order determines output order.
var guidelines = []guideline{
	{
		keyword: "diabetes",
		rules: []rules.DietRule{
			{
				RuleText:       "Include high-fiber foods to slow glucose absorption",
				Priority:       rules.PriorityRecommended,
				Action:         rules.ActionInclude,
				FoodCategories: []rules.FoodCategory{rules.CategoryFiber},
				Source:         rules.SourceEnrichment,
			},
		},
	},
	{
		keyword: "hypertension",
		rules: []rules.DietRule{
			{
				RuleText:       "Include potassium-rich whole foods",
				Priority:       rules.PriorityRecommended,
				Action:         rules.ActionInclude,
				FoodCategories: []rules.FoodCategory{rules.CategoryFiber},
				Source:         rules.SourceEnrichment,
			},
		},
	},
	{
		keyword: "anemia",
		rules: []rules.DietRule{
			{
				RuleText:       "Include iron-rich protein sources",
				Priority:       rules.PriorityRecommended,
				Action:         rules.ActionInclude,
				FoodCategories: []rules.FoodCategory{rules.CategoryProtein},
				Source:         rules.SourceEnrichment,
			},
		},
	},
	{
		keyword: "cholesterol",
		rules: []rules.DietRule{
			{
				RuleText:       "Include omega-3 rich fish",
				Priority:       rules.PriorityRecommended,
				Action:         rules.ActionInclude,
				FoodCategories: []rules.FoodCategory{rules.CategorySeafood},
				Source:         rules.SourceEnrichment,
			},
		},
	},
}

// GuidelineEnricher enriches derived rules from a static guideline table.
type GuidelineEnricher struct {
	logger *zap.Logger
}

// NewGuidelineEnricher creates a new guideline enricher
func NewGuidelineEnricher(logger *zap.Logger) outbound.RuleEnricher {
	return &GuidelineEnricher{logger: logger.Named("guideline-enricher")}
}

// EnrichRules returns guideline rules matching the given conditions.
// Instructions are currently not enriched.
func (e *GuidelineEnricher) EnrichRules(ctx context.Context, conditions, instructions []string) ([]rules.DietRule, error) {
	var enriched []rules.DietRule
	for _, entry := range guidelines {
		for _, condition := range conditions {
			if strings.Contains(strings.ToLower(condition), entry.keyword) {
				enriched = append(enriched, entry.rules...)
				break
			}
		}
	}

	if len(enriched) > 0 {
		e.logger.Debug("Enriched derived rules",
			zap.Int("count", len(enriched)),
		)
	}
	return enriched, nil
}

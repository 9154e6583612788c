package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreen(t *testing.T) {
	tests := []struct {
		name     string
		metrics  Metrics
		expected []string
	}{
		{
			name:     "NoMetrics_NothingScreened",
			metrics:  Metrics{},
			expected: nil,
		},
		{
			name:     "GlucoseAtDiabetesCutoff",
			metrics:  Metrics{FastingGlucoseMgDl: 126},
			expected: []string{"diabetes"},
		},
		{
			name:     "GlucoseInPrediabetesRange",
			metrics:  Metrics{FastingGlucoseMgDl: 110},
			expected: []string{"prediabetes"},
		},
		{
			name:     "GlucoseBelowPrediabetes",
			metrics:  Metrics{FastingGlucoseMgDl: 92},
			expected: nil,
		},
		{
			name:     "BMIAtObesityCutoff",
			metrics:  Metrics{BMI: 30},
			expected: []string{"obesity"},
		},
		{
			name:     "BMIInOverweightRange",
			metrics:  Metrics{BMI: 27.5},
			expected: []string{"overweight"},
		},
		{
			name:     "SystolicAloneTriggersHypertension",
			metrics:  Metrics{SystolicMmHg: 145},
			expected: []string{"hypertension"},
		},
		{
			name:     "DiastolicAloneTriggersHypertension",
			metrics:  Metrics{DiastolicMmHg: 95},
			expected: []string{"hypertension"},
		},
		{
			name:     "BorderlineBloodPressure_NotHypertension",
			metrics:  Metrics{SystolicMmHg: 139, DiastolicMmHg: 89},
			expected: nil,
		},
		{
			name:     "LDLAtCutoff",
			metrics:  Metrics{LDLMgDl: 160},
			expected: []string{"high cholesterol"},
		},
		{
			name: "MultipleFindings_FixedOrder",
			metrics: Metrics{
				FastingGlucoseMgDl: 130,
				BMI:                32,
				SystolicMmHg:       150,
				LDLMgDl:            170,
			},
			expected: []string{"diabetes", "obesity", "hypertension", "high cholesterol"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Screen(tt.metrics))
		})
	}
}

// Package screening maps extracted health metrics to condition names using
// a single canonical clinical threshold table:
//
//   - fasting glucose: >=126 mg/dL diabetes, 100-125 prediabetes (ADA)
//   - BMI: >=30 obesity, 25-29.9 overweight (WHO)
//   - blood pressure: >=140/90 hypertension (stage 2, ESC/ESH)
//   - LDL cholesterol: >=160 mg/dL high cholesterol (NCEP ATP III)
//
// The resulting names feed rules.MapCondition. Metrics left at zero are
// treated as not measured and screen nothing.
package screening

// Metrics carries the numeric values extracted upstream from a medical
// report. All fields are optional; zero means unknown.
type Metrics struct {
	FastingGlucoseMgDl float64
	BMI                float64
	SystolicMmHg       float64
	DiastolicMmHg      float64
	LDLMgDl            float64
}

// Clinical cutoffs. Kept as named constants so the choice is documented in
// one place; upstream sources disagree and this table is the tiebreaker.
const (
	glucoseDiabetes    = 126
	glucosePrediabetes = 100
	bmiObesity         = 30
	bmiOverweight      = 25
	systolicHTN        = 140
	diastolicHTN       = 90
	ldlHigh            = 160
)

// Screen returns the condition names the metrics indicate, in a fixed
// order. Unmeasured or in-range metrics contribute nothing; the result may
// be empty, never an error.
func Screen(m Metrics) []string {
	var conditions []string

	switch {
	case m.FastingGlucoseMgDl >= glucoseDiabetes:
		conditions = append(conditions, "diabetes")
	case m.FastingGlucoseMgDl >= glucosePrediabetes:
		conditions = append(conditions, "prediabetes")
	}

	switch {
	case m.BMI >= bmiObesity:
		conditions = append(conditions, "obesity")
	case m.BMI >= bmiOverweight:
		conditions = append(conditions, "overweight")
	}

	if m.SystolicMmHg >= systolicHTN || m.DiastolicMmHg >= diastolicHTN {
		conditions = append(conditions, "hypertension")
	}

	if m.LDLMgDl >= ldlHigh {
		conditions = append(conditions, "high cholesterol")
	}

	return conditions
}

// internal/metrics/calculator.go
package metrics

import (
	"fmt"
	"strings"
)

// TargetDeficit is the fixed daily weight-loss deficit in kcal.
const TargetDeficit = 500

// Input bounds for a BodyProfile.
const (
	MinAge      = 10
	MaxAge      = 100
	MinHeightCm = 100
	MaxHeightCm = 250
	MinWeightKg = 30
	MaxWeightKg = 200
)

type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ParseSex accepts "male"/"female" and their single-letter forms.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	}
	return "", &InvalidInputError{Field: "sex", Value: s}
}

type BodyProfile struct {
	Sex           Sex           `json:"sex"`
	AgeYears      int           `json:"age_years"`
	HeightCm      int           `json:"height_cm"`
	WeightKg      int           `json:"weight_kg"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	ExternalKcal  int           `json:"external_energy_expenditure_kcal"`
}

// Result holds the displayed metrics plus the intermediates they derive from.
type Result struct {
	BMR               float64 `json:"basal_metabolic_rate"`
	TDEE              float64 `json:"total_daily_energy_expenditure"`
	BaseTDEE          int     `json:"base_tdee"`
	Compensation      int     `json:"compensation"`
	TargetDeficit     int     `json:"target_deficit"`
	RecommendedIntake int     `json:"recommended_intake"`
}

// Validate checks every field of p against its documented bounds.
// External expenditure only has to be non-negative.
func Validate(p BodyProfile) error {
	if err := validateBody(p); err != nil {
		return err
	}
	if p.ExternalKcal < 0 {
		return &InvalidInputError{
			Field:  "external_energy_expenditure_kcal",
			Value:  fmt.Sprint(p.ExternalKcal),
			Reason: "must not be negative",
		}
	}
	return nil
}

// validateBody covers the fields the BMR equation reads.
func validateBody(p BodyProfile) error {
	if p.Sex != Male && p.Sex != Female {
		return &InvalidInputError{Field: "sex", Value: string(p.Sex)}
	}
	checks := []struct {
		field    string
		v        int
		min, max int
	}{
		{"age_years", p.AgeYears, MinAge, MaxAge},
		{"height_cm", p.HeightCm, MinHeightCm, MaxHeightCm},
		{"weight_kg", p.WeightKg, MinWeightKg, MaxWeightKg},
	}
	for _, c := range checks {
		if c.v < c.min || c.v > c.max {
			return &InvalidInputError{
				Field:  c.field,
				Value:  fmt.Sprint(c.v),
				Reason: fmt.Sprintf("must be between %d and %d", c.min, c.max),
			}
		}
	}
	return nil
}

// BasalMetabolicRate applies the Mifflin-St Jeor equation.
func BasalMetabolicRate(p BodyProfile) (float64, error) {
	if err := validateBody(p); err != nil {
		return 0, err
	}
	bmr := 10*float64(p.WeightKg) + 6.25*float64(p.HeightCm) - 5*float64(p.AgeYears)
	if p.Sex == Male {
		return bmr + 5, nil
	}
	return bmr - 161, nil
}

// TotalDailyEnergyExpenditure scales bmr by the multiplier of level.
func TotalDailyEnergyExpenditure(bmr float64, level ActivityLevel) (float64, error) {
	mult, err := level.Multiplier()
	if err != nil {
		return 0, err
	}
	return bmr * mult, nil
}

// RecommendedIntake returns trunc(TDEE) + external - TargetDeficit. The result
// is not clamped and may be negative.
func RecommendedIntake(p BodyProfile) (int, error) {
	r, err := Compute(p)
	if err != nil {
		return 0, err
	}
	return r.RecommendedIntake, nil
}

// Compute derives every metric for p.
func Compute(p BodyProfile) (Result, error) {
	if err := Validate(p); err != nil {
		return Result{}, err
	}
	bmr, err := BasalMetabolicRate(p)
	if err != nil {
		return Result{}, err
	}
	tdee, err := TotalDailyEnergyExpenditure(bmr, p.ActivityLevel)
	if err != nil {
		return Result{}, err
	}
	base := int(tdee)
	return Result{
		BMR:               bmr,
		TDEE:              tdee,
		BaseTDEE:          base,
		Compensation:      p.ExternalKcal,
		TargetDeficit:     TargetDeficit,
		RecommendedIntake: base + p.ExternalKcal - TargetDeficit,
	}, nil
}

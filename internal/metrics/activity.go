// internal/metrics/activity.go
package metrics

type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very_active"
)

type ActivityTier struct {
	Level      ActivityLevel `json:"level"`
	Label      string        `json:"label"`
	Multiplier float64       `json:"multiplier"`
}

// tiers is ordered from least to most active.
var tiers = []ActivityTier{
	{Sedentary, "Sedentary (office work)", 1.2},
	{Light, "Lightly active (exercise 1-3 days/week)", 1.375},
	{Moderate, "Moderately active (exercise 3-5 days/week)", 1.55},
	{Active, "Very active (exercise 6-7 days/week)", 1.725},
	{VeryActive, "Extremely active (physical labour or athlete)", 1.9},
}

// Levels returns the five activity tiers in order.
func Levels() []ActivityTier {
	out := make([]ActivityTier, len(tiers))
	copy(out, tiers)
	return out
}

// Multiplier fails with *UnknownActivityLevelError for anything outside the
// five known tokens.
func (l ActivityLevel) Multiplier() (float64, error) {
	for _, t := range tiers {
		if t.Level == l {
			return t.Multiplier, nil
		}
	}
	return 0, &UnknownActivityLevelError{Level: string(l)}
}

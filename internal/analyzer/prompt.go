// internal/analyzer/prompt.go
package analyzer

import "fmt"

type PromptStyle string

const (
	DetailedPrompt PromptStyle = "detailed"
	BriefPrompt    PromptStyle = "brief"
)

func ParsePromptStyle(s string) (PromptStyle, error) {
	switch PromptStyle(s) {
	case "", DetailedPrompt:
		return DetailedPrompt, nil
	case BriefPrompt:
		return BriefPrompt, nil
	}
	return "", fmt.Errorf("unknown prompt style %q", s)
}

// BuildPrompt renders the instruction sent alongside the photo.
func BuildPrompt(style PromptStyle, language string, recommendedIntake int) string {
	if style == BriefPrompt {
		return fmt.Sprintf(`You are a nutritionist. Analyze the food in this image and list: 1. food names 2. estimated calories 3. nutrients (protein/fat/carbohydrates). Finish with a short suggestion; the user's remaining allowance for today is %d kcal. Answer in %s.`,
			recommendedIntake, language)
	}

	return fmt.Sprintf(`You are a professional nutritionist. Analyze the food in this image:
1. Identify every food item.
2. Estimate the portion size and calories of each item.
3. Summarize the meal's total calories, protein, fat and carbohydrates.
4. The user's recommended intake for today is %d kcal.
Based on that budget, give a short verdict (for example: is this meal too oily? is there still room for dinner?).

Answer in %s and present the numbers as Markdown tables.`, recommendedIntake, language)
}

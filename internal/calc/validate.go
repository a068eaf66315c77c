package calc

import "github.com/macrofit/macrofit-cli/internal/model"

// ValidateProfile returns human-readable problems for any field outside
// its documented range. An empty result means the profile is complete and
// safe to compute from.
func ValidateProfile(p model.UserProfile) []string {
	problems := make([]string, 0)

	if p.Age < 18 || p.Age > 80 {
		problems = append(problems, "age must be between 18 and 80")
	}
	if p.Gender != model.GenderMale && p.Gender != model.GenderFemale {
		problems = append(problems, "gender must be male or female")
	}
	if p.WeightKg < 40 || p.WeightKg > 200 {
		problems = append(problems, "weight must be between 40 and 200 kg")
	}
	if p.HeightCm < 140 || p.HeightCm > 220 {
		problems = append(problems, "height must be between 140 and 220 cm")
	}
	if p.BodyFatPct != nil && (*p.BodyFatPct < 0 || *p.BodyFatPct > 50) {
		problems = append(problems, "body-fat percentage must be between 0 and 50")
	}
	switch p.ActivityLevel {
	case model.ActivitySedentary, model.ActivityLight, model.ActivityModerate,
		model.ActivityVeryActive, model.ActivityExtremelyActive:
	default:
		problems = append(problems, "activity level must be one of sedentary, light, moderate, very_active, extremely_active")
	}
	switch p.Goal {
	case model.GoalCutting, model.GoalAggressiveCutting, model.GoalBulking,
		model.GoalAggressiveBulking, model.GoalMaintenance:
	default:
		problems = append(problems, "goal must be one of cutting, aggressive_cutting, bulking, aggressive_bulking, maintenance")
	}
	switch p.MealsPerDay {
	case 3, 4, 5, 6:
	default:
		problems = append(problems, "meals per day must be 3, 4, 5, or 6")
	}

	return problems
}

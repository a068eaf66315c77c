// Package calc computes personalized nutrition targets from a user
// profile. All functions are pure; validation failures are returned as a
// list of messages and never as panics or error values.
package calc

import (
	"math"

	"github.com/macrofit/macrofit-cli/internal/model"
)

const SodiumLimitMg = 2300

var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:       1.2,
	model.ActivityLight:           1.375,
	model.ActivityModerate:        1.55,
	model.ActivityVeryActive:      1.725,
	model.ActivityExtremelyActive: 1.9,
}

var goalMultipliers = map[model.Goal]float64{
	model.GoalCutting:           0.85,
	model.GoalAggressiveCutting: 0.75,
	model.GoalBulking:           1.15,
	model.GoalAggressiveBulking: 1.25,
	model.GoalMaintenance:       1.0,
}

type macroRule struct {
	proteinPerKg float64
	carbPct      float64
	fatPct       float64
}

var macroRules = map[model.Goal]macroRule{
	model.GoalCutting:           {proteinPerKg: 2.2, carbPct: 30, fatPct: 35},
	model.GoalAggressiveCutting: {proteinPerKg: 2.2, carbPct: 30, fatPct: 35},
	model.GoalBulking:           {proteinPerKg: 1.8, carbPct: 45, fatPct: 30},
	model.GoalAggressiveBulking: {proteinPerKg: 1.8, carbPct: 45, fatPct: 30},
	model.GoalMaintenance:       {proteinPerKg: 1.8, carbPct: 40, fatPct: 30},
}

// BMR uses Katch-McArdle when a usable body-fat percentage is present and
// Mifflin-St Jeor otherwise.
func BMR(p model.UserProfile) float64 {
	if p.BodyFatPct != nil && *p.BodyFatPct > 0 && *p.BodyFatPct < 50 {
		leanMass := p.WeightKg * (1 - *p.BodyFatPct/100)
		return 370 + 21.6*leanMass
	}
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == model.GenderFemale {
		return base - 161
	}
	return base + 5
}

func TDEE(bmr float64, level model.ActivityLevel) float64 {
	m, ok := activityMultipliers[level]
	if !ok {
		m = 1.55
	}
	return bmr * m
}

func AdjustCaloriesForGoal(tdee float64, goal model.Goal) float64 {
	m, ok := goalMultipliers[goal]
	if !ok {
		m = 1.0
	}
	return tdee * m
}

type MacroSplit struct {
	ProteinG      float64
	CarbsG        float64
	FatG          float64
	FiberG        float64
	SugarG        float64
	SaturatedFatG float64
}

// MacroDistribution splits target calories into daily macro grams using
// the goal's protein g/kg and carb/fat ratio over the non-protein
// remainder.
func MacroDistribution(targetCalories, weightKg float64, goal model.Goal) MacroSplit {
	rule, ok := macroRules[goal]
	if !ok {
		rule = macroRules[model.GoalMaintenance]
	}

	protein := math.Round(weightKg * rule.proteinPerKg)
	proteinCalories := protein * 4
	remaining := targetCalories - proteinCalories
	carbCalories := remaining * rule.carbPct / (rule.carbPct + rule.fatPct)
	fatCalories := remaining * rule.fatPct / (rule.carbPct + rule.fatPct)

	return MacroSplit{
		ProteinG:      protein,
		CarbsG:        math.Round(carbCalories / 4),
		FatG:          math.Round(fatCalories / 9),
		FiberG:        math.Max(25, targetCalories/1000*14),
		SugarG:        math.Min(50, carbCalories/4*0.3),
		SaturatedFatG: fatCalories / 9 * 0.3,
	}
}

var mealNamesByCount = map[int][]string{
	3: {"Breakfast", "Lunch", "Dinner"},
	4: {"Breakfast", "Lunch", "Post-Workout", "Dinner"},
	5: {"Breakfast", "Mid-Morning", "Lunch", "Post-Workout", "Dinner"},
	6: {"Breakfast", "Mid-Morning", "Lunch", "Post-Workout", "Dinner", "Evening"},
}

// MealDistribution divides the daily split evenly across mealsPerDay.
// An unrecognized meal count falls back to the four-meal layout.
func MealDistribution(split MacroSplit, mealsPerDay int) []model.MealTarget {
	names, ok := mealNamesByCount[mealsPerDay]
	if !ok {
		names = mealNamesByCount[4]
	}
	count := float64(len(names))

	perMealFiber := split.FiberG / count
	perMealSugar := split.SugarG / count

	meals := make([]model.MealTarget, 0, len(names))
	for _, name := range names {
		meals = append(meals, model.MealTarget{
			Name:      name,
			ProteinG:  int(math.Round(split.ProteinG / count)),
			CarbsG:    int(math.Round(split.CarbsG / count)),
			FatG:      int(math.Round(split.FatG / count)),
			MinFiberG: int(math.Round(perMealFiber * 0.8)),
			MaxSugarG: int(math.Round(perMealSugar * 1.5)),
		})
	}
	return meals
}

type rdaEntry struct {
	male   float64
	female float64
	unit   string
}

// Base RDA amounts. Single-value nutrients repeat the amount for both
// genders.
var rdaTable = map[string]rdaEntry{
	"vitamin_d":   {male: 15, female: 15, unit: "mcg"},
	"iron":        {male: 8, female: 18, unit: "mg"},
	"calcium":     {male: 1000, female: 1000, unit: "mg"},
	"magnesium":   {male: 400, female: 310, unit: "mg"},
	"zinc":        {male: 11, female: 8, unit: "mg"},
	"omega_3":     {male: 1.6, female: 1.1, unit: "g"},
	"vitamin_b6":  {male: 1.3, female: 1.3, unit: "mg"},
	"vitamin_b12": {male: 2.4, female: 2.4, unit: "mcg"},
	"folate":      {male: 400, female: 400, unit: "mcg"},
	"vitamin_c":   {male: 90, female: 75, unit: "mg"},
	"sodium":      {male: SodiumLimitMg, female: SodiumLimitMg, unit: "mg"},
	"potassium":   {male: 3400, female: 3400, unit: "mg"},
}

var microActivityScale = map[model.ActivityLevel]float64{
	model.ActivitySedentary:       1.0,
	model.ActivityLight:           1.1,
	model.ActivityModerate:        1.2,
	model.ActivityVeryActive:      1.3,
	model.ActivityExtremelyActive: 1.4,
}

// MicronutrientTargets scales the RDA table by activity level. Sodium is
// an upper limit and stays fixed.
func MicronutrientTargets(gender model.Gender, level model.ActivityLevel) model.Micronutrients {
	scale, ok := microActivityScale[level]
	if !ok {
		scale = 1.2
	}
	out := model.Micronutrients{}
	for key, entry := range rdaTable {
		amount := entry.male
		if gender == model.GenderFemale {
			amount = entry.female
		}
		if key != "sodium" {
			amount *= scale
		}
		out[key] = model.MicronutrientAmount{Value: amount, Unit: entry.unit}
	}
	return out
}

// CalculateTargets runs the full pipeline. A non-empty problem list means
// the profile was rejected and no targets were computed.
func CalculateTargets(p model.UserProfile) (*model.NutritionTargets, []string) {
	if problems := ValidateProfile(p); len(problems) > 0 {
		return nil, problems
	}

	bmr := BMR(p)
	tdee := TDEE(bmr, p.ActivityLevel)
	targetCalories := AdjustCaloriesForGoal(tdee, p.Goal)
	split := MacroDistribution(targetCalories, p.WeightKg, p.Goal)

	return &model.NutritionTargets{
		BMR:              bmr,
		TDEE:             tdee,
		TargetCalories:   targetCalories,
		ProteinG:         split.ProteinG,
		CarbsG:           split.CarbsG,
		FatG:             split.FatG,
		FiberG:           split.FiberG,
		SugarG:           split.SugarG,
		SaturatedFatG:    split.SaturatedFatG,
		SodiumMg:         SodiumLimitMg,
		Micronutrients:   MicronutrientTargets(p.Gender, p.ActivityLevel),
		MealDistribution: MealDistribution(split, p.MealsPerDay),
	}, nil
}

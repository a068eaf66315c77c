package model

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivitySedentary       ActivityLevel = "sedentary"
	ActivityLight           ActivityLevel = "light"
	ActivityModerate        ActivityLevel = "moderate"
	ActivityVeryActive      ActivityLevel = "very_active"
	ActivityExtremelyActive ActivityLevel = "extremely_active"
)

type Goal string

const (
	GoalCutting           Goal = "cutting"
	GoalAggressiveCutting Goal = "aggressive_cutting"
	GoalBulking           Goal = "bulking"
	GoalAggressiveBulking Goal = "aggressive_bulking"
	GoalMaintenance       Goal = "maintenance"
)

type PeriodType string

const (
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

type UserProfile struct {
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	WeightKg      float64       `json:"weight_kg"`
	HeightCm      float64       `json:"height_cm"`
	BodyFatPct    *float64      `json:"body_fat_pct,omitempty"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	Goal          Goal          `json:"goal"`
	MealsPerDay   int           `json:"meals_per_day"`
}

// Nutrients is a nutrient vector. Catalog rows carry the same shape
// normalized to 100 g; entries carry it scaled to the logged portions.
type Nutrients struct {
	Calories      float64 `json:"calories"`
	ProteinG      float64 `json:"protein_g"`
	CarbsG        float64 `json:"carbs_g"`
	FatG          float64 `json:"fat_g"`
	FiberG        float64 `json:"fiber_g"`
	SugarG        float64 `json:"sugar_g"`
	SaturatedFatG float64 `json:"saturated_fat_g"`
	Omega3G       float64 `json:"omega3_g"`
	Omega6G       float64 `json:"omega6_g"`
	SodiumMg      float64 `json:"sodium_mg"`
	PotassiumMg   float64 `json:"potassium_mg"`
	IronMg        float64 `json:"iron_mg"`
	CalciumMg     float64 `json:"calcium_mg"`
	MagnesiumMg   float64 `json:"magnesium_mg"`
	ZincMg        float64 `json:"zinc_mg"`
	VitaminAMcg   float64 `json:"vitamin_a_mcg"`
	VitaminCMg    float64 `json:"vitamin_c_mg"`
	VitaminDMcg   float64 `json:"vitamin_d_mcg"`
	VitaminB6Mg   float64 `json:"vitamin_b6_mg"`
	VitaminB12Mcg float64 `json:"vitamin_b12_mcg"`
	FolateMcg     float64 `json:"folate_mcg"`
}

func (n Nutrients) Add(o Nutrients) Nutrients {
	n.Calories += o.Calories
	n.ProteinG += o.ProteinG
	n.CarbsG += o.CarbsG
	n.FatG += o.FatG
	n.FiberG += o.FiberG
	n.SugarG += o.SugarG
	n.SaturatedFatG += o.SaturatedFatG
	n.Omega3G += o.Omega3G
	n.Omega6G += o.Omega6G
	n.SodiumMg += o.SodiumMg
	n.PotassiumMg += o.PotassiumMg
	n.IronMg += o.IronMg
	n.CalciumMg += o.CalciumMg
	n.MagnesiumMg += o.MagnesiumMg
	n.ZincMg += o.ZincMg
	n.VitaminAMcg += o.VitaminAMcg
	n.VitaminCMg += o.VitaminCMg
	n.VitaminDMcg += o.VitaminDMcg
	n.VitaminB6Mg += o.VitaminB6Mg
	n.VitaminB12Mcg += o.VitaminB12Mcg
	n.FolateMcg += o.FolateMcg
	return n
}

func (n Nutrients) Scale(factor float64) Nutrients {
	n.Calories *= factor
	n.ProteinG *= factor
	n.CarbsG *= factor
	n.FatG *= factor
	n.FiberG *= factor
	n.SugarG *= factor
	n.SaturatedFatG *= factor
	n.Omega3G *= factor
	n.Omega6G *= factor
	n.SodiumMg *= factor
	n.PotassiumMg *= factor
	n.IronMg *= factor
	n.CalciumMg *= factor
	n.MagnesiumMg *= factor
	n.ZincMg *= factor
	n.VitaminAMcg *= factor
	n.VitaminCMg *= factor
	n.VitaminDMcg *= factor
	n.VitaminB6Mg *= factor
	n.VitaminB12Mcg *= factor
	n.FolateMcg *= factor
	return n
}

type MicronutrientAmount struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type Micronutrients map[string]MicronutrientAmount

// MealTarget is one named slice of the daily targets.
type MealTarget struct {
	Name      string `json:"name"`
	ProteinG  int    `json:"protein_g"`
	CarbsG    int    `json:"carbs_g"`
	FatG      int    `json:"fat_g"`
	MinFiberG int    `json:"min_fiber_g"`
	MaxSugarG int    `json:"max_sugar_g"`
}

// NutritionTargets is derived from a complete profile. It is replaced
// wholesale on every recalculation, never merged.
type NutritionTargets struct {
	BMR              float64        `json:"bmr"`
	TDEE             float64        `json:"tdee"`
	TargetCalories   float64        `json:"target_calories"`
	ProteinG         float64        `json:"protein_g"`
	CarbsG           float64        `json:"carbs_g"`
	FatG             float64        `json:"fat_g"`
	FiberG           float64        `json:"fiber_g"`
	SugarG           float64        `json:"sugar_g"`
	SaturatedFatG    float64        `json:"saturated_fat_g"`
	SodiumMg         float64        `json:"sodium_mg"`
	Micronutrients   Micronutrients `json:"micronutrients"`
	MealDistribution []MealTarget   `json:"meal_distribution"`
}

type MacroTargets struct {
	ProteinG  int `json:"protein_g"`
	CarbsG    int `json:"carbs_g"`
	MinFiberG int `json:"min_fiber_g"`
	MaxSugarG int `json:"max_sugar_g"`
	FatG      int `json:"fat_g"`
}

type MealDefinition struct {
	ID                    string       `json:"id"`
	Name                  string       `json:"name"`
	Targets               MacroTargets `json:"targets"`
	UserCustom            bool         `json:"user_custom"`
	PersonalizedGenerated bool         `json:"personalized_generated"`
	CreatedAt             time.Time    `json:"created_at"`
}

type SelectedFood struct {
	FoodID       string  `json:"food_id"`
	PortionGrams float64 `json:"portion_grams"`
}

type MealPlanEntry struct {
	ID               string         `json:"id"`
	MealID           string         `json:"meal_id"`
	CreatedAt        time.Time      `json:"created_at"`
	IsCheatMeal      bool           `json:"is_cheat_meal"`
	SelectedFoods    []SelectedFood `json:"selected_foods"`
	CalculatedMacros Nutrients      `json:"calculated_macros"`
}

type MacroStatus string

const (
	StatusHit   MacroStatus = "hit"
	StatusUnder MacroStatus = "under"
	StatusOver  MacroStatus = "over"
)

type MacroResult struct {
	Name    string      `json:"name"`
	TargetG float64     `json:"target_g"`
	ActualG float64     `json:"actual_g"`
	Ratio   float64     `json:"ratio"`
	Status  MacroStatus `json:"status"`
}

type NutrientResult struct {
	Name     string  `json:"name"`
	Target   float64 `json:"target"`
	Actual   float64 `json:"actual"`
	Unit     string  `json:"unit"`
	Achieved bool    `json:"achieved"`
}

// DailySummary aggregates one bucketed day. Once persisted it is
// authoritative and never regenerated from raw entries.
type DailySummary struct {
	Date             string             `json:"date"`
	Totals           Nutrients          `json:"totals"`
	TargetsAchieved  map[string]float64 `json:"targets_achieved"`
	MacroScore       int                `json:"macro_score"`
	NutrientScore    int                `json:"nutrient_score"`
	ConsistencyScore float64            `json:"consistency_score"`
	MacroResults     []MacroResult      `json:"macro_results"`
	NutrientResults  []NutrientResult   `json:"nutrient_results"`
	TopFoods         []string           `json:"top_foods"`
	EntryCount       int                `json:"entry_count"`
	CheatMealCount   int                `json:"cheat_meal_count"`
	IsCheatDay       bool               `json:"is_cheat_day"`
	CreatedAt        time.Time          `json:"created_at"`
}

// Preferences is the user-tunable configuration surface.
type Preferences struct {
	DayResetHour        int        `json:"day_reset_hour"`
	CheatMealsPerPeriod int        `json:"cheat_meals_per_period"`
	CheatDaysPerPeriod  int        `json:"cheat_days_per_period"`
	CheatPeriodType     PeriodType `json:"cheat_period_type"`
	RetentionDays       int        `json:"retention_days"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		DayResetHour:        4,
		CheatMealsPerPeriod: 2,
		CheatDaysPerPeriod:  1,
		CheatPeriodType:     PeriodWeekly,
		RetentionDays:       90,
	}
}

// Settings is the persisted settings blob: profile, derived targets, and
// preferences.
type Settings struct {
	Profile     *UserProfile      `json:"profile,omitempty"`
	Targets     *NutritionTargets `json:"targets,omitempty"`
	Preferences Preferences       `json:"preferences"`
}

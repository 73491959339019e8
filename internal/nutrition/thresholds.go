package nutrition

// Thresholds are the per-day limits and targets used for compliance
// coloring in the UI. They are advisory, never hard limits.
type Thresholds struct {
	SaturatedFatG float64 `json:"saturated_fat_g"`
	SodiumMG      float64 `json:"sodium_mg"`
	SodiumIdealMG float64 `json:"sodium_ideal_mg"`
	AddedSugarG   float64 `json:"added_sugar_g"`
	FiberTargetG  float64 `json:"fiber_target_g"`
}

// kcalPerGramFat converts the saturated-fat calorie budget to grams.
const kcalPerGramFat = 9

const (
	sodiumLimitMG      = 2300 // upper limit
	sodiumIdealMG      = 1500 // stricter "ideal" warning threshold
	addedSugarMaleG    = 36
	addedSugarFemaleG  = 25
	fiberTargetMaleG   = 38
	fiberTargetFemaleG = 25
)

// PolicyThresholds derives the compliance thresholds from the calorie target
// and sex. Saturated fat is capped at 10% of target calories converted to
// grams. The result is a pure function of its inputs and must be recomputed
// on every profile change, never cached.
func PolicyThresholds(targetCalories int, sex Sex) Thresholds {
	t := Thresholds{
		SaturatedFatG: float64(targetCalories) * 0.10 / kcalPerGramFat,
		SodiumMG:      sodiumLimitMG,
		SodiumIdealMG: sodiumIdealMG,
	}
	if sex == SexMale {
		t.AddedSugarG = addedSugarMaleG
		t.FiberTargetG = fiberTargetMaleG
	} else {
		t.AddedSugarG = addedSugarFemaleG
		t.FiberTargetG = fiberTargetFemaleG
	}
	return t
}

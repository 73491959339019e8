package nutrition

import "math"

// Sex selects the constant term of the Mifflin-St Jeor formula. It plays no
// other role in energy calculations.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// BodyProfile is the subset of a user profile needed for energy
// calculations. Pointer fields may be nil; when any required field is
// absent, calculations are skipped entirely rather than estimated with
// population defaults.
type BodyProfile struct {
	WeightKG       *float64
	HeightCM       *float64
	AgeYears       *int
	Sex            *Sex
	CalorieDeficit int // signed: negative is a surplus, zero is maintenance
}

// DefaultCalorieDeficit applies when a profile never configured one.
const DefaultCalorieDeficit = 500

// proteinPerKG is the daily protein target in grams per kg of body weight.
const proteinPerKG = 1.6

// bmrBandFraction is the fixed relative uncertainty attached to a BMR point
// estimate.
const bmrBandFraction = 0.10

// EnergyEstimate is an integer-valued kcal estimate with a low/high band.
// Each bound is rounded independently from the unrounded computation; the
// point value is never rounded first and then scaled.
type EnergyEstimate struct {
	Value int `json:"value"`
	Low   int `json:"low"`
	High  int `json:"high"`
}

// activityBand is the TDEE multiplier for one activity level with its own
// confidence band. Band endpoints combine pairwise with the BMR band:
// tdee_low = bmr_low * mult_low, tdee_high = bmr_high * mult_high.
type activityBand struct {
	Mult float64
	Low  float64
	High float64
}

// activityBands maps the five activity level ids to their multipliers.
// Level 3 ("moderate") is the default when a day has no recorded level.
var activityBands = map[int]activityBand{
	1: {Mult: 1.2, Low: 1.1, High: 1.3},    // sedentary
	2: {Mult: 1.375, Low: 1.25, High: 1.5}, // light
	3: {Mult: 1.55, Low: 1.4, High: 1.7},   // moderate
	4: {Mult: 1.725, Low: 1.55, High: 1.9}, // active
	5: {Mult: 1.9, Low: 1.7, High: 2.1},    // very active
}

// DefaultActivityLevel is used for days with no DailyActivity row.
const DefaultActivityLevel = 3

// ValidActivityLevel reports whether id names one of the five fixed levels.
func ValidActivityLevel(id int) bool {
	_, ok := activityBands[id]
	return ok
}

// Energy bundles the derived energy-expenditure outputs for one day.
type Energy struct {
	BMR            EnergyEstimate `json:"bmr"`
	TDEE           EnergyEstimate `json:"tdee"`
	TargetCalories int            `json:"target_calories"`
	TargetProteinG int            `json:"target_protein_g"`
}

// BMR computes the Mifflin-St Jeor basal metabolic rate with a ±10% band.
// Returns ok=false when any required body-stat field is nil.
func BMR(p BodyProfile) (EnergyEstimate, bool) {
	if p.WeightKG == nil || p.HeightCM == nil || p.AgeYears == nil || p.Sex == nil {
		return EnergyEstimate{}, false
	}
	bmr := 10**p.WeightKG + 6.25**p.HeightCM - 5*float64(*p.AgeYears)
	if *p.Sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return EnergyEstimate{
		Value: int(math.Round(bmr)),
		Low:   int(math.Round(bmr * (1 - bmrBandFraction))),
		High:  int(math.Round(bmr * (1 + bmrBandFraction))),
	}, true
}

// TDEE scales a BMR estimate by the activity multiplier for the given level.
// Interval endpoints combine pairwise, not via independent sampling.
// Returns ok=false for an unknown level id.
func TDEE(bmr EnergyEstimate, activityLevel int) (EnergyEstimate, bool) {
	band, ok := activityBands[activityLevel]
	if !ok {
		return EnergyEstimate{}, false
	}
	return EnergyEstimate{
		Value: int(math.Round(float64(bmr.Value) * band.Mult)),
		Low:   int(math.Round(float64(bmr.Low) * band.Low)),
		High:  int(math.Round(float64(bmr.High) * band.High)),
	}, true
}

// ComputeEnergy derives BMR, TDEE and the calorie/protein targets for one
// day. The deficit is subtracted as configured (it may be negative for a
// surplus). Returns nil when body stats are incomplete or the activity level
// is unknown — targets are never computed from defaults.
func ComputeEnergy(p BodyProfile, activityLevel int) *Energy {
	bmr, ok := BMR(p)
	if !ok {
		return nil
	}
	tdee, ok := TDEE(bmr, activityLevel)
	if !ok {
		return nil
	}
	return &Energy{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: tdee.Value - p.CalorieDeficit,
		TargetProteinG: int(math.Round(*p.WeightKG * proteinPerKG)),
	}
}

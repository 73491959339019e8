// Package nutrition holds the pure calculation core: per-item nutrient
// estimates with confidence bands, aggregation, manual overrides, energy
// expenditure (BMR/TDEE) and derived targets, period statistics, and policy
// thresholds. Nothing in this package performs I/O.
package nutrition

import "fmt"

// Estimate is a point estimate with a 90%-confidence low/high band. No
// distribution semantics are attached beyond "plausible range". The expected
// invariant Low <= Value <= High is checked by CheckItem, not enforced here:
// the upstream estimator's point values are trusted even when its own
// interval is malformed.
type Estimate struct {
	Value float64 `json:"value"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
}

// Add returns the component-wise sum of e and other. Bounds are summed
// independently — intervals of separate items are treated as independent and
// never compounded.
func (e Estimate) Add(other Estimate) Estimate {
	return Estimate{
		Value: e.Value + other.Value,
		Low:   e.Low + other.Low,
		High:  e.High + other.High,
	}
}

// Scale multiplies all three components by ratio.
func (e Estimate) Scale(ratio float64) Estimate {
	return Estimate{
		Value: e.Value * ratio,
		Low:   e.Low * ratio,
		High:  e.High * ratio,
	}
}

// IsZero reports whether all components are zero, the encoding used for a
// nutrient the estimator did not report.
func (e Estimate) IsZero() bool {
	return e == Estimate{}
}

// Nutrients carries one Estimate per tracked nutrient. Energy is kcal,
// sodium is mg, everything else grams.
type Nutrients struct {
	Calories       Estimate `json:"calories"`
	Protein        Estimate `json:"protein"`
	Carbs          Estimate `json:"carbs"`
	Fat            Estimate `json:"fat"`
	SaturatedFat   Estimate `json:"saturated_fat"`
	UnsaturatedFat Estimate `json:"unsaturated_fat"`
	Fiber          Estimate `json:"fiber"`
	Sodium         Estimate `json:"sodium"`
	AddedSugar     Estimate `json:"added_sugar"`
}

// Add returns the per-nutrient sum of n and other.
func (n Nutrients) Add(other Nutrients) Nutrients {
	return Nutrients{
		Calories:       n.Calories.Add(other.Calories),
		Protein:        n.Protein.Add(other.Protein),
		Carbs:          n.Carbs.Add(other.Carbs),
		Fat:            n.Fat.Add(other.Fat),
		SaturatedFat:   n.SaturatedFat.Add(other.SaturatedFat),
		UnsaturatedFat: n.UnsaturatedFat.Add(other.UnsaturatedFat),
		Fiber:          n.Fiber.Add(other.Fiber),
		Sodium:         n.Sodium.Add(other.Sodium),
		AddedSugar:     n.AddedSugar.Add(other.AddedSugar),
	}
}

// Item is one food item of an entry as produced by the estimator, possibly
// adjusted later through ApplyOverride.
type Item struct {
	Name             string     `json:"name"`
	Nutrients        Nutrients  `json:"nutrients"`
	MassGrams        *Estimate  `json:"mass_grams,omitempty"`
	Assumptions      []string   `json:"assumptions,omitempty"`
	OverriddenFields []string   `json:"overridden_fields,omitempty"`
	HasOverride      bool       `json:"has_override"`
}

// fatBreakdownTolerance is the fraction of total fat by which the saturated +
// unsaturated breakdown may miss the total before a warning is raised.
const fatBreakdownTolerance = 0.20

// CheckItem validates estimator output for internal consistency. Violations
// are warnings, never rejections: the item is stored either way.
func CheckItem(item Item) []string {
	var warnings []string

	checkBounds := func(name string, e Estimate) {
		if e.IsZero() {
			return
		}
		if e.Low > e.Value || e.Value > e.High {
			warnings = append(warnings, fmt.Sprintf(
				"%s: %s bounds [%g, %g] do not bracket value %g",
				item.Name, name, e.Low, e.High, e.Value))
		}
	}
	checkBounds(FieldCalories, item.Nutrients.Calories)
	checkBounds(FieldProtein, item.Nutrients.Protein)
	checkBounds(FieldCarbs, item.Nutrients.Carbs)
	checkBounds(FieldFat, item.Nutrients.Fat)
	checkBounds(FieldSaturatedFat, item.Nutrients.SaturatedFat)
	checkBounds(FieldUnsaturatedFat, item.Nutrients.UnsaturatedFat)
	checkBounds(FieldFiber, item.Nutrients.Fiber)
	checkBounds(FieldSodium, item.Nutrients.Sodium)
	checkBounds(FieldAddedSugar, item.Nutrients.AddedSugar)
	if item.MassGrams != nil {
		checkBounds("mass_grams", *item.MassGrams)
	}

	fat := item.Nutrients.Fat.Value
	if fat > 0 {
		breakdown := item.Nutrients.SaturatedFat.Value + item.Nutrients.UnsaturatedFat.Value
		if breakdown > 0 {
			diff := breakdown - fat
			if diff < 0 {
				diff = -diff
			}
			if diff > fat*fatBreakdownTolerance {
				warnings = append(warnings, fmt.Sprintf(
					"%s: fat breakdown %.1fg does not match total fat %.1fg",
					item.Name, breakdown, fat))
			}
		}
	}

	return warnings
}

// Aggregate sums the nutrient estimates of items into daily (or range)
// totals. Value, low and high are summed independently per nutrient — no
// compounding, no clamping — so the result is exact, associative and
// independent of item order. An empty slice yields all zeros. Nutrients the
// estimator omitted are zero-valued and contribute nothing.
func Aggregate(items []Item) Nutrients {
	var total Nutrients
	for _, item := range items {
		total = total.Add(item.Nutrients)
	}
	return total
}

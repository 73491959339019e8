package nutrition

import (
	"errors"
	"fmt"
)

// Field names recorded in Item.OverriddenFields and used in validation
// messages. These double as the JSON keys of the override patch.
const (
	FieldCalories       = "calories"
	FieldProtein        = "protein"
	FieldCarbs          = "carbs"
	FieldFat            = "fat"
	FieldSaturatedFat   = "saturated_fat"
	FieldUnsaturatedFat = "unsaturated_fat"
	FieldFiber          = "fiber"
	FieldSodium         = "sodium"
	FieldAddedSugar     = "added_sugar"
)

// ErrInvalidOverride marks override patches rejected by validation. The
// patch is rejected whole; no field is applied.
var ErrInvalidOverride = errors.New("invalid override")

// minOverrideCalories is the floor for a manual calorie override. It also
// subsumes non-negativity.
const minOverrideCalories = 5

// OverridePatch is a manual correction to an item's point estimates. Only
// non-nil fields are considered.
type OverridePatch struct {
	Calories       *float64 `json:"calories,omitempty"`
	Protein        *float64 `json:"protein,omitempty"`
	Carbs          *float64 `json:"carbs,omitempty"`
	Fat            *float64 `json:"fat,omitempty"`
	SaturatedFat   *float64 `json:"saturated_fat,omitempty"`
	UnsaturatedFat *float64 `json:"unsaturated_fat,omitempty"`
	Fiber          *float64 `json:"fiber,omitempty"`
	Sodium         *float64 `json:"sodium,omitempty"`
	AddedSugar     *float64 `json:"added_sugar,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (p OverridePatch) IsEmpty() bool {
	return p.Calories == nil && p.Protein == nil && p.Carbs == nil &&
		p.Fat == nil && p.SaturatedFat == nil && p.UnsaturatedFat == nil &&
		p.Fiber == nil && p.Sodium == nil && p.AddedSugar == nil
}

// validate checks patch floors before anything is applied.
func (p OverridePatch) validate() error {
	if p.Calories != nil && *p.Calories < minOverrideCalories {
		return fmt.Errorf("%w: calories must be at least %d, got %g",
			ErrInvalidOverride, minOverrideCalories, *p.Calories)
	}
	nonNegative := []struct {
		name  string
		value *float64
	}{
		{FieldProtein, p.Protein},
		{FieldCarbs, p.Carbs},
		{FieldFat, p.Fat},
		{FieldFiber, p.Fiber},
	}
	for _, f := range nonNegative {
		if f.value != nil && *f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g",
				ErrInvalidOverride, f.name, *f.value)
		}
	}
	return nil
}

// rescaled replaces the point value and rescales both bounds by
// newValue/oldValue, so the relative width of the confidence band is
// preserved. A zero old value has no meaningful ratio; the bounds are kept
// as-is (ratio 1).
func rescaled(e Estimate, newValue float64) Estimate {
	ratio := 1.0
	if e.Value != 0 {
		ratio = newValue / e.Value
	}
	return Estimate{
		Value: newValue,
		Low:   e.Low * ratio,
		High:  e.High * ratio,
	}
}

// ApplyOverride returns a copy of item with the patch applied. Validation
// runs first and rejects the whole patch on any violation. For each present
// field whose value differs from the current point estimate, the bounds are
// rescaled by the value ratio and the field is recorded as overridden
// (idempotently). Overriding total fat additionally rescales the saturated
// and unsaturated breakdown by the same ratio, since those describe portions
// of the quantity being corrected.
func ApplyOverride(item Item, patch OverridePatch) (Item, error) {
	if err := patch.validate(); err != nil {
		return Item{}, err
	}

	apply := func(e *Estimate, field string, newValue *float64) {
		if newValue == nil || *newValue == e.Value {
			return
		}
		*e = rescaled(*e, *newValue)
		item.OverriddenFields = appendUnique(item.OverriddenFields, field)
		item.HasOverride = true
	}

	if patch.Fat != nil && *patch.Fat != item.Nutrients.Fat.Value {
		ratio := 1.0
		if item.Nutrients.Fat.Value != 0 {
			ratio = *patch.Fat / item.Nutrients.Fat.Value
		}
		item.Nutrients.SaturatedFat = item.Nutrients.SaturatedFat.Scale(ratio)
		item.Nutrients.UnsaturatedFat = item.Nutrients.UnsaturatedFat.Scale(ratio)
	}

	apply(&item.Nutrients.Calories, FieldCalories, patch.Calories)
	apply(&item.Nutrients.Protein, FieldProtein, patch.Protein)
	apply(&item.Nutrients.Carbs, FieldCarbs, patch.Carbs)
	apply(&item.Nutrients.Fat, FieldFat, patch.Fat)
	apply(&item.Nutrients.SaturatedFat, FieldSaturatedFat, patch.SaturatedFat)
	apply(&item.Nutrients.UnsaturatedFat, FieldUnsaturatedFat, patch.UnsaturatedFat)
	apply(&item.Nutrients.Fiber, FieldFiber, patch.Fiber)
	apply(&item.Nutrients.Sodium, FieldSodium, patch.Sodium)
	apply(&item.Nutrients.AddedSugar, FieldAddedSugar, patch.AddedSugar)

	return item, nil
}

func appendUnique(fields []string, field string) []string {
	for _, f := range fields {
		if f == field {
			return fields
		}
	}
	return append(fields, field)
}

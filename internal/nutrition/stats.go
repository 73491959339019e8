package nutrition

import "github.com/nutrilog/backend/internal/localdate"

// DaySummary is one day's aggregated totals plus the energy outputs that
// could be computed for that day. Energy fields are nil when the profile
// lacked body stats at the time (or the activity level was unknown); period
// statistics skip such days for the metrics that need them.
type DaySummary struct {
	Date           localdate.Date
	Totals         Nutrients
	TDEE           *EnergyEstimate
	TargetCalories *int
	TargetProteinG *int
}

// Mean is an arithmetic mean together with the number of days it was
// computed over. DaysTracked differs between metrics: nutrient averages run
// over every day in the window, while the deficit average only covers days
// with a computed TDEE.
type Mean struct {
	Value       float64 `json:"value"`
	DaysTracked int     `json:"days_tracked"`
}

// PeriodStats are the 7- or 30-day summary figures shown above the charts.
type PeriodStats struct {
	Calories      Mean `json:"calories"`
	ProteinG      Mean `json:"protein_g"`
	SaturatedFatG Mean `json:"saturated_fat_g"`
	AddedSugarG   Mean `json:"added_sugar_g"`
	SodiumMG      Mean `json:"sodium_mg"`
	FiberG        Mean `json:"fiber_g"`

	// Deficit is TDEE minus consumed calories, averaged over days that
	// have a TDEE. Positive means under expenditure.
	Deficit Mean `json:"deficit"`

	// ProteinPctOfTarget is consumed protein as a percentage of the
	// day's protein target, averaged over days that have one.
	ProteinPctOfTarget Mean `json:"protein_pct_of_target"`
}

// ComputePeriodStats reduces per-day summaries to period means. Every day in
// the input counts toward the plain nutrient means; the derived metrics each
// track their own day count.
func ComputePeriodStats(days []DaySummary) PeriodStats {
	var stats PeriodStats
	var calories, protein, satFat, sugar, sodium, fiber float64
	var deficit, proteinPct float64
	deficitDays, proteinDays := 0, 0

	for _, day := range days {
		calories += day.Totals.Calories.Value
		protein += day.Totals.Protein.Value
		satFat += day.Totals.SaturatedFat.Value
		sugar += day.Totals.AddedSugar.Value
		sodium += day.Totals.Sodium.Value
		fiber += day.Totals.Fiber.Value

		if day.TDEE != nil {
			deficit += float64(day.TDEE.Value) - day.Totals.Calories.Value
			deficitDays++
		}
		if day.TargetProteinG != nil && *day.TargetProteinG > 0 {
			proteinPct += day.Totals.Protein.Value / float64(*day.TargetProteinG) * 100
			proteinDays++
		}
	}

	n := len(days)
	stats.Calories = mean(calories, n)
	stats.ProteinG = mean(protein, n)
	stats.SaturatedFatG = mean(satFat, n)
	stats.AddedSugarG = mean(sugar, n)
	stats.SodiumMG = mean(sodium, n)
	stats.FiberG = mean(fiber, n)
	stats.Deficit = mean(deficit, deficitDays)
	stats.ProteinPctOfTarget = mean(proteinPct, proteinDays)
	return stats
}

func mean(sum float64, days int) Mean {
	if days == 0 {
		return Mean{}
	}
	return Mean{Value: sum / float64(days), DaysTracked: days}
}

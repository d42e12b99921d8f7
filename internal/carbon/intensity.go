package carbon

import "math"

const (
	// GramsPerPound converts the lb CO2/MWh emission factors to grams.
	GramsPerPound = 453.592

	// KWhPerMWh converts per-MWh factors to per-kWh intensity.
	KWhPerMWh = 1000.0

	// DefaultIntensity is returned when a fuel mix has no generation.
	// It is a policy constant representing a moderate US grid, not a
	// measurement.
	DefaultIntensity = 500.0
)

// Intensity computes the weighted carbon intensity of a fuel mix in
// gCO2/kWh, rounded to one decimal place.
//
// Each fuel's emission factor (lb CO2/MWh) is weighted by its share of
// total generation, then converted to grams per kWh. An empty mix or one
// with zero total generation yields DefaultIntensity.
func Intensity(mix []FuelGeneration) float64 {
	var total float64
	for _, fuel := range mix {
		total += fuel.GenerationMWh
	}
	if total == 0 {
		return DefaultIntensity
	}

	var weightedLbPerMWh float64
	for _, fuel := range mix {
		weightedLbPerMWh += EmissionFactor(fuel.FuelType) * (fuel.GenerationMWh / total)
	}

	return round1(weightedLbPerMWh * GramsPerPound / KWhPerMWh)
}

// RenewableShare computes the percentage of generation from renewable
// fuels, rounded to one decimal place. Zero total generation yields 0.0.
func RenewableShare(mix []FuelGeneration) float64 {
	var total, renewable float64
	for _, fuel := range mix {
		total += fuel.GenerationMWh
		if IsRenewable(fuel.FuelType) {
			renewable += fuel.GenerationMWh
		}
	}
	if total == 0 {
		return 0.0
	}

	return round1(renewable / total * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

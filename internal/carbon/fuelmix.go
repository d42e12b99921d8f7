package carbon

import "sort"

// GenerationRecord is one raw per-fuel, per-period generation row from the
// provider. Value is already coerced to zero for null provider values.
type GenerationRecord struct {
	FuelType string
	Period   string
	ValueMWh float64
}

// ParseFuelMix reduces raw generation records to one FuelGeneration per fuel
// type for the most recent reporting period, with shares of total generation.
//
// For each fuel type only the record with the greatest period label is kept.
// Period labels are compared as strings, which orders them correctly because
// EIA hourly periods are fixed-width, zero-padded stamps ("2024-06-28T14");
// a payload mixing label widths breaks that assumption and is logged.
//
// A nil or zero-total result means "no usable data", never "zero carbon":
// ParseFuelMix returns an empty slice in that case and callers must not
// score it.
func ParseFuelMix(records []GenerationRecord) []FuelGeneration {
	type latest struct {
		generation float64
		period     string
	}
	byFuel := make(map[string]latest)

	periodWidth := -1
	for _, rec := range records {
		if periodWidth == -1 {
			periodWidth = len(rec.Period)
		} else if len(rec.Period) != periodWidth {
			logger.Warn().
				Str("period", rec.Period).
				Msg("mixed-width period labels; most-recent selection may be unreliable")
		}

		fuel := NormalizeFuelType(rec.FuelType)
		if fuel == "" {
			fuel = "unknown"
		}

		cur, seen := byFuel[fuel]
		if !seen || rec.Period > cur.period {
			byFuel[fuel] = latest{generation: rec.ValueMWh, period: rec.Period}
		}
	}

	var total float64
	for _, v := range byFuel {
		total += v.generation
	}
	if total == 0 {
		if len(records) > 0 {
			logger.Warn().Msg("zero total generation in provider data")
		}
		return nil
	}

	mix := make([]FuelGeneration, 0, len(byFuel))
	for fuel, v := range byFuel {
		mix = append(mix, FuelGeneration{
			FuelType:      fuel,
			GenerationMWh: v.generation,
			Percentage:    v.generation / total * 100,
		})
	}

	// Largest generation first; fuel code breaks ties so output is stable.
	sort.Slice(mix, func(i, j int) bool {
		if mix[i].GenerationMWh != mix[j].GenerationMWh {
			return mix[i].GenerationMWh > mix[j].GenerationMWh
		}
		return mix[i].FuelType < mix[j].FuelType
	})

	return mix
}

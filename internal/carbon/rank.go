package carbon

import "sort"

// TopFuelSources is how many fuel-mix rows a ranking entry carries.
const TopFuelSources = 5

// RankEntry is one region's position in a greenest-first ranking.
type RankEntry struct {
	// Rank is 1-based; rank 1 is the lowest-carbon region.
	Rank int

	// Reading is the underlying measurement with its fuel mix truncated
	// to the TopFuelSources largest rows.
	Reading CarbonReading
}

// Rank sorts readings ascending by carbon intensity and assigns 1-based
// ranks. The sort is stable: ties keep their input order, and identical
// input always produces identical output.
func Rank(readings []CarbonReading) []RankEntry {
	sorted := make([]CarbonReading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CarbonIntensity < sorted[j].CarbonIntensity
	})

	entries := make([]RankEntry, 0, len(sorted))
	for i, reading := range sorted {
		if len(reading.FuelMix) > TopFuelSources {
			reading.FuelMix = reading.FuelMix[:TopFuelSources]
		}
		entries = append(entries, RankEntry{Rank: i + 1, Reading: reading})
	}
	return entries
}

// Greenest returns the region with the lowest carbon intensity, or
// ("", false) when there are no readings.
func Greenest(readings []CarbonReading) (string, bool) {
	ranked := Rank(readings)
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Reading.Region, true
}

// Package carbon computes grid carbon intensity from hourly fuel-mix data.
//
// Generation data is reported by the EIA per balancing authority in MWh by
// fuel type. Readings are scored with EPA eGRID emission factors and ranked
// so callers can pick the lowest-carbon compute region.
package carbon

import (
	"time"

	"github.com/rs/zerolog"
)

// logger is used for parse warnings inside the package. It is a no-op until
// SetLogger is called during startup.
var logger = zerolog.Nop()

// SetLogger sets the package-level logger used for fuel-mix parsing
// diagnostics. Call once during initialization, before any parsing.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// FuelGeneration is one fuel type's contribution to a balancing authority's
// generation for the most recent reporting hour. Percentage is derived from
// GenerationMWh at parse time and is never set independently.
type FuelGeneration struct {
	// FuelType is the normalized EIA fuel code (e.g., "ng", "wnd", "col").
	FuelType string

	// GenerationMWh is the reported generation in megawatt-hours.
	GenerationMWh float64

	// Percentage is this fuel's share of total generation (0-100).
	Percentage float64
}

// CarbonReading is the computed carbon profile of one compute region.
//
// CarbonIntensity and RenewablePercent are always derived from FuelMix plus
// the static emission factor table; they are never set independently of it.
type CarbonReading struct {
	// Region is the compute region identifier (e.g., "us-west1").
	Region string

	// BalancingAuthority is the EIA respondent whose fuel mix was used.
	BalancingAuthority string

	// CarbonIntensity is in grams CO2 per kWh.
	CarbonIntensity float64

	// RenewablePercent is the share of generation from renewable fuels (0-100).
	RenewablePercent float64

	// FuelMix is ordered by generation descending. The percentages sum to
	// ~100 whenever the slice is non-empty.
	FuelMix []FuelGeneration

	// CapturedAt is when the reading was computed.
	CapturedAt time.Time

	// DataHour labels the hour of grid data the reading represents.
	DataHour string
}

package carbon

// FallbackPolicy holds the degraded-mode constants substituted when live
// data is unavailable. The sentinel BalancingAuthority and DataHour values
// keep fallbacks distinguishable from genuine measurements.
type FallbackPolicy struct {
	// CarbonIntensity is a moderate US grid estimate in gCO2/kWh.
	CarbonIntensity float64

	// RenewablePercent is a moderate renewable-share estimate.
	RenewablePercent float64

	// BalancingAuthority marks the reading as not backed by grid data.
	BalancingAuthority string

	// DataHourNoData labels a lookup that completed but found no data.
	DataHourNoData string

	// DataHourError labels a lookup that failed outright.
	DataHourError string

	// DefaultRegion is the known-clean region used when the whole fleet
	// ranking comes back empty.
	DefaultRegion string
}

// Fallback is the policy used across the service.
var Fallback = FallbackPolicy{
	CarbonIntensity:    350.0,
	RenewablePercent:   30.0,
	BalancingAuthority: "unknown",
	DataHourNoData:     "estimated",
	DataHourError:      "error",
	DefaultRegion:      "us-west1", // Oregon, typically hydro-heavy
}

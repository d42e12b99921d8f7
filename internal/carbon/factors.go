package carbon

import "strings"

// EmissionFactors maps normalized fuel-type codes to emission factors.
// Values are in lb CO2 per MWh.
//
// Source: EPA eGRID 2021 data, keyed by EIA API fuel codes plus the
// alternate spellings that show up in some respondents' data.
//
// To update these values, run:
//
//	go run ./tools/update-emission-factors
var EmissionFactors = map[string]float64{
	// EIA fuel codes
	"col": 2249, // coal
	"pet": 1672, // petroleum
	"ng":  898,  // natural gas
	"oth": 500,  // other/unknown, conservative estimate
	"nuc": 0,    // nuclear
	"wat": 0,    // conventional hydroelectric
	"ps":  0,    // pumped storage hydro
	"wnd": 0,    // wind
	"sun": 0,    // solar
	"geo": 0,    // geothermal
	"bio": 230,  // biomass
	"bat": 0,    // battery storage, assume grid-charged

	// Alternate spellings
	"oil":         1672,
	"gas":         898,
	"hydro":       0,
	"wind":        0,
	"solar":       0,
	"nuclear":     0,
	"coal":        2249,
	"natural_gas": 898,
	"biomass":     230,
	"geothermal":  0,
	"other":       500,
}

// DefaultEmissionFactor is used for fuel codes missing from EmissionFactors.
// It fails closed toward over-estimating emissions, never under-estimating.
const DefaultEmissionFactor = 500.0

// renewableFuels is the set of fuel codes counted toward the renewable share.
var renewableFuels = map[string]bool{
	"wnd": true, // wind
	"sun": true, // solar
	"wat": true, // conventional hydroelectric
	"ps":  true, // pumped storage hydro
	"geo": true, // geothermal
	"bio": true, // biomass

	// Alternate spellings
	"wind":       true,
	"solar":      true,
	"hydro":      true,
	"geothermal": true,
	"biomass":    true,
}

// NormalizeFuelType lowercases a raw provider fuel code and unifies
// separator characters so lookups hit the factor table.
func NormalizeFuelType(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// EmissionFactor returns the lb CO2/MWh factor for a normalized fuel code,
// or DefaultEmissionFactor when the code is unknown.
func EmissionFactor(fuelType string) float64 {
	if factor, ok := EmissionFactors[fuelType]; ok {
		return factor
	}
	return DefaultEmissionFactor
}

// IsRenewable reports whether a normalized fuel code counts as renewable.
func IsRenewable(fuelType string) bool {
	return renewableFuels[fuelType]
}

// Package main provides a tool to update per-fuel emission factors from the
// EPA eGRID power profiler dataset.
//
// The tool fetches the latest per-fuel output emission rates and regenerates
// the internal/carbon/factors.go file with the new values.
//
// Usage:
//
//	go run ./tools/update-emission-factors [--dry-run] [--validate]
//
// Flags:
//
//	--dry-run   Print changes without writing to file
//	--validate  Validate the fetched values are within expected range
//	--output    Path to factors.go (default: ./internal/carbon/factors.go)
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// eGRID per-fuel output emission rates, published annually.
	// https://www.epa.gov/egrid/power-profiler
	egridFactorsURL = "https://www.epa.gov/system/files/other-files/egrid-fuel-output-emission-rates.json"

	// Valid range for per-fuel factors (lb CO2 per MWh).
	// Zero is legitimate for nuclear, hydro, wind, solar, and geothermal.
	minValidFactor = 0.0
	maxValidFactor = 3000.0

	defaultFactor = 500.0 // conservative estimate for unknown fuels

	// Template for generating factors.go
	fileTemplate = `package carbon

import "strings"

// EmissionFactors maps normalized fuel-type codes to emission factors.
// Values are in lb CO2 per MWh.
//
// Source: EPA eGRID %s data, keyed by EIA API fuel codes plus the
// alternate spellings that show up in some respondents' data.
//
// To update these values, run:
//
//	go run ./tools/update-emission-factors
var EmissionFactors = map[string]float64{
	// EIA fuel codes
%s
	// Alternate spellings
%s}

// DefaultEmissionFactor is used for fuel codes missing from EmissionFactors.
// It fails closed toward over-estimating emissions, never under-estimating.
const DefaultEmissionFactor = %.1f

// renewableFuels is the set of fuel codes counted toward the renewable share.
var renewableFuels = map[string]bool{
%s
	// Alternate spellings
%s}

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
`
)

// FuelFactor describes one EIA fuel code: its emission factor, the alternate
// spellings that should resolve to the same factor, and whether the fuel
// counts toward the renewable share.
type FuelFactor struct {
	Code       string
	Factor     float64
	Note       string
	Renewable  bool
	Alternates []string
}

// egridFuelRate is one record of EPA's per-fuel output emission rates JSON.
type egridFuelRate struct {
	Fuel        string  `json:"fuel"`
	LbCO2PerMWh float64 `json:"lbCO2PerMwh"`
}

func main() {
	dryRun := flag.Bool("dry-run", false, "Print changes without writing to file")
	validate := flag.Bool("validate", true, "Validate fetched values are within expected range")
	output := flag.String("output", "./internal/carbon/factors.go", "Path to factors.go")
	flag.Parse()

	fmt.Println("Fetching EPA eGRID per-fuel emission factors...")
	fmt.Printf("Source: %s\n", egridFactorsURL)

	factors := getDefaultFactors()

	fetched, err := fetchFuelRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching fuel rates: %v\n", err)
		fmt.Println("Using default/existing values instead...")
	} else {
		applyRates(factors, fetched)
	}

	if *validate {
		if err := validateFactors(factors); err != nil {
			fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Validation passed")
	}

	content := generateFactorsFile(factors)

	if *dryRun {
		fmt.Println("\n--- Dry run output ---")
		fmt.Println(content)
		return
	}

	if err := os.WriteFile(*output, []byte(content), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Updated %s with %d fuel codes\n", *output, len(factors))
	fmt.Println("Run 'go test ./internal/carbon/...' to verify the changes")
}

// fetchFuelRates fetches per-fuel emission rates from EPA.
func fetchFuelRates() ([]egridFuelRate, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	resp, err := client.Get(egridFactorsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fuel rates: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var rates []egridFuelRate
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	return rates, nil
}

// applyRates overlays fetched rates onto the default table, matching by
// fuel code. Fuels absent from the fetched data keep their defaults.
func applyRates(factors []*FuelFactor, rates []egridFuelRate) {
	byCode := make(map[string]float64, len(rates))
	for _, r := range rates {
		byCode[strings.ToLower(r.Fuel)] = r.LbCO2PerMWh
	}
	for _, f := range factors {
		if v, ok := byCode[f.Code]; ok {
			f.Factor = v
		}
	}
}

// getDefaultFactors returns the current factor table.
// This is used as a fallback if the EPA endpoint is unavailable.
func getDefaultFactors() []*FuelFactor {
	return []*FuelFactor{
		{Code: "col", Factor: 2249, Note: "coal", Alternates: []string{"coal"}},
		{Code: "pet", Factor: 1672, Note: "petroleum", Alternates: []string{"oil"}},
		{Code: "ng", Factor: 898, Note: "natural gas", Alternates: []string{"gas", "natural_gas"}},
		{Code: "oth", Factor: 500, Note: "other/unknown, conservative estimate", Alternates: []string{"other"}},
		{Code: "nuc", Factor: 0, Note: "nuclear", Alternates: []string{"nuclear"}},
		{Code: "wat", Factor: 0, Note: "conventional hydroelectric", Renewable: true, Alternates: []string{"hydro"}},
		{Code: "ps", Factor: 0, Note: "pumped storage hydro", Renewable: true},
		{Code: "wnd", Factor: 0, Note: "wind", Renewable: true, Alternates: []string{"wind"}},
		{Code: "sun", Factor: 0, Note: "solar", Renewable: true, Alternates: []string{"solar"}},
		{Code: "geo", Factor: 0, Note: "geothermal", Renewable: true, Alternates: []string{"geothermal"}},
		{Code: "bio", Factor: 230, Note: "biomass", Renewable: true, Alternates: []string{"biomass"}},
		{Code: "bat", Factor: 0, Note: "battery storage, assume grid-charged"},
	}
}

// validateFactors validates that all factors are within expected range.
func validateFactors(factors []*FuelFactor) error {
	var errors []string

	for _, f := range factors {
		if f.Factor < minValidFactor || f.Factor > maxValidFactor {
			errors = append(errors, fmt.Sprintf(
				"%s: factor %.1f is outside valid range [%.1f, %.1f]",
				f.Code, f.Factor, minValidFactor, maxValidFactor,
			))
		}
		if f.Renewable && f.Factor > 300 {
			errors = append(errors, fmt.Sprintf(
				"%s: factor %.1f is implausibly high for a renewable fuel",
				f.Code, f.Factor,
			))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}

// generateFactorsFile generates the factors.go file content.
// Fuel codes keep their declaration order so diffs stay reviewable.
func generateFactorsFile(factors []*FuelFactor) string {
	var codes, alternates, renewables, renewableAlts strings.Builder

	for _, f := range factors {
		codes.WriteString(fmt.Sprintf("\t%-5s %.0f, // %s\n",
			fmt.Sprintf("%q:", f.Code), f.Factor, f.Note))
		for _, alt := range f.Alternates {
			alternates.WriteString(fmt.Sprintf("\t%q: %.0f,\n", alt, f.Factor))
		}
		if f.Renewable {
			renewables.WriteString(fmt.Sprintf("\t%-6s true, // %s\n",
				fmt.Sprintf("%q:", f.Code), f.Note))
			for _, alt := range f.Alternates {
				renewableAlts.WriteString(fmt.Sprintf("\t%q: true,\n", alt))
			}
		}
	}

	vintage := time.Now().Format("2006")

	return fmt.Sprintf(fileTemplate, vintage,
		codes.String(), alternates.String(), defaultFactor,
		renewables.String(), renewableAlts.String())
}

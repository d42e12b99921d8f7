// Package catalog maps compute regions to the EIA balancing authorities
// whose fuel mix is used to score them.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Region maps a compute-region identifier to a grid balancing authority.
type Region struct {
	// ID is the compute region identifier (e.g., "us-west1").
	ID string `yaml:"id"`

	// BalancingAuthority is the EIA respondent code (e.g., "BPAT").
	BalancingAuthority string `yaml:"balancing_authority"`

	// Label is a human-readable grid description.
	Label string `yaml:"label"`
}

// Catalog is a read-only region lookup table, loaded once at startup.
type Catalog struct {
	byID  map[string]Region
	order []string
}

// defaultRegions maps GCP regions to EIA balancing authorities based on
// actual datacenter locations.
var defaultRegions = []Region{
	{ID: "us-west1", BalancingAuthority: "BPAT", Label: "Pacific Northwest"}, // The Dalles, Oregon
	{ID: "us-west2", BalancingAuthority: "CISO", Label: "California"},        // Los Angeles
	{ID: "us-west3", BalancingAuthority: "PACE", Label: "Utah"},              // Salt Lake City
	{ID: "us-west4", BalancingAuthority: "NEVP", Label: "Nevada"},            // Las Vegas
	{ID: "us-central1", BalancingAuthority: "MISO", Label: "Iowa/MISO"},      // Council Bluffs
	{ID: "us-south1", BalancingAuthority: "ERCO", Label: "Texas"},            // Dallas
	{ID: "us-east1", BalancingAuthority: "SCEG", Label: "Southeast"},         // Moncks Corner, SC
	{ID: "us-east4", BalancingAuthority: "PJM", Label: "Mid-Atlantic"},       // Ashburn, Virginia
	{ID: "us-east5", BalancingAuthority: "PJM", Label: "Ohio Valley"},        // Columbus
}

// Default returns the built-in region catalog.
func Default() *Catalog {
	return build(defaultRegions)
}

// Load reads a region catalog from a YAML file. The file replaces the
// built-in catalog wholesale; there is no per-region merging.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read region catalog: %w", err)
	}

	var doc struct {
		Regions []Region `yaml:"regions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse region catalog: %w", err)
	}
	if len(doc.Regions) == 0 {
		return nil, fmt.Errorf("region catalog %s defines no regions", path)
	}
	for _, r := range doc.Regions {
		if r.ID == "" || r.BalancingAuthority == "" {
			return nil, fmt.Errorf("region catalog %s has an entry missing id or balancing_authority", path)
		}
	}

	return build(doc.Regions), nil
}

func build(regions []Region) *Catalog {
	c := &Catalog{byID: make(map[string]Region, len(regions))}
	for _, r := range regions {
		if _, dup := c.byID[r.ID]; dup {
			continue
		}
		c.byID[r.ID] = r
		c.order = append(c.order, r.ID)
	}
	return c
}

// Lookup returns the mapping for a region identifier.
func (c *Catalog) Lookup(id string) (Region, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Regions returns all cataloged regions in their declaration order.
func (c *Catalog) Regions() []Region {
	out := make([]Region, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of cataloged regions.
func (c *Catalog) Len() int {
	return len(c.order)
}

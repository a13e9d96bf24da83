// pkg/catalog/catalog.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"franchise-estimator/internal/reference"

	"github.com/xeipuuv/gojsonschema"
)

// Load reads, validates and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse validates raw JSON against the embedded schema before decoding it.
func Parse(data []byte) (*Catalog, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &c, nil
}

// Validate checks raw JSON against the catalog schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Reference builds the lookup tables. Franchise order follows the file.
func (c *Catalog) Reference() (*reference.Data, error) {
	franchises := make([]reference.Franchise, 0, len(c.Franchises))
	for _, f := range c.Franchises {
		franchises = append(franchises, reference.Franchise{Key: f.Key, Profile: f.FranchiseProfile})
	}
	return reference.New(franchises, c.CityTiers, c.Presets)
}

// FromReference exports reference data in catalog form.
func FromReference(d *reference.Data) *Catalog {
	c := &Catalog{
		Version:     "1.0.0",
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		CityTiers:   make(map[reference.CityTier]float64),
		Presets:     make(map[string]reference.CategoryMultipliers),
	}
	for _, key := range d.FranchiseKeys() {
		p, _ := d.Franchise(key)
		c.Franchises = append(c.Franchises, Franchise{Key: key, FranchiseProfile: p})
	}
	for _, tier := range d.KnownCityTiers() {
		c.CityTiers[tier], _ = d.CityMultiplier(tier)
	}
	for _, name := range d.PresetNames() {
		c.Presets[name], _ = d.Preset(name)
	}
	return c
}

// LoadReference returns the built-in tables when path is empty, else the
// tables from the catalog file.
func LoadReference(path string) (*reference.Data, error) {
	if path == "" {
		return reference.Default(), nil
	}
	c, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	d, err := c.Reference()
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return d, nil
}

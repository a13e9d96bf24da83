// Package reference holds the static lookup tables of the estimator:
// franchise cost profiles, city-tier multipliers and multiplier presets.
//
// A Data value is built once at startup and never mutated afterwards; it is
// passed explicitly to the calculator and the comparison assembler.
package reference

import (
	"fmt"
	"sort"
)

// PerAreaCost is the cost of one square meter per build-out category.
type PerAreaCost struct {
	Renovation float64 `json:"renovation"`
	Equipment  float64 `json:"equipment"`
	Furniture  float64 `json:"furniture"`
}

// FranchiseProfile is the static cost template for one franchise type.
type FranchiseProfile struct {
	FlatFee                      float64     `json:"flatFee"`
	PerAreaCost                  PerAreaCost `json:"perAreaCost"`
	BaseMonthlySalaryPerEmployee float64     `json:"baseMonthlySalaryPerEmployee"`
	BaseMarketingBudget          float64     `json:"baseMarketingBudget"`
}

func (p FranchiseProfile) validate() error {
	fields := map[string]float64{
		"flatFee":                      p.FlatFee,
		"perAreaCost.renovation":       p.PerAreaCost.Renovation,
		"perAreaCost.equipment":        p.PerAreaCost.Equipment,
		"perAreaCost.furniture":        p.PerAreaCost.Furniture,
		"baseMonthlySalaryPerEmployee": p.BaseMonthlySalaryPerEmployee,
		"baseMarketingBudget":          p.BaseMarketingBudget,
	}
	for name, v := range fields {
		if v < 0 {
			return fmt.Errorf("%s must be non-negative, got %v", name, v)
		}
	}
	return nil
}

// CityTier is a cost-of-living bracket.
type CityTier string

const (
	CitySmall    CityTier = "small"
	CityRegional CityTier = "regional"
	CityBig      CityTier = "big"
	CityCapital  CityTier = "capital"
)

// CityTiers lists the closed set of tiers in ascending cost order.
var CityTiers = []CityTier{CitySmall, CityRegional, CityBig, CityCapital}

// Data is the process-wide reference data.
type Data struct {
	franchises     map[string]FranchiseProfile
	franchiseOrder []string
	cityTiers      map[CityTier]float64
	presets        map[string]CategoryMultipliers
}

// Franchise is a named profile, used to build Data in a fixed order.
type Franchise struct {
	Key     string
	Profile FranchiseProfile
}

// New builds and validates reference data. Franchise order is preserved for
// option lists; presets must include PresetBasic.
func New(franchises []Franchise, cityTiers map[CityTier]float64, presets map[string]CategoryMultipliers) (*Data, error) {
	d := &Data{
		franchises: make(map[string]FranchiseProfile, len(franchises)),
		cityTiers:  make(map[CityTier]float64, len(cityTiers)),
		presets:    make(map[string]CategoryMultipliers, len(presets)),
	}

	for _, f := range franchises {
		if f.Key == "" {
			return nil, fmt.Errorf("franchise key must not be empty")
		}
		if _, dup := d.franchises[f.Key]; dup {
			return nil, fmt.Errorf("duplicate franchise %q", f.Key)
		}
		if err := f.Profile.validate(); err != nil {
			return nil, fmt.Errorf("franchise %q: %w", f.Key, err)
		}
		d.franchises[f.Key] = f.Profile
		d.franchiseOrder = append(d.franchiseOrder, f.Key)
	}

	for tier, mult := range cityTiers {
		if mult <= 0 {
			return nil, fmt.Errorf("city tier %q: multiplier must be positive, got %v", tier, mult)
		}
		d.cityTiers[tier] = mult
	}

	for name, m := range presets {
		if err := m.validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		d.presets[name] = m
	}
	if _, ok := d.presets[PresetBasic]; !ok {
		return nil, fmt.Errorf("preset %q is required", PresetBasic)
	}

	return d, nil
}

// Default returns the built-in tables.
func Default() *Data {
	d, err := New(DefaultFranchises(), DefaultCityTiers(), DefaultPresets())
	if err != nil {
		panic(fmt.Sprintf("reference: built-in tables are invalid: %v", err))
	}
	return d
}

// DefaultFranchises are demonstration profiles, in UAH.
func DefaultFranchises() []Franchise {
	return []Franchise{
		{Key: "Coffee Shop", Profile: FranchiseProfile{
			FlatFee:                      20000,
			PerAreaCost:                  PerAreaCost{Renovation: 120, Equipment: 400, Furniture: 80},
			BaseMonthlySalaryPerEmployee: 12000,
			BaseMarketingBudget:          4000,
		}},
		{Key: "Clothing Store", Profile: FranchiseProfile{
			FlatFee:                      30000,
			PerAreaCost:                  PerAreaCost{Renovation: 100, Equipment: 250, Furniture: 120},
			BaseMonthlySalaryPerEmployee: 10000,
			BaseMarketingBudget:          6000,
		}},
		{Key: "Service Center", Profile: FranchiseProfile{
			FlatFee:                      25000,
			PerAreaCost:                  PerAreaCost{Renovation: 150, Equipment: 500, Furniture: 60},
			BaseMonthlySalaryPerEmployee: 14000,
			BaseMarketingBudget:          3000,
		}},
	}
}

func DefaultCityTiers() map[CityTier]float64 {
	return map[CityTier]float64{
		CitySmall:    0.8,
		CityRegional: 1.0,
		CityBig:      1.4,
		CityCapital:  1.8,
	}
}

// Franchise looks up a profile by key.
func (d *Data) Franchise(key string) (FranchiseProfile, bool) {
	p, ok := d.franchises[key]
	return p, ok
}

// FranchiseKeys returns the keys in declaration order.
func (d *Data) FranchiseKeys() []string {
	out := make([]string, len(d.franchiseOrder))
	copy(out, d.franchiseOrder)
	return out
}

// CityMultiplier returns the multiplier for tier and whether the tier is
// known. Unknown tiers report 1.0.
func (d *Data) CityMultiplier(tier CityTier) (float64, bool) {
	if m, ok := d.cityTiers[tier]; ok {
		return m, true
	}
	return 1.0, false
}

// KnownCityTiers returns the configured tiers sorted by multiplier.
func (d *Data) KnownCityTiers() []CityTier {
	out := make([]CityTier, 0, len(d.cityTiers))
	for t := range d.cityTiers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if d.cityTiers[out[i]] == d.cityTiers[out[j]] {
			return out[i] < out[j]
		}
		return d.cityTiers[out[i]] < d.cityTiers[out[j]]
	})
	return out
}

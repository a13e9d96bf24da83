package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Tables(t *testing.T) {
	d := Default()

	assert.Equal(t, []string{"Coffee Shop", "Clothing Store", "Service Center"}, d.FranchiseKeys())

	coffee, ok := d.Franchise("Coffee Shop")
	require.True(t, ok)
	assert.Equal(t, 20000.0, coffee.FlatFee)
	assert.Equal(t, PerAreaCost{Renovation: 120, Equipment: 400, Furniture: 80}, coffee.PerAreaCost)
	assert.Equal(t, 12000.0, coffee.BaseMonthlySalaryPerEmployee)
	assert.Equal(t, 4000.0, coffee.BaseMarketingBudget)

	_, ok = d.Franchise("Bakery")
	assert.False(t, ok)

	assert.Equal(t, []CityTier{CitySmall, CityRegional, CityBig, CityCapital}, d.KnownCityTiers())
}

func TestCityMultiplier_UnknownTierIsIdentity(t *testing.T) {
	d := Default()

	m, ok := d.CityMultiplier(CityCapital)
	assert.True(t, ok)
	assert.Equal(t, 1.8, m)

	m, ok = d.CityMultiplier("metropolis")
	assert.False(t, ok)
	assert.Equal(t, 1.0, m)
}

func TestNew_RejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name       string
		franchises []Franchise
		tiers      map[CityTier]float64
		presets    map[string]CategoryMultipliers
		wantErr    string
	}{
		{
			name:       "negative money",
			franchises: []Franchise{{Key: "Kiosk", Profile: FranchiseProfile{FlatFee: -1}}},
			tiers:      DefaultCityTiers(),
			presets:    DefaultPresets(),
			wantErr:    "flatFee must be non-negative",
		},
		{
			name:       "duplicate franchise",
			franchises: []Franchise{{Key: "Kiosk"}, {Key: "Kiosk"}},
			tiers:      DefaultCityTiers(),
			presets:    DefaultPresets(),
			wantErr:    `duplicate franchise "Kiosk"`,
		},
		{
			name:       "zero city multiplier",
			franchises: DefaultFranchises(),
			tiers:      map[CityTier]float64{CitySmall: 0},
			presets:    DefaultPresets(),
			wantErr:    "multiplier must be positive",
		},
		{
			name:       "missing basic preset",
			franchises: DefaultFranchises(),
			tiers:      DefaultCityTiers(),
			presets:    map[string]CategoryMultipliers{PresetPremium: DefaultPresets()[PresetPremium]},
			wantErr:    `preset "basic" is required`,
		},
		{
			name:       "non-positive preset field",
			franchises: DefaultFranchises(),
			tiers:      DefaultCityTiers(),
			presets:    map[string]CategoryMultipliers{PresetBasic: {Renovation: 1}},
			wantErr:    "multiplier must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.franchises, tt.tiers, tt.presets)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCategoryMultipliers_WithDefaults(t *testing.T) {
	m := CategoryMultipliers{Equipment: 1.25, Salary: -2}.WithDefaults()

	assert.Equal(t, CategoryMultipliers{Renovation: 1, Equipment: 1.25, Furniture: 1, Marketing: 1, Salary: 1}, m)
	assert.Equal(t, Identity(), CategoryMultipliers{}.WithDefaults())
	assert.True(t, CategoryMultipliers{}.IsZero())
	assert.False(t, Identity().IsZero())
}

func TestPresets(t *testing.T) {
	d := Default()

	assert.Equal(t, []string{PresetBasic, PresetExtended, PresetPremium}, d.PresetNames())

	basic, ok := d.Preset(PresetBasic)
	assert.True(t, ok)
	assert.Equal(t, Identity(), basic)

	fallback, ok := d.Preset("luxury")
	assert.False(t, ok)
	assert.Equal(t, basic, fallback)

	ext, _ := d.Preset(PresetExtended)
	prem, _ := d.Preset(PresetPremium)
	for _, pair := range [][3]float64{
		{basic.Renovation, ext.Renovation, prem.Renovation},
		{basic.Equipment, ext.Equipment, prem.Equipment},
		{basic.Furniture, ext.Furniture, prem.Furniture},
		{basic.Marketing, ext.Marketing, prem.Marketing},
		{basic.Salary, ext.Salary, prem.Salary},
	} {
		assert.Less(t, pair[0], pair[1])
		assert.Less(t, pair[1], pair[2])
	}
}

func TestPositionalPreset(t *testing.T) {
	assert.Equal(t, PresetBasic, PositionalPreset(0))
	assert.Equal(t, PresetExtended, PositionalPreset(1))
	assert.Equal(t, PresetPremium, PositionalPreset(2))
	assert.Equal(t, PresetBasic, PositionalPreset(3))
	assert.Equal(t, PresetBasic, PositionalPreset(-1))
}

func TestResolve(t *testing.T) {
	d := Default()
	ext := DefaultPresets()[PresetExtended]

	m, tag := d.Resolve(&CategoryMultipliers{Marketing: 2}, "")
	assert.Equal(t, CategoryMultipliers{Renovation: 1, Equipment: 1, Furniture: 1, Marketing: 2, Salary: 1}, m)
	assert.Equal(t, PresetCustom, tag)

	m, tag = d.Resolve(&CategoryMultipliers{}, PresetExtended)
	assert.Equal(t, ext, m)
	assert.Equal(t, PresetExtended, tag)

	m, tag = d.Resolve(nil, "luxury")
	assert.Equal(t, Identity(), m)
	assert.Equal(t, PresetBasic, tag)

	m, tag = d.Resolve(nil, "")
	assert.Equal(t, Identity(), m)
	assert.Equal(t, PresetBasic, tag)
}

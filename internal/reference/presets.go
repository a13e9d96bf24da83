package reference

import (
	"fmt"
	"sort"
)

// CategoryMultipliers scales each cost category independently. All five
// fields are always present; a non-positive field means "unset" and is read
// as 1.0 by WithDefaults.
type CategoryMultipliers struct {
	Renovation float64 `json:"renovation"`
	Equipment  float64 `json:"equipment"`
	Furniture  float64 `json:"furniture"`
	Marketing  float64 `json:"marketing"`
	Salary     float64 `json:"salary"`
}

// Identity returns all-1.0 multipliers.
func Identity() CategoryMultipliers {
	return CategoryMultipliers{Renovation: 1, Equipment: 1, Furniture: 1, Marketing: 1, Salary: 1}
}

// WithDefaults replaces every non-positive field with 1.0.
func (m CategoryMultipliers) WithDefaults() CategoryMultipliers {
	def := func(v float64) float64 {
		if v <= 0 {
			return 1
		}
		return v
	}
	return CategoryMultipliers{
		Renovation: def(m.Renovation),
		Equipment:  def(m.Equipment),
		Furniture:  def(m.Furniture),
		Marketing:  def(m.Marketing),
		Salary:     def(m.Salary),
	}
}

// IsZero reports whether no field was set.
func (m CategoryMultipliers) IsZero() bool {
	return m == CategoryMultipliers{}
}

func (m CategoryMultipliers) validate() error {
	for name, v := range map[string]float64{
		"renovation": m.Renovation,
		"equipment":  m.Equipment,
		"furniture":  m.Furniture,
		"marketing":  m.Marketing,
		"salary":     m.Salary,
	} {
		if v <= 0 {
			return fmt.Errorf("%s multiplier must be positive, got %v", name, v)
		}
	}
	return nil
}

// Built-in preset names.
const (
	PresetBasic    = "basic"
	PresetExtended = "extended"
	PresetPremium  = "premium"
	// PresetCustom tags a slot whose multipliers came from a saved scenario.
	PresetCustom = "custom"
)

func DefaultPresets() map[string]CategoryMultipliers {
	return map[string]CategoryMultipliers{
		PresetBasic:    Identity(),
		PresetExtended: {Renovation: 1.15, Equipment: 1.25, Furniture: 1.1, Marketing: 1.3, Salary: 1.1},
		PresetPremium:  {Renovation: 1.4, Equipment: 1.6, Furniture: 1.3, Marketing: 1.8, Salary: 1.25},
	}
}

// positionalPresets are used for comparison slots the user never configured.
var positionalPresets = []string{PresetBasic, PresetExtended, PresetPremium}

// Preset returns the named preset, falling back to basic for unknown names.
// The boolean reports whether name was found.
func (d *Data) Preset(name string) (CategoryMultipliers, bool) {
	if m, ok := d.presets[name]; ok {
		return m, true
	}
	return d.presets[PresetBasic], false
}

// Resolve picks explicit multipliers when any field is set, else the named
// preset, else basic. The returned tag names the source: the given preset,
// PresetCustom for untagged explicit multipliers, or PresetBasic.
func (d *Data) Resolve(explicit *CategoryMultipliers, preset string) (CategoryMultipliers, string) {
	if explicit != nil && !explicit.IsZero() {
		if preset == "" {
			preset = PresetCustom
		}
		return explicit.WithDefaults(), preset
	}
	m, ok := d.Preset(preset)
	if !ok {
		return m, PresetBasic
	}
	return m, preset
}

// PositionalPreset returns the default preset name for slot index i.
func PositionalPreset(i int) string {
	if i < 0 || i >= len(positionalPresets) {
		return PresetBasic
	}
	return positionalPresets[i]
}

// PresetNames returns the configured preset names in a stable order: the
// built-in ones first, then the rest alphabetically.
func (d *Data) PresetNames() []string {
	out := make([]string, 0, len(d.presets))
	for _, name := range positionalPresets {
		if _, ok := d.presets[name]; ok {
			out = append(out, name)
		}
	}
	var extra []string
	for name := range d.presets {
		if name != PresetBasic && name != PresetExtended && name != PresetPremium {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

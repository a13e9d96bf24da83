// Package comparison lays out up to three estimates side by side.
package comparison

import (
	"math"
	"strconv"
	"strings"

	apperrors "franchise-estimator/internal/common/errors"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/common/metrics"
	"franchise-estimator/internal/estimator"
	"franchise-estimator/internal/reference"
)

// MaxSlots is the number of comparison columns.
const MaxSlots = 3

// SlotNames are the default column names, by position.
var SlotNames = [MaxSlots]string{"A", "B", "C"}

// SharedInputs are the form values every slot is computed with.
type SharedInputs struct {
	FranchiseKey       string             `json:"franchiseKey"`
	CityTier           reference.CityTier `json:"cityTier"`
	Area               float64            `json:"area"`
	EmployeeCount      int                `json:"employeeCount"`
	ContingencyPercent float64            `json:"contingencyPercent"`
}

// Slot is one column request. Multipliers win over Preset, and Preset wins
// over the positional default for the slot's index.
type Slot struct {
	Name        string                         `json:"name,omitempty"`
	Preset      string                         `json:"preset,omitempty"`
	Multipliers *reference.CategoryMultipliers `json:"multipliers,omitempty"`
}

type Column struct {
	Name        string                        `json:"name"`
	Preset      string                        `json:"preset"`
	Multipliers reference.CategoryMultipliers `json:"multipliers"`
	Breakdown   estimator.Breakdown           `json:"breakdown"`
}

// Row holds one category across all columns, rounded for display.
type Row struct {
	Category estimator.Category `json:"category"`
	Label    string             `json:"label"`
	Values   []float64          `json:"values"`
}

type Result struct {
	Columns  []Column                    `json:"columns"`
	Rows     []Row                       `json:"rows"`
	Warnings []*apperrors.StandardError `json:"warnings,omitempty"`
}

// Assembler builds comparison tables with a shared Calculator.
type Assembler struct {
	calc *estimator.Calculator
	log  logger.Logger
}

func NewAssembler(calc *estimator.Calculator, log logger.Logger) *Assembler {
	return &Assembler{calc: calc, log: log}
}

// ResolveMultipliers returns the multipliers and preset tag for the slot at
// index i.
func (a *Assembler) ResolveMultipliers(i int, s Slot) (reference.CategoryMultipliers, string) {
	ref := a.calc.Reference()

	if (s.Multipliers != nil && !s.Multipliers.IsZero()) || s.Preset != "" {
		return ref.Resolve(s.Multipliers, s.Preset)
	}

	name := reference.PositionalPreset(i)
	m, _ := ref.Preset(name)
	return m, name
}

// SlotIndex maps a slot letter (case-insensitive) to its position.
func SlotIndex(name string) (int, bool) {
	for i, n := range SlotNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return i, true
		}
	}
	return -1, false
}

// Compare computes every slot against the shared inputs. An empty slot list
// means three unconfigured slots. The shared inputs are validated once, so an
// unknown franchise fails the whole comparison; a slot that still fails on
// its own is left out of the result.
func (a *Assembler) Compare(shared SharedInputs, slots []Slot) (*Result, error) {
	if len(slots) > MaxSlots {
		return nil, apperrors.NewTooManySlotsError(len(slots), MaxSlots)
	}
	if len(slots) == 0 {
		slots = make([]Slot, MaxSlots)
	}

	probe, err := a.calc.Compute(a.input(shared, reference.Identity()))
	if err != nil {
		return nil, err
	}

	result := &Result{Warnings: probe.Warnings}
	for i, s := range slots {
		m, preset := a.ResolveMultipliers(i, s)
		name := s.Name
		if name == "" {
			name = SlotNames[i]
		}

		b, err := a.calc.Compute(a.input(shared, m))
		if err != nil {
			a.log.Warn("Skipping comparison slot", map[string]interface{}{
				"slot":  name,
				"index": i,
				"error": err,
			})
			continue
		}
		b.Warnings = nil

		result.Columns = append(result.Columns, Column{
			Name:        name,
			Preset:      preset,
			Multipliers: m,
			Breakdown:   *b,
		})
	}

	result.Rows = buildRows(result.Columns)
	metrics.ComparisonsAssembled.WithLabelValues(strconv.Itoa(len(result.Columns))).Inc()

	return result, nil
}

func (a *Assembler) input(shared SharedInputs, m reference.CategoryMultipliers) estimator.Input {
	return estimator.Input{
		FranchiseKey:       shared.FranchiseKey,
		CityTier:           shared.CityTier,
		Area:               shared.Area,
		EmployeeCount:      shared.EmployeeCount,
		ContingencyPercent: shared.ContingencyPercent,
		Multipliers:        m,
	}
}

func buildRows(columns []Column) []Row {
	rows := make([]Row, 0, len(estimator.Categories))
	for _, c := range estimator.Categories {
		values := make([]float64, len(columns))
		for i, col := range columns {
			values[i] = math.Round(col.Breakdown.Value(c))
		}
		rows = append(rows, Row{Category: c, Label: c.Label(), Values: values})
	}
	return rows
}

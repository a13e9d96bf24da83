// Package estimator computes line-itemized franchise startup estimates from
// the reference tables.
package estimator

import (
	"math"

	apperrors "franchise-estimator/internal/common/errors"
	"franchise-estimator/internal/reference"
)

// Input is one estimate request. Area and EmployeeCount are expected to be
// sanitized already; the calculator trusts them as given.
type Input struct {
	FranchiseKey       string                        `json:"franchiseKey"`
	CityTier           reference.CityTier            `json:"cityTier"`
	Area               float64                       `json:"area"`
	EmployeeCount      int                           `json:"employeeCount"`
	ContingencyPercent float64                       `json:"contingencyPercent"`
	Multipliers        reference.CategoryMultipliers `json:"categoryMultipliers"`
}

// Breakdown keeps full fractional precision in every field except Total,
// which is rounded to the nearest currency unit.
type Breakdown struct {
	FlatFee            float64 `json:"flatFee"`
	RenovationCost     float64 `json:"renovationCost"`
	EquipmentCost      float64 `json:"equipmentCost"`
	FurnitureCost      float64 `json:"furnitureCost"`
	InitialMarketing   float64 `json:"initialMarketing"`
	FirstMonthSalaries float64 `json:"firstMonthSalaries"`
	Subtotal           float64 `json:"subtotal"`
	ContingencyReserve float64 `json:"contingencyReserve"`
	Total              float64 `json:"total"`

	// Warnings carries advisory errors, such as an unrecognized city tier
	// resolved to the identity multiplier.
	Warnings []*apperrors.StandardError `json:"warnings,omitempty"`
}

// Rounded returns a copy with every monetary field rounded for display.
func (b Breakdown) Rounded() Breakdown {
	out := b
	out.FlatFee = math.Round(b.FlatFee)
	out.RenovationCost = math.Round(b.RenovationCost)
	out.EquipmentCost = math.Round(b.EquipmentCost)
	out.FurnitureCost = math.Round(b.FurnitureCost)
	out.InitialMarketing = math.Round(b.InitialMarketing)
	out.FirstMonthSalaries = math.Round(b.FirstMonthSalaries)
	out.Subtotal = math.Round(b.Subtotal)
	out.ContingencyReserve = math.Round(b.ContingencyReserve)
	out.Total = math.Round(b.Total)
	return out
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithStrictCityTier makes unknown city tiers an error instead of falling
// back to multiplier 1.0.
func WithStrictCityTier(strict bool) Option {
	return func(c *Calculator) {
		c.strictCityTier = strict
	}
}

// Calculator is stateless apart from its immutable reference data.
type Calculator struct {
	ref            *reference.Data
	strictCityTier bool
}

func NewCalculator(ref *reference.Data, opts ...Option) *Calculator {
	c := &Calculator{ref: ref}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reference exposes the tables the calculator was built with.
func (c *Calculator) Reference() *reference.Data {
	return c.ref
}

// Strict reports whether unknown city tiers are rejected.
func (c *Calculator) Strict() bool {
	return c.strictCityTier
}

// Compute returns the breakdown for in, or a FRANCHISE_NOT_FOUND error when
// the franchise key is unknown.
func (c *Calculator) Compute(in Input) (*Breakdown, error) {
	profile, ok := c.ref.Franchise(in.FranchiseKey)
	if !ok {
		return nil, apperrors.NewFranchiseNotFoundError(in.FranchiseKey)
	}

	var warnings []*apperrors.StandardError
	city, known := c.ref.CityMultiplier(in.CityTier)
	if !known {
		if c.strictCityTier {
			return nil, apperrors.NewInvalidCityTierError(string(in.CityTier))
		}
		warnings = append(warnings, apperrors.NewInvalidCityTierError(string(in.CityTier)))
	}

	m := in.Multipliers.WithDefaults()
	area := in.Area
	employees := float64(in.EmployeeCount)

	b := &Breakdown{
		FlatFee:            profile.FlatFee,
		RenovationCost:     profile.PerAreaCost.Renovation * area * city * m.Renovation,
		EquipmentCost:      profile.PerAreaCost.Equipment * area * city * m.Equipment,
		FurnitureCost:      profile.PerAreaCost.Furniture * area * city * m.Furniture,
		InitialMarketing:   profile.BaseMarketingBudget * city * m.Marketing,
		FirstMonthSalaries: profile.BaseMonthlySalaryPerEmployee * employees * city * m.Salary,
		Warnings:           warnings,
	}
	b.Subtotal = b.FlatFee + b.RenovationCost + b.EquipmentCost + b.FurnitureCost + b.InitialMarketing + b.FirstMonthSalaries
	b.ContingencyReserve = b.Subtotal * in.ContingencyPercent / 100
	b.Total = math.Round(b.Subtotal + b.ContingencyReserve)

	return b, nil
}

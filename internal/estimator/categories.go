package estimator

import "math"

// Category names one row of a breakdown.
type Category string

const (
	CategoryFlatFee            Category = "flatFee"
	CategoryRenovation         Category = "renovation"
	CategoryEquipment          Category = "equipment"
	CategoryFurniture          Category = "furniture"
	CategoryInitialMarketing   Category = "initialMarketing"
	CategoryFirstMonthSalaries Category = "firstMonthSalaries"
	CategorySubtotal           Category = "subtotal"
	CategoryContingency        Category = "contingency"
	CategoryTotal              Category = "total"
)

// Categories is the canonical row order of every rendered estimate.
var Categories = []Category{
	CategoryFlatFee,
	CategoryRenovation,
	CategoryEquipment,
	CategoryFurniture,
	CategoryInitialMarketing,
	CategoryFirstMonthSalaries,
	CategorySubtotal,
	CategoryContingency,
	CategoryTotal,
}

var categoryLabels = map[Category]string{
	CategoryFlatFee:            "Franchise fee",
	CategoryRenovation:         "Renovation (approx.)",
	CategoryEquipment:          "Equipment",
	CategoryFurniture:          "Furniture and fit-out",
	CategoryInitialMarketing:   "Initial marketing",
	CategoryFirstMonthSalaries: "Salaries (first month)",
	CategorySubtotal:           "Subtotal (without reserve)",
	CategoryContingency:        "Contingency reserve",
	CategoryTotal:              "Estimated startup cost",
}

// Label returns the display label of c.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Value returns the unrounded value of category c; unknown categories are 0.
func (b Breakdown) Value(c Category) float64 {
	switch c {
	case CategoryFlatFee:
		return b.FlatFee
	case CategoryRenovation:
		return b.RenovationCost
	case CategoryEquipment:
		return b.EquipmentCost
	case CategoryFurniture:
		return b.FurnitureCost
	case CategoryInitialMarketing:
		return b.InitialMarketing
	case CategoryFirstMonthSalaries:
		return b.FirstMonthSalaries
	case CategorySubtotal:
		return b.Subtotal
	case CategoryContingency:
		return b.ContingencyReserve
	case CategoryTotal:
		return b.Total
	default:
		return 0
	}
}

// Form defaults and minimums applied at the input boundary.
const (
	DefaultArea      = 50
	MinArea          = 10
	DefaultEmployees = 1
	MinEmployees     = 1
)

// SanitizeArea clamps a raw form value: missing or invalid values become
// DefaultArea, anything below MinArea is raised to it.
func SanitizeArea(raw float64) float64 {
	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw == 0 {
		raw = DefaultArea
	}
	return math.Max(MinArea, raw)
}

// SanitizeEmployees rounds a raw head count and clamps it to MinEmployees.
func SanitizeEmployees(raw float64) int {
	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw == 0 {
		raw = DefaultEmployees
	}
	n := int(math.Round(raw))
	if n < MinEmployees {
		return MinEmployees
	}
	return n
}

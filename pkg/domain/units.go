package domain

import (
	"fmt"
	"strings"
)

type unitFamily int

const (
	familyMass unitFamily = iota + 1
	familyVolume
	familyCount
)

type unitDef struct {
	family unitFamily
	// factor converts one of this unit into the family base (g, ml, each).
	factor float64
}

var units = map[string]unitDef{
	"g":      {familyMass, 1},
	"kg":     {familyMass, 1000},
	"mg":     {familyMass, 0.001},
	"oz":     {familyMass, 28.349523125},
	"lb":     {familyMass, 453.59237},
	"ml":     {familyVolume, 1},
	"l":      {familyVolume, 1000},
	"tsp":    {familyVolume, 4.92892159375},
	"tbsp":   {familyVolume, 14.78676478125},
	"cup":    {familyVolume, 236.5882365},
	"fl_oz":  {familyVolume, 29.5735295625},
	"gallon": {familyVolume, 3785.411784},
	"each":   {familyCount, 1},
	"dozen":  {familyCount, 12},
}

var unitAliases = map[string]string{
	"gram": "g", "grams": "g", "kilogram": "kg", "kilograms": "kg", "kgs": "kg",
	"ounce": "oz", "ounces": "oz", "pound": "lb", "pounds": "lb", "lbs": "lb",
	"milliliter": "ml", "milliliters": "ml", "liter": "l", "liters": "l", "litre": "l",
	"teaspoon": "tsp", "tablespoon": "tbsp", "cups": "cup", "floz": "fl_oz",
	"gallons": "gallon", "gal": "gallon",
	"pcs": "each", "pc": "each", "piece": "each", "pieces": "each", "unit": "each", "units": "each", "ea": "each",
}

// NormalizeUnit returns the canonical spelling of a unit name.
func NormalizeUnit(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	if canon, ok := unitAliases[u]; ok {
		return canon
	}
	return u
}

// ConvertQuantity converts qty from one unit to another within the same family.
// Identical unit names always convert, even when the unit is not known.
func ConvertQuantity(qty float64, from, to string) (float64, error) {
	from, to = NormalizeUnit(from), NormalizeUnit(to)
	if from == to {
		return qty, nil
	}
	f, okFrom := units[from]
	t, okTo := units[to]
	if !okFrom || !okTo || f.family != t.family {
		return 0, fmt.Errorf("%w: %q to %q", ErrUnitMismatch, from, to)
	}
	return qty * f.factor / t.factor, nil
}

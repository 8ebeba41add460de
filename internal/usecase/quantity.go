package usecase

import (
	"regexp"
	"strings"

	"github.com/platecost/backend/internal/domain"
)

// Precision flags how trustworthy a normalized gram amount is
type Precision int

const (
	// PrecisionExact - explicit weight override or direct mass conversion
	PrecisionExact Precision = iota
	// PrecisionTable - ingredient-specific density or each-weight table
	PrecisionTable
	// PrecisionApprox - generic 1 ml = 1 g water approximation
	PrecisionApprox
)

// gramsPerCup holds ingredient-specific cup densities. Cup-family volume
// units are scaled through the cup factor before applying these.
var gramsPerCup = map[string]float64{
	"flour":            120,
	"all purpose flour": 120,
	"bread flour":      127,
	"sugar":            200,
	"brown sugar":      220,
	"powdered sugar":   120,
	"butter":           227,
	"rice":             185,
	"oats":             90,
	"honey":            340,
	"olive oil":        216,
	"vegetable oil":    218,
	"milk":             240,
	"heavy cream":      238,
	"yogurt":           245,
	"cheese":           113,
	"cocoa powder":     85,
	"breadcrumbs":      108,
	"cornstarch":       128,
	"peanut butter":    258,
	"maple syrup":      322,
}

// gramsPerEach holds typical per-piece weights for count-based ingredients
var gramsPerEach = map[string]float64{
	"egg":            50,
	"onion":          150,
	"garlic":         5,
	"garlic clove":   5,
	"lemon":          100,
	"lime":           70,
	"orange":         130,
	"apple":          180,
	"banana":         120,
	"potato":         210,
	"sweet potato":   200,
	"tomato":         125,
	"carrot":         60,
	"celery stalk":   40,
	"bell pepper":    120,
	"avocado":        150,
	"cucumber":       300,
	"zucchini":       195,
	"chicken breast": 175,
	"chicken thigh":  110,
	"chicken":        1800,
	"shallot":        30,
	"jalapeno":       25,
	"tortilla":       45,
	"bread slice":    28,
}

var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
var multipleSpacesRegex = regexp.MustCompile(`\s+`)

// NormalizeIngredientName lowercases a free-text ingredient name, strips
// special characters and collapses whitespace. Used for table lookups,
// catalog keys and cache keys so all layers agree on one spelling.
func NormalizeIngredientName(name string) string {
	result := strings.ToLower(name)
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// lookupDensity finds a table entry for the ingredient name, preferring the
// longest matching key so "brown sugar" wins over "sugar".
func lookupDensity(table map[string]float64, name string) (float64, bool) {
	normalized := NormalizeIngredientName(name)
	if v, ok := table[normalized]; ok {
		return v, true
	}

	bestLen := 0
	var bestValue float64
	for key, v := range table {
		if strings.Contains(normalized, key) && len(key) > bestLen {
			bestLen = len(key)
			bestValue = v
		}
	}
	if bestLen > 0 {
		return bestValue, true
	}
	return 0, false
}

// GramsFor normalizes an ingredient's quantity to grams. Resolution order
// reflects decreasing precision: explicit override, then ingredient-specific
// density/each-weight tables, then direct mass conversion, then the water
// density approximation for volumes. Returns ok=false when none apply.
func GramsFor(ing domain.Ingredient) (float64, Precision, bool) {
	if ing.WeightGrams > 0 {
		return ing.WeightGrams, PrecisionExact, true
	}

	unit, _ := ResolveUnit(ing.Unit)

	switch unit.Dimension() {
	case DimensionCount:
		if perEach, ok := lookupDensity(gramsPerEach, ing.Name); ok {
			return ing.Amount * perEach, PrecisionTable, true
		}
		// Unresolved unit text may still be a volume the alias table missed;
		// without a weight table entry there is nothing safe to assume.
		return 0, PrecisionApprox, false

	case DimensionMass:
		grams, _ := Convert(ing.Amount, unit, UnitGram)
		return grams, PrecisionExact, true

	case DimensionVolume:
		if perCup, ok := lookupDensity(gramsPerCup, ing.Name); ok {
			cups, _ := Convert(ing.Amount, unit, UnitCup)
			return cups * perCup, PrecisionTable, true
		}
		// Water approximation: valid for water-like liquids, flagged
		// low precision for everything else.
		ml, _ := Convert(ing.Amount, unit, UnitMilliliter)
		return ml, PrecisionApprox, true
	}

	return 0, PrecisionApprox, false
}

// EachWeightFor returns the typical per-piece weight for a count ingredient
func EachWeightFor(name string) (float64, bool) {
	return lookupDensity(gramsPerEach, name)
}

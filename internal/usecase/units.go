package usecase

import (
	"regexp"
	"strings"
)

// Dimension is the physical dimension a canonical unit measures
type Dimension int

const (
	DimensionCount Dimension = iota
	DimensionMass
	DimensionVolume
)

// Unit is a canonical measurement unit. Every recognized alias maps to
// exactly one canonical unit.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitOunce      Unit = "oz"
	UnitPound      Unit = "lb"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitCup        Unit = "cup"
	UnitFluidOunce Unit = "floz"
	UnitEach       Unit = "each"
)

// Conversion factors to the base unit of each dimension (grams / milliliters).
// Cross-dimension conversion needs an ingredient-specific density and is
// handled by the quantity normalizer, never here.
var gramsPerUnit = map[Unit]float64{
	UnitGram:     1,
	UnitKilogram: 1000,
	UnitOunce:    28.3495,
	UnitPound:    453.592,
}

var mlPerUnit = map[Unit]float64{
	UnitMilliliter: 1,
	UnitLiter:      1000,
	UnitTeaspoon:   4.92892,
	UnitTablespoon: 14.7868,
	UnitCup:        236.588,
	UnitFluidOunce: 29.5735,
}

// unitAliases maps normalized alias spellings to canonical units
var unitAliases = map[string]Unit{
	// Mass
	"g": UnitGram, "gr": UnitGram, "gram": UnitGram, "grams": UnitGram,
	"kg": UnitKilogram, "kgs": UnitKilogram, "kilo": UnitKilogram,
	"kilos": UnitKilogram, "kilogram": UnitKilogram, "kilograms": UnitKilogram,
	"oz": UnitOunce, "ounce": UnitOunce, "ounces": UnitOunce,
	"lb": UnitPound, "lbs": UnitPound, "pound": UnitPound, "pounds": UnitPound,
	// Volume
	"ml": UnitMilliliter, "mls": UnitMilliliter, "milliliter": UnitMilliliter,
	"milliliters": UnitMilliliter, "millilitre": UnitMilliliter, "millilitres": UnitMilliliter,
	"l": UnitLiter, "liter": UnitLiter, "liters": UnitLiter,
	"litre": UnitLiter, "litres": UnitLiter,
	"tsp": UnitTeaspoon, "tsps": UnitTeaspoon, "teaspoon": UnitTeaspoon, "teaspoons": UnitTeaspoon,
	"tbsp": UnitTablespoon, "tbsps": UnitTablespoon, "tbs": UnitTablespoon,
	"tbl": UnitTablespoon, "tablespoon": UnitTablespoon, "tablespoons": UnitTablespoon,
	"cup": UnitCup, "cups": UnitCup,
	"floz": UnitFluidOunce, "fl oz": UnitFluidOunce,
	"fluid ounce": UnitFluidOunce, "fluid ounces": UnitFluidOunce,
	// Count
	"each": UnitEach, "ea": UnitEach, "piece": UnitEach, "pieces": UnitEach,
	"pc": UnitEach, "pcs": UnitEach, "whole": UnitEach, "unit": UnitEach,
	"units": UnitEach, "count": UnitEach, "ct": UnitEach,
	"clove": UnitEach, "cloves": UnitEach, "slice": UnitEach, "slices": UnitEach,
}

var unitPunctuationRegex = regexp.MustCompile(`[.,;:()]`)
var unitSpacesRegex = regexp.MustCompile(`\s+`)

// ResolveUnit maps free-text unit spellings to a canonical unit. Matching is
// case-insensitive and tolerant of punctuation ("Tbsp." == "tbsp").
// Unrecognized text resolves to UnitEach with ok=false so downstream
// components absorb the ambiguity instead of erroring.
func ResolveUnit(text string) (Unit, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = unitPunctuationRegex.ReplaceAllString(normalized, "")
	normalized = strings.TrimSpace(unitSpacesRegex.ReplaceAllString(normalized, " "))

	if normalized == "" {
		return UnitEach, false
	}
	if unit, ok := unitAliases[normalized]; ok {
		return unit, true
	}
	return UnitEach, false
}

// Dimension reports the physical dimension of the unit
func (u Unit) Dimension() Dimension {
	if _, ok := gramsPerUnit[u]; ok {
		return DimensionMass
	}
	if _, ok := mlPerUnit[u]; ok {
		return DimensionVolume
	}
	return DimensionCount
}

// Convert converts an amount between two canonical units of the same
// dimension. Cross-dimension conversions (and units with no defined factor)
// return the amount unchanged with ok=false - the caller flags the
// non-conversion rather than applying a universally wrong density.
func Convert(amount float64, from, to Unit) (float64, bool) {
	if from == to {
		return amount, true
	}

	if fromFactor, ok := gramsPerUnit[from]; ok {
		toFactor, ok := gramsPerUnit[to]
		if !ok {
			return amount, false
		}
		return amount * fromFactor / toFactor, true
	}

	if fromFactor, ok := mlPerUnit[from]; ok {
		toFactor, ok := mlPerUnit[to]
		if !ok {
			return amount, false
		}
		return amount * fromFactor / toFactor, true
	}

	return amount, false
}

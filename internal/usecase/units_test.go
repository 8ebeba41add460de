package usecase

import (
	"math"
	"testing"
)

func TestResolveUnit_Aliases(t *testing.T) {
	tests := []struct {
		aliases []string
		want    Unit
	}{
		{[]string{"g", "gram", "grams", "G", "Grams"}, UnitGram},
		{[]string{"kg", "kilogram", "kilograms", "kilo"}, UnitKilogram},
		{[]string{"oz", "ounce", "ounces", "Oz."}, UnitOunce},
		{[]string{"lb", "lbs", "pound", "pounds"}, UnitPound},
		{[]string{"ml", "milliliter", "millilitres"}, UnitMilliliter},
		{[]string{"l", "liter", "litres"}, UnitLiter},
		{[]string{"tsp", "teaspoon", "teaspoons", "Tsp."}, UnitTeaspoon},
		{[]string{"tbsp", "tablespoon", "Tablespoons", "Tbsp.", "tbs"}, UnitTablespoon},
		{[]string{"cup", "cups", "Cups"}, UnitCup},
		{[]string{"fl oz", "floz", "fluid ounce", "fl. oz."}, UnitFluidOunce},
		{[]string{"each", "ea", "piece", "pieces", "whole", "ct"}, UnitEach},
	}

	for _, tt := range tests {
		for _, alias := range tt.aliases {
			unit, ok := ResolveUnit(alias)
			if !ok {
				t.Errorf("ResolveUnit(%q) not resolved", alias)
			}
			if unit != tt.want {
				t.Errorf("ResolveUnit(%q) = %v, want %v", alias, unit, tt.want)
			}
		}
	}
}

func TestResolveUnit_Unresolved(t *testing.T) {
	for _, text := range []string{"", "handful", "pinch of", "bunch"} {
		unit, ok := ResolveUnit(text)
		if ok {
			t.Errorf("ResolveUnit(%q) resolved unexpectedly", text)
		}
		if unit != UnitEach {
			t.Errorf("ResolveUnit(%q) = %v, want UnitEach for unresolved text", text, unit)
		}
	}
}

func TestConvert_Identity(t *testing.T) {
	units := []Unit{
		UnitGram, UnitKilogram, UnitOunce, UnitPound,
		UnitMilliliter, UnitLiter, UnitTeaspoon, UnitTablespoon,
		UnitCup, UnitFluidOunce, UnitEach,
	}

	for _, u := range units {
		got, ok := Convert(42.5, u, u)
		if !ok {
			t.Errorf("Convert identity failed for %v", u)
		}
		if got != 42.5 {
			t.Errorf("Convert(42.5, %v, %v) = %v, want 42.5", u, u, got)
		}
	}
}

func TestConvert_SameDimension(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		from   Unit
		to     Unit
		want   float64
	}{
		{"kg to g", 2, UnitKilogram, UnitGram, 2000},
		{"lb to g", 1, UnitPound, UnitGram, 453.592},
		{"oz to g", 4, UnitOunce, UnitGram, 113.398},
		{"g to kg", 500, UnitGram, UnitKilogram, 0.5},
		{"l to ml", 1.5, UnitLiter, UnitMilliliter, 1500},
		{"tbsp to ml", 2, UnitTablespoon, UnitMilliliter, 29.5736},
		{"cup to ml", 1, UnitCup, UnitMilliliter, 236.588},
		{"tsp to tbsp", 3, UnitTeaspoon, UnitTablespoon, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Convert(tt.amount, tt.from, tt.to)
			if !ok {
				t.Fatalf("Convert(%v, %v, %v) not ok", tt.amount, tt.from, tt.to)
			}
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Convert(%v, %v, %v) = %v, want %v", tt.amount, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvert_CrossDimension(t *testing.T) {
	tests := []struct {
		name string
		from Unit
		to   Unit
	}{
		{"mass to volume", UnitGram, UnitMilliliter},
		{"volume to mass", UnitCup, UnitPound},
		{"count to mass", UnitEach, UnitGram},
		{"volume to count", UnitTablespoon, UnitEach},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Convert(7, tt.from, tt.to)
			if ok {
				t.Errorf("Convert across dimensions reported ok")
			}
			// Amount must come back unchanged, never silently scaled
			if got != 7 {
				t.Errorf("Convert(7, %v, %v) = %v, want 7 unchanged", tt.from, tt.to, got)
			}
		})
	}
}

func TestUnitDimension(t *testing.T) {
	tests := []struct {
		unit Unit
		want Dimension
	}{
		{UnitGram, DimensionMass},
		{UnitPound, DimensionMass},
		{UnitMilliliter, DimensionVolume},
		{UnitCup, DimensionVolume},
		{UnitEach, DimensionCount},
	}

	for _, tt := range tests {
		if got := tt.unit.Dimension(); got != tt.want {
			t.Errorf("%v.Dimension() = %v, want %v", tt.unit, got, tt.want)
		}
	}
}

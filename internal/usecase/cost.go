package usecase

import (
	"math"

	"github.com/platecost/backend/internal/domain"
)

// PricingConfig holds the fallback pricing knobs used when no catalog entry
// matches an ingredient.
type PricingConfig struct {
	// FallbackPerKg is the flat $/kg rate applied when grams are resolvable
	FallbackPerKg float64
	// SmallCountEach is the per-unit price for small counts (<= 1 unit).
	// Small packages carry a retail premium.
	SmallCountEach float64
	// MediumCountEach is the per-unit price for 1 < count <= 10
	MediumCountEach float64
	// BulkCountEach is the per-unit price for bulk counts (> 10)
	BulkCountEach float64
}

// PortionCostCalculator computes the cost attributable to a recipe from a
// matched catalog entry, accounting for package granularity and waste.
type PortionCostCalculator struct {
	pricing PricingConfig
}

// NewPortionCostCalculator creates a calculator, filling zero-valued pricing
// knobs with defaults.
func NewPortionCostCalculator(pricing PricingConfig) *PortionCostCalculator {
	if pricing.FallbackPerKg <= 0 {
		pricing.FallbackPerKg = 6.00
	}
	if pricing.SmallCountEach <= 0 {
		pricing.SmallCountEach = 2.50
	}
	if pricing.MediumCountEach <= 0 {
		pricing.MediumCountEach = 1.00
	}
	if pricing.BulkCountEach <= 0 {
		pricing.BulkCountEach = 0.50
	}
	return &PortionCostCalculator{pricing: pricing}
}

// Cost computes the portion cost for an ingredient given its match result.
// A match with no entry goes through the tiered fallback heuristic and is
// always low confidence; it never fails.
func (c *PortionCostCalculator) Cost(ing domain.Ingredient, match domain.MatchResult) (domain.CostBreakdown, domain.Confidence) {
	if match.Entry == nil {
		return c.fallbackCost(ing), domain.ConfidenceLow
	}

	scale := match.CostScale
	if scale <= 0 {
		scale = 1
	}
	price := match.Entry.EffectivePrice() * scale

	unit, _ := ResolveUnit(ing.Unit)
	packageUnit, _ := ResolveUnit(match.Entry.PackageSize.Unit)

	// Count regime: discrete purchases, whole packages only. An ingredient
	// sized only by a weight override derives its piece count from the
	// per-piece weight when one is known.
	if unit.Dimension() == DimensionCount && packageUnit.Dimension() == DimensionCount {
		pieces := ing.Amount
		if pieces <= 0 {
			perEach, ok := EachWeightFor(ing.Name)
			if !ok || ing.WeightGrams <= 0 {
				return c.fallbackCost(ing), domain.ConfidenceLow
			}
			pieces = ing.WeightGrams / perEach
		}
		return c.countCost(pieces, match.Entry.PackageSize.Amount, price), match.Confidence
	}

	breakdown, confidence, ok := c.divisibleCost(ing, unit, packageUnit, match, price)
	if !ok {
		return c.fallbackCost(ing), domain.ConfidenceLow
	}
	return breakdown, confidence
}

// countCost handles count-based goods purchased in discrete package units
func (c *PortionCostCalculator) countCost(pieces, perPackage, packagePrice float64) domain.CostBreakdown {
	if perPackage < 1 {
		perPackage = 1
	}
	packagesNeeded := int(math.Ceil(pieces / perPackage))
	if packagesNeeded < 1 {
		packagesNeeded = 1
	}
	purchased := float64(packagesNeeded) * perPackage

	return domain.CostBreakdown{
		PortionCost:      float64(packagesNeeded) * packagePrice,
		PackagePrice:     packagePrice,
		PackagesNeeded:   packagesNeeded,
		WasteAmount:      purchased - pieces,
		WasteUnit:        string(UnitEach),
		UtilizationRatio: pieces / purchased,
	}
}

// divisibleCost handles mass and volume goods where a package can be
// consumed fractionally. Both sides are normalized to the package's base
// dimension. Returns ok=false when the recipe quantity cannot be expressed
// in that dimension, which sends the caller to the fallback heuristic.
func (c *PortionCostCalculator) divisibleCost(
	ing domain.Ingredient,
	unit, packageUnit Unit,
	match domain.MatchResult,
	price float64,
) (domain.CostBreakdown, domain.Confidence, bool) {
	confidence := match.Confidence

	var needBase, packageBase float64
	var baseUnit Unit

	switch packageUnit.Dimension() {
	case DimensionMass:
		baseUnit = UnitGram
		packageBase, _ = Convert(match.Entry.PackageSize.Amount, packageUnit, UnitGram)

		grams, precision, ok := GramsFor(ing)
		if !ok || grams <= 0 {
			return domain.CostBreakdown{}, confidence, false
		}
		if precision == PrecisionApprox {
			confidence = confidence.Min(domain.ConfidenceMedium)
		}
		needBase = grams

	case DimensionVolume:
		baseUnit = UnitMilliliter
		packageBase, _ = Convert(match.Entry.PackageSize.Amount, packageUnit, UnitMilliliter)

		if unit.Dimension() == DimensionVolume {
			needBase, _ = Convert(ing.Amount, unit, UnitMilliliter)
		} else {
			// Mass or count recipe quantity against a volume package:
			// grams stand in for milliliters at water density, flagged
			// as lower precision.
			grams, _, ok := GramsFor(ing)
			if !ok || grams <= 0 {
				return domain.CostBreakdown{}, confidence, false
			}
			needBase = grams
			confidence = confidence.Min(domain.ConfidenceMedium)
		}

	default:
		// Package priced per-each but recipe quantity is mass/volume:
		// convert through the per-piece weight when one is known.
		perEach, ok := EachWeightFor(ing.Name)
		if !ok {
			return domain.CostBreakdown{}, confidence, false
		}
		grams, _, gok := GramsFor(ing)
		if !gok || grams <= 0 {
			return domain.CostBreakdown{}, confidence, false
		}
		pieces := grams / perEach
		return c.countCost(pieces, match.Entry.PackageSize.Amount, price), confidence, true
	}

	if packageBase <= 0 {
		return domain.CostBreakdown{}, confidence, false
	}

	utilization := needBase / packageBase
	if utilization > 1 {
		utilization = 1
	}

	wasteBase := math.Max(0, packageBase-needBase)
	wasteDisplay, _ := Convert(wasteBase, baseUnit, packageUnit)

	return domain.CostBreakdown{
		PortionCost:      price * utilization,
		PackagePrice:     price,
		PackagesNeeded:   1,
		WasteAmount:      wasteDisplay,
		WasteUnit:        string(packageUnit),
		UtilizationRatio: utilization,
	}, confidence, true
}

// fallbackCost prices an ingredient with no catalog entry. Weight-based flat
// rate when grams are resolvable, otherwise amount-bucketed per-unit
// heuristics reflecting small-package premiums and bulk discounts. Always
// returns a positive, finite cost.
func (c *PortionCostCalculator) fallbackCost(ing domain.Ingredient) domain.CostBreakdown {
	if grams, _, ok := GramsFor(ing); ok && grams > 0 {
		return domain.CostBreakdown{
			PortionCost:      grams / 1000 * c.pricing.FallbackPerKg,
			UtilizationRatio: 1,
		}
	}

	amount := ing.Amount
	if amount <= 0 {
		amount = 1
	}

	var cost float64
	switch {
	case amount <= 1:
		cost = c.pricing.SmallCountEach
	case amount <= 10:
		cost = amount * c.pricing.MediumCountEach
	default:
		cost = amount * c.pricing.BulkCountEach
	}

	return domain.CostBreakdown{
		PortionCost:      cost,
		UtilizationRatio: 1,
	}
}

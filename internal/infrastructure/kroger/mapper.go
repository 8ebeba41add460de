package kroger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/platecost/backend/internal/domain"
	"github.com/platecost/backend/internal/usecase"
)

// sizeRegex splits a product size string like "16 fl oz", "2 lb" or
// "1/2 gal" into amount and unit text
var sizeRegex = regexp.MustCompile(`^([\d.]+(?:\s*/\s*[\d.]+)?)\s*(.*)$`)

// sizeUnitMl maps gallon-family sizes, common in provider data but not
// canonical units, to milliliters
var sizeUnitMl = map[string]float64{
	"gal": 3785.41, "gallon": 3785.41, "gallons": 3785.41,
	"qt": 946.353, "quart": 946.353, "quarts": 946.353,
	"pt": 473.176, "pint": 473.176, "pints": 473.176,
}

// bestQuoteFromProducts maps raw products into the normalized quote shape
// and picks the highest-confidence priced product for the search term.
func bestQuoteFromProducts(term, location string, products []product) *domain.ProviderQuote {
	var best *domain.ProviderQuote
	bestScore := -1.0

	for _, p := range products {
		quote, score := mapProduct(term, location, p)
		if quote == nil {
			continue
		}
		if score > bestScore {
			best = quote
			bestScore = score
		}
	}

	return best
}

// mapProduct converts one product into a quote, or nil when it carries no
// usable price. The returned score is the term-token coverage used for
// ranking within this response.
func mapProduct(term, location string, p product) (*domain.ProviderQuote, float64) {
	var item *productItem
	for i := range p.Items {
		if p.Items[i].Price.Regular > 0 {
			item = &p.Items[i]
			break
		}
	}
	if item == nil {
		return nil, 0
	}

	size := parseSize(item.Size)
	coverage := termCoverage(term, p.Description)

	return &domain.ProviderQuote{
		MatchedDescription: p.Description,
		PackagePrice:       item.Price.Regular,
		PromoPrice:         item.Price.Promo,
		PackageSize:        size,
		Confidence:         confidenceFromCoverage(coverage),
		Provenance:         ProviderName,
		StoreLocation:      location,
		StockLevel:         item.Inventory.StockLevel,
	}, coverage
}

// parseSize parses provider size strings ("16 fl oz", "2 lb", "12 ct",
// "1/2 gal") into a canonical package size. Gallon-family sizes normalize to
// milliliters; unparseable sizes fall back to one each, which the cost
// calculator treats as a discrete unit.
func parseSize(size string) domain.PackageSize {
	matches := sizeRegex.FindStringSubmatch(strings.TrimSpace(size))
	if matches == nil {
		return domain.PackageSize{Amount: 1, Unit: string(usecase.UnitEach)}
	}

	amount, err := parseAmount(matches[1])
	if err != nil || amount <= 0 {
		return domain.PackageSize{Amount: 1, Unit: string(usecase.UnitEach)}
	}

	unitText := strings.TrimSpace(matches[2])
	if unit, ok := usecase.ResolveUnit(unitText); ok {
		return domain.PackageSize{Amount: amount, Unit: string(unit)}
	}
	if ml, ok := sizeUnitMl[strings.ToLower(strings.TrimSuffix(unitText, "."))]; ok {
		return domain.PackageSize{Amount: amount * ml, Unit: string(usecase.UnitMilliliter)}
	}
	return domain.PackageSize{Amount: amount, Unit: string(usecase.UnitEach)}
}

// parseAmount handles plain decimals and fractional amounts like "1/2"
func parseAmount(text string) (float64, error) {
	if num, den, ok := strings.Cut(text, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, err
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator in %q", text)
		}
		return n / d, nil
	}
	return strconv.ParseFloat(text, 64)
}

// termCoverage is the fraction of search-term words present in the product
// description, both sides lowercased.
func termCoverage(term, description string) float64 {
	words := strings.Fields(strings.ToLower(term))
	if len(words) == 0 {
		return 0
	}
	descLower := strings.ToLower(description)

	matched := 0
	for _, word := range words {
		if strings.Contains(descLower, word) {
			matched++
		}
	}
	return float64(matched) / float64(len(words))
}

// confidenceFromCoverage buckets term coverage into confidence tiers
func confidenceFromCoverage(coverage float64) domain.Confidence {
	switch {
	case coverage >= 1:
		return domain.ConfidenceHigh
	case coverage >= 0.5:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

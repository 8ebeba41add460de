package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platecost/backend/internal/domain"
)

// EstimateRequest is the input to a recipe cost estimation
type EstimateRequest struct {
	Ingredients []domain.Ingredient
	Servings    int
	Location    string
	// Deadline bounds the whole aggregation; ingredients whose provider
	// lookups have not completed by then fall back to the baseline catalog.
	// Zero means no per-request bound beyond the caller's context.
	Deadline time.Duration
}

// RecipeEstimator orchestrates normalization, matching, reconciliation and
// portion costing per ingredient and aggregates the results.
type RecipeEstimator struct {
	catalog    domain.PriceCatalog
	matcher    *CatalogMatcher
	calculator *PortionCostCalculator
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewRecipeEstimator creates an estimator. reconciler may be nil when no
// live providers are configured; estimation then uses the baseline catalog
// only.
func NewRecipeEstimator(
	catalog domain.PriceCatalog,
	calculator *PortionCostCalculator,
	reconciler *Reconciler,
	logger *zap.Logger,
) *RecipeEstimator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeEstimator{
		catalog:    catalog,
		matcher:    NewCatalogMatcher(),
		calculator: calculator,
		reconciler: reconciler,
		logger:     logger,
	}
}

// EstimateRecipeCost estimates the grocery cost of a recipe. Ingredients are
// mutually independent and processed in parallel; output order always matches
// input order. The only error surfaced to the caller is structural misuse of
// the input contract - per-ingredient problems degrade in-band.
func (e *RecipeEstimator) EstimateRecipeCost(ctx context.Context, req EstimateRequest) (*domain.RecipeCostResult, error) {
	if len(req.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: ingredient list is required", domain.ErrInvalidRequest)
	}

	if req.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Deadline)
		defer cancel()
	}

	items := make([]domain.IngredientEstimate, len(req.Ingredients))
	var wg sync.WaitGroup
	for i, ing := range req.Ingredients {
		wg.Add(1)
		go func(i int, ing domain.Ingredient) {
			defer wg.Done()
			items[i] = e.estimateIngredient(ctx, ing, req.Location)
		}(i, ing)
	}
	wg.Wait()

	total := 0.0
	overall := domain.ConfidenceHigh
	needsReview := false
	for _, item := range items {
		total += item.PortionCost
		overall = overall.Min(item.Confidence)
		if item.NeedsReview {
			needsReview = true
		}
	}

	servings := req.Servings
	if servings < 1 {
		servings = 1
	}

	return &domain.RecipeCostResult{
		EstimateID:     uuid.NewString(),
		TotalCost:      roundCurrency(total),
		CostPerServing: roundCurrency(total / float64(servings)),
		Servings:       servings,
		Confidence:     overall,
		NeedsReview:    needsReview,
		Items:          items,
	}, nil
}

// estimateIngredient runs one ingredient through the full pipeline:
// validation, quantity normalization, provider reconciliation (when
// configured), baseline matching and portion costing.
func (e *RecipeEstimator) estimateIngredient(ctx context.Context, ing domain.Ingredient, location string) domain.IngredientEstimate {
	if err := validateIngredient(ing); err != nil {
		return domain.IngredientEstimate{
			Original:        ing.Name,
			Confidence:      domain.ConfidenceLow,
			NeedsReview:     true,
			ValidationError: err.Error(),
		}
	}

	neededGrams, _, _ := GramsFor(ing)

	match, providerFailed := e.resolveMatch(ctx, ing, location, neededGrams)
	breakdown, confidence := e.calculator.Cost(ing, match)
	if providerFailed {
		confidence = confidence.Min(domain.ConfidenceMedium)
	}

	estimate := domain.IngredientEstimate{
		Original:       ing.Name,
		EstimatedCost:  roundCurrency(breakdown.PortionCost),
		Confidence:     confidence,
		NeedsReview:    confidence == domain.ConfidenceLow || providerFailed,
		PackagesNeeded: breakdown.PackagesNeeded,
		PortionCost:    roundCurrency(breakdown.PortionCost),
		PackagePrice:   roundCurrency(breakdown.PackagePrice),
	}

	if match.Entry != nil {
		estimate.MatchedDescription = match.Entry.Description
		estimate.PackageSize = formatPackageSize(match.Entry.PackageSize)
		estimate.PriceLabel = fmt.Sprintf("$%.2f per %s",
			match.Entry.EffectivePrice(), estimate.PackageSize)
		estimate.Provenance = match.Entry.Provenance
	} else {
		estimate.PriceLabel = "estimated"
		estimate.Provenance = domain.ProvenanceBaseline
	}

	return estimate
}

// resolveMatch prefers a reconciled live provider quote, falling back to the
// baseline catalog when providers are unconfigured, failed, or out of time.
// providerFailed reports that at least one provider errored or timed out, so
// the caller can downgrade the estimate instead of presenting a fallback
// price at full confidence.
func (e *RecipeEstimator) resolveMatch(ctx context.Context, ing domain.Ingredient, location string, neededGrams float64) (domain.MatchResult, bool) {
	if e.reconciler == nil {
		return e.matcher.Match(ing.Name, e.catalog), false
	}

	quote, ok, failed := e.reconciler.BestQuote(ctx, ing.Name, location, neededGrams)
	if !ok {
		return e.matcher.Match(ing.Name, e.catalog), failed
	}

	reason := domain.MatchSubstring
	if quote.Confidence == domain.ConfidenceHigh {
		reason = domain.MatchExact
	}
	return domain.MatchResult{
		Entry:      quote.Entry(),
		Confidence: quote.Confidence,
		Reason:     reason,
		CostScale:  1,
	}, failed
}

// validateIngredient rejects malformed input at the boundary. An explicit
// weight override substitutes for a missing amount.
func validateIngredient(ing domain.Ingredient) error {
	if ing.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidIngredient)
	}
	if ing.Amount <= 0 && ing.WeightGrams <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidIngredient)
	}
	return nil
}

// roundCurrency rounds to two decimal places using standard half-up rounding
func roundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatPackageSize(size domain.PackageSize) string {
	return fmt.Sprintf("%s %s", formatAmount(size.Amount), size.Unit)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/platecost/backend/internal/domain"
)

// ReconcilerConfig holds timeouts for provider fan-out and quote caching
type ReconcilerConfig struct {
	// LookupTimeout bounds each individual provider call
	LookupTimeout time.Duration
	// CacheTTL bounds how long a reconciled quote is reused
	CacheTTL time.Duration
}

// Reconciler fans out price lookups to live providers, merges their quotes
// and picks a single best result per ingredient. Each provider call is
// isolated: a slow or failing provider never blocks the others and never
// aborts the recipe computation.
type Reconciler struct {
	providers []domain.PriceProvider
	cache     domain.PriceCache
	cacheTTL  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

// NewReconciler creates a reconciler with the given providers and quote cache
func NewReconciler(
	providers []domain.PriceProvider,
	cache domain.PriceCache,
	config ReconcilerConfig,
	logger *zap.Logger,
) *Reconciler {
	timeout := config.LookupTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reconciler{
		providers: providers,
		cache:     cache,
		cacheTTL:  cacheTTL,
		timeout:   timeout,
		logger:    logger,
	}
}

// quoteCacheKey builds the cache key from normalized ingredient name and location
func quoteCacheKey(name, location string) string {
	return fmt.Sprintf("price:%s:%s", NormalizeIngredientName(name), NormalizeIngredientName(location))
}

// BestQuote queries all providers concurrently for an ingredient and returns
// the winning quote, or ok=false when no provider had a match (the caller
// then falls back to the baseline catalog). failed reports whether any
// provider errored or timed out, as opposed to cleanly returning no match;
// the caller downgrades that ingredient's confidence. neededGrams is used
// to break confidence ties by preferring the package size closest to the
// recipe's requirement.
func (r *Reconciler) BestQuote(ctx context.Context, name, location string, neededGrams float64) (quote *domain.ProviderQuote, ok, failed bool) {
	if len(r.providers) == 0 {
		return nil, false, false
	}

	key := quoteCacheKey(name, location)
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, key); err == nil && cached != nil {
			r.logger.Debug("quote cache hit", zap.String("ingredient", name))
			return cached, true, false
		}
	}

	quotes := make([]*domain.ProviderQuote, len(r.providers))
	failures := make([]bool, len(r.providers))
	var wg sync.WaitGroup

	for i, provider := range r.providers {
		wg.Add(1)
		go func(i int, provider domain.PriceProvider) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()

			result, err := provider.GetIngredientPrice(callCtx, name, location)
			if err != nil {
				if !errors.Is(err, domain.ErrProviderNoMatch) {
					failures[i] = true
				}
				r.logger.Debug("provider lookup failed",
					zap.String("provider", provider.Name()),
					zap.String("ingredient", name),
					zap.Error(err))
				return
			}
			quotes[i] = result
		}(i, provider)
	}
	wg.Wait()

	for _, f := range failures {
		if f {
			failed = true
			break
		}
	}

	best := selectBestQuote(quotes, neededGrams)
	if best == nil {
		return nil, false, failed
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, best, r.cacheTTL); err != nil {
			r.logger.Warn("failed to cache quote", zap.String("ingredient", name), zap.Error(err))
		}
	}

	return best, true, failed
}

// selectBestQuote picks the quote with the highest reported confidence,
// breaking ties by the package size closest to the needed quantity to
// minimize waste.
func selectBestQuote(quotes []*domain.ProviderQuote, neededGrams float64) *domain.ProviderQuote {
	var best *domain.ProviderQuote
	bestDistance := math.Inf(1)

	for _, quote := range quotes {
		if quote == nil {
			continue
		}
		if best == nil {
			best = quote
			bestDistance = packageDistance(quote, neededGrams)
			continue
		}

		switch {
		case confidenceRank(quote.Confidence) > confidenceRank(best.Confidence):
			best = quote
			bestDistance = packageDistance(quote, neededGrams)
		case confidenceRank(quote.Confidence) == confidenceRank(best.Confidence):
			if d := packageDistance(quote, neededGrams); d < bestDistance {
				best = quote
				bestDistance = d
			}
		}
	}

	return best
}

// packageDistance measures how far a quoted package size is from the needed
// quantity, in grams. Volume packages use the water approximation; unsizeable
// packages sort last.
func packageDistance(quote *domain.ProviderQuote, neededGrams float64) float64 {
	if neededGrams <= 0 {
		return 0
	}

	unit, ok := ResolveUnit(quote.PackageSize.Unit)
	if !ok && quote.PackageSize.Unit != string(UnitEach) {
		return math.Inf(1)
	}

	var packageGrams float64
	switch unit.Dimension() {
	case DimensionMass:
		packageGrams, _ = Convert(quote.PackageSize.Amount, unit, UnitGram)
	case DimensionVolume:
		packageGrams, _ = Convert(quote.PackageSize.Amount, unit, UnitMilliliter)
	default:
		return math.Inf(1)
	}

	return math.Abs(packageGrams - neededGrams)
}

func confidenceRank(c domain.Confidence) int {
	switch c {
	case domain.ConfidenceHigh:
		return 2
	case domain.ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

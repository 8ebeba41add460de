package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/platecost/backend/internal/domain"
)

// fakeProvider is a scriptable PriceProvider for tests
type fakeProvider struct {
	name  string
	quote *domain.ProviderQuote
	err   error
	delay time.Duration

	mu    sync.Mutex
	calls int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) GetIngredientPrice(ctx context.Context, name, location string) (*domain.ProviderQuote, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.quote, nil
}

func (p *fakeProvider) GetMultipleIngredientPrices(ctx context.Context, names []string, location string) (map[string]*domain.ProviderQuote, error) {
	quotes := make(map[string]*domain.ProviderQuote)
	for _, n := range names {
		if q, err := p.GetIngredientPrice(ctx, n, location); err == nil {
			quotes[n] = q
		}
	}
	return quotes, nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// fakeCache is a minimal PriceCache for tests
type fakeCache struct {
	mu   sync.Mutex
	data map[string]*domain.ProviderQuote
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]*domain.ProviderQuote)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (*domain.ProviderQuote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if q, ok := c.data[key]; ok {
		return q, nil
	}
	return nil, domain.ErrCacheMiss
}

func (c *fakeCache) Set(ctx context.Context, key string, quote *domain.ProviderQuote, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = quote
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func quoteWith(provenance string, confidence domain.Confidence, amount float64, unit string) *domain.ProviderQuote {
	return &domain.ProviderQuote{
		MatchedDescription: provenance + " product",
		PackagePrice:       3.49,
		PackageSize:        domain.PackageSize{Amount: amount, Unit: unit},
		Confidence:         confidence,
		Provenance:         provenance,
	}
}

func TestBestQuote_HighestConfidenceWins(t *testing.T) {
	providers := []domain.PriceProvider{
		&fakeProvider{name: "low", quote: quoteWith("low", domain.ConfidenceLow, 500, "g")},
		&fakeProvider{name: "high", quote: quoteWith("high", domain.ConfidenceHigh, 500, "g")},
		&fakeProvider{name: "medium", quote: quoteWith("medium", domain.ConfidenceMedium, 500, "g")},
	}
	r := NewReconciler(providers, newFakeCache(), ReconcilerConfig{}, nil)

	quote, ok, failed := r.BestQuote(context.Background(), "cheddar", "", 200)
	if !ok {
		t.Fatal("expected a quote")
	}
	if failed {
		t.Error("no provider errored; failed must be false")
	}
	if quote.Provenance != "high" {
		t.Errorf("provenance = %q, want %q", quote.Provenance, "high")
	}
}

func TestBestQuote_TieBrokenByPackageFit(t *testing.T) {
	// Same confidence; recipe needs 200 g, so the 250 g package wastes least
	providers := []domain.PriceProvider{
		&fakeProvider{name: "big", quote: quoteWith("big", domain.ConfidenceMedium, 2000, "g")},
		&fakeProvider{name: "close", quote: quoteWith("close", domain.ConfidenceMedium, 250, "g")},
	}
	r := NewReconciler(providers, newFakeCache(), ReconcilerConfig{}, nil)

	quote, ok, _ := r.BestQuote(context.Background(), "cheddar", "", 200)
	if !ok {
		t.Fatal("expected a quote")
	}
	if quote.Provenance != "close" {
		t.Errorf("provenance = %q, want %q", quote.Provenance, "close")
	}
}

func TestBestQuote_AllProvidersFail(t *testing.T) {
	providers := []domain.PriceProvider{
		&fakeProvider{name: "down", err: domain.ErrProviderFailure},
		&fakeProvider{name: "empty", err: domain.ErrProviderNoMatch},
	}
	r := NewReconciler(providers, newFakeCache(), ReconcilerConfig{}, nil)

	_, ok, failed := r.BestQuote(context.Background(), "cheddar", "", 200)
	if ok {
		t.Error("expected no quote when all providers fail")
	}
	if !failed {
		t.Error("an errored provider must be reported as a failure")
	}
}

func TestBestQuote_NoMatchIsNotFailure(t *testing.T) {
	providers := []domain.PriceProvider{
		&fakeProvider{name: "empty", err: domain.ErrProviderNoMatch},
	}
	r := NewReconciler(providers, newFakeCache(), ReconcilerConfig{}, nil)

	_, ok, failed := r.BestQuote(context.Background(), "cheddar", "", 200)
	if ok {
		t.Error("expected no quote")
	}
	if failed {
		t.Error("a clean no-match must not be reported as a failure")
	}
}

func TestBestQuote_SlowProviderIsIsolated(t *testing.T) {
	fast := &fakeProvider{name: "fast", quote: quoteWith("fast", domain.ConfidenceMedium, 500, "g")}
	slow := &fakeProvider{name: "slow", delay: 5 * time.Second, quote: quoteWith("slow", domain.ConfidenceHigh, 500, "g")}

	r := NewReconciler(
		[]domain.PriceProvider{fast, slow},
		newFakeCache(),
		ReconcilerConfig{LookupTimeout: 50 * time.Millisecond},
		nil,
	)

	start := time.Now()
	quote, ok, failed := r.BestQuote(context.Background(), "cheddar", "", 200)
	elapsed := time.Since(start)

	if !ok {
		t.Fatal("expected the fast provider's quote")
	}
	if quote.Provenance != "fast" {
		t.Errorf("provenance = %q, want %q", quote.Provenance, "fast")
	}
	if !failed {
		t.Error("the timed-out provider must be reported as a failure")
	}
	if elapsed > time.Second {
		t.Errorf("lookup took %v; slow provider was not isolated by its timeout", elapsed)
	}
}

func TestBestQuote_CacheHitSkipsProviders(t *testing.T) {
	provider := &fakeProvider{name: "live", quote: quoteWith("live", domain.ConfidenceHigh, 500, "g")}
	cache := newFakeCache()
	r := NewReconciler([]domain.PriceProvider{provider}, cache, ReconcilerConfig{}, nil)

	ctx := context.Background()

	// First lookup goes to the provider and caches the result
	if _, ok, _ := r.BestQuote(ctx, "cheddar", "seattle", 200); !ok {
		t.Fatal("expected a quote")
	}
	if provider.callCount() != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.callCount())
	}

	// Second lookup must be served from cache
	quote, ok, _ := r.BestQuote(ctx, "Cheddar", "Seattle", 200)
	if !ok {
		t.Fatal("expected a cached quote")
	}
	if quote.Provenance != "live" {
		t.Errorf("provenance = %q, want %q", quote.Provenance, "live")
	}
	if provider.callCount() != 1 {
		t.Errorf("provider calls = %d, want 1 (cache should have served the second lookup)", provider.callCount())
	}
}

func TestBestQuote_NoProviders(t *testing.T) {
	r := NewReconciler(nil, newFakeCache(), ReconcilerConfig{}, nil)

	_, ok, failed := r.BestQuote(context.Background(), "cheddar", "", 200)
	if ok {
		t.Error("expected no quote without providers")
	}
	if failed {
		t.Error("no providers configured is not a failure")
	}
}

func TestSelectBestQuote_NilEntriesIgnored(t *testing.T) {
	quotes := []*domain.ProviderQuote{
		nil,
		quoteWith("only", domain.ConfidenceLow, 100, "g"),
		nil,
	}
	best := selectBestQuote(quotes, 100)
	if best == nil || best.Provenance != "only" {
		t.Errorf("best = %+v, want the only non-nil quote", best)
	}
}

package domain

import (
	"context"
	"time"
)

// PriceCache defines the interface for caching provider quotes. Implementations
// must be safe under concurrent access; a miss on one key never blocks another.
type PriceCache interface {
	Get(ctx context.Context, key string) (*ProviderQuote, error)
	Set(ctx context.Context, key string, quote *ProviderQuote, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// PriceProvider is implemented by each live pricing integration. A nil quote
// with ErrProviderNoMatch is the no-match sentinel; any other error means the
// lookup failed.
type PriceProvider interface {
	Name() string
	GetIngredientPrice(ctx context.Context, name, location string) (*ProviderQuote, error)
	GetMultipleIngredientPrices(ctx context.Context, names []string, location string) (map[string]*ProviderQuote, error)
}

// PriceCatalog is a static, read-only price table keyed by normalized
// ingredient name.
type PriceCatalog interface {
	Lookup(key string) (*CatalogEntry, bool)
	Keys() []string
}

package kroger

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/platecost/backend/internal/domain"
)

// ProviderName identifies this provider in quote provenance
const ProviderName = "kroger"

const maxAttempts = 3

// TokenSource supplies a bearer token for the Products API. OAuth client
// credential acquisition happens outside this package.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource backed by a fixed token string
type StaticToken string

// Token returns the fixed token
func (t StaticToken) Token(ctx context.Context) (string, error) {
	if t == "" {
		return "", fmt.Errorf("%w: no API token configured", domain.ErrProviderFailure)
	}
	return string(t), nil
}

// Client queries the Kroger Products API for live grocery prices and maps
// results into the normalized quote shape at the boundary.
type Client struct {
	http        *resty.Client
	tokens      TokenSource
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a Kroger API client. The public API allows 10,000
// requests per day; the limiter keeps honest bursts well inside that.
func NewClient(baseURL string, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		http:        httpClient,
		tokens:      tokens,
		rateLimiter: rate.NewLimiter(rate.Limit(2), 10),
		logger:      logger,
	}
}

// Name returns the provider name used in quote provenance
func (c *Client) Name() string {
	return ProviderName
}

// productsResponse is the wire shape of GET /v1/products
type productsResponse struct {
	Data []product `json:"data"`
}

type product struct {
	ProductID   string        `json:"productId"`
	Description string        `json:"description"`
	Items       []productItem `json:"items"`
}

type productItem struct {
	Size  string `json:"size"`
	Price struct {
		Regular float64 `json:"regular"`
		Promo   float64 `json:"promo"`
	} `json:"price"`
	Inventory struct {
		StockLevel string `json:"stockLevel"`
	} `json:"inventory"`
}

// GetIngredientPrice searches the product catalog for an ingredient near the
// given location and returns the best-matching priced product.
// ErrProviderNoMatch means the catalog has nothing usable for this term.
func (c *Client) GetIngredientPrice(ctx context.Context, name, location string) (*domain.ProviderQuote, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetQueryParams(map[string]string{
				"filter.term":       name,
				"filter.locationId": location,
				"filter.limit":      "5",
			}).
			SetResult(&productsResponse{}).
			Get("/v1/products")
		if err != nil {
			c.logger.Debug("product search failed",
				zap.String("term", name), zap.Int("attempt", attempt), zap.Error(err))
			lastErr = fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
			sleepBackoff(ctx, attempt)
			continue
		}

		switch {
		case resp.StatusCode() == http.StatusNotFound:
			return nil, domain.ErrProviderNoMatch
		case resp.StatusCode() != http.StatusOK:
			c.logger.Debug("product search returned error status",
				zap.String("term", name), zap.Int("status", resp.StatusCode()), zap.Int("attempt", attempt))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode())
			sleepBackoff(ctx, attempt)
			continue
		}

		result := resp.Result().(*productsResponse)
		quote := bestQuoteFromProducts(name, location, result.Data)
		if quote == nil {
			return nil, domain.ErrProviderNoMatch
		}
		return quote, nil
	}

	return nil, lastErr
}

// GetMultipleIngredientPrices looks up several ingredients against one
// location. Individual misses and failures are skipped; the map only holds
// names that resolved.
func (c *Client) GetMultipleIngredientPrices(ctx context.Context, names []string, location string) (map[string]*domain.ProviderQuote, error) {
	quotes := make(map[string]*domain.ProviderQuote, len(names))
	for _, name := range names {
		quote, err := c.GetIngredientPrice(ctx, name, location)
		if err != nil {
			if ctx.Err() != nil {
				return quotes, ctx.Err()
			}
			continue
		}
		quotes[name] = quote
	}
	return quotes, nil
}

// exponentialBackoff returns the wait before the next retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}

func sleepBackoff(ctx context.Context, attempt int) {
	select {
	case <-time.After(exponentialBackoff(attempt)):
	case <-ctx.Done():
	}
}

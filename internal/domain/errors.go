package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are structurally invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidIngredient is returned for a malformed ingredient (empty name, non-positive amount)
	ErrInvalidIngredient = errors.New("invalid ingredient")

	// ErrNoMatch is returned when an ingredient cannot be resolved against a catalog
	ErrNoMatch = errors.New("no catalog match for ingredient")

	// ErrUnresolvedQuantity is returned when an ingredient quantity cannot be normalized to grams
	ErrUnresolvedQuantity = errors.New("quantity cannot be resolved to grams")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when the cache backend is unreachable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrProviderNoMatch is returned when a pricing provider has no product for the ingredient
	ErrProviderNoMatch = errors.New("provider returned no match")

	// ErrProviderFailure is returned when a pricing provider request fails
	ErrProviderFailure = errors.New("pricing provider request failed")
)

package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/platecost/backend/config"
	httpDelivery "github.com/platecost/backend/internal/delivery/http"
	"github.com/platecost/backend/internal/domain"
	"github.com/platecost/backend/internal/infrastructure/cache"
	"github.com/platecost/backend/internal/infrastructure/catalog"
	"github.com/platecost/backend/internal/infrastructure/kroger"
	"github.com/platecost/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting platecost backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Type),
	)

	// Baseline price catalog (embedded snapshot)
	baseline, err := catalog.LoadBaseline()
	if err != nil {
		logger.Fatal("failed to load baseline catalog", zap.Error(err))
	}
	logger.Info("baseline catalog loaded", zap.Int("entries", len(baseline.Keys())))

	// Price cache
	var priceCache domain.PriceCache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cfg.Cache.RedisAddr)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		priceCache = redisCache
	default:
		priceCache = cache.NewMemoryCache()
	}

	// Live pricing providers
	var providers []domain.PriceProvider
	if cfg.Providers.Kroger.Enabled {
		providers = append(providers, kroger.NewClient(
			cfg.Providers.Kroger.BaseURL,
			kroger.StaticToken(cfg.Providers.Kroger.APIToken),
			logger.Named("kroger"),
		))
		logger.Info("kroger provider enabled", zap.String("base_url", cfg.Providers.Kroger.BaseURL))
	}

	var reconciler *usecase.Reconciler
	if len(providers) > 0 {
		reconciler = usecase.NewReconciler(providers, priceCache, usecase.ReconcilerConfig{
			LookupTimeout: cfg.Providers.LookupTimeout,
			CacheTTL:      cfg.Cache.TTL,
		}, logger.Named("reconciler"))
	}

	calculator := usecase.NewPortionCostCalculator(usecase.PricingConfig{
		FallbackPerKg:   cfg.Pricing.FallbackPerKg,
		SmallCountEach:  cfg.Pricing.SmallCountEach,
		MediumCountEach: cfg.Pricing.MediumCountEach,
		BulkCountEach:   cfg.Pricing.BulkCountEach,
	})

	estimator := usecase.NewRecipeEstimator(baseline, calculator, reconciler, logger.Named("estimator"))

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(estimator)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger.Named("http"))

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// newLogger builds a zap logger appropriate for the environment
func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

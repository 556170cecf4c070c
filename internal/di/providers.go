package di

import (
	"fmt"

	domrepo "github.com/akal0/profitabledge-sub000/internal/domain/repository"
	"github.com/akal0/profitabledge-sub000/internal/handler/api"
	internalrepo "github.com/akal0/profitabledge-sub000/internal/repository"
	"github.com/akal0/profitabledge-sub000/internal/service/dukascopy"
	"github.com/akal0/profitabledge-sub000/internal/usecase"
	"github.com/akal0/profitabledge-sub000/pkg/cache"
	pkgch "github.com/akal0/profitabledge-sub000/pkg/clickhouse"
	"github.com/akal0/profitabledge-sub000/pkg/config"
	xhttp "github.com/akal0/profitabledge-sub000/pkg/http"
	applogger "github.com/akal0/profitabledge-sub000/pkg/logger"
	"github.com/akal0/profitabledge-sub000/pkg/metrics"
	"github.com/akal0/profitabledge-sub000/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideTradeStore creates the read-only ClickHouse trade store.
func ProvideTradeStore(chClient *pkgch.Client, cfg *config.Config) domrepo.TradeStore {
	table := cfg.ClickHouse.Database + "." + cfg.ClickHouse.TradesTable
	return internalrepo.NewClickHouseTradeStore(chClient.DB(), table)
}

// ProvidePriceSource creates the historical price feed client.
func ProvidePriceSource(cfg *config.Config, logger *applogger.Logger) domrepo.PriceSource {
	return dukascopy.New(dukascopy.Config{
		BaseURL:             cfg.Dukascopy.BaseURL,
		BatchSize:           cfg.Dukascopy.BatchSize,
		PauseBetweenBatches: cfg.Dukascopy.PauseBetweenBatches,
		UTCOffset:           cfg.Dukascopy.UTCOffset,
		Timeout:             cfg.Dukascopy.Timeout,
	}, logger)
}

// ProvidePriceCache creates the optional price series cache. A nil service
// disables caching so every analysis re-fetches from the provider.
func ProvidePriceCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.PriceCache.Enabled {
		return nil, nil
	}

	if cfg.PriceCache.Redis.Enabled {
		rc, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.PriceCache.Redis.Host),
			cache.WithRedisPort(cfg.PriceCache.Redis.Port),
			cache.WithRedisPassword(cfg.PriceCache.Redis.Password),
			cache.WithRedisDB(cfg.PriceCache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("price cache: %w", err)
		}
		return cache.NewLayeredCache(rc), nil
	}

	return cache.NewMemoryCache(), nil
}

// ProvidePriceHistory creates the bar/tick fetcher.
func ProvidePriceHistory(
	source domrepo.PriceSource,
	cacheSvc cache.Service,
	cfg *config.Config,
	m domrepo.Metrics,
	logger *applogger.Logger,
) *usecase.PriceHistory {
	return usecase.NewPriceHistory(source, cacheSvc, cfg.PriceCache.TTL, m, logger)
}

// ProvideDrawdownAnalyzer creates the adverse-excursion analyzer.
func ProvideDrawdownAnalyzer(
	trades domrepo.TradeStore,
	prices *usecase.PriceHistory,
	m domrepo.Metrics,
	logger *applogger.Logger,
) *usecase.DrawdownAnalyzer {
	return usecase.NewDrawdownAnalyzer(trades, prices, m, logger)
}

// ProvideRouter assembles all HTTP handlers.
func ProvideRouter(
	logger *applogger.Logger,
	analyzer *usecase.DrawdownAnalyzer,
	trades domrepo.TradeStore,
) xhttp.Handler {
	return api.NewRouter(
		api.NewDrawdownEchoHandler(logger, analyzer),
		api.NewHealthEchoHandler(logger, trades),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	chClient *pkgch.Client,
	cacheSvc cache.Service,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, logger, chClient, cacheSvc, handler)
}

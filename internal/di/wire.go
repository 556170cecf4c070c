//go:build wireinject
// +build wireinject

package di

import (
	"github.com/akal0/profitabledge-sub000/pkg/config"
	"github.com/akal0/profitabledge-sub000/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvidePriceCache,

		// Repositories and feeds
		ProvideTradeStore,
		ProvidePriceSource,

		// Use cases
		ProvidePriceHistory,
		ProvideDrawdownAnalyzer,

		// HTTP surface
		ProvideRouter,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

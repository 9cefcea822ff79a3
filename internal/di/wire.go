//go:build wireinject
// +build wireinject

package di

import (
	"InvestAgent/pkg/config"
	"InvestAgent/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideStore,
		ProvideCache,
		ProvidePublisher,

		// Services
		ProvideAuthService,
		ProvideTokenService,

		// Use cases
		ProvideSeeder,
		ProvideConfigs,
		ProvidePortfolio,
		ProvideSignals,
		ProvideTrades,
		ProvideAlerts,
		ProvideSettings,
		ProvideAIModels,
		ProvideMarket,
		ProvideNews,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

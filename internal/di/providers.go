package di

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"InvestAgent/internal/domain/repository"
	"InvestAgent/internal/handler/api"
	internalrepo "InvestAgent/internal/repository"
	"InvestAgent/internal/service/auth"
	"InvestAgent/internal/usecase"
	"InvestAgent/pkg/cache"
	"InvestAgent/pkg/config"
	xhttp "InvestAgent/pkg/http"
	pkgkafka "InvestAgent/pkg/kafka"
	"InvestAgent/pkg/logger"
	"InvestAgent/pkg/metrics"
	pkgmongo "InvestAgent/pkg/mongo"
	"InvestAgent/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideStore creates the document store. Memory storage needs no external
// service; mongo storage also creates the unique credential indexes.
func ProvideStore(cfg *config.Config) (repository.Store, error) {
	if cfg.Storage.Type == "memory" {
		return internalrepo.NewMemoryStore(
			internalrepo.WithUniqueIndex(repository.ColUsers, "username", "email"),
		), nil
	}

	client, err := pkgmongo.NewClient(
		pkgmongo.WithURI(cfg.Mongo.URI),
		pkgmongo.WithDatabase(cfg.Mongo.Database),
		pkgmongo.WithTimeouts(cfg.Mongo.ConnectTimeout, cfg.Mongo.QueryTimeout),
		pkgmongo.WithMaxPoolSize(cfg.Mongo.MaxPoolSize),
	)
	if err != nil {
		return nil, fmt.Errorf("mongo client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Unique indexes close the registration check-then-insert race.
	err = client.InitIndexes(ctx, []pkgmongo.Index{
		{Collection: repository.ColUsers, Keys: bson.D{{Key: "username", Value: 1}}, Unique: true},
		{Collection: repository.ColUsers, Keys: bson.D{{Key: "email", Value: 1}}, Unique: true},
		{Collection: repository.ColAssets, Keys: bson.D{{Key: "symbol", Value: 1}}, Unique: false},
	})
	if err != nil {
		_ = client.Close(ctx)
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}

	return internalrepo.NewMongoStore(client), nil
}

// ProvideCache creates the cache backing seed locks and market-data memoization.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Redis.Host, cfg.Redis.Port),
		cache.WithRedisAuth(cfg.Redis.Password, cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvidePublisher creates the event fan-out, or a no-op when disabled.
func ProvidePublisher(cfg *config.Config) (repository.Publisher, error) {
	if !cfg.Events.Enabled {
		return internalrepo.NoopPublisher{}, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Events.WriteTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Events.Topic), nil
}

// ProvideAuthService creates the credential store.
func ProvideAuthService(store repository.Store, m repository.Metrics, cfg *config.Config) *auth.Service {
	return auth.NewService(store, m, cfg.Auth.BcryptCost)
}

// ProvideTokenService creates the bearer token service.
func ProvideTokenService(cfg *config.Config, m repository.Metrics) *auth.TokenService {
	return auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL, m)
}

// ProvideSeeder creates the lazy seeding orchestrator.
func ProvideSeeder(store repository.Store, c cache.Service, log *logger.Logger, m repository.Metrics, cfg *config.Config) *usecase.Seeder {
	return usecase.NewSeeder(store, c, log, m, cfg.Seeding.LockTTL)
}

// ProvideConfigs creates the trading config usecase.
func ProvideConfigs(store repository.Store) *usecase.Configs {
	return usecase.NewConfigs(store)
}

// ProvidePortfolio creates the portfolio usecase.
func ProvidePortfolio(seeder *usecase.Seeder, store repository.Store) *usecase.Portfolio {
	return usecase.NewPortfolio(seeder, store)
}

// ProvideSignals creates the signals usecase.
func ProvideSignals(seeder *usecase.Seeder, store repository.Store, pub repository.Publisher) *usecase.Signals {
	return usecase.NewSignals(seeder, store, pub)
}

// ProvideTrades creates the trades usecase.
func ProvideTrades(seeder *usecase.Seeder, store repository.Store) *usecase.Trades {
	return usecase.NewTrades(seeder, store)
}

// ProvideAlerts creates the alerts usecase.
func ProvideAlerts(seeder *usecase.Seeder, store repository.Store) *usecase.Alerts {
	return usecase.NewAlerts(seeder, store)
}

// ProvideSettings creates the risk settings usecase.
func ProvideSettings(seeder *usecase.Seeder, store repository.Store) *usecase.Settings {
	return usecase.NewSettings(seeder, store)
}

// ProvideAIModels creates the model catalog usecase.
func ProvideAIModels(seeder *usecase.Seeder, store repository.Store) *usecase.AIModels {
	return usecase.NewAIModels(seeder, store)
}

// ProvideMarket creates the market data usecase.
func ProvideMarket(seeder *usecase.Seeder, store repository.Store, c cache.Service, cfg *config.Config) *usecase.Market {
	return usecase.NewMarket(seeder, store, c, cfg.Seeding.MarketDataTTL)
}

// ProvideNews creates the news usecase.
func ProvideNews(seeder *usecase.Seeder, store repository.Store) *usecase.News {
	return usecase.NewNews(seeder, store)
}

// ProvideHandler creates the Echo API handler.
func ProvideHandler(
	log *logger.Logger,
	authSvc *auth.Service,
	tokens *auth.TokenService,
	configs *usecase.Configs,
	portfolio *usecase.Portfolio,
	signals *usecase.Signals,
	trades *usecase.Trades,
	alerts *usecase.Alerts,
	settings *usecase.Settings,
	aiModels *usecase.AIModels,
	market *usecase.Market,
	news *usecase.News,
) xhttp.Handler {
	return api.NewHandler(log, authSvc, tokens, configs, portfolio, signals, trades, alerts, settings, aiModels, market, news)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handler xhttp.Handler,
	store repository.Store,
	c cache.Service,
	pub repository.Publisher,
) *server.App {
	return server.New(cfg, log, handler, store, c, pub)
}

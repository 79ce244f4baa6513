package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/adapters/fetch"
	"github.com/double232/autorouter/internal/adapters/store"
	"github.com/double232/autorouter/internal/config"
	"github.com/double232/autorouter/internal/core"
	"github.com/double232/autorouter/internal/factory"
	"github.com/double232/autorouter/internal/logging"
	"github.com/double232/autorouter/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewExtractorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewMailFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(store.NewFactory); err != nil {
		return nil, err
	}

	// Register extractor
	if err := container.Provide(func(f *factory.ExtractorFactory) (core.Extractor, error) {
		return f.CreateExtractor()
	}); err != nil {
		return nil, err
	}

	// Register mail source
	if err := container.Provide(func(f *factory.MailFactory) (core.MailSource, error) {
		return f.CreateMailSource()
	}); err != nil {
		return nil, err
	}

	// Register document cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.DocumentCache, error) {
		return f.CreateDocumentCache()
	}); err != nil {
		return nil, err
	}

	// Register document store
	if err := container.Provide(func(f *store.Factory, text *utils.TextProcessor) (core.DocumentStore, error) {
		localStore, err := f.CreateStore(text)
		if err != nil {
			return nil, err
		}
		return localStore, nil
	}); err != nil {
		return nil, err
	}

	// Register fetcher
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.Fetcher {
		fetchCfg := cfg.GetFetch()
		return fetch.NewHTTPFetcher(fetchCfg.Timeout, fetchCfg.UserAgent, fetchCfg.MinSize, logger)
	}); err != nil {
		return nil, err
	}

	// Register validator
	if err := container.Provide(core.NewValidator); err != nil {
		return nil, err
	}

	// Register resolver match threshold
	if err := container.Provide(func(cfg *config.Config) float64 {
		return cfg.GetResolver().MatchThreshold
	}); err != nil {
		return nil, err
	}

	// Register processor options
	if err := container.Provide(func(cfg *config.Config) core.ProcessorOptions {
		retryCfg := cfg.GetRetry()
		return core.ProcessorOptions{
			Retry: core.RetryPolicy{
				MaxAttempts: retryCfg.MaxAttempts,
				BaseDelay:   retryCfg.BaseDelay,
				MaxDelay:    retryCfg.MaxDelay,
			},
			MaxItemAge:  cfg.GetMail().MaxItemAge,
			CallTimeout: cfg.GetLLM().RequestTimeout,
		}
	}); err != nil {
		return nil, err
	}

	// Register pipeline runner
	if err := container.Provide(core.NewPipelineRunner); err != nil {
		return nil, err
	}

	return container, nil
}

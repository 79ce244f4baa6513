package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/config"
	"github.com/double232/autorouter/internal/core"
	"github.com/double232/autorouter/internal/di"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	cfg *config.Config,
	runner *core.PipelineRunner,
	extractor core.Extractor,
	mail core.MailSource,
	cache core.DocumentCache,
) error {
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Shutting down...", zap.String("signal", sig.String()))
		cancel()
	}()

	interval := cfg.GetPipeline().Interval
	err := runLoop(ctx, runner, interval, logger)

	// Close any resources that need closing
	for _, closer := range []interface{}{extractor, mail, cache} {
		if c, ok := closer.(interface{ Close() error }); ok {
			if cerr := c.Close(); cerr != nil {
				logger.Error("Failed to close resource", zap.Error(cerr))
			}
		}
	}

	logger.Info("Shutdown complete")
	return err
}

// runLoop executes one pipeline run, then repeats on the configured
// interval. A zero interval means run once and exit.
func runLoop(ctx context.Context, runner *core.PipelineRunner, interval time.Duration, logger *zap.Logger) error {
	if err := runOnce(ctx, runner, logger); err != nil {
		if interval == 0 {
			return err
		}
		logger.Error("Pipeline run failed", zap.Error(err))
	}
	if interval == 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := runOnce(ctx, runner, logger); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Error("Pipeline run failed", zap.Error(err))
			}
		}
	}
}

func runOnce(ctx context.Context, runner *core.PipelineRunner, logger *zap.Logger) error {
	stats, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("Pipeline run complete",
		zap.Int("items", stats.Items),
		zap.Int("processed", stats.Processed),
		zap.Int("filed", stats.Filed),
		zap.Int("flagged_for_review", stats.FlaggedForReview),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed()))
	return nil
}

package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// PipelineRunner iterates an inbox snapshot, drives the state machine
// per item, and aggregates run statistics. Items are independent: one
// item's failure never aborts the batch.
type PipelineRunner struct {
	mail      MailSource
	fetcher   Fetcher
	extractor Extractor
	store     DocumentStore
	cache     DocumentCache
	validator *Validator
	threshold float64
	opts      ProcessorOptions
	logger    *zap.Logger
}

// NewPipelineRunner assembles a runner from the run's collaborators.
func NewPipelineRunner(
	mail MailSource,
	fetcher Fetcher,
	extractor Extractor,
	store DocumentStore,
	cache DocumentCache,
	validator *Validator,
	matchThreshold float64,
	opts ProcessorOptions,
	logger *zap.Logger,
) *PipelineRunner {
	return &PipelineRunner{
		mail:      mail,
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
		cache:     cache,
		validator: validator,
		threshold: matchThreshold,
		opts:      opts,
		logger:    logger,
	}
}

// Run pulls the candidate batch from the mail source and processes it.
func (r *PipelineRunner) Run(ctx context.Context) (*RunStatistics, error) {
	items, err := r.mail.ListCandidateItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidate items: %w", err)
	}
	r.logger.Info("inbox snapshot loaded", zap.Int("items", len(items)))
	return r.ProcessBatch(ctx, items)
}

// ProcessBatch processes a batch of items against one folder snapshot.
// Re-running over still-unacknowledged items is safe: acknowledgment
// only ever follows durable filing.
func (r *PipelineRunner) ProcessBatch(ctx context.Context, items []*InboundItem) (*RunStatistics, error) {
	stats := NewRunStatistics()
	if len(items) == 0 {
		return stats, nil
	}

	// The folder index is loaded once and treated as immutable for the
	// whole run. Staleness window is therefore one run.
	folders, err := r.store.ListFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load folder index: %w", err)
	}
	r.logger.Info("folder index loaded", zap.Int("folders", len(folders)))

	resolver := NewFolderResolver(folders, r.threshold, r.logger)
	processor := NewItemProcessor(
		r.extractor, r.fetcher, r.store, r.cache, r.mail,
		resolver, r.validator, r.opts, r.logger,
	)

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		outcome := processor.Process(ctx, item)
		stats.Record(outcome)
	}

	r.logger.Info("run complete",
		zap.Int("items", stats.Items),
		zap.Int("processed", stats.Processed),
		zap.Int("downloaded", stats.Downloaded),
		zap.Int("filed", stats.Filed),
		zap.Int("flagged_for_review", stats.FlaggedForReview),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed()))
	return stats, nil
}

package store

import (
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/config"
	"github.com/double232/autorouter/internal/utils"
)

// Factory creates document stores
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new store factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateStore creates a local store with its workbook tracker
func (f *Factory) CreateStore(text *utils.TextProcessor) (*LocalStore, error) {
	storeCfg := f.cfg.GetStore()

	tracker := NewTracker(storeCfg.TrackerPath, f.logger)
	return NewLocalStore(storeCfg.CasesRoot, storeCfg.PathPrefix, tracker, text, f.logger), nil
}

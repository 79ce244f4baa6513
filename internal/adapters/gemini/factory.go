package gemini

import (
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/config"
)

// Factory creates Gemini extractors
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new Gemini factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateExtractor creates a new Gemini extractor
func (f *Factory) CreateExtractor() (*Extractor, error) {
	geminiCfg := f.cfg.GetGemini()

	return NewExtractor(
		geminiCfg.APIKey,
		geminiCfg.ModelName,
		geminiCfg.MaxTokens,
		geminiCfg.Temperature,
		geminiCfg.TopP,
		f.logger,
	)
}

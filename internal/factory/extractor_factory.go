// Package factory wires configuration onto concrete adapters.
package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/adapters/bedrock"
	"github.com/double232/autorouter/internal/adapters/gemini"
	"github.com/double232/autorouter/internal/adapters/openai"
	"github.com/double232/autorouter/internal/adapters/vllm"
	"github.com/double232/autorouter/internal/config"
	"github.com/double232/autorouter/internal/core"
)

// ExtractorFactory creates extraction provider adapters
type ExtractorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewExtractorFactory creates a new extractor factory
func NewExtractorFactory(cfg *config.Config, logger *zap.Logger) *ExtractorFactory {
	return &ExtractorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateExtractor creates a new extractor based on the configuration
func (f *ExtractorFactory) CreateExtractor() (core.Extractor, error) {
	llmConfig := f.cfg.GetLLM()

	switch llmConfig.Provider {
	case "claude", "bedrock":
		extractor, err := bedrock.NewFactory(f.cfg, f.logger).CreateExtractor()
		if err != nil {
			return nil, err
		}
		return extractor, nil
	case "openai":
		extractor, err := openai.NewFactory(f.cfg, f.logger).CreateExtractor()
		if err != nil {
			return nil, err
		}
		return extractor, nil
	case "gemini":
		extractor, err := gemini.NewFactory(f.cfg, f.logger).CreateExtractor()
		if err != nil {
			return nil, err
		}
		return extractor, nil
	case "vllm":
		extractor, err := vllm.NewFactory(f.cfg, f.logger).CreateExtractor()
		if err != nil {
			return nil, err
		}
		return extractor, nil
	default:
		return nil, fmt.Errorf("unsupported extraction provider: %s", llmConfig.Provider)
	}
}

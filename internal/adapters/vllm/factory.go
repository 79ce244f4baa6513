package vllm

import (
	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/config"
)

// Factory creates vLLM extractors
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new vLLM factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateExtractor creates a new vLLM extractor pointed at the
// configured base URL.
func (f *Factory) CreateExtractor() (*Extractor, error) {
	vllmCfg := f.cfg.GetVLLM()

	clientCfg := goopenai.DefaultConfig(vllmCfg.APIKey)
	clientCfg.BaseURL = vllmCfg.BaseURL
	client := goopenai.NewClientWithConfig(clientCfg)

	return NewExtractor(
		client,
		vllmCfg.ModelName,
		vllmCfg.MaxTokens,
		vllmCfg.Temperature,
		vllmCfg.TopP,
		f.logger,
	), nil
}

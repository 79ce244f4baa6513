package graph

import (
	"fmt"

	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/config"
	"github.com/double232/autorouter/internal/senders"
)

// Factory creates Graph mail sources
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new Graph factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSource creates a new Graph mail source
func (f *Factory) CreateSource(checker *senders.Checker) (*Source, error) {
	graphCfg := f.cfg.GetGraph()
	mailCfg := f.cfg.GetMail()

	cred := &staticTokenCredential{token: graphCfg.AccessToken}
	client, err := msgraphsdk.NewGraphServiceClientWithCredentials(cred, []string{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Graph client: %w", err)
	}

	return NewSource(client, graphCfg.UserID, graphCfg.Folder, mailCfg.SubjectFilter, checker, f.logger), nil
}

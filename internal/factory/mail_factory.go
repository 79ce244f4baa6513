package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/adapters/mail/graph"
	"github.com/double232/autorouter/internal/adapters/mail/imap"
	"github.com/double232/autorouter/internal/config"
	"github.com/double232/autorouter/internal/core"
	"github.com/double232/autorouter/internal/senders"
)

// MailFactory creates mail sources based on configuration
type MailFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewMailFactory creates a new mail factory
func NewMailFactory(cfg *config.Config, logger *zap.Logger) *MailFactory {
	return &MailFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMailSource creates a mail source based on the configuration
func (f *MailFactory) CreateMailSource() (core.MailSource, error) {
	mailCfg := f.cfg.GetMail()
	checker := senders.NewChecker(mailCfg.TrustedSenders, f.logger)

	switch mailCfg.Source {
	case "imap":
		source, err := imap.NewFactory(f.cfg, f.logger).CreateSource(checker)
		if err != nil {
			return nil, err
		}
		return source, nil
	case "graph", "outlook":
		source, err := graph.NewFactory(f.cfg, f.logger).CreateSource(checker)
		if err != nil {
			return nil, err
		}
		return source, nil
	default:
		return nil, fmt.Errorf("unsupported mail source: %s", mailCfg.Source)
	}
}

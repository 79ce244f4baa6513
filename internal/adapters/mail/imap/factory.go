package imap

import (
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/config"
	"github.com/double232/autorouter/internal/senders"
)

// Factory creates IMAP mail sources
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new IMAP factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSource creates a new IMAP mail source
func (f *Factory) CreateSource(checker *senders.Checker) (*Source, error) {
	imapCfg := f.cfg.GetIMAP()
	mailCfg := f.cfg.GetMail()

	return NewSource(Options{
		Host:               imapCfg.Host,
		Port:               imapCfg.Port,
		Username:           imapCfg.Username,
		Password:           imapCfg.Password,
		UseTLS:             imapCfg.UseTLS,
		InsecureSkipVerify: imapCfg.InsecureSkipVerify,
		Folder:             imapCfg.Folder,
		SubjectFilter:      mailCfg.SubjectFilter,
	}, checker, f.logger), nil
}

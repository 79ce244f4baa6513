// Package senders filters inbound items down to the court e-service
// addresses the firm actually accepts documents from.
package senders

import (
	"strings"

	"go.uber.org/zap"
)

// Checker provides functionality to check if a sender address is trusted
type Checker struct {
	addresses []string
	logger    *zap.Logger
}

// NewChecker creates a new sender checker. An empty list trusts
// everything, leaving filtering to the subject match alone.
func NewChecker(addresses []string, logger *zap.Logger) *Checker {
	normalized := make([]string, len(addresses))
	for i, addr := range addresses {
		normalized[i] = strings.ToLower(strings.TrimSpace(addr))
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("initialized trusted sender checker", zap.Strings("addresses", normalized))
	}

	return &Checker{
		addresses: normalized,
		logger:    logger,
	}
}

// IsTrusted checks if the sender address is on the trusted list.
func (c *Checker) IsTrusted(from string) bool {
	if len(c.addresses) == 0 {
		return true
	}

	from = strings.ToLower(strings.TrimSpace(from))
	for _, addr := range c.addresses {
		if addr == from {
			return true
		}
	}

	if c.logger != nil {
		c.logger.Debug("sender not trusted, skipping item", zap.String("from", from))
	}
	return false
}

package senders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestChecker_EmptyListTrustsEverything(t *testing.T) {
	c := NewChecker(nil, zap.NewNop())

	assert.True(t, c.IsTrusted("anyone@example.com"))
	assert.True(t, c.IsTrusted(""))
}

func TestChecker_MatchesCaseInsensitive(t *testing.T) {
	c := NewChecker([]string{"ESERVICE@MyFLCourtAccess.com", " clerk@court.gov "}, zap.NewNop())

	assert.True(t, c.IsTrusted("eservice@myflcourtaccess.com"))
	assert.True(t, c.IsTrusted("Clerk@Court.gov"))
	assert.False(t, c.IsTrusted("spoof@example.com"))
}

func TestChecker_NoSubstringMatching(t *testing.T) {
	c := NewChecker([]string{"eservice@myflcourtaccess.com"}, zap.NewNop())

	assert.False(t, c.IsTrusted("eservice@myflcourtaccess.com.evil.net"))
}

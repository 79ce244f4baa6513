package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, "claude", cfg.GetLLM().Provider)
	assert.Equal(t, 60*time.Second, cfg.GetLLM().RequestTimeout)

	mail := cfg.GetMail()
	assert.Equal(t, "imap", mail.Source)
	assert.Equal(t, "SERVICE OF COURT DOCUMENT", mail.SubjectFilter)
	assert.Equal(t, 168*time.Hour, mail.MaxItemAge)

	retry := cfg.GetRetry()
	assert.Equal(t, 3, retry.MaxAttempts)
	assert.Equal(t, 2*time.Second, retry.BaseDelay)
	assert.Equal(t, 30*time.Second, retry.MaxDelay)

	assert.InDelta(t, 0.5, cfg.GetResolver().MatchThreshold, 1e-9)
	assert.Equal(t, "/Cases", cfg.GetStore().PathPrefix)
	assert.Equal(t, 1000, cfg.GetFetch().MinSize)
	assert.True(t, cfg.GetCache().Enabled)
}

func TestTypedGetters(t *testing.T) {
	v := NewEmptyViper()
	v.Set("bedrock.region", "eu-west-1")
	v.Set("bedrock.temperature", 0.3)
	v.Set("imap.folder", "INBOX/Court Mail")
	v.Set("mail.trusted_senders", []string{"a@b.c"})
	cfg := NewFromViper(v)

	bedrock := cfg.GetBedrock()
	assert.Equal(t, "eu-west-1", bedrock.Region)
	assert.InDelta(t, 0.3, float64(bedrock.Temperature), 1e-6)

	assert.Equal(t, "INBOX/Court Mail", cfg.GetIMAP().Folder)

	require.Len(t, cfg.GetMail().TrustedSenders, 1)
	assert.Equal(t, "a@b.c", cfg.GetMail().TrustedSenders[0])
}

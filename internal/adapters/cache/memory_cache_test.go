package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/core"
)

func testDoc(url string) *core.DocumentBytes {
	return &core.DocumentBytes{
		Content:   []byte("%PDF-1.7 test"),
		SourceURL: url,
		Title:     "Uniform Trial Order",
	}
}

func TestMemoryCache_PutGet(t *testing.T) {
	c := NewMemoryCache(time.Hour, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, testDoc("https://x/doc?nai=1")))

	doc, ok := c.Get(ctx, "https://x/doc?nai=1")
	require.True(t, ok)
	assert.Equal(t, "Uniform Trial Order", doc.Title)
}

func TestMemoryCache_MissingURL(t *testing.T) {
	c := NewMemoryCache(time.Hour, zap.NewNop())

	_, ok := c.Get(context.Background(), "https://x/doc?nai=absent")
	assert.False(t, ok)
}

func TestMemoryCache_ExpiredEntry(t *testing.T) {
	c := NewMemoryCache(-time.Second, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, testDoc("https://x/doc?nai=1")))

	_, ok := c.Get(ctx, "https://x/doc?nai=1")
	assert.False(t, ok)
}

func TestMemoryCache_OverwriteSameURL(t *testing.T) {
	c := NewMemoryCache(time.Hour, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, testDoc("https://x/doc?nai=1")))
	updated := testDoc("https://x/doc?nai=1")
	updated.Title = "Amended Order"
	require.NoError(t, c.Put(ctx, updated))

	doc, ok := c.Get(ctx, "https://x/doc?nai=1")
	require.True(t, ok)
	assert.Equal(t, "Amended Order", doc.Title)
}

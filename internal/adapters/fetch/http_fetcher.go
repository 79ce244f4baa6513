// Package fetch downloads court documents from the e-service portal.
// Expired portal links return HTML error pages with a 200 status, so
// every download is validated for size and PDF magic bytes.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/core"
)

var pdfMagic = []byte("%PDF")

// HTTPFetcher is an implementation of the core.Fetcher interface over
// plain HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	minSize   int
	logger    *zap.Logger
}

// NewHTTPFetcher creates a new HTTP fetcher. minSize guards against
// error pages masquerading as documents.
func NewHTTPFetcher(timeout time.Duration, userAgent string, minSize int, logger *zap.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		minSize:   minSize,
		logger:    logger,
	}
}

// Fetch downloads one document and validates it is a real PDF.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.DocumentBytes, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.NewExtractionError(core.ErrKindFetchError,
			fmt.Errorf("build request: %w", err))
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, core.NewExtractionError(core.ErrKindFetchError,
			fmt.Errorf("download %s: %w", url, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewExtractionError(core.ErrKindFetchError,
			fmt.Errorf("download %s: unexpected status %d", url, resp.StatusCode))
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewExtractionError(core.ErrKindFetchError,
			fmt.Errorf("read body of %s: %w", url, err))
	}

	if len(content) < f.minSize {
		return nil, core.NewExtractionError(core.ErrKindFetchError,
			fmt.Errorf("downloaded file too small (%d bytes), likely an expired link", len(content)))
	}
	if !bytes.HasPrefix(content, pdfMagic) {
		return nil, core.NewExtractionError(core.ErrKindFetchError,
			fmt.Errorf("downloaded file is not a PDF, likely an error page"))
	}

	f.logger.Debug("document downloaded",
		zap.String("url", url),
		zap.Int("bytes", len(content)))

	return &core.DocumentBytes{Content: content, SourceURL: url}, nil
}

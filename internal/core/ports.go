package core

import (
	"context"
)

// Extractor defines the contract every AI provider adapter satisfies.
// Implementations return *ExtractionError for typed failures and must be
// reentrant: no shared mutable state beyond connection reuse.
type Extractor interface {
	// Extract sends one document plus the extraction prompt to the
	// backend and returns the normalized result.
	Extract(ctx context.Context, doc *DocumentBytes, prompt string) (*ExtractionResult, error)
}

// MailSource defines the interface for the inbound mail transport.
// Implementations apply the subject filter and unread-only constraint.
type MailSource interface {
	// ListCandidateItems returns a snapshot of unprocessed items.
	ListCandidateItems(ctx context.Context) ([]*InboundItem, error)

	// Acknowledge marks an item processed. Must be idempotent: marking
	// an already-processed item a second time is a no-op.
	Acknowledge(ctx context.Context, itemID string) error
}

// Fetcher downloads one document by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*DocumentBytes, error)
}

// DocumentStore defines the interface for the case-management store.
type DocumentStore interface {
	// WriteFile persists content under the folder path and returns the
	// full path of the written file.
	WriteFile(ctx context.Context, folderPath, filename string, content []byte) (string, error)

	// CreateTrackingRecord records a filed document. Idempotent by item
	// id: re-recording identical values is a no-op.
	CreateTrackingRecord(ctx context.Context, rec *TrackingRecord) error

	// ListFolders returns every case folder, loaded once per run to
	// build the resolver cache.
	ListFolders(ctx context.Context) ([]*CaseFolder, error)
}

// DocumentCache keeps downloaded documents for the duration of the
// link-expiry window so a re-run after a partial failure does not fetch
// them again.
type DocumentCache interface {
	Get(ctx context.Context, url string) (*DocumentBytes, bool)
	Put(ctx context.Context, doc *DocumentBytes) error
}

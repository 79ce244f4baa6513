package core

import (
	"errors"
	"fmt"
)

// Stage is a state of the per-item processing machine.
type Stage string

const (
	StageFetched        Stage = "fetched"
	StageLinksExtracted Stage = "links_extracted"
	StagePDFDownloaded  Stage = "pdf_downloaded"
	StageExtracted      Stage = "extracted"
	StageValidated      Stage = "validated"
	StageFiled          Stage = "filed"
	StageTracked        Stage = "tracked"
	StageAcknowledged   Stage = "acknowledged"
)

// ErrorKind is the failure taxonomy shared by every stage.
type ErrorKind string

const (
	ErrKindAuthFailure         ErrorKind = "auth_failure"
	ErrKindRateLimited         ErrorKind = "rate_limited"
	ErrKindTimeout             ErrorKind = "timeout"
	ErrKindMalformedResponse   ErrorKind = "malformed_response"
	ErrKindProviderUnavailable ErrorKind = "provider_unavailable"
	ErrKindNoLinks             ErrorKind = "no_links"
	ErrKindFetchError          ErrorKind = "fetch_error"
	ErrKindNotFoundFolder      ErrorKind = "folder_not_found"
	ErrKindWriteError          ErrorKind = "write_error"
	ErrKindExhaustedRetries    ErrorKind = "exhausted_retries"
)

// Retryable reports whether failures of this kind are transient enough
// to retry locally. Everything else propagates to the terminal state.
func (k ErrorKind) Retryable() bool {
	switch k {
	case ErrKindRateLimited, ErrKindTimeout, ErrKindProviderUnavailable, ErrKindFetchError:
		return true
	default:
		return false
	}
}

// ExtractionError is a typed failure from a provider adapter or fetcher.
type ExtractionError struct {
	Kind ErrorKind
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError wraps err with a failure kind.
func NewExtractionError(kind ErrorKind, err error) *ExtractionError {
	return &ExtractionError{Kind: kind, Err: err}
}

// KindOf extracts the failure kind from an error chain, defaulting to
// fallback for untyped errors.
func KindOf(err error, fallback ErrorKind) ErrorKind {
	var xerr *ExtractionError
	if errors.As(err, &xerr) {
		return xerr.Kind
	}
	return fallback
}

// PipelineError is the terminal failure of one item: the stage that was
// being attempted and the kind that stopped it.
type PipelineError struct {
	Stage Stage
	Kind  ErrorKind
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("stage %s failed (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func failAt(stage Stage, kind ErrorKind, err error) *PipelineError {
	return &PipelineError{Stage: stage, Kind: kind, Err: err}
}

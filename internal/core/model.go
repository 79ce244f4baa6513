package core

import (
	"time"
)

// DocumentType classifies a court order.
type DocumentType string

const (
	DocTypeCMO   DocumentType = "CMO" // case management order
	DocTypeUTO   DocumentType = "UTO" // uniform trial order
	DocTypeOther DocumentType = "OTHER"
)

// NormalizeDocumentType maps a provider-reported type onto the enum.
// Anything unrecognized becomes OTHER rather than an error.
func NormalizeDocumentType(s string) DocumentType {
	switch DocumentType(s) {
	case DocTypeCMO, DocTypeUTO:
		return DocumentType(s)
	default:
		return DocTypeOther
	}
}

// Confidence is the validator's trust signal on an extraction result.
type Confidence string

const (
	ConfidenceHigh Confidence = "HIGH"
	ConfidenceLow  Confidence = "LOW"
)

// DocumentLink is one downloadable document referenced by an inbound item.
type DocumentLink struct {
	Title string
	URL   string
}

// InboundItem is one mail message matched by the intake filter.
// Immutable once fetched; consumed once per run.
type InboundItem struct {
	ID         string
	Subject    string
	Body       string
	From       string
	ReceivedAt time.Time
	Links      []DocumentLink
}

// DocumentBytes is the downloaded content of one document. It is owned
// by the processing instance handling one item and discarded after
// extraction.
type DocumentBytes struct {
	Content   []byte
	SourceURL string
	Title     string
}

// ExtractionResult is the normalized output of AI date/type extraction.
// Nil date fields mean the document did not state that date; they are
// never defaulted.
type ExtractionResult struct {
	CalendarCallDate *Date
	TrialStartDate   *Date
	TrialEndDate     *Date
	DocumentType     DocumentType
	RawResponse      string
	Confidence       Confidence
	ModelUsed        string
}

// CaseIdentity is the (client, matter, style) tuple parsed from an
// item's subject and body, used as the lookup key into the resolver.
type CaseIdentity struct {
	Client     string
	Matter     string
	Style      string
	CaseNumber string
}

// CaseFolder is a destination folder descriptor in the document store.
type CaseFolder struct {
	Path       string
	Client     string
	Matter     string
	Style      string
	ModifiedAt time.Time
}

// TrackingRecord is the row the store writes once a document is filed.
type TrackingRecord struct {
	ItemID           string
	Title            string
	CaseNumber       string
	Client           string
	Matter           string
	Style            string
	FiledPath        string
	DocumentType     DocumentType
	CalendarCallDate *Date
	TrialStartDate   *Date
	TrialEndDate     *Date
}

// ProcessingOutcome records how far one inbound item got.
type ProcessingOutcome struct {
	ItemID           string
	Stage            Stage
	Err              *PipelineError
	FiledPaths       []string
	Downloaded       int
	FlaggedForReview bool
	Skipped          bool
}

// Failed reports whether the item ended in the failure state.
func (o *ProcessingOutcome) Failed() bool {
	return o.Err != nil
}

// RunStatistics aggregates the outcomes of one pipeline run.
type RunStatistics struct {
	Items            int
	Processed        int
	Downloaded       int
	Filed            int
	FlaggedForReview int
	Skipped          int
	FailedByKind     map[ErrorKind]int
}

// NewRunStatistics returns empty statistics ready for recording.
func NewRunStatistics() *RunStatistics {
	return &RunStatistics{FailedByKind: make(map[ErrorKind]int)}
}

// Failed returns the total number of failed items across kinds.
func (s *RunStatistics) Failed() int {
	n := 0
	for _, c := range s.FailedByKind {
		n += c
	}
	return n
}

// Record folds one item outcome into the totals.
func (s *RunStatistics) Record(o *ProcessingOutcome) {
	s.Items++
	s.Downloaded += o.Downloaded
	s.Filed += len(o.FiledPaths)
	if o.Skipped {
		s.Skipped++
		return
	}
	if o.Failed() {
		s.FailedByKind[o.Err.Kind]++
		return
	}
	s.Processed++
	if o.FlaggedForReview {
		s.FlaggedForReview++
	}
}

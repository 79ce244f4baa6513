package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// OrdersSubfolder is where trial orders live inside a case folder.
const OrdersSubfolder = "09 Orders"

var stageOrder = map[Stage]int{
	StageFetched:        0,
	StageLinksExtracted: 1,
	StagePDFDownloaded:  2,
	StageExtracted:      3,
	StageValidated:      4,
	StageFiled:          5,
	StageTracked:        6,
	StageAcknowledged:   7,
}

// ItemProcessor drives one inbound item through the processing states:
// fetched, links extracted, downloaded, extracted, validated, filed,
// tracked, acknowledged. Acknowledgment is strictly the last action so a
// crash mid-item leaves the item unread and safe to re-run.
type ItemProcessor struct {
	extractor Extractor
	fetcher   Fetcher
	store     DocumentStore
	cache     DocumentCache
	mail      MailSource
	resolver  *FolderResolver
	validator *Validator
	retry     RetryPolicy
	prompt    string
	maxAge    time.Duration
	timeout   time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// ProcessorOptions carries the tunables of an ItemProcessor.
type ProcessorOptions struct {
	Prompt      string
	Retry       RetryPolicy
	MaxItemAge  time.Duration
	CallTimeout time.Duration
}

// NewItemProcessor creates a processor bound to one run's resolver
// snapshot.
func NewItemProcessor(
	extractor Extractor,
	fetcher Fetcher,
	store DocumentStore,
	cache DocumentCache,
	mail MailSource,
	resolver *FolderResolver,
	validator *Validator,
	opts ProcessorOptions,
	logger *zap.Logger,
) *ItemProcessor {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.Retry.MaxAttempts == 0 {
		opts.Retry = DefaultRetryPolicy()
	}
	if opts.CallTimeout == 0 {
		opts.CallTimeout = 60 * time.Second
	}
	return &ItemProcessor{
		extractor: extractor,
		fetcher:   fetcher,
		store:     store,
		cache:     cache,
		mail:      mail,
		resolver:  resolver,
		validator: validator,
		retry:     opts.Retry,
		prompt:    opts.Prompt,
		maxAge:    opts.MaxItemAge,
		timeout:   opts.CallTimeout,
		now:       time.Now,
		logger:    logger,
	}
}

// Process runs one item to a terminal state and reports the outcome.
// Each document link runs its own download-extract-validate-file-track
// sub-pipeline; the item acknowledges only when every attempted document
// succeeded.
func (p *ItemProcessor) Process(ctx context.Context, item *InboundItem) *ProcessingOutcome {
	outcome := &ProcessingOutcome{ItemID: item.ID, Stage: StageFetched}

	if p.maxAge > 0 && !item.ReceivedAt.IsZero() && p.now().Sub(item.ReceivedAt) > p.maxAge {
		p.logger.Warn("item older than link-expiry window, skipping",
			zap.String("item_id", item.ID),
			zap.Time("received_at", item.ReceivedAt))
		outcome.Skipped = true
		return outcome
	}

	links := DocumentLinks(item)
	if len(links) == 0 {
		p.fail(outcome, StageLinksExtracted, ErrKindNoLinks,
			fmt.Errorf("no document links in item %s", item.ID))
		return outcome
	}
	p.advance(outcome, StageLinksExtracted)

	identity := ParseCaseIdentity(item.Subject)

	for _, link := range links {
		if err := p.processDocument(ctx, item, identity, link, outcome); err != nil {
			// Remaining links still run: one bad document must not
			// strand its siblings, but the item stays unacknowledged.
			continue
		}
	}

	if outcome.Failed() {
		return outcome
	}

	if err := p.mail.Acknowledge(ctx, item.ID); err != nil {
		p.fail(outcome, StageAcknowledged, ErrKindWriteError,
			fmt.Errorf("acknowledge item %s: %w", item.ID, err))
		return outcome
	}
	p.advance(outcome, StageAcknowledged)

	p.logger.Info("item processed",
		zap.String("item_id", item.ID),
		zap.Strings("filed", outcome.FiledPaths),
		zap.Bool("flagged_for_review", outcome.FlaggedForReview))
	return outcome
}

// processDocument runs the sub-pipeline for one document link.
func (p *ItemProcessor) processDocument(ctx context.Context, item *InboundItem, identity CaseIdentity, link DocumentLink, outcome *ProcessingOutcome) error {
	doc, err := p.download(ctx, link)
	if err != nil {
		// An exhausted retry budget on a download still reports as a
		// fetch failure; ExhaustedRetries is the extraction stage's kind.
		kind := KindOf(err, ErrKindFetchError)
		if kind == ErrKindExhaustedRetries {
			kind = ErrKindFetchError
		}
		p.fail(outcome, StagePDFDownloaded, kind, err)
		return err
	}
	outcome.Downloaded++
	p.advance(outcome, StagePDFDownloaded)

	result, err := p.extract(ctx, doc)
	if err != nil {
		p.fail(outcome, StageExtracted, KindOf(err, ErrKindProviderUnavailable), err)
		return err
	}
	p.advance(outcome, StageExtracted)

	result = p.validator.Validate(result)
	p.advance(outcome, StageValidated)
	if result.Confidence == ConfidenceLow {
		outcome.FlaggedForReview = true
	}

	folder, err := p.resolver.Resolve(identity)
	if err != nil {
		p.fail(outcome, StageFiled, ErrKindNotFoundFolder, err)
		return err
	}

	filename := fmt.Sprintf("%s - %s.pdf", p.now().Format("2006.01.02"), doc.Title)
	filedPath, err := p.store.WriteFile(ctx, folder.Path+"/"+OrdersSubfolder, filename, doc.Content)
	if err != nil {
		p.fail(outcome, StageFiled, ErrKindWriteError, err)
		return err
	}
	outcome.FiledPaths = append(outcome.FiledPaths, filedPath)
	p.advance(outcome, StageFiled)

	rec := &TrackingRecord{
		ItemID:           item.ID,
		Title:            doc.Title,
		CaseNumber:       identity.CaseNumber,
		Client:           folder.Client,
		Matter:           folder.Matter,
		Style:            folder.Style,
		FiledPath:        filedPath,
		DocumentType:     result.DocumentType,
		CalendarCallDate: result.CalendarCallDate,
		TrialStartDate:   result.TrialStartDate,
		TrialEndDate:     result.TrialEndDate,
	}
	// Record creation is idempotent by item id, so one blind retry is
	// safe and usually enough.
	if err := p.store.CreateTrackingRecord(ctx, rec); err != nil {
		p.logger.Warn("tracking record failed, retrying once",
			zap.String("item_id", item.ID), zap.Error(err))
		if err := p.store.CreateTrackingRecord(ctx, rec); err != nil {
			p.fail(outcome, StageTracked, ErrKindWriteError, err)
			return err
		}
	}
	p.advance(outcome, StageTracked)
	return nil
}

// download returns the document for a link, from the run cache when the
// bytes are already on hand.
func (p *ItemProcessor) download(ctx context.Context, link DocumentLink) (*DocumentBytes, error) {
	if p.cache != nil {
		if doc, ok := p.cache.Get(ctx, link.URL); ok {
			p.logger.Debug("document cache hit", zap.String("url", link.URL))
			return doc, nil
		}
	}

	var doc *DocumentBytes
	err := p.retry.Do(ctx, p.logger, ErrKindFetchError, func(ctx context.Context) error {
		fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		var ferr error
		doc, ferr = p.fetcher.Fetch(fetchCtx, link.URL)
		return ferr
	})
	if err != nil {
		return nil, err
	}
	if link.Title != "" {
		doc.Title = link.Title
	}

	if p.cache != nil {
		if err := p.cache.Put(ctx, doc); err != nil {
			p.logger.Warn("failed to cache document", zap.String("url", link.URL), zap.Error(err))
		}
	}
	return doc, nil
}

// extract invokes the provider adapter under the retry policy and the
// hard per-call timeout.
func (p *ItemProcessor) extract(ctx context.Context, doc *DocumentBytes) (*ExtractionResult, error) {
	if len(doc.Content) == 0 {
		return nil, NewExtractionError(ErrKindMalformedResponse, errors.New("empty document"))
	}

	var result *ExtractionResult
	err := p.retry.Do(ctx, p.logger, ErrKindProviderUnavailable, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		var xerr error
		result, xerr = p.extractor.Extract(callCtx, doc, p.prompt)
		return xerr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// advance moves the reached stage forward, never backward: with several
// documents on one item the outcome reports the furthest stage.
func (p *ItemProcessor) advance(outcome *ProcessingOutcome, stage Stage) {
	if stageOrder[stage] > stageOrder[outcome.Stage] {
		outcome.Stage = stage
	}
}

// fail records the first terminal failure of the item.
func (p *ItemProcessor) fail(outcome *ProcessingOutcome, stage Stage, kind ErrorKind, err error) {
	p.logger.Error("item stage failed",
		zap.String("item_id", outcome.ItemID),
		zap.String("stage", string(stage)),
		zap.String("kind", string(kind)),
		zap.Error(err))
	if outcome.Err == nil {
		outcome.Err = failAt(stage, kind, err)
		outcome.Stage = stage
	}
}

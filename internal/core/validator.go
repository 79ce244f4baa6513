package core

import (
	"go.uber.org/zap"
)

// Validator checks an extraction result for schema and plausibility
// problems. It never rejects a result: anything suspect downgrades the
// confidence to LOW so the caller can route it to manual review.
type Validator struct {
	logger *zap.Logger
}

// NewValidator creates a new validator.
func NewValidator(logger *zap.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate returns the result with its confidence settled. The input is
// not mutated; the returned value is a refined copy.
func (v *Validator) Validate(result *ExtractionResult) *ExtractionResult {
	out := *result
	if out.Confidence == "" {
		out.Confidence = ConfidenceHigh
	}

	out.DocumentType = NormalizeDocumentType(string(out.DocumentType))

	out.CalendarCallDate = v.plausibleDate(out.CalendarCallDate, "calendar_call_date", &out)
	out.TrialStartDate = v.plausibleDate(out.TrialStartDate, "trial_start_date", &out)
	out.TrialEndDate = v.plausibleDate(out.TrialEndDate, "trial_end_date", &out)

	// Courts sometimes set out-of-order placeholder dates, so ordering
	// violations flag the result instead of rejecting it.
	if !v.datesOrdered(&out) {
		v.logger.Warn("extracted dates out of order",
			zap.Stringer("calendar_call", stringerOrNil(out.CalendarCallDate)),
			zap.Stringer("trial_start", stringerOrNil(out.TrialStartDate)),
			zap.Stringer("trial_end", stringerOrNil(out.TrialEndDate)))
		out.Confidence = ConfidenceLow
	}

	if out.CalendarCallDate == nil && out.TrialStartDate == nil && out.TrialEndDate == nil {
		v.logger.Warn("no dates extracted, flagging for review")
		out.Confidence = ConfidenceLow
	}

	return &out
}

// plausibleDate drops dates that are not real calendar dates and marks
// the result LOW when that happens.
func (v *Validator) plausibleDate(d *Date, field string, result *ExtractionResult) *Date {
	if d == nil {
		return nil
	}
	if !d.Valid() {
		v.logger.Warn("implausible extracted date",
			zap.String("field", field),
			zap.String("value", d.String()))
		result.Confidence = ConfidenceLow
		return nil
	}
	return d
}

// datesOrdered checks calendar_call <= trial_start <= trial_end over the
// fields that are present.
func (v *Validator) datesOrdered(result *ExtractionResult) bool {
	if result.CalendarCallDate != nil && result.TrialStartDate != nil &&
		result.CalendarCallDate.After(*result.TrialStartDate) {
		return false
	}
	if result.TrialStartDate != nil && result.TrialEndDate != nil &&
		result.TrialStartDate.After(*result.TrialEndDate) {
		return false
	}
	if result.CalendarCallDate != nil && result.TrialEndDate != nil &&
		result.CalendarCallDate.After(*result.TrialEndDate) {
		return false
	}
	return true
}

type nilStringer struct{}

func (nilStringer) String() string { return "<none>" }

func stringerOrNil(d *Date) interface{ String() string } {
	if d == nil {
		return nilStringer{}
	}
	return *d
}

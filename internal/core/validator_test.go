package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dateOf(year int, month time.Month, day int) *Date {
	return &Date{Year: year, Month: month, Day: day}
}

func TestValidator_HighConfidencePassesThrough(t *testing.T) {
	v := NewValidator(zap.NewNop())

	in := &ExtractionResult{
		CalendarCallDate: dateOf(2025, time.May, 5),
		TrialStartDate:   dateOf(2025, time.May, 19),
		TrialEndDate:     dateOf(2025, time.May, 23),
		DocumentType:     DocTypeUTO,
	}

	out := v.Validate(in)
	require.NotNil(t, out)
	assert.Equal(t, ConfidenceHigh, out.Confidence)
	assert.Equal(t, DocTypeUTO, out.DocumentType)
	assert.Equal(t, dateOf(2025, time.May, 19), out.TrialStartDate)
}

func TestValidator_DoesNotMutateInput(t *testing.T) {
	v := NewValidator(zap.NewNop())

	in := &ExtractionResult{DocumentType: "something odd"}
	out := v.Validate(in)

	assert.Equal(t, DocumentType("something odd"), in.DocumentType)
	assert.Equal(t, DocTypeOther, out.DocumentType)
}

func TestValidator_UnknownTypeBecomesOther(t *testing.T) {
	v := NewValidator(zap.NewNop())

	out := v.Validate(&ExtractionResult{
		TrialStartDate: dateOf(2025, time.June, 2),
		DocumentType:   "NOTICE",
	})
	assert.Equal(t, DocTypeOther, out.DocumentType)
	assert.Equal(t, ConfidenceHigh, out.Confidence)
}

func TestValidator_ImplausibleDateDroppedAndFlagged(t *testing.T) {
	v := NewValidator(zap.NewNop())

	out := v.Validate(&ExtractionResult{
		TrialStartDate: dateOf(2025, time.February, 30),
		TrialEndDate:   dateOf(2025, time.March, 7),
		DocumentType:   DocTypeCMO,
	})
	assert.Nil(t, out.TrialStartDate)
	assert.NotNil(t, out.TrialEndDate)
	assert.Equal(t, ConfidenceLow, out.Confidence)
}

func TestValidator_OutOfOrderDatesFlaggedNotRejected(t *testing.T) {
	v := NewValidator(zap.NewNop())

	out := v.Validate(&ExtractionResult{
		CalendarCallDate: dateOf(2025, time.June, 20),
		TrialStartDate:   dateOf(2025, time.June, 2),
		DocumentType:     DocTypeUTO,
	})
	assert.Equal(t, ConfidenceLow, out.Confidence)
	// Dates are kept for manual review.
	assert.NotNil(t, out.CalendarCallDate)
	assert.NotNil(t, out.TrialStartDate)
}

func TestValidator_AllDatesNilForcesLow(t *testing.T) {
	v := NewValidator(zap.NewNop())

	out := v.Validate(&ExtractionResult{DocumentType: DocTypeUTO})
	assert.Equal(t, ConfidenceLow, out.Confidence)
}

func TestValidator_ProviderLowStaysLow(t *testing.T) {
	v := NewValidator(zap.NewNop())

	out := v.Validate(&ExtractionResult{
		TrialStartDate: dateOf(2025, time.June, 2),
		DocumentType:   DocTypeUTO,
		Confidence:     ConfidenceLow,
	})
	assert.Equal(t, ConfidenceLow, out.Confidence)
}

package extraction

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/double232/autorouter/internal/core"
)

func TestParseResponse_CleanJSON(t *testing.T) {
	text := `{
		"calendar_call_date": "2025-05-05",
		"trial_start_date": "2025-05-19",
		"trial_end_date": null,
		"document_type": "UTO"
	}`

	result, err := ParseResponse(text, "test-model")
	require.NoError(t, err)

	assert.Equal(t, core.DocTypeUTO, result.DocumentType)
	assert.Equal(t, &core.Date{Year: 2025, Month: time.May, Day: 5}, result.CalendarCallDate)
	assert.Equal(t, &core.Date{Year: 2025, Month: time.May, Day: 19}, result.TrialStartDate)
	assert.Nil(t, result.TrialEndDate)
	assert.Equal(t, core.ConfidenceHigh, result.Confidence)
	assert.Equal(t, "test-model", result.ModelUsed)
	assert.Equal(t, text, result.RawResponse)
}

func TestParseResponse_JSONWrappedInProse(t *testing.T) {
	text := "Here is the requested analysis:\n```json\n" +
		`{"calendar_call_date": null, "trial_start_date": "03/17/2025", "trial_end_date": "03/21/2025", "document_type": "cmo"}` +
		"\n```\nLet me know if you need anything else."

	result, err := ParseResponse(text, "test-model")
	require.NoError(t, err)

	assert.Equal(t, core.DocTypeCMO, result.DocumentType, "type is upper-cased before normalization")
	assert.Nil(t, result.CalendarCallDate)
	assert.Equal(t, &core.Date{Year: 2025, Month: time.March, Day: 17}, result.TrialStartDate)
}

func TestParseResponse_UnknownTypeBecomesOther(t *testing.T) {
	text := `{"calendar_call_date": null, "trial_start_date": null, "trial_end_date": null, "document_type": "NOTICE OF HEARING"}`

	result, err := ParseResponse(text, "test-model")
	require.NoError(t, err)
	assert.Equal(t, core.DocTypeOther, result.DocumentType)
}

func TestParseResponse_UnreadableDateGoesLow(t *testing.T) {
	text := `{"calendar_call_date": "sometime in May", "trial_start_date": "2025-05-19", "trial_end_date": null, "document_type": "UTO"}`

	result, err := ParseResponse(text, "test-model")
	require.NoError(t, err)

	assert.Nil(t, result.CalendarCallDate)
	assert.NotNil(t, result.TrialStartDate)
	assert.Equal(t, core.ConfidenceLow, result.Confidence)
}

func TestParseResponse_NullStringTreatedAsAbsent(t *testing.T) {
	text := `{"calendar_call_date": "null", "trial_start_date": null, "trial_end_date": null, "document_type": "UTO"}`

	result, err := ParseResponse(text, "test-model")
	require.NoError(t, err)
	assert.Nil(t, result.CalendarCallDate)
	assert.Equal(t, core.ConfidenceHigh, result.Confidence)
}

func TestParseResponse_NoJSON(t *testing.T) {
	_, err := ParseResponse("I could not find any dates in this document.", "test-model")
	require.Error(t, err)
	assert.Equal(t, core.ErrKindMalformedResponse, core.KindOf(err, ""))
}

func TestParseResponse_MissingRequiredField(t *testing.T) {
	_, err := ParseResponse(`{"trial_start_date": "2025-05-19", "document_type": "UTO"}`, "test-model")
	require.Error(t, err)
	assert.Equal(t, core.ErrKindMalformedResponse, core.KindOf(err, ""))
}

func TestParseResponse_WrongFieldType(t *testing.T) {
	_, err := ParseResponse(`{"calendar_call_date": 20250505, "trial_start_date": null, "trial_end_date": null, "document_type": "UTO"}`, "test-model")
	require.Error(t, err)
	assert.Equal(t, core.ErrKindMalformedResponse, core.KindOf(err, ""))
}

func TestParseResponse_RawResponseTruncated(t *testing.T) {
	long := `{"calendar_call_date": null, "trial_start_date": null, "trial_end_date": null, "document_type": "UTO"}` +
		strings.Repeat(" ", 8192)

	result, err := ParseResponse(long, "test-model")
	require.NoError(t, err)
	assert.Len(t, result.RawResponse, 4096)
}

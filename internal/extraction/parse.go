// Package extraction turns free-form provider responses into the strict
// ExtractionResult shape, so downstream stages never see vendor-specific
// output.
package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/double232/autorouter/internal/core"
)

// maxRawResponse caps how much provider text is retained on the result
// for diagnostics.
const maxRawResponse = 4096

// response mirrors the JSON object the prompt requests.
type response struct {
	CalendarCallDate *string `json:"calendar_call_date"`
	TrialStartDate   *string `json:"trial_start_date"`
	TrialEndDate     *string `json:"trial_end_date"`
	DocumentType     string  `json:"document_type"`
}

// ParseResponse coerces raw provider text into an ExtractionResult.
// Failures are typed MalformedResponse: they are never retried, the
// provider would only repeat itself.
func ParseResponse(text, modelUsed string) (*core.ExtractionResult, error) {
	jsonStr, ok := isolateJSON(text)
	if !ok {
		return nil, core.NewExtractionError(core.ErrKindMalformedResponse,
			fmt.Errorf("no JSON object in provider response"))
	}

	var generic any
	if err := json.Unmarshal([]byte(jsonStr), &generic); err != nil {
		return nil, core.NewExtractionError(core.ErrKindMalformedResponse,
			fmt.Errorf("parse provider response: %w", err))
	}
	if err := compiledSchema.Validate(generic); err != nil {
		return nil, core.NewExtractionError(core.ErrKindMalformedResponse,
			fmt.Errorf("provider response schema: %w", err))
	}

	var resp response
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return nil, core.NewExtractionError(core.ErrKindMalformedResponse,
			fmt.Errorf("decode provider response: %w", err))
	}

	result := &core.ExtractionResult{
		DocumentType: core.NormalizeDocumentType(strings.ToUpper(strings.TrimSpace(resp.DocumentType))),
		RawResponse:  truncate(text, maxRawResponse),
		Confidence:   core.ConfidenceHigh,
		ModelUsed:    modelUsed,
	}

	var dateErr bool
	result.CalendarCallDate, dateErr = coerceDate(resp.CalendarCallDate, dateErr)
	result.TrialStartDate, dateErr = coerceDate(resp.TrialStartDate, dateErr)
	result.TrialEndDate, dateErr = coerceDate(resp.TrialEndDate, dateErr)
	if dateErr {
		// A stated date we could not read is suspect output, not a
		// hard failure; the validator routes LOW results to review.
		result.Confidence = core.ConfidenceLow
	}

	return result, nil
}

// coerceDate parses an optional date string, carrying a sticky flag for
// any value that was present but unreadable.
func coerceDate(s *string, failed bool) (*core.Date, bool) {
	if s == nil || strings.TrimSpace(*s) == "" || strings.EqualFold(*s, "null") {
		return nil, failed
	}
	d, err := core.ParseDate(strings.TrimSpace(*s))
	if err != nil {
		return nil, true
	}
	return d, failed
}

// isolateJSON returns the outermost JSON object embedded in text.
// Providers asked for bare JSON still occasionally wrap it in prose or
// code fences.
func isolateJSON(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

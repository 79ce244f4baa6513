package core

// DefaultPrompt asks every backend for the same four fields so behavior
// stays provider-agnostic. Adapters send it alongside the document.
const DefaultPrompt = `You are a legal document analyst. The attached file is a court order from a Florida circuit court.
Extract the following and respond with a JSON object containing exactly these fields:
- calendar_call_date: string in YYYY-MM-DD format, or null if the order does not set a calendar call
- trial_start_date: string in YYYY-MM-DD format, or null if the order does not set a trial period
- trial_end_date: string in YYYY-MM-DD format, or null if the order does not set a trial period end
- document_type: "UTO" for a Uniform Trial Order, "CMO" for a Case Management Order, otherwise "OTHER"

Dates must come from the order text itself. Never guess a date; use null when a date is not stated.
Respond only with the JSON object and nothing else.`

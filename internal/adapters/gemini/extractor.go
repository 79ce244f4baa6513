// Package gemini extracts court-order data with Google Gemini models.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/double232/autorouter/internal/core"
	"github.com/double232/autorouter/internal/extraction"
)

// Extractor is an implementation of the core.Extractor interface using
// Google Gemini.
type Extractor struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	logger    *zap.Logger
}

// NewExtractor creates a new Gemini extractor
func NewExtractor(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
) (*Extractor, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &Extractor{
		client:    client,
		model:     model,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// Close closes the Gemini client
func (e *Extractor) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Extract sends the document as an inline PDF blob alongside the prompt
// and normalizes the response.
func (e *Extractor) Extract(ctx context.Context, doc *core.DocumentBytes, prompt string) (*core.ExtractionResult, error) {
	resp, err := e.model.GenerateContent(ctx,
		genai.Blob{MIMEType: "application/pdf", Data: doc.Content},
		genai.Text(prompt),
	)
	if err != nil {
		return nil, classifyError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, core.NewExtractionError(core.ErrKindMalformedResponse,
			errors.New("empty response from Gemini"))
	}

	var responseText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText += string(text)
		}
	}
	if responseText == "" {
		return nil, core.NewExtractionError(core.ErrKindMalformedResponse,
			errors.New("no text parts in Gemini response"))
	}

	return extraction.ParseResponse(responseText, e.modelName)
}

// classifyError maps Gemini API failures onto the shared taxonomy.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return core.NewExtractionError(core.ErrKindTimeout, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return core.NewExtractionError(core.ErrKindAuthFailure, err)
		case apiErr.Code == 429:
			return core.NewExtractionError(core.ErrKindRateLimited, err)
		case apiErr.Code >= 500:
			return core.NewExtractionError(core.ErrKindProviderUnavailable, err)
		}
	}
	return core.NewExtractionError(core.ErrKindProviderUnavailable, err)
}

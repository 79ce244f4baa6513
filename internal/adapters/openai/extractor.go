// Package openai extracts court-order data with OpenAI chat models.
package openai

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/core"
	"github.com/double232/autorouter/internal/extraction"
)

// Extractor is an implementation of the core.Extractor interface using
// the OpenAI chat completions API.
type Extractor struct {
	client      *openai.Client
	modelName   string
	maxTokens   int
	temperature float32
	topP        float32
	logger      *zap.Logger
}

// NewExtractor creates a new OpenAI extractor
func NewExtractor(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
) *Extractor {
	return &Extractor{
		client:      client,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		topP:        topP,
		logger:      logger,
	}
}

// Extract sends the document as a data URI alongside the prompt and
// normalizes the response.
func (e *Extractor) Extract(ctx context.Context, doc *core.DocumentBytes, prompt string) (*core.ExtractionResult, error) {
	dataURI := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(doc.Content)

	req := openai.ChatCompletionRequest{
		Model: e.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a legal document analyst. Respond only with JSON.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURI,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
		TopP:        e.topP,
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, core.NewExtractionError(core.ErrKindMalformedResponse,
			errors.New("empty response from OpenAI"))
	}

	return extraction.ParseResponse(resp.Choices[0].Message.Content, e.modelName)
}

// classifyError maps API failures onto the shared taxonomy.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return core.NewExtractionError(core.ErrKindTimeout, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return core.NewExtractionError(kindForStatus(apiErr.HTTPStatusCode), err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return core.NewExtractionError(kindForStatus(reqErr.HTTPStatusCode), err)
	}
	return core.NewExtractionError(core.ErrKindProviderUnavailable, err)
}

func kindForStatus(status int) core.ErrorKind {
	switch {
	case status == 401 || status == 403:
		return core.ErrKindAuthFailure
	case status == 429:
		return core.ErrKindRateLimited
	case status == 408:
		return core.ErrKindTimeout
	case status >= 500:
		return core.ErrKindProviderUnavailable
	default:
		return core.ErrKindProviderUnavailable
	}
}

// ClassifyError is shared with the vLLM adapter, which speaks the same
// protocol through the same client library.
func ClassifyError(err error) error {
	return classifyError(err)
}

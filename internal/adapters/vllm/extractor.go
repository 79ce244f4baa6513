// Package vllm extracts court-order data with a self-hosted vLLM server
// exposing the OpenAI-compatible API. The served model must accept
// multimodal input for PDF extraction to work.
package vllm

import (
	"context"
	"encoding/base64"
	"errors"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	openaiadapter "github.com/double232/autorouter/internal/adapters/openai"
	"github.com/double232/autorouter/internal/core"
	"github.com/double232/autorouter/internal/extraction"
)

// Extractor is an implementation of the core.Extractor interface
// against a vLLM endpoint.
type Extractor struct {
	client      *goopenai.Client
	modelName   string
	maxTokens   int
	temperature float32
	topP        float32
	logger      *zap.Logger
}

// NewExtractor creates a new vLLM extractor
func NewExtractor(
	client *goopenai.Client,
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

	req := goopenai.ChatCompletionRequest{
		Model: e.modelName,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role: goopenai.ChatMessageRoleUser,
				MultiContent: []goopenai.ChatMessagePart{
					{
						Type: goopenai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: goopenai.ChatMessagePartTypeImageURL,
						ImageURL: &goopenai.ChatMessageImageURL{
							URL: dataURI,
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
		return nil, openaiadapter.ClassifyError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, core.NewExtractionError(core.ErrKindMalformedResponse,
			errors.New("empty response from vLLM server"))
	}

	return extraction.ParseResponse(resp.Choices[0].Message.Content, e.modelName)
}

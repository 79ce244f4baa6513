// Package bedrock extracts court-order data with Anthropic Claude
// models served through Amazon Bedrock.
package bedrock

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/core"
	"github.com/double232/autorouter/internal/extraction"
)

// Extractor is an implementation of the core.Extractor interface using
// Claude on Amazon Bedrock.
type Extractor struct {
	client           *bedrockruntime.Client
	modelID          string
	anthropicVersion string
	maxTokens        int
	temperature      float32
	topP             float32
	logger           *zap.Logger
}

// NewExtractor creates a new Bedrock extractor
func NewExtractor(
	client *bedrockruntime.Client,
	modelID string,
	anthropicVersion string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
) *Extractor {
	return &Extractor{
		client:           client,
		modelID:          modelID,
		anthropicVersion: anthropicVersion,
		maxTokens:        maxTokens,
		temperature:      temperature,
		topP:             topP,
		logger:           logger,
	}
}

// Extract sends the document and prompt through the Anthropic Messages
// API shape Bedrock expects and normalizes the response.
func (e *Extractor) Extract(ctx context.Context, doc *core.DocumentBytes, prompt string) (*core.ExtractionResult, error) {
	payload, err := json.Marshal(map[string]any{
		"anthropic_version": e.anthropicVersion,
		"max_tokens":        e.maxTokens,
		"temperature":       e.temperature,
		"top_p":             e.topP,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{
						"type": "document",
						"source": map[string]any{
							"type":       "base64",
							"media_type": "application/pdf",
							"data":       base64.StdEncoding.EncodeToString(doc.Content),
						},
					},
					{
						"type": "text",
						"text": prompt,
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := e.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &e.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, classifyError(err)
	}

	var claudeResp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(resp.Body, &claudeResp); err != nil {
		return nil, core.NewExtractionError(core.ErrKindMalformedResponse,
			fmt.Errorf("failed to unmarshal Claude response: %w", err))
	}

	var responseText string
	for _, block := range claudeResp.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}
	if responseText == "" {
		return nil, core.NewExtractionError(core.ErrKindMalformedResponse,
			errors.New("empty response from Claude"))
	}

	return extraction.ParseResponse(responseText, e.modelID)
}

// classifyError maps Bedrock transport failures onto the shared
// taxonomy so the state machine can decide what to retry.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return core.NewExtractionError(core.ErrKindTimeout, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDeniedException", "UnrecognizedClientException", "ExpiredTokenException":
			return core.NewExtractionError(core.ErrKindAuthFailure, err)
		case "ThrottlingException", "TooManyRequestsException":
			return core.NewExtractionError(core.ErrKindRateLimited, err)
		case "ModelTimeoutException":
			return core.NewExtractionError(core.ErrKindTimeout, err)
		case "ServiceUnavailableException", "InternalServerException", "ModelNotReadyException":
			return core.NewExtractionError(core.ErrKindProviderUnavailable, err)
		}
	}
	return core.NewExtractionError(core.ErrKindProviderUnavailable, err)
}

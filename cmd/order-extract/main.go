package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/config"
	"github.com/double232/autorouter/internal/core"
	"github.com/double232/autorouter/internal/factory"
	"github.com/double232/autorouter/internal/logging"
)

var (
	// Provider flags
	provider    = flag.String("provider", "claude", "Extraction provider (claude, openai, gemini, vllm)")
	maxTokens   = flag.Int("max-tokens", 1000, "Maximum tokens for the model response")
	temperature = flag.Float64("temperature", 0.0, "Temperature for generation")
	topP        = flag.Float64("top-p", 0.9, "Top-p for generation")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-3-5-sonnet-20240620-v1:0", "Bedrock model ID")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-1.5-pro", "Gemini model name")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4o", "OpenAI model name")

	// vLLM flags
	vllmBaseURL   = flag.String("vllm-base-url", "http://localhost:8000/v1", "Base URL of the vLLM server")
	vllmModelName = flag.String("vllm-model", "", "Model name served by vLLM")

	// Input flags
	inputFile  = flag.String("file", "", "Input PDF file")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	var cfg *config.Config
	var err error

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *inputFile == "" {
		fmt.Println("Usage: order-extract -file <document.pdf> [flags]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load configuration from file if specified
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		cfg = createConfigFromFlags()
	}

	// Initialize extractor
	extractorFactory := factory.NewExtractorFactory(cfg, logger)
	extractor, err := extractorFactory.CreateExtractor()
	if err != nil {
		logger.Fatal("Failed to create extractor", zap.Error(err))
	}

	content, err := os.ReadFile(*inputFile)
	if err != nil {
		logger.Fatal("Failed to read input file", zap.Error(err), zap.String("file", *inputFile))
	}

	title := strings.TrimSuffix(filepath.Base(*inputFile), filepath.Ext(*inputFile))
	doc := &core.DocumentBytes{
		Content:   content,
		SourceURL: "file://" + *inputFile,
		Title:     title,
	}

	// Print document summary
	fmt.Printf("\n=== Document Summary ===\n")
	fmt.Printf("File: %s\n", *inputFile)
	fmt.Printf("Title: %s\n", title)
	fmt.Printf("Size: %d bytes\n", len(content))
	fmt.Printf("\n")

	fmt.Printf("=== Extraction ===\n")
	fmt.Printf("Provider: %s\n", cfg.GetString("llm.provider"))

	startTime := time.Now()
	result, err := extractor.Extract(context.Background(), doc, core.DefaultPrompt)
	if err != nil {
		logger.Fatal("Failed to extract document", zap.Error(err))
	}
	duration := time.Since(startTime)

	result = core.NewValidator(logger).Validate(result)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Document type: %s\n", result.DocumentType)
	fmt.Printf("Calendar call: %s\n", dateOrDash(result.CalendarCallDate))
	fmt.Printf("Trial start: %s\n", dateOrDash(result.TrialStartDate))
	fmt.Printf("Trial end: %s\n", dateOrDash(result.TrialEndDate))
	fmt.Printf("Confidence: %s\n", result.Confidence)
	fmt.Printf("Model used: %s\n", result.ModelUsed)
	fmt.Printf("Processing time: %v\n", duration)

	// Close any resources that need closing
	if closer, ok := extractor.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close extractor", zap.Error(err))
		}
	}
}

func dateOrDash(d *core.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	// Set extraction provider
	v.Set("llm.provider", *provider)

	// Set provider-specific configuration
	switch *provider {
	case "claude", "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
		v.Set("bedrock.anthropic_version", "bedrock-2023-05-31")
		v.Set("bedrock.max_tokens", *maxTokens)
		v.Set("bedrock.temperature", *temperature)
		v.Set("bedrock.top_p", *topP)
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *geminiModelName)
		v.Set("gemini.max_tokens", *maxTokens)
		v.Set("gemini.temperature", *temperature)
		v.Set("gemini.top_p", *topP)
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
		v.Set("openai.model_name", *openaiModelName)
		v.Set("openai.max_tokens", *maxTokens)
		v.Set("openai.temperature", *temperature)
		v.Set("openai.top_p", *topP)
	case "vllm":
		v.Set("vllm.base_url", *vllmBaseURL)
		v.Set("vllm.model_name", *vllmModelName)
		v.Set("vllm.max_tokens", *maxTokens)
		v.Set("vllm.temperature", *temperature)
		v.Set("vllm.top_p", *topP)
	}

	return config.NewFromViper(v)
}

package config

import "time"

// LLMConfig represents the configuration for the extraction provider
type LLMConfig struct {
	Provider       string
	RequestTimeout time.Duration
}

// BedrockConfig represents the configuration for Claude on Amazon Bedrock
type BedrockConfig struct {
	Region           string
	ModelID          string
	AnthropicVersion string
	MaxTokens        int
	Temperature      float32
	TopP             float32
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// VLLMConfig represents the configuration for a self-hosted
// OpenAI-compatible vLLM server
type VLLMConfig struct {
	BaseURL     string
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// MailConfig represents the intake filter configuration shared by every
// mail transport
type MailConfig struct {
	Source         string
	SubjectFilter  string
	TrustedSenders []string
	MaxItemAge     time.Duration
}

// IMAPConfig represents the configuration for the IMAP mail source
type IMAPConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	UseTLS             bool
	InsecureSkipVerify bool
	Folder             string
}

// GraphConfig represents the configuration for the Microsoft Graph mail source
type GraphConfig struct {
	AccessToken string
	UserID      string
	Folder      string
}

// StoreConfig represents the configuration for the document store
type StoreConfig struct {
	CasesRoot   string
	TrackerPath string
	PathPrefix  string
}

// FetchConfig represents the configuration for PDF downloads
type FetchConfig struct {
	Timeout   time.Duration
	UserAgent string
	MinSize   int
}

// RetryConfig represents the backoff budget for transient failures
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// ResolverConfig represents the fuzzy matching tunables
type ResolverConfig struct {
	MatchThreshold float64
}

// CacheConfig represents the document download cache configuration
type CacheConfig struct {
	Type       string
	Enabled    bool
	TTL        time.Duration
	SQLitePath string
}

// PipelineConfig represents run scheduling
type PipelineConfig struct {
	Interval time.Duration
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider:       c.GetString("llm.provider"),
		RequestTimeout: c.GetDuration("llm.request_timeout"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:           c.GetString("bedrock.region"),
		ModelID:          c.GetString("bedrock.model_id"),
		AnthropicVersion: c.GetString("bedrock.anthropic_version"),
		MaxTokens:        c.GetInt("bedrock.max_tokens"),
		Temperature:      float32(c.GetFloat64("bedrock.temperature")),
		TopP:             float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetVLLM returns the vLLM configuration
func (c *Config) GetVLLM() VLLMConfig {
	return VLLMConfig{
		BaseURL:     c.GetString("vllm.base_url"),
		APIKey:      c.GetString("vllm.api_key"),
		ModelName:   c.GetString("vllm.model_name"),
		MaxTokens:   c.GetInt("vllm.max_tokens"),
		Temperature: float32(c.GetFloat64("vllm.temperature")),
		TopP:        float32(c.GetFloat64("vllm.top_p")),
	}
}

// GetMail returns the shared mail intake configuration
func (c *Config) GetMail() MailConfig {
	return MailConfig{
		Source:         c.GetString("mail.source"),
		SubjectFilter:  c.GetString("mail.subject_filter"),
		TrustedSenders: c.GetStringSlice("mail.trusted_senders"),
		MaxItemAge:     c.GetDuration("mail.max_item_age"),
	}
}

// GetIMAP returns the IMAP configuration
func (c *Config) GetIMAP() IMAPConfig {
	return IMAPConfig{
		Host:               c.GetString("imap.host"),
		Port:               c.GetInt("imap.port"),
		Username:           c.GetString("imap.username"),
		Password:           c.GetString("imap.password"),
		UseTLS:             c.GetBool("imap.use_tls"),
		InsecureSkipVerify: c.GetBool("imap.insecure_skip_verify"),
		Folder:             c.GetString("imap.folder"),
	}
}

// GetGraph returns the Microsoft Graph configuration
func (c *Config) GetGraph() GraphConfig {
	return GraphConfig{
		AccessToken: c.GetString("graph.access_token"),
		UserID:      c.GetString("graph.user_id"),
		Folder:      c.GetString("graph.folder"),
	}
}

// GetStore returns the document store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		CasesRoot:   c.GetString("store.cases_root"),
		TrackerPath: c.GetString("store.tracker_path"),
		PathPrefix:  c.GetString("store.path_prefix"),
	}
}

// GetFetch returns the PDF fetch configuration
func (c *Config) GetFetch() FetchConfig {
	return FetchConfig{
		Timeout:   c.GetDuration("fetch.timeout"),
		UserAgent: c.GetString("fetch.user_agent"),
		MinSize:   c.GetInt("fetch.min_size"),
	}
}

// GetRetry returns the retry configuration
func (c *Config) GetRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: c.GetInt("retry.max_attempts"),
		BaseDelay:   c.GetDuration("retry.base_delay"),
		MaxDelay:    c.GetDuration("retry.max_delay"),
	}
}

// GetResolver returns the resolver configuration
func (c *Config) GetResolver() ResolverConfig {
	return ResolverConfig{
		MatchThreshold: c.GetFloat64("resolver.match_threshold"),
	}
}

// GetCache returns the document cache configuration
func (c *Config) GetCache() CacheConfig {
	return CacheConfig{
		Type:       c.GetString("cache.type"),
		Enabled:    c.GetBool("cache.enabled"),
		TTL:        c.GetDuration("cache.ttl"),
		SQLitePath: c.GetString("cache.sqlite_path"),
	}
}

// GetPipeline returns the pipeline scheduling configuration
func (c *Config) GetPipeline() PipelineConfig {
	return PipelineConfig{
		Interval: c.GetDuration("pipeline.interval"),
	}
}

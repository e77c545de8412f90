package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LLM provider identifiers accepted in LLM_PROVIDER / LLM_FALLBACK_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"
)

// Session store backends accepted in SESSION_STORE.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Lead sink backends accepted in LEAD_SINK.
const (
	LeadSinkMock     = "mock"
	LeadSinkDynamoDB = "dynamodb"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	LLMProvider         string
	LLMFallbackProvider string
	LLMTimeout          time.Duration
	GeminiAPIKey        string
	GeminiModel         string
	OpenAIAPIKey        string
	OpenAIModel         string
	LocalLLMBaseURL     string
	LocalLLMModel       string

	SessionStore  string
	SessionTTL    time.Duration
	RedisAddr     string
	RedisPassword string

	LeadSink               string
	LeadsTable             string
	LeadSinkMaxAttempts    int
	LeadSinkRetryBaseDelay time.Duration

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		LLMProvider:         strings.ToLower(strings.TrimSpace(getEnv("LLM_PROVIDER", ProviderGemini))),
		LLMFallbackProvider: strings.ToLower(strings.TrimSpace(getEnv("LLM_FALLBACK_PROVIDER", ""))),
		LLMTimeout:          getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
		GeminiAPIKey:        getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		LocalLLMBaseURL:     getEnv("LOCAL_LLM_BASE_URL", "http://localhost:11434/v1"),
		LocalLLMModel:       getEnv("LOCAL_LLM_MODEL", "llama3.1"),

		SessionStore:  strings.ToLower(strings.TrimSpace(getEnv("SESSION_STORE", SessionStoreMemory))),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		LeadSink:               strings.ToLower(strings.TrimSpace(getEnv("LEAD_SINK", LeadSinkMock))),
		LeadsTable:             getEnv("LEADS_TABLE", "hvac_leads"),
		LeadSinkMaxAttempts:    getEnvAsInt("LEAD_SINK_MAX_ATTEMPTS", 3),
		LeadSinkRetryBaseDelay: getEnvAsDuration("LEAD_SINK_RETRY_BASE_DELAY", 250*time.Millisecond),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
	}
}

// Validate fails fast on configuration the process cannot run with. Missing
// LLM credentials surface here instead of on the first chat request.
func (c *Config) Validate() error {
	if err := c.validateProvider(c.LLMProvider); err != nil {
		return err
	}
	if c.LLMFallbackProvider != "" {
		if c.LLMFallbackProvider == c.LLMProvider {
			return fmt.Errorf("config: fallback provider %q duplicates the primary", c.LLMFallbackProvider)
		}
		if err := c.validateProvider(c.LLMFallbackProvider); err != nil {
			return err
		}
	}

	switch c.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("config: REDIS_ADDR is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("config: unknown session store %q", c.SessionStore)
	}

	switch c.LeadSink {
	case LeadSinkMock:
	case LeadSinkDynamoDB:
		if strings.TrimSpace(c.LeadsTable) == "" {
			return fmt.Errorf("config: LEADS_TABLE is required when LEAD_SINK=dynamodb")
		}
	default:
		return fmt.Errorf("config: unknown lead sink %q", c.LeadSink)
	}

	return nil
}

func (c *Config) validateProvider(provider string) error {
	switch provider {
	case ProviderGemini:
		if strings.TrimSpace(c.GeminiAPIKey) == "" {
			return fmt.Errorf("config: GOOGLE_API_KEY is required for provider %q", provider)
		}
	case ProviderOpenAI:
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			return fmt.Errorf("config: OPENAI_API_KEY is required for provider %q", provider)
		}
	case ProviderLocal:
		if strings.TrimSpace(c.LocalLLMBaseURL) == "" {
			return fmt.Errorf("config: LOCAL_LLM_BASE_URL is required for provider %q", provider)
		}
	default:
		return fmt.Errorf("config: unknown LLM provider %q", provider)
	}
	return nil
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

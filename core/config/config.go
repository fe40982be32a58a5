package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"basegraph.app/fortune/internal/model"
)

type Config struct {
	OTel    OTelConfig
	LLM     LLMConfig
	Fortune FortuneConfig
	CORS    CORSConfig
	Env     string
	Port    string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type LLMConfig struct {
	Provider  string // "gemini", "openai" or "anthropic"
	APIKey    string
	BaseURL   string // Optional: for custom endpoints
	Model     string
	MaxTokens int // zero leaves the provider default
}

type FortuneConfig struct {
	Mode    model.FortuneMode
	Timeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Load loads configuration from environment variables.
// In development, values from a local .env file are loaded first;
// variables already present in the environment win.
func Load() (Config, error) {
	if getEnv("FORTUNE_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	timeout, err := getEnvDuration("FORTUNE_TIMEOUT", 60*time.Second)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:  getEnv("FORTUNE_ENV", "development"),
		Port: getEnv("PORT", "3000"),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "fortune-relay"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		LLM: LLMConfig{
			Provider:  strings.ToLower(getEnv("FORTUNE_LLM_PROVIDER", ProviderGemini)),
			APIKey:    firstNonEmpty(os.Getenv("LLM_API_KEY"), os.Getenv("GEMINI_API_KEY")),
			BaseURL:   getEnv("FORTUNE_LLM_BASE_URL", ""),
			Model:     getEnv("FORTUNE_LLM_MODEL", ""),
			MaxTokens: getEnvInt("FORTUNE_LLM_MAX_TOKENS", 0),
		},
		Fortune: FortuneConfig{
			Mode:    model.FortuneMode(strings.ToLower(getEnv("FORTUNE_MODE", string(model.FortuneModeStructured)))),
			Timeout: timeout,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY or GEMINI_API_KEY is required")
	}

	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unsupported FORTUNE_LLM_PROVIDER: %q", c.LLM.Provider)
	}

	if !c.Fortune.Mode.IsValid() {
		return fmt.Errorf("unsupported FORTUNE_MODE: %q", c.Fortune.Mode)
	}

	if c.LLM.MaxTokens < 0 {
		return fmt.Errorf("FORTUNE_LLM_MAX_TOKENS must not be negative")
	}

	if c.Fortune.Timeout <= 0 {
		return fmt.Errorf("FORTUNE_TIMEOUT must be positive")
	}

	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

// AllowAll reports whether every origin is permitted.
func (c CORSConfig) AllowAll() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

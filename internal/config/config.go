package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Jamolkhon5/sewing-assistant/internal/ai/sewing/validator"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-3.5-turbo",
	ProviderAnthropic: "claude-3-5-haiku-latest",
	ProviderGemini:    "gemini-2.0-flash",
}

type Config struct {
	Port        string
	GrpcPort    string
	DatabaseURL string
	LogLevel    string
	CorsOrigins []string

	Provider        string
	OpenAIApiKey    string
	AnthropicApiKey string
	GeminiApiKey    string
	ModelName       string
	BaseURL         string
	MaxTokens       int
	Temperature     float64
}

// NewConfig loads envFile into the process environment (a missing file is
// fine) and reads the settings through v. Pass nil to use a fresh viper
// instance.
func NewConfig(envFile string, v *viper.Viper) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	if v == nil {
		v = viper.New()
	}
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("LLM_PROVIDER", ProviderOpenAI)
	v.SetDefault("LLM_MAX_TOKENS", 500)
	v.SetDefault("LLM_TEMPERATURE", 0.7)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Port:        v.GetString("PORT"),
		GrpcPort:    v.GetString("GRPC_PORT"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		CorsOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),

		Provider:        strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
		OpenAIApiKey:    v.GetString("OPENAI_API_KEY"),
		AnthropicApiKey: v.GetString("ANTHROPIC_API_KEY"),
		GeminiApiKey:    v.GetString("GEMINI_API_KEY"),
		ModelName:       v.GetString("LLM_MODEL"),
		BaseURL:         v.GetString("LLM_BASE_URL"),
		MaxTokens:       v.GetInt("LLM_MAX_TOKENS"),
		Temperature:     v.GetFloat64("LLM_TEMPERATURE"),
	}

	if cfg.ModelName == "" {
		cfg.ModelName = defaultModels[cfg.Provider]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, ok := defaultModels[c.Provider]; !ok {
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be within [0, 2], got %v", c.Temperature)
	}
	return nil
}

// ApiKey returns the credential of the selected provider.
func (c *Config) ApiKey() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.AnthropicApiKey
	case ProviderGemini:
		return c.GeminiApiKey
	default:
		return c.OpenAIApiKey
	}
}

// FallbackMode reports whether answers must come from the canned catalog
// because no usable upstream credential is configured.
func (c *Config) FallbackMode() bool {
	return !validator.IsUsableApiKey(c.ApiKey())
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

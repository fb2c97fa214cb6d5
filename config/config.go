package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	defaultPort           = "3004"
	defaultTimeoutSeconds = 60
)

type AIConfig struct {
	Provider       string
	GeminiAPIKey   string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	Model          string
	TimeoutSeconds int
}

// APIKey returns the key for the selected provider.
func (c AIConfig) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

type Config struct {
	Port          string
	Env           string
	TemplatesFile string
	StorageFile   string
	AI            AIConfig
	Log           LogConfig

	// StrictSlots disables the per-category slot rules (SLOT_RULES=strict).
	StrictSlots bool
}

// IsDevelopment reports whether error details may be sent to clients.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads .env files (when present) and then the process environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			slog.Debug("env_file_not_loaded", "file", f, "error", err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() Config {
	env := getenv("GOENV", "")
	if env == "" {
		env = getenv("NODE_ENV", "")
	}

	return Config{
		Port:          getenv("PORT", defaultPort),
		Env:           env,
		TemplatesFile: getenv("TEMPLATES_FILE", ""),
		StorageFile:   getenv("STORAGE_FILE", ""),
		StrictSlots:   strings.EqualFold(getenv("SLOT_RULES", "extended"), "strict"),
		AI: AIConfig{
			Provider:       strings.ToLower(getenv("AI_PROVIDER", ProviderGemini)),
			GeminiAPIKey:   getenv("GEMINI_API_KEY", ""),
			OpenAIAPIKey:   getenv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:  getenv("OPENAI_BASE_URL", ""),
			Model:          getenv("AI_MODEL", ""),
			TimeoutSeconds: getenvInt("AI_TIMEOUT_SECONDS", defaultTimeoutSeconds),
		},
		Log: LogConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "text"),
			File:   getenv("LOG_FILE", ""),
		},
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := getenv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid_env_int", "key", key, "value", v)
		return fallback
	}
	return n
}

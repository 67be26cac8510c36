// Package config loads service settings from the environment, optionally
// seeded by a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ConfigurationError reports a missing or unusable setting. It is fatal and
// surfaced before the server starts.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Key, e.Reason)
}

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	GeminiAPIKey          string
	GeminiModel           string
	GeminiTemperature     float32
	GeminiTopP            float32
	GeminiMaxOutputTokens int32

	SessionSecret    string
	SessionCacheSize int
	MaxUploadBytes   int64
	AnimationPath    string
	CORSOrigins      []string
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash-lite")
	v.SetDefault("GEMINI_TEMPERATURE", 0.7)
	v.SetDefault("GEMINI_TOP_P", 0.95)
	v.SetDefault("GEMINI_MAX_OUTPUT_TOKENS", 2048)
	v.SetDefault("SESSION_CACHE_SIZE", 1024)
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("ANIMATION_PATH", "assets/animation.json")
	v.SetDefault("CORS_ORIGINS", "*")
}

// Load reads .env files (if present) and the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:                  v.GetString("PORT"),
		AppEnv:                v.GetString("APP_ENV"),
		LogLevel:              v.GetString("LOG_LEVEL"),
		GeminiModel:           v.GetString("GEMINI_MODEL"),
		GeminiTemperature:     float32(v.GetFloat64("GEMINI_TEMPERATURE")),
		GeminiTopP:            float32(v.GetFloat64("GEMINI_TOP_P")),
		GeminiMaxOutputTokens: v.GetInt32("GEMINI_MAX_OUTPUT_TOKENS"),
		SessionSecret:         v.GetString("SESSION_SECRET"),
		SessionCacheSize:      v.GetInt("SESSION_CACHE_SIZE"),
		MaxUploadBytes:        v.GetInt64("MAX_UPLOAD_BYTES"),
		AnimationPath:         v.GetString("ANIMATION_PATH"),
		CORSOrigins:           splitList(v.GetString("CORS_ORIGINS")),
	}

	key, err := apiKey(v)
	if err != nil {
		return nil, err
	}
	cfg.GeminiAPIKey = key

	if cfg.SessionCacheSize <= 0 {
		return nil, &ConfigurationError{Key: "SESSION_CACHE_SIZE", Reason: "must be positive"}
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, &ConfigurationError{Key: "MAX_UPLOAD_BYTES", Reason: "must be positive"}
	}
	return cfg, nil
}

// apiKey prefers GEMINI_API_KEY and falls back to the file named by
// GEMINI_API_KEY_FILE.
func apiKey(v *viper.Viper) (string, error) {
	if key := strings.TrimSpace(v.GetString("GEMINI_API_KEY")); key != "" {
		return key, nil
	}

	path := v.GetString("GEMINI_API_KEY_FILE")
	if path == "" {
		return "", &ConfigurationError{Key: "GEMINI_API_KEY", Reason: "is required (or set GEMINI_API_KEY_FILE)"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ConfigurationError{Key: "GEMINI_API_KEY_FILE", Reason: fmt.Sprintf("could not be read: %v", err)}
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", &ConfigurationError{Key: "GEMINI_API_KEY_FILE", Reason: "is empty"}
	}
	return key, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

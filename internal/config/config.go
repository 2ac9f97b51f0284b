// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"calorie-coach/internal/analyzer"
	"calorie-coach/internal/coach"
)

const (
	DefaultModel    = "gemini-2.5-flash"
	DefaultLanguage = "Traditional Chinese"
	DefaultPort     = 8011
)

type Config struct {
	Host        string
	Port        int
	DBPath      string
	APIKey      string
	Model       string
	PromptStyle analyzer.PromptStyle
	Language    string
	LogLevel    logrus.Level
}

// Load reads envFile (if it exists) into the environment and builds a Config
// from it. Variables already set in the process win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Host:     getenv("HOST", "0.0.0.0"),
		Port:     DefaultPort,
		DBPath:   os.Getenv("DB_PATH"),
		APIKey:   os.Getenv("GOOGLE_API_KEY"),
		Model:    getenv("GEMINI_MODEL", DefaultModel),
		Language: getenv("ANALYSIS_LANGUAGE", DefaultLanguage),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	style, err := analyzer.ParsePromptStyle(os.Getenv("PROMPT_STYLE"))
	if err != nil {
		return nil, err
	}
	cfg.PromptStyle = style

	level, err := logrus.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

// Validate reports a missing credential as a *coach.ConfigurationError.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return &coach.ConfigurationError{Err: coach.ErrMissingCredential}
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

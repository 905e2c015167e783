// Package config gathers runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTemplate       = "resources/template.docx"
	DefaultOutputRoot     = "outputs"
	DefaultSofficePath    = "soffice"
	DefaultConvertTimeout = 2 * time.Minute
	DefaultPort           = "3000"
)

type Config struct {
	TemplatePath    string
	OutputRoot      string
	SofficePath     string
	ChromePath      string
	ConvertTimeout  time.Duration
	DisableFallback bool
	VerifyPDF       bool
	FailFast        bool
	DatabaseURL     string
	Port            string
	LogLevel        string
	LogFormat       string
}

// Load reads the configuration from environment variables, applying defaults
// for anything unset.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TemplatePath:   orDefault(getenv("CV_TEMPLATE"), DefaultTemplate),
		OutputRoot:     orDefault(getenv("CV_OUTPUT_ROOT"), DefaultOutputRoot),
		SofficePath:    orDefault(getenv("SOFFICE_PATH"), DefaultSofficePath),
		ChromePath:     getenv("CHROME_PATH"),
		ConvertTimeout: DefaultConvertTimeout,
		VerifyPDF:      true,
		DatabaseURL:    getenv("RUNS_DATABASE_URL"),
		Port:           orDefault(getenv("PORT"), DefaultPort),
		LogLevel:       orDefault(strings.ToLower(getenv("LOG_LEVEL")), "info"),
		LogFormat:      orDefault(strings.ToLower(getenv("LOG_FORMAT")), "text"),
	}

	if v := getenv("CONVERT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CONVERT_TIMEOUT %q: %w", v, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("CONVERT_TIMEOUT must be positive, got %s", d)
		}
		cfg.ConvertTimeout = d
	}

	var err error
	if cfg.DisableFallback, err = boolEnv(getenv, "CV_DISABLE_FALLBACK", false); err != nil {
		return nil, err
	}
	if cfg.VerifyPDF, err = boolEnv(getenv, "CV_VERIFY_PDF", true); err != nil {
		return nil, err
	}
	if cfg.FailFast, err = boolEnv(getenv, "CV_FAIL_FAST", false); err != nil {
		return nil, err
	}
	return cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func boolEnv(getenv func(string) string, key string, def bool) (bool, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

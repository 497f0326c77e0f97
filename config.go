// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package text2map

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config holds the settings of the CLI and HTTP server.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Extraction ExtractionConfig `mapstructure:"extraction" yaml:"extraction"`
	LLM        LLMConfig        `mapstructure:"llm" yaml:"llm"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`

	// CORSOrigins is a comma separated list of allowed origins, or "*". Empty
	// disables CORS headers.
	CORSOrigins string `mapstructure:"cors_origins" yaml:"cors_origins"`

	// APIKey enables bearer authentication when set.
	APIKey string `mapstructure:"api_key" yaml:"api_key,omitempty"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// ExtractionConfig configures the dispatcher and the text limits.
type ExtractionConfig struct {
	MaxFileSize   int64 `mapstructure:"max_file_size" yaml:"max_file_size"`
	MaxTextLength int   `mapstructure:"max_text_length" yaml:"max_text_length"`

	// DisabledFormats lists formats to switch off ("pdf", ".srt", "rich-document").
	DisabledFormats []string `mapstructure:"disabled_formats" yaml:"disabled_formats"`
}

// LLMConfig selects the generation provider.
type LLMConfig struct {
	Provider   string        `mapstructure:"provider" yaml:"provider"`
	Model      string        `mapstructure:"model" yaml:"model"`
	BaseURL    string        `mapstructure:"base_url" yaml:"base_url,omitempty"`
	APIKey     string        `mapstructure:"api_key" yaml:"api_key,omitempty"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" yaml:"max_retries"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8000",
			CORSOrigins:     "http://localhost:3000",
			ReadTimeout:     30 * time.Second,
			RequestTimeout:  3 * time.Minute,
			ShutdownTimeout: 30 * time.Second,
		},
		Extraction: ExtractionConfig{
			MaxFileSize:   DefaultMaxFileSize,
			MaxTextLength: DefaultMaxTextLength,
		},
		LLM: LLMConfig{
			Provider:   "gemini",
			Model:      "gemini-2.5-flash",
			Timeout:    120 * time.Second,
			MaxRetries: 3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Extraction.MaxFileSize <= 0 {
		errs = append(errs, fmt.Errorf("extraction.max_file_size must be positive, got %d", c.Extraction.MaxFileSize))
	}
	if c.Extraction.MaxTextLength <= 0 {
		errs = append(errs, fmt.Errorf("extraction.max_text_length must be positive, got %d", c.Extraction.MaxTextLength))
	}
	for _, name := range c.Extraction.DisabledFormats {
		f, ok := ParseFormat(name)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("extraction.disabled_formats: unknown format %q", name))
		case f == FormatPlainText || f == FormatMarkdown:
			errs = append(errs, fmt.Errorf("extraction.disabled_formats: %s cannot be disabled", f))
		}
	}
	if c.LLM.Timeout < 0 {
		errs = append(errs, errors.New("llm.timeout must not be negative"))
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// DispatcherOptions turns the extraction settings into dispatcher options.
func (c Config) DispatcherOptions(logger *slog.Logger) []Option {
	opts := []Option{
		WithMaxFileSize(c.Extraction.MaxFileSize),
		WithLogger(logger),
	}
	if len(c.Extraction.DisabledFormats) > 0 {
		opts = append(opts, WithDisabledFormatNames(c.Extraction.DisabledFormats...))
	}
	return opts
}

// ParseLogLevel maps a level name to a slog level. Empty means info.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level must be debug, info, warn or error, got %q", s)
}

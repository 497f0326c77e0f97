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

// Package llm provides the generative language model clients used to turn
// prompts into Markdown.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ProviderGemini selects the Google Gemini REST API.
const ProviderGemini = "gemini"

const (
	defaultTimeout = 120 * time.Second
	// maxResponseSize caps how much of a provider response is read.
	maxResponseSize = 10 * 1024 * 1024
)

// Config selects and configures a provider.
type Config struct {
	Provider   string
	Model      string
	APIKey     string
	BaseURL    string // Optional override for testing
	Timeout    time.Duration
	MaxRetries int
}

// Provider turns a prompt into generated text.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrMissingAPIKey is returned when a provider is configured without a key.
var ErrMissingAPIKey = errors.New("llm: API key not configured")

// NewProvider builds the provider named in cfg.
func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderGemini:
		g, err := NewGemini(cfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "":
		return nil, errors.New("llm: no provider configured")
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

// clientSafePatterns maps error patterns to client-safe messages.
var clientSafePatterns = []struct {
	pattern string
	message string
}{
	{"rate limit", "rate limit exceeded"},
	{"resource_exhausted", "quota exceeded"},
	{"quota", "quota exceeded"},
	{"timeout", "request timed out"},
	{"deadline exceeded", "request timed out"},
	{"context canceled", "request cancelled"},
	{"api key", "authentication failed with provider"},
	{"unauthenticated", "authentication failed with provider"},
	{"permission_denied", "access denied by provider"},
	{"blocked", "prompt was blocked by the provider"},
}

// SanitizeForClient converts a provider error into a message that can be
// shown to API clients. The full error is logged.
func SanitizeForClient(err error) string {
	if err == nil {
		return ""
	}

	errLower := strings.ToLower(err.Error())
	for _, p := range clientSafePatterns {
		if strings.Contains(errLower, p.pattern) {
			slog.Debug("sanitizing error for client",
				"original", err.Error(),
				"sanitized", p.message,
			)
			return p.message
		}
	}

	slog.Error("provider error (sanitized for client)", "error", err)
	return "provider temporarily unavailable"
}

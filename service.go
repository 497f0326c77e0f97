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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Generator turns a prompt into Markdown.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// FileResult is the outcome of generating a mind map from an uploaded file.
type FileResult struct {
	Markdown      string
	ExtractedText string
	Filename      string
	FileSize      int64
	Format        Format
	Charset       string
	ContentType   string
}

// Service generates mind maps from raw text or uploaded documents.
type Service struct {
	dispatcher    *Dispatcher
	generator     Generator
	prompt        *promptBuilder
	maxTextLength int
	logger        *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceConfig)

type serviceConfig struct {
	promptTemplate string
	maxTextLength  int
	logger         *slog.Logger
}

// WithPromptTemplate replaces the instruction template. The template
// receives the source text as {{.Text}}.
func WithPromptTemplate(tmpl string) ServiceOption {
	return func(c *serviceConfig) {
		c.promptTemplate = tmpl
	}
}

// WithMaxTextLength sets the raw text limit in characters (default: 50000).
func WithMaxTextLength(n int) ServiceOption {
	return func(c *serviceConfig) {
		c.maxTextLength = n
	}
}

// WithServiceLogger sets the logger used by the service.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(c *serviceConfig) {
		c.logger = l
	}
}

// NewService creates a Service on top of d and g.
func NewService(d *Dispatcher, g Generator, opts ...ServiceOption) (*Service, error) {
	if d == nil || g == nil {
		return nil, fmt.Errorf("service needs a dispatcher and a generator")
	}
	cfg := serviceConfig{
		promptTemplate: DefaultPromptTemplate,
		maxTextLength:  DefaultMaxTextLength,
		logger:         d.logger,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxTextLength <= 0 {
		return nil, fmt.Errorf("max text length must be positive, got %d", cfg.maxTextLength)
	}
	pb, err := newPromptBuilder(cfg.promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Service{
		dispatcher:    d,
		generator:     g,
		prompt:        pb,
		maxTextLength: cfg.maxTextLength,
		logger:        cfg.logger,
	}, nil
}

// Dispatcher returns the dispatcher used for file input.
func (s *Service) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// MaxTextLength returns the raw text limit in characters.
func (s *Service) MaxTextLength() int {
	return s.maxTextLength
}

// GenerateFromText validates raw text and returns the generated mind map.
func (s *Service) GenerateFromText(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	if n := utf8.RuneCountInString(text); n > s.maxTextLength {
		return "", fmt.Errorf("%w: %d characters, limit is %d", ErrTextTooLong, n, s.maxTextLength)
	}
	return s.generate(ctx, text)
}

// GenerateFromFile extracts the document and generates a mind map from its
// text. Extraction errors are returned unchanged.
func (s *Service) GenerateFromFile(ctx context.Context, filename string, data []byte) (*FileResult, error) {
	extracted, err := s.dispatcher.Extract(filename, data)
	if err != nil {
		return nil, err
	}

	md, err := s.generate(ctx, extracted.Content)
	if err != nil {
		return nil, err
	}

	return &FileResult{
		Markdown:      md,
		ExtractedText: extracted.Content,
		Filename:      filename,
		FileSize:      int64(len(data)),
		Format:        extracted.Format,
		Charset:       extracted.Charset,
		ContentType:   DetectContentType(data),
	}, nil
}

func (s *Service) generate(ctx context.Context, text string) (string, error) {
	prompt, err := s.prompt.render(text)
	if err != nil {
		return "", fmt.Errorf("%w: render prompt: %v", ErrGenerationFailed, err)
	}

	s.logger.InfoContext(ctx, "generating mind map", "input_chars", utf8.RuneCountInString(text))
	out, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "generation failed", "error", err)
		return "", &GenerationError{Err: err}
	}
	if strings.TrimSpace(out) == "" {
		s.logger.ErrorContext(ctx, "generation returned no output")
		return "", &GenerationError{}
	}
	s.logger.InfoContext(ctx, "generated mind map", "output_chars", utf8.RuneCountInString(out))
	return out, nil
}

// GenerationError wraps a generator failure. It matches ErrGenerationFailed
// and unwraps to the cause.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return ErrGenerationFailed.Error() + ": empty response"
	}
	return ErrGenerationFailed.Error() + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

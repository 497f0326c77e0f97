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

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	text2map "github.com/nicholasgasior/text2map-go"
	"github.com/nicholasgasior/text2map-go/internal/llm"
)

// setupLogging installs the process wide structured logger.
func setupLogging(c text2map.LogConfig, w io.Writer) *slog.Logger {
	logger := newLogger(c, w)
	slog.SetDefault(logger)
	return logger
}

func newLogger(c text2map.LogConfig, w io.Writer) *slog.Logger {
	level, err := text2map.ParseLogLevel(c.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func newDispatcher(c text2map.Config) (*text2map.Dispatcher, error) {
	d, err := text2map.New(c.DispatcherOptions(slog.Default())...)
	if err != nil {
		return nil, fmt.Errorf("creating dispatcher: %w", err)
	}
	return d, nil
}

// newGenerator builds the configured model client.
func newGenerator(c text2map.LLMConfig) (text2map.Generator, error) {
	return llm.NewProvider(llm.Config{
		Provider:   c.Provider,
		Model:      c.Model,
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		Timeout:    c.Timeout,
		MaxRetries: c.MaxRetries,
	})
}

// unavailableGenerator fails every call with the error that prevented the
// real generator from being built.
func unavailableGenerator(err error) text2map.Generator {
	return text2map.GeneratorFunc(func(context.Context, string) (string, error) {
		return "", err
	})
}

func newService(c text2map.Config, g text2map.Generator) (*text2map.Service, error) {
	d, err := newDispatcher(c)
	if err != nil {
		return nil, err
	}
	return text2map.NewService(d, g,
		text2map.WithMaxTextLength(c.Extraction.MaxTextLength),
		text2map.WithServiceLogger(slog.Default()),
	)
}

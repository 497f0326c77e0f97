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

// Package text2map extracts normalized plain text from uploaded documents and
// turns it into Markdown mind maps through a generative language model.
package text2map

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// DefaultMaxFileSize is the default upload ceiling in bytes.
	DefaultMaxFileSize int64 = 50 * 1024 * 1024
	// DefaultMaxTextLength is the default limit for raw text input, in characters.
	DefaultMaxTextLength = 50000
)

// Dispatcher routes uploaded documents to the extractor for their extension.
// It is safe for concurrent use once built.
type Dispatcher struct {
	registry    *Registry
	maxFileSize int64
	logger      *slog.Logger

	disabled []Format
	custom   []Capability
	initErr  error
}

// New creates a Dispatcher with the built-in capabilities.
func New(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		maxFileSize: DefaultMaxFileSize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.initErr != nil {
		return nil, d.initErr
	}
	if d.maxFileSize <= 0 {
		return nil, fmt.Errorf("max file size must be positive, got %d", d.maxFileSize)
	}

	caps := builtinCapabilities()
	for _, c := range caps {
		if la, ok := c.Extractor.(loggerAware); ok {
			la.setLogger(d.logger)
		}
	}
	d.registry = NewRegistry(append(caps, d.custom...)...)
	for _, f := range d.disabled {
		if err := d.registry.disable(f); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// MaxFileSize returns the upload ceiling in bytes.
func (d *Dispatcher) MaxFileSize() int64 {
	return d.maxFileSize
}

// SupportedFormats lists the formats that can currently be extracted.
func (d *Dispatcher) SupportedFormats() []Format {
	return d.registry.Formats()
}

// SupportedExtensions lists the extensions that can currently be extracted.
func (d *Dispatcher) SupportedExtensions() []string {
	return d.registry.Extensions()
}

// Capabilities reports every known capability, including unavailable ones.
func (d *Dispatcher) Capabilities() []Capability {
	return d.registry.Capabilities()
}

// Extract dispatches data on the extension of filename and returns the
// normalized text.
func (d *Dispatcher) Extract(filename string, data []byte) (*ExtractedText, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	size := int64(len(data))
	if size > d.maxFileSize {
		return nil, &ExtractionError{
			Kind:      KindSizeExceeded,
			Extension: ext,
			Size:      size,
			Limit:     d.maxFileSize,
		}
	}

	c, ok := d.registry.Lookup(ext)
	if !ok {
		return nil, &ExtractionError{
			Kind:      KindUnsupportedFormat,
			Extension: ext,
			Supported: d.SupportedExtensions(),
		}
	}
	if !c.Available() {
		return nil, &ExtractionError{
			Kind:      KindCapabilityUnavailable,
			Format:    c.Format,
			Extension: ext,
			Supported: d.SupportedExtensions(),
			Err:       c.Err,
		}
	}

	text, charset, err := d.run(c, data)
	if err != nil {
		var ee *ExtractionError
		if !errors.As(err, &ee) {
			ee = &ExtractionError{Kind: KindCorruptContent, Err: err}
		}
		if ee.Format == "" {
			ee.Format = c.Format
		}
		if ee.Extension == "" {
			ee.Extension = ext
		}
		d.logger.Warn("extraction failed",
			"filename", filename,
			"format", string(c.Format),
			"kind", ee.Kind.String(),
			"error", err,
		)
		return nil, ee
	}

	text = normalizeText(text)
	if text == "" {
		return nil, &ExtractionError{Kind: KindEmptyResult, Format: c.Format, Extension: ext}
	}

	if charset != "" && charset != CharsetUTF8 {
		if guess, ok := guessCharset(data); ok {
			d.logger.Debug("decoded non utf-8 text",
				"filename", filename,
				"charset", charset,
				"guess", guess.Charset,
				"confidence", guess.Confidence,
			)
		}
	}
	d.logger.Debug("extracted text",
		"filename", filename,
		"format", string(c.Format),
		"bytes", size,
		"chars", len([]rune(text)),
	)
	return &ExtractedText{Content: text, Format: c.Format, Charset: charset}, nil
}

// loggerAware is implemented by extractors that log per-unit failures.
type loggerAware interface {
	setLogger(l *slog.Logger)
}

// run calls the extractor and converts a parser panic into CorruptContent.
func (d *Dispatcher) run(c Capability, data []byte) (text, charset string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, charset = "", ""
			err = newError(KindCorruptContent, c.Format, fmt.Sprintf("parser panic: %v", r), nil)
		}
	}()
	if cr, ok := c.Extractor.(charsetReporter); ok {
		return cr.ExtractWithCharset(data)
	}
	text, err = c.Extractor.Extract(data)
	return text, "", err
}

// ExtractDocument extracts an UploadedDocument.
func (d *Dispatcher) ExtractDocument(doc UploadedDocument) (*ExtractedText, error) {
	return d.Extract(doc.Filename, doc.Data)
}

// ExtractFile reads a local file and extracts it. Files larger than the
// ceiling are refused before they are read.
func (d *Dispatcher) ExtractFile(path string) (*ExtractedText, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if info.Size() > d.maxFileSize {
		return nil, &ExtractionError{
			Kind:      KindSizeExceeded,
			Extension: strings.ToLower(filepath.Ext(path)),
			Size:      info.Size(),
			Limit:     d.maxFileSize,
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return d.Extract(filepath.Base(path), data)
}

// ExtractReader reads at most one byte past the ceiling from r and extracts
// the result.
func (d *Dispatcher) ExtractReader(r io.Reader, filename string) (*ExtractedText, error) {
	data, err := io.ReadAll(io.LimitReader(r, d.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return d.Extract(filename, data)
}

// DetectContentType sniffs the MIME type of data. The result is metadata
// only and never affects which extractor runs.
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

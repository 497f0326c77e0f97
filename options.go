package text2map

import (
	"fmt"
	"log/slog"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMaxFileSize sets the upload ceiling in bytes (default: 50 MiB).
func WithMaxFileSize(n int64) Option {
	return func(d *Dispatcher) {
		d.maxFileSize = n
	}
}

// WithLogger sets the logger used by the dispatcher and its extractors.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithDisabledFormats turns the given formats off. Plain text and Markdown
// cannot be disabled.
func WithDisabledFormats(formats ...Format) Option {
	return func(d *Dispatcher) {
		d.disabled = append(d.disabled, formats...)
	}
}

// WithDisabledFormatNames is WithDisabledFormats for configuration values
// such as "pdf", ".srt" or "rich-document".
func WithDisabledFormatNames(names ...string) Option {
	return func(d *Dispatcher) {
		for _, name := range names {
			f, ok := ParseFormat(name)
			if !ok {
				d.initErr = fmt.Errorf("unknown format %q", name)
				return
			}
			d.disabled = append(d.disabled, f)
		}
	}
}

// WithExtractor registers e for ext, replacing any built-in extractor bound
// to that extension.
func WithExtractor(f Format, ext string, e Extractor) Option {
	return func(d *Dispatcher) {
		d.custom = append(d.custom, Capability{Format: f, Extension: ext, Extractor: e})
	}
}

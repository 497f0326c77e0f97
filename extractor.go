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

// Format identifies a supported document container format.
type Format string

const (
	FormatPlainText         Format = "plain-text"
	FormatMarkdown          Format = "markdown"
	FormatRichDocument      Format = "rich-document"
	FormatPaginatedDocument Format = "paginated-document"
	FormatTimedCaption      Format = "timed-caption"
)

// builtinFormats lists every known format in listing order.
var builtinFormats = []Format{
	FormatPlainText,
	FormatMarkdown,
	FormatRichDocument,
	FormatPaginatedDocument,
	FormatTimedCaption,
}

// Extension returns the file extension bound to the format, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatPlainText:
		return ".txt"
	case FormatMarkdown:
		return ".md"
	case FormatRichDocument:
		return ".docx"
	case FormatPaginatedDocument:
		return ".pdf"
	case FormatTimedCaption:
		return ".srt"
	}
	return ""
}

// ParseFormat resolves a format tag or a file extension ("pdf", ".pdf",
// "paginated-document") to a Format.
func ParseFormat(s string) (Format, bool) {
	for _, f := range builtinFormats {
		ext := f.Extension()
		if s == string(f) || s == ext || "."+s == ext {
			return f, true
		}
	}
	return "", false
}

// UploadedDocument is a file as it arrives at the system boundary.
type UploadedDocument struct {
	Filename string
	Data     []byte
	Size     int64
}

// ExtractedText is the normalized plain-text result of an extraction.
type ExtractedText struct {
	Content string
	Format  Format
	// Charset names the decoding candidate used for text based formats.
	Charset string
}

// Extractor turns the raw bytes of one container format into plain text.
// Implementations must be safe for concurrent use.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(data []byte) (string, error)

func (f ExtractorFunc) Extract(data []byte) (string, error) {
	return f(data)
}

// charsetReporter is implemented by extractors that decode raw text and can
// name the charset they picked.
type charsetReporter interface {
	ExtractWithCharset(data []byte) (text, charset string, err error)
}

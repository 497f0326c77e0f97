package text2map

import (
	"strings"
	"unicode/utf8"
)

// PlainTextExtractor handles .txt files.
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a new PlainTextExtractor.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

func (e *PlainTextExtractor) Extract(data []byte) (string, error) {
	text, _, err := e.ExtractWithCharset(data)
	return text, err
}

func (e *PlainTextExtractor) ExtractWithCharset(data []byte) (string, string, error) {
	text, charset := decodeText(data)
	return text, charset, nil
}

// MarkdownExtractor handles .md files. Markdown syntax is passed through
// untouched.
type MarkdownExtractor struct{}

// NewMarkdownExtractor creates a new MarkdownExtractor.
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{}
}

func (e *MarkdownExtractor) Extract(data []byte) (string, error) {
	text, _, err := e.ExtractWithCharset(data)
	return text, err
}

func (e *MarkdownExtractor) ExtractWithCharset(data []byte) (string, string, error) {
	if utf8.Valid(data) {
		return strings.TrimSpace(string(data)), CharsetUTF8, nil
	}
	text, charset := decodeText(data)
	return text, charset, nil
}

func textCapability() Capability {
	return Capability{
		Format:    FormatPlainText,
		Extension: FormatPlainText.Extension(),
		Extractor: NewPlainTextExtractor(),
	}
}

func markdownCapability() Capability {
	return Capability{
		Format:    FormatMarkdown,
		Extension: FormatMarkdown.Extension(),
		Extractor: NewMarkdownExtractor(),
	}
}

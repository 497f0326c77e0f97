//go:build !nosrt

package text2map

import (
	"strings"
	"unicode/utf8"

	"github.com/nicholasgasior/text2map-go/internal/subtitle"
)

// SRTExtractor handles SubRip caption files. Only the caption text is kept;
// indices and timings are dropped.
type SRTExtractor struct{}

// NewSRTExtractor creates a new SRTExtractor.
func NewSRTExtractor() *SRTExtractor {
	return &SRTExtractor{}
}

func (e *SRTExtractor) Extract(data []byte) (string, error) {
	text, _, err := e.ExtractWithCharset(data)
	return text, err
}

func (e *SRTExtractor) ExtractWithCharset(data []byte) (string, string, error) {
	content, charset, ok := decodeCaption(data)
	if !ok {
		return "", "", newError(KindDecodeFailure, FormatTimedCaption, "caption encoding unsupported", nil)
	}

	cues, err := subtitle.Parse(content)
	if err != nil {
		return "", "", newError(KindDecodeFailure, FormatTimedCaption, "malformed captions", err)
	}

	var texts []string
	for _, c := range cues {
		if t := strings.TrimSpace(c.Content); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, "\n"), charset, nil
}

// decodeCaption accepts UTF-8 and falls back to GBK only.
func decodeCaption(data []byte) (string, string, bool) {
	if utf8.Valid(data) {
		return string(data), CharsetUTF8, true
	}
	if text, ok := decodeGBK(data); ok {
		return text, CharsetGBK, true
	}
	return "", "", false
}

func srtCapability() Capability {
	return Capability{
		Format:    FormatTimedCaption,
		Extension: FormatTimedCaption.Extension(),
		Extractor: NewSRTExtractor(),
	}
}

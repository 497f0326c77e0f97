//go:build !nosrt

package text2map

import (
	"errors"
	"testing"
)

func TestSRTExtractor(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		want        string
		wantCharset string
	}{
		{
			name:        "cues joined",
			input:       []byte("1\n00:00:01,000 --> 00:00:02,000\na\n\n2\n00:00:02,000 --> 00:00:03,000\nb\n\n3\n00:00:03,000 --> 00:00:04,000\nc\n"),
			want:        "a\nb\nc",
			wantCharset: CharsetUTF8,
		},
		{
			name:        "multi-line cue and blank cue",
			input:       []byte("1\r\n00:00:01,000 --> 00:00:02,000\r\n  Hello\r\nthere  \r\n\r\n2\r\n00:00:02,000 --> 00:00:03,000\r\n \r\n"),
			want:        "Hello\nthere",
			wantCharset: CharsetUTF8,
		},
		{
			name:        "blank line inside a cue",
			input:       []byte("1\n00:00:01,000 --> 00:00:02,000\nfirst line\n\nsecond line\n\n2\n00:00:02,000 --> 00:00:03,000\nnext cue\n"),
			want:        "first line\n\nsecond line\nnext cue",
			wantCharset: CharsetUTF8,
		},
		{
			name:        "gbk captions",
			input:       append([]byte("1\n00:00:01,000 --> 00:00:02,000\n"), 0xC4, 0xE3, 0xBA, 0xC3),
			want:        "你好",
			wantCharset: CharsetGBK,
		},
	}

	e := NewSRTExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, charset, err := e.ExtractWithCharset(tt.input)
			if err != nil {
				t.Fatalf("ExtractWithCharset() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractWithCharset() = %q, want %q", got, tt.want)
			}
			if charset != tt.wantCharset {
				t.Errorf("charset = %q, want %q", charset, tt.wantCharset)
			}
		})
	}
}

func TestSRTExtractorDecodeFailure(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"neither utf-8 nor gbk", []byte{0xFF, 0xFE, 0x00}},
		{"malformed timing", []byte("1\nnot a timing line\ntext\n")},
	}

	e := NewSRTExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(tt.input)
			if !errors.Is(err, ErrDecodeFailure) {
				t.Fatalf("Extract() error = %v, want decode failure", err)
			}
		})
	}
}

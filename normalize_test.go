package text2map

import "testing"

func TestNormalization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "surrounding whitespace",
			input: "  \n hello world \n\t",
			want:  "hello world",
		},
		{
			name:  "blank lines kept",
			input: "page one\n\npage two",
			want:  "page one\n\npage two",
		},
		{
			name:  "crlf",
			input: "hello\r\nworld\r\n",
			want:  "hello\nworld",
		},
		{
			name:  "lone cr",
			input: "hello\rworld",
			want:  "hello\nworld",
		},
		{
			name:  "control characters",
			input: "hello\x00world\x01test\x7f",
			want:  "helloworldtest",
		},
		{
			name:  "tabs kept",
			input: "a\tb",
			want:  "a\tb",
		},
		{
			name:  "byte order mark",
			input: "\uFEFFtitle",
			want:  "title",
		},
		{
			name:  "invalid utf-8 dropped",
			input: "ok\xff\xfeok",
			want:  "okok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeText(tt.input)
			if got != tt.want {
				t.Errorf("normalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

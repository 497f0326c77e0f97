//go:build !nodocx && !nopdf && !nosrt

package text2map

import (
	"reflect"
	"testing"
)

func TestSupportedFormats(t *testing.T) {
	d := newTestDispatcher(t)

	wantExts := []string{".txt", ".md", ".docx", ".pdf", ".srt"}
	if got := d.SupportedExtensions(); !reflect.DeepEqual(got, wantExts) {
		t.Errorf("SupportedExtensions() = %v, want %v", got, wantExts)
	}

	wantFormats := []Format{FormatPlainText, FormatMarkdown, FormatRichDocument, FormatPaginatedDocument, FormatTimedCaption}
	if got := d.SupportedFormats(); !reflect.DeepEqual(got, wantFormats) {
		t.Errorf("SupportedFormats() = %v, want %v", got, wantFormats)
	}

	_, err := d.Extract("slides.pptx", []byte("x"))
	want := `unsupported file format ".pptx"; supported formats: .txt, .md, .docx, .pdf, .srt`
	if err == nil || err.Error() != want {
		t.Errorf("Extract() error = %v, want %q", err, want)
	}
}

func TestDispatchEveryFormat(t *testing.T) {
	d := newTestDispatcher(t)

	tests := []struct {
		filename string
		data     []byte
		want     string
	}{
		{"a.txt", []byte("plain"), "plain"},
		{"a.md", []byte("# md"), "# md"},
		{"a.docx", buildDocx(t, para("word")), "word"},
		{"a.pdf", buildPDF(0, textStream("page")), "page"},
		{"a.srt", []byte("1\n00:00:00,000 --> 00:00:01,000\ncaption\n"), "caption"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := d.Extract(tt.filename, tt.data)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if got.Content != tt.want {
				t.Errorf("Content = %q, want %q", got.Content, tt.want)
			}
		})
	}
}

//go:build !nopdf

package text2map

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor handles PDF files page by page.
type PDFExtractor struct {
	Logger *slog.Logger
}

// NewPDFExtractor creates a new PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) setLogger(l *slog.Logger) {
	e.Logger = l
}

func (e *PDFExtractor) Extract(data []byte) (string, error) {
	r, err := openPDF(data)
	if err != nil {
		return "", newError(KindCorruptContent, FormatPaginatedDocument, "open PDF", err)
	}
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return joinPages(pdfPages{r}, logger), nil
}

func openPDF(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// pdfPages adapts a ledongthuc reader to pageSource.
type pdfPages struct {
	r *pdf.Reader
}

func (p pdfPages) NumPage() int {
	return p.r.NumPage()
}

func (p pdfPages) PageText(n int) (string, error) {
	page := p.r.Page(n)
	if page.V.IsNull() {
		return "", errors.New("page object missing")
	}
	rows, err := page.GetTextByRow()
	if err == nil {
		if text := rowsText(rows); strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	text := positionedText(page.Content().Text)
	if strings.TrimSpace(text) == "" && err != nil {
		return "", err
	}
	return text, nil
}

// rowsText joins the rows of a page. An empty fragment between two
// non-empty ones marks a text positioning operator and becomes a space.
func rowsText(rows pdf.Rows) string {
	var b strings.Builder
	for _, row := range rows {
		var line strings.Builder
		gap := false
		for _, word := range row.Content {
			if word.S == "" {
				gap = true
				continue
			}
			if gap && line.Len() > 0 && !strings.HasSuffix(line.String(), " ") {
				line.WriteByte(' ')
			}
			line.WriteString(word.S)
			gap = false
		}
		if text := strings.TrimSpace(line.String()); text != "" {
			b.WriteString(text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// glyphLine is the glyphs sharing one baseline.
type glyphLine struct {
	y      float64
	glyphs []pdf.Text
}

// positionedText rebuilds lines from individually placed glyphs: glyphs are
// grouped by baseline, lines ordered top to bottom and glyphs left to right.
// A horizontal gap wider than a fifth of the font size becomes a space.
func positionedText(glyphs []pdf.Text) string {
	var lines []glyphLine
	tolerance := 3.0
	for _, g := range glyphs {
		if strings.TrimSpace(g.S) == "" {
			continue
		}
		if len(lines) == 0 && g.FontSize > 0 {
			tolerance = g.FontSize * 0.3
		}
		placed := false
		for i := range lines {
			if math.Abs(lines[i].y-g.Y) < tolerance {
				lines[i].glyphs = append(lines[i].glyphs, g)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, glyphLine{y: g.Y, glyphs: []pdf.Text{g}})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	var b strings.Builder
	for _, ln := range lines {
		sort.SliceStable(ln.glyphs, func(i, j int) bool { return ln.glyphs[i].X < ln.glyphs[j].X })
		var line strings.Builder
		var end float64
		for i, g := range ln.glyphs {
			if i > 0 && g.X-end > math.Max(g.FontSize*0.2, 1) {
				line.WriteByte(' ')
			}
			line.WriteString(g.S)
			// Advance width is estimated from the font size.
			end = g.X + float64(utf8.RuneCountInString(g.S))*g.FontSize*0.55
		}
		b.WriteString(line.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func pdfCapability() Capability {
	return Capability{
		Format:    FormatPaginatedDocument,
		Extension: FormatPaginatedDocument.Extension(),
		Extractor: NewPDFExtractor(),
	}
}

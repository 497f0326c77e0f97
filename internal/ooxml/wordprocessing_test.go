package ooxml

import (
	"archive/zip"
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func wrapBody(body string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="` + NSWordprocessingML + `" xmlns:m="` + NSMath + `"><w:body>` +
		body + `</w:body></w:document>`)
}

func TestParseDocumentParagraphs(t *testing.T) {
	body := `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t>Hello</w:t></w:r><w:r><w:t xml:space="preserve"> world</w:t></w:r></w:p>` +
		`<w:p><w:hyperlink><w:r><w:t>link</w:t></w:r></w:hyperlink><w:r><w:tab/><w:t>after</w:t><w:br/><w:t>next</w:t></w:r></w:p>` +
		`<w:p><w:ins><w:r><w:t>kept</w:t></w:r></w:ins><w:del><w:r><w:delText>gone</w:delText></w:r></w:del></w:p>` +
		`<w:p><w:r><w:drawing><w:t>caption</w:t></w:drawing></w:r></w:p>` +
		`<w:p><m:oMath><m:r><m:t>x=1</m:t></m:r></m:oMath></w:p>` +
		`<w:sectPr/>`

	doc, err := ParseDocument(wrapBody(body))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	want := []string{"Hello world", "link\tafter\nnext", "kept", "", "x=1"}
	if !reflect.DeepEqual(doc.Paragraphs, want) {
		t.Errorf("Paragraphs = %q, want %q", doc.Paragraphs, want)
	}
	if len(doc.Tables) != 0 {
		t.Errorf("Tables = %v, want none", doc.Tables)
	}
}

func TestParseDocumentTables(t *testing.T) {
	body := `<w:tbl><w:tblPr/><w:tblGrid><w:gridCol/><w:gridCol/></w:tblGrid>` +
		`<w:tr><w:tc><w:tcPr/><w:p><w:r><w:t>A1</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>B1</w:t></w:r></w:p><w:p><w:r><w:t>more</w:t></w:r></w:p></w:tc></w:tr>` +
		`<w:tr><w:tc><w:tcPr><w:gridSpan w:val="2"/></w:tcPr><w:p><w:r><w:t>merged</w:t></w:r></w:p></w:tc></w:tr>` +
		`</w:tbl>` +
		`<w:p><w:r><w:t>after table</w:t></w:r></w:p>`

	doc, err := ParseDocument(wrapBody(body))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	want := []Table{{Rows: [][]string{{"A1", "B1\nmore"}, {"merged"}}}}
	if !reflect.DeepEqual(doc.Tables, want) {
		t.Errorf("Tables = %q, want %q", doc.Tables, want)
	}
	if !reflect.DeepEqual(doc.Paragraphs, []string{"after table"}) {
		t.Errorf("Paragraphs = %q", doc.Paragraphs)
	}
}

func TestParseDocumentStrictNamespace(t *testing.T) {
	data := []byte(`<w:document xmlns:w="` + NSWordprocessingMLStrict + `"><w:body>` +
		`<w:p><w:r><w:t>strict</w:t></w:r></w:p></w:body></w:document>`)
	doc, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if !reflect.DeepEqual(doc.Paragraphs, []string{"strict"}) {
		t.Errorf("Paragraphs = %q", doc.Paragraphs)
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"no body", `<w:document xmlns:w="` + NSWordprocessingML + `"></w:document>`, "no body"},
		{"truncated", `<w:document xmlns:w="` + NSWordprocessingML + `"><w:body><w:p><w:r>`, "decode document"},
		{"not xml", `PK\x03\x04 binary`, "no body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseDocument() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestReadFileFromZip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(DocumentPart)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("<doc/>"))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	zr, err := OpenPackage(buf.Bytes())
	if err != nil {
		t.Fatalf("OpenPackage() error = %v", err)
	}
	got, err := ReadFileFromZip(zr, DocumentPart)
	if err != nil || string(got) != "<doc/>" {
		t.Errorf("ReadFileFromZip() = %q, %v", got, err)
	}
	if _, err := ReadFileFromZip(zr, "word/missing.xml"); err == nil {
		t.Error("ReadFileFromZip() found a missing part")
	}

	if _, err := OpenPackage([]byte("not a zip")); err == nil {
		t.Error("OpenPackage() accepted garbage")
	}
}

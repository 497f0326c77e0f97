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

package ooxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Document is the text model of a word-processing body. Only direct
// children of w:body are collected, in document order per kind.
type Document struct {
	Paragraphs []string
	Tables     []Table
}

// Table holds the text of a body-level table. Each cell is the text of its
// direct paragraphs joined by "\n". Horizontally merged cells appear once.
type Table struct {
	Rows [][]string
}

// skippedElements hold content that is not part of the running text, or
// properties whose children reuse run element names (w:tabs/w:tab).
var skippedElements = map[string]bool{
	"pPr":              true,
	"rPr":              true,
	"del":              true,
	"moveFrom":         true,
	"drawing":          true,
	"pict":             true,
	"object":           true,
	"txbxContent":      true,
	"AlternateContent": true,
	"fldData":          true,
}

// ParseDocument decodes the contents of word/document.xml.
func ParseDocument(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, errors.New("document has no body")
		}
		if err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok && isWord(se.Name, "body") {
			doc := &Document{}
			if err := parseBody(dec, doc); err != nil {
				return nil, fmt.Errorf("decode document: %w", err)
			}
			return doc, nil
		}
	}
}

func isWord(n xml.Name, local string) bool {
	if n.Local != local {
		return false
	}
	return n.Space == NSWordprocessingML || n.Space == NSWordprocessingMLStrict || n.Space == ""
}

func isMathText(n xml.Name) bool {
	return n.Local == "t" && n.Space == NSMath
}

func parseBody(dec *xml.Decoder, doc *Document) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isWord(t.Name, "p"):
				text, err := parseParagraph(dec)
				if err != nil {
					return err
				}
				doc.Paragraphs = append(doc.Paragraphs, text)
			case isWord(t.Name, "tbl"):
				table, err := parseTable(dec)
				if err != nil {
					return err
				}
				doc.Tables = append(doc.Tables, table)
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// parseParagraph collects the text of a w:p whose start element has been
// consumed. Runs nested in hyperlinks, insertions, smart tags and fields are
// included. Equations contribute their literal run text.
func parseParagraph(dec *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	inText := false
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if skippedElements[t.Name.Local] {
				if err := dec.Skip(); err != nil {
					return "", err
				}
				continue
			}
			depth++
			switch {
			case isWord(t.Name, "t"), isMathText(t.Name):
				inText = true
			case isWord(t.Name, "tab"):
				b.WriteByte('\t')
			case isWord(t.Name, "br"), isWord(t.Name, "cr"):
				b.WriteByte('\n')
			}
		case xml.EndElement:
			depth--
			if isWord(t.Name, "t") || isMathText(t.Name) {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

func parseTable(dec *xml.Decoder) (Table, error) {
	var table Table
	for {
		tok, err := dec.Token()
		if err != nil {
			return table, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !isWord(t.Name, "tr") {
				if err := dec.Skip(); err != nil {
					return table, err
				}
				continue
			}
			row, err := parseRow(dec)
			if err != nil {
				return table, err
			}
			table.Rows = append(table.Rows, row)
		case xml.EndElement:
			return table, nil
		}
	}
}

func parseRow(dec *xml.Decoder) ([]string, error) {
	var row []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !isWord(t.Name, "tc") {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			cell, err := parseCell(dec)
			if err != nil {
				return nil, err
			}
			row = append(row, cell)
		case xml.EndElement:
			return row, nil
		}
	}
}

func parseCell(dec *xml.Decoder) (string, error) {
	var paras []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !isWord(t.Name, "p") {
				if err := dec.Skip(); err != nil {
					return "", err
				}
				continue
			}
			text, err := parseParagraph(dec)
			if err != nil {
				return "", err
			}
			paras = append(paras, text)
		case xml.EndElement:
			return strings.Join(paras, "\n"), nil
		}
	}
}

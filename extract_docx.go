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

//go:build !nodocx

package text2map

import (
	"strings"

	"github.com/nicholasgasior/text2map-go/internal/ooxml"
)

// DocxExtractor handles DOCX files. Body paragraphs come first, followed by
// the text of body tables row by row.
type DocxExtractor struct{}

// NewDocxExtractor creates a new DocxExtractor.
func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{}
}

func (e *DocxExtractor) Extract(data []byte) (string, error) {
	zr, err := ooxml.OpenPackage(data)
	if err != nil {
		return "", newError(KindCorruptContent, FormatRichDocument, "", err)
	}

	docData, err := ooxml.ReadFileFromZip(zr, ooxml.DocumentPart)
	if err != nil {
		return "", newError(KindCorruptContent, FormatRichDocument, "", err)
	}

	doc, err := ooxml.ParseDocument(docData)
	if err != nil {
		return "", newError(KindCorruptContent, FormatRichDocument, "", err)
	}

	var parts []string
	for _, p := range doc.Paragraphs {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	for _, table := range doc.Tables {
		for _, row := range table.Rows {
			for _, cell := range row {
				if cell = strings.TrimSpace(cell); cell != "" {
					parts = append(parts, cell)
				}
			}
		}
	}
	return strings.Join(parts, "\n"), nil
}

func docxCapability() Capability {
	return Capability{
		Format:    FormatRichDocument,
		Extension: FormatRichDocument.Extension(),
		Extractor: NewDocxExtractor(),
	}
}

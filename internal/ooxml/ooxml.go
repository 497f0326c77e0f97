// Package ooxml reads the parts of Office Open XML packages that text
// extraction needs.
package ooxml

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// Common OOXML namespaces.
const (
	// DOCX namespaces
	NSWordprocessingML       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NSWordprocessingMLStrict = "http://purl.oclc.org/ooxml/wordprocessingml/main"
	NSMarkupCompatibility    = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	NSMath                   = "http://schemas.openxmlformats.org/officeDocument/2006/math"
)

// DocumentPart is the main story of a word-processing package.
const DocumentPart = "word/document.xml"

// OpenPackage opens data as a ZIP container.
func OpenPackage(data []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	return zr, nil
}

// ReadFileFromZip reads a file from a zip archive.
func ReadFileFromZip(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file %q not found in ZIP", name)
}

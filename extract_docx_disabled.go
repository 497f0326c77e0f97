//go:build nodocx

package text2map

import "errors"

func docxCapability() Capability {
	return unavailableCapability(FormatRichDocument, errors.New("built without DOCX support (nodocx)"))
}

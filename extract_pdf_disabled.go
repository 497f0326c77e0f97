//go:build nopdf

package text2map

import "errors"

func pdfCapability() Capability {
	return unavailableCapability(FormatPaginatedDocument, errors.New("built without PDF support (nopdf)"))
}

//go:build nosrt

package text2map

import "errors"

func srtCapability() Capability {
	return unavailableCapability(FormatTimedCaption, errors.New("built without caption support (nosrt)"))
}

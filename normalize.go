package text2map

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var reCRLF = regexp.MustCompile(`\r\n?`)

// normalizeText applies the final pass to extractor output:
// - Ensure output is valid UTF-8
// - Strip a leading byte order mark
// - Normalize line endings (CRLF, CR -> LF)
// - Strip control characters (keep \n, \t)
// - Trim leading/trailing whitespace
//
// Blank lines are kept so page and paragraph separators survive.
func normalizeText(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}

	s = strings.TrimPrefix(s, "\uFEFF")

	s = reCRLF.ReplaceAllString(s, "\n")

	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)

	return strings.TrimSpace(s)
}

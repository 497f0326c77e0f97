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

package text2map

import (
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

const (
	CharsetUTF8   = "utf-8"
	CharsetGBK    = "gbk"
	CharsetGB2312 = "gb2312"
	CharsetUTF16  = "utf-16"
	CharsetLatin1 = "latin-1"
)

type charsetCandidate struct {
	name   string
	decode func(data []byte) (string, bool)
}

// charsetCandidates is the fixed decoding order for text of unknown origin.
var charsetCandidates = []charsetCandidate{
	{CharsetUTF8, decodeUTF8},
	{CharsetGBK, decodeGBK},
	{CharsetGB2312, decodeGB2312},
	{CharsetUTF16, strictDecoder(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM))},
	{CharsetLatin1, strictDecoder(charmap.ISO8859_1)},
}

// DecodeText decodes data of unknown encoding and trims surrounding
// whitespace. It never fails: when no candidate decodes cleanly the bytes are
// read as latin-1 with undecodable bytes dropped.
func DecodeText(data []byte) string {
	text, _ := decodeText(data)
	return text
}

// decodeText is DecodeText that also names the charset it used.
func decodeText(data []byte) (string, string) {
	for _, c := range charsetCandidates {
		if text, ok := c.decode(data); ok {
			return strings.TrimSpace(text), c.name
		}
	}
	return strings.TrimSpace(decodeLossy(data)), CharsetLatin1
}

func decodeUTF8(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// strictDecoder wraps an x/text encoding so that any substituted
// replacement character counts as a decode failure.
func strictDecoder(enc encoding.Encoding) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		s := string(decoded)
		if strings.ContainsRune(s, utf8.RuneError) {
			return "", false
		}
		return s, true
	}
}

// decodeGBK decodes GBK double-byte text. A lone 0x80 or 0xFF is not GBK;
// x/text would map 0x80 to the euro sign.
func decodeGBK(data []byte) (string, bool) {
	for i := 0; i < len(data); i++ {
		b := data[i]
		switch {
		case b < utf8.RuneSelf:
		case b == 0x80 || b == 0xFF:
			return "", false
		default:
			i++
		}
	}
	return strictDecoder(simplifiedchinese.GBK)(data)
}

// decodeGB2312 accepts only EUC-CN byte pairs; GBK decodes the accepted
// subset identically.
func decodeGB2312(data []byte) (string, bool) {
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b < utf8.RuneSelf {
			continue
		}
		if !isEUCCNByte(b) || i+1 >= len(data) || !isEUCCNByte(data[i+1]) {
			return "", false
		}
		i++
	}
	return strictDecoder(simplifiedchinese.GBK)(data)
}

func isEUCCNByte(b byte) bool {
	return b >= 0xA1 && b <= 0xFE
}

// decodeLossy reads data as latin-1 and drops anything that does not map.
func decodeLossy(data []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		decoded = data
	}
	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError {
			return -1
		}
		return r
	}, strings.ToValidUTF8(string(decoded), ""))
}

// charsetGuess is a statistical charset guess used for diagnostics only.
type charsetGuess struct {
	Charset    string
	Language   string
	Confidence int
}

// guessCharset asks chardet for its best guess. It returns false when the
// detector has nothing to offer.
func guessCharset(data []byte) (charsetGuess, bool) {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return charsetGuess{}, false
	}
	return charsetGuess{
		Charset:    result.Charset,
		Language:   result.Language,
		Confidence: result.Confidence,
	}, true
}

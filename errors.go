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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat is matched by extraction errors for unknown extensions.
	ErrUnsupportedFormat = errors.New("text2map: unsupported format")

	// ErrSizeExceeded is matched when the input is larger than the configured ceiling.
	ErrSizeExceeded = errors.New("text2map: size limit exceeded")

	// ErrDecodeFailure is matched when text could not be decoded.
	ErrDecodeFailure = errors.New("text2map: decode failure")

	// ErrCorruptContent is matched when a container does not parse as its format.
	ErrCorruptContent = errors.New("text2map: corrupt content")

	// ErrEmptyResult is matched when extraction produced no usable text.
	ErrEmptyResult = errors.New("text2map: no extractable text")

	// ErrCapabilityUnavailable is matched when the extractor for a format is
	// not available in this process.
	ErrCapabilityUnavailable = errors.New("text2map: capability unavailable")

	// ErrEmptyInput is returned for blank raw text input.
	ErrEmptyInput = errors.New("text2map: input text is empty")

	// ErrTextTooLong is returned when raw text input exceeds the length limit.
	ErrTextTooLong = errors.New("text2map: input text too long")

	// ErrGenerationFailed is returned when the generator fails or returns nothing.
	ErrGenerationFailed = errors.New("text2map: generation failed")
)

// ErrorKind classifies an ExtractionError.
type ErrorKind int

const (
	KindUnsupportedFormat ErrorKind = iota + 1
	KindSizeExceeded
	KindDecodeFailure
	KindCorruptContent
	KindEmptyResult
	KindCapabilityUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnsupportedFormat:
		return "unsupported_format"
	case KindSizeExceeded:
		return "size_exceeded"
	case KindDecodeFailure:
		return "decode_failure"
	case KindCorruptContent:
		return "corrupt_content"
	case KindEmptyResult:
		return "empty_result"
	case KindCapabilityUnavailable:
		return "capability_unavailable"
	}
	return "unknown"
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindUnsupportedFormat:
		return ErrUnsupportedFormat
	case KindSizeExceeded:
		return ErrSizeExceeded
	case KindDecodeFailure:
		return ErrDecodeFailure
	case KindCorruptContent:
		return ErrCorruptContent
	case KindEmptyResult:
		return ErrEmptyResult
	case KindCapabilityUnavailable:
		return ErrCapabilityUnavailable
	}
	return nil
}

// ExtractionError is returned by the dispatcher and the extractors.
type ExtractionError struct {
	Kind      ErrorKind
	Format    Format
	Extension string
	// Supported lists the enabled extensions for UnsupportedFormat and
	// CapabilityUnavailable errors.
	Supported []string
	Size      int64
	Limit     int64
	Msg       string
	Err       error
}

func (e *ExtractionError) Error() string {
	var b strings.Builder
	switch e.Kind {
	case KindUnsupportedFormat:
		fmt.Fprintf(&b, "unsupported file format %q; supported formats: %s", e.Extension, strings.Join(e.Supported, ", "))
	case KindSizeExceeded:
		fmt.Fprintf(&b, "file size %d bytes exceeds the %d MB limit", e.Size, e.Limit/(1024*1024))
	case KindCapabilityUnavailable:
		fmt.Fprintf(&b, "%s extraction is not available", describeFormat(e.Format, e.Extension))
		if len(e.Supported) > 0 {
			fmt.Fprintf(&b, "; supported formats: %s", strings.Join(e.Supported, ", "))
		}
	case KindEmptyResult:
		fmt.Fprintf(&b, "no extractable text in %s", describeFormat(e.Format, e.Extension))
	default:
		fmt.Fprintf(&b, "%s: %s", describeFormat(e.Format, e.Extension), strings.ReplaceAll(e.Kind.String(), "_", " "))
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *ExtractionError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func describeFormat(f Format, ext string) string {
	switch {
	case ext != "":
		return ext + " file"
	case f != "":
		return string(f) + " document"
	}
	return "document"
}

func newError(kind ErrorKind, f Format, msg string, err error) *ExtractionError {
	return &ExtractionError{Kind: kind, Format: f, Msg: msg, Err: err}
}

// KindOf returns the kind of the first ExtractionError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var target *ExtractionError
	if errors.As(err, &target) {
		return target.Kind
	}
	return 0
}

// IsUnsupportedFormat reports whether err is an unsupported format error.
func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}

// IsClientError reports whether err is caused by the input itself (bad
// extension, too large, nothing to extract) rather than by processing it.
func IsClientError(err error) bool {
	for _, target := range []error{ErrUnsupportedFormat, ErrSizeExceeded, ErrEmptyResult, ErrEmptyInput, ErrTextTooLong} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

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

// Package subtitle parses SubRip (.srt) caption files.
package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cue is one timed caption.
type Cue struct {
	Index   int
	Start   time.Duration
	End     time.Duration
	Content string
}

// ParseError reports a malformed caption block.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("subtitle: line %d: %s", e.Line, e.Msg)
}

// reTiming matches "00:00:01,000 --> 00:00:02,500" and tolerates "." or ":"
// before the milliseconds and trailing position metadata.
var reTiming = regexp.MustCompile(`^\s*(\d+):(\d{1,2}):(\d{1,2})[,.:](\d{1,3})\s*-->\s*(\d+):(\d{1,2}):(\d{1,2})[,.:](\d{1,3})`)

// Parse reads every cue in text. Blocks are separated by blank lines; the
// index line is optional. A block after the first cue that does not start
// with a timing line continues the previous cue's text.
func Parse(text string) ([]Cue, error) {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	var cues []Cue
	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}
		start := i
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			i++
		}
		block := lines[start:i]
		if len(cues) > 0 && !isCueHeader(block) {
			// Caption text that contained a blank line.
			last := &cues[len(cues)-1]
			if last.Content != "" {
				last.Content += "\n\n"
			}
			last.Content += strings.Join(block, "\n")
			continue
		}
		cue, err := parseBlock(block, start+1)
		if err != nil {
			return nil, err
		}
		if cue.Index == 0 {
			cue.Index = len(cues) + 1
		}
		cues = append(cues, cue)
	}
	return cues, nil
}

// isCueHeader reports whether block starts with a timing line, optionally
// preceded by an index line.
func isCueHeader(block []string) bool {
	if reTiming.MatchString(block[0]) {
		return true
	}
	if len(block) < 2 {
		return false
	}
	if _, err := strconv.Atoi(strings.TrimSpace(block[0])); err != nil {
		return false
	}
	return reTiming.MatchString(block[1])
}

// parseBlock parses the non-blank lines of one block; first is the 1-based
// line number of block[0].
func parseBlock(block []string, first int) (Cue, error) {
	var cue Cue
	timing := 0
	if !reTiming.MatchString(block[0]) {
		idx, err := strconv.Atoi(strings.TrimSpace(block[0]))
		if err != nil {
			return cue, &ParseError{Line: first, Msg: fmt.Sprintf("expected cue index or timing, got %q", block[0])}
		}
		cue.Index = idx
		timing = 1
	}
	if timing >= len(block) {
		return cue, &ParseError{Line: first + timing, Msg: "missing timing line"}
	}
	m := reTiming.FindStringSubmatch(block[timing])
	if m == nil {
		return cue, &ParseError{Line: first + timing, Msg: fmt.Sprintf("malformed timing %q", block[timing])}
	}
	cue.Start = timestamp(m[1:5])
	cue.End = timestamp(m[5:9])
	cue.Content = strings.Join(block[timing+1:], "\n")
	return cue, nil
}

// timestamp converts hours, minutes, seconds and milliseconds fields. The
// fields are known to be digits.
func timestamp(f []string) time.Duration {
	h, _ := strconv.Atoi(f[0])
	m, _ := strconv.Atoi(f[1])
	s, _ := strconv.Atoi(f[2])
	ms, _ := strconv.Atoi(f[3])
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond
}

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

// errDisabled marks a capability switched off by configuration.
var errDisabled = errors.New("disabled by configuration")

// Capability binds a format to its extractor. A capability without an
// extractor is unavailable; Err says why.
type Capability struct {
	Format    Format
	Extension string
	Extractor Extractor
	Err       error
}

// Available reports whether the capability can extract text.
func (c Capability) Available() bool {
	return c.Extractor != nil
}

// unavailableCapability describes a format whose extractor was not built
// into this binary.
func unavailableCapability(f Format, err error) Capability {
	return Capability{Format: f, Extension: f.Extension(), Err: err}
}

// builtinCapabilities returns the capabilities compiled into this binary.
func builtinCapabilities() []Capability {
	return []Capability{
		textCapability(),
		markdownCapability(),
		docxCapability(),
		pdfCapability(),
		srtCapability(),
	}
}

// Registry maps file extensions to capabilities. It is filled once when a
// Dispatcher is built and only read afterwards.
type Registry struct {
	byExt map[string]Capability
	order []string
}

// NewRegistry creates a registry from the given capabilities. Later entries
// for the same extension replace earlier ones but keep their position.
func NewRegistry(caps ...Capability) *Registry {
	r := &Registry{byExt: make(map[string]Capability, len(caps))}
	for _, c := range caps {
		r.register(c)
	}
	return r
}

func (r *Registry) register(c Capability) {
	ext := strings.ToLower(c.Extension)
	if ext == "" {
		ext = c.Format.Extension()
	}
	c.Extension = ext
	if _, ok := r.byExt[ext]; !ok {
		r.order = append(r.order, ext)
	}
	r.byExt[ext] = c
}

// disable marks the capability for f unavailable. Plain text and Markdown
// have no optional dependency and cannot be disabled.
func (r *Registry) disable(f Format) error {
	if f == FormatPlainText || f == FormatMarkdown {
		return fmt.Errorf("format %s cannot be disabled", f)
	}
	for ext, c := range r.byExt {
		if c.Format == f {
			r.byExt[ext] = unavailableCapability(f, errDisabled)
		}
	}
	return nil
}

// Lookup returns the capability registered for ext (".pdf").
func (r *Registry) Lookup(ext string) (Capability, bool) {
	c, ok := r.byExt[strings.ToLower(ext)]
	return c, ok
}

// Capabilities returns every registered capability, available or not, in
// registration order.
func (r *Registry) Capabilities() []Capability {
	caps := make([]Capability, 0, len(r.order))
	for _, ext := range r.order {
		caps = append(caps, r.byExt[ext])
	}
	return caps
}

// Formats returns the formats whose capability is available.
func (r *Registry) Formats() []Format {
	var formats []Format
	seen := make(map[Format]bool)
	for _, c := range r.Capabilities() {
		if c.Available() && !seen[c.Format] {
			seen[c.Format] = true
			formats = append(formats, c.Format)
		}
	}
	return formats
}

// Extensions returns the extensions whose capability is available.
func (r *Registry) Extensions() []string {
	var exts []string
	for _, c := range r.Capabilities() {
		if c.Available() {
			exts = append(exts, c.Extension)
		}
	}
	return exts
}

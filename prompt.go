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
	"bytes"
	"text/template"
)

// DefaultPromptTemplate instructs the model to turn source text into a
// layered Markdown outline. The template receives the text as {{.Text}}.
const DefaultPromptTemplate = `You are a top-tier knowledge architect and information analyst. Your task is to turn the raw text supplied by the user, which may be complex and poorly structured, into an extremely detailed, highly structured Markdown mind map that stays completely faithful to the source.

**You must follow every rule below:**

1. **Lossless**: your first goal is zero information loss. Capture every key concept, argument, piece of evidence, figure, case and detail in the source. If the source names a specific person, number or example, your map must contain it too.

2. **Keep the structure**: identify and keep the internal logic and hierarchy of the source. If the source is organised as overview-detail-summary or problem-analysis-solution, the trunk of your map must reflect that.

3. **Layer by layer**:
   * Level 1 heading (#): the single core topic of the whole document.
   * Level 2 heading (##): the key branches or main parts supporting the core topic.
   * Level 3 heading (###): further expansion or sub-points of a level 2 branch.
   * List items (-): concrete details, examples, data or steps. Use nested lists for deeper levels.

4. **Precise, not vague**: present the source's information in structured form instead of summarising it loosely.
   * Wrong: "The author discusses several tools."
   * Right: "- Example tools: Evernote, Notion"

Now apply all of the rules above to the following raw text:

{{.Text}}
`

// promptBuilder renders the instruction template around source text.
type promptBuilder struct {
	tmpl *template.Template
}

func newPromptBuilder(text string) (*promptBuilder, error) {
	tmpl, err := template.New("mindmap").Parse(text)
	if err != nil {
		return nil, err
	}
	return &promptBuilder{tmpl: tmpl}, nil
}

func (p *promptBuilder) render(text string) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

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
	"fmt"
	"log/slog"
	"strings"
)

// pageSeparator joins the text of consecutive pages.
const pageSeparator = "\n\n"

// pageSource is an opened paginated document. Pages are numbered from 1.
type pageSource interface {
	NumPage() int
	PageText(n int) (string, error)
}

// joinPages extracts every page on its own. A page that fails or panics is
// logged and skipped; the others still contribute.
func joinPages(src pageSource, logger *slog.Logger) string {
	var pages []string
	for i := 1; i <= src.NumPage(); i++ {
		text, err := pageText(src, i)
		if err != nil {
			logger.Warn("skipping unreadable page", "page", i, "error", err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, pageSeparator)
}

func pageText(src pageSource, n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("page %d: panic: %v", n, r)
		}
	}()
	return src.PageText(n)
}

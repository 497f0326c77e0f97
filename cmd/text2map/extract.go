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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Print the normalized text of a document",
	Long: `Extract reads a .txt, .md, .docx, .pdf or .srt file and prints the
normalized plain text that would be sent to the model. With no file, input
is read from stdin and --extension selects the format.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		extension, _ := cmd.Flags().GetString("extension")

		d, err := newDispatcher(cfg)
		if err != nil {
			return err
		}

		var text string
		if len(args) == 0 {
			ext := normalizeExtension(extension)
			if ext == "" {
				return fmt.Errorf("--extension is required when reading stdin")
			}
			res, err := d.ExtractReader(cmd.InOrStdin(), "stdin"+ext)
			if err != nil {
				return err
			}
			text = res.Content
		} else {
			res, err := d.ExtractFile(args[0])
			if err != nil {
				return err
			}
			text = res.Content
		}

		return writeOutput(cmd.OutOrStdout(), output, text)
	},
}

func init() {
	extractCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().StringP("extension", "x", "", "file extension hint for stdin input (e.g. pdf)")

	rootCmd.AddCommand(extractCmd)
}

// normalizeExtension turns "PDF" or ".pdf" into ".pdf".
func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// writeOutput writes text to path, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path, text string) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

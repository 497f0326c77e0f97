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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [file|-]",
	Short: "Generate a Markdown mind map from text or a document",
	Long: `Generate sends text to the configured model and prints the Markdown mind
map. Input comes from --text, from a document path, or from stdin when the
argument is "-" or omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")
		output, _ := cmd.Flags().GetString("output")

		gen, err := newGenerator(cfg.LLM)
		if err != nil {
			return err
		}
		svc, err := newService(cfg, gen)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var md string
		switch {
		case text != "":
			md, err = svc.GenerateFromText(ctx, text)
		case len(args) == 1 && args[0] != "-":
			var data []byte
			data, err = readLimited(args[0], svc.Dispatcher().MaxFileSize())
			if err != nil {
				return err
			}
			res, genErr := svc.GenerateFromFile(ctx, filepath.Base(args[0]), data)
			if genErr != nil {
				return genErr
			}
			md = res.Markdown
		default:
			var data []byte
			data, err = io.ReadAll(io.LimitReader(cmd.InOrStdin(), int64(svc.MaxTextLength())*4+1))
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			md, err = svc.GenerateFromText(ctx, string(data))
		}
		if err != nil {
			return err
		}

		return writeOutput(cmd.OutOrStdout(), output, md)
	},
}

func init() {
	generateCmd.Flags().String("text", "", "text to turn into a mind map")
	generateCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(generateCmd)
}

// readLimited reads a file, reading one byte past limit so the dispatcher
// can report the size error.
func readLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

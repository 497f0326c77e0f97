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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	text2map "github.com/nicholasgasior/text2map-go"
)

// formatInfo describes one capability in "formats" output.
type formatInfo struct {
	Format    string `json:"format" yaml:"format"`
	Extension string `json:"extension" yaml:"extension"`
	Available bool   `json:"available" yaml:"available"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// formatsReport is the machine readable "formats" output.
type formatsReport struct {
	Formats       []string     `json:"formats" yaml:"formats"`
	MaxFileSizeMB int64        `json:"max_file_size_mb" yaml:"max_file_size_mb"`
	Capabilities  []formatInfo `json:"capabilities" yaml:"capabilities"`
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported file formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		d, err := newDispatcher(cfg)
		if err != nil {
			return err
		}
		return writeFormats(cmd.OutOrStdout(), buildFormatsReport(d), output)
	},
}

func init() {
	formatsCmd.Flags().String("output", "text", "output format: text, json or yaml")

	rootCmd.AddCommand(formatsCmd)
}

func buildFormatsReport(d *text2map.Dispatcher) formatsReport {
	report := formatsReport{
		Formats:       d.SupportedExtensions(),
		MaxFileSizeMB: d.MaxFileSize() / (1024 * 1024),
	}
	for _, c := range d.Capabilities() {
		info := formatInfo{
			Format:    string(c.Format),
			Extension: c.Extension,
			Available: c.Available(),
		}
		if c.Err != nil {
			info.Reason = c.Err.Error()
		}
		report.Capabilities = append(report.Capabilities, info)
	}
	return report
}

func writeFormats(w io.Writer, report formatsReport, output string) error {
	switch strings.ToLower(output) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "", "text":
		for _, c := range report.Capabilities {
			status := "available"
			if !c.Available {
				status = "unavailable: " + c.Reason
			}
			fmt.Fprintf(w, "%-6s %-20s %s\n", c.Extension, c.Format, status)
		}
		fmt.Fprintf(w, "max file size: %d MB\n", report.MaxFileSizeMB)
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", output)
}

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

// Package main is the entry point for the text2map CLI and HTTP server.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	text2map "github.com/nicholasgasior/text2map-go"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is resolved in PersistentPreRunE before any subcommand runs.
	cfg text2map.Config

	// configErr records a failure to read an explicitly requested config file.
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "text2map",
	Short: "Turn long text and documents into Markdown mind maps",
	Long: `text2map extracts plain text from .txt, .md, .docx, .pdf and .srt files and
asks a generative language model to restructure it as a layered Markdown
outline that mind-map renderers can display.

Run "text2map serve" for the HTTP API, or use the extract and generate
subcommands directly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c
		setupLogging(cfg.Log, os.Stderr)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./text2map.yaml or ~/.config/text2map/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if _, err := os.Stat(".env"); err == nil {
		if err := gotenv.Load(".env"); err != nil {
			fmt.Fprintln(os.Stderr, "Ignoring .env:", err)
		}
	}

	v := viper.GetViper()
	setDefaults(v)

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("text2map")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "text2map"))
		}
	}

	bindEnv(v)

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	} else if cfgFile != "" {
		configErr = fmt.Errorf("reading config %s: %w", cfgFile, err)
	}
}

// setDefaults registers every configuration key so that environment
// overrides are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	d := text2map.DefaultConfig()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)
	v.SetDefault("server.api_key", d.Server.APIKey)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("extraction.max_file_size", d.Extraction.MaxFileSize)
	v.SetDefault("extraction.max_text_length", d.Extraction.MaxTextLength)
	v.SetDefault("extraction.disabled_formats", []string{})
	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.max_retries", d.LLM.MaxRetries)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// bindEnv maps TEXT2MAP_SECTION_KEY variables onto section.key. The model
// API key also honours GOOGLE_API_KEY.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("TEXT2MAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("llm.api_key", "TEXT2MAP_LLM_API_KEY", "GOOGLE_API_KEY")
}

// loadConfig decodes and validates the resolved configuration.
func loadConfig(v *viper.Viper) (text2map.Config, error) {
	var c text2map.Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

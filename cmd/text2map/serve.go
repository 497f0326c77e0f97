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
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve exposes text and file based mind map generation over HTTP:

  GET  /, /health           liveness
  POST /generate            JSON {"text": "..."}
  POST /generate-from-file  multipart field "file"
  POST /extract             multipart field "file", text only
  GET  /supported-formats   enabled extensions and upload limit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, err := newGenerator(cfg.LLM)
		if err != nil {
			slog.Warn("generation disabled, only extraction endpoints will succeed", "error", err)
			gen = unavailableGenerator(err)
		}
		svc, err := newService(cfg, gen)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:        cfg.Server.Addr,
			Handler:     newServer(svc, cfg.Server).routes(),
			ReadTimeout: cfg.Server.ReadTimeout,
			IdleTimeout: 120 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			slog.Info("server starting",
				"addr", cfg.Server.Addr,
				"formats", svc.Dispatcher().SupportedExtensions(),
				"provider", cfg.LLM.Provider,
				"model", cfg.LLM.Model,
			)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
		slog.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8000)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/promptran/internal/langid"
	"github.com/valpere/promptran/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP translation-prompt service",
	Long: `Start the HTTP service exposing:

  POST /pairs       store a translation pair
  GET  /prompt      generate a translation prompt with similar examples
  GET  /stammering  detect non-natural repetition in a translation
  GET  /health      health check`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, store, err := buildService()
		if err != nil {
			return err
		}
		defer store.Close()

		var checker *langid.Checker
		if viper.GetBool("lang_warnings") {
			fmt.Fprintf(os.Stderr, "Loading language detector...\n")
			checker = langid.New()
		}

		addr := fmt.Sprintf(":%d", viper.GetInt("port"))
		srv := &http.Server{
			Addr:         addr,
			Handler:      server.New(svc, checker).Handler(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			fmt.Fprintf(os.Stderr, "Listening on %s\n", addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
		case <-ctx.Done():
			fmt.Fprintf(os.Stderr, "Shutting down...\n")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8000, "HTTP listen port")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
}

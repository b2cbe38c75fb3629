// ABOUTME: HTTP server CLI command
// ABOUTME: Runs the JSON API and dashboard until interrupted, then shuts down
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/kinetic/web"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(app *App) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == 0 {
				port = app.Config.Web.Port
			}

			handler, err := web.NewServer(app.Store, app.Auditor, app.Logger, app.Version)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", port),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				app.Logger.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server failed: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				app.Logger.Info("shutting down http server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			return g.Wait()
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config, 8080)")
	return cmd
}

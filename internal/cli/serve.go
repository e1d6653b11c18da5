package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/specview/specview/internal/api"
	"github.com/specview/specview/pkg/cache"
)

// serveCommand creates the "serve" command: run the display pipeline as
// an HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		redis   cache.RedisConfig
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the display pipeline as an HTTP service",
		Long: `Serve starts an HTTP server exposing the display pipeline. POST a
dataset to /v1/display to receive the prepared result; GET /healthz for
liveness checks. The server shuts down gracefully on interrupt.

By default cached analyses live in the local file cache. With
--redis-addr they go to a shared Redis instance so several replicas
behind one load balancer reuse each other's results.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newServeRunner(cmd.Context(), noCache, redis)
			if err != nil {
				return err
			}
			defer runner.Close()

			server := api.NewServer(runner, c.Logger)
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", addr)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				c.Logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the scale-analysis cache")
	cmd.Flags().StringVar(&redis.Addr, "redis-addr", "", "cache results in Redis at host:port instead of the local file cache")
	cmd.Flags().StringVar(&redis.Password, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&redis.DB, "redis-db", 0, "Redis logical database")

	return cmd
}

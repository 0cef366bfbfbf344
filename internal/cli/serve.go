package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orrery/internal/api"
	oerrors "github.com/matzehuels/orrery/pkg/errors"
	"github.com/matzehuels/orrery/pkg/store"
)

// shutdownTimeout bounds graceful shutdown, store close included.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

The service solves problem documents over HTTP and stores the resulting
layouts for later retrieval:

  POST /api/v1/solve          solve a problem document
  GET  /api/v1/layouts/{id}   fetch a stored layout
  GET  /healthz               liveness probe

Layouts are stored in MongoDB when [server] mongo_uri is configured, and
in process memory otherwise. The solve cache follows the [cache] section
of the configuration, like the solve command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the solve cache")

	return cmd
}

// runServe builds the engine and store, then serves until the context is
// cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	if addr == "" {
		addr = c.cfg.serverAddr()
	}

	eng, err := c.newEngine(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer eng.Close()

	st, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(eng, st, c.Logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	prog := newProgress(c.Logger)
	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := st.Close(shutdownCtx); err != nil {
		c.Logger.Error("close store", "err", err)
	}
	prog.done("Server stopped")

	return nil
}

// newStore picks the layout store from configuration: MongoDB when a URI
// is configured, process memory otherwise.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if uri := c.cfg.Server.MongoURI; uri != "" {
		st, err := store.NewMongoStore(ctx, uri, c.cfg.mongoDB())
		if err != nil {
			return nil, oerrors.Wrap(oerrors.ErrCodeStoreUnavailable, err, "mongo store at %s", uri)
		}
		return st, nil
	}
	return store.NewMemStore(), nil
}

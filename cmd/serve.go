package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flyer/controllers"
	"flyer/routes"
	"flyer/service"
	"flyer/storage"
	"flyer/templates"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the flyer HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (defaults to $PORT)")
	RootCmd.AddCommand(serveCmd)
}

// newFlyerService wires the generator, template store and session store.
func newFlyerService() (*service.FlyerService, error) {
	tmpl, err := templates.Load(cfg.TemplatesFile)
	if err != nil {
		return nil, err
	}
	sessions, err := storage.New(cfg.StorageFile)
	if err != nil {
		return nil, errors.Wrap(err, "open storage")
	}
	gen, err := service.NewGenerator(cfg.AI)
	if err != nil {
		return nil, errors.Wrap(err, "configure generator")
	}
	return service.NewFlyerService(gen, tmpl, sessions, service.WithStrictSlots(cfg.StrictSlots)), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, err := newFlyerService()
	if err != nil {
		return err
	}

	port := servePort
	if port == "" {
		port = cfg.Port
	}
	if cfg.IsDevelopment() {
		slog.Info("development_mode")
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           routes.Web(controllers.NewFlyerController(svc, cfg.IsDevelopment())),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_started", "port", port, "provider", cfg.AI.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return errors.Wrapf(err, "listen on port %s", port)
	case sig := <-sigCh:
		slog.Info("server_stopping", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

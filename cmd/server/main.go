// Command server runs the vehicle inventory web application.
//
// The storage backend is selected at startup from configuration: the
// embedded SQLite file in development, Postgres (or another registered
// engine via -db_driver) in production. A connect or schema-bootstrap
// failure aborts the process; serving without the vehicles table is not an
// option.
//
// Quick start (development, embedded database):
//
//	go build -o server ./cmd/server
//	./server -port=3001 -sqlite_path=vehicles.db
//
// Production (Postgres):
//
//	APP_ENV=production DB_DSN="postgres://user:pass@db:5432/vehicles" ./server
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"vehicletracker/internal/config"
	"vehicletracker/internal/storage"
	_ "vehicletracker/internal/storage/all" // register all built-in backends
	"vehicletracker/internal/vehicle"
	"vehicletracker/internal/webui"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, storage.Config{Kind: cfg.Driver(), DSN: cfg.StoreDSN()})
	if err != nil {
		log.Fatalf("open %s storage: %v", cfg.Driver(), err)
	}
	defer store.Close(context.Background())

	if err := storage.EnsureSchema(ctx, store); err != nil {
		log.Fatalf("bootstrap %s schema: %v", store.Kind(), err)
	}

	repo := vehicle.NewRepository(store)
	ui := webui.NewServer(webui.Config{Addr: cfg.Addr(), StaticDir: cfg.StaticDir}, repo)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: ui.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s backend=%s", cfg.Addr(), store.Kind())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// Command server runs the inventory HTTP service. All configuration is
// environment driven; see the PANTRYCORE_* constants in the internal
// packages for the full list.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pantrycore/internal/adapters/httpapi"
	"pantrycore/internal/blob"
	"pantrycore/internal/core"
	"pantrycore/internal/docstore"
	"pantrycore/internal/journal"
	"pantrycore/internal/mailer"
)

const (
	// EnvAddr is the listen address. Defaults to ":8080".
	EnvAddr = "PANTRYCORE_ADDR"
	// EnvDataDir is the document directory. Defaults to "./data".
	EnvDataDir = "PANTRYCORE_DATA_DIR"
	// EnvUsers is the comma-separated user allow-list.
	EnvUsers = "PANTRYCORE_USERS"
)

func main() {
	logger := log.New(os.Stdout, "[pantrycore] ", log.LstdFlags)
	if err := run(context.Background(), logger); err != nil {
		logger.Fatalf("service stopped with error: %v", err)
	}
}

func run(ctx context.Context, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	backups, err := blob.Open(ctx)
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}
	logger.Printf("backup store driver: %s", backups.Driver())

	jnl, err := journal.Open(ctx)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jnl.Close()
	logger.Printf("journal driver: %s", jnl.Driver())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := core.NewPrometheusMetricsRecorder(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	dataDir := envOr(EnvDataDir, "./data")
	store, err := docstore.New(dataDir, backups)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	store.SetJournal(jnl)
	store.SetMetrics(metrics)
	store.SetLogger(logger)

	svc := core.NewService(docstore.NewRepository(store),
		core.WithLogger(logger),
		core.WithMetricsRecorder(metrics),
	)
	if err := svc.Load(ctx); err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	composer, sender, err := mailer.Open(logger)
	if err != nil {
		return fmt.Errorf("open mailer: %w", err)
	}

	handler := httpapi.NewHandler(store, svc)
	handler.Composer = composer
	handler.Sender = sender
	handler.Journal = jnl
	handler.Users = splitList(envOr(EnvUsers, "Dave,Slade"))
	handler.Logger = logger
	handler.Metrics = metrics

	mux := http.NewServeMux()
	mux.Handle("/api/", handler)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:         envOr(EnvAddr, ":8080"),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("inventory service listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

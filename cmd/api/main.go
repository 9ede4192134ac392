package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/PiruU/web-import-export/internal/config"
	"github.com/PiruU/web-import-export/internal/db"
	"github.com/PiruU/web-import-export/internal/httpserver"
	"github.com/PiruU/web-import-export/internal/importer"
	customerrepo "github.com/PiruU/web-import-export/internal/repository/customer"
	exportrepo "github.com/PiruU/web-import-export/internal/repository/export"
	purchaserepo "github.com/PiruU/web-import-export/internal/repository/purchase"
	exportsvc "github.com/PiruU/web-import-export/internal/service/export"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	customerRepo := customerrepo.NewPostgres(logger)
	purchaseRepo := purchaserepo.NewPostgres(logger)
	imp := importer.New(dbpool, customerRepo, purchaseRepo, logger)
	exportService := exportsvc.New(exportrepo.NewPostgres(dbpool, logger))
	forwarder := exportsvc.NewForwarder(logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Importer:             imp,
		Export:               exportService,
		Forwarder:            forwarder,
		DefaultExportTimeout: cfg.ExportTimeout,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

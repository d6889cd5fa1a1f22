package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voxkit/voxbridge/internal/callstore"
	"github.com/voxkit/voxbridge/internal/config"
	"github.com/voxkit/voxbridge/internal/dispatch"
	"github.com/voxkit/voxbridge/internal/enrich"
	"github.com/voxkit/voxbridge/internal/handlers"
	"github.com/voxkit/voxbridge/internal/handlers/customurl"
	"github.com/voxkit/voxbridge/internal/handlers/forward"
	logginghandler "github.com/voxkit/voxbridge/internal/handlers/logging"
	"github.com/voxkit/voxbridge/internal/handlers/record"
	"github.com/voxkit/voxbridge/internal/httpapi"
	"github.com/voxkit/voxbridge/internal/tools"
)

func main() {
	logger := log.New(os.Stdout, "voxbridge ", log.Ldate|log.Ltime|log.Lmicroseconds|log.LUTC)

	cfg, err := config.FromYAMLAndEnv()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	var store callstore.Store
	if cfg.DBDSN != "" {
		gormStore, err := callstore.NewGormStore(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			logger.Fatalf("failed to initialize call store: %v", err)
		}
		defer func() {
			if err := gormStore.Close(); err != nil {
				logger.Printf("call store close error: %v", err)
			}
		}()
		store = gormStore
	} else {
		logger.Printf("no database dsn configured, call persistence disabled")
	}

	// Handler order is fixed; the dispatcher runs them sequentially.
	hs := []handlers.Handler{
		logginghandler.New(logger),
		forward.New(cfg.AutomationWebhookURL, cfg.AgentOverrides, logger),
		record.New(store, logger),
		customurl.New(cfg.CustomWebhookURL, logger),
	}
	dispatcher := dispatch.New(logger, hs)

	routerOpts := []tools.Option{}
	if store != nil {
		routerOpts = append(routerOpts, tools.WithSurveyStore(store))
	}
	toolRouter := tools.NewRouter(logger, routerOpts...)

	enricher := enrich.NewService(enrich.DefaultDirectory(), logger)

	srv := httpapi.NewServer(logger, cfg.HTTPAddr, toolRouter, dispatcher, enricher)

	go func() {
		logger.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server crashed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("server shutdown error: %v", err)
	}
}

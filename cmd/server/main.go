package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nutrifactor/backend/config"
	httpDelivery "github.com/nutrifactor/backend/internal/delivery/http"
	"github.com/nutrifactor/backend/internal/infrastructure/cache"
	"github.com/nutrifactor/backend/internal/infrastructure/fdc"
	"github.com/nutrifactor/backend/internal/infrastructure/store"
	"github.com/nutrifactor/backend/internal/usecase"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := log.With().Str("service", "nutrifactor").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("store", cfg.Store.Path).
		Msg("starting nutrifactor backend")

	gormStore, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	debouncedStore := store.NewDebounced(gormStore, cfg.Store.DebounceInterval, logger)

	foodCache := cache.NewFoodCache(cfg.Cache.TTL)
	client := fdc.NewClient(cfg.FDC.APIKey, cfg.FDC.BaseURL, logger)

	foodService := usecase.NewFoodService(client, foodCache, debouncedStore)
	logService := usecase.NewLogService(debouncedStore)

	handler := httpDelivery.NewHandler(foodService, logService, debouncedStore)
	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
	}

	// Push coalesced writes through before exit
	debouncedStore.Flush()
}

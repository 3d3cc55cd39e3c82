package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/TanishqDodiya/elyf-EVspare/internal/catalog"
	"github.com/TanishqDodiya/elyf-EVspare/internal/config"
	"github.com/TanishqDodiya/elyf-EVspare/internal/db"
	"github.com/TanishqDodiya/elyf-EVspare/internal/order"
	"github.com/TanishqDodiya/elyf-EVspare/internal/sequence"
	"github.com/TanishqDodiya/elyf-EVspare/internal/transport"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "evspare-api").Logger()

	log.Info().Msg("EV spare parts store starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx := context.Background()

	var (
		catalogRepo catalog.Repository
		orderRepo   order.Repository
		daySeq      sequence.Day
	)

	switch cfg.Store.Mode {
	case config.StoreModeMongo:
		mongoDB, err := db.New(ctx, *cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			mongoDB.Close(closeCtx)
		}()

		if err := catalog.EnsureIndexes(ctx, mongoDB.Database); err != nil {
			log.Fatal().Err(err).Msg("Failed to create catalog indexes")
		}
		if err := order.EnsureIndexes(ctx, mongoDB.Database); err != nil {
			log.Fatal().Err(err).Msg("Failed to create order indexes")
		}

		catalogRepo = catalog.NewMongoRepository(mongoDB.Database)
		orderRepo = order.NewMongoRepository(mongoDB.Database)
		daySeq = sequence.NewMongo(mongoDB.Database)

	case config.StoreModeStatic:
		log.Warn().Msg("Running in static store mode: built-in catalog, in-memory orders")
		catalogRepo = catalog.NewStaticRepository()
		orderRepo = order.NewMemoryRepository()
		daySeq = sequence.NewMemory()
	}

	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		log.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis for order numbering")
		daySeq = sequence.NewRedis(redisClient)
	}

	orderSvc := order.NewService(catalogRepo, orderRepo, daySeq)
	router := transport.NewRouter(catalogRepo, orderSvc)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Str("store_mode", cfg.Store.Mode).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}

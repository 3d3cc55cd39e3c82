package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	// StoreModeMongo persists catalog and orders in MongoDB.
	StoreModeMongo = "mongo"
	// StoreModeStatic serves the built-in catalog and keeps orders in memory.
	StoreModeStatic = "static"
)

type Config struct {
	App struct {
		Port string
	}
	Store struct {
		Mode string
	}
	Mongo struct {
		URI      string
		Database string
	}
	Redis struct {
		// Addr is optional. When set, the day-scoped order counter lives
		// in Redis instead of the store's counters collection.
		Addr string
	}
}

func Load(path string) (*Config, error) {
	if path != "" {
		err := godotenv.Load(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}

	cfg.App.Port = os.Getenv("APP_PORT")
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	cfg.Store.Mode = os.Getenv("STORE_MODE")
	if cfg.Store.Mode == "" {
		cfg.Store.Mode = StoreModeMongo
	}
	if cfg.Store.Mode != StoreModeMongo && cfg.Store.Mode != StoreModeStatic {
		return nil, fmt.Errorf("invalid STORE_MODE %q: must be %q or %q", cfg.Store.Mode, StoreModeMongo, StoreModeStatic)
	}

	if cfg.Store.Mode == StoreModeMongo {
		cfg.Mongo.URI = os.Getenv("MONGO_URI")
		if cfg.Mongo.URI == "" {
			return nil, fmt.Errorf("MONGO_URI is required when STORE_MODE=%s", StoreModeMongo)
		}
		cfg.Mongo.Database = os.Getenv("MONGO_DB")
		if cfg.Mongo.Database == "" {
			cfg.Mongo.Database = "evspare"
		}
	}

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")

	return cfg, nil
}

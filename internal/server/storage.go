package server

import (
	"context"
	"fmt"
	"log"
	"time"
	"todoportal/internal/domain/errors"
	"todoportal/repository"
	db "todoportal/repository/db"
	storage "todoportal/repository/inmemory"
	"todoportal/repository/rdb"
)

// Store is a slot backend that owns a connection.
type Store interface {
	repository.Store
	Close() error
}

// OpenStore connects the backend named by cfg.Storage. An unreachable
// Postgres or Redis falls back to the in-memory store.
func OpenStore(ctx context.Context, cfg *Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Storage {
	case StoragePostgres:
		pg, err := db.NewStorage(cfg.DBStr)
		if err != nil {
			log.Println("[WARN] Не удалось подключиться к БД, используем память:", err)
			return storage.NewStorage(), nil
		}
		return pg, nil

	case StorageRedis:
		r, err := rdb.NewStorage(ctx, rdb.Options{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			Prefix:      cfg.RedisPrefix,
			DialTimeout: 5 * time.Second,
		})
		if err != nil {
			log.Println("[WARN] Не удалось подключиться к Redis, используем память:", err)
			return storage.NewStorage(), nil
		}
		return r, nil

	case StorageMemory:
		log.Println("[INFO] Используется хранилище в памяти")
		return storage.NewStorage(), nil
	}

	return nil, fmt.Errorf("%w: %q", errors.ErrUnknownStorage, cfg.Storage)
}

// Package rdb keeps the slots in Redis, one string key per slot.
package rdb

import (
	"context"
	"fmt"
	"log"
	"time"
	"todoportal/internal/domain/errors"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	Addr        string
	Password    string
	DB          int
	Prefix      string
	DialTimeout time.Duration
}

type Storage struct {
	client *redis.Client
	prefix string
}

// NewStorage connects and pings Redis. Keys are stored as "<prefix>:<slot>"
// when a prefix is set.
func NewStorage(ctx context.Context, opts Options) (*Storage, error) {
	const op = "rdb.NewStorage"
	if opts.Addr == "" {
		return nil, fmt.Errorf("%s: %w", op, errors.ErrInvalidInput)
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 2 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		log.Println("[ERROR] Redis не отвечает:", err)
		return nil, fmt.Errorf("%s: %w: %v", op, errors.ErrStorageUnavailable, err)
	}
	log.Println("[SUCCESS] Соединение с Redis установлено:", opts.Addr)
	return &Storage{client: client, prefix: opts.Prefix}, nil
}

func (s *Storage) key(slot string) string {
	if s.prefix == "" {
		return slot
	}
	return s.prefix + ":" + slot
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const op = "rdb.Storage.Get"
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	const op = "rdb.Storage.Set"
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	const op = "rdb.Storage.Delete"
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}

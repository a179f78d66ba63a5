package db

import (
	"context"
	"fmt"
	"log"
	"time"
	"todoportal/internal/domain/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const queryTimeout = 15 * time.Second

// Storage keeps each slot as one row of kv_slots. The schema comes from the
// migrations directory, see Migration.
type Storage struct {
	pool       *pgxpool.Pool
	prepGet    string
	prepSet    string
	prepDelete string
}

func NewStorage(connStr string) (*Storage, error) {
	if connStr == "" {
		return nil, errors.ErrDatabaseConnection
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Println("[ERROR] Не удалось подключиться к базе данных:", err)
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseConnection, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Println("[ERROR] База данных не отвечает:", err)
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseConnection, err)
	}

	s := &Storage{
		pool:    pool,
		prepGet: `SELECT value::text FROM kv_slots WHERE key = $1`,
		prepSet: `INSERT INTO kv_slots (key, value, updated_at) VALUES ($1, $2::json, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		prepDelete: `DELETE FROM kv_slots WHERE key = $1`,
	}
	log.Println("[SUCCESS] Соединение с базой данных установлено успешно")
	return s, nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const op = "db.Storage.Get"
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var value string
	if err := s.pool.QueryRow(ctx, s.prepGet, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		log.Println("[ERROR] Ошибка при чтении слота:", key, err)
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return []byte(value), true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	const op = "db.Storage.Set"
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx, s.prepSet, key, string(value)); err != nil {
		log.Println("[ERROR] Не удалось сохранить слот:", key, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	const op = "db.Storage.Delete"
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ct, err := s.pool.Exec(ctx, s.prepDelete, key)
	if err != nil {
		log.Println("[ERROR] Не удалось удалить слот:", key, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() > 0 {
		log.Println("[SUCCESS] Слот удалён:", key)
	}
	return nil
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

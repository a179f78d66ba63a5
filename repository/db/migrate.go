package db

import (
	"fmt"
	"log"
	"todoportal/internal/domain/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migration applies every pending migration from migratePath to the database
// at dbDSN. An already up-to-date schema is not an error.
func Migration(dbDSN, migratePath string) error {
	const op = "db.Migration"
	if dbDSN == "" || migratePath == "" {
		return fmt.Errorf("%s: %w", op, errors.ErrInvalidInput)
	}

	m, err := migrate.New("file://"+migratePath, dbDSN)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Println("[WARN] Ошибка при закрытии мигратора:", srcErr, dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

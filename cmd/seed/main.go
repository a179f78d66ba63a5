// Command seed creates an administrator account in the configured store.
package main

import (
	"context"
	"log"
	"os"
	"todoportal/internal/domain/models"
	"todoportal/internal/server"
	"todoportal/internal/service"
	"todoportal/repository"
)

func main() {
	cfg := server.ReadConfig()

	ctx := context.Background()
	store, err := server.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("[ERROR] Не удалось открыть хранилище: %v", err)
	}
	defer store.Close()

	req := models.RegisterRequest{
		Name:     envOr("SEED_ADMIN_NAME", "Administrator"),
		Email:    envOr("SEED_ADMIN_EMAIL", "admin@example.com"),
		Phone:    envOr("SEED_ADMIN_PHONE", "555-000-0000"),
		Password: envOr("SEED_ADMIN_PASSWORD", "Admin1234"),
	}
	req.ConfirmPassword = req.Password

	created, err := SeedAdmin(ctx, store, cfg.BcryptCost, req)
	if err != nil {
		log.Fatalf("[ERROR] Не удалось создать администратора: %v", err)
	}
	if !created {
		log.Printf("[INFO] Пользователь %s уже существует, пропускаем", req.Email)
		return
	}
	log.Printf("[SUCCESS] Администратор %s создан", req.Email)
}

// SeedAdmin registers req as an administrator unless the email is taken.
func SeedAdmin(ctx context.Context, store repository.Store, bcryptCost int, req models.RegisterRequest) (bool, error) {
	users := repository.NewUserRepository(store)
	if _, exists, err := users.GetByEmail(ctx, req.Email); err != nil || exists {
		return false, err
	}

	admin := models.RoleAdmin
	req.Role = &admin
	svc := service.New(users, repository.NewTodoRepository(store), repository.NewSession(store),
		service.WithBcryptCost(bcryptCost))
	if _, err := svc.Register(ctx, req); err != nil {
		return false, err
	}
	return true, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

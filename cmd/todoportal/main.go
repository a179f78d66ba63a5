package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	"todoportal/internal/server"
	"todoportal/internal/service"
	"todoportal/repository"
	db "todoportal/repository/db"
)

// APIServer is what main needs from the HTTP layer.
type APIServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

func main() {
	log.Println("Запуск сервиса задач...")

	cfg := server.ReadConfig()

	if cfg.Storage == server.StoragePostgres {
		if err := RunMigrations(cfg); err != nil {
			log.Printf("[WARN] Ошибка применения миграций: %v", err)
		} else {
			log.Println("[SUCCESS] Миграции применены успешно")
		}
	}

	store, err := InitializeStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("[ERROR] Не удалось открыть хранилище: %v", err)
	}
	defer store.Close()

	api := server.NewTodoAPI(NewService(store, cfg), cfg)
	if api == nil {
		log.Fatal("[ERROR] Не удалось инициализировать API")
	}

	sigChan, serverErr := StartServer(api, cfg)

	select {
	case sig := <-sigChan:
		if err := HandleShutdown(api, sig); err != nil {
			log.Printf("[ERROR] Ошибка при graceful shutdown: %v", err)
		} else {
			log.Println("[SUCCESS] Graceful shutdown выполнен успешно")
		}
	case err := <-serverErr:
		log.Printf("[ERROR] Ошибка сервера: %v", err)
	}

	log.Println("Сервис завершен")
}

func RunMigrations(cfg *server.Config) error {
	return db.Migration(cfg.DBStr, cfg.MigratePath)
}

func InitializeStore(ctx context.Context, cfg *server.Config) (server.Store, error) {
	return server.OpenStore(ctx, cfg)
}

// NewService wires the repositories over one store.
func NewService(store repository.Store, cfg *server.Config) *service.Service {
	return service.New(
		repository.NewUserRepository(store),
		repository.NewTodoRepository(store),
		repository.NewSession(store),
		service.WithBcryptCost(cfg.BcryptCost),
	)
}

// StartServer runs api in the background. The returned channels deliver the
// shutdown signal and a failed start respectively.
func StartServer(api APIServer, cfg *server.Config) (chan os.Signal, chan error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Сервис запущен на %s", cfg.ListenAddr())
		if err := api.Start(); err != nil {
			serverErr <- err
		}
	}()
	return sigChan, serverErr
}

func HandleShutdown(api APIServer, sig os.Signal) error {
	log.Printf("[INFO] Получен сигнал %v, начинаем graceful shutdown...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return api.Shutdown(ctx)
}

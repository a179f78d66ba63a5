package server

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"todoportal/internal/domain/errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	Addr        string `yaml:"addr" json:"addr" env:"ADDR"`
	Port        int    `yaml:"port" json:"port" env:"PORT"`
	Storage     string `yaml:"storage" json:"storage" env:"STORAGE"`
	DBStr       string `yaml:"db_str" json:"db_str" env:"DB_STR"`
	MigratePath string `yaml:"migrate_path" json:"migrate_path" env:"MIGRATE_PATH"`

	RedisAddr     string `yaml:"redis_addr" json:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" json:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" json:"redis_db" env:"REDIS_DB"`
	RedisPrefix   string `yaml:"redis_prefix" json:"redis_prefix" env:"REDIS_PREFIX"`

	JWTSecret  string        `yaml:"jwt_secret" json:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL   time.Duration `yaml:"token_ttl" json:"token_ttl" env:"TOKEN_TTL"`
	BcryptCost int           `yaml:"bcrypt_cost" json:"bcrypt_cost" env:"BCRYPT_COST"`

	RateLimit    float64  `yaml:"rate_limit" json:"rate_limit" env:"RATE_LIMIT"`
	RateBurst    int      `yaml:"rate_burst" json:"rate_burst" env:"RATE_BURST"`
	AllowOrigins []string `yaml:"allow_origins" json:"allow_origins" env:"CORS_ORIGINS" env-separator:","`
}

const (
	defaultAddr        = "0.0.0.0"
	defaultPort        = 8080
	defaultStorage     = StorageMemory
	defaultDBStr       = "postgresql://shouldbeinVaultuser:shouldbeinVaultpassword@db:5432/todos?sslmode=disable"
	defaultMigratePath = "migrations"
	defaultRedisAddr   = "localhost:6379"
	defaultRedisPrefix = "todoportal"
	defaultJWTSecret   = "shouldbeinVaultsecret"
	defaultTokenTTL    = 24 * time.Hour
	defaultBcryptCost  = 10
	defaultRateLimit   = 20
	defaultRateBurst   = 40
)

func DefaultConfig() *Config {
	return &Config{
		Addr:         defaultAddr,
		Port:         defaultPort,
		Storage:      defaultStorage,
		DBStr:        defaultDBStr,
		MigratePath:  defaultMigratePath,
		RedisAddr:    defaultRedisAddr,
		RedisPrefix:  defaultRedisPrefix,
		JWTSecret:    defaultJWTSecret,
		TokenTTL:     defaultTokenTTL,
		BcryptCost:   defaultBcryptCost,
		RateLimit:    defaultRateLimit,
		RateBurst:    defaultRateBurst,
		AllowOrigins: defaultAllowOrigins(),
	}
}

func defaultAllowOrigins() []string {
	return []string{"http://localhost:3000", "http://localhost:5173"}
}

// ListenAddr is the host:port pair for http.Server.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Addr, c.Port)
}

// ReadConfig layers defaults, the .env file, the config file (CONFIG or -c),
// the environment and finally command line flags.
func ReadConfig() *Config {
	cfg, err := readConfig(os.Args[1:])
	if err != nil {
		log.Printf("[WARN] %v, используем конфигурацию по умолчанию", err)
		return DefaultConfig()
	}
	return cfg
}

func readConfig(args []string) (*Config, error) {
	fs := flag.NewFlagSet("todoportal", flag.ContinueOnError)
	addr := fs.String("addr", defaultAddr, "адрес сервера")
	port := fs.Int("port", defaultPort, "порт сервера")
	storage := fs.String("storage", defaultStorage, "хранилище: memory, postgres или redis")
	dbstr := fs.String("dbstr", defaultDBStr, "строка подключения к БД")
	dbDsn := fs.String("dbdsn", "", "DSN для подключения к базе данных (приоритетнее dbstr)")
	migratePath := fs.String("migratepath", defaultMigratePath, "путь к папке с миграциями")
	redisAddr := fs.String("redisaddr", defaultRedisAddr, "адрес Redis")
	configFile := fs.String("c", "", "путь к файлу конфигурации (YAML или JSON)")
	envFile := fs.String("env", ".env", "путь к .env файлу")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrConfigParseFailed, err)
	}

	loadDotEnv(*envFile)

	cfg := DefaultConfig()
	if err := loadConfigFile(cfg, *configFile); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "port":
			cfg.Port = *port
		case "storage":
			cfg.Storage = *storage
		case "dbstr":
			if *dbDsn == "" {
				cfg.DBStr = *dbstr
			}
		case "dbdsn":
			cfg.DBStr = *dbDsn
		case "migratepath":
			cfg.MigratePath = *migratePath
		case "redisaddr":
			cfg.RedisAddr = *redisAddr
		}
	})

	cfg.normalize()
	return cfg, nil
}

func loadDotEnv(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("[WARN] %s %s: %v", errors.ErrConfigFileReadFailed.Error(), path, err)
		return
	}
	log.Printf("[INFO] Переменные окружения загружены из %s", path)
}

// loadConfigFile reads the file when one is given and then the environment.
// Values missing from both keep what cfg already holds.
func loadConfigFile(cfg *Config, path string) error {
	if path == "" {
		path = os.Getenv("CONFIG")
	}
	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return fmt.Errorf("%w: %v", errors.ErrConfigParseFailed, err)
		}
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w %s: %v", errors.ErrConfigFileReadFailed, path, err)
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrConfigParseFailed, err)
	}
	log.Printf("[INFO] Конфигурация загружена из: %s", path)
	return nil
}

func (c *Config) normalize() {
	if c.Port < 1 || c.Port > 65535 {
		log.Printf("[WARN] %s - порт должен быть от 1 до 65535: %d", errors.ErrConfigInvalidFormat.Error(), c.Port)
		c.Port = defaultPort
	}
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	if c.Storage == "" {
		c.Storage = defaultStorage
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = defaultTokenTTL
	}
	if c.JWTSecret == "" {
		c.JWTSecret = defaultJWTSecret
	}
	if c.RateBurst < 1 {
		c.RateBurst = defaultRateBurst
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = defaultAllowOrigins()
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StoragePostgres, StorageRedis:
	default:
		return fmt.Errorf("%w: %q", errors.ErrUnknownStorage, c.Storage)
	}
	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      string `env:"PORT"        env-default:"8080"`
	DbHost    string `env:"DB_HOST"`
	DbPort    string `env:"DB_PORT"     env-default:"5432"`
	DbUser    string `env:"DB_USER"`
	DbPass    string `env:"DB_PASSWORD"`
	DbName    string `env:"DB_NAME"`
	DbSSLMode string `env:"DB_SSLMODE"  env-default:"disable"`

	JWTSecret string `env:"JWT_SECRET"`

	Log      string `env:"LOG"`
	LogLevel string `env:"LOGLEVEL" env-default:"info"`
	LogDir   string `env:"LOG_DIR"  env-default:"logs"`
	Env      string `env:"ENV"      env-default:"prod"` // dev|prod

	// Окно сбора ключей загрузчика: всё, что пришло за это время, уходит одним запросом.
	LoaderWait     time.Duration `env:"LOADER_WAIT"      env-default:"2ms"`
	LoaderMaxBatch int           `env:"LOADER_MAX_BATCH" env-default:"100"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"15s"`
}

// ConsoleConfig — настройки терминальной админки.
type ConsoleConfig struct {
	APIURL         string        `env:"API_URL"         env-default:"http://localhost:8080"`
	Token          string        `env:"ADMIN_TOKEN"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s"`

	JWTSecret string `env:"JWT_SECRET"`

	Log      string `env:"LOG"`
	LogLevel string `env:"LOGLEVEL" env-default:"info"`
	LogDir   string `env:"LOG_DIR"  env-default:"logs"`
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует: logger ещё не инициализирован.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))

	return &cfg, nil
}

// LoadConsoleConfig — то же самое для консоли.
func LoadConsoleConfig() (*ConsoleConfig, error) {
	_ = godotenv.Load(".env")

	var cfg ConsoleConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	return &cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	// Критичные: БД
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	// Без секрета удаление новостей невозможно, но чтение работает
	if strings.TrimSpace(c.JWTSecret) == "" {
		warnings = append(warnings, "JWT_SECRET is empty, admin routes will reject every token")
	}

	if c.LoaderWait <= 0 {
		warnings = append(warnings, "LOADER_WAIT <= 0, loader falls back to its default window")
	}
	if c.LoaderMaxBatch <= 0 {
		return nil, fmt.Errorf("LOADER_MAX_BATCH must be > 0")
	}

	// PORT
	if c.Port == "" {
		warnings = append(warnings, "PORT is empty, using default 8080")
		c.Port = "8080"
	}

	return warnings, nil
}

// Validate для консоли: без адреса API работать нечем.
func (c *ConsoleConfig) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("API_URL is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be > 0")
	}
	return nil
}

// GetDSN — полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe — DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

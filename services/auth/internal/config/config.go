package config

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Env представляет окружение приложения
type Env string

const (
	// EnvLocal - локальное окружение (для разработки на хосте)
	EnvLocal Env = "local"
	// EnvDocker - Docker окружение (для запуска в контейнерах)
	EnvDocker Env = "docker"
)

// Config содержит конфигурацию Auth Service
type Config struct {
	AppEnv         Env
	HTTPAddr       string
	ServiceVersion string

	// ErrinjectConfig путь к YAML каталогу сценариев отказов.
	// Пусто - используется встроенный каталог
	ErrinjectConfig string
	// TopologyConfig путь к YAML топологии стека.
	// Пусто - используется встроенная топология
	TopologyConfig string

	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения
// Читает APP_ENV и устанавливает дефолты в зависимости от окружения
func Load() (Config, error) {
	cfg := Config{}

	// Читаем APP_ENV
	appEnvStr := getString("APP_ENV", string(EnvLocal))
	appEnv := Env(appEnvStr)
	if appEnv != EnvLocal && appEnv != EnvDocker {
		return Config{}, fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", appEnvStr)
	}
	cfg.AppEnv = appEnv

	// HTTP_ADDR
	if cfg.AppEnv == EnvLocal {
		cfg.HTTPAddr = getString("HTTP_ADDR", "127.0.0.1:5001")
	} else {
		cfg.HTTPAddr = getString("HTTP_ADDR", "0.0.0.0:5001")
	}

	cfg.ServiceVersion = getString("SERVICE_VERSION", "1.0.0")
	cfg.ErrinjectConfig = getString("ERRINJECT_CONFIG", "")
	cfg.TopologyConfig = getString("TOPOLOGY_CONFIG", "")

	// SHUTDOWN_TIMEOUT
	shutdownTimeoutStr := getString("SHUTDOWN_TIMEOUT", "5s")
	shutdownTimeout, err := time.ParseDuration(shutdownTimeoutStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = shutdownTimeout

	// Валидация
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.ServiceVersion == "" {
		return fmt.Errorf("SERVICE_VERSION is required")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Log выводит конфигурацию в лог
func (c Config) Log() {
	log.Printf("Config loaded:")
	log.Printf("  APP_ENV: %s", c.AppEnv)
	log.Printf("  HTTP_ADDR: %s", c.HTTPAddr)
	log.Printf("  SERVICE_VERSION: %s", c.ServiceVersion)
	log.Printf("  ERRINJECT_CONFIG: %s", orDefault(c.ErrinjectConfig))
	log.Printf("  TOPOLOGY_CONFIG: %s", orDefault(c.TopologyConfig))
	log.Printf("  SHUTDOWN_TIMEOUT: %s", c.ShutdownTimeout)
}

// getString читает переменную окружения или возвращает дефолт
func getString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// orDefault подпись для незаданных путей конфигурации в логе
func orDefault(path string) string {
	if path == "" {
		return "(builtin)"
	}
	return path
}

package observability

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// LoadEnv загружает конфигурацию OTel из переменных окружения и
// заполняет поля идентификации сервиса.
// Использует пакет caarlos0/env/v10 для парсинга env-тегов
func LoadEnv(serviceName, deploymentEnv string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse otel env: %w", err)
	}
	cfg.ServiceName = serviceName
	cfg.DeploymentEnvironment = deploymentEnv
	return cfg, nil
}

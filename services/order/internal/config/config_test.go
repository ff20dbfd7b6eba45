package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_LocalDefaults(t *testing.T) {
	// Очищаем env
	os.Clearenv()
	os.Setenv("APP_ENV", "local")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AppEnv != EnvLocal {
		t.Errorf("Expected AppEnv=local, got %s", cfg.AppEnv)
	}
	if cfg.HTTPAddr != "127.0.0.1:5003" {
		t.Errorf("Expected HTTPAddr=127.0.0.1:5003, got %s", cfg.HTTPAddr)
	}
	if cfg.ServiceVersion != "1.0.0" {
		t.Errorf("Expected ServiceVersion=1.0.0, got %s", cfg.ServiceVersion)
	}
	if cfg.ErrinjectConfig != "" {
		t.Errorf("Expected empty ErrinjectConfig (builtin catalog), got %s", cfg.ErrinjectConfig)
	}
	if cfg.CompensateOnPaymentFailure {
		t.Error("Expected CompensateOnPaymentFailure=false by default")
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("Expected ShutdownTimeout=5s, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoad_DockerDefaults(t *testing.T) {
	// Очищаем env
	os.Clearenv()
	os.Setenv("APP_ENV", "docker")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AppEnv != EnvDocker {
		t.Errorf("Expected AppEnv=docker, got %s", cfg.AppEnv)
	}
	if cfg.HTTPAddr != "0.0.0.0:5003" {
		t.Errorf("Expected HTTPAddr=0.0.0.0:5003, got %s", cfg.HTTPAddr)
	}
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "production")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for invalid APP_ENV, got nil")
	}
}

func TestLoad_CompensateFlag(t *testing.T) {
	os.Clearenv()
	os.Setenv("ORDER_COMPENSATE_ON_PAYMENT_FAILURE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !cfg.CompensateOnPaymentFailure {
		t.Error("Expected CompensateOnPaymentFailure=true")
	}
}

func TestLoad_InvalidCompensateFlag(t *testing.T) {
	os.Clearenv()
	os.Setenv("ORDER_COMPENSATE_ON_PAYMENT_FAILURE", "yes-please")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for invalid ORDER_COMPENSATE_ON_PAYMENT_FAILURE, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", "127.0.0.1:9999")
	os.Setenv("SERVICE_VERSION", "2.3.4")
	os.Setenv("ERRINJECT_CONFIG", "/etc/goshopsim/errors.yaml")
	os.Setenv("TOPOLOGY_CONFIG", "/etc/goshopsim/topology.yaml")
	os.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.HTTPAddr != "127.0.0.1:9999" {
		t.Errorf("Expected HTTPAddr=127.0.0.1:9999, got %s", cfg.HTTPAddr)
	}
	if cfg.ServiceVersion != "2.3.4" {
		t.Errorf("Expected ServiceVersion=2.3.4, got %s", cfg.ServiceVersion)
	}
	if cfg.ErrinjectConfig != "/etc/goshopsim/errors.yaml" {
		t.Errorf("Expected ErrinjectConfig=/etc/goshopsim/errors.yaml, got %s", cfg.ErrinjectConfig)
	}
	if cfg.TopologyConfig != "/etc/goshopsim/topology.yaml" {
		t.Errorf("Expected TopologyConfig=/etc/goshopsim/topology.yaml, got %s", cfg.TopologyConfig)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected ShutdownTimeout=30s, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	os.Clearenv()
	os.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for invalid SHUTDOWN_TIMEOUT, got nil")
	}
}

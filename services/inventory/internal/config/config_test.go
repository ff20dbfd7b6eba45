package config

import (
	"os"
	"testing"
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
	if cfg.HTTPAddr != "127.0.0.1:5005" {
		t.Errorf("Expected HTTPAddr=127.0.0.1:5005, got %s", cfg.HTTPAddr)
	}
	if cfg.ServiceVersion != "1.0.0" {
		t.Errorf("Expected ServiceVersion=1.0.0, got %s", cfg.ServiceVersion)
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
	if cfg.HTTPAddr != "0.0.0.0:5005" {
		t.Errorf("Expected HTTPAddr=0.0.0.0:5005, got %s", cfg.HTTPAddr)
	}
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "staging")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for invalid APP_ENV, got nil")
	}
}

func TestLoad_ConfigPathOverrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("ERRINJECT_CONFIG", "/etc/goshopsim/errors.yaml")
	os.Setenv("TOPOLOGY_CONFIG", "/etc/goshopsim/topology.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ErrinjectConfig != "/etc/goshopsim/errors.yaml" {
		t.Errorf("Expected ErrinjectConfig=/etc/goshopsim/errors.yaml, got %s", cfg.ErrinjectConfig)
	}
	if cfg.TopologyConfig != "/etc/goshopsim/topology.yaml" {
		t.Errorf("Expected TopologyConfig=/etc/goshopsim/topology.yaml, got %s", cfg.TopologyConfig)
	}
}

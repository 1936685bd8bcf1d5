package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Backend != StorageRedis {
		t.Fatalf("backend = %q, want redis", cfg.Storage.Backend)
	}
	if cfg.Storage.RedisURL != "redis://redis:6379" {
		t.Fatalf("redis url = %q", cfg.Storage.RedisURL)
	}
	if cfg.Storage.ServerPoolSize != 5 || cfg.Storage.SubscriberPoolSize != 2 {
		t.Fatalf("pool sizes = %d/%d, want 5/2", cfg.Storage.ServerPoolSize, cfg.Storage.SubscriberPoolSize)
	}
	if cfg.Chain.WebsocketURL != "ws://ganache:8545" {
		t.Fatalf("chain ws url = %q", cfg.Chain.WebsocketURL)
	}
	if !cfg.IsLocalDevelopment() {
		t.Fatal("empty environment should count as local development")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CHAINDEX_PORT", "9090")
	t.Setenv("CHAINDEX_STORAGE", "sqlite")
	t.Setenv("CHAINDEX_SQLITE_PATH", "/tmp/kv")
	t.Setenv("CHAINDEX_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.Backend != StorageSQLite {
		t.Fatalf("backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Storage.SQLitePath != "/tmp/kv" {
		t.Fatalf("sqlite path = %q", cfg.Storage.SQLitePath)
	}
	if cfg.IsLocalDevelopment() {
		t.Fatal("production environment should not count as local development")
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("CHAINDEX_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatal("load accepted an out-of-range port")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("CHAINDEX_STORAGE", "dynamo")

	if _, err := Load(); err == nil {
		t.Fatal("load accepted an unknown storage backend")
	}
}

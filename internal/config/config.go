package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Storage backend names accepted by CHAINDEX_STORAGE.
const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Storage     StorageConfig
	Chain       ChainConfig
	Client      ClientConfig
}

type ServerConfig struct {
	Port int
}

type StorageConfig struct {
	Backend            string
	RedisURL           string
	ServerPoolSize     int
	SubscriberPoolSize int
	SQLitePath         string
}

type ChainConfig struct {
	WebsocketURL string
	RPCURL       string
}

type ClientConfig struct {
	APIURL string
}

// Load reads configuration from the environment with viper defaults.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("chaindex_env", "")
	v.SetDefault("app_env", "")
	v.SetDefault("go_env", "")
	v.SetDefault("chaindex_port", 8080)
	v.SetDefault("chaindex_storage", StorageRedis)
	v.SetDefault("chaindex_redis_url", "redis://redis:6379")
	v.SetDefault("chaindex_server_pool_size", 5)
	v.SetDefault("chaindex_subscriber_pool_size", 2)
	v.SetDefault("chaindex_sqlite_path", "data/chaindex")
	v.SetDefault("chaindex_chain_ws_url", "ws://ganache:8545")
	v.SetDefault("chaindex_chain_rpc_url", "http://ganache:8545")
	v.SetDefault("chaindex_api_url", "http://localhost:8080")

	port := v.GetInt("chaindex_port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid CHAINDEX_PORT: %d", port)
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString("chaindex_storage")))
	switch backend {
	case StorageRedis, StorageSQLite:
	default:
		return Config{}, fmt.Errorf("invalid CHAINDEX_STORAGE: %q (want %s or %s)", backend, StorageRedis, StorageSQLite)
	}

	serverPool := v.GetInt("chaindex_server_pool_size")
	if serverPool <= 0 {
		serverPool = 5
	}
	subscriberPool := v.GetInt("chaindex_subscriber_pool_size")
	if subscriberPool <= 0 {
		subscriberPool = 2
	}

	cfg := Config{
		Environment: resolveEnvironment(v),
		Server:      ServerConfig{Port: port},
		Storage: StorageConfig{
			Backend:            backend,
			RedisURL:           strings.TrimSpace(v.GetString("chaindex_redis_url")),
			ServerPoolSize:     serverPool,
			SubscriberPoolSize: subscriberPool,
			SQLitePath:         strings.TrimSpace(v.GetString("chaindex_sqlite_path")),
		},
		Chain: ChainConfig{
			WebsocketURL: strings.TrimSpace(v.GetString("chaindex_chain_ws_url")),
			RPCURL:       strings.TrimSpace(v.GetString("chaindex_chain_rpc_url")),
		},
		Client: ClientConfig{
			APIURL: strings.TrimSpace(v.GetString("chaindex_api_url")),
		},
	}

	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "data/chaindex"
	}

	return cfg, nil
}

func (c Config) IsLocalDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

func resolveEnvironment(v *viper.Viper) string {
	for _, key := range []string{"chaindex_env", "app_env", "go_env"} {
		value := strings.TrimSpace(v.GetString(key))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}

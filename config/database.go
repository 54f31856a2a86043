package config

import (
	"time"

	"syntora/utils"
)

type DatabaseConfig struct {
	URI             string
	DatabaseName    string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	RetryWrites     bool
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "syntora"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: utils.GetEnvAsDuration("MONGO_MAX_CONN_IDLE_TIME", 60*time.Second),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

type RedisConfig struct {
	URL          string
	StatsTTL     time.Duration
	ResetLockTTL time.Duration
}

func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		URL:          utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
		StatsTTL:     utils.GetEnvAsDuration("STATS_CACHE_TTL", 30*time.Second),
		ResetLockTTL: utils.GetEnvAsDuration("RESET_LOCK_TTL", 30*time.Second),
	}
}

type ServerConfig struct {
	Port            string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            utils.GetEnvAsString("PORT", "8080"),
		MaxBodyBytes:    int64(utils.GetEnvAsInt("MAX_REQUEST_BODY_BYTES", 1<<20)),
		ShutdownTimeout: utils.GetEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

package config

import (
	"fmt"
	"time"
)

// RedisConfig holds cache connection settings.
type RedisConfig struct {
	Host           string `yaml:"host" env:"NOTEDECK_REDIS_HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"NOTEDECK_REDIS_PORT" env-default:"6379"`
	Password       string `yaml:"password" env:"NOTEDECK_REDIS_PASSWORD" env-default:""`
	DB             int    `yaml:"db" env:"NOTEDECK_REDIS_DB" env-default:"0"`
	PoolSize       int    `yaml:"pool_size" env:"NOTEDECK_REDIS_POOL_SIZE" env-default:"10"`
	ConnectTimeout int    `yaml:"connect_timeout" env:"NOTEDECK_REDIS_CONNECT_TIMEOUT" env-default:"5"`
	DefaultTTL     int    `yaml:"default_ttl" env:"NOTEDECK_REDIS_DEFAULT_TTL" env-default:"300"`
}

// GetAddress returns the host:port address of the Redis server.
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GetConnectTimeout returns the dial timeout as a duration.
func (r *RedisConfig) GetConnectTimeout() time.Duration {
	return time.Duration(r.ConnectTimeout) * time.Second
}

// GetDefaultTTL returns the default cache entry lifetime.
func (r *RedisConfig) GetDefaultTTL() time.Duration {
	return time.Duration(r.DefaultTTL) * time.Second
}

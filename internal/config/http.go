package config

import (
	"fmt"
	"time"
)

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Host         string `yaml:"host" env:"NOTEDECK_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int    `yaml:"port" env:"NOTEDECK_HTTP_PORT" env-default:"8080"`
	ReadTimeout  int    `yaml:"read_timeout" env:"NOTEDECK_HTTP_READ_TIMEOUT" env-default:"10"`
	WriteTimeout int    `yaml:"write_timeout" env:"NOTEDECK_HTTP_WRITE_TIMEOUT" env-default:"10"`
}

// GetAddress returns the listen address for the HTTP server.
func (h *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// GetReadTimeout returns the read timeout as a duration.
func (h *HTTPConfig) GetReadTimeout() time.Duration {
	return time.Duration(h.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration.
func (h *HTTPConfig) GetWriteTimeout() time.Duration {
	return time.Duration(h.WriteTimeout) * time.Second
}

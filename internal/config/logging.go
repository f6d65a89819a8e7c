package config

import "notedeck/pkg/logger"

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTEDECK_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"NOTEDECK_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment maps the mode string onto a logger environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}

package config

import "fmt"

// PostgresConfig holds database connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"NOTEDECK_POSTGRES_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"NOTEDECK_POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"NOTEDECK_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"NOTEDECK_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"NOTEDECK_POSTGRES_DB" env-default:"notedeck"`
	MinConn  int    `yaml:"min_conn" env:"NOTEDECK_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int    `yaml:"max_conn" env:"NOTEDECK_POSTGRES_MAX_CONN" env-default:"10"`
}

// GetConnectionURL returns the URL form of the DSN, usable by both pgx
// and the migration runner.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

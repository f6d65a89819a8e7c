package config

import "time"

// JWTConfig holds token signing settings.
type JWTConfig struct {
	SecretKey       string `yaml:"secret_key" env:"NOTEDECK_JWT_SECRET_KEY" env-default:"xK9mPvQ2wRt5yUi8oLjH3gFdSa1zXcVbNm6qWe4rTy7uIo0pAs2dFg5hJk8lZx3c"`
	AccessTokenTTL  string `yaml:"access_token_ttl" env:"NOTEDECK_JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl" env:"NOTEDECK_JWT_REFRESH_TOKEN_TTL" env-default:"720h"`
	BCryptCost      int    `yaml:"bcrypt_cost" env:"NOTEDECK_BCRYPT_COST" env-default:"10"`
}

// GetAccessTokenTTL returns the access token lifetime.
func (c *JWTConfig) GetAccessTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil {
		return 15 * time.Minute
	}
	return duration
}

// GetRefreshTokenTTL returns the refresh token lifetime.
func (c *JWTConfig) GetRefreshTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.RefreshTokenTTL)
	if err != nil {
		return 720 * time.Hour
	}
	return duration
}

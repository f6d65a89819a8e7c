package services

import (
	"notedeck/internal/config"
	"notedeck/internal/ports/services"
)

// ServiceFactory builds the auth related services from configuration.
type ServiceFactory struct {
	cfg *config.JWTConfig
}

// NewServiceFactory creates a new service factory.
func NewServiceFactory(cfg *config.JWTConfig) *ServiceFactory {
	return &ServiceFactory{cfg: cfg}
}

// NewTokenService returns the JWT backed token service.
func (f *ServiceFactory) NewTokenService() services.TokenService {
	return NewJWT(f.cfg.SecretKey)
}

// NewPasswordService returns the bcrypt backed password service.
func (f *ServiceFactory) NewPasswordService() services.PasswordService {
	return NewBCrypt(f.cfg.BCryptCost)
}

package service

import (
	"github.com/MKhiriev/go-voting-server/internal/config"
	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/internal/store"
	"github.com/MKhiriev/go-voting-server/models"
)

type Services struct {
	AuthService      AuthService
	UserService      UserService
	CandidateService CandidateService
}

func NewServices(storages *store.Storages, hasher models.PasswordHasher, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, hasher, cfg.App, logger),
		UserService: NewUserService(storages.UserRepository, hasher, logger),
		CandidateService: NewCandidateValidationService().Wrap(
			NewCandidateService(storages.CandidateRepository, storages.UserRepository, logger),
		),
	}
}

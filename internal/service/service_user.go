package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/internal/store"
	"github.com/MKhiriev/go-voting-server/internal/validators"
	"github.com/MKhiriev/go-voting-server/models"
)

type userService struct {
	userRepository store.UserRepository
	hasher         models.PasswordHasher
	validator      validators.Validator
	logger         *logger.Logger
}

func NewUserService(userRepository store.UserRepository, hasher models.PasswordHasher, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		hasher:         hasher,
		validator:      validators.NewVotingValidator(),
		logger:         logger,
	}
}

// Profile returns the stored user, or nil when a still valid token names a
// user that no longer exists.
func (u *userService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := u.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		logger.FromContext(ctx).Warn().Str("user_id", userID).Msg("profile requested for a missing user")
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.Profile").Str("user_id", userID).Msg("user lookup failed")
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	return &user, nil
}

// ChangePassword replaces the password after checking the current one.
// A missing user and a wrong current password both yield
// ErrInvalidCurrentPassword.
func (u *userService) ChangePassword(ctx context.Context, userID string, req models.PasswordChangeRequest) error {
	log := logger.FromContext(ctx)

	if err := u.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := u.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrInvalidCurrentPassword
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.ChangePassword").Str("user_id", userID).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if !user.ComparePassword(u.hasher, req.CurrentPassword) {
		return ErrInvalidCurrentPassword
	}

	user.SetPassword(req.NewPassword)
	if err = u.userRepository.UpdatePassword(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrInvalidCurrentPassword
		}
		log.Err(err).Str("func", "*userService.ChangePassword").Str("user_id", userID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}
	log.Info().Str("user_id", userID).Msg("password updated")

	return nil
}

func (u *userService) CheckAdmin(ctx context.Context, userID string) error {
	user, err := u.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Role != models.RoleAdmin {
		return ErrNotAdmin
	}

	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-voting-server/internal/config"
	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/internal/store"
	"github.com/MKhiriev/go-voting-server/internal/utils"
	"github.com/MKhiriev/go-voting-server/internal/validators"
	"github.com/MKhiriev/go-voting-server/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt (through the
// user model's password hook) for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher checks login passwords against stored hashes.
	hasher models.PasswordHasher

	// validator performs the static signup and login checks.
	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, hasher models.PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		validator:      validators.NewVotingValidator(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Signup registers a new user and issues a token for it.
//
// Checks run in this order, the first failure wins:
//  1. an admin signup while an admin already exists → ErrAdminAlreadyExists;
//  2. static validation (12-digit Aadhar Card Number, name, password, role);
//  3. an already registered Aadhar Card Number → ErrAadharAlreadyExists.
//
// An empty role defaults to voter. Unique-index violations raised by the
// repository (concurrent signups) map to the same errors as steps 1 and 3.
func (a *authService) Signup(ctx context.Context, user models.User) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if user.Role == models.RoleAdmin {
		exists, err := a.userRepository.AdminExists(ctx)
		if err != nil {
			log.Err(err).Str("func", "*authService.Signup").Msg("admin lookup failed")
			return models.User{}, models.Token{}, fmt.Errorf("admin lookup failed: %w", err)
		}
		if exists {
			return models.User{}, models.Token{}, ErrAdminAlreadyExists
		}
	}

	if err := a.validator.Validate(ctx, user); err != nil {
		log.Debug().Err(err).Str("func", "*authService.Signup").Msg("invalid user data provided")
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if user.Role == "" {
		user.Role = models.RoleVoter
	}

	_, err := a.userRepository.FindUserByAadharCardNumber(ctx, user.AadharCardNumber)
	switch {
	case err == nil:
		return models.User{}, models.Token{}, ErrAadharAlreadyExists
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("func", "*authService.Signup").Msg("user search by aadhar card number failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by aadhar card number failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	switch {
	case errors.Is(err, store.ErrAdminAlreadyExists):
		return models.User{}, models.Token{}, ErrAdminAlreadyExists
	case errors.Is(err, store.ErrAadharAlreadyExists):
		return models.User{}, models.Token{}, ErrAadharAlreadyExists
	case err != nil:
		log.Err(err).Str("func", "*authService.Signup").Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Str("func", "*authService.Signup").Str("user_id", registeredUser.ID).Msg("token creation failed")
		return models.User{}, models.Token{}, err
	}
	log.Info().Str("user_id", registeredUser.ID).Str("role", string(registeredUser.Role)).Msg("user registered")

	return registeredUser, token, nil
}

// Login authenticates a user by Aadhar Card Number and password.
//
// Returns:
//   - ErrInvalidDataProvided if either credential is empty;
//   - ErrInvalidCredentials if the user is unknown or the password does not
//     match (the two cases are indistinguishable to the caller);
//   - a wrapped storage error for any other lookup failure.
func (a *authService) Login(ctx context.Context, credentials models.LoginRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, credentials); err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	foundUser, err := a.userRepository.FindUserByAadharCardNumber(ctx, credentials.AadharCardNumber)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("func", "*authService.Login").Msg("unknown aadhar card number")
		return models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by aadhar card number failed")
		return models.Token{}, fmt.Errorf("user search by aadhar card number failed: %w", err)
	}

	if !foundUser.ComparePassword(a.hasher, credentials.Password) {
		log.Debug().Str("func", "*authService.Login").Str("user_id", foundUser.ID).Msg("wrong password")
		return models.Token{}, ErrInvalidCredentials
	}

	return a.CreateToken(ctx, foundUser)
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

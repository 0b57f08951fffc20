package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/models"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// userRepository is the SQL implementation of [UserRepository]. It works
// against PostgreSQL and SQLite alike; the embedded [*DB] carries the
// placeholder format and the driver error classifier.
type userRepository struct {
	*DB
	hasher models.PasswordHasher
	ids    IDGenerator
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, hasher models.PasswordHasher, ids IDGenerator, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:     db,
		hasher: hasher,
		ids:    ids,
		logger: logger,
	}
}

// CreateUser hashes the password, assigns an ID with timestamps and inserts
// the user.
//
// Error handling:
//   - duplicate aadhar_card_number → [ErrAadharAlreadyExists];
//   - a second admin → [ErrAdminAlreadyExists];
//   - any other driver error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := user.BeforeSave(r.hasher); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error hashing password")
		return models.User{}, err
	}

	now := time.Now().UTC()
	user.ID = r.ids.Generate()
	user.CreatedAt = now
	user.UpdatedAt = now

	query, args, err := r.insertUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		if conflict := r.conflictError(err); conflict != nil {
			log.Warn().Err(err).Str("func", "*userRepository.CreateUser").Msg("unique constraint violated")
			return models.User{}, conflict
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

// FindUserByID returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"id": userID})
}

// FindUserByAadharCardNumber returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByAadharCardNumber(ctx context.Context, aadharCardNumber string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"aadhar_card_number": aadharCardNumber})
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.selectUserQuery(where)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Msg("failed to scan user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func (r *userRepository) AdminExists(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.adminExistsQuery()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.AdminExists").Msg("failed to build query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = r.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		log.Err(err).Str("func", "*userRepository.AdminExists").Msg("failed to query admin")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

// UpdatePassword hashes the new password if needed and stores it.
func (r *userRepository) UpdatePassword(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx).With().Str("user_id", user.ID).Logger()

	if err := user.BeforeSave(r.hasher); err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error hashing password")
		return err
	}
	user.UpdatedAt = time.Now().UTC()

	query, args, err := r.updatePasswordQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("failed to update password")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user models.User
		role string
	)

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Age,
		&user.Email,
		&user.Mobile,
		&user.Address,
		&user.AadharCardNumber,
		&user.Password,
		&role,
		&user.IsVoted,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	user.Role = models.Role(role)

	return user, nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoUserRepository is the MongoDB implementation of [UserRepository].
type mongoUserRepository struct {
	users  *mongo.Collection
	hasher models.PasswordHasher
	ids    IDGenerator
	logger *logger.Logger
}

// NewMongoUserRepository constructs a [UserRepository] over the "users"
// collection of db.
func NewMongoUserRepository(db *mongo.Database, hasher models.PasswordHasher, ids IDGenerator, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating mongo user repository")
	return &mongoUserRepository{
		users:  db.Collection(usersCollection),
		hasher: hasher,
		ids:    ids,
		logger: logger,
	}
}

func (r *mongoUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := user.BeforeSave(r.hasher); err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.CreateUser").Msg("error hashing password")
		return models.User{}, err
	}

	now := time.Now().UTC()
	user.ID = r.ids.Generate()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.users.InsertOne(ctx, user); err != nil {
		if conflict := mongoConflictError(err); conflict != nil {
			log.Warn().Err(err).Str("func", "*mongoUserRepository.CreateUser").Msg("unique index violated")
			return models.User{}, conflict
		}
		log.Err(err).Str("func", "*mongoUserRepository.CreateUser").Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	return user, nil
}

func (r *mongoUserRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findUser(ctx, bson.D{{Key: "_id", Value: userID}})
}

func (r *mongoUserRepository) FindUserByAadharCardNumber(ctx context.Context, aadharCardNumber string) (models.User, error) {
	return r.findUser(ctx, bson.D{{Key: "aadharCardNumber", Value: aadharCardNumber}})
}

func (r *mongoUserRepository) findUser(ctx context.Context, filter bson.D) (models.User, error) {
	var user models.User

	err := r.users.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoUserRepository.findUser").Msg("failed to find user")
		return models.User{}, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	return user, nil
}

func (r *mongoUserRepository) AdminExists(ctx context.Context) (bool, error) {
	n, err := r.users.CountDocuments(ctx, bson.D{{Key: "role", Value: string(models.RoleAdmin)}}, options.Count().SetLimit(1))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoUserRepository.AdminExists").Msg("failed to count admins")
		return false, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	return n > 0, nil
}

func (r *mongoUserRepository) UpdatePassword(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	if err := user.BeforeSave(r.hasher); err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.UpdatePassword").Msg("error hashing password")
		return err
	}

	result, err := r.users.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: user.ID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "password", Value: user.Password},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	)
	if err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.UpdatePassword").Str("user_id", user.ID).Msg("failed to update password")
		return fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

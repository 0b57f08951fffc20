package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-voting-server/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection      = "users"
	candidatesCollection = "candidates"

	aadharIndexName      = "users_aadhar_card_number_unique"
	singleAdminIndexName = "users_single_admin_idx"

	mongoConnectTimeout = 10 * time.Second
)

// MongoDB is a document-store connection shared by the Mongo repositories.
type MongoDB struct {
	*mongo.Database
	client *mongo.Client
	logger *logger.Logger
}

// NewConnectMongo connects to the deployment at uri, pings it and selects
// the dbName database.
func NewConnectMongo(ctx context.Context, uri, dbName string, log *logger.Logger) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("failed to connect to mongo")
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("failed to ping mongo")
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	log.Info().Str("func", "NewConnectMongo").Str("database", dbName).Msg("connected to mongo successfully")

	return &MongoDB{
		Database: client.Database(dbName),
		client:   client,
		logger:   log,
	}, nil
}

// EnsureIndexes creates the unique indexes that back the aadhar and
// single-admin rules. It plays the role migrations play for SQL backends.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	return ensureUserIndexes(ctx, m.Database)
}

func ensureUserIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "aadharCardNumber", Value: 1}},
			Options: options.Index().SetName(aadharIndexName).SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
			Options: options.Index().
				SetName(singleAdminIndexName).
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "role", Value: "admin"}}),
		},
	})
	if err != nil {
		return fmt.Errorf("%w: creating indexes: %w", ErrMongoOperation, err)
	}

	return nil
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// mongoConflictError maps a duplicate key error to a domain error using the
// index name carried in the server message.
func mongoConflictError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return nil
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, aadharIndexName), strings.Contains(msg, "aadharCardNumber"):
		return ErrAadharAlreadyExists
	case strings.Contains(msg, singleAdminIndexName):
		return ErrAdminAlreadyExists
	}

	return nil
}

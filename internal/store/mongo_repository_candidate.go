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

// mongoCandidateRepository is the MongoDB implementation of
// [CandidateRepository]. Ballots are embedded in the candidate document.
type mongoCandidateRepository struct {
	candidates *mongo.Collection
	users      *mongo.Collection
	ids        IDGenerator
	logger     *logger.Logger
}

// NewMongoCandidateRepository constructs a [CandidateRepository] over the
// "candidates" and "users" collections of db.
func NewMongoCandidateRepository(db *mongo.Database, ids IDGenerator, logger *logger.Logger) CandidateRepository {
	logger.Debug().Msg("creating mongo candidate repository")
	return &mongoCandidateRepository{
		candidates: db.Collection(candidatesCollection),
		users:      db.Collection(usersCollection),
		ids:        ids,
		logger:     logger,
	}
}

func (c *mongoCandidateRepository) CreateCandidate(ctx context.Context, candidate models.Candidate) (models.Candidate, error) {
	now := time.Now().UTC()
	candidate.ID = c.ids.Generate()
	candidate.Votes = []models.Vote{}
	candidate.VoteCount = 0
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	if _, err := c.candidates.InsertOne(ctx, candidate); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "mongoCandidateRepository.CreateCandidate").Msg("failed to insert candidate")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	return candidate, nil
}

func (c *mongoCandidateRepository) UpdateCandidate(ctx context.Context, update models.CandidateUpdate) (models.Candidate, error) {
	set := bson.D{}
	if update.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *update.Name})
	}
	if update.Party != nil {
		set = append(set, bson.E{Key: "party", Value: *update.Party})
	}
	if update.Age != nil {
		set = append(set, bson.E{Key: "age", Value: *update.Age})
	}
	set = append(set, bson.E{Key: "updatedAt", Value: time.Now().UTC()})

	var candidate models.Candidate
	err := c.candidates.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: update.ID}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&candidate)

	return candidate, c.singleResultError(ctx, err, "mongoCandidateRepository.UpdateCandidate")
}

func (c *mongoCandidateRepository) DeleteCandidate(ctx context.Context, candidateID string) (models.Candidate, error) {
	var candidate models.Candidate
	err := c.candidates.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: candidateID}}).Decode(&candidate)

	return candidate, c.singleResultError(ctx, err, "mongoCandidateRepository.DeleteCandidate")
}

func (c *mongoCandidateRepository) FindCandidateByID(ctx context.Context, candidateID string) (models.Candidate, error) {
	var candidate models.Candidate
	err := c.candidates.FindOne(ctx, bson.D{{Key: "_id", Value: candidateID}}).Decode(&candidate)

	return candidate, c.singleResultError(ctx, err, "mongoCandidateRepository.FindCandidateByID")
}

func (c *mongoCandidateRepository) singleResultError(ctx context.Context, err error, fn string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrCandidateNotFound
	}

	logger.FromContext(ctx).Err(err).Str("func", fn).Msg("mongo operation failed")
	return fmt.Errorf("%w: %w", ErrMongoOperation, err)
}

func (c *mongoCandidateRepository) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "votes", Value: 0}}).
		SetSort(bson.D{{Key: "createdAt", Value: 1}})

	candidates := make([]models.Candidate, 0, 16)
	if err := c.findAll(ctx, opts, &candidates); err != nil {
		return nil, err
	}

	return candidates, nil
}

func (c *mongoCandidateRepository) CountVotes(ctx context.Context) ([]models.VoteCount, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "party", Value: 1}, {Key: "voteCount", Value: 1}}).
		SetSort(bson.D{{Key: "voteCount", Value: -1}, {Key: "createdAt", Value: 1}})

	var docs []struct {
		Party     string `bson:"party"`
		VoteCount int    `bson:"voteCount"`
	}
	if err := c.findAll(ctx, opts, &docs); err != nil {
		return nil, err
	}

	counts := make([]models.VoteCount, 0, len(docs))
	for _, doc := range docs {
		counts = append(counts, models.VoteCount{Party: doc.Party, Count: doc.VoteCount})
	}

	return counts, nil
}

func (c *mongoCandidateRepository) findAll(ctx context.Context, opts *options.FindOptions, results any) error {
	log := logger.FromContext(ctx)

	cursor, err := c.candidates.Find(ctx, bson.D{}, opts)
	if err != nil {
		log.Err(err).Str("func", "mongoCandidateRepository.findAll").Msg("failed to find candidates")
		return fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	if err = cursor.All(ctx, results); err != nil {
		log.Err(err).Str("func", "mongoCandidateRepository.findAll").Msg("failed to decode candidates")
		return fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	return nil
}

// RecordVote flips the user's isVoted flag with a conditional update, then
// pushes the ballot onto the candidate. If the candidate has disappeared in
// between, the flag is reverted.
func (c *mongoCandidateRepository) RecordVote(ctx context.Context, candidateID, userID string) error {
	log := logger.FromContext(ctx).With().
		Str("candidate_id", candidateID).
		Str("user_id", userID).
		Logger()

	now := time.Now().UTC()

	marked, err := c.users.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID}, {Key: "isVoted", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "isVoted", Value: true},
			{Key: "updatedAt", Value: now},
		}}},
	)
	if err != nil {
		log.Err(err).Str("func", "mongoCandidateRepository.RecordVote").Msg("failed to mark user as voted")
		return fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}
	if marked.MatchedCount == 0 {
		return ErrAlreadyVoted
	}

	pushed, err := c.candidates.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: candidateID}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "votes", Value: models.Vote{UserID: userID, VotedAt: now}}}},
			{Key: "$inc", Value: bson.D{{Key: "voteCount", Value: 1}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
		},
	)
	if err == nil && pushed.MatchedCount == 0 {
		err = ErrCandidateNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "mongoCandidateRepository.RecordVote").Msg("failed to add ballot, reverting user")
		if _, revertErr := c.users.UpdateOne(ctx,
			bson.D{{Key: "_id", Value: userID}},
			bson.D{{Key: "$set", Value: bson.D{{Key: "isVoted", Value: false}}}},
		); revertErr != nil {
			log.Err(revertErr).Str("func", "mongoCandidateRepository.RecordVote").Msg("failed to revert user")
		}
		if errors.Is(err, ErrCandidateNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}
	log.Info().Str("func", "mongoCandidateRepository.RecordVote").Msg("vote recorded")

	return nil
}

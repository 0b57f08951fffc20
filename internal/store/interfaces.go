package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-voting-server/models"
)

// UserRepository persists registered users. Every write runs the user's
// BeforeSave hook so that passwords are stored as bcrypt hashes only.
type UserRepository interface {
	// CreateUser stores a new user and returns it with its generated ID and
	// timestamps. Returns ErrAadharAlreadyExists or ErrAdminAlreadyExists on
	// uniqueness violations.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	FindUserByAadharCardNumber(ctx context.Context, aadharCardNumber string) (models.User, error)
	// AdminExists reports whether a user with the admin role is registered.
	AdminExists(ctx context.Context) (bool, error)
	// UpdatePassword persists user.Password for user.ID.
	UpdatePassword(ctx context.Context, user models.User) error
}

// CandidateRepository persists candidates and the ballots cast for them.
type CandidateRepository interface {
	CreateCandidate(ctx context.Context, candidate models.Candidate) (models.Candidate, error)
	// UpdateCandidate writes the non-nil fields of update and returns the
	// resulting candidate.
	UpdateCandidate(ctx context.Context, update models.CandidateUpdate) (models.Candidate, error)
	// DeleteCandidate removes the candidate with its ballots and returns the
	// removed record.
	DeleteCandidate(ctx context.Context, candidateID string) (models.Candidate, error)
	FindCandidateByID(ctx context.Context, candidateID string) (models.Candidate, error)
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	// CountVotes returns the tally ordered by vote count, highest first.
	CountVotes(ctx context.Context) ([]models.VoteCount, error)
	// RecordVote atomically marks the user as voted and adds the ballot to
	// the candidate. Returns ErrAlreadyVoted if the user has voted before.
	RecordVote(ctx context.Context, candidateID, userID string) error
}

// ErrorClassificator inspects driver errors. Classify returns the class of
// err and, for constraint violations, the name of the violated constraint
// (or the message that identifies it).
type ErrorClassificator interface {
	Classify(err error) (ErrorClassification, string)
}

// IDGenerator produces identifiers for new records.
type IDGenerator interface {
	Generate() string
}

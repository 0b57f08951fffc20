package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-voting-server/models"
)

type AuthService interface {
	// Signup validates and registers a new user and issues a session token
	// for it.
	Signup(ctx context.Context, user models.User) (models.User, models.Token, error)
	// Login checks the credentials and issues a session token.
	Login(ctx context.Context, credentials models.LoginRequest) (models.Token, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type UserService interface {
	// Profile returns nil without an error when userID no longer exists.
	Profile(ctx context.Context, userID string) (*models.User, error)
	ChangePassword(ctx context.Context, userID string, req models.PasswordChangeRequest) error
	// CheckAdmin returns nil only if userID belongs to the administrator.
	CheckAdmin(ctx context.Context, userID string) error
}

type CandidateService interface {
	CreateCandidate(ctx context.Context, candidate models.Candidate) (models.Candidate, error)
	UpdateCandidate(ctx context.Context, update models.CandidateUpdate) (models.Candidate, error)
	DeleteCandidate(ctx context.Context, candidateID string) (models.Candidate, error)
	ListCandidates(ctx context.Context) ([]models.CandidateSummary, error)

	// Vote casts userID's single ballot for candidateID.
	Vote(ctx context.Context, candidateID, userID string) error
	// VoteCounts returns the tally per party, highest first.
	VoteCounts(ctx context.Context) ([]models.VoteCount, error)
}

// CandidateServiceWrapper defines middleware composition for
// CandidateService. Implementations wrap an existing CandidateService to add
// behavior such as validation.
type CandidateServiceWrapper interface {
	Wrap(CandidateService) CandidateService // returns a decorated CandidateService applying additional behavior
}

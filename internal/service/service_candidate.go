package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/internal/store"
	"github.com/MKhiriev/go-voting-server/models"
)

// candidateService manages candidates and ballots. Input validation is
// applied by the wrapping CandidateValidationService.
type candidateService struct {
	candidateRepository store.CandidateRepository
	userRepository      store.UserRepository
	logger              *logger.Logger
}

func NewCandidateService(candidateRepository store.CandidateRepository, userRepository store.UserRepository, logger *logger.Logger) CandidateService {
	return &candidateService{
		candidateRepository: candidateRepository,
		userRepository:      userRepository,
		logger:              logger,
	}
}

func (c *candidateService) CreateCandidate(ctx context.Context, candidate models.Candidate) (models.Candidate, error) {
	created, err := c.candidateRepository.CreateCandidate(ctx, candidate)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*candidateService.CreateCandidate").Msg("candidate creation failed")
		return models.Candidate{}, fmt.Errorf("candidate creation failed: %w", err)
	}

	return created, nil
}

func (c *candidateService) UpdateCandidate(ctx context.Context, update models.CandidateUpdate) (models.Candidate, error) {
	updated, err := c.candidateRepository.UpdateCandidate(ctx, update)
	if err != nil {
		return models.Candidate{}, c.candidateError(ctx, err, "*candidateService.UpdateCandidate")
	}

	return updated, nil
}

func (c *candidateService) DeleteCandidate(ctx context.Context, candidateID string) (models.Candidate, error) {
	deleted, err := c.candidateRepository.DeleteCandidate(ctx, candidateID)
	if err != nil {
		return models.Candidate{}, c.candidateError(ctx, err, "*candidateService.DeleteCandidate")
	}

	return deleted, nil
}

func (c *candidateService) ListCandidates(ctx context.Context) ([]models.CandidateSummary, error) {
	candidates, err := c.candidateRepository.ListCandidates(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*candidateService.ListCandidates").Msg("listing candidates failed")
		return nil, fmt.Errorf("listing candidates failed: %w", err)
	}

	summaries := make([]models.CandidateSummary, 0, len(candidates))
	for _, candidate := range candidates {
		summaries = append(summaries, models.CandidateSummary{
			ID:    candidate.ID,
			Name:  candidate.Name,
			Party: candidate.Party,
		})
	}

	return summaries, nil
}

// Vote checks, in order: the candidate exists, the user exists, the user is
// not the admin, the user has not voted yet. The ballot itself is recorded
// atomically by the repository, which rejects a second vote even when two
// requests pass these checks concurrently.
func (c *candidateService) Vote(ctx context.Context, candidateID, userID string) error {
	log := logger.FromContext(ctx)

	if _, err := c.candidateRepository.FindCandidateByID(ctx, candidateID); err != nil {
		return c.candidateError(ctx, err, "*candidateService.Vote")
	}

	user, err := c.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*candidateService.Vote").Str("user_id", userID).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if user.Role == models.RoleAdmin {
		return ErrAdminCannotVote
	}
	if user.IsVoted {
		return ErrAlreadyVoted
	}

	err = c.candidateRepository.RecordVote(ctx, candidateID, userID)
	switch {
	case errors.Is(err, store.ErrAlreadyVoted):
		return ErrAlreadyVoted
	case err != nil:
		return c.candidateError(ctx, err, "*candidateService.Vote")
	}
	log.Info().Str("candidate_id", candidateID).Str("user_id", userID).Msg("vote recorded")

	return nil
}

func (c *candidateService) VoteCounts(ctx context.Context) ([]models.VoteCount, error) {
	counts, err := c.candidateRepository.CountVotes(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*candidateService.VoteCounts").Msg("counting votes failed")
		return nil, fmt.Errorf("counting votes failed: %w", err)
	}

	return counts, nil
}

func (c *candidateService) candidateError(ctx context.Context, err error, fn string) error {
	if errors.Is(err, store.ErrCandidateNotFound) {
		return ErrCandidateNotFound
	}

	logger.FromContext(ctx).Err(err).Str("func", fn).Msg("candidate operation failed")
	return fmt.Errorf("candidate operation failed: %w", err)
}

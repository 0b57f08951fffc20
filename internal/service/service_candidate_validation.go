package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-voting-server/internal/validators"
	"github.com/MKhiriev/go-voting-server/models"
)

type CandidateValidationService struct {
	inner     CandidateService
	validator validators.Validator
}

func NewCandidateValidationService() CandidateServiceWrapper {
	return &CandidateValidationService{
		validator: validators.NewVotingValidator(),
	}
}

func (v *CandidateValidationService) CreateCandidate(ctx context.Context, candidate models.Candidate) (models.Candidate, error) {
	// a candidate needs:
	//  - Name
	//  - Party
	//  - (optional) non-negative Age
	if err := v.validator.Validate(ctx, candidate); err != nil {
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateCandidate(ctx, candidate)
}

func (v *CandidateValidationService) UpdateCandidate(ctx context.Context, update models.CandidateUpdate) (models.Candidate, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateCandidate(ctx, update)
}

func (v *CandidateValidationService) DeleteCandidate(ctx context.Context, candidateID string) (models.Candidate, error) {
	if err := v.validateID(ctx, candidateID); err != nil {
		return models.Candidate{}, err
	}

	return v.inner.DeleteCandidate(ctx, candidateID)
}

func (v *CandidateValidationService) ListCandidates(ctx context.Context) ([]models.CandidateSummary, error) {
	return v.inner.ListCandidates(ctx)
}

func (v *CandidateValidationService) Vote(ctx context.Context, candidateID, userID string) error {
	if err := v.validateID(ctx, candidateID); err != nil {
		return err
	}

	return v.inner.Vote(ctx, candidateID, userID)
}

func (v *CandidateValidationService) VoteCounts(ctx context.Context) ([]models.VoteCount, error) {
	return v.inner.VoteCounts(ctx)
}

func (v *CandidateValidationService) validateID(ctx context.Context, candidateID string) error {
	if err := v.validator.Validate(ctx, models.Candidate{ID: candidateID}, validators.FieldCandidateID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return nil
}

func (v *CandidateValidationService) Wrap(wrapped CandidateService) CandidateService {
	v.inner = wrapped
	return v
}

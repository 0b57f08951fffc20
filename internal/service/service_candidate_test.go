package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/internal/mock"
	"github.com/MKhiriev/go-voting-server/internal/store"
	"github.com/MKhiriev/go-voting-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestCandidateSvc returns the bare candidateService, bypassing the
// validation wrapper.
func newTestCandidateSvc(t *testing.T) (CandidateService, *mock.MockCandidateRepository, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	candidates := mock.NewMockCandidateRepository(ctrl)
	users := mock.NewMockUserRepository(ctrl)
	return NewCandidateService(candidates, users, logger.Nop()), candidates, users
}

func TestCandidateService_CreateCandidate(t *testing.T) {
	svc, candidates, _ := newTestCandidateSvc(t)
	ctx := context.Background()
	in := models.Candidate{Name: "Asha", Party: "Green", Age: 45}

	candidates.EXPECT().CreateCandidate(ctx, in).Return(models.Candidate{ID: "cand-1", Name: "Asha", Party: "Green", Age: 45}, nil)
	candidates.EXPECT().CreateCandidate(ctx, in).Return(models.Candidate{}, errDB)

	got, err := svc.CreateCandidate(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "cand-1", got.ID)

	_, err = svc.CreateCandidate(ctx, in)
	require.ErrorIs(t, err, errDB)
}

func TestCandidateService_UpdateAndDelete_NotFound(t *testing.T) {
	svc, candidates, _ := newTestCandidateSvc(t)
	ctx := context.Background()
	name := "New"
	update := models.CandidateUpdate{ID: "missing", Name: &name}

	candidates.EXPECT().UpdateCandidate(ctx, update).Return(models.Candidate{}, store.ErrCandidateNotFound)
	candidates.EXPECT().DeleteCandidate(ctx, "missing").Return(models.Candidate{}, store.ErrCandidateNotFound)

	_, err := svc.UpdateCandidate(ctx, update)
	require.ErrorIs(t, err, ErrCandidateNotFound)

	_, err = svc.DeleteCandidate(ctx, "missing")
	require.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestCandidateService_ListCandidates_Summaries(t *testing.T) {
	svc, candidates, _ := newTestCandidateSvc(t)

	candidates.EXPECT().ListCandidates(gomock.Any()).Return([]models.Candidate{
		{ID: "c1", Name: "Asha", Party: "Green", Age: 45, VoteCount: 3},
		{ID: "c2", Name: "Vikram", Party: "Blue", Age: 50},
	}, nil)

	got, err := svc.ListCandidates(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.CandidateSummary{
		{ID: "c1", Name: "Asha", Party: "Green"},
		{ID: "c2", Name: "Vikram", Party: "Blue"},
	}, got)
}

func TestCandidateService_ListCandidates_EmptyIsNotNil(t *testing.T) {
	svc, candidates, _ := newTestCandidateSvc(t)

	candidates.EXPECT().ListCandidates(gomock.Any()).Return(nil, nil)

	got, err := svc.ListCandidates(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCandidateService_Vote_Success(t *testing.T) {
	svc, candidates, users := newTestCandidateSvc(t)
	ctx := context.Background()

	gomock.InOrder(
		candidates.EXPECT().FindCandidateByID(ctx, "c1").Return(models.Candidate{ID: "c1"}, nil),
		users.EXPECT().FindUserByID(ctx, "voter-1").Return(storedUser("voter-1", models.RoleVoter, "x"), nil),
		candidates.EXPECT().RecordVote(ctx, "c1", "voter-1").Return(nil),
	)

	require.NoError(t, svc.Vote(ctx, "c1", "voter-1"))
}

func TestCandidateService_Vote_Rejections(t *testing.T) {
	votedUser := storedUser("voter-1", models.RoleVoter, "x")
	votedUser.IsVoted = true

	tests := []struct {
		name    string
		setup   func(candidates *mock.MockCandidateRepository, users *mock.MockUserRepository)
		wantErr error
	}{
		{
			name: "unknown candidate is checked first",
			setup: func(candidates *mock.MockCandidateRepository, _ *mock.MockUserRepository) {
				candidates.EXPECT().FindCandidateByID(gomock.Any(), "c1").Return(models.Candidate{}, store.ErrCandidateNotFound)
			},
			wantErr: ErrCandidateNotFound,
		},
		{
			name: "unknown user",
			setup: func(candidates *mock.MockCandidateRepository, users *mock.MockUserRepository) {
				candidates.EXPECT().FindCandidateByID(gomock.Any(), "c1").Return(models.Candidate{ID: "c1"}, nil)
				users.EXPECT().FindUserByID(gomock.Any(), "voter-1").Return(models.User{}, store.ErrUserNotFound)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "admin",
			setup: func(candidates *mock.MockCandidateRepository, users *mock.MockUserRepository) {
				candidates.EXPECT().FindCandidateByID(gomock.Any(), "c1").Return(models.Candidate{ID: "c1"}, nil)
				users.EXPECT().FindUserByID(gomock.Any(), "voter-1").Return(storedUser("voter-1", models.RoleAdmin, "x"), nil)
			},
			wantErr: ErrAdminCannotVote,
		},
		{
			name: "already voted",
			setup: func(candidates *mock.MockCandidateRepository, users *mock.MockUserRepository) {
				candidates.EXPECT().FindCandidateByID(gomock.Any(), "c1").Return(models.Candidate{ID: "c1"}, nil)
				users.EXPECT().FindUserByID(gomock.Any(), "voter-1").Return(votedUser, nil)
			},
			wantErr: ErrAlreadyVoted,
		},
		{
			name: "concurrent second vote",
			setup: func(candidates *mock.MockCandidateRepository, users *mock.MockUserRepository) {
				candidates.EXPECT().FindCandidateByID(gomock.Any(), "c1").Return(models.Candidate{ID: "c1"}, nil)
				users.EXPECT().FindUserByID(gomock.Any(), "voter-1").Return(storedUser("voter-1", models.RoleVoter, "x"), nil)
				candidates.EXPECT().RecordVote(gomock.Any(), "c1", "voter-1").Return(store.ErrAlreadyVoted)
			},
			wantErr: ErrAlreadyVoted,
		},
		{
			name: "candidate deleted meanwhile",
			setup: func(candidates *mock.MockCandidateRepository, users *mock.MockUserRepository) {
				candidates.EXPECT().FindCandidateByID(gomock.Any(), "c1").Return(models.Candidate{ID: "c1"}, nil)
				users.EXPECT().FindUserByID(gomock.Any(), "voter-1").Return(storedUser("voter-1", models.RoleVoter, "x"), nil)
				candidates.EXPECT().RecordVote(gomock.Any(), "c1", "voter-1").Return(store.ErrCandidateNotFound)
			},
			wantErr: ErrCandidateNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, candidates, users := newTestCandidateSvc(t)
			tt.setup(candidates, users)

			err := svc.Vote(context.Background(), "c1", "voter-1")

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCandidateService_VoteCounts(t *testing.T) {
	svc, candidates, _ := newTestCandidateSvc(t)
	want := []models.VoteCount{{Party: "Green", Count: 2}, {Party: "Blue", Count: 1}}

	candidates.EXPECT().CountVotes(gomock.Any()).Return(want, nil)

	got, err := svc.VoteCounts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

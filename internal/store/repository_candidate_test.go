package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCandidateRepo(t *testing.T) (CandidateRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewCandidateRepository(db, fixedIDs("cand-1"), logger.Nop()), mock
}

func candidateRow(c models.Candidate) *sqlmock.Rows {
	return sqlmock.NewRows(candidateColumns).
		AddRow(c.ID, c.Name, c.Party, c.Age, c.VoteCount, c.CreatedAt, c.UpdatedAt)
}

func expectFindCandidate(mock sqlmock.Sqlmock, c models.Candidate) {
	mock.ExpectQuery("SELECT (.+) FROM candidates WHERE id = ").
		WithArgs(c.ID).
		WillReturnRows(candidateRow(c))

	votes := sqlmock.NewRows([]string{"user_id", "voted_at"})
	for _, v := range c.Votes {
		votes.AddRow(v.UserID, v.VotedAt)
	}
	mock.ExpectQuery("SELECT user_id, voted_at FROM votes WHERE candidate_id = ").
		WithArgs(c.ID).
		WillReturnRows(votes)
}

func storedCandidate() models.Candidate {
	now := time.Now().UTC()
	return models.Candidate{
		ID:        "cand-1",
		Name:      "Bob",
		Party:     "Blue",
		Age:       45,
		VoteCount: 1,
		Votes:     []models.Vote{{UserID: "user-1", VotedAt: now}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateCandidate(t *testing.T) {
	repo, mock := newTestCandidateRepo(t)

	mock.ExpectExec("INSERT INTO candidates").
		WithArgs("cand-1", "Bob", "Blue", 45, 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateCandidate(context.Background(), models.Candidate{Name: "Bob", Party: "Blue", Age: 45, VoteCount: 7})
	require.NoError(t, err)

	assert.Equal(t, "cand-1", created.ID)
	assert.Zero(t, created.VoteCount)
	assert.NotNil(t, created.Votes)
	assert.Empty(t, created.Votes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCandidate_DBError(t *testing.T) {
	repo, mock := newTestCandidateRepo(t)
	mock.ExpectExec("INSERT INTO candidates").WillReturnError(errors.New("disk full"))

	_, err := repo.CreateCandidate(context.Background(), models.Candidate{Name: "Bob"})
	require.ErrorIs(t, err, ErrExecutingStatement)
}

func TestFindCandidateByID(t *testing.T) {
	t.Run("with votes", func(t *testing.T) {
		repo, mock := newTestCandidateRepo(t)
		stored := storedCandidate()
		expectFindCandidate(mock, stored)

		found, err := repo.FindCandidateByID(context.Background(), "cand-1")
		require.NoError(t, err)
		assert.Equal(t, stored, found)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestCandidateRepo(t)
		mock.ExpectQuery("SELECT (.+) FROM candidates").WillReturnError(sql.ErrNoRows)

		_, err := repo.FindCandidateByID(context.Background(), "missing")
		require.ErrorIs(t, err, ErrCandidateNotFound)
	})
}

func TestUpdateCandidate(t *testing.T) {
	party := "Green"

	t.Run("updated", func(t *testing.T) {
		repo, mock := newTestCandidateRepo(t)
		stored := storedCandidate()
		stored.Party = party

		mock.ExpectExec("UPDATE candidates SET party = ").
			WithArgs("Green", sqlmock.AnyArg(), "cand-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		expectFindCandidate(mock, stored)

		updated, err := repo.UpdateCandidate(context.Background(), models.CandidateUpdate{ID: "cand-1", Party: &party})
		require.NoError(t, err)
		assert.Equal(t, "Green", updated.Party)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestCandidateRepo(t)
		mock.ExpectExec("UPDATE candidates").WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.UpdateCandidate(context.Background(), models.CandidateUpdate{ID: "missing", Party: &party})
		require.ErrorIs(t, err, ErrCandidateNotFound)
	})
}

func TestDeleteCandidate(t *testing.T) {
	t.Run("deleted with votes", func(t *testing.T) {
		repo, mock := newTestCandidateRepo(t)
		stored := storedCandidate()

		mock.ExpectBegin()
		expectFindCandidate(mock, stored)
		mock.ExpectExec("DELETE FROM votes WHERE candidate_id = ").
			WithArgs("cand-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM candidates WHERE id = ").
			WithArgs("cand-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		deleted, err := repo.DeleteCandidate(context.Background(), "cand-1")
		require.NoError(t, err)
		assert.Equal(t, stored, deleted)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found rolls back", func(t *testing.T) {
		repo, mock := newTestCandidateRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM candidates").WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.DeleteCandidate(context.Background(), "missing")
		require.ErrorIs(t, err, ErrCandidateNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin fails", func(t *testing.T) {
		repo, mock := newTestCandidateRepo(t)
		mock.ExpectBegin().WillReturnError(errors.New("no conn"))

		_, err := repo.DeleteCandidate(context.Background(), "cand-1")
		require.ErrorIs(t, err, ErrBeginningTransaction)
	})
}

func TestListCandidates(t *testing.T) {
	repo, mock := newTestCandidateRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(candidateColumns).
		AddRow("c1", "Bob", "Blue", 45, 2, now, now).
		AddRow("c2", "Eve", "Red", 50, 0, now, now)
	mock.ExpectQuery("SELECT (.+) FROM candidates ORDER BY created_at ASC").WillReturnRows(rows)

	list, err := repo.ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c1", list[0].ID)
	assert.Equal(t, "Red", list[1].Party)
}

func TestListCandidates_Empty(t *testing.T) {
	repo, mock := newTestCandidateRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM candidates").WillReturnRows(sqlmock.NewRows(candidateColumns))

	list, err := repo.ListCandidates(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListCandidates_RowError(t *testing.T) {
	repo, mock := newTestCandidateRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(candidateColumns).
		AddRow("c1", "Bob", "Blue", 45, 2, now, now).
		RowError(0, errors.New("broken row"))
	mock.ExpectQuery("SELECT (.+) FROM candidates").WillReturnRows(rows)

	_, err := repo.ListCandidates(context.Background())
	require.ErrorIs(t, err, ErrScanningRows)
}

func TestCountVotes(t *testing.T) {
	repo, mock := newTestCandidateRepo(t)

	rows := sqlmock.NewRows([]string{"party", "vote_count"}).
		AddRow("Blue", 3).
		AddRow("Red", 1)
	mock.ExpectQuery("SELECT party, vote_count FROM candidates ORDER BY vote_count DESC").WillReturnRows(rows)

	counts, err := repo.CountVotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.VoteCount{{Party: "Blue", Count: 3}, {Party: "Red", Count: 1}}, counts)
}

func TestRecordVote(t *testing.T) {
	const (
		markVoted = "UPDATE users SET is_voted = "
		increment = `UPDATE candidates SET vote_count = vote_count \+ 1`
		insert    = "INSERT INTO votes"
	)

	t.Run("recorded", func(t *testing.T) {
		repo, mock := newTestCandidateRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(markVoted).
			WithArgs(true, sqlmock.AnyArg(), "user-1", false).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(increment).
			WithArgs(sqlmock.AnyArg(), "cand-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insert).
			WithArgs("cand-1", "user-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.RecordVote(context.Background(), "cand-1", "user-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("user already voted", func(t *testing.T) {
		repo, mock := newTestCandidateRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(markVoted).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		require.ErrorIs(t, repo.RecordVote(context.Background(), "cand-1", "user-1"), ErrAlreadyVoted)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("candidate missing rolls back user flag", func(t *testing.T) {
		repo, mock := newTestCandidateRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(markVoted).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(increment).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		require.ErrorIs(t, repo.RecordVote(context.Background(), "missing", "user-1"), ErrCandidateNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate ballot", func(t *testing.T) {
		repo, mock := newTestCandidateRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(markVoted).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(increment).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insert).WillReturnError(pgError(pgerrcode.UniqueViolation, "votes_user_id_unique"))
		mock.ExpectRollback()

		require.ErrorIs(t, repo.RecordVote(context.Background(), "cand-1", "user-1"), ErrAlreadyVoted)
	})

	t.Run("commit fails", func(t *testing.T) {
		repo, mock := newTestCandidateRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(markVoted).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(increment).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(errors.New("serialization"))

		require.ErrorIs(t, repo.RecordVote(context.Background(), "cand-1", "user-1"), ErrCommitingTransaction)
	})
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/models"
)

// querier is the read surface shared by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// candidateRepository is the SQL implementation of [CandidateRepository].
// Ballots live in the votes table; candidates.vote_count is kept in step
// with it inside the same transaction.
type candidateRepository struct {
	*DB
	ids    IDGenerator
	logger *logger.Logger
}

// NewCandidateRepository constructs a [CandidateRepository] backed by db.
func NewCandidateRepository(db *DB, ids IDGenerator, logger *logger.Logger) CandidateRepository {
	logger.Debug().Msg("creating candidate repository")
	return &candidateRepository{
		DB:     db,
		ids:    ids,
		logger: logger,
	}
}

func (c *candidateRepository) CreateCandidate(ctx context.Context, candidate models.Candidate) (models.Candidate, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	candidate.ID = c.ids.Generate()
	candidate.Votes = []models.Vote{}
	candidate.VoteCount = 0
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	query, args, err := c.insertCandidateQuery(candidate)
	if err != nil {
		log.Err(err).Str("func", "candidateRepository.CreateCandidate").Msg("failed to build query")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "candidateRepository.CreateCandidate").Msg("failed to insert candidate")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return candidate, nil
}

func (c *candidateRepository) UpdateCandidate(ctx context.Context, update models.CandidateUpdate) (models.Candidate, error) {
	log := logger.FromContext(ctx).With().Str("candidate_id", update.ID).Logger()

	query, args, err := c.updateCandidateQuery(update, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "candidateRepository.UpdateCandidate").Msg("failed to build query")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := c.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "candidateRepository.UpdateCandidate").Msg("failed to update candidate")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.Candidate{}, ErrCandidateNotFound
	}

	return c.FindCandidateByID(ctx, update.ID)
}

// DeleteCandidate removes the candidate together with the ballots cast for
// it. Users who voted for the candidate keep their is_voted flag.
func (c *candidateRepository) DeleteCandidate(ctx context.Context, candidateID string) (models.Candidate, error) {
	log := logger.FromContext(ctx).With().Str("candidate_id", candidateID).Logger()

	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "candidateRepository.DeleteCandidate").Msg("failed to begin transaction")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	candidate, err := c.findCandidate(ctx, tx, candidateID)
	if err != nil {
		return models.Candidate{}, err
	}

	for _, build := range []func(string) (string, []any, error){c.deleteVotesQuery, c.deleteCandidateQuery} {
		query, args, buildErr := build(candidateID)
		if buildErr != nil {
			log.Err(buildErr).Str("func", "candidateRepository.DeleteCandidate").Msg("failed to build query")
			return models.Candidate{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "candidateRepository.DeleteCandidate").Msg("failed to delete")
			return models.Candidate{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "candidateRepository.DeleteCandidate").Msg("failed to commit transaction")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return candidate, nil
}

// FindCandidateByID returns the candidate with its ballots, or
// [ErrCandidateNotFound].
func (c *candidateRepository) FindCandidateByID(ctx context.Context, candidateID string) (models.Candidate, error) {
	return c.findCandidate(ctx, c.DB.DB, candidateID)
}

func (c *candidateRepository) findCandidate(ctx context.Context, q querier, candidateID string) (models.Candidate, error) {
	log := logger.FromContext(ctx).With().Str("candidate_id", candidateID).Logger()

	query, args, err := c.selectCandidateQuery(candidateID)
	if err != nil {
		log.Err(err).Str("func", "candidateRepository.findCandidate").Msg("failed to build query")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	candidate, err := scanCandidate(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Candidate{}, ErrCandidateNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "candidateRepository.findCandidate").Msg("failed to scan candidate")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	query, args, err = c.selectVotesQuery(candidateID)
	if err != nil {
		log.Err(err).Str("func", "candidateRepository.findCandidate").Msg("failed to build votes query")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "candidateRepository.findCandidate").Msg("failed to query votes")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	candidate.Votes = make([]models.Vote, 0, candidate.VoteCount)
	for rows.Next() {
		var vote models.Vote
		if err = rows.Scan(&vote.UserID, &vote.VotedAt); err != nil {
			log.Err(err).Str("func", "candidateRepository.findCandidate").Msg("failed to scan vote row")
			return models.Candidate{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		candidate.Votes = append(candidate.Votes, vote)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "candidateRepository.findCandidate").Msg("error occurred during rows iteration")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return candidate, nil
}

// ListCandidates returns every candidate in registration order. Ballots are
// not loaded.
func (c *candidateRepository) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	log := logger.FromContext(ctx)

	query, args, err := c.listCandidatesQuery()
	if err != nil {
		log.Err(err).Str("func", "candidateRepository.ListCandidates").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "candidateRepository.ListCandidates").Msg("failed to query candidates")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	candidates := make([]models.Candidate, 0, 16)
	for rows.Next() {
		candidate, scanErr := scanCandidate(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "candidateRepository.ListCandidates").Msg("failed to scan candidate row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		candidates = append(candidates, candidate)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "candidateRepository.ListCandidates").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return candidates, nil
}

func (c *candidateRepository) CountVotes(ctx context.Context) ([]models.VoteCount, error) {
	log := logger.FromContext(ctx)

	query, args, err := c.countVotesQuery()
	if err != nil {
		log.Err(err).Str("func", "candidateRepository.CountVotes").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "candidateRepository.CountVotes").Msg("failed to query vote counts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	counts := make([]models.VoteCount, 0, 16)
	for rows.Next() {
		var count models.VoteCount
		if err = rows.Scan(&count.Party, &count.Count); err != nil {
			log.Err(err).Str("func", "candidateRepository.CountVotes").Msg("failed to scan vote count row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		counts = append(counts, count)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "candidateRepository.CountVotes").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return counts, nil
}

// RecordVote runs three statements in one transaction:
//  1. flip users.is_voted from false to true (zero rows → [ErrAlreadyVoted]);
//  2. increment candidates.vote_count (zero rows → [ErrCandidateNotFound]);
//  3. insert the ballot into votes.
func (c *candidateRepository) RecordVote(ctx context.Context, candidateID, userID string) error {
	log := logger.FromContext(ctx).With().
		Str("candidate_id", candidateID).
		Str("user_id", userID).
		Logger()

	now := time.Now().UTC()

	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "candidateRepository.RecordVote").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	steps := []struct {
		build    func() (string, []any, error)
		noRows   error
		checkRow bool
	}{
		{
			build:    func() (string, []any, error) { return c.markUserVotedQuery(userID, now) },
			noRows:   ErrAlreadyVoted,
			checkRow: true,
		},
		{
			build:    func() (string, []any, error) { return c.incrementVoteCountQuery(candidateID, now) },
			noRows:   ErrCandidateNotFound,
			checkRow: true,
		},
		{
			build: func() (string, []any, error) { return c.insertVoteQuery(candidateID, userID, now) },
		},
	}

	for _, step := range steps {
		query, args, buildErr := step.build()
		if buildErr != nil {
			log.Err(buildErr).Str("func", "candidateRepository.RecordVote").Msg("failed to build query")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		result, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			if conflict := c.conflictError(execErr); conflict != nil {
				return conflict
			}
			log.Err(execErr).Str("func", "candidateRepository.RecordVote").Msg("failed to execute statement")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		if !step.checkRow {
			continue
		}

		affected, rowsErr := result.RowsAffected()
		if rowsErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, rowsErr)
		}
		if affected == 0 {
			return step.noRows
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "candidateRepository.RecordVote").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	log.Info().Str("func", "candidateRepository.RecordVote").Msg("vote recorded")

	return nil
}

func scanCandidate(row rowScanner) (models.Candidate, error) {
	var candidate models.Candidate

	err := row.Scan(
		&candidate.ID,
		&candidate.Name,
		&candidate.Party,
		&candidate.Age,
		&candidate.VoteCount,
		&candidate.CreatedAt,
		&candidate.UpdatedAt,
	)

	return candidate, err
}

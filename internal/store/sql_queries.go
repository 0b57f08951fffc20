package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-voting-server/models"
)

const (
	usersTable      = "users"
	candidatesTable = "candidates"
	votesTable      = "votes"
)

var (
	userColumns = []string{
		"id",
		"name",
		"age",
		"email",
		"mobile",
		"address",
		"aadhar_card_number",
		"password",
		"role",
		"is_voted",
		"created_at",
		"updated_at",
	}

	candidateColumns = []string{
		"id",
		"name",
		"party",
		"age",
		"vote_count",
		"created_at",
		"updated_at",
	}
)

func (db *DB) insertUserQuery(u models.User) (string, []any, error) {
	return db.builder.
		Insert(usersTable).
		Columns(userColumns...).
		Values(
			u.ID,
			u.Name,
			u.Age,
			u.Email,
			u.Mobile,
			u.Address,
			u.AadharCardNumber,
			u.Password,
			string(u.Role),
			u.IsVoted,
			u.CreatedAt,
			u.UpdatedAt,
		).
		ToSql()
}

func (db *DB) selectUserQuery(where sq.Eq) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
}

func (db *DB) adminExistsQuery() (string, []any, error) {
	return db.builder.
		Select("1").
		From(usersTable).
		Where(sq.Eq{"role": string(models.RoleAdmin)}).
		Limit(1).
		ToSql()
}

func (db *DB) updatePasswordQuery(u models.User) (string, []any, error) {
	return db.builder.
		Update(usersTable).
		Set("password", u.Password).
		Set("updated_at", u.UpdatedAt).
		Where(sq.Eq{"id": u.ID}).
		ToSql()
}

// markUserVotedQuery flips is_voted only if it is still false, so a second
// concurrent ballot by the same user affects zero rows.
func (db *DB) markUserVotedQuery(userID string, now time.Time) (string, []any, error) {
	return db.builder.
		Update(usersTable).
		Set("is_voted", true).
		Set("updated_at", now).
		Where(sq.Eq{"id": userID, "is_voted": false}).
		ToSql()
}

func (db *DB) insertCandidateQuery(c models.Candidate) (string, []any, error) {
	return db.builder.
		Insert(candidatesTable).
		Columns(candidateColumns...).
		Values(c.ID, c.Name, c.Party, c.Age, c.VoteCount, c.CreatedAt, c.UpdatedAt).
		ToSql()
}

// updateCandidateQuery sets only the fields present in update.
func (db *DB) updateCandidateQuery(update models.CandidateUpdate, now time.Time) (string, []any, error) {
	q := db.builder.Update(candidatesTable)

	if update.Name != nil {
		q = q.Set("name", *update.Name)
	}
	if update.Party != nil {
		q = q.Set("party", *update.Party)
	}
	if update.Age != nil {
		q = q.Set("age", *update.Age)
	}

	return q.
		Set("updated_at", now).
		Where(sq.Eq{"id": update.ID}).
		ToSql()
}

func (db *DB) deleteCandidateQuery(id string) (string, []any, error) {
	return db.builder.
		Delete(candidatesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (db *DB) selectCandidateQuery(id string) (string, []any, error) {
	return db.builder.
		Select(candidateColumns...).
		From(candidatesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (db *DB) listCandidatesQuery() (string, []any, error) {
	return db.builder.
		Select(candidateColumns...).
		From(candidatesTable).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
}

// countVotesQuery orders the tally by votes, ties broken by registration
// order.
func (db *DB) countVotesQuery() (string, []any, error) {
	return db.builder.
		Select("party", "vote_count").
		From(candidatesTable).
		OrderBy("vote_count DESC", "created_at ASC").
		ToSql()
}

func (db *DB) incrementVoteCountQuery(candidateID string, now time.Time) (string, []any, error) {
	return db.builder.
		Update(candidatesTable).
		Set("vote_count", sq.Expr("vote_count + 1")).
		Set("updated_at", now).
		Where(sq.Eq{"id": candidateID}).
		ToSql()
}

func (db *DB) insertVoteQuery(candidateID, userID string, now time.Time) (string, []any, error) {
	return db.builder.
		Insert(votesTable).
		Columns("candidate_id", "user_id", "voted_at").
		Values(candidateID, userID, now).
		ToSql()
}

func (db *DB) selectVotesQuery(candidateID string) (string, []any, error) {
	return db.builder.
		Select("user_id", "voted_at").
		From(votesTable).
		Where(sq.Eq{"candidate_id": candidateID}).
		OrderBy("voted_at ASC").
		ToSql()
}

func (db *DB) deleteVotesQuery(candidateID string) (string, []any, error) {
	return db.builder.
		Delete(votesTable).
		Where(sq.Eq{"candidate_id": candidateID}).
		ToSql()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/migrations"
	"github.com/MKhiriev/go-voting-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryBuilders() map[string]*DB {
	return map[string]*DB{
		migrations.DialectPostgres: newDB(nil, migrations.DialectPostgres, NewPostgresErrorClassifier(), logger.Nop()),
		migrations.DialectSQLite:   newDB(nil, migrations.DialectSQLite, NewSQLiteErrorClassifier(), logger.Nop()),
	}
}

func Test_insertUserQuery_AllColumns(t *testing.T) {
	now := time.Now().UTC()
	user := models.User{
		ID:               "u1",
		Name:             "Alice",
		Age:              30,
		Address:          "Street 1",
		AadharCardNumber: "123456789012",
		Password:         "hash",
		Role:             models.RoleVoter,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	for dialect, db := range queryBuilders() {
		t.Run(dialect, func(t *testing.T) {
			query, args, err := db.insertUserQuery(user)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(query, "INSERT INTO users ("))
			for _, c := range userColumns {
				assert.Contains(t, query, c)
			}
			require.Len(t, args, len(userColumns))
			assert.Equal(t, "u1", args[0])
			assert.Equal(t, "123456789012", args[6])
			assert.Equal(t, "voter", args[8])
			assert.Equal(t, false, args[9])

			if dialect == migrations.DialectPostgres {
				assert.Contains(t, query, "$12")
				assert.NotContains(t, query, "?")
			} else {
				assert.NotContains(t, query, "$1")
			}
		})
	}
}

func Test_adminExistsQuery(t *testing.T) {
	want := map[string]string{
		migrations.DialectPostgres: "SELECT 1 FROM users WHERE role = $1 LIMIT 1",
		migrations.DialectSQLite:   "SELECT 1 FROM users WHERE role = ? LIMIT 1",
	}

	for dialect, db := range queryBuilders() {
		t.Run(dialect, func(t *testing.T) {
			query, args, err := db.adminExistsQuery()
			require.NoError(t, err)
			assert.Equal(t, want[dialect], query)
			assert.Equal(t, []any{"admin"}, args)
		})
	}
}

func Test_markUserVotedQuery_OnlyUnvotedUsers(t *testing.T) {
	now := time.Now().UTC()
	db := queryBuilders()[migrations.DialectSQLite]

	query, args, err := db.markUserVotedQuery("u1", now)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE users SET is_voted = ?, updated_at = ? WHERE id = ? AND is_voted = ?", query)
	assert.Equal(t, []any{true, now, "u1", false}, args)
}

func Test_incrementVoteCountQuery(t *testing.T) {
	now := time.Now().UTC()
	db := queryBuilders()[migrations.DialectPostgres]

	query, args, err := db.incrementVoteCountQuery("c1", now)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE candidates SET vote_count = vote_count + 1, updated_at = $1 WHERE id = $2", query)
	assert.Equal(t, []any{now, "c1"}, args)
}

func Test_updateCandidateQuery(t *testing.T) {
	now := time.Now().UTC()
	name, party, age := "Bob", "Blue", 45

	tests := []struct {
		name      string
		update    models.CandidateUpdate
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "party only",
			update:    models.CandidateUpdate{ID: "c1", Party: &party},
			wantQuery: "UPDATE candidates SET party = $1, updated_at = $2 WHERE id = $3",
			wantArgs:  []any{"Blue", now, "c1"},
		},
		{
			name:      "all fields",
			update:    models.CandidateUpdate{ID: "c1", Name: &name, Party: &party, Age: &age},
			wantQuery: "UPDATE candidates SET name = $1, party = $2, age = $3, updated_at = $4 WHERE id = $5",
			wantArgs:  []any{"Bob", "Blue", 45, now, "c1"},
		},
		{
			name:      "no fields touches updated_at",
			update:    models.CandidateUpdate{ID: "c1"},
			wantQuery: "UPDATE candidates SET updated_at = $1 WHERE id = $2",
			wantArgs:  []any{now, "c1"},
		},
	}

	db := queryBuilders()[migrations.DialectPostgres]
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := db.updateCandidateQuery(tt.update, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func Test_countVotesQuery_Ordering(t *testing.T) {
	db := queryBuilders()[migrations.DialectPostgres]

	query, args, err := db.countVotesQuery()
	require.NoError(t, err)

	assert.Equal(t, "SELECT party, vote_count FROM candidates ORDER BY vote_count DESC, created_at ASC", query)
	assert.Empty(t, args)
}

func Test_selectUserQuery_ColumnsInScanOrder(t *testing.T) {
	db := queryBuilders()[migrations.DialectPostgres]

	query, args, err := db.selectUserQuery(map[string]any{"id": "u1"})
	require.NoError(t, err)

	assert.Equal(t, "SELECT "+strings.Join(userColumns, ", ")+" FROM users WHERE id = $1", query)
	assert.Equal(t, []any{"u1"}, args)
}

func Test_insertVoteQuery(t *testing.T) {
	now := time.Now().UTC()
	db := queryBuilders()[migrations.DialectSQLite]

	query, args, err := db.insertVoteQuery("c1", "u1", now)
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO votes (candidate_id,user_id,voted_at) VALUES (?,?,?)", query)
	assert.Equal(t, []any{"c1", "u1", now}, args)
}

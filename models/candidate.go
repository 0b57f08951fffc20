// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Candidate is a person standing for election. Candidates are managed by the
// administrator and receive votes from voters.
type Candidate struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Party string `json:"party" bson:"party"`
	Age   int    `json:"age" bson:"age"`

	// Votes lists every ballot cast for the candidate.
	Votes []Vote `json:"votes" bson:"votes"`

	// VoteCount is len(Votes), kept denormalized for tallying.
	VoteCount int `json:"voteCount" bson:"voteCount"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// TableName returns the name of the database table (and MongoDB collection)
// associated with the Candidate model.
func (c Candidate) TableName() string {
	return "candidates"
}

// Vote records a single ballot.
type Vote struct {
	UserID  string    `json:"user" bson:"user"`
	VotedAt time.Time `json:"votedAt" bson:"votedAt"`
}

// CandidateUpdate describes a partial update of a candidate.
// Only non-nil fields are written.
type CandidateUpdate struct {
	// ID is the identifier of the candidate to update. Required.
	ID string `json:"-"`

	Name  *string `json:"name,omitempty"`
	Party *string `json:"party,omitempty"`
	Age   *int    `json:"age,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u CandidateUpdate) IsEmpty() bool {
	return u.Name == nil && u.Party == nil && u.Age == nil
}

// VoteCount is one row of the election tally.
type VoteCount struct {
	Party string `json:"party"`
	Count int    `json:"count"`
}

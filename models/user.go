// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// Role is the access level of a registered user.
type Role string

const (
	// RoleVoter is the default role assigned on signup. Voters may cast
	// exactly one vote.
	RoleVoter Role = "voter"

	// RoleAdmin manages candidates. At most one user may hold this role and
	// admins are not allowed to vote.
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleVoter || r == RoleAdmin
}

// PasswordHasher hashes plaintext passwords and checks plaintext against a
// stored hash. The concrete implementation lives in the utils package
// (bcrypt), keeping the model free of algorithm details.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// User represents a registered voter or the administrator.
//
// Password always holds a bcrypt hash once the record has passed through
// [User.BeforeSave]; it is never exposed via JSON.
type User struct {
	// ID is the application-generated identifier (UUIDv7). It is used as the
	// subject of issued session tokens.
	ID string `json:"id" bson:"_id"`

	Name    string `json:"name" bson:"name"`
	Age     int    `json:"age" bson:"age"`
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
	Mobile  string `json:"mobile,omitempty" bson:"mobile,omitempty"`
	Address string `json:"address" bson:"address"`

	// AadharCardNumber is the unique 12-digit government ID number used as
	// the login key.
	AadharCardNumber string `json:"aadharCardNumber" bson:"aadharCardNumber"`

	// Password is the stored bcrypt hash.
	Password string `json:"-" bson:"password"`

	Role Role `json:"role" bson:"role"`

	// IsVoted is flipped once, when the user casts a vote.
	IsVoted bool `json:"isVoted" bson:"isVoted"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`

	// passwordModified marks Password as plaintext that still has to be
	// hashed by BeforeSave.
	passwordModified bool
}

// TableName returns the name of the database table (and MongoDB collection)
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// SetPassword replaces the password with a plaintext value. The value is
// hashed by the next call to [User.BeforeSave].
func (u *User) SetPassword(password string) {
	u.Password = password
	u.passwordModified = true
}

// PasswordModified reports whether Password currently holds plaintext.
func (u *User) PasswordModified() bool {
	return u.passwordModified
}

// BeforeSave is the persistence hook every repository runs before writing a
// user. It hashes a password set through [User.SetPassword] exactly once;
// an unmodified password is left untouched.
func (u *User) BeforeSave(hasher PasswordHasher) error {
	if !u.passwordModified {
		return nil
	}

	hash, err := hasher.Hash(u.Password)
	if err != nil {
		return fmt.Errorf("error hashing user password: %w", err)
	}

	u.Password = hash
	u.passwordModified = false

	return nil
}

// ComparePassword reports whether password matches the stored hash.
func (u *User) ComparePassword(hasher PasswordHasher, password string) bool {
	if u.passwordModified {
		return false
	}

	return hasher.Compare(u.Password, password) == nil
}

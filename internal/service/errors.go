package service

import "errors"

// Messages of the errors below are returned to API clients verbatim.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrAdminAlreadyExists  = errors.New("Admin user already exists")
	ErrAadharAlreadyExists = errors.New("User with the same Aadhar Card Number already exists")

	// ErrInvalidCredentials covers both an unknown Aadhar Card Number and a
	// wrong password.
	ErrInvalidCredentials     = errors.New("Invalid Aadhar Card Number or Password")
	ErrInvalidCurrentPassword = errors.New("Invalid current password")

	ErrUserNotFound      = errors.New("User not found")
	ErrCandidateNotFound = errors.New("Candidate not found")

	ErrNotAdmin        = errors.New("User does not have admin role")
	ErrAdminCannotVote = errors.New("Admin is not allowed to vote")
	ErrAlreadyVoted    = errors.New("You have already voted")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("Invalid token")
)

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// Messages below are returned to API clients verbatim.
	ErrInvalidAadharCardNumber = errors.New("Aadhar Card Number must be exactly 12 digits")
	ErrEmptyName               = errors.New("name is required")
	ErrEmptyPassword           = errors.New("password is required")
	ErrInvalidRole             = errors.New("role must be either voter or admin")
	ErrInvalidAge              = errors.New("age must not be negative")
	ErrMissingCredentials      = errors.New("Aadhar Card Number and password are required")
	ErrMissingPasswords        = errors.New("Both currentPassword and newPassword are required")
	ErrEmptyParty              = errors.New("party is required")
	ErrEmptyCandidateID        = errors.New("candidate id is required")
	ErrNoFieldsToUpdate        = errors.New("at least one field must be provided for update")
)

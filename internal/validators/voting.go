package validators

import (
	"context"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-voting-server/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldAadharCardNumber targets the 12-digit government ID number.
	FieldAadharCardNumber = "aadhar_card_number"

	// FieldName targets a user or candidate name.
	FieldName = "name"

	// FieldPassword targets a plaintext password awaiting hashing.
	FieldPassword = "password"

	// FieldRole targets the user role. An empty role is accepted and later
	// defaulted to voter.
	FieldRole = "role"

	// FieldAge targets the age of a user or candidate.
	FieldAge = "age"

	FieldParty       = "party"
	FieldCandidateID = "candidate_id"

	// FieldUpdateFields requires a candidate update to carry at least one
	// field.
	FieldUpdateFields = "update_fields"
)

var aadharPattern = regexp.MustCompile(`^\d{12}$`)

// VotingValidator implements [Validator] for the user and candidate models
// and the request bodies of the auth endpoints.
type VotingValidator struct {
}

// NewVotingValidator constructs a new VotingValidator and returns it as the
// Validator interface.
func NewVotingValidator() Validator {
	return &VotingValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted for:
//   - models.User (signup)
//   - models.LoginRequest
//   - models.PasswordChangeRequest
//   - models.Candidate
//   - models.CandidateUpdate
//
// Returns ErrUnsupportedType for anything else. Optional fields restrict
// validation to the named subset.
func (v *VotingValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(value, fields...)
	case *models.User:
		return v.validateUser(*value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(value)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value)

	case models.PasswordChangeRequest:
		return v.validatePasswordChangeRequest(value)
	case *models.PasswordChangeRequest:
		return v.validatePasswordChangeRequest(*value)

	case models.Candidate:
		return v.validateCandidate(value, fields...)
	case *models.Candidate:
		return v.validateCandidate(*value, fields...)

	case models.CandidateUpdate:
		return v.validateCandidateUpdate(value, fields...)
	case *models.CandidateUpdate:
		return v.validateCandidateUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// IsValidAadharCardNumber reports whether number is exactly 12 decimal
// digits.
func IsValidAadharCardNumber(number string) bool {
	return aadharPattern.MatchString(number)
}

// validateUser checks a user about to be registered. Default fields:
// Aadhar Card Number, name, password, role, age.
func (v *VotingValidator) validateUser(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAadharCardNumber, FieldName, FieldPassword, FieldRole, FieldAge}
	}

	for _, f := range fields {
		switch f {
		case FieldAadharCardNumber:
			if !IsValidAadharCardNumber(user.AadharCardNumber) {
				return ErrInvalidAadharCardNumber
			}
		case FieldName:
			if strings.TrimSpace(user.Name) == "" {
				return ErrEmptyName
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrEmptyPassword
			}
		case FieldRole:
			if user.Role != "" && !user.Role.IsValid() {
				return ErrInvalidRole
			}
		case FieldAge:
			if user.Age < 0 {
				return ErrInvalidAge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VotingValidator) validateLoginRequest(req models.LoginRequest) error {
	if req.AadharCardNumber == "" || req.Password == "" {
		return ErrMissingCredentials
	}

	return nil
}

func (v *VotingValidator) validatePasswordChangeRequest(req models.PasswordChangeRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return ErrMissingPasswords
	}

	return nil
}

// validateCandidate checks a candidate about to be created. Default fields:
// name, party, age.
func (v *VotingValidator) validateCandidate(candidate models.Candidate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldParty, FieldAge}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(candidate.Name) == "" {
				return ErrEmptyName
			}
		case FieldParty:
			if strings.TrimSpace(candidate.Party) == "" {
				return ErrEmptyParty
			}
		case FieldAge:
			if candidate.Age < 0 {
				return ErrInvalidAge
			}
		case FieldCandidateID:
			if candidate.ID == "" {
				return ErrEmptyCandidateID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCandidateUpdate checks a partial update. Fields that are present
// must be valid; absent fields are skipped. Default fields: candidate id,
// update fields, name, party, age.
func (v *VotingValidator) validateCandidateUpdate(update models.CandidateUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCandidateID, FieldUpdateFields, FieldName, FieldParty, FieldAge}
	}

	for _, f := range fields {
		switch f {
		case FieldCandidateID:
			if update.ID == "" {
				return ErrEmptyCandidateID
			}
		case FieldUpdateFields:
			if update.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
				return ErrEmptyName
			}
		case FieldParty:
			if update.Party != nil && strings.TrimSpace(*update.Party) == "" {
				return ErrEmptyParty
			}
		case FieldAge:
			if update.Age != nil && *update.Age < 0 {
				return ErrInvalidAge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

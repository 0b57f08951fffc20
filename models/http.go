package models

// SignupRequest is the body accepted by the registration endpoint.
type SignupRequest struct {
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Email            string `json:"email"`
	Mobile           string `json:"mobile"`
	Address          string `json:"address"`
	AadharCardNumber string `json:"aadharCardNumber"`
	Password         string `json:"password"`
	Role             Role   `json:"role"`
}

// ToUser converts the request into a [User] whose password is marked for
// hashing on save.
func (r SignupRequest) ToUser() User {
	user := User{
		Name:             r.Name,
		Age:              r.Age,
		Email:            r.Email,
		Mobile:           r.Mobile,
		Address:          r.Address,
		AadharCardNumber: r.AadharCardNumber,
		Role:             r.Role,
	}
	if r.Password != "" {
		user.SetPassword(r.Password)
	}

	return user
}

// LoginRequest carries the credentials accepted by the login endpoint.
type LoginRequest struct {
	AadharCardNumber string `json:"aadharCardNumber"`
	Password         string `json:"password"`
}

// PasswordChangeRequest is the body of the password-change endpoint.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CandidateRequest is the body used to create a candidate.
type CandidateRequest struct {
	Name  string `json:"name"`
	Party string `json:"party"`
	Age   int    `json:"age"`
}

// ToCandidate converts the request into a new [Candidate].
func (r CandidateRequest) ToCandidate() Candidate {
	return Candidate{
		Name:  r.Name,
		Party: r.Party,
		Age:   r.Age,
	}
}

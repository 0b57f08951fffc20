package models

// SignupResponse is returned after a successful registration.
type SignupResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// TokenResponse is returned after a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// ProfileResponse wraps the authenticated user's stored record. User is null
// when the record is gone.
type ProfileResponse struct {
	User *User `json:"user"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every 4xx/5xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CandidateResponse wraps a single candidate.
type CandidateResponse struct {
	Candidate Candidate `json:"candidate"`
}

// CandidateSummary is the public listing view of a candidate.
type CandidateSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party"`
}

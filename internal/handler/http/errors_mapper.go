package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/internal/service"
	"github.com/MKhiriev/go-voting-server/internal/utils"
	"github.com/MKhiriev/go-voting-server/internal/validators"
	"github.com/MKhiriev/go-voting-server/models"
)

type errorStatus struct {
	target error
	status int
}

// errorStatusTable is matched top to bottom with errors.Is. Validation
// causes come before ErrInvalidDataProvided so that the client sees the
// specific message.
var errorStatusTable = []errorStatus{
	{validators.ErrInvalidAadharCardNumber, http.StatusBadRequest},
	{validators.ErrEmptyName, http.StatusBadRequest},
	{validators.ErrEmptyPassword, http.StatusBadRequest},
	{validators.ErrInvalidRole, http.StatusBadRequest},
	{validators.ErrInvalidAge, http.StatusBadRequest},
	{validators.ErrMissingCredentials, http.StatusBadRequest},
	{validators.ErrMissingPasswords, http.StatusBadRequest},
	{validators.ErrEmptyParty, http.StatusBadRequest},
	{validators.ErrEmptyCandidateID, http.StatusBadRequest},
	{validators.ErrNoFieldsToUpdate, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{ErrInvalidJSON, http.StatusBadRequest},

	{service.ErrAdminAlreadyExists, http.StatusBadRequest},
	{service.ErrAadharAlreadyExists, http.StatusBadRequest},
	{service.ErrAlreadyVoted, http.StatusBadRequest},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrInvalidCurrentPassword, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{ErrTokenNotFound, http.StatusUnauthorized},
	{ErrInvalidToken, http.StatusUnauthorized},

	{service.ErrNotAdmin, http.StatusForbidden},
	{service.ErrAdminCannotVote, http.StatusForbidden},

	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrCandidateNotFound, http.StatusNotFound},
}

// statusFromError returns the HTTP status for err and the sentinel whose
// message is safe to show to the client. Unknown errors yield 500 with a
// generic message.
func statusFromError(err error) (int, error) {
	for _, e := range errorStatusTable {
		if errors.Is(err, e.target) {
			return e.status, e.target
		}
	}
	return http.StatusInternalServerError, errInternal
}

// writeError logs err with the request's logger and writes the mapped
// {"error": "..."} body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, public := statusFromError(err)

	log := logger.FromRequest(r)
	if status == http.StatusInternalServerError {
		log.Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: public.Error()}, status)
}

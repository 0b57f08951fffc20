package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/internal/utils"
	"github.com/MKhiriev/go-voting-server/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, ErrInvalidJSON)
		return
	}

	user, token, err := h.services.AuthService.Signup(ctx, req.ToUser())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SignupResponse{User: user, Token: token.String()}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, ErrInvalidJSON)
		return
	}

	token, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.FromRequest(r).Debug().Str("user_id", token.UserID).Msg("user logged in")

	utils.WriteJSON(w, models.TokenResponse{Token: token.String()}, http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, ErrInvalidToken)
		return
	}

	user, err := h.services.UserService.Profile(ctx, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ProfileResponse{User: user}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, ErrInvalidToken)
		return
	}

	var req models.PasswordChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, ErrInvalidJSON)
		return
	}

	if err := h.services.UserService.ChangePassword(ctx, userID, req); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Password updated"}, http.StatusOK)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-voting-server/internal/utils"
	"github.com/MKhiriev/go-voting-server/models"
	"github.com/go-chi/chi/v5"
)

const candidateIDParam = "candidateID"

func (h *Handler) createCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.CandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, ErrInvalidJSON)
		return
	}

	candidate, err := h.services.CandidateService.CreateCandidate(r.Context(), req.ToCandidate())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CandidateResponse{Candidate: candidate}, http.StatusOK)
}

func (h *Handler) updateCandidate(w http.ResponseWriter, r *http.Request) {
	var update models.CandidateUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, r, ErrInvalidJSON)
		return
	}
	update.ID = chi.URLParam(r, candidateIDParam)

	candidate, err := h.services.CandidateService.UpdateCandidate(r.Context(), update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CandidateResponse{Candidate: candidate}, http.StatusOK)
}

func (h *Handler) deleteCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.services.CandidateService.DeleteCandidate(r.Context(), chi.URLParam(r, candidateIDParam))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CandidateResponse{Candidate: candidate}, http.StatusOK)
}

func (h *Handler) listCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.services.CandidateService.ListCandidates(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, candidates, http.StatusOK)
}

func (h *Handler) vote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, ErrInvalidToken)
		return
	}

	if err := h.services.CandidateService.Vote(ctx, chi.URLParam(r, candidateIDParam), userID); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Vote recorded successfully"}, http.StatusOK)
}

func (h *Handler) voteCount(w http.ResponseWriter, r *http.Request) {
	counts, err := h.services.CandidateService.VoteCounts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if counts == nil {
		counts = []models.VoteCount{}
	}

	utils.WriteJSON(w, counts, http.StatusOK)
}

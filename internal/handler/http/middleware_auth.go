package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It reads the "Authorization: Bearer <token>" header, validates the token
// via [service.AuthService.ParseToken] and stores the token subject (the user
// ID) in the request context under [utils.UserIDCtxKey].
//
// Requests are rejected with 401:
//   - "Token Not Found" if the header is absent;
//   - "Invalid token" if the header is malformed or the token is expired,
//     signed with another key, or issued by someone else.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrTokenNotFound)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, ErrInvalidToken)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		l := logger.FromRequest(r).With().Str("user_id", token.UserID).Logger()
		ctx = l.WithContext(ctx)
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly lets the request through only if the authenticated user holds
// the admin role. The role is read from storage on every request. Must be
// mounted after auth.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrInvalidToken)
			return
		}

		if err := h.services.UserService.CheckAdmin(r.Context(), userID); err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

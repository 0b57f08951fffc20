package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-voting-server/internal/utils"
)

func contextWithUser(r *http.Request, userID string) context.Context {
	return context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
}

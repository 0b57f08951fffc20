package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit_Health(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestInit_ProtectedRoutesRequireToken(t *testing.T) {
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/user/profile"},
		{http.MethodPut, "/user/profile/password"},
		{http.MethodPost, "/candidate"},
		{http.MethodPut, "/candidate/c1"},
		{http.MethodDelete, "/candidate/c1"},
		{http.MethodPost, "/candidate/vote/c1"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			env := newTestEnv(t)

			rr := env.do(t, rt.method, rt.path, nil, "")

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "Token Not Found", decodeError(t, rr))
		})
	}
}

func TestInit_UnknownRouteAndMethod(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Not Found", decodeError(t, rr))

	rr = env.do(t, http.MethodDelete, "/user/login", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "Method Not Allowed", decodeError(t, rr))
}

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Domenick1991/fanzone/internal/domain"
)

type stubAuthenticator map[string]domain.Principal

func (s stubAuthenticator) Authenticate(token string) (domain.Principal, error) {
	p, ok := s[token]
	if !ok {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return p, nil
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := NewAuth(stubAuthenticator{
		"user-token":  {UserID: 7, Role: domain.RoleUser},
		"admin-token": {UserID: 1, Role: domain.RoleAdmin},
	})
	r := gin.New()
	r.GET("/me", auth.Required(), func(c *gin.Context) {
		p, _ := principal(c)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID})
	})
	r.GET("/admin", auth.Required(), auth.Admin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuth(t *testing.T) {
	r := newAuthRouter()

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic user-token", http.StatusUnauthorized},
		{"unknown token", "/me", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "/me", "Bearer user-token", http.StatusOK},
		{"user on admin route", "/admin", "Bearer user-token", http.StatusForbidden},
		{"admin on admin route", "/admin", "Bearer admin-token", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.NewValidationError("x")))
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrNotFound))
	assert.Equal(t, http.StatusConflict, statusFor(domain.ErrConflict))
	assert.Equal(t, http.StatusForbidden, statusFor(domain.ErrForbidden))
	assert.Equal(t, http.StatusBadGateway, statusFor(domain.ErrExternalService))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}

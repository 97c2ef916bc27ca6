package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"siso/internal/domain/entity"
	"siso/internal/infrastructure/ratelimit"
	"siso/pkg/errors"
)

type stubVerifier map[string]string

func (s stubVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	if uid, ok := s[token]; ok {
		return uid, nil
	}
	return "", stderrors.New("token expired")
}

func okHandler(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	return c.String(http.StatusOK, uid)
}

func TestAuthenticate(t *testing.T) {
	e := echo.New()
	m := NewAuthMiddleware(stubVerifier{"good": "u1"})
	h := m.Authenticate(okHandler)

	cases := []struct {
		header string
		status int
		body   string
	}{
		{"", http.StatusUnauthorized, "Authorization header is required"},
		{"Token good", http.StatusUnauthorized, "Invalid authorization format"},
		{"Bearer ", http.StatusUnauthorized, "Invalid authorization format"},
		{"Bearer bad", http.StatusUnauthorized, "Invalid or expired token"},
		{"Bearer good", http.StatusOK, "u1"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()

		assert.NoError(t, h(e.NewContext(req, rec)))
		assert.Equal(t, tc.status, rec.Code, tc.header)
		assert.Contains(t, rec.Body.String(), tc.body)
	}
}

type stubMusicians map[string]*entity.Musician

func (s stubMusicians) GetByID(ctx context.Context, id string) (*entity.Musician, error) {
	if m, ok := s[id]; ok {
		return m, nil
	}
	return nil, errors.NotFound("Musician", nil)
}

func (s stubMusicians) Merge(ctx context.Context, m *entity.Musician) error { return nil }

func TestAdminOnly(t *testing.T) {
	e := echo.New()
	m := NewAdminMiddleware(stubMusicians{
		"boss": {ID: "boss", Role: "admin"},
		"ana":  {ID: "ana"},
	})
	h := m.AdminOnly(okHandler)

	for uid, want := range map[string]int{"boss": http.StatusOK, "ana": http.StatusForbidden, "ghost": http.StatusForbidden, "": http.StatusUnauthorized} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
		if uid != "" {
			c.Set("uid", uid)
		}
		assert.NoError(t, h(c))
		assert.Equal(t, want, rec.Code, uid)
	}
}

func TestRateLimitKeysByUIDThenIP(t *testing.T) {
	e := echo.New()
	limiter := ratelimit.NewRateLimiterWithPolicies(map[string]ratelimit.Policy{
		"t": {Every: time.Hour, Burst: 1},
	})
	h := RateLimit(limiter, "t")(okHandler)

	call := func(uid, ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if uid != "" {
			c.Set("uid", uid)
		}
		assert.NoError(t, h(c))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("u1", "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("u1", "10.0.0.2"))
	assert.Equal(t, http.StatusOK, call("", "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("", "10.0.0.1"))
}

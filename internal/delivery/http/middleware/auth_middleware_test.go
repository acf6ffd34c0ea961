package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-management-system/config"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type liveTokens struct {
	ids map[string]bool
	err error
}

func (s *liveTokens) Store(_ context.Context, _ jwt.TokenType, _ uuid.UUID, tokenID string, _ time.Duration) error {
	s.ids[tokenID] = true
	return nil
}

func (s *liveTokens) Exists(_ context.Context, _ jwt.TokenType, _ uuid.UUID, tokenID string) (bool, error) {
	return s.ids[tokenID], s.err
}

func (s *liveTokens) Revoke(_ context.Context, _ jwt.TokenType, _ uuid.UUID, tokenID string) error {
	delete(s.ids, tokenID)
	return nil
}

func (s *liveTokens) RevokeAll(_ context.Context, _ uuid.UUID) error {
	s.ids = map[string]bool{}
	return nil
}

func newJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "middleware-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func TestAuthenticate(t *testing.T) {
	jwtService := newJWTService()
	tokens := &liveTokens{ids: map[string]bool{}}
	m := NewAuthMiddleware(jwtService, tokens)

	userID := uuid.New()
	sub := jwt.Subject{UserID: userID, Email: "house@ppth.org", Role: string(entity.RoleDoctor)}
	accessToken, accessID, err := jwtService.GenerateAccessToken(sub)
	require.NoError(t, err)
	refreshToken, _, err := jwtService.GenerateRefreshToken(sub)
	require.NoError(t, err)
	tokens.ids[accessID] = true

	var seen struct {
		id    uuid.UUID
		role  entity.Role
		token string
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.id, _ = GetUserIDFromContext(r.Context())
		seen.role, _ = GetRoleFromContext(r.Context())
		seen.token, _ = GetTokenIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	call := func(header string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		m.Authenticate(next).ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("Bearer "+accessToken))
	assert.Equal(t, userID, seen.id)
	assert.Equal(t, entity.RoleDoctor, seen.role)
	assert.Equal(t, accessID, seen.token)

	assert.Equal(t, http.StatusUnauthorized, call(""))
	assert.Equal(t, http.StatusUnauthorized, call("Token "+accessToken))
	assert.Equal(t, http.StatusUnauthorized, call("Bearer garbage"))
	assert.Equal(t, http.StatusUnauthorized, call("Bearer "+refreshToken))

	delete(tokens.ids, accessID)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer "+accessToken))

	tokens.err = errors.New("redis down")
	assert.Equal(t, http.StatusInternalServerError, call("Bearer "+accessToken))
}

package auth

import (
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestTokens_RoundTrip(t *testing.T) {
	req := require.New(t)
	tokens := NewTokens("test_secret")
	userID := uuid.NewString()

	// When generating and validating a token
	signed, err := tokens.GenerateToken(userID, "Ana", []string{"client"}, time.Hour)
	req.NoError(err)

	claims, err := tokens.ValidateToken(signed)
	req.NoError(err)

	// Then the claims survive the round trip
	req.Equal(userID, claims.UserID)
	req.Equal("Ana", claims.DisplayName)
	req.Equal([]string{"client"}, claims.Roles)
}

func TestTokens_Rejects_Wrong_Secret(t *testing.T) {
	req := require.New(t)
	signed, err := NewTokens("right_secret").GenerateToken(uuid.NewString(), "Ana", nil, time.Hour)
	req.NoError(err)

	_, err = NewTokens("wrong_secret").ValidateToken(signed)
	req.Error(err)
}

func TestSessionAuthority_Identity_Extraction(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	tokens := NewTokens("test_secret")
	authority := NewSessionAuthority(tokens, log)

	userID := uuid.NewString()
	signed, err := tokens.GenerateToken(userID, "Root", []string{"admin"}, time.Hour)
	req.NoError(err)

	// Bearer header carries the identity
	r := httptest.NewRequest("GET", "/ws/monitoring", nil)
	r.Header.Set("Authorization", "Bearer "+signed)
	identity := authority.IdentityFromRequest(r)
	req.Equal(userID, identity.UserID)
	req.True(identity.HasRole("admin"))

	// Query parameter works for browser websocket clients
	r = httptest.NewRequest("GET", "/ws/monitoring?access_token="+signed, nil)
	identity = authority.IdentityFromRequest(r)
	req.Equal(userID, identity.UserID)

	// No token means anonymous, not an error
	r = httptest.NewRequest("GET", "/ws/chat", nil)
	req.True(authority.IdentityFromRequest(r).Anonymous())

	// Garbage token degrades to anonymous as well
	r = httptest.NewRequest("GET", "/ws/chat?access_token=garbage", nil)
	req.True(authority.IdentityFromRequest(r).Anonymous())
}

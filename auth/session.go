package auth

import (
	"log/slog"
	"market-hub/domain"
	"net/http"
	"strings"
)

// SessionAuthority resolves the identity claims of an inbound connection.
// Authentication itself is an upstream concern: an absent or invalid
// token yields an anonymous identity, never an error. Whether a given
// channel accepts anonymous connections is the channel's join policy.
type SessionAuthority struct {
	tokens *Tokens
	log    *slog.Logger
}

func NewSessionAuthority(tokens *Tokens, log *slog.Logger) *SessionAuthority {
	return &SessionAuthority{tokens: tokens, log: log}
}

// IdentityFromRequest extracts identity claims from the websocket
// handshake. Browsers cannot set headers on websocket upgrades, so the
// token is accepted either as "Authorization: Bearer <jwt>" or as an
// "access_token" query parameter.
func (a *SessionAuthority) IdentityFromRequest(r *http.Request) domain.Identity {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" {
		raw = r.URL.Query().Get("access_token")
	}
	if raw == "" {
		return domain.Identity{}
	}

	claims, err := a.tokens.ValidateToken(raw)
	if err != nil {
		a.log.Debug("rejecting handshake token, continuing anonymous", "error", err)
		return domain.Identity{}
	}

	return domain.Identity{
		UserID:      claims.UserID,
		DisplayName: claims.DisplayName,
		Roles:       claims.Roles,
	}
}

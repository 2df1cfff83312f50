package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	UserID      string   `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Roles       []string `json:"roles"`
	jwt.RegisteredClaims
}

// Tokens signs and validates the JWTs carried on the websocket handshake.
// The secret comes from configuration; token issuance itself belongs to
// the upstream authentication service, GenerateToken exists for tests and
// the load-test client.
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// GenerateToken creates a signed JWT for a specific user.
func (t *Tokens) GenerateToken(userID, displayName string, roles []string,
	duration time.Duration) (string, error) {
	expirationTime := time.Now().Add(duration)

	claims := &CustomClaims{
		UserID:      userID,
		DisplayName: displayName,
		Roles:       roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "market-hub",
		},
	}

	// Create the token using the HS256 algorithm (HMAC with SHA256).
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(t.secret)
}

// ValidateToken parses and validates the signature and expiration of a JWT string.
func (t *Tokens) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

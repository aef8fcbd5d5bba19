package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// DefaultTokenTTL is the nominal session token lifetime.
const DefaultTokenTTL = 30 * 24 * time.Hour

// ErrTokenInvalid covers every reason a token is rejected: malformed,
// expired, wrong algorithm or bad signature.
var ErrTokenInvalid = errors.New("invalid token")

// TokenClaims is the payload carried by a session token.
type TokenClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.StandardClaims
}

// TokenIssuer signs and validates HS256 session tokens with a shared secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns an issuer for the given secret. A non-positive ttl
// falls back to DefaultTokenTTL.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed token for the account id and role.
func (t *TokenIssuer) Issue(id, role string) (string, error) {
	now := t.now()
	claims := TokenClaims{
		ID:   id,
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   id,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate parses the token and returns its claims, or ErrTokenInvalid.
func (t *TokenIssuer) Validate(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.ID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

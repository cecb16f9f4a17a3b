package auth

import (
	"errors"
	"fmt"
	"time"

	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Claims are the JWT claims of an access token. The subject is the
// normalized username, which is also the tenant id.
type Claims struct {
	jwt.RegisteredClaims
}

// TenantID implements tenant.AuthContext.
func (c *Claims) TenantID() (string, bool) {
	if c == nil || c.Subject == "" {
		return "", false
	}
	return c.Subject, true
}

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer. The secret must not be empty.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue creates a signed token for username.
func (i *Issuer) Issue(username string) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, kerrors.Storage("auth.Issue", err)
	}
	return signed, exp, nil
}

// Verify parses a token and checks its signature and expiry.
func (i *Issuer) Verify(token string) (*Claims, error) {
	const op = "auth.Verify"

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Method.Alg())
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, &kerrors.Error{Code: kerrors.EUnauthorized, Op: op, Msg: "invalid or expired token", Err: err}
	}
	if claims.Subject == "" {
		return nil, kerrors.Unauthorized(op, "token has no subject")
	}
	return claims, nil
}

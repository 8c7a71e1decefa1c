package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload: the standard registered claims
// (sub, iat, exp) plus the user's email and roles at issue time.
type Claims struct {
	jwt.RegisteredClaims
	Email string        `json:"email"`
	Roles []models.Role `json:"roles"`
}

// TokenErrorKind classifies why a token was rejected.
type TokenErrorKind string

const (
	TokenMalformed TokenErrorKind = "malformed"
	TokenSignature TokenErrorKind = "signature"
	TokenExpired   TokenErrorKind = "expired"
)

// TokenError is returned by TokenIssuer.Verify. It matches common.ErrInvalidToken
// for every kind and common.ErrTokenExpired for TokenExpired.
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid token: %s", e.Kind)
	}
	return fmt.Sprintf("invalid token: %s: %v", e.Kind, e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }

func (e *TokenError) Is(target error) bool {
	switch target {
	case common.ErrInvalidToken:
		return true
	case common.ErrTokenExpired:
		return e.Kind == TokenExpired
	}
	return false
}

// TokenIssuer signs and verifies HS256 session tokens with a fixed secret
// and validity window. It is immutable and safe for concurrent use.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenIssuer fails when the secret is empty or the window is not positive.
func NewTokenIssuer(secret string, validity time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if validity <= 0 {
		return nil, fmt.Errorf("token validity must be positive, got %s", validity)
	}
	return &TokenIssuer{secret: []byte(secret), validity: validity, now: time.Now}, nil
}

// WithClock returns a copy of the issuer that reads time from now.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	c := *i
	c.now = now
	return &c
}

func (i *TokenIssuer) Validity() time.Duration {
	return i.validity
}

// Issue signs a token for subject that expires after the validity window.
func (i *TokenIssuer) Issue(subject, email string, roles []models.Role) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt(now, i.validity)),
		},
		Email: email,
		Roles: append([]models.Role(nil), roles...),
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// expiresAt returns now+validity rounded up to a whole second. NumericDate
// truncates to seconds, and rounding down would end the window early.
func expiresAt(now time.Time, validity time.Duration) time.Time {
	exp := now.Add(validity)
	if t := exp.Truncate(time.Second); !t.Equal(exp) {
		exp = t.Add(time.Second)
	}
	return exp
}

// Verify checks the signature and expiry of tokenString and returns its claims.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, &TokenError{Kind: TokenMalformed}
	}

	return claims, nil
}

func classify(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &TokenError{Kind: TokenExpired, Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return &TokenError{Kind: TokenSignature, Err: err}
	default:
		return &TokenError{Kind: TokenMalformed, Err: err}
	}
}

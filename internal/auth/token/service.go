// Package token issues and verifies the stateless bearer tokens that carry
// user identity. Tokens are HMAC-signed JWTs with a fixed lifetime; no
// server-side record is kept.
package token

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/skillsenselab/equiphub/internal/errors"
)

// Claims are the identity facts embedded in a token.
type Claims struct {
	gojwt.RegisteredClaims
	Email string `json:"email"`
}

// Config configures the token service.
type Config struct {
	// Secret is the HMAC signing key. Required.
	Secret string

	// TTL is the fixed token lifetime from issuance.
	TTL time.Duration
}

// Service signs and verifies bearer tokens.
type Service struct {
	cfg Config

	// now is the clock used for issued-at/expiry; swapped in tests.
	now func() time.Time
}

// NewService creates a token service. The secret is mandatory: any path
// that issues or verifies tokens cannot run without it.
func NewService(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if cfg.TTL == 0 {
		cfg.TTL = 3600 * time.Second
	}
	return &Service{cfg: cfg, now: time.Now}, nil
}

// WithClock overrides the service clock. Intended for expiry tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue signs a token carrying the subject identity and email, valid for
// the configured TTL from now.
func (s *Service) Issue(subject, email string) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		Email: email,
	}
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return signed, nil
}

// Parse verifies a token string and returns its claims. An expired token
// fails with TOKEN_EXPIRED; any other verification failure (malformed,
// tampered signature, wrong algorithm) fails with INVALID_TOKEN. Both map
// to the same authentication failure at the HTTP boundary but stay
// distinguishable for observability.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, apperrors.TokenExpired().WithCause(err)
		}
		return nil, apperrors.InvalidToken().WithCause(err)
	}
	if !parsed.Valid {
		return nil, apperrors.InvalidToken()
	}
	return claims, nil
}

func (s *Service) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, errors.New("token: unexpected signing method: " + token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

// Package session issues and verifies the signed tokens carried by admin
// requests.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/esports-hub/internal/domain/admin"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

const (
	// CookieName is where browsers carry the session token.
	CookieName = "session"

	issuer = "esports-hub"
)

var ErrSecretRequired = errors.New("session secret is required")

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Manager signs and verifies HS256 session tokens.
type Manager struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

func NewManager(secret string, defaultTTL time.Duration) (*Manager, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrSecretRequired
	}
	if defaultTTL <= 0 {
		defaultTTL = 24 * time.Hour
	}
	return &Manager{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}, nil
}

// Issue returns a token for email. A non-positive ttl uses the default.
func (m *Manager) Issue(email string, ttl time.Duration) (string, error) {
	email = admin.NormalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", usecase.ErrInvalidInput)
	}
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	now := m.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (m *Manager) VerifyAccessToken(ctx context.Context, token string) (admin.Principal, error) {
	_ = ctx

	token = strings.TrimSpace(token)
	if token == "" {
		return admin.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return admin.Principal{}, fmt.Errorf("%w: session expired", usecase.ErrUnauthorized)
		}
		return admin.Principal{}, fmt.Errorf("%w: invalid session token", usecase.ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return admin.Principal{}, fmt.Errorf("%w: invalid session token", usecase.ErrUnauthorized)
	}
	email := admin.NormalizeEmail(claims.Email)
	if email == "" {
		return admin.Principal{}, fmt.Errorf("%w: session token has no email", usecase.ErrUnauthorized)
	}
	return admin.Principal{Email: email}, nil
}

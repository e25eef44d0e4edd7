package token

import (
	"errors"
	"fmt"
	"time"

	"HospitalHub/models"
	"HospitalHub/role"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers bad signatures, malformed payloads and expiry alike.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Subject string             `json:"sub"`
	Type    models.AccountKind `json:"type"`
	Role    role.Role          `json:"role"`
}

type jwtClaims struct {
	Type models.AccountKind `json:"type"`
	Role role.Role          `json:"role"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration, issuer string) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &Manager{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}, nil
}

func (m *Manager) TTL() time.Duration { return m.ttl }

func (m *Manager) Issue(c Claims) (string, error) {
	return m.IssueWithTTL(c, m.ttl)
}

func (m *Manager) IssueWithTTL(c Claims, ttl time.Duration) (string, error) {
	if c.Subject == "" || c.Type == "" {
		return "", errors.New("token claims require subject and type")
	}
	now := m.now()
	claims := jwtClaims{
		Type: c.Type,
		Role: c.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Subject,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *Manager) Verify(tokenString string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid || claims.Subject == "" || !claims.Type.Valid() {
		return Claims{}, ErrInvalidToken
	}
	return Claims{Subject: claims.Subject, Type: claims.Type, Role: claims.Role}, nil
}

package auth

import (
	"errors"
	"fmt"

	"github.com/gamestore-zarzis/backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrEmptySubject = errors.New("token has no subject")

// TokenManager validates access tokens issued by the hosted auth provider.
type TokenManager interface {
	Parse(accessToken string) (uuid.UUID, error)
}

type Manager struct {
	signingKey string
	audience   string
}

func NewManager(cfg config.JWTConfig) (*Manager, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("empty signing key")
	}

	return &Manager{
		signingKey: cfg.SigningKey,
		audience:   cfg.Audience,
	}, nil
}

// Parse verifies the HMAC signature, expiry and audience of accessToken and
// returns the user id carried in its subject.
func (m *Manager) Parse(accessToken string) (uuid.UUID, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(accessToken, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(m.signingKey), nil
	}, opts...)
	if err != nil {
		return uuid.Nil, err
	}

	if claims.Subject == "" {
		return uuid.Nil, ErrEmptySubject
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("subject uuid parse: %w", err)
	}

	return id, nil
}

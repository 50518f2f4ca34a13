package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs access and refresh tokens with separate secrets.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *TokenService) IssueAccessToken(userID, role string) (string, error) {
	return sign(s.accessSecret, Claims{
		UserID:           userID,
		Role:             role,
		RegisteredClaims: s.registered(s.accessTTL, ""),
	})
}

// IssueRefreshToken carries a random jti so tokens minted in the same second differ.
func (s *TokenService) IssueRefreshToken(userID string) (string, error) {
	return sign(s.refreshSecret, Claims{
		UserID:           userID,
		RegisteredClaims: s.registered(s.refreshTTL, uuid.NewString()),
	})
}

func (s *TokenService) ParseAccessToken(raw string) (*Claims, error) {
	return parse(s.accessSecret, raw, s.now)
}

func (s *TokenService) ParseRefreshToken(raw string) (*Claims, error) {
	return parse(s.refreshSecret, raw, s.now)
}

func (s *TokenService) registered(ttl time.Duration, id string) jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func sign(secret []byte, claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func parse(secret []byte, raw string, now func() time.Time) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

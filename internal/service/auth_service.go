package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"kudoswall/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService validates owner tokens. Tokens are HS256 JWTs signed with the
// secret shared with the auth provider.
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(secret string) *AuthService {
	return &AuthService{jwtSecret: []byte(secret)}
}

// IssueOwnerToken signs a token for ownerID. A zero ttl issues a token
// without expiry.
func (s *AuthService) IssueOwnerToken(ownerID, email string, ttl time.Duration) (*model.TokenResponse, error) {
	if ownerID == "" {
		return nil, errors.New("owner id is required")
	}
	now := time.Now()
	claims := &model.OwnerClaims{
		OwnerID: ownerID,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  ownerID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{Token: tokenString, OwnerID: ownerID}, nil
}

// ValidateOwnerToken validates an owner JWT and returns its claims
func (s *AuthService) ValidateOwnerToken(tokenString string) (*model.OwnerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.OwnerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.OwnerClaims)
	if !ok || !token.Valid || claims.Owner() == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

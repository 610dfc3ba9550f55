package model

import "github.com/golang-jwt/jwt/v5"

// OwnerClaims are JWT claims for form owners. Tokens minted by the auth
// provider may carry the owner only in the subject claim.
type OwnerClaims struct {
	OwnerID string `json:"ownerId,omitempty"`
	Email   string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Owner returns the owner id, falling back to the subject claim
func (c *OwnerClaims) Owner() string {
	if c.OwnerID != "" {
		return c.OwnerID
	}
	return c.Subject
}

// TokenResponse is returned when a token is issued
type TokenResponse struct {
	Token   string `json:"token"`
	OwnerID string `json:"ownerId"`
}

package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPayload captures the data available when minting a credential.
type TokenPayload struct {
	UserID   uuid.UUID
	Name     string
	LastName string
}

// TokenClaims represents the typed credential issued to sellers. The claim set
// is intentionally small: id, name and last name, nothing else.
type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	LastName string    `json:"last_name"`
	jwt.RegisteredClaims
}

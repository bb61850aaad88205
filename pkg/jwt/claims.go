package jwt

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the claims carried by an organizer session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleViewer    Role = "viewer"
)

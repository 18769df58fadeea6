package models

import "github.com/golang-jwt/jwt/v5"

// UserRole enumerates the platform roles carried in access tokens.
type UserRole string

const (
	RoleMentor UserRole = "MENTOR"
	RoleMentee UserRole = "MENTEE"
	RoleAdmin  UserRole = "ADMIN"
)

// JWTClaims is the access token payload issued by the platform's identity
// service. This API only verifies tokens, it never mints them.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}

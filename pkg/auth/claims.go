package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminRole is the only role the console issues.
const AdminRole = "admin"

// AdminTokenClaims represents the typed JWT issued to the admin console.
type AdminTokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

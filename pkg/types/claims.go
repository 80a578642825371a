package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/linskybing/simtrack/internal/domain/user"
)

type Claims struct {
	UserID   uint      `json:"user_id"`
	Username string    `json:"username"`
	Role     user.Role `json:"role"`
	jwt.RegisteredClaims
}

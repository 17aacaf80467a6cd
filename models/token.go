package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, access token'ın JWT payload'ı.
// jwt.RegisteredClaims embed edilir — exp, iat, iss standart alanları oradan gelir.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

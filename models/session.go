package models

import "time"

// Session, bir refresh token oturumunu temsil eder.
// Access token stateless'tır (JWT); refresh token DB'de saklanır ve
// logout'ta silinir — böylece refresh token'lar iptal edilebilir.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

package repository

import (
	"context"

	"github.com/akinalp/dalga/models"
)

// SessionRepository, refresh token oturumları için interface.
// Access token stateless'tır (JWT) — DB'de sadece refresh token tutulur,
// böylece logout'ta iptal edilebilir.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByRefreshToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) error
}

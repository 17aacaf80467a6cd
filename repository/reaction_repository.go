package repository

import (
	"context"

	"github.com/akinalp/dalga/models"
)

// ReactionRepository, istasyon like/dislike'ları için interface.
//
// UNIQUE(station_id, user_id) → bir kullanıcı bir istasyona aynı anda
// en fazla bir reaction tutar. Tip DEĞİŞTİRMEK atomik değildir: service
// katmanı önce Delete, sonra Create çağırır. Aradaki pencerede başka
// bir istek araya girebilir (bilinen sınırlama) — constraint, duplicate
// satırı her koşulda engeller.
type ReactionRepository interface {
	// Create, yeni reaction ekler. Kullanıcının o istasyonda zaten
	// reaction'ı varsa pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, stationID, userID string, t models.ReactionType) error
	Delete(ctx context.Context, stationID, userID string) error
	GetUserReaction(ctx context.Context, stationID, userID string) (*models.Reaction, error)
	Counts(ctx context.Context, stationID string) (*models.ReactionCounts, error)
}

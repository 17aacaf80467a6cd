package repository

import (
	"context"

	"github.com/akinalp/dalga/models"
)

// FavoriteRepository, authenticated kullanıcı favorileri için interface.
// Anonim favoriler DB'ye hiç uğramaz — pkg/localstore'da yaşarlar.
//
// Add idempotenttir: aynı (user, station) çiftini ikinci kez eklemek
// hata değildir, sessiz no-op'tur. Bu sayede localstore → DB migration
// sırasında çakışan kayıtlar sorun çıkarmaz.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, stationID string) error
	Remove(ctx context.Context, userID, stationID string) error
	List(ctx context.Context, userID string) ([]models.Favorite, error)
	Exists(ctx context.Context, userID, stationID string) (bool, error)
}

package repository

import (
	"context"
	"fmt"

	"github.com/akinalp/dalga/database"
	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
)

type sqliteFavoriteRepo struct {
	db database.TxQuerier
}

func NewSQLiteFavoriteRepo(db database.TxQuerier) FavoriteRepository {
	return &sqliteFavoriteRepo{db: db}
}

// Add, favoriye ekler — idempotent.
//
// INSERT OR IGNORE: UNIQUE(user_id, station_id) ihlalinde satır eklenmez
// ve hata da dönmez. Duplicate ekleme görünür bir etki bırakmaz; iki kez
// eklenen istasyon tek remove ile tamamen kalkar.
func (r *sqliteFavoriteRepo) Add(ctx context.Context, userID, stationID string) error {
	query := `
		INSERT OR IGNORE INTO favorites (id, user_id, station_id)
		VALUES (lower(hex(randomblob(8))), ?, ?)`

	_, err := r.db.ExecContext(ctx, query, userID, stationID)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *sqliteFavoriteRepo) Remove(ctx context.Context, userID, stationID string) error {
	query := `DELETE FROM favorites WHERE user_id = ? AND station_id = ?`

	result, err := r.db.ExecContext(ctx, query, userID, stationID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check remove result: %w", err)
	}
	if rowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

func (r *sqliteFavoriteRepo) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	query := `
		SELECT id, user_id, station_id, created_at
		FROM favorites WHERE user_id = ?
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.StationID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (r *sqliteFavoriteRepo) Exists(ctx context.Context, userID, stationID string) (bool, error) {
	query := `SELECT COUNT(*) FROM favorites WHERE user_id = ? AND station_id = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, stationID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/dalga/database"
	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
)

type sqliteReactionRepo struct {
	db database.TxQuerier
}

func NewSQLiteReactionRepo(db database.TxQuerier) ReactionRepository {
	return &sqliteReactionRepo{db: db}
}

func (r *sqliteReactionRepo) Create(ctx context.Context, stationID, userID string, t models.ReactionType) error {
	query := `
		INSERT INTO reactions (id, station_id, user_id, type)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, stationID, userID, t)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: reaction already set", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create reaction: %w", err)
	}
	return nil
}

func (r *sqliteReactionRepo) Delete(ctx context.Context, stationID, userID string) error {
	query := `DELETE FROM reactions WHERE station_id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, stationID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

func (r *sqliteReactionRepo) GetUserReaction(ctx context.Context, stationID, userID string) (*models.Reaction, error) {
	query := `
		SELECT id, station_id, user_id, type, created_at
		FROM reactions WHERE station_id = ? AND user_id = ?`

	reaction := &models.Reaction{}
	err := r.db.QueryRowContext(ctx, query, stationID, userID).Scan(
		&reaction.ID, &reaction.StationID, &reaction.UserID,
		&reaction.Type, &reaction.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user reaction: %w", err)
	}

	return reaction, nil
}

// Counts, istasyonun like/dislike toplamlarını tek sorguda hesaplar.
// SUM(CASE...) ile iki sayaç tek taramada çıkar — iki ayrı COUNT
// sorgusuna gerek yok.
func (r *sqliteReactionRepo) Counts(ctx context.Context, stationID string) (*models.ReactionCounts, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'like' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'dislike' THEN 1 ELSE 0 END), 0)
		FROM reactions WHERE station_id = ?`

	counts := &models.ReactionCounts{}
	err := r.db.QueryRowContext(ctx, query, stationID).Scan(&counts.Likes, &counts.Dislikes)
	if err != nil {
		return nil, fmt.Errorf("failed to count reactions: %w", err)
	}
	return counts, nil
}

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

type sqliteLiveCommentRepo struct {
	db database.TxQuerier
}

func NewSQLiteLiveCommentRepo(db database.TxQuerier) LiveCommentRepository {
	return &sqliteLiveCommentRepo{db: db}
}

func (r *sqliteLiveCommentRepo) Create(ctx context.Context, lc *models.LiveComment) error {
	query := `
		INSERT INTO live_comments (id, station_id, user_id, content, dedicated_to)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		lc.StationID, lc.UserID, lc.Content, lc.DedicatedTo,
	).Scan(&lc.ID, &lc.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create live comment: %w", err)
	}
	return nil
}

// GetRecent, istasyonun son N live comment'ini en yeniden eskiye döner —
// normal comment listesiyle aynı sözleşme. Sohbet akışı isteyen client
// listeyi kendisi ters çevirir.
func (r *sqliteLiveCommentRepo) GetRecent(ctx context.Context, stationID string, limit int) ([]models.LiveComment, error) {
	query := `
		SELECT lc.id, lc.station_id, lc.user_id, u.username, lc.content, lc.dedicated_to, lc.created_at
		FROM live_comments lc
		JOIN users u ON u.id = lc.user_id
		WHERE lc.station_id = ?
		ORDER BY lc.created_at DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, stationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get live comments: %w", err)
	}
	defer rows.Close()

	var comments []models.LiveComment
	for rows.Next() {
		var lc models.LiveComment
		if err := rows.Scan(&lc.ID, &lc.StationID, &lc.UserID, &lc.Username,
			&lc.Content, &lc.DedicatedTo, &lc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan live comment: %w", err)
		}
		comments = append(comments, lc)
	}
	return comments, rows.Err()
}

func (r *sqliteLiveCommentRepo) GetByID(ctx context.Context, id string) (*models.LiveComment, error) {
	query := `
		SELECT lc.id, lc.station_id, lc.user_id, u.username, lc.content, lc.dedicated_to, lc.created_at
		FROM live_comments lc
		JOIN users u ON u.id = lc.user_id
		WHERE lc.id = ?`

	lc := &models.LiveComment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lc.ID, &lc.StationID, &lc.UserID, &lc.Username,
		&lc.Content, &lc.DedicatedTo, &lc.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get live comment: %w", err)
	}

	return lc, nil
}

func (r *sqliteLiveCommentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM live_comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete live comment: %w", err)
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

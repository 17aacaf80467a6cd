package repository

import (
	"context"
	"fmt"

	"github.com/akinalp/dalga/database"
	"github.com/akinalp/dalga/pkg"
)

type sqliteVoteRepo struct {
	db database.TxQuerier
}

func NewSQLiteVoteRepo(db database.TxQuerier) VoteRepository {
	return &sqliteVoteRepo{db: db}
}

// Create, bir oy ekler. Duplicate oy → ErrAlreadyVoted.
//
// INSERT OR IGNORE kullanmıyoruz: UNIQUE ihlalinin yüzeye çıkması
// İSTENEN davranış. SELECT-sonra-INSERT yerine constraint'e güvenmek
// iki eş zamanlı oy denemesinde bile doğru sonucu verir.
func (r *sqliteVoteRepo) Create(ctx context.Context, suggestionID, userID string) error {
	query := `
		INSERT INTO suggestion_votes (id, suggestion_id, user_id)
		VALUES (lower(hex(randomblob(8))), ?, ?)`

	_, err := r.db.ExecContext(ctx, query, suggestionID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return pkg.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to create vote: %w", err)
	}
	return nil
}

// Delete, bir oyu geri çeker. Oy yoksa ErrNotFound.
func (r *sqliteVoteRepo) Delete(ctx context.Context, suggestionID, userID string) error {
	query := `DELETE FROM suggestion_votes WHERE suggestion_id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, suggestionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
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

func (r *sqliteVoteRepo) Exists(ctx context.Context, suggestionID, userID string) (bool, error) {
	query := `SELECT COUNT(*) FROM suggestion_votes WHERE suggestion_id = ? AND user_id = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, suggestionID, userID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return count > 0, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/dalga/database"
	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
)

type sqliteSuggestionRepo struct {
	db database.TxQuerier
}

func NewSQLiteSuggestionRepo(db database.TxQuerier) SuggestionRepository {
	return &sqliteSuggestionRepo{db: db}
}

// suggestionColumns, tüm SELECT sorgularının ortak kolon listesi.
// Scan sırası scanSuggestion ile birebir aynı olmak ZORUNDA.
const suggestionColumns = `id, name, slug, stream_url, website, logo_url, description,
	contact_email, contact_phone, submitter_email, country, tags, language,
	status, sponsored, votes, submitted_by, created_at`

func (r *sqliteSuggestionRepo) Create(ctx context.Context, s *models.Suggestion) error {
	query := `
		INSERT INTO suggestions (id, name, slug, stream_url, website, logo_url, description,
			contact_email, contact_phone, submitter_email, country, tags, language, submitted_by)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, status, votes, created_at`

	// Tags DB'de virgülle ayrılmış tek kolon olarak yaşar — ayrı tag
	// tablosu yok. Filtreleme LIKE ile yapılır (küçük veri seti).
	err := r.db.QueryRowContext(ctx, query,
		s.Name, s.Slug, s.StreamURL, s.Website, s.LogoURL, s.Description,
		s.ContactEmail, s.ContactPhone, s.SubmitterEmail, s.Country,
		strings.Join(s.Tags, ","), s.Language, s.SubmittedBy,
	).Scan(&s.ID, &s.Status, &s.Votes, &s.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create suggestion: %w", err)
	}
	return nil
}

func (r *sqliteSuggestionRepo) GetByID(ctx context.Context, id string) (*models.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM suggestions WHERE id = ?`

	s, err := scanSuggestion(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion: %w", err)
	}
	return s, nil
}

func (r *sqliteSuggestionRepo) GetPending(ctx context.Context) ([]models.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + `
		FROM suggestions WHERE status = 'pending'
		ORDER BY created_at DESC`
	return r.querySuggestions(ctx, query)
}

func (r *sqliteSuggestionRepo) UpdateStatus(ctx context.Context, id string, status models.SuggestionStatus, sponsored bool) error {
	// Sadece pending kayıtlar geçiş yapabilir — approved/rejected bir
	// kaydı tekrar işlemek no-op yerine ErrNotFound döner ki admin UI
	// bayat bir listeyle çalıştığını fark etsin.
	query := `UPDATE suggestions SET status = ?, sponsored = ? WHERE id = ? AND status = 'pending'`

	result, err := r.db.ExecContext(ctx, query, status, sponsored, id)
	if err != nil {
		return fmt.Errorf("failed to update suggestion status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

func (r *sqliteSuggestionRepo) GetApproved(ctx context.Context) ([]models.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + `
		FROM suggestions WHERE status = 'approved'
		ORDER BY votes DESC, name ASC`
	return r.querySuggestions(ctx, query)
}

func (r *sqliteSuggestionRepo) GetApprovedByCountry(ctx context.Context, country string) ([]models.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + `
		FROM suggestions WHERE status = 'approved' AND country = ? COLLATE NOCASE
		ORDER BY votes DESC, name ASC`
	return r.querySuggestions(ctx, query, country)
}

func (r *sqliteSuggestionRepo) GetApprovedByLanguage(ctx context.Context, language string) ([]models.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + `
		FROM suggestions WHERE status = 'approved' AND language = ? COLLATE NOCASE
		ORDER BY votes DESC, name ASC`
	return r.querySuggestions(ctx, query, language)
}

func (r *sqliteSuggestionRepo) GetApprovedByTag(ctx context.Context, tag string) ([]models.Suggestion, error) {
	// tags kolonu "jazz,news,talk" formatında — başına/sonuna virgül
	// ekleyip ",jazz," arayarak kısmi eşleşmeyi ("jazzy") engelleriz.
	query := `SELECT ` + suggestionColumns + `
		FROM suggestions
		WHERE status = 'approved' AND (',' || lower(tags) || ',') LIKE ?
		ORDER BY votes DESC, name ASC`
	pattern := "%," + strings.ToLower(tag) + ",%"
	return r.querySuggestions(ctx, query, pattern)
}

func (r *sqliteSuggestionRepo) SearchApprovedByName(ctx context.Context, name string) ([]models.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + `
		FROM suggestions WHERE status = 'approved' AND name LIKE ? COLLATE NOCASE
		ORDER BY votes DESC, name ASC`
	return r.querySuggestions(ctx, query, "%"+name+"%")
}

func (r *sqliteSuggestionRepo) IncrementVotes(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE suggestions SET votes = votes + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment votes: %w", err)
	}
	return nil
}

func (r *sqliteSuggestionRepo) DecrementVotes(ctx context.Context, id string) error {
	// max(votes - 1, 0): sayaç hiçbir koşulda negatife düşmez
	_, err := r.db.ExecContext(ctx, `UPDATE suggestions SET votes = max(votes - 1, 0) WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to decrement votes: %w", err)
	}
	return nil
}

// ─── Internal Helpers ───

func (r *sqliteSuggestionRepo) querySuggestions(ctx context.Context, query string, args ...any) ([]models.Suggestion, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close() // rows'u kapatmayı ASLA unutma — aksi halde bağlantı sızar

	var suggestions []models.Suggestion
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, *s)
	}
	return suggestions, rows.Err()
}

// rowScanner, hem *sql.Row hem *sql.Rows'un sağladığı ortak Scan yüzeyi.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSuggestion(row rowScanner) (*models.Suggestion, error) {
	s := &models.Suggestion{}
	var tags string
	err := row.Scan(
		&s.ID, &s.Name, &s.Slug, &s.StreamURL, &s.Website, &s.LogoURL, &s.Description,
		&s.ContactEmail, &s.ContactPhone, &s.SubmitterEmail, &s.Country, &tags, &s.Language,
		&s.Status, &s.Sponsored, &s.Votes, &s.SubmittedBy, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tags != "" {
		s.Tags = strings.Split(tags, ",")
	}
	return s, nil
}

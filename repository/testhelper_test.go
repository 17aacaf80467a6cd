package repository

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/akinalp/dalga/database"
	"github.com/akinalp/dalga/models"
)

// newTestDB, migration'ları uygulanmış geçici bir SQLite açar.
// t.TempDir() test bitiminde otomatik silinir.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		t.Fatalf("embedded migrations: %v", err)
	}

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// createTestUser, FK constraint'leri için gerçek bir kullanıcı satırı açar.
func createTestUser(t *testing.T, db *database.DB, username string) *models.User {
	t.Helper()

	repo := NewSQLiteUserRepo(db.Conn)
	user := &models.User{
		Username:     username,
		PasswordHash: "x",
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// createTestSuggestion, pending bir öneri satırı açar.
func createTestSuggestion(t *testing.T, db *database.DB, name string) *models.Suggestion {
	t.Helper()

	repo := NewSQLiteSuggestionRepo(db.Conn)
	s := &models.Suggestion{
		Name:           name,
		Slug:           "test-slug",
		StreamURL:      "https://stream.example.com/live",
		Description:    "test station",
		ContactEmail:   "contact@example.com",
		ContactPhone:   "+90 555 000 0000",
		SubmitterEmail: "submitter@example.com",
		Country:        "Turkey",
		Tags:           []string{"jazz", "chill"},
		Language:       "turkish",
	}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("create suggestion %s: %v", name, err)
	}
	return s
}

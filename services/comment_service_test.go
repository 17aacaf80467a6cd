package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/repository"
)

func newCommentFixture(t *testing.T) (CommentService, *models.User, *models.User) {
	t.Helper()

	db := newTestDB(t)
	users := repository.NewSQLiteUserRepo(db.Conn)
	svc := NewCommentService(repository.NewSQLiteCommentRepo(db.Conn), users)

	ctx := context.Background()
	author := &models.User{Username: "yazar", PasswordHash: "x"}
	other := &models.User{Username: "baskasi", PasswordHash: "x"}
	for _, u := range []*models.User{author, other} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}
	return svc, author, other
}

func TestCommentCreate(t *testing.T) {
	svc, author, _ := newCommentFixture(t)
	ctx := context.Background()

	comment, err := svc.Create(ctx, "st-1", author.ID, "  harika istasyon  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if comment.Content != "harika istasyon" {
		t.Fatalf("content should be trimmed, got %q", comment.Content)
	}
	if comment.Username != "yazar" {
		t.Fatalf("expected username to be filled, got %q", comment.Username)
	}

	comments, err := svc.GetByStation(ctx, "st-1")
	if err != nil {
		t.Fatalf("get by station: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
}

func TestCommentCreateValidation(t *testing.T) {
	svc, author, _ := newCommentFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "st-1", author.ID, "   "); !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for empty content, got: %v", err)
	}

	tooLong := strings.Repeat("a", 2001)
	if _, err := svc.Create(ctx, "st-1", author.ID, tooLong); !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for oversized content, got: %v", err)
	}
}

func TestCommentDeleteOwnerOnly(t *testing.T) {
	svc, author, other := newCommentFixture(t)
	ctx := context.Background()

	comment, err := svc.Create(ctx, "st-1", author.ID, "harika istasyon")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Başkasının yorumu silinemez
	if err := svc.Delete(ctx, comment.ID, other.ID); !errors.Is(err, pkg.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got: %v", err)
	}

	if err := svc.Delete(ctx, comment.ID, author.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}

	comments, err := svc.GetByStation(ctx, "st-1")
	if err != nil {
		t.Fatalf("get by station: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(comments))
	}
}

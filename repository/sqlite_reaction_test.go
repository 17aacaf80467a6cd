package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
)

func TestReactionUniquePerUserAndStation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "dinleyici")
	repo := NewSQLiteReactionRepo(db.Conn)
	ctx := context.Background()

	if err := repo.Create(ctx, "station-1", user.ID, models.ReactionLike); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Aynı kullanıcı + istasyon için ikinci reaction açık hatadır —
	// tip değiştirmek isteyen caller önce Delete çağırmalı
	err := repo.Create(ctx, "station-1", user.ID, models.ReactionDislike)
	if !errors.Is(err, pkg.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got: %v", err)
	}
}

func TestReactionCounts(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bora := createTestUser(t, db, "bora")
	ceren := createTestUser(t, db, "ceren")
	repo := NewSQLiteReactionRepo(db.Conn)
	ctx := context.Background()

	for _, tc := range []struct {
		userID string
		rt     models.ReactionType
	}{
		{alice.ID, models.ReactionLike},
		{bora.ID, models.ReactionLike},
		{ceren.ID, models.ReactionDislike},
	} {
		if err := repo.Create(ctx, "station-1", tc.userID, tc.rt); err != nil {
			t.Fatalf("create reaction for %s: %v", tc.userID, err)
		}
	}

	counts, err := repo.Counts(ctx, "station-1")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Likes != 2 || counts.Dislikes != 1 {
		t.Fatalf("expected 2 likes / 1 dislike, got %d/%d", counts.Likes, counts.Dislikes)
	}

	// Başka istasyonun sayaçları boş olmalı
	other, err := repo.Counts(ctx, "station-2")
	if err != nil {
		t.Fatalf("counts for empty station: %v", err)
	}
	if other.Likes != 0 || other.Dislikes != 0 {
		t.Fatalf("expected zero counts, got %d/%d", other.Likes, other.Dislikes)
	}
}

func TestReactionDeleteThenSwitch(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "dinleyici")
	repo := NewSQLiteReactionRepo(db.Conn)
	ctx := context.Background()

	if err := repo.Create(ctx, "station-1", user.ID, models.ReactionLike); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(ctx, "station-1", user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Create(ctx, "station-1", user.ID, models.ReactionDislike); err != nil {
		t.Fatalf("create after delete: %v", err)
	}

	reaction, err := repo.GetUserReaction(ctx, "station-1", user.ID)
	if err != nil {
		t.Fatalf("get user reaction: %v", err)
	}
	if reaction.Type != models.ReactionDislike {
		t.Fatalf("expected dislike after switch, got %s", reaction.Type)
	}
}

func TestReactionGetUserReactionNotFound(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "dinleyici")
	repo := NewSQLiteReactionRepo(db.Conn)

	_, err := repo.GetUserReaction(context.Background(), "station-1", user.ID)
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

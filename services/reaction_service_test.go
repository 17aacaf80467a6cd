package services

import (
	"context"
	"errors"
	"testing"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/repository"
	"github.com/akinalp/dalga/ws"
)

func newReactionFixture(t *testing.T) (ReactionService, *models.User, *recordingPublisher) {
	t.Helper()

	db := newTestDB(t)
	hub := &recordingPublisher{}
	svc := NewReactionService(repository.NewSQLiteReactionRepo(db.Conn), hub)

	user := &models.User{Username: "dinleyici", PasswordHash: "x"}
	if err := repository.NewSQLiteUserRepo(db.Conn).Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return svc, user, hub
}

func TestSetReactionAndSwitch(t *testing.T) {
	svc, user, hub := newReactionFixture(t)
	ctx := context.Background()

	counts, err := svc.SetReaction(ctx, "st-1", user.ID, models.ReactionLike)
	if err != nil {
		t.Fatalf("set like: %v", err)
	}
	if counts.Likes != 1 || counts.Dislikes != 0 {
		t.Fatalf("expected 1/0, got %d/%d", counts.Likes, counts.Dislikes)
	}

	// Aynı tip tekrar — idempotent no-op
	counts, err = svc.SetReaction(ctx, "st-1", user.ID, models.ReactionLike)
	if err != nil {
		t.Fatalf("repeat like: %v", err)
	}
	if counts.Likes != 1 {
		t.Fatalf("repeated like must not double count, got %d", counts.Likes)
	}

	// Tip değiştirme: like → dislike
	counts, err = svc.SetReaction(ctx, "st-1", user.ID, models.ReactionDislike)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if counts.Likes != 0 || counts.Dislikes != 1 {
		t.Fatalf("expected 0/1 after switch, got %d/%d", counts.Likes, counts.Dislikes)
	}

	// Sayaç değişiklikleri istasyon room'una yayınlanır
	events := hub.eventsFor("station:st-1")
	if len(events) == 0 {
		t.Fatal("expected reaction updates broadcast to the station room")
	}
	for _, e := range events {
		if e.Op != ws.OpReactionUpdate {
			t.Fatalf("unexpected op: %s", e.Op)
		}
	}
}

func TestSetReactionInvalidType(t *testing.T) {
	svc, user, _ := newReactionFixture(t)

	_, err := svc.SetReaction(context.Background(), "st-1", user.ID, models.ReactionType("love"))
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got: %v", err)
	}
}

func TestRemoveReaction(t *testing.T) {
	svc, user, _ := newReactionFixture(t)
	ctx := context.Background()

	if _, err := svc.SetReaction(ctx, "st-1", user.ID, models.ReactionLike); err != nil {
		t.Fatalf("set: %v", err)
	}

	counts, err := svc.RemoveReaction(ctx, "st-1", user.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if counts.Likes != 0 {
		t.Fatalf("expected 0 likes after removal, got %d", counts.Likes)
	}

	// Olmayan reaction'ı kaldırmak no-op
	if _, err := svc.RemoveReaction(ctx, "st-1", user.ID); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}
}

func TestGetUserReactionAbsence(t *testing.T) {
	svc, user, _ := newReactionFixture(t)

	reaction, err := svc.GetUserReaction(context.Background(), "st-1", user.ID)
	if err != nil {
		t.Fatalf("absence is not an error: %v", err)
	}
	if reaction != nil {
		t.Fatalf("expected nil reaction, got %+v", reaction)
	}
}

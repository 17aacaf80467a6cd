package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/repository"
	"github.com/akinalp/dalga/ws"
)

func newLiveCommentFixture(t *testing.T) (LiveCommentService, *models.User, *recordingPublisher) {
	t.Helper()

	db := newTestDB(t)
	users := repository.NewSQLiteUserRepo(db.Conn)
	hub := &recordingPublisher{}
	svc := NewLiveCommentService(repository.NewSQLiteLiveCommentRepo(db.Conn), users, hub)

	user := &models.User{Username: "dinleyici", PasswordHash: "x"}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return svc, user, hub
}

func TestLiveCommentCreateBroadcasts(t *testing.T) {
	svc, user, hub := newLiveCommentFixture(t)
	ctx := context.Background()

	dedication := "annem için"
	lc, err := svc.Create(ctx, "st-1", user.ID, "bu şarkı efsane", &dedication)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if lc.DedicatedTo == nil || *lc.DedicatedTo != "annem için" {
		t.Fatalf("dedication lost: %+v", lc.DedicatedTo)
	}

	events := hub.eventsFor("station:st-1")
	if len(events) != 1 || events[0].Op != ws.OpLiveCommentCreate {
		t.Fatalf("expected one live comment broadcast to the room, got %+v", events)
	}
}

func TestLiveCommentEmptyDedicationBecomesNil(t *testing.T) {
	svc, user, _ := newLiveCommentFixture(t)

	empty := "   "
	lc, err := svc.Create(context.Background(), "st-1", user.ID, "selamlar", &empty)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if lc.DedicatedTo != nil {
		t.Fatalf("blank dedication should collapse to nil, got %q", *lc.DedicatedTo)
	}
}

func TestLiveCommentGetRecentIsCapped(t *testing.T) {
	svc, user, _ := newLiveCommentFixture(t)
	ctx := context.Background()

	for i := 0; i < 55; i++ {
		if _, err := svc.Create(ctx, "st-1", user.ID, fmt.Sprintf("mesaj %d", i), nil); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	recent, err := svc.GetRecent(ctx, "st-1")
	if err != nil {
		t.Fatalf("get recent: %v", err)
	}
	if len(recent) != 50 {
		t.Fatalf("expected recent window of 50, got %d", len(recent))
	}
}

func TestLiveCommentGetRecentNewestFirst(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewSQLiteUserRepo(db.Conn)
	hub := &recordingPublisher{}
	svc := NewLiveCommentService(repository.NewSQLiteLiveCommentRepo(db.Conn), users, hub)
	ctx := context.Background()

	user := &models.User{Username: "dinleyici", PasswordHash: "x"}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	older, err := svc.Create(ctx, "st-1", user.ID, "eski mesaj", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	newer, err := svc.Create(ctx, "st-1", user.ID, "yeni mesaj", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// created_at çözünürlüğü saniye — sırayı sabitlemek için eskiyi
	// geriye çekiyoruz
	_, err = db.Conn.ExecContext(ctx,
		`UPDATE live_comments SET created_at = datetime('now', '-1 hour') WHERE id = ?`, older.ID)
	if err != nil {
		t.Fatalf("backdate: %v", err)
	}

	recent, err := svc.GetRecent(ctx, "st-1")
	if err != nil {
		t.Fatalf("get recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 live comments, got %d", len(recent))
	}
	// Normal comment listesiyle aynı sözleşme: en yeni en üstte
	if recent[0].ID != newer.ID || recent[1].ID != older.ID {
		t.Fatalf("expected newest first, got %q then %q", recent[0].Content, recent[1].Content)
	}
}

func TestLiveCommentDeleteBroadcasts(t *testing.T) {
	svc, user, hub := newLiveCommentFixture(t)
	ctx := context.Background()

	lc, err := svc.Create(ctx, "st-1", user.ID, "selamlar", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, lc.ID, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	events := hub.eventsFor("station:st-1")
	if len(events) != 2 || events[1].Op != ws.OpLiveCommentDelete {
		t.Fatalf("expected create+delete broadcasts, got %+v", events)
	}
}

package services

import (
	"context"
	"testing"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg/localstore"
	"github.com/akinalp/dalga/repository"
	"github.com/akinalp/dalga/ws"
)

func newFavoritesFixture(t *testing.T) (FavoritesService, repository.UserRepository, *recordingPublisher) {
	t.Helper()

	db := newTestDB(t)
	local, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	hub := &recordingPublisher{}
	svc := NewFavoritesService(db.Conn, repository.NewSQLiteFavoriteRepo(db.Conn), local, hub)
	return svc, repository.NewSQLiteUserRepo(db.Conn), hub
}

func newFavoritesUser(t *testing.T, users repository.UserRepository) *models.User {
	t.Helper()

	user := &models.User{Username: "dinleyici", PasswordHash: "x"}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestFavoritesAnonymousScope(t *testing.T) {
	svc, _, _ := newFavoritesFixture(t)
	ctx := context.Background()
	anon := Identity{ClientID: "client-1"}

	if err := svc.Add(ctx, anon, "st-1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Add(ctx, anon, "st-2"); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Duplicate ekleme sessiz no-op
	if err := svc.Add(ctx, anon, "st-1"); err != nil {
		t.Fatalf("duplicate add: %v", err)
	}

	ids, err := svc.List(ctx, anon)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 favorites, got %v", ids)
	}

	ok, err := svc.IsFavorite(ctx, anon, "st-1")
	if err != nil {
		t.Fatalf("is favorite: %v", err)
	}
	if !ok {
		t.Fatal("st-1 should be a favorite")
	}

	if err := svc.Remove(ctx, anon, "st-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// Olmayan kaydı silmek de no-op
	if err := svc.Remove(ctx, anon, "st-1"); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}

	ids, err = svc.List(ctx, anon)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 1 || ids[0] != "st-2" {
		t.Fatalf("expected only st-2, got %v", ids)
	}

	// Anonim scope'un listesi başka client'a sızmaz
	other, err := svc.List(ctx, Identity{ClientID: "client-2"})
	if err != nil {
		t.Fatalf("list other client: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty list for other client, got %v", other)
	}
}

func TestFavoritesAuthenticatedScope(t *testing.T) {
	svc, users, hub := newFavoritesFixture(t)
	ctx := context.Background()
	user := newFavoritesUser(t, users)
	id := Identity{ClientID: "client-1", UserID: user.ID}

	if err := svc.Add(ctx, id, "st-1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Authenticated favori anonim scope'a yazılmaz
	anonIDs, err := svc.List(ctx, Identity{ClientID: "client-1"})
	if err != nil {
		t.Fatalf("anon list: %v", err)
	}
	if len(anonIDs) != 0 {
		t.Fatalf("authenticated favorite leaked into local scope: %v", anonIDs)
	}

	// Değişiklik kullanıcının TÜM cihazlarına gider, client'a değil
	events := hub.eventsFor("user:" + user.ID)
	if len(events) != 1 || events[0].Op != ws.OpFavoritesUpdate {
		t.Fatalf("expected one favorites update to user, got %+v", events)
	}
}

func TestFavoritesMigrateLocal(t *testing.T) {
	svc, users, _ := newFavoritesFixture(t)
	ctx := context.Background()
	user := newFavoritesUser(t, users)

	anon := Identity{ClientID: "client-1"}
	for _, stationID := range []string{"st-1", "st-2", "st-3"} {
		if err := svc.Add(ctx, anon, stationID); err != nil {
			t.Fatalf("add local: %v", err)
		}
	}

	// Hesapta zaten olan kayıt migration'ı bozmaz (idempotent Add)
	authed := Identity{ClientID: "client-1", UserID: user.ID}
	if err := svc.Add(ctx, authed, "st-2"); err != nil {
		t.Fatalf("pre-existing remote favorite: %v", err)
	}

	if err := svc.MigrateLocal(ctx, authed); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ids, err := svc.List(ctx, authed)
	if err != nil {
		t.Fatalf("list after migrate: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 favorites after migration, got %v", ids)
	}

	// Local store temizlenmiş olmalı
	localIDs, err := svc.List(ctx, anon)
	if err != nil {
		t.Fatalf("local list after migrate: %v", err)
	}
	if len(localIDs) != 0 {
		t.Fatalf("local store should be cleared after migration, got %v", localIDs)
	}

	// İkinci migration boş liste taşır — güvenli no-op
	if err := svc.MigrateLocal(ctx, authed); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestFavoritesMigrateLocalIsAtomic(t *testing.T) {
	db := newTestDB(t)
	local, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	hub := &recordingPublisher{}
	svc := NewFavoritesService(db.Conn, repository.NewSQLiteFavoriteRepo(db.Conn), local, hub)
	users := repository.NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()
	user := newFavoritesUser(t, users)

	anon := Identity{ClientID: "client-1"}
	for _, stationID := range []string{"st-1", "st-2", "st-3"} {
		if err := svc.Add(ctx, anon, stationID); err != nil {
			t.Fatalf("add local: %v", err)
		}
	}

	// Taşımanın ORTASINDA patlayan bir INSERT simüle ediyoruz: st-1
	// yazıldıktan sonra st-2 trigger'a takılır. RAISE(ABORT) statement'ın
	// OR IGNORE'unu ezer — hata transaction'a kadar yükselir.
	_, err = db.Conn.ExecContext(ctx, `
		CREATE TRIGGER reject_second_station BEFORE INSERT ON favorites
		WHEN NEW.station_id = 'st-2'
		BEGIN SELECT RAISE(ABORT, 'simulated failure'); END`)
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	authed := Identity{ClientID: "client-1", UserID: user.ID}
	if err := svc.MigrateLocal(ctx, authed); err == nil {
		t.Fatal("expected migration to fail")
	}

	// ROLLBACK: st-1 dahil hiçbir kayıt DB'ye yazılmamış olmalı
	remote, err := svc.List(ctx, authed)
	if err != nil {
		t.Fatalf("remote list: %v", err)
	}
	if len(remote) != 0 {
		t.Fatalf("failed migration must not leave partial favorites, got %v", remote)
	}

	// Local store el değmemiş kalır — taşıma tekrar denenebilir
	localIDs, err := svc.List(ctx, anon)
	if err != nil {
		t.Fatalf("local list: %v", err)
	}
	if len(localIDs) != 3 {
		t.Fatalf("local store must survive a failed migration, got %v", localIDs)
	}

	// Hata kaynağı ortadan kalkınca aynı taşıma baştan sona çalışır
	if _, err := db.Conn.ExecContext(ctx, `DROP TRIGGER reject_second_station`); err != nil {
		t.Fatalf("drop trigger: %v", err)
	}
	if err := svc.MigrateLocal(ctx, authed); err != nil {
		t.Fatalf("retry migrate: %v", err)
	}

	remote, err = svc.List(ctx, authed)
	if err != nil {
		t.Fatalf("remote list after retry: %v", err)
	}
	if len(remote) != 3 {
		t.Fatalf("expected 3 favorites after retry, got %v", remote)
	}
}

func TestFavoritesObserver(t *testing.T) {
	svc, _, _ := newFavoritesFixture(t)
	ctx := context.Background()

	var gotOwner string
	var gotIDs []string
	svc.Subscribe(func(owner string, stationIDs []string) {
		gotOwner = owner
		gotIDs = stationIDs
	})

	anon := Identity{ClientID: "client-1"}
	if err := svc.Add(ctx, anon, "st-1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	if gotOwner != "client-1" {
		t.Fatalf("observer owner should be the client id, got %q", gotOwner)
	}
	if len(gotIDs) != 1 || gotIDs[0] != "st-1" {
		t.Fatalf("observer should receive the committed list, got %v", gotIDs)
	}
}

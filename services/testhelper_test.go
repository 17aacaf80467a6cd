package services

import (
	"io/fs"
	"path/filepath"
	"sync"
	"testing"

	"github.com/akinalp/dalga/database"
	"github.com/akinalp/dalga/ws"
)

// newTestDB, migration'ları uygulanmış geçici bir SQLite açar.
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

// recordingPublisher, ws.EventPublisher'ın test implementasyonu.
// Gönderilen event'leri saklar — service'ler publish'i bazen ayrı
// goroutine'de yaptığı için mutex ile korunur.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	target string // "all", "user:x", "client:x", "station:x"
	event  ws.Event
}

func (p *recordingPublisher) BroadcastToAll(event ws.Event) {
	p.record("all", event)
}

func (p *recordingPublisher) BroadcastToUser(userID string, event ws.Event) {
	p.record("user:"+userID, event)
}

func (p *recordingPublisher) BroadcastToClient(clientID string, event ws.Event) {
	p.record("client:"+clientID, event)
}

func (p *recordingPublisher) BroadcastToStation(stationID string, event ws.Event) {
	p.record("station:"+stationID, event)
}

func (p *recordingPublisher) record(target string, event ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{target: target, event: event})
}

func (p *recordingPublisher) eventsFor(target string) []ws.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []ws.Event
	for _, pe := range p.events {
		if pe.target == target {
			out = append(out, pe.event)
		}
	}
	return out
}

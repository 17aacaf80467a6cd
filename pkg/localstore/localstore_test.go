package localstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadMissingClientIsEmpty(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ids, err := store.Read("never-seen")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty list for unknown client, got %v", ids)
	}
}

func TestWriteReadClear(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := store.Write("client-1", []string{"st-1", "st-2"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	ids, err := store.Read("client-1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(ids) != 2 || ids[0] != "st-1" || ids[1] != "st-2" {
		t.Fatalf("unexpected list: %v", ids)
	}

	if err := store.Clear("client-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	ids, err = store.Read("client-1")
	if err != nil {
		t.Fatalf("read after clear: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty list after clear, got %v", ids)
	}

	// Olmayan dosyayı temizlemek no-op
	if err := store.Clear("client-1"); err != nil {
		t.Fatalf("second clear should be a no-op: %v", err)
	}
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "client-1.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	ids, err := store.Read("client-1")
	if err != nil {
		t.Fatalf("corrupt file should not be an error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty list for corrupt file, got %v", ids)
	}
}

func TestPathTraversalRejected(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for _, id := range []string{"", "../escape", "a/b", `a\b`} {
		if _, err := store.Read(id); err == nil {
			t.Fatalf("client id %q should be rejected", id)
		}
	}
}

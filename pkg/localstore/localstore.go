// Package localstore — anonim kullanıcıların favori listeleri için
// dosya bazlı key-value store.
//
// Browser tarafında anonim favoriler localStorage'da tek bir JSON
// array key'inde yaşar. Sunucu tarafındaki karşılığı bu paket:
// her anonim client id için data dizini altında `{clientID}.json`
// dosyası tutulur, içeriği favori istasyon ID'lerinin JSON array'idir.
//
// Kullanıcı login olduğunda FavoritesService bu dosyayı okur, kayıtları
// SQLite'a taşır ve dosyayı siler (one-time migration).
//
// Concurrency: tek process içinde sync.Mutex ile korunur. Aynı client id
// için eş zamanlı migration ayrıca guard edilmez — SQLite'taki
// UNIQUE constraint tek backstop'tur.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store, dizin bazlı anonim favori store'u.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New, store'u oluşturur ve dizinin var olduğundan emin olur.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create local store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Read, client'ın favori ID listesini döner. Dosya yoksa boş liste döner
// (hata değil — yeni client'ın henüz favorisi yoktur).
func (s *Store) Read(clientID string) ([]string, error) {
	path, err := s.path(clientID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read local favorites: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		// Bozuk dosya — boş liste ile devam et, bir sonraki Write düzeltir.
		return []string{}, nil
	}
	return ids, nil
}

// Write, client'ın favori ID listesini tek JSON array olarak yazar.
func (s *Store) Write(clientID string, ids []string) error {
	path, err := s.path(clientID)
	if err != nil {
		return err
	}

	if ids == nil {
		ids = []string{}
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal local favorites: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write local favorites: %w", err)
	}
	return nil
}

// Clear, client'ın dosyasını siler (migration sonrası temizlik).
// Dosya zaten yoksa no-op.
func (s *Store) Clear(clientID string) error {
	path, err := s.path(clientID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear local favorites: %w", err)
	}
	return nil
}

// path, client id'den dosya yolunu üretir.
// Path traversal koruması: id'de path separator veya ".." kabul edilmez.
func (s *Store) path(clientID string) (string, error) {
	if clientID == "" ||
		strings.ContainsAny(clientID, `/\`) ||
		strings.Contains(clientID, "..") {
		return "", fmt.Errorf("invalid client id: %q", clientID)
	}
	return filepath.Join(s.dir, clientID+".json"), nil
}

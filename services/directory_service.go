package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/pkg/cache"
	"github.com/akinalp/dalga/repository"
)

// DirectoryClient, harici radio-browser API'sinin service katmanındaki görünümü.
//
// radiobrowser.Client bu interface'i karşılar. Testlerde httptest'e bağlı
// gerçek client yerine mock kullanılabilsin diye concrete tip yerine
// interface'e bağımlıyız (Dependency Inversion).
type DirectoryClient interface {
	Countries(ctx context.Context) ([]models.NameTag, error)
	Languages(ctx context.Context) ([]models.NameTag, error)
	Tags(ctx context.Context) ([]models.NameTag, error)
	StationsByCountry(ctx context.Context, country string) ([]models.Station, error)
	StationsByLanguage(ctx context.Context, language string) ([]models.Station, error)
	StationsByTag(ctx context.Context, tag string) ([]models.Station, error)
	Search(ctx context.Context, name string) ([]models.Station, error)
	StationByUUID(ctx context.Context, uuid string) (*models.Station, error)
	TopVote(ctx context.Context, limit int) ([]models.Station, error)
	TopClick(ctx context.Context, limit int) ([]models.Station, error)
	Click(ctx context.Context, uuid string) error
}

// DirectoryService, birleşik istasyon dizinini sunar.
//
// Her liste operasyonu İKİ kaynağı birleştirir:
//  1. Harici radio-browser API'si (otorite kaynak)
//  2. Approved öneri tablosu (yerel katkılar — sponsored)
//
// Hata asimetrisi bilinçlidir: harici kaynak hatası operasyonu düşürür
// (ErrUpstream), yerel kaynak hatası ise sadece loglanır ve liste harici
// sonuçlarla döner. Yerel DB'nin bozulması dizini karartmamalı.
type DirectoryService interface {
	ListByCountry(ctx context.Context, country string) ([]models.Station, error)
	ListByLanguage(ctx context.Context, language string) ([]models.Station, error)
	ListByTag(ctx context.Context, tag string) ([]models.Station, error)
	Search(ctx context.Context, name string) ([]models.Station, error)
	GetStation(ctx context.Context, id string) (*models.Station, error)
	Countries(ctx context.Context) ([]models.NameTag, error)
	Languages(ctx context.Context) ([]models.NameTag, error)
	Tags(ctx context.Context) ([]models.NameTag, error)
	TopVote(ctx context.Context, limit int) ([]models.Station, error)
	TopClick(ctx context.Context, limit int) ([]models.Station, error)
	// RegisterClick, "bu istasyon çalındı" sinyalini harici API'ye iletir.
	// Sadece harici istasyonlar için anlamlıdır — yerel id'lerde no-op.
	RegisterClick(ctx context.Context, stationID string)
	// InvalidateCache, approve sonrası liste cache'ini temizler —
	// yeni sponsored istasyon TTL beklemeden görünür olur.
	InvalidateCache()
}

// rankingLimit, topvote/topclick listelerinin varsayılan boyutu.
const rankingLimit = 50

type directoryService struct {
	client         DirectoryClient
	suggestionRepo repository.SuggestionRepository

	// stationCache: sorgu anahtarı → birleşik liste.
	// radio-browser verisi yavaş değişir; 5 dakikalık TTL hem API'ye
	// nazik davranır hem de bayatlığı kabul edilebilir tutar.
	stationCache *cache.TTLCache[string, []models.Station]
	metaCache    *cache.TTLCache[string, []models.NameTag]
}

// NewDirectoryService, constructor.
func NewDirectoryService(client DirectoryClient, suggestionRepo repository.SuggestionRepository) DirectoryService {
	return &directoryService{
		client:         client,
		suggestionRepo: suggestionRepo,
		stationCache:   cache.New[string, []models.Station](5*time.Minute, time.Minute),
		metaCache:      cache.New[string, []models.NameTag](5*time.Minute, time.Minute),
	}
}

func (s *directoryService) ListByCountry(ctx context.Context, country string) ([]models.Station, error) {
	return s.merged(ctx, "country:"+strings.ToLower(country),
		func() ([]models.Station, error) { return s.client.StationsByCountry(ctx, country) },
		func() ([]models.Suggestion, error) { return s.suggestionRepo.GetApprovedByCountry(ctx, country) },
	)
}

func (s *directoryService) ListByLanguage(ctx context.Context, language string) ([]models.Station, error) {
	return s.merged(ctx, "language:"+strings.ToLower(language),
		func() ([]models.Station, error) { return s.client.StationsByLanguage(ctx, language) },
		func() ([]models.Suggestion, error) { return s.suggestionRepo.GetApprovedByLanguage(ctx, language) },
	)
}

func (s *directoryService) ListByTag(ctx context.Context, tag string) ([]models.Station, error) {
	return s.merged(ctx, "tag:"+strings.ToLower(tag),
		func() ([]models.Station, error) { return s.client.StationsByTag(ctx, tag) },
		func() ([]models.Suggestion, error) { return s.suggestionRepo.GetApprovedByTag(ctx, tag) },
	)
}

func (s *directoryService) Search(ctx context.Context, name string) ([]models.Station, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: search term is required", pkg.ErrBadRequest)
	}
	// Arama sonuçları cache'lenmez — anahtar uzayı sınırsız
	return s.mergeSources(ctx,
		func() ([]models.Station, error) { return s.client.Search(ctx, name) },
		func() ([]models.Suggestion, error) { return s.suggestionRepo.SearchApprovedByName(ctx, name) },
	)
}

// GetStation, tek istasyonu çözer: önce harici API, bulunamazsa approved
// öneriler. Playback'in istasyon doğrulaması buradan geçer.
func (s *directoryService) GetStation(ctx context.Context, id string) (*models.Station, error) {
	station, err := s.client.StationByUUID(ctx, id)
	if err == nil {
		return station, nil
	}
	if !errors.Is(err, pkg.ErrNotFound) {
		return nil, err
	}

	suggestion, err := s.suggestionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if suggestion.Status != models.SuggestionApproved {
		// Pending/rejected öneri public yüzeyde yok sayılır
		return nil, pkg.ErrNotFound
	}

	st := suggestion.ToStation()
	return &st, nil
}

func (s *directoryService) Countries(ctx context.Context) ([]models.NameTag, error) {
	return s.meta(ctx, "countries", s.client.Countries)
}

func (s *directoryService) Languages(ctx context.Context) ([]models.NameTag, error) {
	return s.meta(ctx, "languages", s.client.Languages)
}

func (s *directoryService) Tags(ctx context.Context) ([]models.NameTag, error) {
	return s.meta(ctx, "tags", s.client.Tags)
}

// TopVote / TopClick sıralamaları saf harici veridir — yerel katkılar
// bu listelere karışmaz (oyları ayrı bir eksende sayılır).
func (s *directoryService) TopVote(ctx context.Context, limit int) ([]models.Station, error) {
	if limit <= 0 || limit > rankingLimit {
		limit = rankingLimit
	}
	key := fmt.Sprintf("topvote:%d", limit)
	if cached, ok := s.stationCache.Get(key); ok {
		return cached, nil
	}

	stations, err := s.client.TopVote(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.stationCache.Set(key, stations)
	return stations, nil
}

func (s *directoryService) TopClick(ctx context.Context, limit int) ([]models.Station, error) {
	if limit <= 0 || limit > rankingLimit {
		limit = rankingLimit
	}
	key := fmt.Sprintf("topclick:%d", limit)
	if cached, ok := s.stationCache.Get(key); ok {
		return cached, nil
	}

	stations, err := s.client.TopClick(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.stationCache.Set(key, stations)
	return stations, nil
}

// RegisterClick, fire-and-forget click ping'i.
// Hata playback'i asla etkilemez — sadece loglanır.
func (s *directoryService) RegisterClick(ctx context.Context, stationID string) {
	if err := s.client.Click(ctx, stationID); err != nil {
		log.Printf("[directory] click ping failed for station %s: %v", stationID, err)
	}
}

func (s *directoryService) InvalidateCache() {
	s.stationCache.Clear()
}

// ─── Private Helpers ───

// merged, cache'li liste operasyonlarının ortak yolu.
func (s *directoryService) merged(
	ctx context.Context,
	cacheKey string,
	external func() ([]models.Station, error),
	internal func() ([]models.Suggestion, error),
) ([]models.Station, error) {
	if cached, ok := s.stationCache.Get(cacheKey); ok {
		return cached, nil
	}

	stations, err := s.mergeSources(ctx, external, internal)
	if err != nil {
		return nil, err
	}

	s.stationCache.Set(cacheKey, stations)
	return stations, nil
}

// mergeSources, harici + yerel kaynakları tek listede birleştirir.
//
// Dedup: case-insensitive isim eşleşmesi. Harici liste ÖNCE yazıldığı
// için isim çakışmasında harici kayıt kazanır — otorite kaynak odur.
// Aynı istasyonun farklı yazımları ("Jazz FM" / "JazzFM") yakalanmaz;
// bu best-effort bir dedup'tır.
func (s *directoryService) mergeSources(
	ctx context.Context,
	external func() ([]models.Station, error),
	internal func() ([]models.Suggestion, error),
) ([]models.Station, error) {
	stations, err := external()
	if err != nil {
		return nil, err // ErrUpstream — harici kaynak olmadan dizin yok
	}

	seen := make(map[string]bool, len(stations))
	for i := range stations {
		seen[strings.ToLower(stations[i].Name)] = true
	}

	suggestions, err := internal()
	if err != nil {
		// Yerel kaynak hatası dizini düşürmez — degrade et, logla
		log.Printf("[directory] local suggestions unavailable, serving external only: %v", err)
		return stations, nil
	}

	for i := range suggestions {
		st := suggestions[i].ToStation()
		key := strings.ToLower(st.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		stations = append(stations, st)
	}

	return stations, nil
}

func (s *directoryService) meta(ctx context.Context, key string, fetch func(ctx context.Context) ([]models.NameTag, error)) ([]models.NameTag, error) {
	if cached, ok := s.metaCache.Get(key); ok {
		return cached, nil
	}

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.metaCache.Set(key, items)
	return items, nil
}

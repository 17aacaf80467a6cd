package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/akinalp/dalga/database"
	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/pkg/localstore"
	"github.com/akinalp/dalga/repository"
	"github.com/akinalp/dalga/ws"
)

// Identity, bir favori isteğinin sahibini tanımlar.
//
// ClientID her zaman doludur (tarayıcı kimliği). UserID sadece
// authenticated isteklerde doludur. Hangi scope'un kullanılacağını
// bu ayrım belirler — caller if/else yazmaz, service seçer.
type Identity struct {
	ClientID string
	UserID   string
}

// Authenticated, kimliğin bir hesaba bağlı olup olmadığını söyler.
func (id Identity) Authenticated() bool {
	return id.UserID != ""
}

// ownerKey, observer bildirimlerinde ve ws hedeflemesinde kullanılan anahtar.
func (id Identity) ownerKey() string {
	if id.Authenticated() {
		return id.UserID
	}
	return id.ClientID
}

// FavoritesObserver, favori listesi her değiştiğinde çağrılır.
// owner: Identity.ownerKey() — userID veya clientID.
type FavoritesObserver func(owner string, stationIDs []string)

// FavoritesService, favori yönetimini auth durumundan bağımsız tek
// yüzeyde toplar.
//
// İki scope vardır ve API'leri özdeştir:
//   - local: anonim favoriler, pkg/localstore'da client id altında (DB YOK)
//   - remote: authenticated favoriler, favorites tablosunda
//
// Caller hangi scope'ta olduğunu bilmek zorunda değildir — Identity'ye
// bakarak service karar verir. Login sonrası MigrateLocal, local listeyi
// bir kereliğine hesaba taşır.
type FavoritesService interface {
	List(ctx context.Context, id Identity) ([]string, error)
	Add(ctx context.Context, id Identity, stationID string) error
	Remove(ctx context.Context, id Identity, stationID string) error
	IsFavorite(ctx context.Context, id Identity, stationID string) (bool, error)
	// MigrateLocal, client'ın anonim favorilerini hesaba taşır ve local
	// store'u temizler. Login/register sonrası frontend bir kez çağırır.
	// DB'de zaten olan kayıtlar sessizce atlanır (idempotent Add).
	MigrateLocal(ctx context.Context, id Identity) error
	// Subscribe, favori değişikliklerine in-process observer ekler.
	// Observer'lar değişiklik commit edildikten SONRA çağrılır.
	Subscribe(observer FavoritesObserver)
}

// favoriteScope, iki saklama hedefinin ortak yüzeyi.
type favoriteScope interface {
	list(ctx context.Context) ([]string, error)
	add(ctx context.Context, stationID string) error
	remove(ctx context.Context, stationID string) error
}

type favoritesService struct {
	db    *sql.DB // MigrateLocal'da WithTx için — taşıma atomik çalışır
	repo  repository.FavoriteRepository
	local *localstore.Store
	hub   ws.EventPublisher

	obsMu     sync.RWMutex
	observers []FavoritesObserver
}

// NewFavoritesService, constructor.
//
// db: MigrateLocal'ın tüm INSERT'lerini tek transaction'da çalıştırmak
// için doğrudan *sql.DB gerekir. Diğer operasyonlar repo üzerinden gider.
func NewFavoritesService(db *sql.DB, repo repository.FavoriteRepository, local *localstore.Store, hub ws.EventPublisher) FavoritesService {
	return &favoritesService{
		db:    db,
		repo:  repo,
		local: local,
		hub:   hub,
	}
}

func (s *favoritesService) List(ctx context.Context, id Identity) ([]string, error) {
	return s.scope(id).list(ctx)
}

func (s *favoritesService) Add(ctx context.Context, id Identity, stationID string) error {
	if stationID == "" {
		return fmt.Errorf("%w: station id is required", pkg.ErrBadRequest)
	}

	if err := s.scope(id).add(ctx, stationID); err != nil {
		return err
	}

	s.notify(ctx, id)
	return nil
}

func (s *favoritesService) Remove(ctx context.Context, id Identity, stationID string) error {
	if err := s.scope(id).remove(ctx, stationID); err != nil {
		return err
	}

	s.notify(ctx, id)
	return nil
}

func (s *favoritesService) IsFavorite(ctx context.Context, id Identity, stationID string) (bool, error) {
	if id.Authenticated() {
		return s.repo.Exists(ctx, id.UserID, stationID)
	}

	ids, err := s.local.Read(id.ClientID)
	if err != nil {
		return false, err
	}
	for _, existing := range ids {
		if existing == stationID {
			return true, nil
		}
	}
	return false, nil
}

// MigrateLocal, anonim favorileri hesaba taşır.
//
// Tekrar çağrılmaya karşı korumasızdır ama güvenlidir: ilk çağrı local
// store'u temizlediği için ikinci çağrı boş liste taşır, DB tarafında da
// Add idempotenttir. Aynı istasyon iki scope'ta da varsa tek kayıt kalır.
func (s *favoritesService) MigrateLocal(ctx context.Context, id Identity) error {
	if !id.Authenticated() {
		return fmt.Errorf("%w: migration requires an account", pkg.ErrUnauthorized)
	}

	ids, err := s.local.Read(id.ClientID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	// Tüm ID'ler tek transaction'da yazılır: biri patlarsa hiçbiri
	// kalmaz, local store da temizlenmez — taşıma yarım kalmaz.
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txRepo := repository.NewSQLiteFavoriteRepo(tx)
		for _, stationID := range ids {
			if err := txRepo.Add(ctx, id.UserID, stationID); err != nil {
				return fmt.Errorf("failed to migrate favorite %s: %w", stationID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.local.Clear(id.ClientID); err != nil {
		return err
	}

	log.Printf("[favorites] migrated %d local favorites: client=%s user=%s", len(ids), id.ClientID, id.UserID)
	s.notify(ctx, id)
	return nil
}

func (s *favoritesService) Subscribe(observer FavoritesObserver) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, observer)
}

// ─── Private Helpers ───

func (s *favoritesService) scope(id Identity) favoriteScope {
	if id.Authenticated() {
		return &remoteScope{repo: s.repo, userID: id.UserID}
	}
	return &localScope{store: s.local, clientID: id.ClientID}
}

// notify, güncel listeyi observer'lara ve ws üzerinden sahibine iletir.
func (s *favoritesService) notify(ctx context.Context, id Identity) {
	ids, err := s.scope(id).list(ctx)
	if err != nil {
		log.Printf("[favorites] failed to read list for notify: %v", err)
		return
	}

	s.obsMu.RLock()
	observers := s.observers
	s.obsMu.RUnlock()

	for _, observer := range observers {
		observer(id.ownerKey(), ids)
	}

	event := ws.Event{
		Op:   ws.OpFavoritesUpdate,
		Data: ws.FavoritesUpdateData{StationIDs: ids},
	}
	if id.Authenticated() {
		// Kullanıcının tüm cihazları senkronize kalır
		s.hub.BroadcastToUser(id.UserID, event)
	} else {
		s.hub.BroadcastToClient(id.ClientID, event)
	}
}

// ─── Scope Implementasyonları ───

// remoteScope, authenticated favoriler — favorites tablosu.
type remoteScope struct {
	repo   repository.FavoriteRepository
	userID string
}

func (s *remoteScope) list(ctx context.Context) ([]string, error) {
	favorites, err := s.repo.List(ctx, s.userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.StationID)
	}
	return ids, nil
}

func (s *remoteScope) add(ctx context.Context, stationID string) error {
	return s.repo.Add(ctx, s.userID, stationID)
}

func (s *remoteScope) remove(ctx context.Context, stationID string) error {
	err := s.repo.Remove(ctx, s.userID, stationID)
	if errors.Is(err, pkg.ErrNotFound) {
		return nil // remove idempotenttir — olmayan kaydı silmek no-op
	}
	return err
}

// localScope, anonim favoriler — pkg/localstore, DB'ye hiç uğramaz.
type localScope struct {
	store    *localstore.Store
	clientID string
}

func (s *localScope) list(ctx context.Context) ([]string, error) {
	return s.store.Read(s.clientID)
}

func (s *localScope) add(ctx context.Context, stationID string) error {
	ids, err := s.store.Read(s.clientID)
	if err != nil {
		return err
	}

	for _, existing := range ids {
		if existing == stationID {
			return nil // duplicate ekleme no-op — remote scope ile aynı sözleşme
		}
	}

	return s.store.Write(s.clientID, append(ids, stationID))
}

func (s *localScope) remove(ctx context.Context, stationID string) error {
	ids, err := s.store.Read(s.clientID)
	if err != nil {
		return err
	}

	filtered := ids[:0]
	for _, existing := range ids {
		if existing != stationID {
			filtered = append(filtered, existing)
		}
	}

	return s.store.Write(s.clientID, filtered)
}

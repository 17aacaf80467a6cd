package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/ws"
)

// defaultVolume, yeni oturumların başlangıç ses seviyesi.
const defaultVolume = 0.7

// StreamProber, bir stream URL'inin çalınabilir olduğunu doğrular.
//
// Gerçek implementasyon HTTP GET atar; testler httptest sunucusuna
// karşı aynı prober'ı kullanır. Interface, probe'u beklemeden durum
// makinesini test edebilmek için de kapı bırakır.
type StreamProber interface {
	Probe(ctx context.Context, url string) error
}

// PlaybackService, her client'ın çalma oturumunu yöneten servistir.
//
// Oturum CLIENT'a aittir, kullanıcıya değil: anonim dinleyicinin de
// oturumu vardır. client id, tarayıcının kalıcı kimliğidir ve her
// istekte X-Client-ID header'ı ile gelir.
//
// Durum makinesi:
//
//	Idle → Loading → Playing ⇄ Paused
//	Loading başarısız → Idle (istasyon KORUNUR — retry edilebilsin)
//	StopPlayback → Idle (istasyon temizlenir)
//	PlayStation her durumda geçerlidir — önceki yükleme süpersede edilir
type PlaybackService interface {
	PlayStation(ctx context.Context, clientID, stationID string) (*models.PlaybackState, error)
	TogglePlayPause(ctx context.Context, clientID string) (*models.PlaybackState, error)
	SetVolume(ctx context.Context, clientID string, volume float64) (*models.PlaybackState, error)
	StopPlayback(ctx context.Context, clientID string) (*models.PlaybackState, error)
	GetState(ctx context.Context, clientID string) (*models.PlaybackState, error)
}

// session, tek bir client'ın oturum kaydı.
type session struct {
	state models.PlaybackState

	// generation: her PlayStation çağrısında artar. Probe dönerken
	// generation değişmişse sonuç süpersede edilmiştir ve yoksayılır —
	// hızlı istasyon değiştiren kullanıcıda geç dönen eski probe,
	// yeni oturum durumunu ezemez.
	generation int64
}

type playbackService struct {
	directory DirectoryService
	prober    StreamProber
	hub       ws.EventPublisher

	// sessions: clientID → session. RWMutex ile korunur —
	// GetState okuma ağırlıklıdır.
	mu       sync.RWMutex
	sessions map[string]*session
}

// NewPlaybackService, constructor.
func NewPlaybackService(directory DirectoryService, prober StreamProber, hub ws.EventPublisher) PlaybackService {
	return &playbackService{
		directory: directory,
		prober:    prober,
		hub:       hub,
		sessions:  make(map[string]*session),
	}
}

// PlayStation, istasyonu yükler ve çalmaya başlar.
//
// Akış:
//  1. İstasyonu dizinden çöz (bilinmeyen id → ErrNotFound)
//  2. Oturumu Loading'e geçir, generation'ı artır (önceki yükleme süpersede)
//  3. Stream'i probe et — bu çağrı bloklar ve TIMEOUT YOKTUR; asılı
//     kalan stream sadece bu isteği bloklar, iptal caller context'inden gelir
//  4. Başarı → Playing; hata → Idle ama CurrentStation KORUNUR
//
// Çalan bir oturumda aynı veya farklı istasyonla tekrar çağrılabilir —
// önceki istasyon implicit olarak durur.
func (s *playbackService) PlayStation(ctx context.Context, clientID, stationID string) (*models.PlaybackState, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: client id is required", pkg.ErrBadRequest)
	}

	station, err := s.directory.GetStation(ctx, stationID)
	if err != nil {
		return nil, err
	}

	// Loading'e geç
	s.mu.Lock()
	sess := s.sessionLocked(clientID)
	sess.generation++
	generation := sess.generation
	sess.state.CurrentStation = station
	sess.state.Status = models.PlaybackLoading
	sess.state.IsLoading = true
	sess.state.IsPlaying = false
	loadingState := sess.state
	s.mu.Unlock()

	s.publish(clientID, &loadingState)

	probeErr := s.prober.Probe(ctx, station.StreamURL())

	s.mu.Lock()
	if sess.generation != generation {
		// Süpersede edildi: biz probe'dayken yeni bir PlayStation geldi.
		// O çağrının sonucu geçerlidir — bizimki sessizce düşer.
		current := sess.state
		s.mu.Unlock()
		return &current, nil
	}

	sess.state.IsLoading = false
	if probeErr != nil {
		// İstasyon korunur — kullanıcı retry edebilir
		sess.state.Status = models.PlaybackIdle
		sess.state.IsPlaying = false
		failedState := sess.state
		s.mu.Unlock()

		s.publish(clientID, &failedState)
		log.Printf("[playback] stream load failed for client %s station %s: %v", clientID, stationID, probeErr)
		return &failedState, nil
	}

	sess.state.Status = models.PlaybackPlaying
	sess.state.IsPlaying = true
	playingState := sess.state
	s.mu.Unlock()

	s.publish(clientID, &playingState)

	// Popülerlik sayacı — fire-and-forget, playback'i asla bekletmez.
	// context.Background(): HTTP isteği bitince ctx iptal olur, ping
	// kendi yaşam süresinde tamamlanmalı.
	go s.directory.RegisterClick(context.Background(), station.ID)

	return &playingState, nil
}

// TogglePlayPause, Playing ⇄ Paused geçişi yapar.
// Yüklü istasyon yokken veya Loading sırasında anlamsızdır → ErrBadRequest.
func (s *playbackService) TogglePlayPause(ctx context.Context, clientID string) (*models.PlaybackState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(clientID)
	switch sess.state.Status {
	case models.PlaybackPlaying:
		sess.state.Status = models.PlaybackPaused
		sess.state.IsPlaying = false
	case models.PlaybackPaused:
		sess.state.Status = models.PlaybackPlaying
		sess.state.IsPlaying = true
	default:
		return nil, fmt.Errorf("%w: no station is loaded", pkg.ErrBadRequest)
	}

	state := sess.state
	go s.publish(clientID, &state)
	return &state, nil
}

// SetVolume, ses seviyesini ayarlar. Aralık dışı değerler hata DEĞİLDİR —
// [0,1]'e clamp'lenir. Volume, istasyon yüklü olmasa da ayarlanabilir ve
// istasyon değişimlerinde korunur.
func (s *playbackService) SetVolume(ctx context.Context, clientID string, volume float64) (*models.PlaybackState, error) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(clientID)
	sess.state.Volume = volume

	state := sess.state
	go s.publish(clientID, &state)
	return &state, nil
}

// StopPlayback, oturumu Idle'a döndürür ve istasyonu TEMİZLER.
// PlayStation hatasından farkı budur — stop bilinçli bir sıfırlamadır.
func (s *playbackService) StopPlayback(ctx context.Context, clientID string) (*models.PlaybackState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(clientID)
	sess.generation++ // devam eden bir yükleme varsa süpersede et
	sess.state.CurrentStation = nil
	sess.state.Status = models.PlaybackIdle
	sess.state.IsPlaying = false
	sess.state.IsLoading = false

	state := sess.state
	go s.publish(clientID, &state)
	return &state, nil
}

// GetState, oturumun anlık görünümünü döner. Oturum yoksa oluşturmaz —
// taze default döner (Idle, volume 0.7).
func (s *playbackService) GetState(ctx context.Context, clientID string) (*models.PlaybackState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess, ok := s.sessions[clientID]; ok {
		state := sess.state
		return &state, nil
	}

	return &models.PlaybackState{
		Status: models.PlaybackIdle,
		Volume: defaultVolume,
	}, nil
}

// ─── Private Helpers ───

// sessionLocked, oturumu döner — yoksa default değerlerle oluşturur.
// Caller s.mu'yu tutmak ZORUNDA.
func (s *playbackService) sessionLocked(clientID string) *session {
	sess, ok := s.sessions[clientID]
	if !ok {
		sess = &session{
			state: models.PlaybackState{
				Status: models.PlaybackIdle,
				Volume: defaultVolume,
			},
		}
		s.sessions[clientID] = sess
	}
	return sess
}

// publish, oturum durumunu client'ın tüm bağlantılarına iletir.
// Aynı client_id'nin ikinci tab'ı da güncel durumu görür.
func (s *playbackService) publish(clientID string, state *models.PlaybackState) {
	s.hub.BroadcastToClient(clientID, ws.Event{
		Op:   ws.OpPlaybackUpdate,
		Data: state,
	})
}

// ─── HTTP Stream Prober ───

// httpProber, StreamProber'ın gerçek implementasyonu.
//
// Stream'e GET atar, status ve Content-Type'a bakar, body'yi OKUMAZ.
// Radyo stream'leri sonsuzdur — body okumak asla bitmez. Timeout yok;
// iptal sadece caller context'inden gelir.
type httpProber struct {
	client *http.Client
}

// NewHTTPProber, constructor.
func NewHTTPProber() StreamProber {
	return &httpProber{client: &http.Client{}}
}

func (p *httpProber) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("invalid stream url: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("stream unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	// Icecast/Shoutcast "audio/mpeg", "audio/aac" vb. döner.
	// "application/ogg" de geçerli bir radyo içeriğidir.
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" &&
		!strings.HasPrefix(contentType, "audio/") &&
		!strings.HasPrefix(contentType, "application/ogg") {
		return fmt.Errorf("not an audio stream: content-type %q", contentType)
	}

	return nil
}

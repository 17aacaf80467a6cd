package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
)

// fakeDirectory, DirectoryService'in test implementasyonu.
// stations map'inde olmayan her id ErrNotFound döner.
type fakeDirectory struct {
	stations map[string]*models.Station
	clicks   atomic.Int64
}

func (d *fakeDirectory) GetStation(ctx context.Context, id string) (*models.Station, error) {
	station, ok := d.stations[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	return station, nil
}

func (d *fakeDirectory) RegisterClick(ctx context.Context, stationID string) {
	d.clicks.Add(1)
}

func (d *fakeDirectory) ListByCountry(ctx context.Context, country string) ([]models.Station, error) {
	return nil, nil
}
func (d *fakeDirectory) ListByLanguage(ctx context.Context, language string) ([]models.Station, error) {
	return nil, nil
}
func (d *fakeDirectory) ListByTag(ctx context.Context, tag string) ([]models.Station, error) {
	return nil, nil
}
func (d *fakeDirectory) Search(ctx context.Context, name string) ([]models.Station, error) {
	return nil, nil
}
func (d *fakeDirectory) Countries(ctx context.Context) ([]models.NameTag, error) { return nil, nil }
func (d *fakeDirectory) Languages(ctx context.Context) ([]models.NameTag, error) { return nil, nil }
func (d *fakeDirectory) Tags(ctx context.Context) ([]models.NameTag, error)      { return nil, nil }
func (d *fakeDirectory) TopVote(ctx context.Context, limit int) ([]models.Station, error) {
	return nil, nil
}
func (d *fakeDirectory) TopClick(ctx context.Context, limit int) ([]models.Station, error) {
	return nil, nil
}
func (d *fakeDirectory) InvalidateCache() {}

// fakeProber, URL başına davranış tanımlanabilen StreamProber.
type fakeProber struct {
	mu     sync.Mutex
	errs   map[string]error         // URL → probe sonucu
	blocks map[string]chan struct{} // URL → kanal kapanana kadar blokla
}

func (p *fakeProber) Probe(ctx context.Context, url string) error {
	p.mu.Lock()
	block := p.blocks[url]
	err := p.errs[url]
	p.mu.Unlock()

	if block != nil {
		<-block
	}
	return err
}

func newPlaybackFixture(stations ...*models.Station) (PlaybackService, *fakeDirectory, *fakeProber, *recordingPublisher) {
	directory := &fakeDirectory{stations: make(map[string]*models.Station)}
	for _, s := range stations {
		directory.stations[s.ID] = s
	}
	prober := &fakeProber{errs: make(map[string]error), blocks: make(map[string]chan struct{})}
	hub := &recordingPublisher{}
	return NewPlaybackService(directory, prober, hub), directory, prober, hub
}

func TestPlayStationSuccess(t *testing.T) {
	station := &models.Station{ID: "st-1", Name: "Jazz FM", URL: "http://stream/jazz"}
	svc, directory, _, hub := newPlaybackFixture(station)

	state, err := svc.PlayStation(context.Background(), "client-1", "st-1")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if state.Status != models.PlaybackPlaying || !state.IsPlaying {
		t.Fatalf("expected playing state, got %+v", state)
	}
	if state.CurrentStation == nil || state.CurrentStation.ID != "st-1" {
		t.Fatalf("expected current station st-1, got %+v", state.CurrentStation)
	}
	if state.Volume != 0.7 {
		t.Fatalf("expected default volume 0.7, got %f", state.Volume)
	}

	// Loading + Playing — en az iki durum yayını olmalı
	events := hub.eventsFor("client:client-1")
	if len(events) < 2 {
		t.Fatalf("expected loading+playing broadcasts, got %d events", len(events))
	}

	// Click ping ayrı goroutine'de gider — kısa bir süre tanı
	deadline := time.After(2 * time.Second)
	for directory.clicks.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected click ping after successful play")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestPlayStationUnknownID(t *testing.T) {
	svc, _, _, _ := newPlaybackFixture()

	_, err := svc.PlayStation(context.Background(), "client-1", "missing")
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestPlayStationProbeFailureKeepsStation(t *testing.T) {
	station := &models.Station{ID: "st-1", Name: "Jazz FM", URL: "http://stream/dead"}
	svc, directory, prober, _ := newPlaybackFixture(station)
	prober.errs[station.URL] = fmt.Errorf("connection refused")

	state, err := svc.PlayStation(context.Background(), "client-1", "st-1")
	if err != nil {
		t.Fatalf("probe failure should not be a request error: %v", err)
	}
	if state.Status != models.PlaybackIdle || state.IsPlaying || state.IsLoading {
		t.Fatalf("expected idle state after probe failure, got %+v", state)
	}
	// İstasyon KORUNUR — kullanıcı retry edebilsin
	if state.CurrentStation == nil || state.CurrentStation.ID != "st-1" {
		t.Fatalf("station should be kept after failure, got %+v", state.CurrentStation)
	}
	if directory.clicks.Load() != 0 {
		t.Fatal("failed play must not register a click")
	}
}

func TestPlayStationSupersede(t *testing.T) {
	slow := &models.Station{ID: "st-slow", Name: "Slow FM", URL: "http://stream/slow"}
	fast := &models.Station{ID: "st-fast", Name: "Fast FM", URL: "http://stream/fast"}
	svc, _, prober, _ := newPlaybackFixture(slow, fast)

	release := make(chan struct{})
	prober.blocks[slow.URL] = release

	done := make(chan *models.PlaybackState, 1)
	go func() {
		state, _ := svc.PlayStation(context.Background(), "client-1", "st-slow")
		done <- state
	}()

	// İlk probe Loading'e geçene kadar bekle, sonra ikinci istasyonu başlat
	waitForStatus(t, svc, "client-1", models.PlaybackLoading)

	state, err := svc.PlayStation(context.Background(), "client-1", "st-fast")
	if err != nil {
		t.Fatalf("second play: %v", err)
	}
	if state.CurrentStation.ID != "st-fast" || state.Status != models.PlaybackPlaying {
		t.Fatalf("expected fast station playing, got %+v", state)
	}

	// Geciken probe dönsün — SÜPERSEDE edilmiştir, durumu ezemez
	close(release)
	staleState := <-done
	if staleState.CurrentStation.ID != "st-fast" {
		t.Fatalf("superseded play must return the winning state, got %+v", staleState.CurrentStation)
	}

	final, err := svc.GetState(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if final.CurrentStation.ID != "st-fast" || final.Status != models.PlaybackPlaying {
		t.Fatalf("stale probe overwrote session state: %+v", final)
	}
}

func TestTogglePlayPause(t *testing.T) {
	station := &models.Station{ID: "st-1", URL: "http://stream/jazz"}
	svc, _, _, _ := newPlaybackFixture(station)
	ctx := context.Background()

	// İstasyon yüklü değilken toggle anlamsız
	if _, err := svc.TogglePlayPause(ctx, "client-1"); !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest without a station, got: %v", err)
	}

	if _, err := svc.PlayStation(ctx, "client-1", "st-1"); err != nil {
		t.Fatalf("play: %v", err)
	}

	state, err := svc.TogglePlayPause(ctx, "client-1")
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if state.Status != models.PlaybackPaused || state.IsPlaying {
		t.Fatalf("expected paused, got %+v", state)
	}

	state, err = svc.TogglePlayPause(ctx, "client-1")
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if state.Status != models.PlaybackPlaying || !state.IsPlaying {
		t.Fatalf("expected playing, got %+v", state)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	svc, _, _, _ := newPlaybackFixture()
	ctx := context.Background()

	for _, tc := range []struct {
		in   float64
		want float64
	}{
		{0.5, 0.5},
		{-3, 0},
		{1.8, 1},
		{0, 0},
		{1, 1},
	} {
		state, err := svc.SetVolume(ctx, "client-1", tc.in)
		if err != nil {
			t.Fatalf("set volume %f: %v", tc.in, err)
		}
		if state.Volume != tc.want {
			t.Fatalf("volume %f should clamp to %f, got %f", tc.in, tc.want, state.Volume)
		}
	}
}

func TestStopClearsStation(t *testing.T) {
	station := &models.Station{ID: "st-1", URL: "http://stream/jazz"}
	svc, _, _, _ := newPlaybackFixture(station)
	ctx := context.Background()

	if _, err := svc.PlayStation(ctx, "client-1", "st-1"); err != nil {
		t.Fatalf("play: %v", err)
	}
	if _, err := svc.SetVolume(ctx, "client-1", 0.3); err != nil {
		t.Fatalf("set volume: %v", err)
	}

	state, err := svc.StopPlayback(ctx, "client-1")
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if state.CurrentStation != nil || state.Status != models.PlaybackIdle {
		t.Fatalf("stop should clear the station, got %+v", state)
	}
	// Volume istasyondan bağımsızdır — stop'ta korunur
	if state.Volume != 0.3 {
		t.Fatalf("volume should survive stop, got %f", state.Volume)
	}
}

func TestGetStateDefaultWithoutSession(t *testing.T) {
	svc, _, _, _ := newPlaybackFixture()

	state, err := svc.GetState(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.Status != models.PlaybackIdle || state.CurrentStation != nil || state.Volume != 0.7 {
		t.Fatalf("expected fresh default state, got %+v", state)
	}
}

func TestHTTPProber(t *testing.T) {
	for _, tc := range []struct {
		name        string
		status      int
		contentType string
		wantErr     bool
	}{
		{"mp3 stream", http.StatusOK, "audio/mpeg", false},
		{"ogg stream", http.StatusOK, "application/ogg", false},
		{"no content type", http.StatusOK, "", false},
		{"html page", http.StatusOK, "text/html", true},
		{"not found", http.StatusNotFound, "audio/mpeg", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.contentType != "" {
					w.Header().Set("Content-Type", tc.contentType)
				}
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			err := NewHTTPProber().Probe(context.Background(), srv.URL)
			if tc.wantErr && err == nil {
				t.Fatal("expected probe error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected probe error: %v", err)
			}
		})
	}
}

// waitForStatus, oturum beklenen duruma geçene kadar poll'lar.
func waitForStatus(t *testing.T, svc PlaybackService, clientID string, want models.PlaybackStatus) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		state, err := svc.GetState(context.Background(), clientID)
		if err != nil {
			t.Fatalf("get state: %v", err)
		}
		if state.Status == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for status %s, last %s", want, state.Status)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/services"
)

// PlaybackHandler, çalma oturumu endpoint'leri.
//
// Hepsi X-Client-ID header'ı gerektirir — oturum tarayıcıya aittir,
// hesaba değil. Auth header'ı olsa da olmasa da davranış aynıdır.
type PlaybackHandler struct {
	playback services.PlaybackService
}

// NewPlaybackHandler, constructor.
func NewPlaybackHandler(playback services.PlaybackService) *PlaybackHandler {
	return &PlaybackHandler{playback: playback}
}

// Play godoc
// POST /api/playback/play
// Body: { "station_id": "..." }
//
// Yükleme bitene kadar bloklar; dönen state ya Playing ya da
// Idle'dır (yükleme hatası — istasyon korunmuş halde).
func (h *PlaybackHandler) Play(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	var req struct {
		StationID string `json:"station_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StationID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "station_id is required")
		return
	}

	state, err := h.playback.PlayStation(r.Context(), clientID, req.StationID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, state)
}

// Toggle godoc
// POST /api/playback/toggle
func (h *PlaybackHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	state, err := h.playback.TogglePlayPause(r.Context(), clientID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, state)
}

// SetVolume godoc
// PUT /api/playback/volume
// Body: { "volume": 0.5 }
func (h *PlaybackHandler) SetVolume(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	var req struct {
		Volume float64 `json:"volume"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.playback.SetVolume(r.Context(), clientID, req.Volume)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, state)
}

// Stop godoc
// POST /api/playback/stop
func (h *PlaybackHandler) Stop(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	state, err := h.playback.StopPlayback(r.Context(), clientID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, state)
}

// GetState godoc
// GET /api/playback
func (h *PlaybackHandler) GetState(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	state, err := h.playback.GetState(r.Context(), clientID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, state)
}

func (h *PlaybackHandler) clientID(w http.ResponseWriter, r *http.Request) (string, bool) {
	clientID := clientIDFromHeader(r)
	if clientID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "valid X-Client-ID header is required")
		return "", false
	}
	return clientID, true
}

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/services"
)

// StationHandler, birleşik istasyon dizini endpoint'leri.
// Tamamı public — dizin gezinmek auth gerektirmez.
type StationHandler struct {
	directory services.DirectoryService
}

// NewStationHandler, constructor.
func NewStationHandler(directory services.DirectoryService) *StationHandler {
	return &StationHandler{directory: directory}
}

// ListByCountry godoc
// GET /api/stations/country/{country}
func (h *StationHandler) ListByCountry(w http.ResponseWriter, r *http.Request) {
	stations, err := h.directory.ListByCountry(r.Context(), r.PathValue("country"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, stations)
}

// ListByLanguage godoc
// GET /api/stations/language/{language}
func (h *StationHandler) ListByLanguage(w http.ResponseWriter, r *http.Request) {
	stations, err := h.directory.ListByLanguage(r.Context(), r.PathValue("language"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, stations)
}

// ListByTag godoc
// GET /api/stations/tag/{tag}
func (h *StationHandler) ListByTag(w http.ResponseWriter, r *http.Request) {
	stations, err := h.directory.ListByTag(r.Context(), r.PathValue("tag"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, stations)
}

// Search godoc
// GET /api/stations/search?q=jazz
func (h *StationHandler) Search(w http.ResponseWriter, r *http.Request) {
	stations, err := h.directory.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, stations)
}

// GetStation godoc
// GET /api/stations/{id}
func (h *StationHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	station, err := h.directory.GetStation(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, station)
}

// Countries godoc
// GET /api/meta/countries
func (h *StationHandler) Countries(w http.ResponseWriter, r *http.Request) {
	items, err := h.directory.Countries(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, items)
}

// Languages godoc
// GET /api/meta/languages
func (h *StationHandler) Languages(w http.ResponseWriter, r *http.Request) {
	items, err := h.directory.Languages(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, items)
}

// Tags godoc
// GET /api/meta/tags
func (h *StationHandler) Tags(w http.ResponseWriter, r *http.Request) {
	items, err := h.directory.Tags(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, items)
}

// TopVote godoc
// GET /api/stations/top/vote?limit=20
func (h *StationHandler) TopVote(w http.ResponseWriter, r *http.Request) {
	stations, err := h.directory.TopVote(r.Context(), parseLimit(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, stations)
}

// TopClick godoc
// GET /api/stations/top/click?limit=20
func (h *StationHandler) TopClick(w http.ResponseWriter, r *http.Request) {
	stations, err := h.directory.TopClick(r.Context(), parseLimit(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, stations)
}

// Click godoc
// POST /api/stations/{id}/click
// Harici API'nin click sayacını artırır; fire-and-forget olduğu için
// hata client'a dönmez, 204 ile kapatırız.
func (h *StationHandler) Click(w http.ResponseWriter, r *http.Request) {
	stationID := r.PathValue("id")
	if stationID == "" {
		pkg.Error(w, fmt.Errorf("%w: station id is required", pkg.ErrBadRequest))
		return
	}

	go h.directory.RegisterClick(context.Background(), stationID)
	w.WriteHeader(http.StatusNoContent)
}

// parseLimit, ?limit= parametresini okur. Geçersiz veya eksikse 0 döner —
// service kendi default'unu uygular.
func parseLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return limit
}

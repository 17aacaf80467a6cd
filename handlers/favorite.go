package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/services"
)

// FavoriteHandler, favori endpoint'leri.
//
// Tüm endpoint'ler Optional auth middleware'ının arkasındadır:
// anonim istekte favoriler client id altında local store'da, authenticated
// istekte hesabın DB kayıtlarında yaşar. Handler bu ayrımı BİLMEZ —
// identity() ile sahibi çıkarır, kararı service verir.
type FavoriteHandler struct {
	favorites services.FavoritesService
}

// NewFavoriteHandler, constructor.
func NewFavoriteHandler(favorites services.FavoritesService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// List godoc
// GET /api/favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	ids, err := h.favorites.List(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if ids == nil {
		ids = []string{} // JSON'da null yerine boş array
	}
	pkg.JSON(w, http.StatusOK, ids)
}

// Add godoc
// POST /api/favorites
// Body: { "station_id": "..." }
// Duplicate ekleme sessiz no-op'tur — yine 201 döner.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
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

	if err := h.favorites.Add(r.Context(), id, req.StationID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, map[string]string{"message": "favorite added"})
}

// Remove godoc
// DELETE /api/favorites/{stationId}
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.favorites.Remove(r.Context(), id, r.PathValue("stationId")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "favorite removed"})
}

// IsFavorite godoc
// GET /api/favorites/{stationId}
func (h *FavoriteHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	isFav, err := h.favorites.IsFavorite(r.Context(), id, r.PathValue("stationId"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]bool{"is_favorite": isFav})
}

func (h *FavoriteHandler) identity(w http.ResponseWriter, r *http.Request) (services.Identity, bool) {
	id := identity(r)
	if id.ClientID == "" && !id.Authenticated() {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "X-Client-ID header is required")
		return id, false
	}
	return id, true
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/services"
)

// ReactionHandler, istasyon like/dislike endpoint'leri.
// Sayaç okuma public, yazma authenticated.
type ReactionHandler struct {
	reactions services.ReactionService
}

// NewReactionHandler, constructor.
func NewReactionHandler(reactions services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactions: reactions}
}

// Get godoc
// GET /api/stations/{id}/reactions
//
// Optional auth: authenticated istekte kullanıcının kendi reaction'ı da
// döner ("my_reaction") — frontend butonu işaretli gösterir.
func (h *ReactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	stationID := r.PathValue("id")

	counts, err := h.reactions.GetCounts(r.Context(), stationID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	response := map[string]any{
		"likes":    counts.Likes,
		"dislikes": counts.Dislikes,
	}

	if user, ok := currentUser(r); ok {
		mine, err := h.reactions.GetUserReaction(r.Context(), stationID, user.ID)
		if err != nil {
			pkg.Error(w, err)
			return
		}
		if mine != nil {
			response["my_reaction"] = mine.Type
		}
	}

	pkg.JSON(w, http.StatusOK, response)
}

// Set godoc
// PUT /api/stations/{id}/reactions
// Body: { "type": "like" | "dislike" }
func (h *ReactionHandler) Set(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req struct {
		Type models.ReactionType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	counts, err := h.reactions.SetReaction(r.Context(), r.PathValue("id"), user.ID, req.Type)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, counts)
}

// Remove godoc
// DELETE /api/stations/{id}/reactions
func (h *ReactionHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	counts, err := h.reactions.RemoveReaction(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, counts)
}

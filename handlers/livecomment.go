package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/services"
)

// LiveCommentHandler, canlı dinleme sohbeti endpoint'leri.
// Create edilen her mesaj ws üzerinden istasyonun room'una da yayınlanır —
// HTTP response sadece göndericiye dönen kopyadır.
type LiveCommentHandler struct {
	liveComments services.LiveCommentService
}

// NewLiveCommentHandler, constructor.
func NewLiveCommentHandler(liveComments services.LiveCommentService) *LiveCommentHandler {
	return &LiveCommentHandler{liveComments: liveComments}
}

// Recent godoc
// GET /api/stations/{id}/live-comments — public
// Sayfaya yeni giren dinleyiciye son mesajları kronolojik sırada verir.
func (h *LiveCommentHandler) Recent(w http.ResponseWriter, r *http.Request) {
	comments, err := h.liveComments.GetRecent(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, comments)
}

// Create godoc
// POST /api/stations/{id}/live-comments
// Body: { "content": "...", "dedicated_to": "annem için" }
// dedicated_to opsiyoneldir — doluysa mesaj bir ithaftır.
func (h *LiveCommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req struct {
		Content     string  `json:"content"`
		DedicatedTo *string `json:"dedicated_to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lc, err := h.liveComments.Create(r.Context(), r.PathValue("id"), user.ID, req.Content, req.DedicatedTo)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, lc)
}

// Delete godoc
// DELETE /api/live-comments/{id}
func (h *LiveCommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.liveComments.Delete(r.Context(), r.PathValue("id"), user.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

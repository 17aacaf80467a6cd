package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/services"
)

// CommentHandler, kalıcı istasyon yorumu endpoint'leri.
type CommentHandler struct {
	comments services.CommentService
}

// NewCommentHandler, constructor.
func NewCommentHandler(comments services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List godoc
// GET /api/stations/{id}/comments — public
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.GetByStation(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, comments)
}

// Create godoc
// POST /api/stations/{id}/comments
// Body: { "content": "..." }
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.comments.Create(r.Context(), r.PathValue("id"), user.ID, req.Content)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, comment)
}

// Delete godoc
// DELETE /api/comments/{id}
// Sadece yorum sahibi silebilir — aksi halde 403.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.comments.Delete(r.Context(), r.PathValue("id"), user.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

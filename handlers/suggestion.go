package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/pkg/ratelimit"
	"github.com/akinalp/dalga/services"
)

// SuggestionHandler, radyo önerisi endpoint'leri.
//
// Submit, Optional auth arkasındadır — anonim gönderim serbesttir,
// authenticated gönderimde kayıt hesaba bağlanır. Onay/red admin'dir,
// oylama login gerektirir.
type SuggestionHandler struct {
	suggestions   services.SuggestionService
	submitLimiter *ratelimit.Limiter
}

// NewSuggestionHandler, constructor.
// submitLimiter: öneri spam koruması. nil ise devre dışı.
func NewSuggestionHandler(suggestions services.SuggestionService, submitLimiter *ratelimit.Limiter) *SuggestionHandler {
	return &SuggestionHandler{
		suggestions:   suggestions,
		submitLimiter: submitLimiter,
	}
}

// Submit godoc
// POST /api/suggestions
//
// Rate limiting: IP bazlı — form bot'larının pending kuyruğunu
// şişirmesini engeller. Login limiter ile aynı mekanizma, ayrı instance.
func (h *SuggestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.submitLimiter != nil && !h.submitLimiter.Allow(ip) {
		retryAfter := h.submitLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("too many suggestions, please try again in %s",
				ratelimit.FormatRetryMessage(retryAfter)))
		return
	}

	var req models.CreateSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var submittedBy *string
	if user, ok := currentUser(r); ok {
		submittedBy = &user.ID
	}

	suggestion, err := h.suggestions.Submit(r.Context(), &req, submittedBy)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, suggestion)
}

// GetApproved godoc
// GET /api/suggestions — public, oy sırasına göre
func (h *SuggestionHandler) GetApproved(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.suggestions.GetApproved(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, suggestions)
}

// GetPending godoc
// GET /api/admin/suggestions — platform admin
func (h *SuggestionHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.suggestions.GetPending(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, suggestions)
}

// Approve godoc
// POST /api/admin/suggestions/{id}/approve — platform admin
// Body yok — onay, kaydı her zaman sponsored olarak işaretler.
func (h *SuggestionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	suggestion, err := h.suggestions.Approve(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, suggestion)
}

// Reject godoc
// POST /api/admin/suggestions/{id}/reject — platform admin
func (h *SuggestionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	suggestion, err := h.suggestions.Reject(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, suggestion)
}

// Vote godoc
// POST /api/suggestions/{id}/vote — login gerektirir
// Duplicate oy → 409 Conflict ("already voted").
func (h *SuggestionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	suggestion, err := h.suggestions.Vote(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, suggestion)
}

// RemoveVote godoc
// DELETE /api/suggestions/{id}/vote — login gerektirir
func (h *SuggestionHandler) RemoveVote(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	suggestion, err := h.suggestions.RemoveVote(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, suggestion)
}

// Package middleware — PlatformAdminMiddleware, platform admin yetkisi kontrolü.
//
// AuthMiddleware'den SONRA çalışır — context'te user bilgisi mevcuttur.
// User struct'taki IsAdmin alanını kontrol eder. false ise → 403.
//
// Kullanım:
//
//	authMw.Require(adminMw.Require(http.HandlerFunc(suggestionHandler.GetPending)))
package middleware

import (
	"net/http"

	"github.com/akinalp/dalga/handlers"
	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
)

// PlatformAdminMiddleware, platform admin yetkisi zorunlu kılan middleware.
// Öneri onay/red işlemleri sadece bu kapıdan geçer.
type PlatformAdminMiddleware struct{}

// NewPlatformAdminMiddleware, constructor.
func NewPlatformAdminMiddleware() *PlatformAdminMiddleware {
	return &PlatformAdminMiddleware{}
}

// Require, context'teki User'ın IsAdmin alanı false ise 403 döner.
func (m *PlatformAdminMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(handlers.UserContextKey).(*models.User)
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
			return
		}

		if !user.IsAdmin {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "platform admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

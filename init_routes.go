// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ları burada tanımlıdır:
//   - auth: JWT token zorunlu
//   - optionalAuth: token varsa doğrula, yoksa anonim devam et
//   - authAdmin: auth + platform admin yetkisi
package main

import (
	"net/http"

	"github.com/akinalp/dalga/middleware"
	"github.com/akinalp/dalga/repository"
	"github.com/akinalp/dalga/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE
// tanımlanmalı. Örnek: "/api/stations/search" → "/api/stations/{id}"
// öncesinde, yoksa Go router "search" kelimesini bir id olarak yorumlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)
	adminMw := middleware.NewPlatformAdminMiddleware()

	// ─── Middleware Chain Helpers ───
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}
	optionalAuth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Optional(http.HandlerFunc(handler))
	}
	authAdmin := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(adminMw.Require(http.HandlerFunc(handler)))
	}

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))

	// Directory — public. Literal segment'ler {id}'den önce.
	mux.HandleFunc("GET /api/stations/search", h.Station.Search)
	mux.HandleFunc("GET /api/stations/top/vote", h.Station.TopVote)
	mux.HandleFunc("GET /api/stations/top/click", h.Station.TopClick)
	mux.HandleFunc("GET /api/stations/country/{country}", h.Station.ListByCountry)
	mux.HandleFunc("GET /api/stations/language/{language}", h.Station.ListByLanguage)
	mux.HandleFunc("GET /api/stations/tag/{tag}", h.Station.ListByTag)
	mux.HandleFunc("GET /api/stations/{id}", h.Station.GetStation)
	mux.HandleFunc("POST /api/stations/{id}/click", h.Station.Click)

	mux.HandleFunc("GET /api/meta/countries", h.Station.Countries)
	mux.HandleFunc("GET /api/meta/languages", h.Station.Languages)
	mux.HandleFunc("GET /api/meta/tags", h.Station.Tags)

	// Playback — anonim çalışır, X-Client-ID yeterli
	mux.HandleFunc("GET /api/playback", h.Playback.GetState)
	mux.HandleFunc("POST /api/playback/play", h.Playback.Play)
	mux.HandleFunc("POST /api/playback/toggle", h.Playback.Toggle)
	mux.HandleFunc("POST /api/playback/stop", h.Playback.Stop)
	mux.HandleFunc("PUT /api/playback/volume", h.Playback.SetVolume)

	// Favorites — optionalAuth: anonim istekte local store,
	// authenticated istekte DB scope'u kullanılır
	mux.Handle("GET /api/favorites", optionalAuth(h.Favorite.List))
	mux.Handle("POST /api/favorites", optionalAuth(h.Favorite.Add))
	mux.Handle("GET /api/favorites/{stationId}", optionalAuth(h.Favorite.IsFavorite))
	mux.Handle("DELETE /api/favorites/{stationId}", optionalAuth(h.Favorite.Remove))

	// Reactions — okuma optionalAuth (my_reaction için), yazma auth
	mux.Handle("GET /api/stations/{id}/reactions", optionalAuth(h.Reaction.Get))
	mux.Handle("PUT /api/stations/{id}/reactions", auth(h.Reaction.Set))
	mux.Handle("DELETE /api/stations/{id}/reactions", auth(h.Reaction.Remove))

	// Comments — okuma public, yazma/silme auth
	mux.HandleFunc("GET /api/stations/{id}/comments", h.Comment.List)
	mux.Handle("POST /api/stations/{id}/comments", auth(h.Comment.Create))
	mux.Handle("DELETE /api/comments/{id}", auth(h.Comment.Delete))

	// Live comments / dedications
	mux.HandleFunc("GET /api/stations/{id}/live-comments", h.LiveComment.Recent)
	mux.Handle("POST /api/stations/{id}/live-comments", auth(h.LiveComment.Create))
	mux.Handle("DELETE /api/live-comments/{id}", auth(h.LiveComment.Delete))

	// Suggestions — submit anonim serbest (optionalAuth), oylama auth
	mux.HandleFunc("GET /api/suggestions", h.Suggestion.GetApproved)
	mux.Handle("POST /api/suggestions", optionalAuth(h.Suggestion.Submit))
	mux.Handle("POST /api/suggestions/{id}/vote", auth(h.Suggestion.Vote))
	mux.Handle("DELETE /api/suggestions/{id}/vote", auth(h.Suggestion.RemoveVote))

	// Platform Admin — öneri onay kuyruğu
	mux.Handle("GET /api/admin/suggestions", authAdmin(h.Suggestion.GetPending))
	mux.Handle("POST /api/admin/suggestions/{id}/approve", authAdmin(h.Suggestion.Approve))
	mux.Handle("POST /api/admin/suggestions/{id}/reject", authAdmin(h.Suggestion.Reject))

	// WebSocket
	//
	// WebSocket upgrade sırasında tarayıcılar custom HTTP header gönderemez.
	// Bu yüzden client_id ve opsiyonel token URL query parameter olarak gider:
	//   ws://server/ws?client_id=UUID&token=JWT_TOKEN
	// WS handler kendi içinde doğrulama yapar.
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}

// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
// Handler'lar "thin"dir — sadece HTTP parse + service call + response write.
package main

import (
	"github.com/akinalp/dalga/handlers"
	"github.com/akinalp/dalga/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Station     *handlers.StationHandler
	Playback    *handlers.PlaybackHandler
	Favorite    *handlers.FavoriteHandler
	Reaction    *handlers.ReactionHandler
	Comment     *handlers.CommentHandler
	LiveComment *handlers.LiveCommentHandler
	Suggestion  *handlers.SuggestionHandler
	WS          *ws.Handler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters, hub *ws.Hub) *Handlers {
	return &Handlers{
		Auth:        handlers.NewAuthHandler(svcs.Auth, svcs.Favorites, limiters.Login),
		Station:     handlers.NewStationHandler(svcs.Directory),
		Playback:    handlers.NewPlaybackHandler(svcs.Playback),
		Favorite:    handlers.NewFavoriteHandler(svcs.Favorites),
		Reaction:    handlers.NewReactionHandler(svcs.Reaction),
		Comment:     handlers.NewCommentHandler(svcs.Comment),
		LiveComment: handlers.NewLiveCommentHandler(svcs.LiveComment),
		Suggestion:  handlers.NewSuggestionHandler(svcs.Suggestion, limiters.Submit),
		WS:          ws.NewHandler(hub, svcs.Auth),
	}
}

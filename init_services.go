// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
//
// Sıralama kuralı: Directory → Suggestion ve Playback'ten ÖNCE oluşmalı —
// Suggestion approve'da cache invalidation için, Playback istasyon
// çözümlemesi için Directory'ye bağımlıdır.
package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/akinalp/dalga/config"
	"github.com/akinalp/dalga/pkg/email"
	"github.com/akinalp/dalga/pkg/localstore"
	"github.com/akinalp/dalga/pkg/ratelimit"
	"github.com/akinalp/dalga/radiobrowser"
	"github.com/akinalp/dalga/services"
	"github.com/akinalp/dalga/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth        services.AuthService
	Directory   services.DirectoryService
	Playback    services.PlaybackService
	Favorites   services.FavoritesService
	Reaction    services.ReactionService
	Comment     services.CommentService
	LiveComment services.LiveCommentService
	Suggestion  services.SuggestionService
}

// RateLimiters, tüm rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login  *ratelimit.Limiter
	Submit *ratelimit.Limiter
}

// Close, limiter'ların arkaplan temizlik goroutine'lerini durdurur.
func (rl *RateLimiters) Close() {
	rl.Login.Close()
	rl.Submit.Close()
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
func initServices(conn *sql.DB, repos *Repositories, hub ws.EventPublisher, local *localstore.Store, cfg *config.Config) *Services {
	// Email sender: API key yoksa log-only moda düşer — development'ta
	// Resend hesabı olmadan da öneri akışı çalışır.
	var sender email.EmailSender
	if cfg.Email.APIKey != "" && cfg.Email.AdminEmail != "" {
		sender = email.NewResendSender(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.AdminEmail)
	} else {
		log.Println("[main] RESEND_API_KEY not set, suggestion notifications will be logged only")
		sender = email.NewLogSender()
	}

	rbClient := radiobrowser.New(cfg.RadioBrowser.BaseURL, cfg.RadioBrowser.UserAgent)

	directory := services.NewDirectoryService(rbClient, repos.Suggestion)

	return &Services{
		Auth:        services.NewAuthService(repos.User, repos.Session, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry),
		Directory:   directory,
		Playback:    services.NewPlaybackService(directory, services.NewHTTPProber(), hub),
		Favorites:   services.NewFavoritesService(conn, repos.Favorite, local, hub),
		Reaction:    services.NewReactionService(repos.Reaction, hub),
		Comment:     services.NewCommentService(repos.Comment, repos.User),
		LiveComment: services.NewLiveCommentService(repos.LiveComment, repos.User, hub),
		Suggestion:  services.NewSuggestionService(repos.Suggestion, repos.Vote, sender, directory),
	}
}

// initRateLimiters, brute-force ve spam korumalarını oluşturur.
//
// Login: 5 deneme / 1 dakika — şifre denemesi pahalı olmalı.
// Submit: 3 öneri / 10 dakika — form botlarına karşı, admin kuyruğu korunur.
func initRateLimiters() *RateLimiters {
	return &RateLimiters{
		Login:  ratelimit.New(5, time.Minute),
		Submit: ratelimit.New(3, 10*time.Minute),
	}
}

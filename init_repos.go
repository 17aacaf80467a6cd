// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository aynı SQL.DB bağlantısını alır ve interface döner.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"database/sql"

	"github.com/akinalp/dalga/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Neden struct? Ayrı ayrı değişkenler yerine tek struct kullanmak:
// 1. Fonksiyon imzalarını temiz tutar
// 2. Yeni repository eklendiğinde sadece struct + initRepositories güncellenir
// 3. IDE auto-complete ile kolay erişim (repos.User, repos.Favorite, vb.)
type Repositories struct {
	User        repository.UserRepository
	Session     repository.SessionRepository
	Suggestion  repository.SuggestionRepository
	Vote        repository.VoteRepository
	Favorite    repository.FavoriteRepository
	Reaction    repository.ReactionRepository
	Comment     repository.CommentRepository
	LiveComment repository.LiveCommentRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
//
// Go'nun sql.DB'si thread-safe connection pool'dur — aynı bağlantının
// tüm repository'lerde paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:        repository.NewSQLiteUserRepo(conn),
		Session:     repository.NewSQLiteSessionRepo(conn),
		Suggestion:  repository.NewSQLiteSuggestionRepo(conn),
		Vote:        repository.NewSQLiteVoteRepo(conn),
		Favorite:    repository.NewSQLiteFavoriteRepo(conn),
		Reaction:    repository.NewSQLiteReactionRepo(conn),
		Comment:     repository.NewSQLiteCommentRepo(conn),
		LiveComment: repository.NewSQLiteLiveCommentRepo(conn),
	}
}

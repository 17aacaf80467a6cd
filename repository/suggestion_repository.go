package repository

import (
	"context"

	"github.com/akinalp/dalga/models"
)

// SuggestionRepository, öneri (suggestion) veritabanı işlemleri için interface.
//
// Öneriler yumuşak bir lifecycle izler: pending → approved | rejected.
// Fiziksel DELETE yoktur — reddedilen kayıt da tabloda kalır.
// Approved sorguları directory merge'in dahili kaynağıdır.
type SuggestionRepository interface {
	Create(ctx context.Context, s *models.Suggestion) error
	GetByID(ctx context.Context, id string) (*models.Suggestion, error)
	GetPending(ctx context.Context) ([]models.Suggestion, error)
	// UpdateStatus, pending bir öneriyi approved/rejected'a geçirir.
	// Approve sırasında sponsored flag'i de set edilir.
	UpdateStatus(ctx context.Context, id string, status models.SuggestionStatus, sponsored bool) error

	// Approved sorguları — directory merge bunları harici API sonuçlarıyla birleştirir.
	GetApproved(ctx context.Context) ([]models.Suggestion, error)
	GetApprovedByCountry(ctx context.Context, country string) ([]models.Suggestion, error)
	GetApprovedByLanguage(ctx context.Context, language string) ([]models.Suggestion, error)
	GetApprovedByTag(ctx context.Context, tag string) ([]models.Suggestion, error)
	SearchApprovedByName(ctx context.Context, name string) ([]models.Suggestion, error)

	// IncrementVotes / DecrementVotes, denormalize votes sayacını günceller.
	// Oyun kendisi suggestion_votes tablosundadır (VoteRepository) — sayaç
	// sıralama sorgularını JOIN'suz tutmak için tutulur.
	IncrementVotes(ctx context.Context, id string) error
	DecrementVotes(ctx context.Context, id string) error
}

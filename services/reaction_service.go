package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/repository"
	"github.com/akinalp/dalga/ws"
)

// ReactionService, istasyon like/dislike yönetimi.
// Sadece authenticated kullanıcılar reaction bırakabilir.
type ReactionService interface {
	// SetReaction, reaction ekler veya tipini değiştirir.
	// Aynı tip zaten varsa no-op'tur (idempotent).
	SetReaction(ctx context.Context, stationID, userID string, t models.ReactionType) (*models.ReactionCounts, error)
	RemoveReaction(ctx context.Context, stationID, userID string) (*models.ReactionCounts, error)
	GetCounts(ctx context.Context, stationID string) (*models.ReactionCounts, error)
	// GetUserReaction, kullanıcının o istasyondaki reaction'ını döner.
	// Reaction yoksa (nil, nil) — yokluk hata değildir.
	GetUserReaction(ctx context.Context, stationID, userID string) (*models.Reaction, error)
}

type reactionService struct {
	repo repository.ReactionRepository
	hub  ws.EventPublisher
}

// NewReactionService, constructor.
func NewReactionService(repo repository.ReactionRepository, hub ws.EventPublisher) ReactionService {
	return &reactionService{repo: repo, hub: hub}
}

// SetReaction, like/dislike bırakır.
//
// Tip DEĞİŞTİRME atomik değildir: önce mevcut silinir, sonra yenisi
// eklenir. İki tab'dan eş zamanlı switch aradaki pencerede yarışabilir —
// UNIQUE constraint duplicate satırı her durumda engeller, en kötü
// senaryoda ikinci istek ErrAlreadyExists alır. Bilinen sınırlama.
func (s *reactionService) SetReaction(ctx context.Context, stationID, userID string, t models.ReactionType) (*models.ReactionCounts, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: reaction type must be like or dislike", pkg.ErrBadRequest)
	}

	existing, err := s.repo.GetUserReaction(ctx, stationID, userID)
	if err != nil && !errors.Is(err, pkg.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.Type == t {
			// Aynı tip tekrar — no-op, güncel sayaçları dön
			return s.repo.Counts(ctx, stationID)
		}
		if err := s.repo.Delete(ctx, stationID, userID); err != nil && !errors.Is(err, pkg.ErrNotFound) {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, stationID, userID, t); err != nil {
		return nil, err
	}

	return s.broadcastCounts(ctx, stationID)
}

// RemoveReaction, kullanıcının reaction'ını kaldırır.
// Reaction yokken çağırmak no-op'tur.
func (s *reactionService) RemoveReaction(ctx context.Context, stationID, userID string) (*models.ReactionCounts, error) {
	if err := s.repo.Delete(ctx, stationID, userID); err != nil && !errors.Is(err, pkg.ErrNotFound) {
		return nil, err
	}

	return s.broadcastCounts(ctx, stationID)
}

func (s *reactionService) GetCounts(ctx context.Context, stationID string) (*models.ReactionCounts, error) {
	return s.repo.Counts(ctx, stationID)
}

func (s *reactionService) GetUserReaction(ctx context.Context, stationID, userID string) (*models.Reaction, error) {
	reaction, err := s.repo.GetUserReaction(ctx, stationID, userID)
	if errors.Is(err, pkg.ErrNotFound) {
		return nil, nil
	}
	return reaction, err
}

// broadcastCounts, güncel sayaçları istasyonun room'una yayınlar ve döner.
func (s *reactionService) broadcastCounts(ctx context.Context, stationID string) (*models.ReactionCounts, error) {
	counts, err := s.repo.Counts(ctx, stationID)
	if err != nil {
		// Yazma başarılıydı — sayaç okuması düşerse sadece logla
		log.Printf("[reaction] failed to read counts for station %s: %v", stationID, err)
		return nil, err
	}

	s.hub.BroadcastToStation(stationID, ws.Event{
		Op: ws.OpReactionUpdate,
		Data: ws.ReactionUpdateData{
			StationID: stationID,
			Likes:     counts.Likes,
			Dislikes:  counts.Dislikes,
		},
	})

	return counts, nil
}

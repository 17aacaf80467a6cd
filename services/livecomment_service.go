package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/repository"
	"github.com/akinalp/dalga/ws"
)

const (
	// maxLiveCommentLength: canlı yorumlar kısa sohbet mesajlarıdır.
	maxLiveCommentLength = 500

	// recentLiveComments: sayfaya yeni giren dinleyiciye gösterilen
	// son mesaj sayısı.
	recentLiveComments = 50
)

// LiveCommentService, canlı dinleme sohbeti ve ithaflar (dedication).
//
// Kalıcı yorumdan farkı: oluşturulan her mesaj anında istasyonun ws
// room'una broadcast edilir. DedicatedTo doluysa mesaj bir ithaftır —
// "annem için" gibi serbest metin hedefi taşır.
type LiveCommentService interface {
	Create(ctx context.Context, stationID, userID, content string, dedicatedTo *string) (*models.LiveComment, error)
	GetRecent(ctx context.Context, stationID string) ([]models.LiveComment, error)
	Delete(ctx context.Context, liveCommentID, userID string) error
}

type liveCommentService struct {
	repo     repository.LiveCommentRepository
	userRepo repository.UserRepository
	hub      ws.EventPublisher
}

// NewLiveCommentService, constructor.
func NewLiveCommentService(repo repository.LiveCommentRepository, userRepo repository.UserRepository, hub ws.EventPublisher) LiveCommentService {
	return &liveCommentService{repo: repo, userRepo: userRepo, hub: hub}
}

func (s *liveCommentService) Create(ctx context.Context, stationID, userID, content string, dedicatedTo *string) (*models.LiveComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", pkg.ErrBadRequest)
	}
	if utf8.RuneCountInString(content) > maxLiveCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", pkg.ErrBadRequest, maxLiveCommentLength)
	}

	if dedicatedTo != nil {
		trimmed := strings.TrimSpace(*dedicatedTo)
		if trimmed == "" {
			dedicatedTo = nil // boş ithaf = ithafsız yorum
		} else {
			dedicatedTo = &trimmed
		}
	}

	lc := &models.LiveComment{
		StationID:   stationID,
		UserID:      userID,
		Content:     content,
		DedicatedTo: dedicatedTo,
	}
	if err := s.repo.Create(ctx, lc); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		lc.Username = user.Username
	}

	// Room'daki herkese anında ilet — HTTP response'u beklemeden
	s.hub.BroadcastToStation(stationID, ws.Event{
		Op:   ws.OpLiveCommentCreate,
		Data: lc,
	})

	return lc, nil
}

func (s *liveCommentService) GetRecent(ctx context.Context, stationID string) ([]models.LiveComment, error) {
	return s.repo.GetRecent(ctx, stationID, recentLiveComments)
}

func (s *liveCommentService) Delete(ctx context.Context, liveCommentID, userID string) error {
	lc, err := s.repo.GetByID(ctx, liveCommentID)
	if err != nil {
		return err
	}

	if lc.UserID != userID {
		return fmt.Errorf("%w: you can only delete your own comments", pkg.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, liveCommentID); err != nil {
		return err
	}

	s.hub.BroadcastToStation(lc.StationID, ws.Event{
		Op:   ws.OpLiveCommentDelete,
		Data: map[string]string{"id": liveCommentID, "station_id": lc.StationID},
	})

	return nil
}

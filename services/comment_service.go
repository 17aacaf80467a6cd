package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/repository"
)

// maxCommentLength, yorum içeriği üst sınırı (karakter).
const maxCommentLength = 2000

// CommentService, kalıcı istasyon yorumları.
// Okuma herkese açık, yazma authenticated. Silme sadece yazana aittir.
type CommentService interface {
	Create(ctx context.Context, stationID, userID, content string) (*models.Comment, error)
	GetByStation(ctx context.Context, stationID string) ([]models.Comment, error)
	Delete(ctx context.Context, commentID, userID string) error
}

type commentService struct {
	repo     repository.CommentRepository
	userRepo repository.UserRepository
}

// NewCommentService, constructor.
func NewCommentService(repo repository.CommentRepository, userRepo repository.UserRepository) CommentService {
	return &commentService{repo: repo, userRepo: userRepo}
}

func (s *commentService) Create(ctx context.Context, stationID, userID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", pkg.ErrBadRequest)
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", pkg.ErrBadRequest, maxCommentLength)
	}

	comment := &models.Comment{
		StationID: stationID,
		UserID:    userID,
		Content:   content,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Username'i response için doldur — Create RETURNING sadece id+tarih döner
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		comment.Username = user.Username
	}

	return comment, nil
}

func (s *commentService) GetByStation(ctx context.Context, stationID string) ([]models.Comment, error) {
	return s.repo.GetByStationID(ctx, stationID)
}

// Delete, yorumu siler. Yorum yazara ait değilse ErrForbidden —
// admin bile başkasının yorumunu silemez.
func (s *commentService) Delete(ctx context.Context, commentID, userID string) error {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		return fmt.Errorf("%w: you can only delete your own comments", pkg.ErrForbidden)
	}

	return s.repo.Delete(ctx, commentID)
}

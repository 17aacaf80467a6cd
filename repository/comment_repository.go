package repository

import (
	"context"

	"github.com/akinalp/dalga/models"
)

// CommentRepository, kalıcı istasyon yorumları için interface.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByStationID(ctx context.Context, stationID string) ([]models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
}

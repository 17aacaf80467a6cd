package repository

import (
	"context"

	"github.com/akinalp/dalga/models"
)

// LiveCommentRepository, canlı dinleme sohbeti yorumları için interface.
//
// Live comment'ler davranışça efemerdir (ws room'a broadcast edilirler)
// ama DB'de de saklanırlar — istasyon sayfası yeni açan bir dinleyici
// son konuşmaları GetRecent ile geri alabilsin diye.
type LiveCommentRepository interface {
	Create(ctx context.Context, lc *models.LiveComment) error
	GetRecent(ctx context.Context, stationID string, limit int) ([]models.LiveComment, error)
	GetByID(ctx context.Context, id string) (*models.LiveComment, error)
	Delete(ctx context.Context, id string) error
}

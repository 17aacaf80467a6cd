package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/pkg/email"
	"github.com/akinalp/dalga/pkg/slug"
	"github.com/akinalp/dalga/repository"
)

// SuggestionService, radyo önerisi workflow'unu yönetir.
//
// Lifecycle: Submit → pending → (admin) Approve | Reject.
// Approve edilen öneri directory merge'de sponsored istasyon olarak
// görünmeye başlar. Oylama (Vote/RemoveVote) pending ve approved
// önerilerde serbesttir — sıralama sinyalidir, onay mekanizması değil.
type SuggestionService interface {
	Submit(ctx context.Context, req *models.CreateSuggestionRequest, submittedBy *string) (*models.Suggestion, error)
	GetByID(ctx context.Context, id string) (*models.Suggestion, error)
	GetApproved(ctx context.Context) ([]models.Suggestion, error)

	// Admin operasyonları — handler platform admin kontrolünü yapar,
	// service ikinci kez doğrulamaz.
	GetPending(ctx context.Context) ([]models.Suggestion, error)
	Approve(ctx context.Context, id string) (*models.Suggestion, error)
	Reject(ctx context.Context, id string) (*models.Suggestion, error)

	Vote(ctx context.Context, suggestionID, userID string) (*models.Suggestion, error)
	RemoveVote(ctx context.Context, suggestionID, userID string) (*models.Suggestion, error)
}

// CacheInvalidator, approve sonrası directory cache'ini düşürmek için
// dar interface. DirectoryService bunu karşılar — suggestion service'in
// dizinin tamamına ihtiyacı yok (Interface Segregation).
type CacheInvalidator interface {
	InvalidateCache()
}

type suggestionService struct {
	repo      repository.SuggestionRepository
	voteRepo  repository.VoteRepository
	sender    email.EmailSender
	directory CacheInvalidator
}

// NewSuggestionService, constructor.
func NewSuggestionService(
	repo repository.SuggestionRepository,
	voteRepo repository.VoteRepository,
	sender email.EmailSender,
	directory CacheInvalidator,
) SuggestionService {
	return &suggestionService{
		repo:      repo,
		voteRepo:  voteRepo,
		sender:    sender,
		directory: directory,
	}
}

// Submit, yeni bir öneri alır.
//
// Sıralama önemlidir: önce validation, sonra DB yazımı, EN SON bildirim.
// Validation düşerse hiçbir yan etki çalışmaz. Email ayrı goroutine'de
// gider ve hatası SADECE loglanır — kayıt zaten güvende, admin pending
// listesinde her durumda görür.
func (s *suggestionService) Submit(ctx context.Context, req *models.CreateSuggestionRequest, submittedBy *string) (*models.Suggestion, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	suggestion := &models.Suggestion{
		Name:           req.Name,
		Slug:           slug.Make(req.Name),
		StreamURL:      req.StreamURL,
		Description:    req.Description,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		SubmitterEmail: req.SubmitterEmail,
		Country:        req.Country,
		Tags:           req.Tags,
		Language:       req.Language,
		SubmittedBy:    submittedBy,
	}
	if req.Website != "" {
		suggestion.Website = &req.Website
	}
	if req.LogoURL != "" {
		suggestion.LogoURL = &req.LogoURL
	}

	if err := s.repo.Create(ctx, suggestion); err != nil {
		return nil, err
	}

	// context.Background(): bildirim HTTP isteğinden uzun yaşayabilir
	go func() {
		err := s.sender.SendSuggestionNotification(context.Background(), email.SuggestionNotification{
			RadioName:    suggestion.Name,
			Description:  suggestion.Description,
			StreamURL:    suggestion.StreamURL,
			Country:      suggestion.Country,
			Language:     suggestion.Language,
			ContactEmail: suggestion.ContactEmail,
		})
		if err != nil {
			log.Printf("[suggestion] admin notification failed for %s: %v", suggestion.ID, err)
		}
	}()

	return suggestion, nil
}

func (s *suggestionService) GetByID(ctx context.Context, id string) (*models.Suggestion, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *suggestionService) GetApproved(ctx context.Context) ([]models.Suggestion, error) {
	return s.repo.GetApproved(ctx)
}

func (s *suggestionService) GetPending(ctx context.Context) ([]models.Suggestion, error) {
	return s.repo.GetPending(ctx)
}

// Approve, pending öneriyi kabul eder ve sponsored işaretler.
// Onaylanan her öneri directory'de sponsored istasyon olarak görünür —
// status ile sponsored kolonu her zaman birlikte hareket eder.
func (s *suggestionService) Approve(ctx context.Context, id string) (*models.Suggestion, error) {
	if err := s.repo.UpdateStatus(ctx, id, models.SuggestionApproved, true); err != nil {
		return nil, err
	}

	// Yeni istasyon TTL beklemeden listelerde görünsün
	s.directory.InvalidateCache()

	log.Printf("[suggestion] approved: %s", id)
	return s.repo.GetByID(ctx, id)
}

// Reject, pending öneriyi reddeder. Kayıt silinmez — status değişir.
func (s *suggestionService) Reject(ctx context.Context, id string) (*models.Suggestion, error) {
	if err := s.repo.UpdateStatus(ctx, id, models.SuggestionRejected, false); err != nil {
		return nil, err
	}

	log.Printf("[suggestion] rejected: %s", id)
	return s.repo.GetByID(ctx, id)
}

// Vote, öneriye oy verir.
//
// Duplicate oy AÇIK hatadır: ErrAlreadyVoted → 409. Favori ekleme gibi
// sessizce yutulmaz — kullanıcı "oyun zaten sayıldı" mesajını görmeli.
//
// Oy kaydı ile sayaç artışı iki ayrı statement'tır; ikincisi düşerse
// sayaç bir eksik kalır (bir sonraki oy düzeltmez). Sayaç sıralama
// sinyalidir, muhasebe değil — bu tolere edilir.
func (s *suggestionService) Vote(ctx context.Context, suggestionID, userID string) (*models.Suggestion, error) {
	if _, err := s.repo.GetByID(ctx, suggestionID); err != nil {
		return nil, err
	}

	if err := s.voteRepo.Create(ctx, suggestionID, userID); err != nil {
		return nil, err // ErrAlreadyVoted olabilir
	}

	if err := s.repo.IncrementVotes(ctx, suggestionID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, suggestionID)
}

// RemoveVote, oyu geri çeker. Oy yoksa no-op'tur — sayaç da değişmez.
func (s *suggestionService) RemoveVote(ctx context.Context, suggestionID, userID string) (*models.Suggestion, error) {
	err := s.voteRepo.Delete(ctx, suggestionID, userID)
	if errors.Is(err, pkg.ErrNotFound) {
		return s.repo.GetByID(ctx, suggestionID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.DecrementVotes(ctx, suggestionID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, suggestionID)
}

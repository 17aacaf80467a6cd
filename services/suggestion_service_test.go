package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/pkg/email"
	"github.com/akinalp/dalga/repository"
)

// recordingSender, gönderilen bildirimleri kanala yazan EmailSender.
// Submit bildirimi ayrı goroutine'de gönderir — kanal, test'in async
// gönderimi beklemesini sağlar.
type recordingSender struct {
	sent chan email.SuggestionNotification
}

func (s *recordingSender) SendSuggestionNotification(ctx context.Context, n email.SuggestionNotification) error {
	s.sent <- n
	return nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) InvalidateCache() { c.calls++ }

func newSuggestionFixture(t *testing.T) (SuggestionService, repository.SuggestionRepository, repository.UserRepository, *recordingSender, *countingInvalidator) {
	t.Helper()

	db := newTestDB(t)
	repo := repository.NewSQLiteSuggestionRepo(db.Conn)
	sender := &recordingSender{sent: make(chan email.SuggestionNotification, 4)}
	invalidator := &countingInvalidator{}
	svc := NewSuggestionService(repo, repository.NewSQLiteVoteRepo(db.Conn), sender, invalidator)
	return svc, repo, repository.NewSQLiteUserRepo(db.Conn), sender, invalidator
}

func validSuggestionRequest(name string) *models.CreateSuggestionRequest {
	return &models.CreateSuggestionRequest{
		Name:           name,
		StreamURL:      "https://stream.example.com/live",
		Description:    "Ege'den canlı caz",
		ContactEmail:   "contact@example.com",
		ContactPhone:   "+90 555 000 0000",
		SubmitterEmail: "submitter@example.com",
		Country:        "Turkey",
		Tags:           []string{"jazz"},
		Language:       "turkish",
	}
}

func TestSubmitSuggestion(t *testing.T) {
	svc, repo, _, sender, _ := newSuggestionFixture(t)
	ctx := context.Background()

	suggestion, err := svc.Submit(ctx, validSuggestionRequest("Radyo Ege Caz"), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if suggestion.ID == "" {
		t.Fatal("expected generated id")
	}
	if suggestion.Status != models.SuggestionPending {
		t.Fatalf("new suggestion should be pending, got %s", suggestion.Status)
	}
	if suggestion.Slug != "radyo-ege-caz" {
		t.Fatalf("expected slug radyo-ege-caz, got %q", suggestion.Slug)
	}

	// Admin bildirimi async gider
	select {
	case n := <-sender.sent:
		if n.RadioName != "Radyo Ege Caz" {
			t.Fatalf("notification carries wrong name: %q", n.RadioName)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected admin notification after submit")
	}

	pending, err := repo.GetPending(ctx)
	if err != nil {
		t.Fatalf("get pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected suggestion in pending queue, got %d", len(pending))
	}
}

func TestSubmitValidationBlocksSideEffects(t *testing.T) {
	svc, repo, _, sender, _ := newSuggestionFixture(t)
	ctx := context.Background()

	req := validSuggestionRequest("Radyo Ege")
	req.StreamURL = "ftp://not-a-stream"

	_, err := svc.Submit(ctx, req, nil)
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got: %v", err)
	}

	// Validation düştüyse ne DB yazımı ne bildirim olur
	pending, err := repo.GetPending(ctx)
	if err != nil {
		t.Fatalf("get pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatal("invalid submit must not create a row")
	}
	select {
	case <-sender.sent:
		t.Fatal("invalid submit must not send a notification")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestApproveSuggestion(t *testing.T) {
	svc, _, _, sender, invalidator := newSuggestionFixture(t)
	ctx := context.Background()

	suggestion, err := svc.Submit(ctx, validSuggestionRequest("Radyo Ege"), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	<-sender.sent

	approved, err := svc.Approve(ctx, suggestion.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	// Onay sponsored'ı da işaretler — public görünümle kolon uyuşur
	if approved.Status != models.SuggestionApproved || !approved.Sponsored {
		t.Fatalf("expected approved+sponsored, got %+v", approved)
	}
	// Yeni istasyon TTL beklemeden görünsün diye cache düşer
	if invalidator.calls != 1 {
		t.Fatalf("expected one cache invalidation, got %d", invalidator.calls)
	}

	// Approved kayıt tekrar işlenemez
	if _, err := svc.Reject(ctx, suggestion.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for double transition, got: %v", err)
	}
}

func TestRejectSuggestionKeepsRow(t *testing.T) {
	svc, _, _, sender, _ := newSuggestionFixture(t)
	ctx := context.Background()

	suggestion, err := svc.Submit(ctx, validSuggestionRequest("Radyo Ege"), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	<-sender.sent

	rejected, err := svc.Reject(ctx, suggestion.ID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != models.SuggestionRejected {
		t.Fatalf("expected rejected status, got %s", rejected.Status)
	}

	// Fiziksel silme yok — kayıt id ile hâlâ okunur
	if _, err := svc.GetByID(ctx, suggestion.ID); err != nil {
		t.Fatalf("rejected suggestion should still exist: %v", err)
	}
}

func TestVoteFlow(t *testing.T) {
	svc, _, users, sender, _ := newSuggestionFixture(t)
	ctx := context.Background()

	user := &models.User{Username: "dinleyici", PasswordHash: "x"}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	suggestion, err := svc.Submit(ctx, validSuggestionRequest("Radyo Ege"), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	<-sender.sent

	voted, err := svc.Vote(ctx, suggestion.ID, user.ID)
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	if voted.Votes != 1 {
		t.Fatalf("expected 1 vote, got %d", voted.Votes)
	}

	// Duplicate oy açık hatadır — sessizce yutulmaz
	if _, err := svc.Vote(ctx, suggestion.ID, user.ID); !errors.Is(err, pkg.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got: %v", err)
	}

	removed, err := svc.RemoveVote(ctx, suggestion.ID, user.ID)
	if err != nil {
		t.Fatalf("remove vote: %v", err)
	}
	if removed.Votes != 0 {
		t.Fatalf("expected 0 votes after removal, got %d", removed.Votes)
	}

	// Olmayan oyu geri çekmek no-op — sayaç değişmez
	removed, err = svc.RemoveVote(ctx, suggestion.ID, user.ID)
	if err != nil {
		t.Fatalf("second remove vote: %v", err)
	}
	if removed.Votes != 0 {
		t.Fatalf("no-op removal changed the counter: %d", removed.Votes)
	}
}

func TestVoteUnknownSuggestion(t *testing.T) {
	svc, _, users, _, _ := newSuggestionFixture(t)
	ctx := context.Background()

	user := &models.User{Username: "dinleyici", PasswordHash: "x"}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	_, err := svc.Vote(ctx, "missing", user.ID)
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

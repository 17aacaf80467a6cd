package models

import (
	"fmt"
	"strings"
	"time"
)

// SuggestionStatus, bir önerinin workflow durumunu temsil eder.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionApproved SuggestionStatus = "approved"
	SuggestionRejected SuggestionStatus = "rejected"
)

// Suggestion, kullanıcı tarafından gönderilmiş aday bir radyoyu temsil eder.
// DB'deki "suggestions" tablosunun Go karşılığı.
//
// Lifecycle: submit → pending; sadece admin approved/rejected'a geçirir.
// Approved olan kayıt public directory merge'de Station olarak görünür.
// Fiziksel silme yolu yoktur — sadece status değişir.
type Suggestion struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	StreamURL      string           `json:"stream_url"`
	Website        *string          `json:"website"`
	LogoURL        *string          `json:"logo_url"`
	Description    string           `json:"description"`
	ContactEmail   string           `json:"contact_email"`
	ContactPhone   string           `json:"contact_phone"`
	SubmitterEmail string           `json:"submitter_email"`
	Country        string           `json:"country"`
	Tags           []string         `json:"tags"`
	Language       string           `json:"language"`
	Status         SuggestionStatus `json:"status"`
	Sponsored      bool             `json:"sponsored"`
	Votes          int              `json:"votes"`
	SubmittedBy    *string          `json:"submitted_by"` // nil = anonim gönderim
	CreatedAt      time.Time        `json:"created_at"`
}

// ToStation, approved bir öneriyi public Station görünümüne çevirir.
// Directory merge bu dönüşümü kullanır.
func (s *Suggestion) ToStation() Station {
	st := Station{
		ID:        s.ID,
		Name:      s.Name,
		URL:       s.StreamURL,
		Tags:      s.Tags,
		Country:   s.Country,
		Language:  s.Language,
		Votes:     s.Votes,
		Sponsored: true,
	}
	if s.Website != nil {
		st.Homepage = *s.Website
	}
	if s.LogoURL != nil {
		st.Favicon = *s.LogoURL
	}
	return st
}

// CreateSuggestionRequest, öneri formundan gelen veri.
type CreateSuggestionRequest struct {
	Name           string   `json:"name"`
	StreamURL      string   `json:"stream_url"`
	Website        string   `json:"website"`
	LogoURL        string   `json:"logo_url"`
	Description    string   `json:"description"`
	ContactEmail   string   `json:"contact_email"`
	ContactPhone   string   `json:"contact_phone"`
	SubmitterEmail string   `json:"submitter_email"`
	Country        string   `json:"country"`
	Tags           []string `json:"tags"`
	Language       string   `json:"language"`
}

// Validate, tüm zorunlu alanların dolu olduğunu kontrol eder.
// Website ve LogoURL opsiyoneldir; geri kalan her alan zorunludur.
// Validation BAŞARISIZSA hiçbir yazma ve bildirim yan etkisi çalışmaz —
// service katmanı önce Validate çağırır.
func (r *CreateSuggestionRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.StreamURL = strings.TrimSpace(r.StreamURL)
	r.Description = strings.TrimSpace(r.Description)
	r.ContactEmail = strings.TrimSpace(r.ContactEmail)
	r.ContactPhone = strings.TrimSpace(r.ContactPhone)
	r.SubmitterEmail = strings.TrimSpace(r.SubmitterEmail)
	r.Country = strings.TrimSpace(r.Country)
	r.Language = strings.TrimSpace(r.Language)

	required := []struct {
		value string
		field string
	}{
		{r.Name, "name"},
		{r.StreamURL, "stream_url"},
		{r.Description, "description"},
		{r.ContactEmail, "contact_email"},
		{r.ContactPhone, "contact_phone"},
		{r.SubmitterEmail, "submitter_email"},
		{r.Country, "country"},
		{r.Language, "language"},
	}
	for _, req := range required {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.field)
		}
	}

	if len(r.Tags) == 0 {
		return fmt.Errorf("tags is required")
	}

	if !EmailRegex().MatchString(r.ContactEmail) {
		return fmt.Errorf("invalid contact_email format")
	}
	if !EmailRegex().MatchString(r.SubmitterEmail) {
		return fmt.Errorf("invalid submitter_email format")
	}

	if !strings.HasPrefix(r.StreamURL, "http://") && !strings.HasPrefix(r.StreamURL, "https://") {
		return fmt.Errorf("stream_url must be an http(s) URL")
	}

	return nil
}

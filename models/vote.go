package models

import "time"

// SuggestionVote, öneri sıralama mekanizması için tek bir oyu temsil eder.
//
// Reaction'dan ayrı bir kavramdır: Reaction istasyon beğenisi,
// SuggestionVote ise öneri sıralaması içindir. Duplicate oy denemesi
// AÇIK HATA ile reddedilir (pkg.ErrAlreadyVoted) — sessiz dedup yok.
type SuggestionVote struct {
	ID           string    `json:"id"`
	SuggestionID string    `json:"suggestion_id"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

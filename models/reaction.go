package models

import "time"

// ReactionType, bir reaction'ın türü.
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// Valid, tipin bilinen bir değer olup olmadığını kontrol eder.
func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Reaction, bir kullanıcının bir istasyona verdiği like/dislike'ı temsil eder.
//
// UNIQUE(station_id, user_id) constraint'i sayesinde bir kullanıcı bir
// istasyona aynı anda EN FAZLA BİR reaction tutar. Tip değiştirmek
// atomik DEĞİLDİR — caller önce mevcut reaction'ı siler, sonra yenisini
// ekler. Aynı kullanıcının iki tab'dan eş zamanlı switch'i yarışabilir
// (bilinen sınırlama); constraint duplicate satırı her durumda engeller.
type Reaction struct {
	ID        string       `json:"id"`
	StationID string       `json:"station_id"`
	UserID    string       `json:"user_id"`
	Type      ReactionType `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
}

// ReactionCounts, bir istasyonun toplu reaction görünümü.
type ReactionCounts struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

package models

import "time"

// Favorite, bir kullanıcının bir istasyonu işaretlemesini temsil eder.
// DB'deki "favorites" tablosunun Go karşılığı — sadece authenticated
// kullanıcılar için; anonim favoriler pkg/localstore'da yaşar.
//
// UNIQUE(user_id, station_id) constraint'i sayesinde aynı çift iki kez
// eklenemez; duplicate ekleme hata değil no-op'tur.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StationID string    `json:"station_id"`
	CreatedAt time.Time `json:"created_at"`
}

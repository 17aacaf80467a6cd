// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model nedir?
// Veritabanındaki bir tablonun veya harici API'den gelen bir kaydın Go
// karşılığıdır. json tag'leri API response'larının şeklini belirler.
package models

import "time"

// Station, çalınabilir bir radyo kaynağını temsil eder.
//
// İki kaynaktan gelir:
//  1. Harici radio-browser API'si — ID alanı stationuuid'dir
//  2. Approved öneri tablosu — ID alanı suggestion row id'sidir
//
// İki kaynak arası ID çakışması ele alınmaz; merge sırasında
// case-insensitive isim eşleşmesi best-effort dedup anahtarıdır.
type Station struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	URLResolved string    `json:"url_resolved"` // Playlist çözümlenmiş asıl stream URL'i
	Homepage    string    `json:"homepage"`
	Favicon     string    `json:"favicon"`
	Tags        []string  `json:"tags"`
	Country     string    `json:"country"`
	CountryCode string    `json:"country_code"`
	Language    string    `json:"language"`
	Votes       int       `json:"votes"`
	Codec       string    `json:"codec"`
	Bitrate     int       `json:"bitrate"`
	LastCheckOK bool      `json:"last_check_ok"`
	LastCheckAt time.Time `json:"last_check_at"`
	ClickCount  int       `json:"click_count"`
	ClickTrend  int       `json:"click_trend"`

	// Sponsored: approved öneriden gelen istasyonlar true taşır —
	// frontend bunları listede rozet ile gösterir.
	Sponsored bool `json:"sponsored"`
}

// StreamURL, çalınacak asıl URL'i döner: resolved varsa o, yoksa ham URL.
func (s *Station) StreamURL() string {
	if s.URLResolved != "" {
		return s.URLResolved
	}
	return s.URL
}

// NameTag, radio-browser'ın countries/languages/tags endpoint'lerinin
// ortak dönüş şekli: isim + o isimdeki istasyon sayısı.
type NameTag struct {
	Name         string `json:"name"`
	StationCount int    `json:"station_count"`
}

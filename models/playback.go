package models

// PlaybackStatus, bir çalma oturumunun durum makinesindeki yerini temsil eder.
//
// Geçişler:
//
//	Idle → Loading → Playing ⇄ Paused
//	Loading → Idle (hata; istasyon korunur)
//	herhangi bir durum → Idle (StopPlayback)
//	herhangi bir durumdan PlayStation → implicit stop + yeniden Loading
type PlaybackStatus string

const (
	PlaybackIdle    PlaybackStatus = "idle"
	PlaybackLoading PlaybackStatus = "loading"
	PlaybackPlaying PlaybackStatus = "playing"
	PlaybackPaused  PlaybackStatus = "paused"
)

// PlaybackState, tek bir client'ın çalma oturumunun anlık görünümü.
//
// CurrentStation hata durumunda bile korunur (otomatik rollback yok) —
// kullanıcı retry edebilsin diye. Sadece StopPlayback temizler.
type PlaybackState struct {
	CurrentStation *Station       `json:"current_station"` // nil = hiçbir istasyon yüklü değil
	IsPlaying      bool           `json:"is_playing"`
	Volume         float64        `json:"volume"` // [0,1] aralığına clamp'lenir
	IsLoading      bool           `json:"is_loading"`
	Status         PlaybackStatus `json:"status"`
}

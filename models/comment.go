package models

import "time"

// Comment, bir istasyona yazılmış kalıcı metin yorumunu temsil eder.
// Yazan kullanıcıya aittir — sadece o silebilir.
type Comment struct {
	ID        string    `json:"id"`
	StationID string    `json:"station_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"` // JOIN ile doldurulur — frontend için
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// LiveComment, istasyonun o anki dinleme oturumuna bağlı efemer yorumdur.
// Comment'ten farkı: oluşturulduğunda istasyonun ws room'una broadcast
// edilir ve opsiyonel bir ithaf hedefi (dedication) taşıyabilir.
type LiveComment struct {
	ID          string    `json:"id"`
	StationID   string    `json:"station_id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Content     string    `json:"content"`
	DedicatedTo *string   `json:"dedicated_to"` // nil = ithafsız normal yorum
	CreatedAt   time.Time `json:"created_at"`
}

// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları ve istasyon room'larını yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
//
// Event akışı (live comment örneği):
// 1. Dinleyici yorum gönderir → HTTP POST → Service → DB kayıt
// 2. Service, Hub'ın BroadcastToStation metodunu çağırır
// 3. Hub, event'i o istasyonun room'undaki tüm client'lara iletir
// 4. Her client'ın WritePump'ı event'i WebSocket'e yazar
//
// Chat uygulamalarından farkı: room üyeliği kanal üyeliği değil, "şu an
// bu istasyonu dinliyorum" beyanıdır — client subscribe_station ile girer,
// unsubscribe_station veya bağlantı kopuşu ile çıkar.
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "live_comment_create", "heartbeat" vb.
// Data: Event'e özgü payload.
// Seq (sequence number): Her outbound event'e verilen artan sayı.
//
//	Frontend eksik event tespit etmek için seq'i takip eder.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// ────────────────────────────────────────────
// Operation sabitleri
// ────────────────────────────────────────────

// Client → Server operasyonları
const (
	OpHeartbeat          = "heartbeat"           // Client her 30sn'de gönderir — "hâlâ bağlıyım" sinyali
	OpSubscribeStation   = "subscribe_station"   // Bu istasyonun room'una katıl (dinlemeye başladım)
	OpUnsubscribeStation = "unsubscribe_station" // Room'dan ayrıl (dinlemeyi bıraktım)
)

// Server → Client operasyonları
const (
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt — "seni duydum"

	// Live comment operasyonları — sadece ilgili istasyonun room'una gider
	OpLiveCommentCreate = "live_comment_create" // Yeni canlı yorum / ithaf
	OpLiveCommentDelete = "live_comment_delete" // Canlı yorum silindi

	// Playback operasyonları — sadece ilgili client'a gider.
	// Aynı client_id'nin birden fazla tab'ı varsa hepsi aynı oturum
	// durumunu görür.
	OpPlaybackUpdate = "playback_update"

	// Favorites operasyonları — kullanıcının tüm bağlantılarına gider
	OpFavoritesUpdate = "favorites_update"

	// Reaction sayaçları değişti — istasyonun room'una gider
	OpReactionUpdate = "reaction_update"
)

// StationData, subscribe/unsubscribe event'lerinin payload'ı.
type StationData struct {
	StationID string `json:"station_id"`
}

// ReactionUpdateData, reaction_update event'inin payload'ı.
type ReactionUpdateData struct {
	StationID string `json:"station_id"`
	Likes     int    `json:"likes"`
	Dislikes  int    `json:"dislikes"`
}

// FavoritesUpdateData, favorites_update event'inin payload'ı.
// Frontend tam listeyi alır — incremental diff takibine gerek kalmaz.
type FavoritesUpdateData struct {
	StationIDs []string `json:"station_ids"`
}

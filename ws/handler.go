package ws

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/akinalp/dalga/models"
)

// TokenValidator, WebSocket handler'ın JWT doğrulaması için kullandığı interface.
//
// Neden services.AuthService yerine kendi interface'imizi tanımlıyoruz?
// Circular dependency'yi önlemek için:
// - services paketi ws.EventPublisher'ı kullanıyor (broadcast için)
// - ws paketi services.AuthService'i kullansaydı → ws → services → ws döngüsü oluşurdu
//
// Interface Segregation Principle (ISP):
// WS handler'ın AuthService'in tüm metodlarına ihtiyacı yok.
// Sadece ValidateAccessToken yeterli. main.go'da authService bu
// interface'i otomatik karşılar (Go'da implicit interface).
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// upgrader, HTTP bağlantısını WebSocket bağlantısına yükseltir.
//
// WebSocket, normal HTTP isteği olarak başlar ve "upgrade" ile kalıcı,
// çift yönlü bir bağlantıya dönüşür.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin: Production'da domain kontrolü yapılmalı.
	// Şimdilik tüm origin'lere izin veriyoruz (development için).
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
}

// NewHandler, yeni bir WebSocket handler oluşturur.
func NewHandler(hub *Hub, tokenValidator TokenValidator) *Handler {
	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
	}
}

// HandleConnection, HTTP bağlantısını WebSocket'e yükseltir ve client'ı Hub'a kaydeder.
//
// Dinleme ANONİM bir aktivitedir — token opsiyoneldir:
//
//	ws://server/ws?client_id=UUID             → anonim dinleyici
//	ws://server/ws?client_id=UUID&token=JWT   → authenticated dinleyici
//
// client_id her iki durumda da zorunludur: playback oturumu ve room
// üyeliği tarayıcı kimliğine bağlıdır, hesaba değil. Geçersiz token ise
// sessizce anonim'e düşürülmez — açık 401 döner ki frontend bayat
// token'ını yenilesin.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		http.Error(w, "missing client_id", http.StatusUnauthorized)
		return
	}
	// client_id frontend'in ürettiği bir UUID'dir — format kontrolü,
	// keyfi string'lerin room/session key'i olmasını engeller.
	if _, err := uuid.Parse(clientID); err != nil {
		http.Error(w, "invalid client_id", http.StatusBadRequest)
		return
	}

	var userID string
	if token := r.URL.Query().Get("token"); token != "" {
		claims, err := h.tokenValidator.ValidateAccessToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		userID = claims.UserID
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for client %s: %v", clientID, err)
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		clientID: clientID,
		userID:   userID,
		stations: make(map[string]bool),
		send:     make(chan []byte, sendBufferSize),
	}

	h.hub.register <- client

	// WritePump ayrı goroutine'de, ReadPump mevcut goroutine'de çalışır.
	// ReadPump bağlantı kapanana kadar bloklar — HTTP handler'ın erken
	// dönmesini engeller.
	go client.WritePump()
	client.ReadPump()
}

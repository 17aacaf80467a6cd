package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
)

// EventPublisher, service katmanının WebSocket event'leri broadcast etmek için
// kullandığı interface.
//
// Dependency Inversion: Service'ler Hub'ın concrete struct'ına değil,
// bu interface'e bağımlıdır. Böylece:
// 1. Service test edilirken mock EventPublisher kullanılabilir
// 2. Hub implementasyonu değişse bile service kodu etkilenmez
type EventPublisher interface {
	BroadcastToAll(event Event)
	BroadcastToUser(userID string, event Event)
	// BroadcastToClient, bir client id'nin TÜM bağlantılarına gönderir.
	// Playback update'leri buradan gider — oturum client'a aittir,
	// kullanıcıya değil (anonim dinleyicinin de oturumu vardır).
	BroadcastToClient(clientID string, event Event)
	// BroadcastToStation, o istasyonun room'undaki client'lara gönderir.
	// Live comment'ler ve reaction sayaçları buradan akar.
	BroadcastToStation(stationID string, event Event)
}

// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır (Observer pattern).
//
// Observer pattern nedir?
// Bir "subject" (Hub) birden fazla "observer"ı (Client) takip eder.
// Bir event olduğunda Hub, ilgili observer'lara bildirim gönderir.
//
// Üç ayrı indeks tutulur:
// - byClient: clientID → Client set (playback update hedeflemesi için)
// - byUser: userID → Client set (favorites update'leri — sadece authenticated)
// - rooms: stationID → Client set (live comment / reaction broadcast'i)
//
// map[*Client]bool — Go'da set yoktur, bool değeri her zaman true'dur.
type Hub struct {
	byClient map[string]map[*Client]bool
	byUser   map[string]map[*Client]bool
	rooms    map[string]map[*Client]bool

	// mu: üç map'i birden koruyan read-write mutex.
	// Broadcast okuma ağırlıklıdır — RLock ile eş zamanlı okumaya izin verilir.
	mu sync.RWMutex

	// register/unregister: Client giriş/çıkış sinyalleri.
	// Hub.Run() goroutine'i bu channel'lardan select ile okur.
	register   chan *Client
	unregister chan *Client

	// seq: Her outbound event'e verilen artan sayaç.
	// atomic.Int64: Birden fazla goroutine'in güvenle artırabildiği sayı.
	seq atomic.Int64
}

// NewHub, yeni bir Hub oluşturur.
func NewHub() *Hub {
	return &Hub{
		byClient:   make(map[string]map[*Client]bool),
		byUser:     make(map[string]map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run, Hub'ın ana event loop'udur. main.go'da `go hub.Run()` ile başlatılır.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.byClient[client.clientID]; !ok {
		h.byClient[client.clientID] = make(map[*Client]bool)
	}
	h.byClient[client.clientID][client] = true

	// userID sadece authenticated bağlantılarda doludur
	if client.userID != "" {
		if _, ok := h.byUser[client.userID]; !ok {
			h.byUser[client.userID] = make(map[*Client]bool)
		}
		h.byUser[client.userID][client] = true
	}

	log.Printf("[ws] client connected: client=%s user=%q", client.clientID, client.userID)
}

// removeClient, bir client'ı tüm indekslerden çıkarır ve send channel'ını kapatır.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.byClient[client.clientID]
	if !ok || !clients[client] {
		return // zaten çıkarılmış — double unregister
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.byClient, client.clientID)
	}

	if client.userID != "" {
		if userClients, ok := h.byUser[client.userID]; ok {
			delete(userClients, client)
			if len(userClients) == 0 {
				delete(h.byUser, client.userID)
			}
		}
	}

	// Bağlantı kopan client girdiği tüm room'lardan da düşer
	for stationID := range client.stations {
		h.leaveRoomLocked(client, stationID)
	}

	log.Printf("[ws] client disconnected: client=%s", client.clientID)
}

// joinRoom, client'ı bir istasyonun room'una ekler.
func (h *Hub) joinRoom(client *Client, stationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[stationID]; !ok {
		h.rooms[stationID] = make(map[*Client]bool)
	}
	h.rooms[stationID][client] = true
	client.stations[stationID] = true
}

// leaveRoom, client'ı bir istasyonun room'undan çıkarır.
func (h *Hub) leaveRoom(client *Client, stationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveRoomLocked(client, stationID)
}

// leaveRoomLocked, mutex zaten tutulurken room temizliği yapar.
func (h *Hub) leaveRoomLocked(client *Client, stationID string) {
	if room, ok := h.rooms[stationID]; ok {
		delete(room, client)
		// Boş room map'te bırakılmaz — istasyon sayısı sınırsızdır
		if len(room) == 0 {
			delete(h.rooms, stationID)
		}
	}
	delete(client.stations, stationID)
}

// BroadcastToAll, tüm bağlı client'lara event gönderir.
func (h *Hub) BroadcastToAll(event Event) {
	data, ok := h.marshal(&event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.byClient {
		for client := range clients {
			h.deliver(client, data)
		}
	}
}

// BroadcastToUser, bir kullanıcının tüm bağlantılarına event gönderir.
func (h *Hub) BroadcastToUser(userID string, event Event) {
	data, ok := h.marshal(&event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.byUser[userID] {
		h.deliver(client, data)
	}
}

// BroadcastToClient, bir client id'nin tüm bağlantılarına event gönderir.
func (h *Hub) BroadcastToClient(clientID string, event Event) {
	data, ok := h.marshal(&event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.byClient[clientID] {
		h.deliver(client, data)
	}
}

// BroadcastToStation, bir istasyonun room'undaki tüm client'lara gönderir.
func (h *Hub) BroadcastToStation(stationID string, event Event) {
	data, ok := h.marshal(&event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[stationID] {
		h.deliver(client, data)
	}
}

// marshal, event'e seq atar ve JSON'a çevirir.
func (h *Hub) marshal(event *Event) ([]byte, bool) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal event %s: %v", event.Op, err)
		return nil, false
	}
	return data, true
}

// deliver, tek bir client'a non-blocking gönderim yapar.
// Buffer doluysa client yavaş demektir — bağlantı kapatılır.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		go func(c *Client) { h.unregister <- c }(client)
	}
}

// Shutdown, tüm client bağlantılarını kapatır (graceful shutdown).
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.byClient {
		for client := range clients {
			close(client.send)
		}
	}
	h.byClient = make(map[string]map[*Client]bool)
	h.byUser = make(map[string]map[*Client]bool)
	h.rooms = make(map[string]map[*Client]bool)
	log.Println("[ws] hub shut down, all connections closed")
}

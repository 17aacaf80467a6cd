// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'ın görevi çok basit ve "ince" (thin) olmalı:
// 1. Request body'yi parse et (JSON → struct)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı (business logic) içermez.
// Handler ASLA doğrudan DB'ye erişmez.
// Tüm akıl service'de, handler sadece köprü.
package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/services"
)

// contextKey, context value'ları için özel tip.
// string yerine özel tip kullanmak, farklı paketlerin aynı string
// anahtarla çakışmasını önler.
type contextKey string

// UserContextKey, auth middleware'ın context'e eklediği *models.User anahtarı.
const UserContextKey contextKey = "user"

// ClientIDHeader, tarayıcının kalıcı anonim kimliğini taşıyan header.
// Frontend her istekte gönderir — playback oturumu ve anonim favoriler
// bu kimliğe bağlıdır.
const ClientIDHeader = "X-Client-ID"

// currentUser, context'ten authenticated kullanıcıyı döner.
// Require middleware'ından geçen isteklerde her zaman doludur;
// Optional'dan geçenlerde olmayabilir.
func currentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	return user, ok
}

// clientIDFromHeader, X-Client-ID header'ını okur ve UUID formatını doğrular.
// Bozuk bir değer boş string gibi davranır — handler'lar "client id yok"
// yoluna düşer ve 400 döner.
func clientIDFromHeader(r *http.Request) string {
	clientID := r.Header.Get(ClientIDHeader)
	if clientID == "" {
		return ""
	}
	if _, err := uuid.Parse(clientID); err != nil {
		return ""
	}
	return clientID
}

// identity, isteğin sahibini (client id + opsiyonel user) çıkarır.
// Favori endpoint'lerinin auth-durumu-bağımsız sözleşmesi buradan beslenir.
func identity(r *http.Request) services.Identity {
	id := services.Identity{ClientID: clientIDFromHeader(r)}
	if user, ok := currentUser(r); ok {
		id.UserID = user.ID
	}
	return id
}

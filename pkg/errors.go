// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir (string taşıyan struct'lar).
// errors.New() ile sabit error değişkenleri tanımlarız.
// Böylece error karşılaştırması string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Bu, typo'ya açık string karşılaştırmasından çok daha güvenlidir.
package pkg

import "errors"

// Domain-level error'lar.
// Handler katmanı bu error'ları HTTP status code'larına map'ler.
// Service katmanı bunları döner, handler yakalar.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")

	// ErrAlreadyVoted, öneri oylamasındaki uniqueness ihlali için ÖZEL error.
	// Generic ErrAlreadyExists'ten ayrı tutulur çünkü frontend kullanıcıya
	// "already voted" mesajını göstermek zorunda — sessiz dedup YOK
	// (favori ekleme no-op'tur, oy tekrarı açık hatadır).
	ErrAlreadyVoted = errors.New("already voted")

	// ErrUpstream, harici radyo dizini API'sine ulaşılamadığında döner.
	// Directory merge'de internal store hatası tolere edilir ama
	// upstream hatası caller'a bu error ile propagate edilir.
	ErrUpstream = errors.New("upstream radio directory unavailable")
)

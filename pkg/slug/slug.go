// Package slug, radyo isimlerinden deterministik URL slug'ları üretir.
//
// Öneri tablosundaki her kayıt, isimden türetilmiş bir slug taşır:
// "Radio Okapi!" → "radio-okapi", "Télé-Congo 2000" → "tele-congo-2000".
//
// Kurallar (sıralı):
//  1. Lowercase + baştaki/sondaki boşlukları kırp
//  2. Unicode diacritic'leri soy (é→e, ç→c) — NFD decompose + combining
//     mark'ları sil + NFC recompose (golang.org/x/text)
//  3. Alfanumerik olmayan ardışık karakterleri TEK tireye indir
//  4. Baştaki/sondaki tireleri kırp
//
// Fonksiyon pure'dur: aynı input her zaman aynı output'u verir,
// hiçbir global state okumaz/yazmaz.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nonAlnum, a-z ve 0-9 dışındaki ardışık karakter gruplarını yakalar.
// Paket seviyesinde compile edilir — her Make çağrısında tekrar compile edilmez.
var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// stripDiacritics, combining mark'ları (unicode.Mn kategorisi) silen transformer.
// NFD: "é" → "e" + U+0301 (combining acute). runes.Remove combining'i siler,
// NFC geri compose eder — geriye saf "e" kalır.
var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Make, verilen isimden slug üretir.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	// Diacritic'leri soy. Transform hatası pratikte oluşmaz (input valid
	// UTF-8 string); oluşursa ham string ile devam edilir.
	if folded, _, err := transform.String(stripDiacritics, s); err == nil {
		s = folded
	}

	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

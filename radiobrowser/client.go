// Package radiobrowser, harici radio-browser.info API'sinin HTTP client'ıdır.
//
// API read-only ve auth'suzdur: istasyon listeleri, arama, ülke/dil/tag
// listeleri, topvote/topclick sıralamaları ve click-registration ping'i.
//
// Timeout YOK: network operasyonlarına timeout uygulanmaz — asılı kalan
// bir istek sadece kendi caller'ını bloklar, oturumun geri kalanını değil.
// İptal tek yoldan mümkündür: caller'ın context'i.
package radiobrowser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
)

// Client, radio-browser API client'ı.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// New, yeni bir Client oluşturur.
//
// userAgent zorunlu görgü kuralıdır: radio-browser dokümantasyonu her
// uygulamanın kendini tanıtan bir User-Agent göndermesini ister.
func New(baseURL, userAgent string) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      &http.Client{},
	}
}

// Countries, ülke listesini döner (isim + istasyon sayısı).
func (c *Client) Countries(ctx context.Context) ([]models.NameTag, error) {
	return c.getNameCounts(ctx, "/json/countries")
}

// Languages, dil listesini döner.
func (c *Client) Languages(ctx context.Context) ([]models.NameTag, error) {
	return c.getNameCounts(ctx, "/json/languages")
}

// Tags, tag listesini döner.
func (c *Client) Tags(ctx context.Context) ([]models.NameTag, error) {
	return c.getNameCounts(ctx, "/json/tags")
}

// StationsByCountry, verilen ülkedeki istasyonları döner.
func (c *Client) StationsByCountry(ctx context.Context, country string) ([]models.Station, error) {
	return c.getStations(ctx, "/json/stations/bycountry/"+url.PathEscape(country))
}

// StationsByLanguage, verilen dildeki istasyonları döner.
func (c *Client) StationsByLanguage(ctx context.Context, language string) ([]models.Station, error) {
	return c.getStations(ctx, "/json/stations/bylanguage/"+url.PathEscape(language))
}

// StationsByTag, verilen tag'deki istasyonları döner.
func (c *Client) StationsByTag(ctx context.Context, tag string) ([]models.Station, error) {
	return c.getStations(ctx, "/json/stations/bytag/"+url.PathEscape(tag))
}

// Search, isim bazlı istasyon araması yapar.
func (c *Client) Search(ctx context.Context, name string) ([]models.Station, error) {
	return c.getStations(ctx, "/json/stations/search?name="+url.QueryEscape(name))
}

// StationByUUID, tek bir istasyonu uuid ile getirir.
// API array döner — boş array = bulunamadı.
func (c *Client) StationByUUID(ctx context.Context, uuid string) (*models.Station, error) {
	stations, err := c.getStations(ctx, "/json/stations/byuuid/"+url.PathEscape(uuid))
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		return nil, pkg.ErrNotFound
	}
	return &stations[0], nil
}

// TopVote, en çok oylanmış n istasyonu döner.
func (c *Client) TopVote(ctx context.Context, limit int) ([]models.Station, error) {
	return c.getStations(ctx, fmt.Sprintf("/json/stations/topvote/%d", limit))
}

// TopClick, en çok tıklanmış n istasyonu döner.
func (c *Client) TopClick(ctx context.Context, limit int) ([]models.Station, error) {
	return c.getStations(ctx, fmt.Sprintf("/json/stations/topclick/%d", limit))
}

// Click, istasyonun çalındığını API'ye bildirir (click sayacı artar).
// radio-browser bu ping'i istasyon popülerlik istatistiği için kullanır.
func (c *Client) Click(ctx context.Context, uuid string) error {
	body, err := c.get(ctx, "/json/url/"+url.PathEscape(uuid))
	if err != nil {
		return err
	}
	body.Close()
	return nil
}

// ─── Internal Helpers ───

func (c *Client) getStations(ctx context.Context, path string) ([]models.Station, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var raw []apiStation
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode stations: %v", pkg.ErrUpstream, err)
	}

	stations := make([]models.Station, 0, len(raw))
	for i := range raw {
		stations = append(stations, raw[i].toModel())
	}
	return stations, nil
}

func (c *Client) getNameCounts(ctx context.Context, path string) ([]models.NameTag, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var raw []apiNameCount
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode list: %v", pkg.ErrUpstream, err)
	}

	items := make([]models.NameTag, 0, len(raw))
	for i := range raw {
		items = append(items, raw[i].toModel())
	}
	return items, nil
}

// get, GET isteği yapar ve başarılı response body'sini döner.
// Caller body'yi kapatmakla yükümlüdür.
func (c *Client) get(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %d for %s", pkg.ErrUpstream, resp.StatusCode, path)
	}

	return resp.Body, nil
}

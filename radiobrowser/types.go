package radiobrowser

import (
	"strings"
	"time"

	"github.com/akinalp/dalga/models"
)

// apiStation, radio-browser API'sinin ham istasyon JSON şekli.
// API'nin alan isimleri (stationuuid, url_resolved, lastcheckok...) wire
// format'tır — domain modeline burada çevrilir, uygulamanın geri kalanı
// bu tipi hiç görmez.
type apiStation struct {
	StationUUID    string `json:"stationuuid"`
	Name           string `json:"name"`
	URL            string `json:"url"`
	URLResolved    string `json:"url_resolved"`
	Homepage       string `json:"homepage"`
	Favicon        string `json:"favicon"`
	Tags           string `json:"tags"` // virgülle ayrılmış tek string
	Country        string `json:"country"`
	CountryCode    string `json:"countrycode"`
	Language       string `json:"language"`
	Votes          int    `json:"votes"`
	Codec          string `json:"codec"`
	Bitrate        int    `json:"bitrate"`
	LastCheckOK    int    `json:"lastcheckok"` // 1 = son health check başarılı
	LastCheckTime  string `json:"lastchecktime_iso8601"`
	ClickCount     int    `json:"clickcount"`
	ClickTrend     int    `json:"clicktrend"`
}

// toModel, API kaydını domain Station'a çevirir.
func (a *apiStation) toModel() models.Station {
	st := models.Station{
		ID:          a.StationUUID,
		Name:        a.Name,
		URL:         a.URL,
		URLResolved: a.URLResolved,
		Homepage:    a.Homepage,
		Favicon:     a.Favicon,
		Country:     a.Country,
		CountryCode: a.CountryCode,
		Language:    a.Language,
		Votes:       a.Votes,
		Codec:       a.Codec,
		Bitrate:     a.Bitrate,
		LastCheckOK: a.LastCheckOK == 1,
		ClickCount:  a.ClickCount,
		ClickTrend:  a.ClickTrend,
	}

	if a.Tags != "" {
		for _, tag := range strings.Split(a.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				st.Tags = append(st.Tags, tag)
			}
		}
	}

	if t, err := time.Parse(time.RFC3339, a.LastCheckTime); err == nil {
		st.LastCheckAt = t
	}

	return st
}

// apiNameCount, countries/languages/tags endpoint'lerinin ortak dönüş şekli.
type apiNameCount struct {
	Name         string `json:"name"`
	StationCount int    `json:"stationcount"`
}

func (a *apiNameCount) toModel() models.NameTag {
	return models.NameTag{Name: a.Name, StationCount: a.StationCount}
}

package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
)

const (
	defaultNominatimBaseURL   = "https://nominatim.openstreetmap.org"
	defaultNominatimUserAgent = "MiddleMeetup/1.0 (contact@middlemeetup.com)"
)

// NominatimClient はOpenStreetMap Nominatimを使用したSecondaryGeocoderの実装
// 利用規約上、リクエストは1秒1件までに制限する
type NominatimClient struct {
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewNominatimClient は新しいNominatimClientを生成する
func NewNominatimClient(baseURL, userAgent string, requestsPerSecond float64, timeout time.Duration) *NominatimClient {
	if baseURL == "" {
		baseURL = defaultNominatimBaseURL
	}
	if userAgent == "" {
		userAgent = defaultNominatimUserAgent
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NominatimClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ repository.SecondaryGeocoder = (*NominatimClient)(nil)

// nominatimResult はNominatimの検索結果1件（lat/lonは文字列で返る）
type nominatimResult struct {
	DisplayName string        `json:"display_name"`
	Lat         string        `json:"lat"`
	Lon         string        `json:"lon"`
	Type        string        `json:"type"`
	Importance  flexibleFloat `json:"importance"`
}

// flexibleFloat は数値・文字列のどちらで返っても読み取れるfloat
type flexibleFloat float64

func (f *flexibleFloat) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("数値に変換できません: %s", raw)
	}
	*f = flexibleFloat(v)
	return nil
}

// Search は住所文字列から座標付きの候補を取得する
func (n *NominatimClient) Search(ctx context.Context, query string, limit int) ([]model.AddressCandidate, error) {
	if limit <= 0 {
		limit = 5
	}
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("addressdetails", "1")
	params.Set("extratags", "1")

	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("レート制限の待機中に中断されました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Nominatim APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Nominatim APIからエラーステータスが返されました: %s", resp.Status)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	candidates := make([]model.AddressCandidate, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lng, lngErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		resultType := r.Type
		if resultType == "" {
			resultType = "location"
		}
		candidates = append(candidates, model.AddressCandidate{
			DisplayName:    r.DisplayName,
			Coordinates:    model.LatLng{Lat: lat, Lng: lng},
			Importance:     float64(r.Importance),
			Type:           resultType,
			FullAddress:    r.DisplayName,
			PlaceFormatted: r.DisplayName,
			FeatureType:    resultType,
		})
	}
	return candidates, nil
}

package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
)

const (
	defaultMapboxBaseURL = "https://api.mapbox.com/search/searchbox/v1"
	// mapboxMaxSuggestions はSearch Box APIが受け付けるlimitの上限
	mapboxMaxSuggestions = 10
)

// ErrMapboxTokenMissing はアクセストークン未設定のエラー
var ErrMapboxTokenMissing = errors.New("MAPBOX_ACCESS_TOKENが設定されていません")

// featureTypeScores はMapboxのfeature_typeごとの重要度
var featureTypeScores = map[string]float64{
	"address":      1.0,
	"poi":          0.9,
	"place":        0.8,
	"locality":     0.7,
	"neighborhood": 0.6,
	"region":       0.4,
	"country":      0.2,
}

// MapboxClient はMapbox Search Box APIを使用したPrimaryGeocoderの実装
type MapboxClient struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

// NewMapboxClient は新しいMapboxClientを生成する
func NewMapboxClient(accessToken string, timeout time.Duration) *MapboxClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MapboxClient{
		accessToken: accessToken,
		baseURL:     defaultMapboxBaseURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL はエンドポイントを差し替えたクライアントを返す
func (m *MapboxClient) WithBaseURL(baseURL string) *MapboxClient {
	clone := *m
	clone.baseURL = strings.TrimRight(baseURL, "/")
	return &clone
}

var _ repository.PrimaryGeocoder = (*MapboxClient)(nil)

type mapboxSuggestResponse struct {
	Suggestions []mapboxSuggestion `json:"suggestions"`
}

type mapboxSuggestion struct {
	Name           string   `json:"name"`
	MapboxID       string   `json:"mapbox_id"`
	FeatureType    string   `json:"feature_type"`
	Address        string   `json:"address"`
	FullAddress    string   `json:"full_address"`
	PlaceFormatted string   `json:"place_formatted"`
	POICategory    []string `json:"poi_category"`
	Maki           string   `json:"maki"`
	Distance       *float64 `json:"distance"`
}

type mapboxFeatureResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lng, lat]
		} `json:"geometry"`
	} `json:"features"`
}

// Suggest は入力途中の文字列から住所候補を取得する
// 候補の座標は(0,0)のままで、選択時にRetrieveで解決する
func (m *MapboxClient) Suggest(ctx context.Context, query string, limit int, sessionToken string) ([]model.AddressCandidate, error) {
	if limit <= 0 || limit > mapboxMaxSuggestions {
		limit = mapboxMaxSuggestions
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("language", "en")
	params.Set("session_token", sessionToken)

	var resp mapboxSuggestResponse
	if err := m.get(ctx, "/suggest", params, &resp); err != nil {
		return nil, err
	}

	candidates := make([]model.AddressCandidate, 0, len(resp.Suggestions))
	for _, s := range resp.Suggestions {
		candidates = append(candidates, model.AddressCandidate{
			DisplayName:    s.displayName(),
			SourceID:       s.MapboxID,
			Importance:     importanceScore(s),
			Type:           s.candidateType(),
			FullAddress:    s.FullAddress,
			PlaceFormatted: s.PlaceFormatted,
			FeatureType:    s.FeatureType,
			POICategory:    s.POICategory,
			Maki:           s.Maki,
			Distance:       s.Distance,
		})
	}
	return candidates, nil
}

// Retrieve はSuggestで得たmapbox_idから座標を取得する
func (m *MapboxClient) Retrieve(ctx context.Context, sourceID string, sessionToken string) (*model.LatLng, error) {
	if sourceID == "" {
		return nil, errors.New("mapbox_idが空です")
	}
	params := url.Values{}
	params.Set("session_token", sessionToken)

	var resp mapboxFeatureResponse
	if err := m.get(ctx, "/retrieve/"+url.PathEscape(sourceID), params, &resp); err != nil {
		return nil, err
	}
	return resp.firstCoordinates()
}

// Forward は完全な住所文字列を1件の座標に解決する
func (m *MapboxClient) Forward(ctx context.Context, address string) (*model.LatLng, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("limit", "1")
	params.Set("language", "en")

	var resp mapboxFeatureResponse
	if err := m.get(ctx, "/forward", params, &resp); err != nil {
		return nil, err
	}
	return resp.firstCoordinates()
}

func (m *MapboxClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if m.accessToken == "" {
		return ErrMapboxTokenMissing
	}
	params.Set("access_token", m.accessToken)
	reqURL := m.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("Mapbox APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Mapbox APIからエラーステータスが返されました: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("JSONのパースに失敗: %w", err)
	}
	return nil
}

func (r *mapboxFeatureResponse) firstCoordinates() (*model.LatLng, error) {
	if len(r.Features) == 0 || len(r.Features[0].Geometry.Coordinates) < 2 {
		return nil, errors.New("Mapboxから座標が返されませんでした")
	}
	coords := r.Features[0].Geometry.Coordinates
	return &model.LatLng{Lat: coords[1], Lng: coords[0]}, nil
}

func (s mapboxSuggestion) displayName() string {
	if s.FullAddress != "" {
		return s.FullAddress
	}
	return s.Name
}

func (s mapboxSuggestion) candidateType() string {
	if s.FeatureType == "" {
		return "location"
	}
	return s.FeatureType
}

// importanceScore は候補の並び順に使う重要度を計算する（最大1.0）
func importanceScore(s mapboxSuggestion) float64 {
	score := 0.5
	if v, ok := featureTypeScores[s.FeatureType]; ok {
		score += v
	} else {
		score += 0.5
	}
	if len(s.POICategory) > 0 {
		score += 0.2
	}
	if s.Distance != nil {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

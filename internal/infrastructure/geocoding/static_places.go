package geocoding

import (
	"sort"
	"strings"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
)

// staticAddress は住所サジェスト用の固定候補
type staticAddress struct {
	name       string
	lat, lng   float64
	kind       string
	importance float64
}

// staticCoordinate は住所解決用の固定座標（キーは小文字）
type staticCoordinate struct {
	key      string
	lat, lng float64
}

var staticAddresses = []staticAddress{
	{"New York, NY, United States", 40.7128, -74.006, "city", 0.9},
	{"New York City, NY, United States", 40.7128, -74.006, "city", 0.95},
	{"Manhattan, New York, NY, United States", 40.7831, -73.9712, "district", 0.8},
	{"Brooklyn, New York, NY, United States", 40.6782, -73.9442, "district", 0.8},
	{"Los Angeles, CA, United States", 34.0522, -118.2437, "city", 0.9},
	{"LA, California, United States", 34.0522, -118.2437, "city", 0.85},
	{"Chicago, IL, United States", 41.8781, -87.6298, "city", 0.9},
	{"Houston, TX, United States", 29.7604, -95.3698, "city", 0.9},
	{"Phoenix, AZ, United States", 33.4484, -112.074, "city", 0.9},
	{"Philadelphia, PA, United States", 39.9526, -75.1652, "city", 0.9},
	{"San Antonio, TX, United States", 29.4241, -98.4936, "city", 0.85},
	{"San Diego, CA, United States", 32.7157, -117.1611, "city", 0.85},
	{"Dallas, TX, United States", 32.7767, -96.797, "city", 0.9},
	{"San Jose, CA, United States", 37.3382, -121.8863, "city", 0.85},
	{"San Francisco, CA, United States", 37.7749, -122.4194, "city", 0.9},
	{"Seattle, WA, United States", 47.6062, -122.3321, "city", 0.9},
	{"Boston, MA, United States", 42.3601, -71.0589, "city", 0.9},
	{"Miami, FL, United States", 25.7617, -80.1918, "city", 0.85},
	{"Denver, CO, United States", 39.7392, -104.9903, "city", 0.85},
	{"London, United Kingdom", 51.5074, -0.1278, "city", 0.95},
	{"Paris, France", 48.8566, 2.3522, "city", 0.95},
	{"Tokyo, Japan", 35.6762, 139.6503, "city", 0.95},
	{"Sydney, Australia", -33.8688, 151.2093, "city", 0.9},
	{"Toronto, ON, Canada", 43.6532, -79.3832, "city", 0.9},
	{"Vancouver, BC, Canada", 49.2827, -123.1207, "city", 0.85},
}

// 入力の一部にしか一致しない場合は先頭から評価するため順序に意味がある
var staticCoordinates = []staticCoordinate{
	{"new york", 40.7128, -74.006},
	{"new york city", 40.7128, -74.006},
	{"nyc", 40.7128, -74.006},
	{"manhattan", 40.7831, -73.9712},
	{"brooklyn", 40.6782, -73.9442},
	{"los angeles", 34.0522, -118.2437},
	{"la", 34.0522, -118.2437},
	{"chicago", 41.8781, -87.6298},
	{"houston", 29.7604, -95.3698},
	{"phoenix", 33.4484, -112.074},
	{"philadelphia", 39.9526, -75.1652},
	{"san antonio", 29.4241, -98.4936},
	{"san diego", 32.7157, -117.1611},
	{"dallas", 32.7767, -96.797},
	{"san jose", 37.3382, -121.8863},
	{"san francisco", 37.7749, -122.4194},
	{"seattle", 47.6062, -122.3321},
	{"boston", 42.3601, -71.0589},
	{"miami", 25.7617, -80.1918},
	{"denver", 39.7392, -104.9903},
	{"london", 51.5074, -0.1278},
	{"paris", 48.8566, 2.3522},
	{"tokyo", 35.6762, 139.6503},
	{"sydney", -33.8688, 151.2093},
	{"toronto", 43.6532, -79.3832},
	{"vancouver", 49.2827, -123.1207},
}

// StaticPlaceTable は外部プロバイダが全て失敗した場合の最終フォールバック
type StaticPlaceTable struct{}

// NewStaticPlaceTable は固定テーブルを返す
func NewStaticPlaceTable() *StaticPlaceTable {
	return &StaticPlaceTable{}
}

var _ repository.StaticGeocoder = (*StaticPlaceTable)(nil)

// Search は表示名に部分一致（大文字小文字を無視）する候補を重要度順に返す
func (t *StaticPlaceTable) Search(query string, limit int) []model.AddressCandidate {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return []model.AddressCandidate{}
	}

	matches := make([]model.AddressCandidate, 0)
	for _, a := range staticAddresses {
		if !strings.Contains(strings.ToLower(a.name), normalized) {
			continue
		}
		matches = append(matches, model.AddressCandidate{
			DisplayName: a.name,
			Coordinates: model.LatLng{Lat: a.lat, Lng: a.lng},
			Importance:  a.importance,
			Type:        a.kind,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Importance > matches[j].Importance
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Lookup は住所を完全一致、次に部分一致（双方向）で座標に解決する
func (t *StaticPlaceTable) Lookup(address string) *model.LatLng {
	normalized := strings.ToLower(strings.TrimSpace(address))
	if normalized == "" {
		return nil
	}

	for _, c := range staticCoordinates {
		if c.key == normalized {
			return &model.LatLng{Lat: c.lat, Lng: c.lng}
		}
	}
	// 入力に含まれるキーのうち最長のものを優先する（"dallas"が"la"に化けないように）
	var best *staticCoordinate
	for i := range staticCoordinates {
		c := &staticCoordinates[i]
		if strings.Contains(normalized, c.key) && (best == nil || len(c.key) > len(best.key)) {
			best = c
		}
	}
	if best == nil {
		for i := range staticCoordinates {
			if strings.Contains(staticCoordinates[i].key, normalized) {
				best = &staticCoordinates[i]
				break
			}
		}
	}
	if best == nil {
		return nil
	}
	return &model.LatLng{Lat: best.lat, Lng: best.lng}
}

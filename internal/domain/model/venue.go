package model

// VenuePlaceholderImage はAI・フォールバック由来の会場に付与する画像
const VenuePlaceholderImage = "/placeholder.svg?height=200&width=300"

// DefaultSearchRadiusKm は会場検索のデフォルト半径
const DefaultSearchRadiusKm = 10.0

// Venue 推薦された会場
type Venue struct {
	ID                 string   `json:"id"` // 1回の推薦結果内でユニーク
	Name               string   `json:"name"`
	Address            string   `json:"address"`
	Coordinates        LatLng   `json:"coordinates"`
	Rating             *float64 `json:"rating,omitempty"` // 1〜5（不明ならnil）
	Type               string   `json:"type"`             // カテゴリタグ
	Description        string   `json:"description,omitempty"`
	ImageURL           string   `json:"image_url,omitempty"`
	MapLink            string   `json:"google_maps_link,omitempty"`
	DistanceFromParty1 float64  `json:"distance_from_party1"` // km
	DistanceFromParty2 float64  `json:"distance_from_party2"` // km
}

// AverageDistanceKm 2人からの平均距離
func (v *Venue) AverageDistanceKm() float64 {
	return (v.DistanceFromParty1 + v.DistanceFromParty2) / 2
}

// MaxDistanceKm 2人のうち遠い方の距離
func (v *Venue) MaxDistanceKm() float64 {
	if v.DistanceFromParty1 > v.DistanceFromParty2 {
		return v.DistanceFromParty1
	}
	return v.DistanceFromParty2
}

// Experience 計画に追加された会場と選択メタデータ
type Experience struct {
	ID                       string   `json:"id"`
	Venue                    Venue    `json:"venue"`
	SelectedActivities       []string `json:"selected_activities"`
	Order                    int      `json:"order"` // 1..Nで連番
	EstimatedDurationMinutes int      `json:"estimated_duration_minutes"`
}

// VenueSearchRequest 会場推薦に必要な条件
type VenueSearchRequest struct {
	Party1     LatLng   `json:"party1"`
	Party2     LatLng   `json:"party2"`
	Midpoint   LatLng   `json:"midpoint"`
	Activities []string `json:"activities"`
	RadiusKm   float64  `json:"radius_km"`
}

// GetRadiusKm は半径を取得する（未指定の場合はデフォルト）
func (r *VenueSearchRequest) GetRadiusKm() float64 {
	if r.RadiusKm <= 0 {
		return DefaultSearchRadiusKm
	}
	return r.RadiusKm
}

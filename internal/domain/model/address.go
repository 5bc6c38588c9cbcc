package model

// AddressCandidate オートコンプリートで返される住所候補
// Coordinatesが(0,0)の場合は未解決で、SourceIDを使った2段階目の取得が必要
type AddressCandidate struct {
	DisplayName    string   `json:"display_name"`
	Coordinates    LatLng   `json:"coordinates"`
	SourceID       string   `json:"source_id,omitempty"` // プロバイダ固有のID（Mapboxのmapbox_id）
	Importance     float64  `json:"importance"`
	Type           string   `json:"type"`
	FullAddress    string   `json:"full_address,omitempty"`
	PlaceFormatted string   `json:"place_formatted,omitempty"`
	FeatureType    string   `json:"feature_type,omitempty"`
	POICategory    []string `json:"poi_category,omitempty"`
	Maki           string   `json:"maki,omitempty"`
	Distance       *float64 `json:"distance,omitempty"`
}

// HasCoordinates 座標が解決済みかどうか
func (c *AddressCandidate) HasCoordinates() bool {
	return !c.Coordinates.IsZero()
}

// NeedsRetrieval 2段階目の座標取得が必要かどうか
func (c *AddressCandidate) NeedsRetrieval() bool {
	return !c.HasCoordinates() && c.SourceID != ""
}

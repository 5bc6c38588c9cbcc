package model

// ResolveLocationsRequest 2人の住所から位置と中間地点を求めるリクエスト
type ResolveLocationsRequest struct {
	Party1 PartyInput `json:"party1"`
	Party2 PartyInput `json:"party2"`
}

// ResolveLocationsResponse 住所解決の結果
type ResolveLocationsResponse struct {
	Party1   Party  `json:"party1"`
	Party2   Party  `json:"party2"`
	Midpoint LatLng `json:"midpoint"`
}

// AddressSuggestResponse オートコンプリートの結果
type AddressSuggestResponse struct {
	SessionToken string             `json:"session_token"`
	Suggestions  []AddressCandidate `json:"suggestions"`
	Stale        bool               `json:"stale"` // 新しい入力に置き換えられた結果
}

// AddressResolveRequest 候補から座標を取得するリクエスト
type AddressResolveRequest struct {
	Candidate    AddressCandidate `json:"candidate"`
	SessionToken string           `json:"session_token"`
}

// VenueRecommendationRequest 会場推薦リクエスト
type VenueRecommendationRequest struct {
	Party1     LatLng   `json:"party1"`
	Party2     LatLng   `json:"party2"`
	Midpoint   *LatLng  `json:"midpoint"` // 未指定なら2人の座標から計算
	Activities []string `json:"activities"`
	RadiusKm   float64  `json:"radius_km"`
}

// VenueRecommendationResponse 会場推薦の結果
type VenueRecommendationResponse struct {
	Midpoint LatLng  `json:"midpoint"`
	Venues   []Venue `json:"venues"`
	Message  string  `json:"message,omitempty"`
}

// ItineraryRequest 行程生成リクエスト
type ItineraryRequest struct {
	Party1      Party        `json:"party1"`
	Party2      Party        `json:"party2"`
	Midpoint    *LatLng      `json:"midpoint"`
	Experiences []Experience `json:"experiences"`
}

// ItineraryResponse 行程生成の結果
type ItineraryResponse struct {
	DraftID   string     `json:"draft_id,omitempty"`
	Itinerary *Itinerary `json:"itinerary"`
}

// MapViewRequest 地図描画面に渡すデータの組み立てリクエスト
type MapViewRequest struct {
	Party1             Party   `json:"party1"`
	Party2             Party   `json:"party2"`
	Midpoint           *LatLng `json:"midpoint"`
	Venues             []Venue `json:"venues"`
	HighlightedVenueID string  `json:"highlighted_venue_id"`
	ShowRoutes         bool    `json:"show_routes"`
}

// CreatePlanRequest 計画確定リクエスト
type CreatePlanRequest struct {
	Title       string       `json:"title"`
	Party1      Party        `json:"party1"`
	Party2      Party        `json:"party2"`
	Activities  []string     `json:"activities"`
	Experiences []Experience `json:"experiences"`
}

package model

import "github.com/paulmach/orb"

// LatLng 緯度経度を表す基本的な型（WGS84、10進度）
type LatLng struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// IsZero は未解決を示す(0,0)センチネルかどうかを判定する
func (l LatLng) IsZero() bool {
	return l.Lat == 0 && l.Lng == 0
}

// IsValid は緯度経度が有効範囲内かどうかを判定する
func (l LatLng) IsValid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// ToPoint orb.Point（[lng, lat]）に変換
func (l LatLng) ToPoint() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// LatLngFromPoint orb.Point から LatLng に変換
func LatLngFromPoint(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

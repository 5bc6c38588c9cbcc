package service

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"MiddleMeetup-App/internal/domain/helper"
	"MiddleMeetup-App/internal/domain/model"
)

// 地図表示用のFeatureの役割
const (
	MapFeatureParty1   = "party1"
	MapFeatureParty2   = "party2"
	MapFeatureMidpoint = "midpoint"
	MapFeatureVenue    = "venue"
	MapFeatureRoute    = "route"
)

// mapBoundsPadding はマーカーが画面の端に寄らないための余白（度、約1km）
const mapBoundsPadding = 0.01

// MapView は地図描画面に渡すGeoJSONデータ
type MapView struct {
	Collection *geojson.FeatureCollection `json:"collection"`
	Center     model.LatLng               `json:"center"`
}

// BuildMapView は2人・中間地点・会場をGeoJSONのFeatureCollectionにまとめる
// 経路表示が有効な場合は2人から最初の会場への直線を追加する（実際の経路検索は行わない）
func BuildMapView(req *model.MapViewRequest) *MapView {
	fc := geojson.NewFeatureCollection()
	var bound orb.Bound
	hasBound := false
	extend := func(p orb.Point) {
		if !hasBound {
			bound = p.Bound()
			hasBound = true
			return
		}
		bound = bound.Extend(p)
	}

	addParty := func(role string, party model.Party) {
		if party.Coordinates.IsZero() {
			return
		}
		p := party.Coordinates.ToPoint()
		f := geojson.NewFeature(p)
		f.Properties["role"] = role
		f.Properties["name"] = party.Name
		f.Properties["address"] = party.Address
		fc.Append(f)
		extend(p)
	}
	addParty(MapFeatureParty1, req.Party1)
	addParty(MapFeatureParty2, req.Party2)

	midpoint := req.Midpoint
	if midpoint == nil && !req.Party1.Coordinates.IsZero() && !req.Party2.Coordinates.IsZero() {
		m := helper.Midpoint(req.Party1.Coordinates, req.Party2.Coordinates)
		midpoint = &m
	}
	if midpoint != nil {
		p := midpoint.ToPoint()
		f := geojson.NewFeature(p)
		f.Properties["role"] = MapFeatureMidpoint
		fc.Append(f)
		extend(p)
	}

	for _, v := range req.Venues {
		p := v.Coordinates.ToPoint()
		f := geojson.NewFeature(p)
		f.ID = v.ID
		f.Properties["role"] = MapFeatureVenue
		f.Properties["name"] = v.Name
		f.Properties["type"] = v.Type
		f.Properties["address"] = v.Address
		f.Properties["highlighted"] = req.HighlightedVenueID != "" && v.ID == req.HighlightedVenueID
		if v.Rating != nil {
			f.Properties["rating"] = *v.Rating
		}
		fc.Append(f)
		extend(p)
	}

	if req.ShowRoutes && len(req.Venues) > 0 {
		first := req.Venues[0].Coordinates.ToPoint()
		for _, party := range []struct {
			role  string
			party model.Party
		}{{MapFeatureParty1, req.Party1}, {MapFeatureParty2, req.Party2}} {
			if party.party.Coordinates.IsZero() {
				continue
			}
			f := geojson.NewFeature(orb.LineString{party.party.Coordinates.ToPoint(), first})
			f.Properties["role"] = MapFeatureRoute
			f.Properties["from"] = party.role
			f.Properties["to"] = req.Venues[0].ID
			fc.Append(f)
		}
	}

	view := &MapView{Collection: fc}
	if hasBound {
		bound = bound.Pad(mapBoundsPadding)
		fc.BBox = geojson.NewBBox(bound)
		view.Center = model.LatLngFromPoint(bound.Center())
	}
	return view
}

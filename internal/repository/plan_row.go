package repository

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/ewkb"
	"github.com/paulmach/orb/encoding/wkt"

	"MiddleMeetup-App/internal/domain/model"
)

// meetupPlansTable 確定した計画を保存するテーブル
const meetupPlansTable = "meetup_plans"

// GeoPoint PostGIS POINT 型の JSON 表現
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// LatLngToGeoPoint model.LatLng を PostGIS POINT 形式に変換
func LatLngToGeoPoint(l model.LatLng) *GeoPoint {
	point := l.ToPoint()
	return &GeoPoint{
		Type:        "Point",
		Coordinates: []float64{point.Lon(), point.Lat()},
	}
}

// ToLatLng PostGIS POINT を model.LatLng に変換（座標が無ければゼロ値）
func (g *GeoPoint) ToLatLng() model.LatLng {
	if g == nil || len(g.Coordinates) < 2 {
		return model.LatLng{}
	}
	return model.LatLngFromPoint(orb.Point{g.Coordinates[0], g.Coordinates[1]})
}

// UnmarshalJSON PostgRESTが返す形式（GeoJSON・WKT/EWKT文字列・16進EWKB）を受け付ける
func (g *GeoPoint) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		point, err := parsePointText(raw)
		if err != nil {
			return err
		}
		*g = *LatLngToGeoPoint(model.LatLngFromPoint(point))
		return nil
	}

	type plain GeoPoint
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("GeoJSON POINTのパースに失敗: %w", err)
	}
	*g = GeoPoint(p)
	return nil
}

// parsePointText WKT・EWKT・16進EWKBのいずれかからPOINTを取り出す
func parsePointText(raw string) (orb.Point, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return orb.Point{}, fmt.Errorf("空のジオメトリ")
	}

	if strings.HasPrefix(strings.ToUpper(raw), "SRID=") {
		if i := strings.Index(raw, ";"); i >= 0 {
			raw = raw[i+1:]
		}
	}
	if strings.HasPrefix(strings.ToUpper(raw), "POINT") {
		point, err := wkt.UnmarshalPoint(raw)
		if err != nil {
			return orb.Point{}, fmt.Errorf("WKTのパースに失敗: %w", err)
		}
		return point, nil
	}

	b, err := hex.DecodeString(raw)
	if err != nil {
		return orb.Point{}, fmt.Errorf("未対応のジオメトリ形式: %q", raw)
	}
	geom, _, err := ewkb.Unmarshal(b)
	if err != nil {
		return orb.Point{}, fmt.Errorf("EWKBのパースに失敗: %w", err)
	}
	point, ok := geom.(orb.Point)
	if !ok {
		return orb.Point{}, fmt.Errorf("POINT以外のジオメトリです: %s", geom.GeoJSONType())
	}
	return point, nil
}

// pointWKT SQLの ST_GeomFromText に渡すWKT
func pointWKT(l model.LatLng) string {
	return wkt.MarshalString(l.ToPoint())
}

// MeetupPlanRow meetup_plans テーブルの1行
type MeetupPlanRow struct {
	ID             string             `json:"id"`
	OwnerID        string             `json:"owner_id"`
	Title          string             `json:"title"`
	Status         string             `json:"status"`
	Party1Name     string             `json:"party1_name"`
	Party1Address  string             `json:"party1_address"`
	Party1Location *GeoPoint          `json:"party1_location"`
	Party2Name     string             `json:"party2_name"`
	Party2Address  string             `json:"party2_address"`
	Party2Location *GeoPoint          `json:"party2_location"`
	Midpoint       *GeoPoint          `json:"midpoint"`
	Activities     []string           `json:"activities"`
	Experiences    []model.Experience `json:"experiences"`
	Itinerary      *model.Itinerary   `json:"itinerary"`
	CreatedAt      time.Time          `json:"created_at"`
}

// PlanToRow model.MeetupPlan を DB 保存用に変換
func PlanToRow(plan *model.MeetupPlan) *MeetupPlanRow {
	activities := plan.Activities
	if activities == nil {
		activities = []string{}
	}
	experiences := plan.Experiences
	if experiences == nil {
		experiences = []model.Experience{}
	}

	return &MeetupPlanRow{
		ID:             plan.ID,
		OwnerID:        plan.OwnerID,
		Title:          plan.Title,
		Status:         plan.Status,
		Party1Name:     plan.Party1.Name,
		Party1Address:  plan.Party1.Address,
		Party1Location: LatLngToGeoPoint(plan.Party1.Coordinates),
		Party2Name:     plan.Party2.Name,
		Party2Address:  plan.Party2.Address,
		Party2Location: LatLngToGeoPoint(plan.Party2.Coordinates),
		Midpoint:       LatLngToGeoPoint(plan.Midpoint),
		Activities:     activities,
		Experiences:    experiences,
		Itinerary:      plan.Itinerary,
		CreatedAt:      plan.CreatedAt,
	}
}

// ToPlan DB の行を model.MeetupPlan に戻す
func (r *MeetupPlanRow) ToPlan() *model.MeetupPlan {
	return &model.MeetupPlan{
		ID:      r.ID,
		OwnerID: r.OwnerID,
		Title:   r.Title,
		Status:  r.Status,
		Party1: model.Party{
			Name:        r.Party1Name,
			Address:     r.Party1Address,
			Coordinates: r.Party1Location.ToLatLng(),
		},
		Party2: model.Party{
			Name:        r.Party2Name,
			Address:     r.Party2Address,
			Coordinates: r.Party2Location.ToLatLng(),
		},
		Midpoint:    r.Midpoint.ToLatLng(),
		Activities:  r.Activities,
		Experiences: r.Experiences,
		Itinerary:   r.Itinerary,
		CreatedAt:   r.CreatedAt,
	}
}

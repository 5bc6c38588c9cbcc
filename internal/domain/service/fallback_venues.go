package service

import (
	"fmt"

	"MiddleMeetup-App/internal/domain/model"
)

// fallbackVenueTemplate は生成AIが使えない場合に中間地点の周辺へ配置する固定の会場
type fallbackVenueTemplate struct {
	id          string
	name        string
	address     string
	dLat, dLng  float64
	rating      float64
	venueType   string
	description string
}

var fallbackVenueTemplates = []fallbackVenueTemplate{
	{
		id:          "fallback-1",
		name:        "Central Park Cafe",
		address:     "123 Park Ave, New York, NY",
		dLat:        0.01,
		dLng:        0.01,
		rating:      4.5,
		venueType:   model.ActivityDining,
		description: "Cozy cafe with outdoor seating - perfect for casual meetups",
	},
	{
		id:          "fallback-2",
		name:        "Art Gallery Downtown",
		address:     "456 Main St, New York, NY",
		dLat:        -0.01,
		dLng:        -0.01,
		rating:      4.2,
		venueType:   model.ActivityCultural,
		description: "Contemporary art gallery with rotating exhibitions",
	},
	{
		id:          "fallback-3",
		name:        "Riverside Park",
		address:     "789 River Rd, New York, NY",
		dLat:        0.005,
		dLng:        -0.005,
		rating:      4.7,
		venueType:   model.ActivityOutdoor,
		description: "Beautiful park with walking trails and scenic views",
	},
}

// buildFallbackVenues は中間地点を基準に固定の会場を生成する
func buildFallbackVenues(midpoint model.LatLng) []model.Venue {
	venues := make([]model.Venue, 0, len(fallbackVenueTemplates))
	for _, t := range fallbackVenueTemplates {
		coords := model.LatLng{Lat: midpoint.Lat + t.dLat, Lng: midpoint.Lng + t.dLng}
		rating := t.rating
		venues = append(venues, model.Venue{
			ID:          t.id,
			Name:        t.name,
			Address:     t.address,
			Coordinates: coords,
			Rating:      &rating,
			Type:        t.venueType,
			Description: t.description,
			ImageURL:    model.VenuePlaceholderImage,
			MapLink:     fmt.Sprintf("https://maps.google.com/?q=%g,%g", coords.Lat, coords.Lng),
		})
	}
	return venues
}

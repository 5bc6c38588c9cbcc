package handler

import (
	"fmt"
	"strings"

	"MiddleMeetup-App/internal/domain/model"
)

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// validateLatLng は緯度経度の範囲をチェックする
func validateLatLng(field string, p model.LatLng) error {
	if p.Lat < -90 || p.Lat > 90 {
		return &ValidationError{Field: field + ".lat", Message: "緯度は-90から90の範囲で指定してください"}
	}
	if p.Lng < -180 || p.Lng > 180 {
		return &ValidationError{Field: field + ".lng", Message: "経度は-180から180の範囲で指定してください"}
	}
	return nil
}

// validateResolvedParty は座標が解決済みの参加者をチェックする
func validateResolvedParty(field string, p model.Party) error {
	if err := validateLatLng(field+".coordinates", p.Coordinates); err != nil {
		return err
	}
	if p.Coordinates.IsZero() {
		return &ValidationError{Field: field + ".coordinates", Message: "座標が解決されていません"}
	}
	return nil
}

// validateActivities は既知のアクティビティだけが指定されているかをチェックする（空は呼び出し側で扱う）
func validateActivities(activities []string) error {
	for i, a := range activities {
		if !model.IsKnownActivity(strings.TrimSpace(a)) {
			return &ValidationError{Field: fmt.Sprintf("activities[%d]", i), Message: fmt.Sprintf("未知のアクティビティです: %q", a)}
		}
	}
	return nil
}

func validateResolveLocationsRequest(req *model.ResolveLocationsRequest) error {
	if strings.TrimSpace(req.Party1.Address) == "" {
		return &ValidationError{Field: "party1.address", Message: "住所は必須です"}
	}
	if strings.TrimSpace(req.Party2.Address) == "" {
		return &ValidationError{Field: "party2.address", Message: "住所は必須です"}
	}
	return nil
}

func validateVenueRecommendationRequest(req *model.VenueRecommendationRequest) error {
	if err := validateLatLng("party1", req.Party1); err != nil {
		return err
	}
	if err := validateLatLng("party2", req.Party2); err != nil {
		return err
	}
	if req.Midpoint != nil {
		if err := validateLatLng("midpoint", *req.Midpoint); err != nil {
			return err
		}
	}
	if req.RadiusKm < 0 {
		return &ValidationError{Field: "radius_km", Message: "半径は0以上で指定してください"}
	}
	return validateActivities(req.Activities)
}

func validateItineraryRequest(req *model.ItineraryRequest) error {
	if err := validateResolvedParty("party1", req.Party1); err != nil {
		return err
	}
	if err := validateResolvedParty("party2", req.Party2); err != nil {
		return err
	}
	if req.Midpoint != nil {
		if err := validateLatLng("midpoint", *req.Midpoint); err != nil {
			return err
		}
	}
	for i, exp := range req.Experiences {
		if err := validateLatLng(fmt.Sprintf("experiences[%d].venue.coordinates", i), exp.Venue.Coordinates); err != nil {
			return err
		}
		if exp.EstimatedDurationMinutes < 0 {
			return &ValidationError{Field: fmt.Sprintf("experiences[%d].estimated_duration_minutes", i), Message: "想定時間は0以上で指定してください"}
		}
	}
	return nil
}

func validateCreatePlanRequest(req *model.CreatePlanRequest) error {
	if err := validateResolvedParty("party1", req.Party1); err != nil {
		return err
	}
	if err := validateResolvedParty("party2", req.Party2); err != nil {
		return err
	}
	if len(req.Title) > 200 {
		return &ValidationError{Field: "title", Message: "タイトルは200文字以内で指定してください"}
	}
	return validateActivities(req.Activities)
}

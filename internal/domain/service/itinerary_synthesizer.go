package service

import (
	"fmt"
	"time"

	"MiddleMeetup-App/internal/domain/helper"
	"MiddleMeetup-App/internal/domain/model"
)

// ItinerarySynthesizer は選択された体験の順序と2人の位置から時刻付きの行程を生成する
// 同じ入力と同じnowからは常に同一の行程を返す
type ItinerarySynthesizer struct {
	policy model.TravelPolicy
}

// NewItinerarySynthesizer は新しいItinerarySynthesizerを作成する（未設定の方針値はデフォルトで補完）
func NewItinerarySynthesizer(policy model.TravelPolicy) *ItinerarySynthesizer {
	return &ItinerarySynthesizer{policy: policy.WithDefaults()}
}

// Policy は適用中の方針値を返す
func (s *ItinerarySynthesizer) Policy() model.TravelPolicy {
	return s.policy
}

// Synthesize は行程を生成する
// experiencesはOrder順に並んでいる前提。空の場合はステップのない行程を返す
func (s *ItinerarySynthesizer) Synthesize(now time.Time, party1, party2 model.Party, midpoint *model.LatLng, experiences []model.Experience) *model.Itinerary {
	itinerary := &model.Itinerary{
		Steps:       []model.ItineraryStep{},
		GeneratedAt: now,
	}
	if len(experiences) == 0 {
		return itinerary
	}

	clock := now.Add(minutes(s.policy.DepartureBufferMinutes))
	steps := make([]model.ItineraryStep, 0, len(experiences)*2+4)

	departureAnchor := experiences[0].Venue.Coordinates
	if midpoint != nil {
		departureAnchor = *midpoint
	}
	steps = append(steps, newStep("departure", model.StepKindDeparture, clock,
		"Departure", "Your locations", 0,
		fmt.Sprintf("%s and %s start their journey", party1.Name, party2.Name),
		departureAnchor, nil))

	for i := range experiences {
		exp := &experiences[i]
		venue := exp.Venue

		if i == 0 {
			// 2人が揃うまで始められないため、遅い方の移動時間で到着時刻が決まる
			travel := max(s.travelMinutes(party1.Coordinates, venue.Coordinates), s.travelMinutes(party2.Coordinates, venue.Coordinates))
			clock = clock.Add(minutes(travel))
			steps = append(steps, newStep("arrival-0", model.StepKindArrival, clock,
				"Arrival", venue.Name, s.policy.MeetingBufferMinutes,
				"Meet at "+venue.Name,
				venue.Coordinates, &venue))
			clock = clock.Add(minutes(s.policy.MeetingBufferMinutes))
		} else {
			clock = clock.Add(minutes(s.policy.TransitionBufferMinutes))
		}

		duration := s.experienceMinutes(exp)
		description := venue.Description
		if description == "" {
			description = "Enjoy your time at " + venue.Name
		}
		steps = append(steps, newStep(fmt.Sprintf("experience-%d", i), model.StepKindActivity, clock,
			model.GetActivityStepLabel(venue.Type), venue.Name, duration,
			fmt.Sprintf("Experience %d: %s", i+1, description),
			venue.Coordinates, &venue))

		clock = clock.Add(minutes(duration))

		if i < len(experiences)-1 {
			next := experiences[i+1].Venue
			// 移動時間は表示のみで、時刻は次の体験の前のバッファで進める
			transition := s.travelMinutes(venue.Coordinates, next.Coordinates)
			steps = append(steps, newStep(fmt.Sprintf("transition-%d", i), model.StepKindTransition, clock,
				"Travel", "To "+next.Name, transition,
				fmt.Sprintf("Travel from %s to %s", venue.Name, next.Name),
				next.Coordinates, nil))
		}
	}

	last := experiences[len(experiences)-1].Venue
	steps = append(steps, newStep("wrap-up", model.StepKindWrapUp, clock,
		"Wrap Up", last.Name, s.policy.WrapUpMinutes,
		"Say goodbye and prepare for departure",
		last.Coordinates, nil))

	clock = clock.Add(minutes(s.policy.WrapUpMinutes))
	returnMinutes := max(s.travelMinutes(last.Coordinates, party1.Coordinates), s.travelMinutes(last.Coordinates, party2.Coordinates))
	returnAnchor := party1.Coordinates
	if midpoint != nil {
		returnAnchor = *midpoint
	}
	steps = append(steps, newStep("return", model.StepKindReturn, clock,
		"Return Journey", "Back to your locations", returnMinutes,
		fmt.Sprintf("Travel back home (Est. %d minutes)", returnMinutes),
		returnAnchor, nil))

	itinerary.Steps = steps
	for _, step := range steps {
		itinerary.TotalDurationMinutes += step.DurationMinutes
	}
	itinerary.MaxDistanceKm = maxExperienceDistanceKm(experiences, party1.Coordinates, party2.Coordinates)
	return itinerary
}

func (s *ItinerarySynthesizer) travelMinutes(from, to model.LatLng) int {
	return helper.TravelTimeMinutesAtSpeed(from, to, s.policy.AverageSpeedKmh)
}

func (s *ItinerarySynthesizer) experienceMinutes(exp *model.Experience) int {
	if exp.EstimatedDurationMinutes > 0 {
		return exp.EstimatedDurationMinutes
	}
	return s.policy.DefaultExperienceMinutes
}

func maxExperienceDistanceKm(experiences []model.Experience, party1, party2 model.LatLng) float64 {
	venues := make([]model.Venue, 0, len(experiences))
	for _, exp := range experiences {
		venues = append(venues, exp.Venue)
	}
	return helper.MaxPartyDistanceKm(venues, party1, party2)
}

func newStep(id, kind string, at time.Time, activity, location string, duration int, description string, coords model.LatLng, venue *model.Venue) model.ItineraryStep {
	return model.ItineraryStep{
		ID:              id,
		Kind:            kind,
		ScheduledTime:   at,
		Time:            at.Format(model.ItineraryTimeLayout),
		Activity:        activity,
		Location:        location,
		DurationMinutes: duration,
		Description:     description,
		Coordinates:     coords,
		Venue:           venue,
	}
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

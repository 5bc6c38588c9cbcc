package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiddleMeetup-App/internal/domain/helper"
	"MiddleMeetup-App/internal/domain/model"
)

var (
	testNow    = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	testParty1 = model.Party{Name: "Alice", Address: "Manhattan", Coordinates: model.LatLng{Lat: 40.7831, Lng: -73.9712}}
	testParty2 = model.Party{Name: "Bob", Address: "Brooklyn", Coordinates: model.LatLng{Lat: 40.6782, Lng: -73.9442}}
)

func testExperience(id, name, venueType string, coords model.LatLng, duration int) model.Experience {
	return model.Experience{
		ID:                       id,
		Venue:                    model.Venue{ID: "v-" + id, Name: name, Type: venueType, Coordinates: coords},
		EstimatedDurationMinutes: duration,
	}
}

func stepIDs(it *model.Itinerary) []string {
	ids := make([]string, 0, len(it.Steps))
	for _, s := range it.Steps {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestItinerarySynthesizer_Synthesize(t *testing.T) {
	synth := NewItinerarySynthesizer(model.TravelPolicy{})
	midpoint := helper.Midpoint(testParty1.Coordinates, testParty2.Coordinates)

	t.Run("体験がなければステップなし", func(t *testing.T) {
		it := synth.Synthesize(testNow, testParty1, testParty2, &midpoint, nil)
		assert.True(t, it.IsEmpty())
		assert.Zero(t, it.TotalDurationMinutes)
	})

	t.Run("1件の体験の時刻計算", func(t *testing.T) {
		venue := model.LatLng{Lat: 40.73, Lng: -73.99}
		exps := []model.Experience{testExperience("1", "Cafe", model.ActivityDining, venue, 90)}
		it := synth.Synthesize(testNow, testParty1, testParty2, &midpoint, exps)

		require.Equal(t, []string{"departure", "arrival-0", "experience-0", "wrap-up", "return"}, stepIDs(it))

		travel := max(helper.TravelTimeMinutes(testParty1.Coordinates, venue), helper.TravelTimeMinutes(testParty2.Coordinates, venue))
		departure := testNow.Add(30 * time.Minute)
		arrival := departure.Add(time.Duration(travel) * time.Minute)
		activity := arrival.Add(15 * time.Minute)
		wrapUp := activity.Add(90 * time.Minute)
		ret := wrapUp.Add(15 * time.Minute)

		assert.Equal(t, departure, it.Steps[0].ScheduledTime)
		assert.Equal(t, "09:30 AM", it.Steps[0].Time)
		assert.Equal(t, arrival, it.Steps[1].ScheduledTime)
		assert.Equal(t, activity, it.Steps[2].ScheduledTime)
		assert.Equal(t, wrapUp, it.Steps[3].ScheduledTime)
		assert.Equal(t, ret, it.Steps[4].ScheduledTime)

		assert.Equal(t, "Alice and Bob start their journey", it.Steps[0].Description)
		assert.Equal(t, midpoint, it.Steps[0].Coordinates)
		assert.Equal(t, "Meet at Cafe", it.Steps[1].Description)
		assert.Equal(t, 15, it.Steps[1].DurationMinutes)
		assert.Equal(t, "Dining Experience", it.Steps[2].Activity)
		assert.Equal(t, "Experience 1: Enjoy your time at Cafe", it.Steps[2].Description)
		require.NotNil(t, it.Steps[2].Venue)
		assert.Equal(t, "Say goodbye and prepare for departure", it.Steps[3].Description)

		returnMinutes := max(helper.TravelTimeMinutes(venue, testParty1.Coordinates), helper.TravelTimeMinutes(venue, testParty2.Coordinates))
		assert.Equal(t, returnMinutes, it.Steps[4].DurationMinutes)
		assert.Equal(t, midpoint, it.Steps[4].Coordinates)

		assert.Equal(t, 0+15+90+15+returnMinutes, it.TotalDurationMinutes)
		expectedMax := max(helper.DistanceKm(testParty1.Coordinates, venue), helper.DistanceKm(testParty2.Coordinates, venue))
		assert.InDelta(t, expectedMax, it.MaxDistanceKm, 1e-9)
	})

	t.Run("複数の体験の間に移動ステップが入る", func(t *testing.T) {
		v1 := model.LatLng{Lat: 40.73, Lng: -73.99}
		v2 := model.LatLng{Lat: 40.76, Lng: -73.98}
		exps := []model.Experience{
			testExperience("1", "Museum", model.ActivityCultural, v1, 60),
			testExperience("2", "Karaoke Box", "karaoke", v2, 0),
		}
		exps[0].Venue.Description = "Great art"
		it := synth.Synthesize(testNow, testParty1, testParty2, &midpoint, exps)

		require.Equal(t, []string{"departure", "arrival-0", "experience-0", "transition-0", "experience-1", "wrap-up", "return"}, stepIDs(it))

		exp0 := it.Steps[2]
		transition := it.Steps[3]
		exp1 := it.Steps[4]
		assert.Equal(t, "Experience 1: Great art", exp0.Description)
		assert.Equal(t, exp0.ScheduledTime.Add(60*time.Minute), transition.ScheduledTime)
		assert.Equal(t, helper.TravelTimeMinutes(v1, v2), transition.DurationMinutes)
		assert.Equal(t, "To Karaoke Box", transition.Location)
		assert.Equal(t, "Travel from Museum to Karaoke Box", transition.Description)
		assert.Nil(t, transition.Venue)

		// 移動時間ではなく固定バッファで時刻が進む
		assert.Equal(t, transition.ScheduledTime.Add(30*time.Minute), exp1.ScheduledTime)
		assert.Equal(t, "Experience", exp1.Activity)
		assert.Equal(t, 120, exp1.DurationMinutes)
		assert.Equal(t, "Karaoke Box", it.Steps[5].Location)
	})

	t.Run("中間地点がない場合のアンカー", func(t *testing.T) {
		venue := model.LatLng{Lat: 40.73, Lng: -73.99}
		it := synth.Synthesize(testNow, testParty1, testParty2, nil, []model.Experience{testExperience("1", "Cafe", model.ActivityDining, venue, 60)})

		assert.Equal(t, venue, it.Steps[0].Coordinates)
		assert.Equal(t, testParty1.Coordinates, it.Steps[len(it.Steps)-1].Coordinates)
	})

	t.Run("同じ入力からは同じ行程", func(t *testing.T) {
		exps := []model.Experience{
			testExperience("1", "A", model.ActivityOutdoor, model.LatLng{Lat: 40.7, Lng: -74}, 45),
			testExperience("2", "B", model.ActivityShopping, model.LatLng{Lat: 40.72, Lng: -73.95}, 30),
		}
		first := synth.Synthesize(testNow, testParty1, testParty2, &midpoint, exps)
		second := synth.Synthesize(testNow, testParty1, testParty2, &midpoint, exps)
		assert.Equal(t, first, second)
	})

	t.Run("方針値を変更できる", func(t *testing.T) {
		custom := NewItinerarySynthesizer(model.TravelPolicy{AverageSpeedKmh: 100, DepartureBufferMinutes: 10, WrapUpMinutes: 5})
		venue := model.LatLng{Lat: 40.73, Lng: -73.99}
		it := custom.Synthesize(testNow, testParty1, testParty2, &midpoint, []model.Experience{testExperience("1", "Cafe", model.ActivityDining, venue, 0)})

		assert.Equal(t, testNow.Add(10*time.Minute), it.Steps[0].ScheduledTime)
		assert.Equal(t, 5, it.Steps[3].DurationMinutes)
		assert.Equal(t, 120, it.Steps[2].DurationMinutes)
		travel := max(
			helper.TravelTimeMinutesAtSpeed(testParty1.Coordinates, venue, 100),
			helper.TravelTimeMinutesAtSpeed(testParty2.Coordinates, venue, 100),
		)
		assert.Equal(t, it.Steps[0].ScheduledTime.Add(time.Duration(travel)*time.Minute), it.Steps[1].ScheduledTime)
	})
}

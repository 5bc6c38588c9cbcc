package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiddleMeetup-App/internal/domain/model"
)

type fakeGenerator struct {
	text   string
	err    error
	prompt string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

func newSearchRequest() *model.VenueSearchRequest {
	return &model.VenueSearchRequest{
		Party1:     model.LatLng{Lat: 40.7128, Lng: -74.0060},
		Party2:     model.LatLng{Lat: 40.6782, Lng: -73.9442},
		Midpoint:   model.LatLng{Lat: 40.6955, Lng: -73.9751},
		Activities: []string{model.ActivityDining, model.ActivityCultural},
	}
}

func TestGeminiVenueRepository_FetchVenueCandidates(t *testing.T) {
	t.Run("前後の説明文があってもJSON配列を取り出す", func(t *testing.T) {
		gen := &fakeGenerator{text: "Here are some great spots!\n```json\n" + `[
  {"name": "Cafe One", "address": "1 Main St", "coordinates": {"lat": 40.69, "lng": -73.97}, "rating": 4.5, "type": "dining", "description": "Cozy", "googleMapsLink": "https://maps.google.com/?q=40.69,-73.97"},
  {"name": "Museum Two", "address": "2 Art Ave", "coordinates": {"lat": 40.70, "lng": -73.98}, "type": "cultural"}
]` + "\n```\nEnjoy your meetup!"}
		repo := NewGeminiVenueRepository(gen)

		venues, err := repo.FetchVenueCandidates(context.Background(), newSearchRequest())
		require.NoError(t, err)
		require.Len(t, venues, 2)

		assert.Equal(t, "Cafe One", venues[0].Name)
		require.NotNil(t, venues[0].Rating)
		assert.Equal(t, 4.5, *venues[0].Rating)
		assert.Nil(t, venues[1].Rating)
		// 地図リンクがない場合は座標から補完する
		assert.Contains(t, venues[1].MapLink, "https://maps.google.com/?q=40.7")
		// IDと距離はサービス側で付与する
		assert.Empty(t, venues[0].ID)
	})

	t.Run("プロンプトに条件が埋め込まれる", func(t *testing.T) {
		gen := &fakeGenerator{text: "[]"}
		repo := NewGeminiVenueRepository(gen)
		req := newSearchRequest()
		req.RadiusKm = 5

		_, err := repo.FetchVenueCandidates(context.Background(), req)
		require.NoError(t, err)
		assert.Contains(t, gen.prompt, "dining, cultural")
		assert.Contains(t, gen.prompt, "5.0 km from midpoint")
		assert.Contains(t, gen.prompt, "40.712800")
		assert.Contains(t, gen.prompt, "6-8 real, specific venues")
	})

	t.Run("空配列は該当なしとして正常終了", func(t *testing.T) {
		repo := NewGeminiVenueRepository(&fakeGenerator{text: "Sorry, nothing found: []"})
		venues, err := repo.FetchVenueCandidates(context.Background(), newSearchRequest())
		require.NoError(t, err)
		assert.Empty(t, venues)
	})

	t.Run("スキーマ不一致の要素は除外する", func(t *testing.T) {
		gen := &fakeGenerator{text: `[
  {"name": "", "address": "nowhere", "coordinates": {"lat": 1, "lng": 1}, "type": "dining"},
  {"name": "Bad Rating", "address": "x", "coordinates": {"lat": 1, "lng": 1}, "rating": 9, "type": "dining"},
  {"name": "Unknown Type", "address": "x", "coordinates": {"lat": 1, "lng": 1}, "type": "karaoke"},
  {"name": "No Coordinates", "address": "x", "type": "dining"},
  {"name": "Good", "address": "x", "coordinates": {"lat": 1, "lng": 1}, "type": "outdoor"}
]`}
		venues, err := NewGeminiVenueRepository(gen).FetchVenueCandidates(context.Background(), newSearchRequest())
		require.NoError(t, err)
		require.Len(t, venues, 1)
		assert.Equal(t, "Good", venues[0].Name)
	})

	t.Run("全要素が不正ならエラー", func(t *testing.T) {
		gen := &fakeGenerator{text: `[{"name": "Out of range", "address": "x", "coordinates": {"lat": 120, "lng": 1}, "type": "dining"}]`}
		_, err := NewGeminiVenueRepository(gen).FetchVenueCandidates(context.Background(), newSearchRequest())
		assert.ErrorIs(t, err, ErrNoValidVenues)
	})

	t.Run("JSON配列がなければエラー", func(t *testing.T) {
		_, err := NewGeminiVenueRepository(&fakeGenerator{text: "I cannot help with that."}).FetchVenueCandidates(context.Background(), newSearchRequest())
		assert.ErrorIs(t, err, ErrNoJSONArray)
	})

	t.Run("型が違う場合はパースエラー", func(t *testing.T) {
		gen := &fakeGenerator{text: `[{"name": "x", "address": "y", "coordinates": {"lat": "north", "lng": 1}, "type": "dining"}]`}
		_, err := NewGeminiVenueRepository(gen).FetchVenueCandidates(context.Background(), newSearchRequest())
		assert.Error(t, err)
	})

	t.Run("API呼び出しの失敗はエラーとして返す", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("network down")}
		_, err := NewGeminiVenueRepository(gen).FetchVenueCandidates(context.Background(), newSearchRequest())
		assert.ErrorContains(t, err, "network down")
	})
}

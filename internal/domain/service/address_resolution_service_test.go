package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiddleMeetup-App/internal/domain/model"
)

type fakePrimaryGeocoder struct {
	mu           sync.Mutex
	suggestions  []model.AddressCandidate
	suggestErr   error
	retrieved    *model.LatLng
	retrieveErr  error
	forward      map[string]*model.LatLng
	forwardErr   error
	forwardCalls int
	tokens       []string
	delay        time.Duration
}

func (f *fakePrimaryGeocoder) Suggest(ctx context.Context, query string, limit int, sessionToken string) ([]model.AddressCandidate, error) {
	f.mu.Lock()
	f.tokens = append(f.tokens, sessionToken)
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.suggestions, f.suggestErr
}

func (f *fakePrimaryGeocoder) Retrieve(ctx context.Context, sourceID string, sessionToken string) (*model.LatLng, error) {
	f.mu.Lock()
	f.tokens = append(f.tokens, sessionToken)
	f.mu.Unlock()
	return f.retrieved, f.retrieveErr
}

func (f *fakePrimaryGeocoder) Forward(ctx context.Context, address string) (*model.LatLng, error) {
	f.mu.Lock()
	f.forwardCalls++
	f.mu.Unlock()
	if f.forwardErr != nil {
		return nil, f.forwardErr
	}
	if coords, ok := f.forward[address]; ok {
		return coords, nil
	}
	return nil, errors.New("not found")
}

type fakeSecondaryGeocoder struct {
	candidates []model.AddressCandidate
	err        error
	calls      int
}

func (f *fakeSecondaryGeocoder) Search(ctx context.Context, query string, limit int) ([]model.AddressCandidate, error) {
	f.calls++
	return f.candidates, f.err
}

type fakeStaticGeocoder struct {
	candidates []model.AddressCandidate
	lookup     map[string]*model.LatLng
}

func (f *fakeStaticGeocoder) Search(query string, limit int) []model.AddressCandidate {
	return f.candidates
}

func (f *fakeStaticGeocoder) Lookup(address string) *model.LatLng {
	return f.lookup[address]
}

func candidate(name string, importance float64) model.AddressCandidate {
	return model.AddressCandidate{DisplayName: name, Importance: importance, Coordinates: model.LatLng{Lat: 1, Lng: 1}}
}

func TestAddressResolutionService_SearchAddresses(t *testing.T) {
	ctx := context.Background()

	t.Run("2文字未満は問い合わせない", func(t *testing.T) {
		primary := &fakePrimaryGeocoder{}
		secondary := &fakeSecondaryGeocoder{}
		svc := NewAddressResolutionService(primary, secondary, &fakeStaticGeocoder{}, AddressResolutionOptions{})

		assert.Empty(t, svc.SearchAddresses(ctx, " a ", 5, ""))
		assert.Empty(t, primary.tokens)
		assert.Zero(t, secondary.calls)
	})

	t.Run("primaryの結果を重要度順に並べて件数を制限する", func(t *testing.T) {
		primary := &fakePrimaryGeocoder{suggestions: []model.AddressCandidate{
			candidate("low", 0.2), candidate("high", 0.9), candidate("mid", 0.5),
		}}
		svc := NewAddressResolutionService(primary, nil, &fakeStaticGeocoder{}, AddressResolutionOptions{})

		results := svc.SearchAddresses(ctx, "paris", 2, "token-1")
		require.Len(t, results, 2)
		assert.Equal(t, "high", results[0].DisplayName)
		assert.Equal(t, "mid", results[1].DisplayName)
		assert.Equal(t, []string{"token-1"}, primary.tokens)
	})

	t.Run("primaryの失敗時はsecondaryを使う", func(t *testing.T) {
		primary := &fakePrimaryGeocoder{suggestErr: errors.New("boom")}
		secondary := &fakeSecondaryGeocoder{candidates: []model.AddressCandidate{candidate("osm", 0.4)}}
		svc := NewAddressResolutionService(primary, secondary, &fakeStaticGeocoder{}, AddressResolutionOptions{})

		results := svc.SearchAddresses(ctx, "paris", 5, "")
		require.Len(t, results, 1)
		assert.Equal(t, "osm", results[0].DisplayName)
	})

	t.Run("primaryが空ならsecondaryへ進む", func(t *testing.T) {
		primary := &fakePrimaryGeocoder{suggestions: []model.AddressCandidate{}}
		secondary := &fakeSecondaryGeocoder{candidates: []model.AddressCandidate{candidate("osm", 0.4)}}
		svc := NewAddressResolutionService(primary, secondary, &fakeStaticGeocoder{}, AddressResolutionOptions{})

		results := svc.SearchAddresses(ctx, "paris", 5, "")
		require.Len(t, results, 1)
		assert.Equal(t, 1, secondary.calls)
	})

	t.Run("両方失敗したら固定テーブル", func(t *testing.T) {
		primary := &fakePrimaryGeocoder{suggestErr: errors.New("boom")}
		secondary := &fakeSecondaryGeocoder{err: errors.New("down")}
		static := &fakeStaticGeocoder{candidates: []model.AddressCandidate{candidate("a", 0.8), candidate("b", 0.95)}}
		svc := NewAddressResolutionService(primary, secondary, static, AddressResolutionOptions{})

		results := svc.SearchAddresses(ctx, "paris", 5, "")
		require.Len(t, results, 2)
		assert.Equal(t, "b", results[0].DisplayName)
	})

	t.Run("プロバイダ呼び出しはタイムアウトする", func(t *testing.T) {
		primary := &fakePrimaryGeocoder{delay: time.Second, suggestions: []model.AddressCandidate{candidate("slow", 1)}}
		static := &fakeStaticGeocoder{candidates: []model.AddressCandidate{candidate("static", 0.5)}}
		svc := NewAddressResolutionService(primary, nil, static, AddressResolutionOptions{CallTimeout: 20 * time.Millisecond})

		results := svc.SearchAddresses(ctx, "paris", 5, "")
		require.Len(t, results, 1)
		assert.Equal(t, "static", results[0].DisplayName)
	})
}

func TestAddressResolutionService_ResolveCandidate(t *testing.T) {
	ctx := context.Background()

	t.Run("座標があればそのまま返す", func(t *testing.T) {
		primary := &fakePrimaryGeocoder{}
		svc := NewAddressResolutionService(primary, nil, &fakeStaticGeocoder{}, AddressResolutionOptions{})

		coords := svc.ResolveCandidate(ctx, model.AddressCandidate{Coordinates: model.LatLng{Lat: 10, Lng: 20}, SourceID: "x"}, "t")
		require.NotNil(t, coords)
		assert.Equal(t, 10.0, coords.Lat)
		assert.Empty(t, primary.tokens)
	})

	t.Run("未解決なら同じトークンで取得する", func(t *testing.T) {
		primary := &fakePrimaryGeocoder{retrieved: &model.LatLng{Lat: 5, Lng: 6}}
		svc := NewAddressResolutionService(primary, nil, &fakeStaticGeocoder{}, AddressResolutionOptions{})

		coords := svc.ResolveCandidate(ctx, model.AddressCandidate{SourceID: "poi.1"}, "session-9")
		require.NotNil(t, coords)
		assert.Equal(t, 5.0, coords.Lat)
		assert.Equal(t, []string{"session-9"}, primary.tokens)
	})

	t.Run("取得失敗・IDなしはnil", func(t *testing.T) {
		primary := &fakePrimaryGeocoder{retrieveErr: errors.New("boom")}
		svc := NewAddressResolutionService(primary, nil, &fakeStaticGeocoder{}, AddressResolutionOptions{})

		assert.Nil(t, svc.ResolveCandidate(ctx, model.AddressCandidate{SourceID: "poi.1"}, "t"))
		assert.Nil(t, svc.ResolveCandidate(ctx, model.AddressCandidate{}, "t"))
	})
}

func TestAddressResolutionService_GeocodeAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("primaryの結果をキャッシュする", func(t *testing.T) {
		primary := &fakePrimaryGeocoder{forward: map[string]*model.LatLng{"Paris": {Lat: 48.85, Lng: 2.35}}}
		svc := NewAddressResolutionService(primary, nil, &fakeStaticGeocoder{}, AddressResolutionOptions{})

		first := svc.GeocodeAddress(ctx, "Paris")
		second := svc.GeocodeAddress(ctx, " paris ")
		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.Equal(t, *first, *second)
		assert.Equal(t, 1, primary.forwardCalls)
	})

	t.Run("secondary、固定テーブルの順にフォールバックする", func(t *testing.T) {
		primary := &fakePrimaryGeocoder{forwardErr: errors.New("boom")}
		secondary := &fakeSecondaryGeocoder{}
		static := &fakeStaticGeocoder{lookup: map[string]*model.LatLng{"Tokyo": {Lat: 35.6762, Lng: 139.6503}}}
		svc := NewAddressResolutionService(primary, secondary, static, AddressResolutionOptions{})

		coords := svc.GeocodeAddress(ctx, "Tokyo")
		require.NotNil(t, coords)
		assert.Equal(t, 35.6762, coords.Lat)
		assert.Equal(t, 1, secondary.calls)
	})

	t.Run("全て失敗したらnil", func(t *testing.T) {
		svc := NewAddressResolutionService(nil, nil, &fakeStaticGeocoder{}, AddressResolutionOptions{})
		assert.Nil(t, svc.GeocodeAddress(ctx, "Atlantis"))
		assert.Nil(t, svc.GeocodeAddress(ctx, "  "))
	})
}

func TestAddressResolutionService_GeocodePair(t *testing.T) {
	ctx := context.Background()
	static := &fakeStaticGeocoder{lookup: map[string]*model.LatLng{
		"New York": {Lat: 40.7128, Lng: -74.006},
		"Boston":   {Lat: 42.3601, Lng: -71.0589},
	}}
	svc := NewAddressResolutionService(nil, nil, static, AddressResolutionOptions{})

	t.Run("両方解決できれば両方返す", func(t *testing.T) {
		c1, c2, err := svc.GeocodePair(ctx, "New York", "Boston")
		require.NoError(t, err)
		assert.Equal(t, 40.7128, c1.Lat)
		assert.Equal(t, 42.3601, c2.Lat)
	})

	t.Run("片方でも失敗すれば全体が失敗する", func(t *testing.T) {
		_, _, err := svc.GeocodePair(ctx, "New York", "Atlantis")
		assert.ErrorIs(t, err, ErrLocationsNotFound)

		_, _, err = svc.GeocodePair(ctx, "Atlantis", "Boston")
		assert.ErrorIs(t, err, ErrLocationsNotFound)
	})
}

package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
)

const (
	// MinAddressQueryLength 未満の入力ではプロバイダに問い合わせない
	MinAddressQueryLength = 2
	// DefaultAddressSuggestLimit はサジェスト件数のデフォルト
	DefaultAddressSuggestLimit = 5
	defaultExternalCallTimeout = 10 * time.Second
)

// ErrLocationsNotFound は2人のうちどちらか（または両方）の住所が解決できなかった場合のエラー
var ErrLocationsNotFound = errors.New("could not find one or both locations")

// AddressResolutionService は住所文字列を座標に解決する
// プロバイダの失敗はログに残して次の段階にフォールバックし、呼び出し側にはエラーを返さない
type AddressResolutionService interface {
	SearchAddresses(ctx context.Context, query string, limit int, sessionToken string) []model.AddressCandidate
	ResolveCandidate(ctx context.Context, candidate model.AddressCandidate, sessionToken string) *model.LatLng
	GeocodeAddress(ctx context.Context, address string) *model.LatLng
	GeocodePair(ctx context.Context, address1, address2 string) (model.LatLng, model.LatLng, error)
}

// AddressResolutionOptions はタイムアウトとキャッシュの設定
type AddressResolutionOptions struct {
	CallTimeout time.Duration
	CacheTTL    time.Duration
}

type addressResolutionService struct {
	primary     repository.PrimaryGeocoder
	secondary   repository.SecondaryGeocoder
	static      repository.StaticGeocoder
	callTimeout time.Duration
	cache       *cache.Cache
}

// NewAddressResolutionService は新しいAddressResolutionServiceを作成する
// primary / secondary はnilの場合スキップされる
func NewAddressResolutionService(
	primary repository.PrimaryGeocoder,
	secondary repository.SecondaryGeocoder,
	static repository.StaticGeocoder,
	opts AddressResolutionOptions,
) AddressResolutionService {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = defaultExternalCallTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	return &addressResolutionService{
		primary:     primary,
		secondary:   secondary,
		static:      static,
		callTimeout: opts.CallTimeout,
		cache:       cache.New(opts.CacheTTL, time.Hour),
	}
}

// SearchAddresses は入力途中の文字列から住所候補を重要度順に返す
func (s *addressResolutionService) SearchAddresses(ctx context.Context, query string, limit int, sessionToken string) []model.AddressCandidate {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinAddressQueryLength {
		return []model.AddressCandidate{}
	}
	if limit <= 0 {
		limit = DefaultAddressSuggestLimit
	}
	if sessionToken == "" {
		sessionToken = uuid.New().String()
	}

	if s.primary != nil {
		candidates, err := withTimeout(ctx, s.callTimeout, func(ctx context.Context) ([]model.AddressCandidate, error) {
			return s.primary.Suggest(ctx, query, limit, sessionToken)
		})
		if err != nil {
			log.Printf("⚠️ 住所サジェスト(primary)に失敗、フォールバックします: %v", err)
		} else if len(candidates) > 0 {
			return rankCandidates(candidates, limit)
		}
	}

	if s.secondary != nil {
		candidates, err := withTimeout(ctx, s.callTimeout, func(ctx context.Context) ([]model.AddressCandidate, error) {
			return s.secondary.Search(ctx, query, limit)
		})
		if err != nil {
			log.Printf("⚠️ 住所サジェスト(secondary)に失敗、固定テーブルを使用します: %v", err)
		} else if len(candidates) > 0 {
			return rankCandidates(candidates, limit)
		}
	}

	return rankCandidates(s.static.Search(query, limit), limit)
}

// ResolveCandidate は選択された候補の座標を返す
// 座標が未解決の場合は同じセッショントークンで詳細を取得する。失敗時はnil
func (s *addressResolutionService) ResolveCandidate(ctx context.Context, candidate model.AddressCandidate, sessionToken string) *model.LatLng {
	if candidate.HasCoordinates() {
		coords := candidate.Coordinates
		return &coords
	}
	if !candidate.NeedsRetrieval() || s.primary == nil {
		return nil
	}

	coords, err := withTimeout(ctx, s.callTimeout, func(ctx context.Context) (*model.LatLng, error) {
		return s.primary.Retrieve(ctx, candidate.SourceID, sessionToken)
	})
	if err != nil {
		log.Printf("❌ 候補の座標取得に失敗 (id: %s): %v", candidate.SourceID, err)
		return nil
	}
	return coords
}

// GeocodeAddress は完全な住所を座標に解決する（primary → secondary → 固定テーブル）
func (s *addressResolutionService) GeocodeAddress(ctx context.Context, address string) *model.LatLng {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil
	}

	key := strings.ToLower(address)
	if cached, found := s.cache.Get(key); found {
		coords := cached.(model.LatLng)
		return &coords
	}

	coords := s.geocodeUncached(ctx, address)
	// 中断された呼び出しのフォールバック結果はキャッシュしない
	if coords != nil && ctx.Err() == nil {
		s.cache.Set(key, *coords, cache.DefaultExpiration)
	}
	return coords
}

func (s *addressResolutionService) geocodeUncached(ctx context.Context, address string) *model.LatLng {
	if s.primary != nil {
		coords, err := withTimeout(ctx, s.callTimeout, func(ctx context.Context) (*model.LatLng, error) {
			return s.primary.Forward(ctx, address)
		})
		if err != nil {
			log.Printf("⚠️ ジオコーディング(primary)に失敗、フォールバックします: %v", err)
		} else if coords != nil {
			return coords
		}
	}

	if s.secondary != nil {
		candidates, err := withTimeout(ctx, s.callTimeout, func(ctx context.Context) ([]model.AddressCandidate, error) {
			return s.secondary.Search(ctx, address, 1)
		})
		if err != nil {
			log.Printf("⚠️ ジオコーディング(secondary)に失敗、固定テーブルを使用します: %v", err)
		} else if len(candidates) > 0 {
			coords := candidates[0].Coordinates
			return &coords
		}
	}

	return s.static.Lookup(address)
}

// GeocodePair は2人の住所を並行して解決する
// どちらか一方でも解決できなければ全体を失敗とし、部分的な結果は返さない
func (s *addressResolutionService) GeocodePair(ctx context.Context, address1, address2 string) (model.LatLng, model.LatLng, error) {
	var coords1, coords2 *model.LatLng

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		coords1 = s.GeocodeAddress(gctx, address1)
		if coords1 == nil {
			return ErrLocationsNotFound
		}
		return nil
	})
	g.Go(func() error {
		coords2 = s.GeocodeAddress(gctx, address2)
		if coords2 == nil {
			return ErrLocationsNotFound
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.LatLng{}, model.LatLng{}, err
	}
	return *coords1, *coords2, nil
}

// rankCandidates は重要度の降順に並べて件数を制限する
func rankCandidates(candidates []model.AddressCandidate, limit int) []model.AddressCandidate {
	ranked := append([]model.AddressCandidate{}, candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Importance > ranked[j].Importance
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// withTimeout は外部呼び出しを個別のタイムアウト付きで実行する
func withTimeout[T any](ctx context.Context, timeout time.Duration, call func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return call(ctx)
}

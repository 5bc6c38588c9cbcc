package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"MiddleMeetup-App/internal/domain/model"
)

// DefaultAutocompleteDebounce は入力が落ち着くまで待つ時間
const DefaultAutocompleteDebounce = 300 * time.Millisecond

// AutocompleteSession は1つの住所入力欄に対応するサジェストのセッション
// サジェストと詳細取得は同じセッショントークンを使う（Mapboxの課金単位）
// 新しい入力が来ると古い問い合わせの結果は破棄される（通信自体は中断しない）
type AutocompleteSession struct {
	token      string
	debounce   time.Duration
	resolver   AddressResolutionService
	generation atomic.Uint64
	closed     atomic.Bool
}

// NewAutocompleteSession は新しいセッショントークンでセッションを作成する
func NewAutocompleteSession(resolver AddressResolutionService, debounce time.Duration) *AutocompleteSession {
	return newAutocompleteSession(uuid.New().String(), resolver, debounce)
}

func newAutocompleteSession(token string, resolver AddressResolutionService, debounce time.Duration) *AutocompleteSession {
	if debounce < 0 {
		debounce = 0
	}
	return &AutocompleteSession{
		token:    token,
		debounce: debounce,
		resolver: resolver,
	}
}

// Token はセッショントークンを返す
func (s *AutocompleteSession) Token() string {
	return s.token
}

// Close はセッションを終了する。以降に届いた結果は全て破棄される
func (s *AutocompleteSession) Close() {
	s.closed.Store(true)
}

// IsClosed はセッションが終了済みかどうか
func (s *AutocompleteSession) IsClosed() bool {
	return s.closed.Load()
}

// Query はデバウンス後にサジェストを取得する
// 待機中または通信中により新しいQueryが呼ばれた場合は Stale=true の空の結果を返す
func (s *AutocompleteSession) Query(ctx context.Context, query string, limit int) (model.AddressSuggestResponse, error) {
	gen := s.generation.Add(1)
	stale := model.AddressSuggestResponse{
		SessionToken: s.token,
		Suggestions:  []model.AddressCandidate{},
		Stale:        true,
	}

	if s.debounce > 0 {
		timer := time.NewTimer(s.debounce)
		select {
		case <-ctx.Done():
			timer.Stop()
			return stale, ctx.Err()
		case <-timer.C:
		}
	}
	if !s.isCurrent(gen) {
		return stale, nil
	}

	suggestions := s.resolver.SearchAddresses(ctx, query, limit, s.token)
	if !s.isCurrent(gen) {
		return stale, nil
	}

	return model.AddressSuggestResponse{
		SessionToken: s.token,
		Suggestions:  suggestions,
	}, nil
}

// Resolve は選択された候補の座標をセッショントークン付きで取得する
func (s *AutocompleteSession) Resolve(ctx context.Context, candidate model.AddressCandidate) *model.LatLng {
	if s.IsClosed() {
		return nil
	}
	return s.resolver.ResolveCandidate(ctx, candidate, s.token)
}

func (s *AutocompleteSession) isCurrent(gen uint64) bool {
	return !s.closed.Load() && s.generation.Load() == gen
}

// AutocompleteRegistry はトークンごとのセッションを保持する
// 一定時間使われなかったセッションは破棄され、Closeされる
type AutocompleteRegistry struct {
	resolver AddressResolutionService
	debounce time.Duration
	sessions *cache.Cache
}

// NewAutocompleteRegistry は新しいAutocompleteRegistryを作成する
func NewAutocompleteRegistry(resolver AddressResolutionService, debounce, idleTTL time.Duration) *AutocompleteRegistry {
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	sessions := cache.New(idleTTL, idleTTL)
	sessions.OnEvicted(func(_ string, v interface{}) {
		if session, ok := v.(*AutocompleteSession); ok {
			session.Close()
		}
	})
	return &AutocompleteRegistry{
		resolver: resolver,
		debounce: debounce,
		sessions: sessions,
	}
}

// Session はトークンに対応するセッションを返す
// トークンが空・不正な形式・未登録の場合は新しいセッションを作成する
func (r *AutocompleteRegistry) Session(token string) *AutocompleteSession {
	if token != "" {
		if v, found := r.sessions.Get(token); found {
			session := v.(*AutocompleteSession)
			r.sessions.Set(token, session, cache.DefaultExpiration)
			return session
		}
		if _, err := uuid.Parse(token); err != nil {
			token = ""
		}
	}
	if token == "" {
		token = uuid.New().String()
	}

	session := newAutocompleteSession(token, r.resolver, r.debounce)
	if err := r.sessions.Add(token, session, cache.DefaultExpiration); err != nil {
		// 同時に作成された場合は先に登録された方を使う
		if v, found := r.sessions.Get(token); found {
			return v.(*AutocompleteSession)
		}
	}
	return session
}

// Lookup は登録済みのセッションを返す
func (r *AutocompleteRegistry) Lookup(token string) (*AutocompleteSession, bool) {
	v, found := r.sessions.Get(token)
	if !found {
		return nil, false
	}
	return v.(*AutocompleteSession), true
}

// Close はセッションを終了して登録を解除する
func (r *AutocompleteRegistry) Close(token string) {
	r.sessions.Delete(token)
}

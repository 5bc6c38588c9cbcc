package repository

import (
	"context"

	"MiddleMeetup-App/internal/domain/model"
)

// PrimaryGeocoder はサジェストと詳細取得の2段階で住所を解決するプロバイダ
type PrimaryGeocoder interface {
	// Suggest は入力途中の文字列から候補を返す（座標は未解決の場合がある）
	Suggest(ctx context.Context, query string, limit int, sessionToken string) ([]model.AddressCandidate, error)
	// Retrieve はSuggestで得たIDから座標を取得する（同じセッショントークンを使う）
	Retrieve(ctx context.Context, sourceID string, sessionToken string) (*model.LatLng, error)
	// Forward は完全な住所を1件の座標に解決する
	Forward(ctx context.Context, address string) (*model.LatLng, error)
}

// SecondaryGeocoder は座標付きの候補を一度に返すフォールバック用プロバイダ
type SecondaryGeocoder interface {
	Search(ctx context.Context, query string, limit int) ([]model.AddressCandidate, error)
}

// StaticGeocoder はメモリ上の固定テーブルによる最終フォールバック
type StaticGeocoder interface {
	Search(query string, limit int) []model.AddressCandidate
	Lookup(address string) *model.LatLng
}

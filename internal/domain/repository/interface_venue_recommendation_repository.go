package repository

import (
	"context"

	"MiddleMeetup-App/internal/domain/model"
)

// VenueRecommendationRepository は生成AIから会場候補を取得する責務を持つリポジトリインターフェース
type VenueRecommendationRepository interface {
	// FetchVenueCandidates はスキーマ検証済みの会場候補を返す（ID・距離は未設定）
	// 通信・解析・スキーマのいずれの失敗もエラーとして返す
	FetchVenueCandidates(ctx context.Context, req *model.VenueSearchRequest) ([]model.Venue, error)
}

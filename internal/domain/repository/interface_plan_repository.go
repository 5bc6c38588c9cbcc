package repository

import (
	"context"
	"errors"

	"MiddleMeetup-App/internal/domain/model"
)

// ErrPlanNotFound は計画が存在しない場合のエラー
var ErrPlanNotFound = errors.New("計画が見つかりません")

// ErrDraftNotFound は行程ドラフトが存在しない（または期限切れの）場合のエラー
var ErrDraftNotFound = errors.New("行程ドラフトが見つかりません（有効期限切れまたは無効なID）")

// ErrInvalidToken はアクセストークンが無効な場合のエラー
var ErrInvalidToken = errors.New("アクセストークンが無効です")

// MeetupPlanRepository は確定した計画の永続化を担当する
type MeetupPlanRepository interface {
	Create(ctx context.Context, plan *model.MeetupPlan) error
	GetByID(ctx context.Context, id string) (*model.MeetupPlan, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]model.MeetupPlan, error)
}

// ItineraryDraftRepository は生成した行程をTTL付きで一時保存する
type ItineraryDraftRepository interface {
	Save(ctx context.Context, itinerary *model.Itinerary, ttlHours int) (string, error)
	Get(ctx context.Context, draftID string) (*model.Itinerary, error)
}

// IdentityProvider はアクセストークンから利用者を特定する
type IdentityProvider interface {
	VerifyAccessToken(ctx context.Context, token string) (*model.Identity, error)
}

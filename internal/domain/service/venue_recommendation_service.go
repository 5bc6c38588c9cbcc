package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"MiddleMeetup-App/internal/domain/helper"
	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
)

// ErrNoActivities はアクティビティが1つも選択されていない場合のエラー
var ErrNoActivities = errors.New("at least one activity must be selected")

// VenueSource は推薦結果の出どころ
const (
	VenueSourceAI       = "ai"
	VenueSourceFallback = "fallback"
)

// VenueRecommendation は推薦結果
type VenueRecommendation struct {
	Midpoint model.LatLng
	Venues   []model.Venue
	Source   string
}

// VenueRecommendationService は2人にとって行きやすい会場を推薦する
type VenueRecommendationService interface {
	RecommendVenues(ctx context.Context, req *model.VenueSearchRequest) (*VenueRecommendation, error)
}

type venueRecommendationService struct {
	repo        repository.VenueRecommendationRepository
	callTimeout time.Duration
}

// NewVenueRecommendationService は新しいVenueRecommendationServiceを作成する
func NewVenueRecommendationService(repo repository.VenueRecommendationRepository, callTimeout time.Duration) VenueRecommendationService {
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	return &venueRecommendationService{
		repo:        repo,
		callTimeout: callTimeout,
	}
}

// RecommendVenues は会場候補を取得し、2人からの距離を付けて平均距離の昇順に並べる
// 生成AIの失敗はエラーにせず、中間地点周辺の固定会場で代替する
// エラーを返すのは入力不正の場合のみ
func (s *venueRecommendationService) RecommendVenues(ctx context.Context, req *model.VenueSearchRequest) (*VenueRecommendation, error) {
	if len(req.Activities) == 0 {
		return nil, ErrNoActivities
	}
	if err := helper.ValidateLatLng(req.Party1); err != nil {
		return nil, err
	}
	if err := helper.ValidateLatLng(req.Party2); err != nil {
		return nil, err
	}

	search := *req
	if search.Midpoint.IsZero() {
		search.Midpoint = helper.Midpoint(req.Party1, req.Party2)
	}
	search.RadiusKm = search.GetRadiusKm()

	venues, source := s.fetchOrFallback(ctx, &search)
	helper.AnnotateDistances(venues, search.Party1, search.Party2)
	helper.SortByAverageDistance(venues)

	return &VenueRecommendation{
		Midpoint: search.Midpoint,
		Venues:   venues,
		Source:   source,
	}, nil
}

func (s *venueRecommendationService) fetchOrFallback(ctx context.Context, req *model.VenueSearchRequest) ([]model.Venue, string) {
	if s.repo != nil {
		venues, err := withTimeout(ctx, s.callTimeout, func(ctx context.Context) ([]model.Venue, error) {
			return s.repo.FetchVenueCandidates(ctx, req)
		})
		if err == nil {
			for i := range venues {
				venues[i].ID = "gemini-" + uuid.New().String()
				venues[i].ImageURL = model.VenuePlaceholderImage
			}
			return venues, VenueSourceAI
		}
		log.Printf("⚠️ 会場推薦に失敗したためフォールバック会場を使用します: %v", err)
	}

	venues := helper.FilterByActivities(buildFallbackVenues(req.Midpoint), req.Activities)
	return venues, VenueSourceFallback
}

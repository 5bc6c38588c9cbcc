package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"MiddleMeetup-App/internal/domain/helper"
	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
	"MiddleMeetup-App/internal/domain/service"
)

// ErrAddressNotResolved は選択された候補の座標が取得できなかった場合のエラー
var ErrAddressNotResolved = errors.New("could not resolve the selected address")

// noVenuesMessage は推薦結果が0件のときに返すメッセージ
const noVenuesMessage = "No venues found for the selected activities. Try different activities or a wider radius."

type PlanningUseCase interface {
	// ResolveLocations は2人の住所を並行して解決し、中間地点を計算する
	ResolveLocations(ctx context.Context, req *model.ResolveLocationsRequest) (*model.ResolveLocationsResponse, error)

	// SuggestAddresses はオートコンプリートのセッション単位で住所候補を返す
	SuggestAddresses(ctx context.Context, query string, limit int, sessionToken string) (*model.AddressSuggestResponse, error)

	// ResolveAddress は選択された候補の座標を取得し、セッションを終了する
	ResolveAddress(ctx context.Context, req *model.AddressResolveRequest) (*model.LatLng, error)

	// RecommendVenues は中間地点周辺の会場を推薦する
	RecommendVenues(ctx context.Context, req *model.VenueRecommendationRequest) (*model.VenueRecommendationResponse, error)

	// GenerateItinerary は行程を生成し、ドラフトとして一時保存する
	GenerateItinerary(ctx context.Context, req *model.ItineraryRequest) (*model.ItineraryResponse, error)

	// GetItineraryDraft は保存済みのドラフトを取得する
	GetItineraryDraft(ctx context.Context, draftID string) (*model.Itinerary, error)

	// BuildMapView は地図描画用のGeoJSONを組み立てる
	BuildMapView(req *model.MapViewRequest) *service.MapView
}

// planningUseCaseImpl はPlanningUseCaseの実装
type planningUseCaseImpl struct {
	addressService service.AddressResolutionService
	autocomplete   *service.AutocompleteRegistry
	venueService   service.VenueRecommendationService
	synthesizer    *service.ItinerarySynthesizer
	flow           *service.PlanningFlow
	draftRepo      repository.ItineraryDraftRepository
	draftTTLHours  int
	now            func() time.Time
}

// NewPlanningUseCase は新しいPlanningUseCaseインスタンスを作成
// draftRepoがnilの場合、行程はドラフト保存せずに返す
func NewPlanningUseCase(
	addressService service.AddressResolutionService,
	autocomplete *service.AutocompleteRegistry,
	venueService service.VenueRecommendationService,
	synthesizer *service.ItinerarySynthesizer,
	draftRepo repository.ItineraryDraftRepository,
	draftTTLHours int,
) PlanningUseCase {
	if draftTTLHours <= 0 {
		draftTTLHours = 24
	}
	return &planningUseCaseImpl{
		addressService: addressService,
		autocomplete:   autocomplete,
		venueService:   venueService,
		synthesizer:    synthesizer,
		flow:           service.NewPlanningFlow(synthesizer),
		draftRepo:      draftRepo,
		draftTTLHours:  draftTTLHours,
		now:            time.Now,
	}
}

func (u *planningUseCaseImpl) ResolveLocations(ctx context.Context, req *model.ResolveLocationsRequest) (*model.ResolveLocationsResponse, error) {
	log.Printf("🚀 住所解決開始: %q / %q", req.Party1.Address, req.Party2.Address)

	loc1, loc2, err := u.addressService.GeocodePair(ctx, req.Party1.Address, req.Party2.Address)
	if err != nil {
		return nil, err
	}

	session, err := u.flow.SetParties(u.flow.Reset(),
		model.Party{Name: partyName(req.Party1.Name, 1), Address: req.Party1.Address, Coordinates: loc1},
		model.Party{Name: partyName(req.Party2.Name, 2), Address: req.Party2.Address, Coordinates: loc2},
	)
	if err != nil {
		return nil, fmt.Errorf("位置の設定に失敗: %w", err)
	}

	log.Printf("✅ 中間地点: (%.6f, %.6f)", session.Midpoint.Lat, session.Midpoint.Lng)
	return &model.ResolveLocationsResponse{
		Party1:   *session.Party1,
		Party2:   *session.Party2,
		Midpoint: *session.Midpoint,
	}, nil
}

func (u *planningUseCaseImpl) SuggestAddresses(ctx context.Context, query string, limit int, sessionToken string) (*model.AddressSuggestResponse, error) {
	session := u.autocomplete.Session(sessionToken)
	resp, err := session.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (u *planningUseCaseImpl) ResolveAddress(ctx context.Context, req *model.AddressResolveRequest) (*model.LatLng, error) {
	session := u.autocomplete.Session(req.SessionToken)
	defer u.autocomplete.Close(session.Token())

	location := session.Resolve(ctx, req.Candidate)
	if location == nil {
		return nil, ErrAddressNotResolved
	}
	return location, nil
}

func (u *planningUseCaseImpl) RecommendVenues(ctx context.Context, req *model.VenueRecommendationRequest) (*model.VenueRecommendationResponse, error) {
	searchReq := &model.VenueSearchRequest{
		Party1:     req.Party1,
		Party2:     req.Party2,
		Activities: req.Activities,
		RadiusKm:   req.RadiusKm,
	}
	if req.Midpoint != nil {
		searchReq.Midpoint = *req.Midpoint
	}

	result, err := u.venueService.RecommendVenues(ctx, searchReq)
	if err != nil {
		return nil, err
	}

	resp := &model.VenueRecommendationResponse{
		Midpoint: result.Midpoint,
		Venues:   result.Venues,
	}
	if len(result.Venues) == 0 {
		resp.Venues = []model.Venue{}
		resp.Message = noVenuesMessage
	}
	log.Printf("✅ 会場推薦: %d件 (source: %s)", len(resp.Venues), result.Source)
	return resp, nil
}

func (u *planningUseCaseImpl) GenerateItinerary(ctx context.Context, req *model.ItineraryRequest) (*model.ItineraryResponse, error) {
	if len(req.Experiences) == 0 {
		return nil, service.ErrNoExperiences
	}
	if err := helper.ValidateLatLng(req.Party1.Coordinates); err != nil {
		return nil, fmt.Errorf("party1: %w", err)
	}
	if err := helper.ValidateLatLng(req.Party2.Coordinates); err != nil {
		return nil, fmt.Errorf("party2: %w", err)
	}

	midpoint := req.Midpoint
	if midpoint == nil {
		m := helper.Midpoint(req.Party1.Coordinates, req.Party2.Coordinates)
		midpoint = &m
	}

	itinerary := u.synthesizer.Synthesize(u.now(), req.Party1, req.Party2, midpoint, orderedExperiences(req.Experiences))
	resp := &model.ItineraryResponse{Itinerary: itinerary}

	if u.draftRepo == nil {
		return resp, nil
	}
	draftID, err := u.draftRepo.Save(ctx, itinerary, u.draftTTLHours)
	if err != nil {
		// ドラフトはキャッシュなので保存に失敗しても行程は返す
		log.Printf("⚠️ 行程ドラフトの保存に失敗: %v", err)
		return resp, nil
	}
	resp.DraftID = draftID
	return resp, nil
}

func (u *planningUseCaseImpl) GetItineraryDraft(ctx context.Context, draftID string) (*model.Itinerary, error) {
	if u.draftRepo == nil || strings.TrimSpace(draftID) == "" {
		return nil, repository.ErrDraftNotFound
	}
	return u.draftRepo.Get(ctx, draftID)
}

func (u *planningUseCaseImpl) BuildMapView(req *model.MapViewRequest) *service.MapView {
	return service.BuildMapView(req)
}

// partyName は名前が未入力の場合に "Person N" を返す
func partyName(name string, n int) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fmt.Sprintf("Person %d", n)
}

// orderedExperiences はOrder順に並べ替えたコピーを返す
func orderedExperiences(experiences []model.Experience) []model.Experience {
	ordered := append([]model.Experience{}, experiences...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})
	return ordered
}

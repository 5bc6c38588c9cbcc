package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/service"
	"MiddleMeetup-App/internal/usecase"
)

// PlanningHandler は計画フロー（住所・会場・行程・地図）APIのハンドラー
type PlanningHandler struct {
	planningUseCase usecase.PlanningUseCase
}

// NewPlanningHandler は新しいPlanningHandlerインスタンスを作成
func NewPlanningHandler(planningUseCase usecase.PlanningUseCase) *PlanningHandler {
	return &PlanningHandler{
		planningUseCase: planningUseCase,
	}
}

// GetActivities は選択可能なアクティビティ一覧を返す
// GET /api/activities
func (h *PlanningHandler) GetActivities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"activities": model.ActivityCategories,
	})
}

// GetAddressSuggestions は住所のオートコンプリート候補を返す
// GET /api/addresses/suggest?q=&limit=&session_token=
func (h *PlanningHandler) GetAddressSuggestions(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	limit := service.DefaultAddressSuggestLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondValidationError(c, &ValidationError{Field: "limit", Message: "正の整数で指定してください"})
			return
		}
		limit = n
	}

	resp, err := h.planningUseCase.SuggestAddresses(c.Request.Context(), query, limit, c.Query("session_token"))
	if err != nil {
		respondError(c, err, "住所候補の取得に失敗しました")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PostAddressResolve は選択された候補の座標を返す
// POST /api/addresses/resolve
func (h *PlanningHandler) PostAddressResolve(c *gin.Context) {
	var req model.AddressResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Candidate.SourceID == "" && req.Candidate.DisplayName == "" {
		respondValidationError(c, &ValidationError{Field: "candidate", Message: "候補は必須です"})
		return
	}

	location, err := h.planningUseCase.ResolveAddress(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "住所の解決に失敗しました")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coordinates": location,
	})
}

// PostLocations は2人の住所を解決して中間地点を返す
// POST /api/locations
func (h *PlanningHandler) PostLocations(c *gin.Context) {
	var req model.ResolveLocationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validateResolveLocationsRequest(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.planningUseCase.ResolveLocations(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "位置の解決に失敗しました")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PostVenueRecommendations は中間地点周辺の会場を推薦する
// POST /api/venues/recommendations
func (h *PlanningHandler) PostVenueRecommendations(c *gin.Context) {
	var req model.VenueRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validateVenueRecommendationRequest(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.planningUseCase.RecommendVenues(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "会場の推薦に失敗しました")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PostItineraries は行程を生成する
// POST /api/itineraries
func (h *PlanningHandler) PostItineraries(c *gin.Context) {
	var req model.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validateItineraryRequest(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.planningUseCase.GenerateItinerary(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "行程の生成に失敗しました")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetItinerary は保存済みの行程ドラフトを返す
// GET /api/itineraries/:id
func (h *PlanningHandler) GetItinerary(c *gin.Context) {
	draftID := c.Param("id")
	if draftID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "draft_idが指定されていません",
		})
		return
	}

	itinerary, err := h.planningUseCase.GetItineraryDraft(c.Request.Context(), draftID)
	if err != nil {
		respondError(c, err, "行程の取得に失敗しました")
		return
	}

	c.JSON(http.StatusOK, model.ItineraryResponse{
		DraftID:   draftID,
		Itinerary: itinerary,
	})
}

// PostMapView は地図描画用のGeoJSONを返す
// POST /api/map-view
func (h *PlanningHandler) PostMapView(c *gin.Context) {
	var req model.MapViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validateLatLng("party1.coordinates", req.Party1.Coordinates); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := validateLatLng("party2.coordinates", req.Party2.Coordinates); err != nil {
		respondValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.planningUseCase.BuildMapView(&req))
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/usecase"
)

// MeetupPlanHandler は確定した計画APIのハンドラー（認証必須）
type MeetupPlanHandler struct {
	planUseCase usecase.MeetupPlanUseCase
}

// NewMeetupPlanHandler は新しいMeetupPlanHandlerインスタンスを作成
func NewMeetupPlanHandler(planUseCase usecase.MeetupPlanUseCase) *MeetupPlanHandler {
	return &MeetupPlanHandler{
		planUseCase: planUseCase,
	}
}

// PostPlans は計画を確定して保存する
// POST /api/plans
func (h *MeetupPlanHandler) PostPlans(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		abortUnauthorized(c, "認証が必要です")
		return
	}

	var req model.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validateCreatePlanRequest(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	plan, err := h.planUseCase.CreatePlan(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		respondError(c, err, "計画の保存に失敗しました")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetPlan は自分の計画を1件返す
// GET /api/plans/:id
func (h *MeetupPlanHandler) GetPlan(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		abortUnauthorized(c, "認証が必要です")
		return
	}

	plan, err := h.planUseCase.GetPlan(c.Request.Context(), identity.UserID, c.Param("id"))
	if err != nil {
		respondError(c, err, "計画の取得に失敗しました")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetPlans は自分の計画一覧を返す
// GET /api/plans?limit=
func (h *MeetupPlanHandler) GetPlans(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		abortUnauthorized(c, "認証が必要です")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			respondValidationError(c, &ValidationError{Field: "limit", Message: "1から100の範囲で指定してください"})
			return
		}
		limit = n
	}

	plans, err := h.planUseCase.ListPlans(c.Request.Context(), identity.UserID, limit)
	if err != nil {
		respondError(c, err, "計画一覧の取得に失敗しました")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plans": plans,
	})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"MiddleMeetup-App/internal/domain/repository"
	"MiddleMeetup-App/internal/domain/service"
	"MiddleMeetup-App/internal/usecase"
)

// statusForError はドメインエラーをHTTPステータスに対応付ける
func statusForError(err error) int {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrLocationsNotFound),
		errors.Is(err, usecase.ErrAddressNotResolved):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNoActivities),
		errors.Is(err, service.ErrNoExperiences),
		errors.Is(err, service.ErrPartiesRequired),
		errors.Is(err, service.ErrDuplicateVenue),
		errors.Is(err, service.ErrExperienceNotFound):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrDraftNotFound),
		errors.Is(err, repository.ErrPlanNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError はエラーを {"error", "details"} 形式で返す
// 500の場合のみ汎用メッセージを使う
func respondError(c *gin.Context, err error, fallback string) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = fallback
	}
	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

// respondBindError はリクエストボディの解析失敗を返す
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "リクエストの形式が正しくありません",
		"details": err.Error(),
	})
}

// respondValidationError はバリデーションエラーを返す
func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "バリデーションエラー",
		"details": err.Error(),
	})
}

package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
)

const identityContextKey = "identity"

// AuthMiddleware はBearerトークンを検証し、利用者をコンテキストに格納する
func AuthMiddleware(provider repository.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, "Bearerトークンが必要です")
			return
		}

		identity, err := provider.VerifyAccessToken(c.Request.Context(), token)
		if err != nil {
			log.Printf("⚠️ トークン検証に失敗: %v", err)
			abortUnauthorized(c, "アクセストークンが無効です")
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func identityFrom(c *gin.Context) (*model.Identity, bool) {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*model.Identity)
	return identity, ok && identity != nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
	})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MiddleMeetup-App/internal/domain/repository"
)

// NewRouter はAPIのルーティングを設定したgin.Engineを返す
// planHandlerかidentityProviderがnilの場合、/api/plans は登録しない
func NewRouter(planningHandler *PlanningHandler, planHandler *MeetupPlanHandler, identityProvider repository.IdentityProvider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "MiddleMeetup-App"})
		})
		api.GET("/activities", planningHandler.GetActivities)

		api.GET("/addresses/suggest", planningHandler.GetAddressSuggestions)
		api.POST("/addresses/resolve", planningHandler.PostAddressResolve)
		api.POST("/locations", planningHandler.PostLocations)

		api.POST("/venues/recommendations", planningHandler.PostVenueRecommendations)

		api.POST("/itineraries", planningHandler.PostItineraries)
		api.GET("/itineraries/:id", planningHandler.GetItinerary)

		api.POST("/map-view", planningHandler.PostMapView)
	}

	if planHandler != nil && identityProvider != nil {
		plans := api.Group("/plans", AuthMiddleware(identityProvider))
		{
			plans.POST("", planHandler.PostPlans)
			plans.GET("", planHandler.GetPlans)
			plans.GET("/:id", planHandler.GetPlan)
		}
	}

	return r
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	internalapi "ice_ai_server/internal/api"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *internalapi.APIHandler) {

	apiGroup := router.Group("/api")
	{
		// --- Generation ---
		apiGroup.POST("/generate-website", h.GenerateWebsite)

		// --- Credits ---
		apiGroup.GET("/credits", h.GetCredits)

		// --- Saved Websites ---
		websites := apiGroup.Group("/websites")
		{
			websites.POST("", h.SaveWebsite)
			websites.GET("", h.ListWebsites)
			websites.GET("/:id", h.GetWebsite)
			websites.DELETE("/:id", h.DeleteWebsite)
			websites.POST("/:id/share", h.ShareWebsite)
		}

		// --- Public Sharing ---
		apiGroup.GET("/shared/:token", h.GetSharedWebsite)

		// --- Simple Health Check ---
		apiGroup.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
	}
}

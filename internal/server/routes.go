package server

import (
	"github.com/ryuzo-k/kokoro-graph/internal/server/middleware"
	"github.com/ryuzo-k/kokoro-graph/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Meeting routes
	apiRoutes.GET("/meetings", routes.GetMeetingsHandler)
	apiRoutes.POST("/meetings", routes.CreateMeetingHandler)

	// Network routes
	apiRoutes.GET("/network", routes.GetNetworkHandler)
	apiRoutes.GET("/network/analytics", routes.GetNetworkAnalyticsHandler)
	apiRoutes.GET("/network/path", routes.GetNetworkPathHandler)
	apiRoutes.GET("/network/suggestions", routes.GetNetworkSuggestionsHandler)

	// Profile and recommendation routes
	apiRoutes.GET("/profile", routes.GetProfileHandler)
	apiRoutes.GET("/recommendations", routes.GetRecommendationsHandler)

	// Background job routes
	apiRoutes.POST("/import", routes.ImportMeetingsHandler)
	apiRoutes.POST("/analyze", routes.AnalyzeNetworkHandler)
	apiRoutes.POST("/export", routes.ExportNetworkHandler)
	apiRoutes.GET("/exports", routes.GetExportsHandler)
}

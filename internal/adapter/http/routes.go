package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all tracker API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *TrackerHandler) {
	RegisterRoutesWithMiddleware(e, h)
}

// RegisterRoutesWithMiddleware registers routes with middleware applied to the
// versioned API group only.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *TrackerHandler, middleware ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)

	tracker := api.Group("/tracker")
	tracker.GET("", h.GetTracker)
	tracker.POST("/start", h.Start)
	tracker.POST("/stop", h.Stop)
	tracker.PUT("/viewport", h.SetViewport)
	tracker.PUT("/detail-view", h.SetDetailView)

	api.GET("/flights", h.ListFlights)

	selection := api.Group("/selection")
	selection.GET("", h.GetSelection)
	selection.POST("", h.Select)
	selection.DELETE("", h.ClearSelection)

	api.GET("/flags/:country", h.GetFlag)
	api.GET("/stream", h.Stream)
}

package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`

	// Tracker is the polling state: idle or polling
	Tracker string `json:"tracker"`
}

// Health writes a health check response.
func Health(c echo.Context, trackerState string) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status:  "ok",
		Tracker: trackerState,
	})
}

// PNG writes raw PNG bytes with a long-lived cache header.
func PNG(c echo.Context, data []byte) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=86400")
	return c.Blob(http.StatusOK, "image/png", data)
}

// Package http provides the HTTP surface of the live flight tracker.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flight-tracker/live-flight-tracker/internal/adapter/http/middleware"
	"github.com/flight-tracker/live-flight-tracker/internal/adapter/http/response"
	"github.com/flight-tracker/live-flight-tracker/internal/adapter/provider/flags"
	"github.com/flight-tracker/live-flight-tracker/internal/domain"
	"github.com/flight-tracker/live-flight-tracker/internal/infrastructure/logger"
	"github.com/flight-tracker/live-flight-tracker/internal/usecase"
)

// TrackerService is the subset of usecase.Tracker the handler drives.
type TrackerService interface {
	Start(ctx context.Context) error
	Stop()
	SetViewport(v domain.Viewport) error
	SetDetailViewOpen(open bool)
	Select(ctx context.Context, flightIata string) (*domain.FlightRecord, error)
	ClearSelection()
	Snapshot() usecase.Snapshot
	State() usecase.State
}

// FlagSource returns memoized country flags.
type FlagSource interface {
	Get(ctx context.Context, code string) (*flags.Flag, error)
}

// TrackerHandler handles HTTP requests for the tracker endpoints.
type TrackerHandler struct {
	tracker TrackerService
	flags   FlagSource
	hub     *Hub
	log     *logger.Logger
	now     func() time.Time
}

// NewTrackerHandler creates a new TrackerHandler. hub may be nil, in which
// case the stream endpoint is not served.
func NewTrackerHandler(tracker TrackerService, flagSource FlagSource, hub *Hub, log *logger.Logger) *TrackerHandler {
	return &TrackerHandler{
		tracker: tracker,
		flags:   flagSource,
		hub:     hub,
		log:     logger.OrNop(log).WithComponent("http"),
		now:     time.Now,
	}
}

// Health handles GET /health
//
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *TrackerHandler) Health(c echo.Context) error {
	return response.Health(c, h.tracker.State().String())
}

// GetTracker handles GET /api/v1/tracker
//
// @Summary Get tracker state
// @Description Returns the current polling state, viewport, selection and last error
// @Tags tracker
// @Produce json
// @Success 200 {object} SnapshotDTO
// @Router /api/v1/tracker [get]
func (h *TrackerHandler) GetTracker(c echo.Context) error {
	return response.OK(c, ToSnapshotDTO(h.tracker.Snapshot(), h.now()))
}

// Start handles POST /api/v1/tracker/start
//
// @Summary Start polling
// @Description Refreshes immediately and then on every interval. Starting while polling is a no-op.
// @Tags tracker
// @Produce json
// @Success 200 {object} SnapshotDTO
// @Failure 500 {object} response.ErrorDetail
// @Router /api/v1/tracker/start [post]
func (h *TrackerHandler) Start(c echo.Context) error {
	if err := h.tracker.Start(c.Request().Context()); err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToSnapshotDTO(h.tracker.Snapshot(), h.now()))
}

// Stop handles POST /api/v1/tracker/stop
//
// @Summary Stop polling
// @Description Cancels in-flight requests; late results are discarded. Idempotent.
// @Tags tracker
// @Produce json
// @Success 200 {object} SnapshotDTO
// @Router /api/v1/tracker/stop [post]
func (h *TrackerHandler) Stop(c echo.Context) error {
	h.tracker.Stop()
	return response.OK(c, ToSnapshotDTO(h.tracker.Snapshot(), h.now()))
}

// SetViewport handles PUT /api/v1/tracker/viewport
//
// @Summary Set the map viewport
// @Description Derives the bounding box and zoom level; a running tracker refreshes immediately
// @Tags tracker
// @Accept json
// @Produce json
// @Param request body ViewportRequest true "Visible region"
// @Success 200 {object} SnapshotDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /api/v1/tracker/viewport [put]
func (h *TrackerHandler) SetViewport(c echo.Context) error {
	var req ViewportRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	if err := h.tracker.SetViewport(req.ToDomain()); err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToSnapshotDTO(h.tracker.Snapshot(), h.now()))
}

// SetDetailView handles PUT /api/v1/tracker/detail-view
//
// @Summary Open or close the detail view
// @Description While open, flight list refreshes are paused
// @Tags tracker
// @Accept json
// @Produce json
// @Param request body DetailViewRequest true "Detail view state"
// @Success 200 {object} SnapshotDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /api/v1/tracker/detail-view [put]
func (h *TrackerHandler) SetDetailView(c echo.Context) error {
	var req DetailViewRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	h.tracker.SetDetailViewOpen(*req.Open)
	return response.OK(c, ToSnapshotDTO(h.tracker.Snapshot(), h.now()))
}

// ListFlights handles GET /api/v1/flights
//
// @Summary List tracked flights
// @Description Returns the merged flight list for the current viewport
// @Tags flights
// @Produce json
// @Success 200 {object} FlightListDTO
// @Router /api/v1/flights [get]
func (h *TrackerHandler) ListFlights(c echo.Context) error {
	return response.OK(c, ToFlightListDTO(h.tracker.Snapshot()))
}

// Select handles POST /api/v1/selection
//
// @Summary Select a flight
// @Description Fetches the flight by IATA number and keeps it refreshed while polling
// @Tags selection
// @Accept json
// @Produce json
// @Param request body SelectFlightRequest true "Flight to select"
// @Success 200 {object} FlightDetailDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Flight not found"
// @Failure 409 {object} response.ErrorDetail "Superseded by a newer request"
// @Failure 502 {object} response.ErrorDetail "Upstream error"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/selection [post]
func (h *TrackerHandler) Select(c echo.Context) error {
	var req SelectFlightRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	record, err := h.tracker.Select(c.Request().Context(), req.FlightIATA)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToFlightDetailDTO(record, h.now()))
}

// GetSelection handles GET /api/v1/selection
//
// @Summary Get the selected flight
// @Description Returns the selected flight, or the last shown one when nothing is selected
// @Tags selection
// @Produce json
// @Success 200 {object} FlightDetailDTO
// @Failure 404 {object} response.ErrorDetail "Nothing selected"
// @Router /api/v1/selection [get]
func (h *TrackerHandler) GetSelection(c echo.Context) error {
	snap := h.tracker.Snapshot()
	record := snap.Selected
	if record == nil {
		record = snap.LastShown
	}
	if record == nil {
		return response.NotFound(c, "No flight selected")
	}
	return response.OK(c, ToFlightDetailDTO(record, h.now()))
}

// ClearSelection handles DELETE /api/v1/selection
//
// @Summary Clear the selection
// @Tags selection
// @Success 204
// @Router /api/v1/selection [delete]
func (h *TrackerHandler) ClearSelection(c echo.Context) error {
	h.tracker.ClearSelection()
	return response.NoContent(c)
}

// GetFlag handles GET /api/v1/flags/:country
//
// @Summary Country flag
// @Description Returns the flag PNG for an ISO 3166-1 alpha-2 country code
// @Tags flags
// @Produce png
// @Param country path string true "Country code" example(SE)
// @Success 200 {file} binary
// @Failure 400 {object} response.ErrorDetail "Invalid country code"
// @Failure 404 {object} response.ErrorDetail "Unknown country"
// @Failure 502 {object} response.ErrorDetail "Upstream error"
// @Router /api/v1/flags/{country} [get]
func (h *TrackerHandler) GetFlag(c echo.Context) error {
	flag, err := h.flags.Get(c.Request().Context(), c.Param("country"))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.PNG(c, flag.Data)
}

// Stream handles GET /api/v1/stream
//
// @Summary Live updates
// @Description WebSocket; pushes the snapshot and flight list on every tracker update
// @Tags tracker
// @Success 101
// @Router /api/v1/stream [get]
func (h *TrackerHandler) Stream(c echo.Context) error {
	if h.hub == nil {
		return response.NotFound(c, "Streaming is disabled")
	}
	h.hub.Serve(c.Response(), c.Request(), h.tracker.Snapshot())
	return nil
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *TrackerHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *TrackerHandler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return response.ValidationErrorWithMessage(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, usecase.ErrSuperseded):
		return response.Conflict(c, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	case errors.Is(err, domain.ErrDecode):
		h.requestLog(c).Warn().Err(err).Msg("upstream decode failure")
		return response.BadGateway(c, response.MsgUpstreamDecode)
	case errors.Is(err, domain.ErrNetwork):
		h.requestLog(c).Warn().Err(err).Msg("upstream request failed")
		return response.BadGateway(c, "")
	}

	h.requestLog(c).Error().Err(err).Msg("unhandled error")
	return response.InternalServerError(c)
}

func (h *TrackerHandler) requestLog(c echo.Context) *logger.Logger {
	return h.log.WithRequestID(middleware.GetRequestID(c))
}

// ErrorKind classifies an error for API clients.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, domain.ErrDecode):
		return "decode"
	case errors.Is(err, domain.ErrNetwork):
		return "network"
	default:
		return "internal"
	}
}

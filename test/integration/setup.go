// Package integration wires the real AirLabs client, flag cache, tracker and
// HTTP layer against a fake upstream to test them working together.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	httpAdapter "github.com/flight-tracker/live-flight-tracker/internal/adapter/http"
	"github.com/flight-tracker/live-flight-tracker/internal/adapter/http/middleware"
	"github.com/flight-tracker/live-flight-tracker/internal/adapter/provider/airlabs"
	"github.com/flight-tracker/live-flight-tracker/internal/adapter/provider/flags"
	"github.com/flight-tracker/live-flight-tracker/internal/infrastructure/logger"
	"github.com/flight-tracker/live-flight-tracker/internal/infrastructure/timeutil"
	"github.com/flight-tracker/live-flight-tracker/internal/usecase"
	"github.com/flight-tracker/live-flight-tracker/test/testutil"
)

const (
	waitFor = 2 * time.Second
	tick    = time.Millisecond
)

// TestServer wraps the wired application and its fake upstream.
type TestServer struct {
	Echo     *echo.Echo
	Tracker  *usecase.Tracker
	Flags    *flags.Cache
	Hub      *httpAdapter.Hub
	Clock    *timeutil.MockClock
	Upstream *testutil.FakeUpstream
}

// NewTestServer builds the application against a fresh FakeUpstream. Polling
// ticks are driven by Clock; the tracker is shut down at test cleanup.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	upstream := testutil.NewFakeUpstream(t)
	log := logger.Nop()
	clock := timeutil.NewMockClock(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC))

	source := airlabs.NewClient(airlabs.Config{
		BaseURL: upstream.AirLabsURL(),
		APIKey:  "integration-key",
		Timeout: time.Second,
	}, upstream.Server.Client(), log)

	flagCache := flags.NewCache(flags.Config{BaseURL: upstream.FlagsURL()}, upstream.Server.Client(), log)
	hub := httpAdapter.NewHub(log)

	tracker := usecase.NewTracker(source, &usecase.TrackerConfig{
		PollInterval: usecase.DefaultPollInterval,
		Clock:        clock,
		Logger:       log,
		OnUpdate:     hub.Broadcast,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	middleware.Setup(e, log.Logger)
	httpAdapter.RegisterRoutes(e, httpAdapter.NewTrackerHandler(tracker, flagCache, hub, log))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), waitFor)
		defer cancel()
		_ = tracker.Shutdown(ctx)
		hub.Close()
	})

	return &TestServer{
		Echo:     e,
		Tracker:  tracker,
		Flags:    flagCache,
		Hub:      hub,
		Clock:    clock,
		Upstream: upstream,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method string
	Path   string
	Body   interface{}
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var body []byte
	if req.Body != nil {
		body, _ = json.Marshal(req.Body)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bytes.NewReader(body))
	if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// Stockholm is the default start viewport.
var Stockholm = map[string]float64{
	"latitude":      59.3293,
	"longitude":     18.0686,
	"latitudeSpan":  3.6,
	"longitudeSpan": 7.0,
}

// SetViewport sends PUT /api/v1/tracker/viewport.
func (ts *TestServer) SetViewport(body interface{}) Response {
	return ts.Do(Request{Method: http.MethodPut, Path: "/api/v1/tracker/viewport", Body: body})
}

// Start sends POST /api/v1/tracker/start.
func (ts *TestServer) Start() Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/tracker/start"})
}

// Stop sends POST /api/v1/tracker/stop.
func (ts *TestServer) Stop() Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/tracker/stop"})
}

// Select sends POST /api/v1/selection.
func (ts *TestServer) Select(flightIata string) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/selection", Body: map[string]string{"flightIata": flightIata}})
}

// Flights fetches and decodes GET /api/v1/flights.
func (ts *TestServer) Flights(t *testing.T) httpAdapter.FlightListDTO {
	t.Helper()
	resp := ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/flights"})
	var dto httpAdapter.FlightListDTO
	if err := json.Unmarshal(resp.Body, &dto); err != nil {
		t.Fatalf("decode flights: %v", err)
	}
	return dto
}

// Snapshot fetches and decodes GET /api/v1/tracker.
func (ts *TestServer) Snapshot(t *testing.T) httpAdapter.SnapshotDTO {
	t.Helper()
	resp := ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/tracker"})
	var dto httpAdapter.SnapshotDTO
	if err := json.Unmarshal(resp.Body, &dto); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return dto
}

// ParseError decodes an error response body.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-tracker/live-flight-tracker/internal/adapter/http/response"
	"github.com/flight-tracker/live-flight-tracker/internal/adapter/provider/flags"
	"github.com/flight-tracker/live-flight-tracker/internal/domain"
	"github.com/flight-tracker/live-flight-tracker/internal/usecase"
)

// fakeTracker is an in-memory TrackerService.
type fakeTracker struct {
	mu        sync.Mutex
	snap      usecase.Snapshot
	startErr  error
	selectErr error
	record    *domain.FlightRecord

	starts, stops, clears int
	viewport              *domain.Viewport
	detailOpen            *bool
	selected              string
}

func (f *fakeTracker) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.startErr != nil {
		return f.startErr
	}
	f.snap.State = usecase.StatePolling
	return nil
}

func (f *fakeTracker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.snap.State = usecase.StateIdle
}

func (f *fakeTracker) SetViewport(v domain.Viewport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.viewport = &v
	f.snap.Viewport = &v
	return nil
}

func (f *fakeTracker) SetDetailViewOpen(open bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailOpen = &open
	f.snap.DetailViewOpen = open
}

func (f *fakeTracker) Select(ctx context.Context, flightIata string) (*domain.FlightRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = flightIata
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.record, nil
}

func (f *fakeTracker) ClearSelection() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.snap.Selected = nil
}

func (f *fakeTracker) Snapshot() usecase.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeTracker) State() usecase.State {
	return f.Snapshot().State
}

// fakeFlags serves a fixed payload per country.
type fakeFlags struct {
	data map[string][]byte
	err  error
}

func (f *fakeFlags) Get(ctx context.Context, code string) (*flags.Flag, error) {
	if f.err != nil {
		return nil, f.err
	}
	normalized, err := flags.NormalizeCode(code)
	if err != nil {
		return nil, err
	}
	data, ok := f.data[normalized]
	if !ok {
		return nil, domain.NewNotFoundError("flags.get", normalized)
	}
	return &flags.Flag{Code: normalized, Data: data}, nil
}

func ptr[T any](v T) *T { return &v }

func sampleRecord() *domain.FlightRecord {
	return &domain.FlightRecord{
		ICAO24:     "AC0196",
		FlightIATA: "AA719",
		Status:     domain.StatusEnRoute,
		Airline:    domain.AirlineRef{IATA: "AA", Name: "American Airlines"},
		Departure: domain.FlightEndpoint{
			IATA:      "JFK",
			Country:   "US",
			Scheduled: "2026-10-16 08:00",
			Actual:    "2026-10-16 08:12",
		},
		Arrival: domain.FlightEndpoint{
			IATA:      "LAX",
			Country:   "US",
			Scheduled: "2026-10-16 11:20",
			Estimated: "2026-10-16 11:35",
			Delayed:   ptr(15),
		},
		Position: domain.Position{Latitude: ptr(40.1), Longitude: ptr(-73.5)},
		Percent:  ptr(46.0),
		ETA:      ptr(205),
	}
}

func setupTestHandler(tracker *fakeTracker, flagSource FlagSource, hub *Hub) *echo.Echo {
	e := echo.New()
	h := NewTrackerHandler(tracker, flagSource, hub, nil)
	RegisterRoutes(e, h)
	return e
}

func makeRequest(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = []byte(b)
	default:
		reqBody, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var detail response.ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	return detail
}

func TestHealth(t *testing.T) {
	tracker := &fakeTracker{}
	e := setupTestHandler(tracker, &fakeFlags{}, nil)

	rec := makeRequest(e, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","tracker":"idle"}`, rec.Body.String())
}

func TestGetTracker(t *testing.T) {
	box := domain.ComputeBoundingBox(domain.Coordinate{Lat: 59.3293, Lon: 18.0686}, 3.6, 7.0)
	tracker := &fakeTracker{snap: usecase.Snapshot{
		SessionID:   "session-1",
		State:       usecase.StatePolling,
		Version:     4,
		BoundingBox: &box,
		Zoom:        6,
		Flights:     []domain.FlightRecord{*sampleRecord()},
		LastError:   domain.NewNetworkError("airlabs.flights", errors.New("connection refused")),
		LastErrorAt: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
	}}
	e := setupTestHandler(tracker, &fakeFlags{}, nil)

	rec := makeRequest(e, http.MethodGet, "/api/v1/tracker", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var dto SnapshotDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "session-1", dto.SessionID)
	assert.Equal(t, "polling", dto.State)
	assert.Equal(t, uint64(4), dto.Version)
	assert.Equal(t, 6, dto.Zoom)
	assert.Equal(t, 1, dto.FlightCount)
	require.NotNil(t, dto.BoundingBox)
	assert.Equal(t, box.String(), dto.BoundingBox.BBox)
	require.NotNil(t, dto.LastError)
	assert.Equal(t, "network", dto.LastError.Kind)
	assert.Contains(t, dto.LastError.Message, "connection refused")
	assert.Equal(t, "2026-10-16T12:00:00Z", dto.LastError.At)
}

func TestStartAndStop(t *testing.T) {
	tracker := &fakeTracker{}
	e := setupTestHandler(tracker, &fakeFlags{}, nil)

	rec := makeRequest(e, http.MethodPost, "/api/v1/tracker/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"polling"`)

	rec = makeRequest(e, http.MethodPost, "/api/v1/tracker/stop", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"idle"`)

	assert.Equal(t, 1, tracker.starts)
	assert.Equal(t, 1, tracker.stops)
}

func TestStart_Error(t *testing.T) {
	tracker := &fakeTracker{startErr: errors.New("boom")}
	e := setupTestHandler(tracker, &fakeFlags{}, nil)

	rec := makeRequest(e, http.MethodPost, "/api/v1/tracker/start", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, response.CodeInternalError, decodeError(t, rec).Code)
}

func TestSetViewport(t *testing.T) {
	tracker := &fakeTracker{}
	e := setupTestHandler(tracker, &fakeFlags{}, nil)

	rec := makeRequest(e, http.MethodPut, "/api/v1/tracker/viewport", map[string]float64{
		"latitude": 59.3293, "longitude": 18.0686, "latitudeSpan": 3.6, "longitudeSpan": 7.0,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, tracker.viewport)
	assert.Equal(t, domain.Coordinate{Lat: 59.3293, Lon: 18.0686}, tracker.viewport.Center)
	assert.Equal(t, 3.6, tracker.viewport.LatitudeSpan)
	assert.Contains(t, rec.Body.String(), `"latitude_span":3.6`)
}

func TestSetViewport_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  interface{}
		code  string
		field string
	}{
		{
			name: "malformed body",
			body: `{"latitude": `,
			code: response.CodeInvalidRequest,
		},
		{
			name:  "missing fields",
			body:  map[string]float64{"latitude": 10},
			code:  response.CodeValidationError,
			field: "longitude",
		},
		{
			name:  "out of range",
			body:  map[string]float64{"latitude": 95, "longitude": 0, "latitudeSpan": 1, "longitudeSpan": 1},
			code:  response.CodeValidationError,
			field: "latitude",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := &fakeTracker{}
			e := setupTestHandler(tracker, &fakeFlags{}, nil)

			rec := makeRequest(e, http.MethodPut, "/api/v1/tracker/viewport", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			detail := decodeError(t, rec)
			assert.Equal(t, tt.code, detail.Code)
			if tt.field != "" {
				assert.Contains(t, detail.Details, tt.field)
			}
			assert.Nil(t, tracker.viewport)
		})
	}
}

func TestSetDetailView(t *testing.T) {
	tracker := &fakeTracker{}
	e := setupTestHandler(tracker, &fakeFlags{}, nil)

	rec := makeRequest(e, http.MethodPut, "/api/v1/tracker/detail-view", map[string]bool{"open": true})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, tracker.detailOpen)
	assert.True(t, *tracker.detailOpen)

	rec = makeRequest(e, http.MethodPut, "/api/v1/tracker/detail-view", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "open")
}

func TestListFlights(t *testing.T) {
	other := domain.FlightRecord{ICAO24: "4CA1B2", FlightIATA: "SK1417", Status: domain.StatusLanded}
	tracker := &fakeTracker{snap: usecase.Snapshot{
		Flights:        []domain.FlightRecord{other, *sampleRecord()},
		SelectedNumber: "AA719",
	}}
	e := setupTestHandler(tracker, &fakeFlags{}, nil)

	rec := makeRequest(e, http.MethodGet, "/api/v1/flights", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var dto FlightListDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	require.Len(t, dto.Flights, 2)
	assert.Equal(t, 2, dto.Total)
	assert.Equal(t, "SK1417", dto.Flights[0].FlightIATA)
	assert.Equal(t, ColorLanded, dto.Flights[0].StatusColor)
	assert.False(t, dto.Flights[0].Selected)
	assert.Equal(t, "AA719", dto.Flights[1].FlightIATA)
	assert.Equal(t, ColorActive, dto.Flights[1].StatusColor)
	assert.True(t, dto.Flights[1].Selected)
}

func TestListFlights_EmptyIsArray(t *testing.T) {
	e := setupTestHandler(&fakeTracker{}, &fakeFlags{}, nil)

	rec := makeRequest(e, http.MethodGet, "/api/v1/flights", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"flights":[]`)
}

func TestSelect(t *testing.T) {
	tracker := &fakeTracker{record: sampleRecord()}
	e := setupTestHandler(tracker, &fakeFlags{}, nil)

	rec := makeRequest(e, http.MethodPost, "/api/v1/selection", map[string]string{"flightIata": " aa719"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AA719", tracker.selected)

	var dto FlightDetailDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "AA719", dto.FlightIATA)
	assert.Equal(t, "3h 25m", dto.ETAText)
	assert.InDelta(t, 46.0, dto.ProgressPercent, 1e-9)
	assert.True(t, dto.ArrivalLate)
	assert.Equal(t, "Delayed 15 min", dto.DelayText)
	assert.Equal(t, "08:00", dto.Departure.ScheduledTime)
	assert.Equal(t, "08:12", dto.Departure.ActualTime)
	assert.Equal(t, "N/A", dto.Departure.EstimatedTime)
	assert.Equal(t, "11:35", dto.Arrival.EstimatedTime)
	assert.Equal(t, "/api/v1/flags/US", dto.Departure.FlagURL)
	assert.Equal(t, ColorActive, dto.StatusColor)
}

func TestSelect_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", domain.NewNotFoundError("airlabs.flight", "ZZ999"), http.StatusNotFound, response.CodeNotFound},
		{"network", domain.NewNetworkError("airlabs.flight", errors.New("refused")), http.StatusBadGateway, response.CodeUpstreamError},
		{"decode", domain.NewDecodeError("airlabs.flight", errors.New("bad json")), http.StatusBadGateway, response.CodeUpstreamError},
		{"timeout", domain.NewNetworkError("airlabs.flight", context.DeadlineExceeded), http.StatusGatewayTimeout, response.CodeTimeout},
		{"superseded", usecase.ErrSuperseded, http.StatusConflict, response.CodeConflict},
		{"invalid", domain.NewValidationError("flightIata", "must not be empty"), http.StatusBadRequest, response.CodeValidationError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, response.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := &fakeTracker{selectErr: tt.err}
			e := setupTestHandler(tracker, &fakeFlags{}, nil)

			rec := makeRequest(e, http.MethodPost, "/api/v1/selection", map[string]string{"flightIata": "AA719"})

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestSelect_DecodeMessage(t *testing.T) {
	tracker := &fakeTracker{selectErr: domain.NewDecodeError("airlabs.flight", errors.New("bad json"))}
	e := setupTestHandler(tracker, &fakeFlags{}, nil)

	rec := makeRequest(e, http.MethodPost, "/api/v1/selection", map[string]string{"flightIata": "AA719"})

	assert.Equal(t, response.MsgUpstreamDecode, decodeError(t, rec).Message)
}

func TestSelect_InvalidNumber(t *testing.T) {
	tracker := &fakeTracker{}
	e := setupTestHandler(tracker, &fakeFlags{}, nil)

	rec := makeRequest(e, http.MethodPost, "/api/v1/selection", map[string]string{"flightIata": "not a flight"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, tracker.selected, "tracker must not be called")
}

func TestGetSelection(t *testing.T) {
	t.Run("selected", func(t *testing.T) {
		tracker := &fakeTracker{snap: usecase.Snapshot{Selected: sampleRecord()}}
		rec := makeRequest(setupTestHandler(tracker, &fakeFlags{}, nil), http.MethodGet, "/api/v1/selection", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"flight_iata":"AA719"`)
	})

	t.Run("falls back to last shown", func(t *testing.T) {
		tracker := &fakeTracker{snap: usecase.Snapshot{LastShown: sampleRecord()}}
		rec := makeRequest(setupTestHandler(tracker, &fakeFlags{}, nil), http.MethodGet, "/api/v1/selection", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"flight_iata":"AA719"`)
	})

	t.Run("nothing selected", func(t *testing.T) {
		rec := makeRequest(setupTestHandler(&fakeTracker{}, &fakeFlags{}, nil), http.MethodGet, "/api/v1/selection", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestClearSelection(t *testing.T) {
	tracker := &fakeTracker{}
	e := setupTestHandler(tracker, &fakeFlags{}, nil)

	rec := makeRequest(e, http.MethodDelete, "/api/v1/selection", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, tracker.clears)
}

func TestGetFlag(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")
	e := setupTestHandler(&fakeTracker{}, &fakeFlags{data: map[string][]byte{"SE": png}}, nil)

	rec := makeRequest(e, http.MethodGet, "/api/v1/flags/se", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "public, max-age=86400", rec.Header().Get(echo.HeaderCacheControl))
	assert.Equal(t, png, rec.Body.Bytes())
}

func TestGetFlag_Errors(t *testing.T) {
	tests := []struct {
		name    string
		country string
		flags   *fakeFlags
		status  int
	}{
		{"invalid code", "SWE", &fakeFlags{}, http.StatusBadRequest},
		{"unknown country", "ZZ", &fakeFlags{}, http.StatusNotFound},
		{"upstream failure", "SE", &fakeFlags{err: domain.NewNetworkError("flags.get", errors.New("503"))}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setupTestHandler(&fakeTracker{}, tt.flags, nil)

			rec := makeRequest(e, http.MethodGet, "/api/v1/flags/"+tt.country, nil)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestStream_Disabled(t *testing.T) {
	e := setupTestHandler(&fakeTracker{}, &fakeFlags{}, nil)

	rec := makeRequest(e, http.MethodGet, "/api/v1/stream", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func readStreamMessage(t *testing.T, conn *websocket.Conn) StreamMessageDTO {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg StreamMessageDTO
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestStream_PushesSnapshots(t *testing.T) {
	tracker := &fakeTracker{snap: usecase.Snapshot{State: usecase.StateIdle, Version: 1}}
	hub := NewHub(nil)
	server := httptest.NewServer(setupTestHandler(tracker, &fakeFlags{}, hub))
	defer server.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	initial := readStreamMessage(t, conn)
	assert.Equal(t, MessageTypeSnapshot, initial.Type)
	assert.Equal(t, uint64(1), initial.Snapshot.Version)
	assert.Equal(t, "idle", initial.Snapshot.State)
	assert.Equal(t, 1, hub.Len())

	hub.Broadcast(usecase.Snapshot{
		State:   usecase.StatePolling,
		Version: 2,
		Flights: []domain.FlightRecord{*sampleRecord()},
	})

	update := readStreamMessage(t, conn)
	assert.Equal(t, uint64(2), update.Snapshot.Version)
	assert.Equal(t, "polling", update.Snapshot.State)
	require.Len(t, update.Flights, 1)
	assert.Equal(t, "AC0196", update.Flights[0].ICAO24)
}

func TestStream_HubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub(nil)
	server := httptest.NewServer(setupTestHandler(&fakeTracker{}, &fakeFlags{}, hub))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	readStreamMessage(t, conn)
	hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), fmt.Sprintf("got %v", err))
	assert.Equal(t, 0, hub.Len())
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, ColorScheduled, StatusColor(domain.StatusScheduled))
	assert.Equal(t, ColorLanded, StatusColor(domain.StatusLanded))
	assert.Equal(t, ColorActive, StatusColor(domain.StatusEnRoute))
	assert.Equal(t, ColorActive, StatusColor("diverted"))
}

func TestFlagURL(t *testing.T) {
	assert.Equal(t, "/api/v1/flags/SE", FlagURL("se"))
	assert.Empty(t, FlagURL(""))
	assert.Empty(t, FlagURL("SWE"))
}

func TestErrorKind(t *testing.T) {
	assert.Empty(t, ErrorKind(nil))
	assert.Equal(t, "invalid_input", ErrorKind(domain.NewValidationError("f", "m")))
	assert.Equal(t, "not_found", ErrorKind(domain.NewNotFoundError("op", "q")))
	assert.Equal(t, "timeout", ErrorKind(domain.NewNetworkError("op", context.DeadlineExceeded)))
	assert.Equal(t, "network", ErrorKind(domain.NewNetworkError("op", errors.New("x"))))
	assert.Equal(t, "decode", ErrorKind(domain.NewDecodeError("op", errors.New("x"))))
	assert.Equal(t, "internal", ErrorKind(errors.New("x")))
}

func TestToFlightDetailDTO_Age(t *testing.T) {
	record := sampleRecord()
	record.Updated = ptr(int64(1792160000))
	now := time.Unix(1792160090, 0)

	dto := ToFlightDetailDTO(record, now)

	require.NotNil(t, dto.AgeSeconds)
	assert.Equal(t, int64(90), *dto.AgeSeconds)
	assert.Equal(t, time.Unix(1792160000, 0).UTC().Format(time.RFC3339), dto.UpdatedAt)
	assert.Nil(t, ToFlightDetailDTO(nil, now))
}

package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/flight-tracker/live-flight-tracker/internal/adapter/http"
	"github.com/flight-tracker/live-flight-tracker/test/testutil"
)

func TestIntegration_Health(t *testing.T) {
	ts := NewTestServer(t)

	resp := ts.Do(Request{Method: http.MethodGet, Path: "/health"})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok","tracker":"idle"}`, string(resp.Body))
}

func TestIntegration_TrackingFlow(t *testing.T) {
	ts := NewTestServer(t)

	resp := ts.SetViewport(Stockholm)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.Equal(t, 0, ts.Upstream.FlightsCalls(), "idle tracker must not poll")

	resp = ts.Start()
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	require.Eventually(t, func() bool {
		return ts.Flights(t).Total == 2
	}, waitFor, tick)

	list := ts.Flights(t)
	assert.Equal(t, "SK1417", list.Flights[0].FlightIATA)
	assert.Equal(t, "4CA1B2", list.Flights[0].ICAO24)
	assert.Equal(t, "green", list.Flights[0].StatusColor)
	assert.Equal(t, "LX1255", list.Flights[1].FlightIATA)
	assert.NotEmpty(t, list.UpdatedAt)

	snap := ts.Snapshot(t)
	assert.Equal(t, "polling", snap.State)
	assert.NotEmpty(t, snap.SessionID)
	require.NotNil(t, snap.BoundingBox)
	assert.NotEmpty(t, snap.BoundingBox.BBox)
	assert.InDelta(t, 57.5293, snap.BoundingBox.SouthWest.Latitude, 1e-6)
	assert.InDelta(t, 21.5686, snap.BoundingBox.NorthEast.Longitude, 1e-6)
	assert.Equal(t, 2, snap.FlightCount)

	resp = ts.Select("sk1417")
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	var detail httpAdapter.FlightDetailDTO
	require.NoError(t, json.Unmarshal(resp.Body, &detail))
	assert.Equal(t, "SK1417", detail.FlightIATA)
	assert.Equal(t, "ARN", detail.Departure.IATA)
	assert.Equal(t, "/api/v1/flags/SE", detail.Departure.FlagURL)
	assert.Equal(t, "/api/v1/flags/DK", detail.Arrival.FlagURL)
	assert.True(t, detail.ArrivalLate)
	assert.InDelta(t, 18.0, detail.ProgressPercent, 1e-9)

	list = ts.Flights(t)
	require.Len(t, list.Flights, 2)
	assert.True(t, list.Flights[0].Selected)
	assert.False(t, list.Flights[1].Selected)

	resp = ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/selection"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, string(resp.Body), `"flight_iata":"SK1417"`)

	resp = ts.Stop()
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "idle", ts.Snapshot(t).State)

	require.Eventually(t, func() bool {
		return ts.Clock.ActiveTickers() == 0
	}, waitFor, tick)

	calls := ts.Upstream.FlightsCalls()
	ts.Clock.Advance(30 * time.Second)
	assert.Equal(t, calls, ts.Upstream.FlightsCalls(), "stopped tracker must not poll")

	// Selection survives Stop.
	assert.Equal(t, "SK1417", ts.Snapshot(t).SelectedFlight)
}

func TestIntegration_SelectUnknownFlight(t *testing.T) {
	ts := NewTestServer(t)

	resp := ts.Select("ZZ999")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	errResp, err := resp.ParseError()
	require.NoError(t, err)
	assert.Equal(t, "not_found", errResp["code"])

	snap := ts.Snapshot(t)
	assert.Empty(t, snap.SelectedFlight)
	require.NotNil(t, snap.LastError)
	assert.Equal(t, "not_found", snap.LastError.Kind)
}

func TestIntegration_SelectUpstreamError(t *testing.T) {
	ts := NewTestServer(t)
	ts.Upstream.FailDetail(http.StatusOK, string(testutil.LoadTestJSON(t, "airlabs/error_unknown_api_key.json")))

	resp := ts.Select("SK1417")

	assert.Equal(t, http.StatusBadGateway, resp.Code)
	errResp, err := resp.ParseError()
	require.NoError(t, err)
	assert.Equal(t, "upstream_error", errResp["code"])
}

func TestIntegration_ClearSelectionKeepsLastShown(t *testing.T) {
	ts := NewTestServer(t)

	require.Equal(t, http.StatusOK, ts.Select("SK1417").Code)

	resp := ts.Do(Request{Method: http.MethodDelete, Path: "/api/v1/selection"})
	require.Equal(t, http.StatusNoContent, resp.Code)

	snap := ts.Snapshot(t)
	assert.Empty(t, snap.SelectedFlight)
	assert.Nil(t, snap.Selected)
	require.NotNil(t, snap.LastShown)
	assert.Equal(t, "SK1417", snap.LastShown.FlightIATA)

	resp = ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/selection"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, string(resp.Body), `"flight_iata":"SK1417"`)
}

func TestIntegration_ValidationErrors(t *testing.T) {
	ts := NewTestServer(t)

	tests := []struct {
		name string
		req  Request
	}{
		{
			name: "viewport out of range",
			req: Request{Method: http.MethodPut, Path: "/api/v1/tracker/viewport", Body: map[string]float64{
				"latitude": 91, "longitude": 18, "latitudeSpan": 3, "longitudeSpan": 7,
			}},
		},
		{
			name: "viewport missing fields",
			req:  Request{Method: http.MethodPut, Path: "/api/v1/tracker/viewport", Body: map[string]float64{}},
		},
		{
			name: "detail view missing open",
			req:  Request{Method: http.MethodPut, Path: "/api/v1/tracker/detail-view", Body: map[string]string{}},
		},
		{
			name: "malformed flight number",
			req:  Request{Method: http.MethodPost, Path: "/api/v1/selection", Body: map[string]string{"flightIata": "not a flight"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Do(tt.req)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			errResp, err := resp.ParseError()
			require.NoError(t, err)
			assert.Equal(t, "validation_error", errResp["code"])
		})
	}
}

func TestIntegration_StartWithoutViewport(t *testing.T) {
	ts := NewTestServer(t)

	resp := ts.Start()
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "polling", ts.Snapshot(t).State)

	ts.Clock.Advance(5 * time.Second)
	assert.Equal(t, 0, ts.Upstream.FlightsCalls())

	require.Equal(t, http.StatusOK, ts.SetViewport(Stockholm).Code)
	require.Eventually(t, func() bool {
		return ts.Upstream.FlightsCalls() >= 1
	}, waitFor, tick)
}

func TestIntegration_Flags(t *testing.T) {
	ts := NewTestServer(t)

	for i := 0; i < 3; i++ {
		resp := ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/flags/se"})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "image/png", resp.Headers.Get("Content-Type"))
		assert.Equal(t, "public, max-age=86400", resp.Headers.Get("Cache-Control"))
		assert.Equal(t, ts.Upstream.FlagPNG(), resp.Body)
	}

	assert.Equal(t, 1, ts.Upstream.FlagCalls())
	assert.True(t, ts.Flags.Has("SE"))

	resp := ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/flags/ZZ"})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/flags/S1"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestIntegration_RequestIDHeader(t *testing.T) {
	ts := NewTestServer(t)

	resp := ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/tracker"})

	assert.NotEmpty(t, resp.Headers.Get("X-Request-ID"))
}

func TestIntegration_Stream(t *testing.T) {
	ts := NewTestServer(t)
	server := httptest.NewServer(ts.Echo)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	var first httpAdapter.StreamMessageDTO
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(waitFor)))
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, httpAdapter.MessageTypeSnapshot, first.Type)
	assert.Equal(t, "idle", first.Snapshot.State)

	require.Equal(t, http.StatusOK, ts.SetViewport(Stockholm).Code)
	require.Equal(t, http.StatusOK, ts.Start().Code)

	for {
		var msg httpAdapter.StreamMessageDTO
		require.NoError(t, conn.ReadJSON(&msg))
		if len(msg.Flights) == 2 {
			assert.Equal(t, "polling", msg.Snapshot.State)
			assert.Equal(t, 2, msg.Snapshot.FlightCount)
			break
		}
	}
}

package testutil

import (
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// FakeUpstream is an httptest server that answers like AirLabs on
// /airlabs/flights and /airlabs/flight, and like flagsapi on /flags/{CC}/...
type FakeUpstream struct {
	Server *httptest.Server

	mu          sync.Mutex
	flightsBody []byte
	flightsCode int
	details     map[string][]byte
	detailCode  int
	flagPNG     []byte

	flightsCalls atomic.Int32
	detailCalls  atomic.Int32
	flagCalls    atomic.Int32
}

// NewFakeUpstream starts a FakeUpstream closed at test cleanup. It serves the
// Stockholm fixture for every bounding box and knows flight SK1417.
func NewFakeUpstream(t testing.TB) *FakeUpstream {
	t.Helper()

	u := &FakeUpstream{
		flightsBody: LoadTestJSON(t, "airlabs/flights_stockholm.json"),
		flightsCode: http.StatusOK,
		details: map[string][]byte{
			"SK1417": LoadTestJSON(t, "airlabs/flight_sk1417.json"),
		},
		detailCode: http.StatusOK,
		flagPNG:    PNG(t, 4, color.RGBA{B: 0xaa, A: 0xff}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/airlabs/flights", u.serveFlights)
	mux.HandleFunc("/airlabs/flight", u.serveDetail)
	mux.HandleFunc("/flags/", u.serveFlag)

	u.Server = httptest.NewServer(mux)
	t.Cleanup(u.Server.Close)
	return u
}

// AirLabsURL is the base URL to configure the AirLabs client with.
func (u *FakeUpstream) AirLabsURL() string { return u.Server.URL + "/airlabs" }

// FlagsURL is the base URL to configure the flag cache with.
func (u *FakeUpstream) FlagsURL() string { return u.Server.URL + "/flags" }

// FailFlights makes the flights endpoint answer with status and body.
func (u *FakeUpstream) FailFlights(status int, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.flightsCode = status
	u.flightsBody = []byte(body)
}

// FailDetail makes the flight endpoint answer with status and body for every number.
func (u *FakeUpstream) FailDetail(status int, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.detailCode = status
	for k := range u.details {
		u.details[k] = []byte(body)
	}
}

// FlightsCalls returns how many flight list requests were served.
func (u *FakeUpstream) FlightsCalls() int { return int(u.flightsCalls.Load()) }

// DetailCalls returns how many flight detail requests were served.
func (u *FakeUpstream) DetailCalls() int { return int(u.detailCalls.Load()) }

// FlagCalls returns how many flag images were served.
func (u *FakeUpstream) FlagCalls() int { return int(u.flagCalls.Load()) }

// FlagPNG returns the bytes served for every known flag.
func (u *FakeUpstream) FlagPNG() []byte { return u.flagPNG }

func (u *FakeUpstream) serveFlights(w http.ResponseWriter, r *http.Request) {
	u.flightsCalls.Add(1)

	u.mu.Lock()
	code, body := u.flightsCode, u.flightsBody
	u.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func (u *FakeUpstream) serveDetail(w http.ResponseWriter, r *http.Request) {
	u.detailCalls.Add(1)

	u.mu.Lock()
	code := u.detailCode
	body, ok := u.details[r.URL.Query().Get("flight_iata")]
	u.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if !ok {
		_, _ = w.Write([]byte(`{"response": null}`))
		return
	}
	_, _ = w.Write(body)
}

// serveFlag answers /flags/{CC}/{style}/{size}.png; "ZZ" is unknown.
func (u *FakeUpstream) serveFlag(w http.ResponseWriter, r *http.Request) {
	u.flagCalls.Add(1)

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/flags/"), "/")
	if len(parts) != 3 || parts[0] == "ZZ" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(u.flagPNG)
}

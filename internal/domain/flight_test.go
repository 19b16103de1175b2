package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestFlightRecord_Progress(t *testing.T) {
	tests := []struct {
		name    string
		percent *float64
		want    float64
	}{
		{name: "missing", percent: nil, want: 0},
		{name: "negative noise", percent: ptr(-3.0), want: 0},
		{name: "zero", percent: ptr(0.0), want: 0},
		{name: "midway", percent: ptr(15.0), want: 15},
		{name: "complete", percent: ptr(100.0), want: 100},
		{name: "upstream overshoot clamped", percent: ptr(104.2), want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FlightRecord{Percent: tt.percent}
			assert.Equal(t, tt.want, f.Progress())
		})
	}
}

func TestFlightRecord_ETAText(t *testing.T) {
	tests := []struct {
		name string
		eta  *int
		want string
	}{
		{name: "missing", eta: nil, want: "N/A"},
		{name: "zero", eta: ptr(0), want: "N/A"},
		{name: "minutes only", eta: ptr(45), want: "45m"},
		{name: "hours and minutes", eta: ptr(499), want: "8h 19m"},
		{name: "whole hours keep minutes", eta: ptr(120), want: "2h 0m"},
		{name: "one minute", eta: ptr(1), want: "1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FlightRecord{ETA: tt.eta}
			assert.Equal(t, tt.want, f.ETAText())
		})
	}
}

func TestFlightRecord_DelayText(t *testing.T) {
	assert.Equal(t, "", (&FlightRecord{}).DelayText())
	assert.Equal(t, "", (&FlightRecord{Arrival: FlightEndpoint{Delayed: ptr(0)}}).DelayText())
	assert.Equal(t, "Delayed 32 min", (&FlightRecord{Arrival: FlightEndpoint{Delayed: ptr(32)}}).DelayText())
}

func TestFlightRecord_IsArrivalLate(t *testing.T) {
	tests := []struct {
		name    string
		arrival FlightEndpoint
		want    bool
	}{
		{
			name:    "positive delay",
			arrival: FlightEndpoint{Delayed: ptr(32)},
			want:    true,
		},
		{
			name:    "no times known",
			arrival: FlightEndpoint{},
			want:    false,
		},
		{
			name:    "estimated before scheduled",
			arrival: FlightEndpoint{Scheduled: "2023-12-20 17:05", Estimated: "2023-12-20 16:16"},
			want:    false,
		},
		{
			name:    "estimated equals scheduled",
			arrival: FlightEndpoint{Scheduled: "2023-12-20 17:05", Estimated: "2023-12-20 17:05"},
			want:    false,
		},
		{
			name:    "estimated after scheduled",
			arrival: FlightEndpoint{Scheduled: "2023-12-20 17:05", Estimated: "2023-12-20 17:40"},
			want:    true,
		},
		{
			name:    "unparseable estimate",
			arrival: FlightEndpoint{Scheduled: "2023-12-20 17:05", Estimated: "soon"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FlightRecord{Arrival: tt.arrival}
			assert.Equal(t, tt.want, f.IsArrivalLate())
		})
	}
}

func TestClockTime(t *testing.T) {
	assert.Equal(t, "13:07", ClockTime("2023-12-20 13:07"))
	assert.Equal(t, "N/A", ClockTime(""))
	assert.Equal(t, "N/A", ClockTime("2023-12-20T13:07:00Z"))
}

func TestFlightRecord_IsEmpty(t *testing.T) {
	assert.True(t, (&FlightRecord{}).IsEmpty())
	assert.True(t, (&FlightRecord{Status: StatusLanded}).IsEmpty(), "status alone does not identify a flight")
	assert.False(t, (&FlightRecord{ICAO24: "AC0196"}).IsEmpty())
	assert.False(t, (&FlightRecord{FlightIATA: "AA719"}).IsEmpty())
	assert.False(t, (&FlightRecord{Position: Position{Latitude: ptr(0.0)}}).IsEmpty())
}

func TestFlightRecord_HasPosition(t *testing.T) {
	assert.False(t, (&FlightRecord{}).HasPosition())
	assert.False(t, (&FlightRecord{Position: Position{Latitude: ptr(43.3)}}).HasPosition())
	assert.True(t, (&FlightRecord{Position: Position{Latitude: ptr(0.0), Longitude: ptr(0.0)}}).HasPosition())
}

func TestFlightRecord_Age(t *testing.T) {
	now := time.Unix(1703864200, 0)

	_, ok := (&FlightRecord{}).Age(now)
	assert.False(t, ok)

	age, ok := (&FlightRecord{Updated: ptr(int64(1703864109))}).Age(now)
	assert.True(t, ok)
	assert.Equal(t, 91*time.Second, age)
}

// Package domain contains the core entities and rules of the live flight tracker.
// These types are provider-agnostic: upstream adapters normalize into them and
// the tracker, HTTP surface and feeds consume them.
package domain

import (
	"strconv"
	"time"
)

// Flight status values reported by the upstream API.
// Any other string is passed through unchanged.
const (
	StatusScheduled = "scheduled"
	StatusEnRoute   = "en-route"
	StatusLanded    = "landed"
)

// LocalTimeLayout is the layout of the local scheduled/estimated/actual times.
const LocalTimeLayout = "2006-01-02 15:04"

// FlightRecord is a snapshot of one aircraft's reported state.
// Every field is optional: strings are empty and pointers nil when absent.
type FlightRecord struct {
	// ICAO24 is the transponder address; the identity key across fetches
	ICAO24 string `json:"icao24,omitempty"`

	// FlightNumber is the numeric part of the flight number (e.g. "719")
	FlightNumber string `json:"flightNumber,omitempty"`

	// FlightIATA is the IATA flight code (e.g. "AA719")
	FlightIATA string `json:"flightIata,omitempty"`

	// FlightICAO is the ICAO flight code (e.g. "AAL719")
	FlightICAO string `json:"flightIcao,omitempty"`

	// Status is the flight status: scheduled, en-route, landed or other
	Status string `json:"status,omitempty"`

	// Duration is the scheduled flight duration in minutes
	Duration *int `json:"duration,omitempty"`

	// Delayed is the overall delay in minutes
	Delayed *int `json:"delayed,omitempty"`

	// Updated is the unix time of the last upstream position update
	Updated *int64 `json:"updated,omitempty"`

	Airline   AirlineRef     `json:"airline"`
	Departure FlightEndpoint `json:"departure"`
	Arrival   FlightEndpoint `json:"arrival"`
	Position  Position       `json:"position"`
	Aircraft  Aircraft       `json:"aircraft"`

	// Percent is the reported progress; may exceed 100 upstream, see Progress
	Percent *float64 `json:"percent,omitempty"`

	// ETA is the estimated number of minutes remaining to arrival
	ETA *int `json:"eta,omitempty"`
}

// AirlineRef identifies the operating airline.
type AirlineRef struct {
	IATA string `json:"iata,omitempty"`
	ICAO string `json:"icao,omitempty"`
	Name string `json:"name,omitempty"`
}

// FlightEndpoint holds departure or arrival airport and timing information.
// Times are local airport time in LocalTimeLayout unless suffixed UTC.
type FlightEndpoint struct {
	IATA     string `json:"iata,omitempty"`
	ICAO     string `json:"icao,omitempty"`
	Name     string `json:"name,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	Terminal string `json:"terminal,omitempty"`
	Gate     string `json:"gate,omitempty"`
	Baggage  string `json:"baggage,omitempty"`

	Scheduled    string `json:"scheduled,omitempty"`
	ScheduledUTC string `json:"scheduledUtc,omitempty"`
	Estimated    string `json:"estimated,omitempty"`
	EstimatedUTC string `json:"estimatedUtc,omitempty"`
	Actual       string `json:"actual,omitempty"`
	ActualUTC    string `json:"actualUtc,omitempty"`
	ActualTS     *int64 `json:"actualTs,omitempty"`

	// Delayed is the delay at this endpoint in minutes
	Delayed *int `json:"delayed,omitempty"`
}

// Position is the reported aircraft position and motion.
type Position struct {
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Altitude      *int     `json:"altitude,omitempty"`
	Heading       *float64 `json:"heading,omitempty"`
	Speed         *int     `json:"speed,omitempty"`
	VerticalSpeed *float64 `json:"verticalSpeed,omitempty"`
	Squawk        string   `json:"squawk,omitempty"`
}

// Aircraft holds airframe metadata.
type Aircraft struct {
	// ICAOType is the ICAO aircraft type designator (e.g. "B788")
	ICAOType     string `json:"icaoType,omitempty"`
	RegNumber    string `json:"regNumber,omitempty"`
	RegCountry   string `json:"regCountry,omitempty"`
	Model        string `json:"model,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Type         string `json:"type,omitempty"`
	Engine       string `json:"engine,omitempty"`
	EngineCount  string `json:"engineCount,omitempty"`
	MSN          string `json:"msn,omitempty"`
	Built        *int   `json:"built,omitempty"`
	Age          *int   `json:"age,omitempty"`
}

// IsEmpty reports whether the record carries no identifying data at all.
// An upstream "{}" response decodes to such a record.
func (f *FlightRecord) IsEmpty() bool {
	return f.ICAO24 == "" &&
		f.FlightIATA == "" &&
		f.FlightICAO == "" &&
		f.FlightNumber == "" &&
		f.Position.Latitude == nil &&
		f.Position.Longitude == nil
}

// HasPosition reports whether both coordinates are present.
func (f *FlightRecord) HasPosition() bool {
	return f.Position.Latitude != nil && f.Position.Longitude != nil
}

// Progress returns the reported progress clamped to [0, 100].
// A missing value counts as 0.
func (f *FlightRecord) Progress() float64 {
	if f.Percent == nil || *f.Percent < 0 {
		return 0
	}
	if *f.Percent > 100 {
		return 100
	}
	return *f.Percent
}

// ArrivalDelay returns the arrival delay in minutes, or 0 when unknown.
func (f *FlightRecord) ArrivalDelay() int {
	if f.Arrival.Delayed == nil || *f.Arrival.Delayed < 0 {
		return 0
	}
	return *f.Arrival.Delayed
}

// IsArrivalLate reports whether the arrival is behind schedule: either a
// positive arrival delay is reported, or the estimated arrival is later
// than the scheduled one. Missing or unparseable times count as on time.
func (f *FlightRecord) IsArrivalLate() bool {
	if f.ArrivalDelay() > 0 {
		return true
	}
	if f.Arrival.Estimated == "" || f.Arrival.Scheduled == "" {
		return false
	}

	estimated, err := time.Parse(LocalTimeLayout, f.Arrival.Estimated)
	if err != nil {
		return false
	}
	scheduled, err := time.Parse(LocalTimeLayout, f.Arrival.Scheduled)
	if err != nil {
		return false
	}
	return estimated.After(scheduled)
}

// ETAText formats the remaining time to arrival as "Xh Ym", "Ym" or "N/A".
// Zero or missing ETA renders as "N/A".
func (f *FlightRecord) ETAText() string {
	if f.ETA == nil || *f.ETA <= 0 {
		return "N/A"
	}

	hours := *f.ETA / 60
	mins := *f.ETA % 60
	if hours == 0 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(hours) + "h " + strconv.Itoa(mins) + "m"
}

// DelayText returns "Delayed N min" for a positive arrival delay, else "".
func (f *FlightRecord) DelayText() string {
	delay := f.ArrivalDelay()
	if delay <= 0 {
		return ""
	}
	return "Delayed " + strconv.Itoa(delay) + " min"
}

// ClockTime reformats a local time in LocalTimeLayout as "HH:MM".
// Empty or unparseable input yields "N/A".
func ClockTime(local string) string {
	if local == "" {
		return "N/A"
	}
	t, err := time.Parse(LocalTimeLayout, local)
	if err != nil {
		return "N/A"
	}
	return t.Format("15:04")
}

// Age returns how long ago the position was last updated, relative to now.
// The second result is false when the record has no update timestamp.
func (f *FlightRecord) Age(now time.Time) (time.Duration, bool) {
	if f.Updated == nil {
		return 0, false
	}
	return now.Sub(time.Unix(*f.Updated, 0)), true
}

package http

// SnapshotDTO is the API view of the tracker state.
type SnapshotDTO struct {
	SessionID      string           `json:"session_id,omitempty"`
	State          string           `json:"state" example:"polling"`
	Version        uint64           `json:"version"`
	Viewport       *ViewportDTO     `json:"viewport,omitempty"`
	BoundingBox    *BoundingBoxDTO  `json:"bounding_box,omitempty"`
	Zoom           int              `json:"zoom" example:"6"`
	DetailViewOpen bool             `json:"detail_view_open"`
	FlightCount    int              `json:"flight_count"`
	SelectedFlight string           `json:"selected_flight,omitempty" example:"AA719"`
	Selected       *FlightDetailDTO `json:"selected,omitempty"`
	LastShown      *FlightDetailDTO `json:"last_shown,omitempty"`
	LastError      *TrackerErrorDTO `json:"last_error,omitempty"`
	UpdatedAt      string           `json:"updated_at,omitempty"`
}

// StreamMessageDTO is pushed to WebSocket clients on every tracker update.
type StreamMessageDTO struct {
	Type     string             `json:"type" example:"snapshot"`
	Snapshot SnapshotDTO        `json:"snapshot"`
	Flights  []FlightSummaryDTO `json:"flights"`
}

// ViewportDTO is the visible map region.
type ViewportDTO struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	LatitudeSpan  float64 `json:"latitude_span"`
	LongitudeSpan float64 `json:"longitude_span"`
}

// BoundingBoxDTO is the query region derived from the viewport.
type BoundingBoxDTO struct {
	// BBox is the upstream query form: swLat,swLon,neLat,neLon
	BBox      string        `json:"bbox" example:"57.5293,14.5686,61.1293,21.5686"`
	SouthWest CoordinateDTO `json:"south_west"`
	NorthEast CoordinateDTO `json:"north_east"`
}

// CoordinateDTO is a point in degrees.
type CoordinateDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TrackerErrorDTO describes the most recent tracker error.
type TrackerErrorDTO struct {
	Kind    string `json:"kind" example:"network"`
	Message string `json:"message"`
	At      string `json:"at,omitempty"`
}

// FlightListDTO is the response of GET /api/v1/flights.
type FlightListDTO struct {
	Flights   []FlightSummaryDTO `json:"flights"`
	Total     int                `json:"total"`
	UpdatedAt string             `json:"updated_at,omitempty"`
}

// FlightSummaryDTO is a map marker.
type FlightSummaryDTO struct {
	ICAO24        string   `json:"icao24,omitempty" example:"AC0196"`
	FlightIATA    string   `json:"flight_iata,omitempty" example:"AA719"`
	FlightICAO    string   `json:"flight_icao,omitempty" example:"AAL719"`
	AirlineIATA   string   `json:"airline_iata,omitempty" example:"AA"`
	Status        string   `json:"status,omitempty" example:"en-route"`
	StatusColor   string   `json:"status_color" example:"green"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Altitude      *int     `json:"altitude,omitempty"`
	Heading       *float64 `json:"heading,omitempty"`
	Speed         *int     `json:"speed,omitempty"`
	DepartureIATA string   `json:"departure_iata,omitempty" example:"JFK"`
	ArrivalIATA   string   `json:"arrival_iata,omitempty" example:"LAX"`
	Selected      bool     `json:"selected"`
}

// FlightDetailDTO is the detail sheet of one flight.
type FlightDetailDTO struct {
	ICAO24          string      `json:"icao24,omitempty"`
	FlightNumber    string      `json:"flight_number,omitempty" example:"719"`
	FlightIATA      string      `json:"flight_iata,omitempty" example:"AA719"`
	FlightICAO      string      `json:"flight_icao,omitempty" example:"AAL719"`
	Airline         AirlineDTO  `json:"airline"`
	Status          string      `json:"status,omitempty" example:"en-route"`
	StatusColor     string      `json:"status_color" example:"green"`
	Departure       EndpointDTO `json:"departure"`
	Arrival         EndpointDTO `json:"arrival"`
	Position        PositionDTO `json:"position"`
	Aircraft        AircraftDTO `json:"aircraft"`
	ProgressPercent float64     `json:"progress_percent" example:"46"`
	ETAText         string      `json:"eta_text" example:"3h 25m"`
	ArrivalLate     bool        `json:"arrival_late"`
	DelayText       string      `json:"delay_text,omitempty" example:"Delayed 15 min"`
	DurationMinutes *int        `json:"duration_minutes,omitempty"`
	UpdatedAt       string      `json:"updated_at,omitempty"`
	AgeSeconds      *int64      `json:"age_seconds,omitempty"`
}

// AirlineDTO represents airline information.
type AirlineDTO struct {
	IATA string `json:"iata,omitempty"`
	ICAO string `json:"icao,omitempty"`
	Name string `json:"name,omitempty"`
}

// EndpointDTO represents a departure or arrival airport.
type EndpointDTO struct {
	IATA          string `json:"iata,omitempty"`
	Name          string `json:"name,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
	FlagURL       string `json:"flag_url,omitempty" example:"/api/v1/flags/US"`
	Terminal      string `json:"terminal,omitempty"`
	Gate          string `json:"gate,omitempty"`
	Baggage       string `json:"baggage,omitempty"`
	Scheduled     string `json:"scheduled,omitempty" example:"2026-10-16 08:00"`
	ScheduledTime string `json:"scheduled_time" example:"08:00"`
	Estimated     string `json:"estimated,omitempty"`
	EstimatedTime string `json:"estimated_time" example:"N/A"`
	Actual        string `json:"actual,omitempty"`
	ActualTime    string `json:"actual_time" example:"08:12"`
	DelayMinutes  *int   `json:"delay_minutes,omitempty"`
}

// PositionDTO represents the aircraft position.
type PositionDTO struct {
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Altitude      *int     `json:"altitude,omitempty"`
	Heading       *float64 `json:"heading,omitempty"`
	Speed         *int     `json:"speed,omitempty"`
	VerticalSpeed *float64 `json:"vertical_speed,omitempty"`
	Squawk        string   `json:"squawk,omitempty"`
}

// AircraftDTO represents airframe metadata.
type AircraftDTO struct {
	ICAOType   string `json:"icao_type,omitempty" example:"A21N"`
	RegNumber  string `json:"reg_number,omitempty" example:"N102NN"`
	RegCountry string `json:"reg_country,omitempty" example:"US"`
	FlagURL    string `json:"flag_url,omitempty"`
	Model      string `json:"model,omitempty"`
	Built      *int   `json:"built,omitempty"`
}

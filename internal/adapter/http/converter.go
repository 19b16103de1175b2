// Package http provides the HTTP surface of the live flight tracker.
package http

import (
	"time"

	"github.com/flight-tracker/live-flight-tracker/internal/adapter/provider/flags"
	"github.com/flight-tracker/live-flight-tracker/internal/domain"
	"github.com/flight-tracker/live-flight-tracker/internal/usecase"
)

// FlagPathPrefix is where the API serves memoized country flags.
const FlagPathPrefix = "/api/v1/flags/"

// Status colors used by clients to tint the status badge.
const (
	ColorScheduled = "black"
	ColorLanded    = "blue"
	ColorActive    = "green"
)

// StatusColor maps a flight status to its badge color.
func StatusColor(status string) string {
	switch status {
	case domain.StatusScheduled:
		return ColorScheduled
	case domain.StatusLanded:
		return ColorLanded
	default:
		return ColorActive
	}
}

// FlagURL returns the API path of the flag for a country code, or "" when
// the code is not a valid ISO 3166-1 alpha-2 code.
func FlagURL(country string) string {
	code, err := flags.NormalizeCode(country)
	if err != nil {
		return ""
	}
	return FlagPathPrefix + code
}

// ToSnapshotDTO converts a tracker snapshot to its API view.
func ToSnapshotDTO(snap usecase.Snapshot, now time.Time) SnapshotDTO {
	dto := SnapshotDTO{
		SessionID:      snap.SessionID,
		State:          snap.State.String(),
		Version:        snap.Version,
		Zoom:           snap.Zoom,
		DetailViewOpen: snap.DetailViewOpen,
		FlightCount:    len(snap.Flights),
		SelectedFlight: snap.SelectedNumber,
		Selected:       ToFlightDetailDTO(snap.Selected, now),
		LastShown:      ToFlightDetailDTO(snap.LastShown, now),
		UpdatedAt:      formatTime(snap.UpdatedAt),
	}

	if snap.Viewport != nil {
		dto.Viewport = &ViewportDTO{
			Latitude:      snap.Viewport.Center.Lat,
			Longitude:     snap.Viewport.Center.Lon,
			LatitudeSpan:  snap.Viewport.LatitudeSpan,
			LongitudeSpan: snap.Viewport.LongitudeSpan,
		}
	}

	if snap.BoundingBox != nil {
		dto.BoundingBox = &BoundingBoxDTO{
			BBox:      snap.BoundingBox.String(),
			SouthWest: CoordinateDTO{Latitude: snap.BoundingBox.SouthWest.Lat, Longitude: snap.BoundingBox.SouthWest.Lon},
			NorthEast: CoordinateDTO{Latitude: snap.BoundingBox.NorthEast.Lat, Longitude: snap.BoundingBox.NorthEast.Lon},
		}
	}

	if snap.LastError != nil {
		dto.LastError = &TrackerErrorDTO{
			Kind:    ErrorKind(snap.LastError),
			Message: snap.LastError.Error(),
			At:      formatTime(snap.LastErrorAt),
		}
	}

	return dto
}

// ToFlightListDTO converts the merged flight list of a snapshot.
func ToFlightListDTO(snap usecase.Snapshot) FlightListDTO {
	return FlightListDTO{
		Flights:   ToFlightSummaryDTOs(snap.Flights, snap.SelectedNumber),
		Total:     len(snap.Flights),
		UpdatedAt: formatTime(snap.UpdatedAt),
	}
}

// ToFlightSummaryDTOs converts flights to map markers, flagging the selected one.
func ToFlightSummaryDTOs(flights []domain.FlightRecord, selected string) []FlightSummaryDTO {
	result := make([]FlightSummaryDTO, len(flights))
	for i := range flights {
		f := &flights[i]
		result[i] = FlightSummaryDTO{
			ICAO24:        f.ICAO24,
			FlightIATA:    f.FlightIATA,
			FlightICAO:    f.FlightICAO,
			AirlineIATA:   f.Airline.IATA,
			Status:        f.Status,
			StatusColor:   StatusColor(f.Status),
			Latitude:      f.Position.Latitude,
			Longitude:     f.Position.Longitude,
			Altitude:      f.Position.Altitude,
			Heading:       f.Position.Heading,
			Speed:         f.Position.Speed,
			DepartureIATA: f.Departure.IATA,
			ArrivalIATA:   f.Arrival.IATA,
			Selected:      selected != "" && f.FlightIATA == selected,
		}
	}
	return result
}

// ToFlightDetailDTO converts one record to its detail sheet. It returns nil for nil input.
func ToFlightDetailDTO(f *domain.FlightRecord, now time.Time) *FlightDetailDTO {
	if f == nil {
		return nil
	}

	dto := &FlightDetailDTO{
		ICAO24:       f.ICAO24,
		FlightNumber: f.FlightNumber,
		FlightIATA:   f.FlightIATA,
		FlightICAO:   f.FlightICAO,
		Airline: AirlineDTO{
			IATA: f.Airline.IATA,
			ICAO: f.Airline.ICAO,
			Name: f.Airline.Name,
		},
		Status:          f.Status,
		StatusColor:     StatusColor(f.Status),
		Departure:       toEndpointDTO(f.Departure),
		Arrival:         toEndpointDTO(f.Arrival),
		Position:        PositionDTO(f.Position),
		ProgressPercent: f.Progress(),
		ETAText:         f.ETAText(),
		ArrivalLate:     f.IsArrivalLate(),
		DelayText:       f.DelayText(),
		DurationMinutes: f.Duration,
		Aircraft: AircraftDTO{
			ICAOType:   f.Aircraft.ICAOType,
			RegNumber:  f.Aircraft.RegNumber,
			RegCountry: f.Aircraft.RegCountry,
			FlagURL:    FlagURL(f.Aircraft.RegCountry),
			Model:      f.Aircraft.Model,
			Built:      f.Aircraft.Built,
		},
	}

	if f.Updated != nil {
		dto.UpdatedAt = time.Unix(*f.Updated, 0).UTC().Format(time.RFC3339)
	}
	if age, ok := f.Age(now); ok {
		seconds := int64(age / time.Second)
		dto.AgeSeconds = &seconds
	}

	return dto
}

func toEndpointDTO(e domain.FlightEndpoint) EndpointDTO {
	return EndpointDTO{
		IATA:          e.IATA,
		Name:          e.Name,
		City:          e.City,
		Country:       e.Country,
		FlagURL:       FlagURL(e.Country),
		Terminal:      e.Terminal,
		Gate:          e.Gate,
		Baggage:       e.Baggage,
		Scheduled:     e.Scheduled,
		ScheduledTime: domain.ClockTime(e.Scheduled),
		Estimated:     e.Estimated,
		EstimatedTime: domain.ClockTime(e.Estimated),
		Actual:        e.Actual,
		ActualTime:    domain.ClockTime(e.Actual),
		DelayMinutes:  e.Delayed,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

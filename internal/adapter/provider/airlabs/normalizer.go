package airlabs

import (
	"strings"

	"github.com/flight-tracker/live-flight-tracker/internal/domain"
)

// normalize converts AirLabs records to domain records, skipping records
// that carry no identity or position at all.
func normalize(dtos []flightDTO) []domain.FlightRecord {
	result := make([]domain.FlightRecord, 0, len(dtos))
	for _, d := range dtos {
		record := normalizeFlight(d)
		if record.IsEmpty() {
			continue
		}
		result = append(result, record)
	}
	return result
}

// normalizeFlight maps one AirLabs record onto a domain.FlightRecord.
// The transponder address is upper-cased so it can serve as an identity key.
func normalizeFlight(d flightDTO) domain.FlightRecord {
	return domain.FlightRecord{
		ICAO24:       strings.ToUpper(strings.TrimSpace(d.Hex)),
		FlightNumber: d.FlightNumber,
		FlightIATA:   d.FlightIATA,
		FlightICAO:   d.FlightICAO,
		Status:       d.Status,
		Duration:     d.Duration,
		Delayed:      d.Delayed,
		Updated:      d.Updated,
		Airline: domain.AirlineRef{
			IATA: d.AirlineIATA,
			ICAO: d.AirlineICAO,
			Name: d.AirlineName,
		},
		Departure: domain.FlightEndpoint{
			IATA:         d.DepIATA,
			ICAO:         d.DepICAO,
			Name:         d.DepName,
			City:         d.DepCity,
			Country:      d.DepCountry,
			Terminal:     d.DepTerminal,
			Gate:         d.DepGate,
			Scheduled:    d.DepTime,
			ScheduledUTC: d.DepTimeUTC,
			Estimated:    d.DepEstimated,
			EstimatedUTC: d.DepEstimatedUTC,
			Actual:       d.DepActual,
			ActualUTC:    d.DepActualUTC,
			ActualTS:     d.DepActualTS,
			Delayed:      d.DepDelayed,
		},
		Arrival: domain.FlightEndpoint{
			IATA:         d.ArrIATA,
			ICAO:         d.ArrICAO,
			Name:         d.ArrName,
			City:         d.ArrCity,
			Country:      d.ArrCountry,
			Terminal:     d.ArrTerminal,
			Gate:         d.ArrGate,
			Baggage:      d.ArrBaggage,
			Scheduled:    d.ArrTime,
			ScheduledUTC: d.ArrTimeUTC,
			Estimated:    d.ArrEstimated,
			EstimatedUTC: d.ArrEstimatedUTC,
			Actual:       d.ArrActual,
			ActualUTC:    d.ArrActualUTC,
			ActualTS:     d.ArrActualTS,
			Delayed:      d.ArrDelayed,
		},
		Position: domain.Position{
			Latitude:      d.Lat,
			Longitude:     d.Lng,
			Altitude:      d.Alt,
			Heading:       d.Dir,
			Speed:         d.Speed,
			VerticalSpeed: d.VSpeed,
			Squawk:        d.Squawk,
		},
		Aircraft: domain.Aircraft{
			ICAOType:     d.AircraftICAO,
			RegNumber:    d.RegNumber,
			RegCountry:   d.Flag,
			Model:        d.Model,
			Manufacturer: d.Manufacturer,
			Type:         d.Type,
			Engine:       d.Engine,
			EngineCount:  d.EngineCount,
			MSN:          d.MSN,
			Built:        d.Built,
			Age:          d.Age,
		},
		Percent: d.Percent,
		ETA:     d.ETA,
	}
}

// Package mock provides test doubles for the live flight tracker.
// These mocks are designed for tests that need configurable behavior
// (delays, errors, blocking calls) rather than strict call expectations.
package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/flight-tracker/live-flight-tracker/internal/domain"
)

// Source is a configurable implementation of domain.FlightSource.
// All configuration methods are safe to call while the source is in use.
type Source struct {
	mu sync.Mutex

	flights   []domain.FlightRecord
	bboxErr   error
	details   map[string]domain.FlightRecord
	detailErr error
	delay     time.Duration
	gate      chan struct{}

	bboxCalls   int
	detailCalls int
	lastBox     domain.BoundingBox
	lastZoom    int
}

// NewSource creates an empty source: no flights in any box and no known flight numbers.
func NewSource() *Source {
	return &Source{details: make(map[string]domain.FlightRecord)}
}

// WithFlights configures the bounding-box result.
func (s *Source) WithFlights(flights ...domain.FlightRecord) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flights = flights
	return s
}

// WithBoundingBoxError configures the bounding-box call to fail. Pass nil to clear.
func (s *Source) WithBoundingBoxError(err error) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bboxErr = err
	return s
}

// WithDetail registers a record returned for its FlightIATA.
func (s *Source) WithDetail(record domain.FlightRecord) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details[strings.ToUpper(record.FlightIATA)] = record
	return s
}

// WithDetailError configures every detail lookup to fail. Pass nil to clear.
func (s *Source) WithDetailError(err error) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detailErr = err
	return s
}

// WithDelay makes every call wait d before responding, unless ctx ends first.
func (s *Source) WithDelay(d time.Duration) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
	return s
}

// Block makes every call wait until Release is called or ctx ends.
func (s *Source) Block() *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = make(chan struct{})
	return s
}

// Release unblocks calls held by Block.
func (s *Source) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate != nil {
		close(s.gate)
		s.gate = nil
	}
}

// FlightsInBoundingBox implements domain.FlightSource.
func (s *Source) FlightsInBoundingBox(ctx context.Context, box domain.BoundingBox, zoom int) ([]domain.FlightRecord, error) {
	s.mu.Lock()
	s.bboxCalls++
	s.lastBox, s.lastZoom = box, zoom
	delay, gate := s.delay, s.gate
	s.mu.Unlock()

	if err := wait(ctx, delay, gate); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bboxErr != nil {
		return nil, s.bboxErr
	}
	out := make([]domain.FlightRecord, len(s.flights))
	copy(out, s.flights)
	return out, nil
}

// FlightByNumber implements domain.FlightSource.
func (s *Source) FlightByNumber(ctx context.Context, flightIata string) (*domain.FlightRecord, error) {
	s.mu.Lock()
	s.detailCalls++
	delay, gate := s.delay, s.gate
	s.mu.Unlock()

	if err := wait(ctx, delay, gate); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	record, ok := s.details[strings.ToUpper(flightIata)]
	if !ok {
		return nil, domain.NewNotFoundError("mock.flight", flightIata)
	}
	return &record, nil
}

func wait(ctx context.Context, delay time.Duration, gate chan struct{}) error {
	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	if gate != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-gate:
		}
	}
	return ctx.Err()
}

// BoundingBoxCalls returns the number of bounding-box calls so far.
func (s *Source) BoundingBoxCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bboxCalls
}

// DetailCalls returns the number of detail lookups so far.
func (s *Source) DetailCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detailCalls
}

// LastQuery returns the arguments of the most recent bounding-box call.
func (s *Source) LastQuery() (domain.BoundingBox, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBox, s.lastZoom
}

// Reset clears the call counters.
func (s *Source) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bboxCalls = 0
	s.detailCalls = 0
}

// Ensure Source implements domain.FlightSource at compile time.
var _ domain.FlightSource = (*Source)(nil)

// SampleFlights returns count airborne flights spread around Stockholm.
func SampleFlights(count int) []domain.FlightRecord {
	flights := make([]domain.FlightRecord, count)
	for i := 0; i < count; i++ {
		lat := 59.0 + float64(i)*0.1
		lon := 17.5 + float64(i)*0.2
		alt := 9000 + i*100
		flights[i] = domain.FlightRecord{
			ICAO24:       fmt.Sprintf("4CA%03X", i+1),
			FlightNumber: fmt.Sprintf("%d", 1400+i),
			FlightIATA:   fmt.Sprintf("SK%d", 1400+i),
			FlightICAO:   fmt.Sprintf("SAS%d", 1400+i),
			Status:       domain.StatusEnRoute,
			Airline:      domain.AirlineRef{IATA: "SK", ICAO: "SAS", Name: "SAS"},
			Departure:    domain.FlightEndpoint{IATA: "ARN", City: "Stockholm", Country: "SE"},
			Arrival:      domain.FlightEndpoint{IATA: "CPH", City: "Copenhagen", Country: "DK"},
			Position: domain.Position{
				Latitude:  &lat,
				Longitude: &lon,
				Altitude:  &alt,
			},
		}
	}
	return flights
}

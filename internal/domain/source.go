package domain

import "context"

//go:generate mockgen -source=source.go -destination=mock_source.go -package=domain

// FlightSource fetches live flight records from an upstream provider.
// Implementations make a single attempt per call and do not mutate shared state.
type FlightSource interface {
	// FlightByNumber looks up one flight by its IATA flight number.
	// Returns an error matching ErrNotFound when the provider has no record.
	FlightByNumber(ctx context.Context, flightIata string) (*FlightRecord, error)

	// FlightsInBoundingBox returns every flight inside the box.
	// An empty area yields an empty slice, not an error.
	FlightsInBoundingBox(ctx context.Context, box BoundingBox, zoom int) ([]FlightRecord, error)
}

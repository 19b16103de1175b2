package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Zoom levels below minZoomLevel collapse to 0.
const minZoomLevel = 2

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Viewport is the visible map region: a center and the span it covers.
type Viewport struct {
	Center        Coordinate `json:"center"`
	LatitudeSpan  float64    `json:"latitudeSpan"`
	LongitudeSpan float64    `json:"longitudeSpan"`
}

// BoundingBox is the geographic box sent upstream to scope a flights query.
type BoundingBox struct {
	SouthWest Coordinate `json:"southWest"`
	NorthEast Coordinate `json:"northEast"`
}

// String renders the box as "swLat,swLon,neLat,neLon".
func (b BoundingBox) String() string {
	return formatDegrees(b.SouthWest.Lat) + "," +
		formatDegrees(b.SouthWest.Lon) + "," +
		formatDegrees(b.NorthEast.Lat) + "," +
		formatDegrees(b.NorthEast.Lon)
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ComputeBoundingBox derives the bounding box of a viewport.
func ComputeBoundingBox(center Coordinate, latSpan, lonSpan float64) BoundingBox {
	return BoundingBox{
		SouthWest: Coordinate{
			Lat: center.Lat - latSpan/2,
			Lon: center.Lon - lonSpan/2,
		},
		NorthEast: Coordinate{
			Lat: center.Lat + latSpan/2,
			Lon: center.Lon + lonSpan/2,
		},
	}
}

// ComputeZoomLevel derives the discrete zoom level floor(log2(360/latSpan)).
// Levels 0 and 1 collapse to 0. A non-positive or non-finite span is invalid.
func ComputeZoomLevel(latSpan float64) (int, error) {
	if math.IsNaN(latSpan) || math.IsInf(latSpan, 0) || latSpan <= 0 {
		return 0, WrapInvalidInput("latitude span must be a positive number, got %v", latSpan)
	}

	level := int(math.Floor(math.Log2(360 / latSpan)))
	if level < minZoomLevel {
		return 0, nil
	}
	return level, nil
}

// Validate checks that the viewport can be turned into a query.
func (v Viewport) Validate() error {
	if math.IsNaN(v.Center.Lat) || v.Center.Lat < -90 || v.Center.Lat > 90 {
		return NewValidationError("latitude", fmt.Sprintf("must be between -90 and 90, got %v", v.Center.Lat))
	}
	if math.IsNaN(v.Center.Lon) || v.Center.Lon < -180 || v.Center.Lon > 180 {
		return NewValidationError("longitude", fmt.Sprintf("must be between -180 and 180, got %v", v.Center.Lon))
	}
	if math.IsNaN(v.LatitudeSpan) || math.IsInf(v.LatitudeSpan, 0) || v.LatitudeSpan <= 0 {
		return NewValidationError("latitudeSpan", "must be a positive number")
	}
	if math.IsNaN(v.LongitudeSpan) || math.IsInf(v.LongitudeSpan, 0) || v.LongitudeSpan <= 0 {
		return NewValidationError("longitudeSpan", "must be a positive number")
	}
	return nil
}

// BoundingBox returns the viewport's bounding box.
func (v Viewport) BoundingBox() BoundingBox {
	return ComputeBoundingBox(v.Center, v.LatitudeSpan, v.LongitudeSpan)
}

// Zoom returns the viewport's zoom level.
func (v Viewport) Zoom() (int, error) {
	return ComputeZoomLevel(v.LatitudeSpan)
}

package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBoundingBox(t *testing.T) {
	box := ComputeBoundingBox(Coordinate{Lat: 59.3293, Lon: 18.0686}, 4, 8)

	assert.InDelta(t, 57.3293, box.SouthWest.Lat, 1e-9)
	assert.InDelta(t, 14.0686, box.SouthWest.Lon, 1e-9)
	assert.InDelta(t, 61.3293, box.NorthEast.Lat, 1e-9)
	assert.InDelta(t, 22.0686, box.NorthEast.Lon, 1e-9)
}

func TestComputeBoundingBox_CornersOrdered(t *testing.T) {
	centers := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: -33.9, Lon: 151.2},
		{Lat: 89.9, Lon: -179.9},
		{Lat: 59.3293, Lon: 18.0686},
	}
	spans := []float64{1e-6, 0.01, 1.40625, 3.6, 90, 360}

	for _, c := range centers {
		for _, latSpan := range spans {
			for _, lonSpan := range spans {
				box := ComputeBoundingBox(c, latSpan, lonSpan)
				assert.Less(t, box.SouthWest.Lat, box.NorthEast.Lat)
				assert.Less(t, box.SouthWest.Lon, box.NorthEast.Lon)
			}
		}
	}
}

func TestBoundingBox_String(t *testing.T) {
	box := BoundingBox{
		SouthWest: Coordinate{Lat: 57.5, Lon: 14},
		NorthEast: Coordinate{Lat: 61.25, Lon: -22.125},
	}
	assert.Equal(t, "57.5,14,61.25,-22.125", box.String())
}

func TestComputeZoomLevel(t *testing.T) {
	tests := []struct {
		name    string
		latSpan float64
		want    int
	}{
		{name: "whole world", latSpan: 360, want: 0},
		{name: "raw level one collapses", latSpan: 180, want: 0},
		{name: "just below level two", latSpan: 91, want: 0},
		{name: "level two", latSpan: 90, want: 2},
		{name: "level three", latSpan: 45, want: 3},
		{name: "level eight", latSpan: 1.40625, want: 8},
		{name: "between levels floors", latSpan: 2, want: 7},
		{name: "wider than the world", latSpan: 720, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeZoomLevel(tt.latSpan)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeZoomLevel_InvalidSpan(t *testing.T) {
	spans := []float64{0, -1, -0.0001, math.NaN(), math.Inf(1), math.Inf(-1)}

	for _, span := range spans {
		_, err := ComputeZoomLevel(span)
		require.Error(t, err, "span %v", span)
		assert.True(t, IsInvalidInput(err))
	}
}

func TestViewport_Validate(t *testing.T) {
	tests := []struct {
		name      string
		viewport  Viewport
		wantField string
	}{
		{
			name:     "valid",
			viewport: Viewport{Center: Coordinate{Lat: 59.3, Lon: 18}, LatitudeSpan: 3.6, LongitudeSpan: 7},
		},
		{
			name:      "latitude out of range",
			viewport:  Viewport{Center: Coordinate{Lat: 91}, LatitudeSpan: 1, LongitudeSpan: 1},
			wantField: "latitude",
		},
		{
			name:      "longitude out of range",
			viewport:  Viewport{Center: Coordinate{Lon: -181}, LatitudeSpan: 1, LongitudeSpan: 1},
			wantField: "longitude",
		},
		{
			name:      "zero latitude span",
			viewport:  Viewport{LatitudeSpan: 0, LongitudeSpan: 1},
			wantField: "latitudeSpan",
		},
		{
			name:      "negative longitude span",
			viewport:  Viewport{LatitudeSpan: 1, LongitudeSpan: -1},
			wantField: "longitudeSpan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.viewport.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, IsInvalidInput(err))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestViewport_BoundingBoxAndZoom(t *testing.T) {
	v := Viewport{Center: Coordinate{Lat: 0, Lon: 0}, LatitudeSpan: 90, LongitudeSpan: 180}

	box := v.BoundingBox()
	assert.Equal(t, Coordinate{Lat: -45, Lon: -90}, box.SouthWest)
	assert.Equal(t, Coordinate{Lat: 45, Lon: 90}, box.NorthEast)

	zoom, err := v.Zoom()
	require.NoError(t, err)
	assert.Equal(t, 2, zoom)
}

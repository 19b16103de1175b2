package http

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/flight-tracker/live-flight-tracker/internal/domain"
)

// ViewportRequest is the body of PUT /api/v1/tracker/viewport.
// Example: {"latitude": 59.3293, "longitude": 18.0686, "latitudeSpan": 3.6, "longitudeSpan": 7.0}
type ViewportRequest struct {
	// Latitude of the map center in degrees (-90 to 90)
	Latitude *float64 `json:"latitude" example:"59.3293"`

	// Longitude of the map center in degrees (-180 to 180)
	Longitude *float64 `json:"longitude" example:"18.0686"`

	// LatitudeSpan is the visible north-south extent in degrees (0 < span <= 180)
	LatitudeSpan *float64 `json:"latitudeSpan" example:"3.6"`

	// LongitudeSpan is the visible east-west extent in degrees (0 < span <= 360)
	LongitudeSpan *float64 `json:"longitudeSpan" example:"7.0"`
}

// DetailViewRequest is the body of PUT /api/v1/tracker/detail-view.
type DetailViewRequest struct {
	// Open pauses flight list refreshes while true
	Open *bool `json:"open" example:"true"`
}

// SelectFlightRequest is the body of POST /api/v1/selection.
type SelectFlightRequest struct {
	// FlightIATA is the IATA flight number, e.g. "AA719"
	FlightIATA string `json:"flightIata" example:"AA719"`
}

// flightIataPattern matches an airline designator, 1-4 digits and an optional suffix.
var flightIataPattern = regexp.MustCompile(`^[A-Z0-9]{2}[0-9]{1,4}[A-Z]?$`)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Field + ": " + v.Errors[0].Message
}

// Is makes ValidationErrors match domain.ErrInvalidInput.
func (v *ValidationErrors) Is(target error) bool {
	return target == domain.ErrInvalidInput
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate checks every field and reports all problems at once.
func (r *ViewportRequest) Validate() error {
	errs := &ValidationErrors{}

	validateRange(errs, "latitude", r.Latitude, -90, 90)
	validateRange(errs, "longitude", r.Longitude, -180, 180)
	validateSpan(errs, "latitudeSpan", r.LatitudeSpan, 180)
	validateSpan(errs, "longitudeSpan", r.LongitudeSpan, 360)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ToDomain converts a validated request to a domain.Viewport.
func (r *ViewportRequest) ToDomain() domain.Viewport {
	return domain.Viewport{
		Center:        domain.Coordinate{Lat: *r.Latitude, Lon: *r.Longitude},
		LatitudeSpan:  *r.LatitudeSpan,
		LongitudeSpan: *r.LongitudeSpan,
	}
}

func validateRange(errs *ValidationErrors, field string, v *float64, lo, hi float64) {
	switch {
	case v == nil:
		errs.Add(field, field+" is required")
	case math.IsNaN(*v) || *v < lo || *v > hi:
		errs.Add(field, field+" must be between "+formatFloat(lo)+" and "+formatFloat(hi))
	}
}

func validateSpan(errs *ValidationErrors, field string, v *float64, max float64) {
	switch {
	case v == nil:
		errs.Add(field, field+" is required")
	case math.IsNaN(*v) || *v <= 0 || *v > max:
		errs.Add(field, field+" must be greater than 0 and at most "+formatFloat(max))
	}
}

// Validate checks that the open flag is present.
func (r *DetailViewRequest) Validate() error {
	if r.Open == nil {
		errs := &ValidationErrors{}
		errs.Add("open", "open is required")
		return errs
	}
	return nil
}

// Validate normalizes the flight number to upper case and checks its format.
func (r *SelectFlightRequest) Validate() error {
	errs := &ValidationErrors{}

	code := strings.ToUpper(strings.TrimSpace(r.FlightIATA))
	switch {
	case code == "":
		errs.Add("flightIata", "flightIata is required")
	case !flightIataPattern.MatchString(code):
		errs.Add("flightIata", "flightIata must be an IATA flight number such as AA719")
	default:
		r.FlightIATA = code
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Package airlabs implements domain.FlightSource on top of the AirLabs REST API.
package airlabs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/flight-tracker/live-flight-tracker/internal/domain"
	"github.com/flight-tracker/live-flight-tracker/internal/infrastructure/logger"
)

const (
	// ProviderName identifies this source in logs.
	ProviderName = "airlabs"

	// DefaultBaseURL is the public AirLabs v9 endpoint.
	DefaultBaseURL = "https://airlabs.co/api/v9"

	// DefaultTimeout bounds a single upstream call.
	DefaultTimeout = 15 * time.Second

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 8 << 20

	opFlight  = "airlabs.flight"
	opFlights = "airlabs.flights"

	redacted = "REDACTED"
)

// Config holds the client settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is a stateless AirLabs client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

var _ domain.FlightSource = (*Client)(nil)

// NewClient creates a Client. A nil httpClient gets a default one using cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client, log *logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		log:        logger.OrNop(log).WithComponent(ProviderName),
	}
}

// FlightByNumber fetches the live record for one IATA flight number.
// A null, empty or identity-less response is reported as domain.ErrNotFound.
func (c *Client) FlightByNumber(ctx context.Context, flightIata string) (*domain.FlightRecord, error) {
	code := strings.ToUpper(strings.TrimSpace(flightIata))
	if code == "" {
		return nil, domain.NewValidationError("flightIata", "must not be empty")
	}

	params := url.Values{}
	params.Set("flight_iata", code)

	dto, err := getAndDecode[flightDTO](ctx, c, opFlight, "/flight", params)
	if err != nil {
		return nil, err
	}
	if dto == nil {
		return nil, domain.NewNotFoundError(opFlight, code)
	}

	record := normalizeFlight(*dto)
	if record.IsEmpty() {
		return nil, domain.NewNotFoundError(opFlight, code)
	}
	return &record, nil
}

// FlightsInBoundingBox fetches every aircraft inside box at the given zoom level.
// An area with no aircraft yields an empty, non-nil slice.
func (c *Client) FlightsInBoundingBox(ctx context.Context, box domain.BoundingBox, zoom int) ([]domain.FlightRecord, error) {
	params := url.Values{}
	params.Set("bbox", box.String())
	params.Set("zoom", strconv.Itoa(zoom))

	dtos, err := getAndDecode[[]flightDTO](ctx, c, opFlights, "/flights", params)
	if err != nil {
		return nil, err
	}
	if dtos == nil {
		return []domain.FlightRecord{}, nil
	}
	return normalize(*dtos), nil
}

// getAndDecode performs one GET against path and decodes the {"response": T} envelope.
// It returns a nil *T when the response field is null or missing.
func getAndDecode[T any](ctx context.Context, c *Client, op, path string, params url.Values) (*T, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", c.apiKey)
	target := c.baseURL + path + "?" + query.Encode()

	log := c.log.With().Str("op", op).Str("url", c.redact(target)).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, domain.NewNetworkError(op, c.scrub(err))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(c.scrub(err)).Dur("latency", time.Since(start)).Msg("upstream request failed")
		return nil, domain.NewNetworkError(op, c.scrub(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("latency", time.Since(start)).
		Msg("upstream request completed")
	if err != nil {
		return nil, domain.NewNetworkError(op, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope[json.RawMessage]
		if json.Unmarshal(body, &env) == nil && env.Error != nil {
			return nil, domain.NewNetworkError(op, fmt.Errorf("status %d: %w", resp.StatusCode, env.Error))
		}
		return nil, domain.NewNetworkError(op, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, domain.NewDecodeError(op, err)
	}
	if env.Error != nil {
		return nil, domain.NewNetworkError(op, env.Error)
	}
	return env.Response, nil
}

// redact replaces the api_key value in a URL string.
func (c *Client) redact(raw string) string {
	if c.apiKey == "" {
		return raw
	}
	return strings.ReplaceAll(raw, url.QueryEscape(c.apiKey), redacted)
}

// scrub removes the API key from transport errors, which embed the request URL.
func (c *Client) scrub(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: c.redact(urlErr.URL), Err: urlErr.Err}
	}
	return err
}

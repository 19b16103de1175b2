// Package flags downloads and memoizes country flag images.
package flags

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/flight-tracker/live-flight-tracker/internal/domain"
	"github.com/flight-tracker/live-flight-tracker/internal/infrastructure/logger"
	"github.com/flight-tracker/live-flight-tracker/internal/infrastructure/retry"
)

// Defaults used when Config fields are empty.
const (
	DefaultBaseURL = "https://flagsapi.com"
	DefaultStyle   = "flat"
	DefaultSize    = 64

	defaultTimeout = 10 * time.Second
	maxImageBytes  = 1 << 20

	op = "flags.get"
)

// Config holds the flag endpoint settings.
type Config struct {
	BaseURL string
	Style   string
	Size    int

	// Policy controls retries of transient failures. Zero value means retry.ImagePolicy.
	Policy retry.Policy
}

// Flag is a downloaded flag image.
type Flag struct {
	// Code is the upper-case ISO 3166-1 alpha-2 country code
	Code string

	// Image is the decoded PNG
	Image image.Image

	// Data holds the original PNG bytes
	Data []byte
}

// Cache memoizes flag images by country code for the life of the process.
// Concurrent misses for the same code share a single download. Failures are not cached.
type Cache struct {
	baseURL    string
	style      string
	size       int
	policy     retry.Policy
	httpClient *http.Client
	log        *logger.Logger

	mu    sync.RWMutex
	items map[string]*Flag
	group singleflight.Group
}

// NewCache creates an empty Cache. A nil httpClient gets a default one.
func NewCache(cfg Config, httpClient *http.Client, log *logger.Logger) *Cache {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Style == "" {
		cfg.Style = DefaultStyle
	}
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize
	}
	if cfg.Policy.MaxAttempts == 0 {
		cfg.Policy = retry.ImagePolicy
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Cache{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		style:      cfg.Style,
		size:       cfg.Size,
		policy:     cfg.Policy,
		httpClient: httpClient,
		log:        logger.OrNop(log).WithComponent("flags"),
		items:      make(map[string]*Flag),
	}
}

// NormalizeCode validates a two-letter country code and upper-cases it.
func NormalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return "", domain.NewValidationError("country", "must be a two-letter country code")
	}
	return code, nil
}

// URL returns the image address for code.
func (c *Cache) URL(code string) string {
	return c.baseURL + "/" + code + "/" + c.style + "/" + strconv.Itoa(c.size) + ".png"
}

// Get returns the flag for code, downloading it on first use.
// A caller whose ctx ends stops waiting; the shared download keeps going for the others.
func (c *Cache) Get(ctx context.Context, code string) (*Flag, error) {
	key, err := NormalizeCode(code)
	if err != nil {
		return nil, err
	}
	if flag, ok := c.lookup(key); ok {
		return flag, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		if flag, ok := c.lookup(key); ok {
			return flag, nil
		}
		flag, err := retry.Do(context.WithoutCancel(ctx), c.policy, func(ctx context.Context) (*Flag, error) {
			return c.fetch(ctx, key)
		})
		if err != nil {
			c.log.Warn().Err(err).Str("country", key).Msg("flag download failed")
			return nil, err
		}
		c.mu.Lock()
		c.items[key] = flag
		c.mu.Unlock()
		return flag, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Flag), nil
	}
}

// Len returns the number of cached flags.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Has reports whether code is cached.
func (c *Cache) Has(code string) bool {
	key, err := NormalizeCode(code)
	if err != nil {
		return false
	}
	_, ok := c.lookup(key)
	return ok
}

func (c *Cache) lookup(key string) (*Flag, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	flag, ok := c.items[key]
	return flag, ok
}

// fetch performs one download attempt. Errors that retrying cannot fix are marked permanent.
func (c *Cache) fetch(ctx context.Context, code string) (*Flag, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(code), nil)
	if err != nil {
		return nil, retry.NewPermanent(domain.NewNetworkError(op, err))
	}
	req.Header.Set("Accept", "image/png")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewNetworkError(op, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("country", code).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("flag request completed")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, retry.NewPermanent(domain.NewNotFoundError(op, code))
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, domain.NewNetworkError(op, fmt.Errorf("unexpected status %d", resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, retry.NewPermanent(domain.NewNetworkError(op, fmt.Errorf("unexpected status %d", resp.StatusCode)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, domain.NewNetworkError(op, fmt.Errorf("read body: %w", err))
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, retry.NewPermanent(domain.NewDecodeError(op, err))
	}

	return &Flag{Code: code, Image: img, Data: data}, nil
}

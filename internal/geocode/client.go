package geocode

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

	"github.com/Levipasha/retrend/internal/logging"
	"github.com/Levipasha/retrend/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Nominatim instance.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// MaxSuggestions caps forward lookups.
	MaxSuggestions = 5

	defaultTimeout = 15 * time.Second
	userAgent      = "retrend-cli/1.0 (location picker)"
)

// ErrNoAddress is returned by Reverse when the geocoder has no address for
// the point.
var ErrNoAddress = errors.New("no address for coordinates")

// Geocoder translates between place names and coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]models.LocationSuggestion, error)
	Reverse(ctx context.Context, coords models.Coordinates) (models.Address, error)
}

// Client talks to a Nominatim-compatible geocoder. Requests are paced by a
// token bucket because the public instance allows one request per second.
type Client struct {
	baseURL      string
	countryCodes string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       logrus.FieldLogger
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL sets the geocoder base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithCountryCodes restricts forward lookups to the given ISO country codes
// (comma separated).
func WithCountryCodes(cc string) Option {
	return func(c *Client) {
		c.countryCodes = cc
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithRateLimit paces requests to rps per second. Zero or negative disables
// pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a geocoding client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		countryCodes: "in",
		httpClient:   &http.Client{Timeout: defaultTimeout},
		limiter:      rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrDiscard(c.logger).WithField("component", "geocode")
	return c
}

// searchResult is one element of a /search response.
type searchResult struct {
	Lat         string         `json:"lat"`
	Lon         string         `json:"lon"`
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Address     models.Address `json:"address"`
}

// Search returns up to MaxSuggestions candidates for query, in upstream
// order. An empty query returns no suggestions and makes no request.
func (c *Client) Search(ctx context.Context, query string) ([]models.LocationSuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(MaxSuggestions))
	if c.countryCodes != "" {
		params.Set("countrycodes", c.countryCodes)
	}

	var results []searchResult
	if err := c.getJSON(ctx, "/search", params, &results); err != nil {
		return nil, err
	}

	suggestions := make([]models.LocationSuggestion, 0, MaxSuggestions)
	for _, r := range results {
		if len(suggestions) == MaxSuggestions {
			break
		}
		s, ok := toSuggestion(r)
		if !ok {
			c.logger.WithField("display_name", r.DisplayName).Debug("skipping unusable search result")
			continue
		}
		suggestions = append(suggestions, s)
	}

	return suggestions, nil
}

// Reverse returns the address parts at coords.
func (c *Client) Reverse(ctx context.Context, coords models.Coordinates) (models.Address, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Lng, 'f', -1, 64))
	params.Set("format", "json")

	var result struct {
		Address *models.Address `json:"address"`
	}
	if err := c.getJSON(ctx, "/reverse", params, &result); err != nil {
		return models.Address{}, err
	}
	if result.Address == nil {
		return models.Address{}, ErrNoAddress
	}

	return *result.Address, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("geocoder rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read geocoder response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse geocoder response: %w", err)
	}
	return nil
}

func toSuggestion(r searchResult) (models.LocationSuggestion, bool) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return models.LocationSuggestion{}, false
	}
	lng, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return models.LocationSuggestion{}, false
	}

	name := SuggestionName(r.Address)
	if name == "" {
		name = strings.TrimSpace(r.Name)
	}
	if name == "" {
		return models.LocationSuggestion{}, false
	}

	return models.LocationSuggestion{
		DisplayName: name,
		Coordinates: models.Coordinates{Lat: lat, Lng: lng},
		Address:     r.Address,
	}, true
}

// Package wigle is a client for the WiGLE network database API.
package wigle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

//go:generate mockgen -source=./client.go -destination=../mocks/mock_wigle_source.go -package=mocks Source

// ErrNotConfigured is returned when no API credentials are set.
var ErrNotConfigured = errors.New("wigle api credentials are not configured")

// Config represents the configuration for the WiGLE client
type Config struct {
	// BaseURL is the API root, e.g. https://api.wigle.net/api/v2
	BaseURL string
	// APIName and APIToken are the HTTP basic auth credentials
	APIName  string
	APIToken string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout bounds every request
	Timeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://api.wigle.net/api/v2",
		HTTPClient: http.DefaultClient,
		Timeout:    10 * time.Second,
	}
}

// Source is the subset of the WiGLE API the importer needs.
type Source interface {
	Search(ctx context.Context, params SearchParams) (*SearchResponse, error)
	SiteStats(ctx context.Context) (SiteStats, error)
}

// Client is the WiGLE API client
type Client struct {
	config *Config
	client *http.Client
}

// NewClient creates a new WiGLE client with the given configuration
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		config: config,
		client: client,
	}
}

// SearchParams is a network search over a latitude/longitude box.
type SearchParams struct {
	LatRange1      float64
	LatRange2      float64
	LongRange1     float64
	LongRange2     float64
	ClosestLat     float64
	ClosestLong    float64
	SSIDLike       string
	ResultsPerPage int
}

// Query encodes the parameters the way /network/search expects them.
func (p SearchParams) Query() url.Values {
	q := url.Values{}
	q.Set("onlymine", "false")
	q.Set("freenet", "false")
	q.Set("paynet", "false")
	q.Set("latrange1", formatFloat(p.LatRange1))
	q.Set("latrange2", formatFloat(p.LatRange2))
	q.Set("longrange1", formatFloat(p.LongRange1))
	q.Set("longrange2", formatFloat(p.LongRange2))
	q.Set("closestLat", formatFloat(p.ClosestLat))
	q.Set("closestLong", formatFloat(p.ClosestLong))
	q.Set("variance", "0.01")

	perPage := p.ResultsPerPage
	if perPage <= 0 {
		perPage = 100
	}
	q.Set("resultsPerPage", strconv.Itoa(perPage))

	if p.SSIDLike != "" {
		q.Set("ssidlike", p.SSIDLike)
	}
	return q
}

// SSIDPattern turns a user SSID filter into a WiGLE ssidlike pattern: "*"
// becomes "%", and a filter without wildcards matches as a substring.
func SSIDPattern(ssid string) string {
	ssid = strings.TrimSpace(ssid)
	if ssid == "" {
		return ""
	}
	if strings.ContainsAny(ssid, "*%") {
		return strings.ReplaceAll(ssid, "*", "%")
	}
	return "%" + ssid + "%"
}

// Network is one search result.
type Network struct {
	TriLat     float64 `json:"trilat"`
	TriLong    float64 `json:"trilong"`
	SSID       string  `json:"ssid"`
	NetID      string  `json:"netid"`
	Encryption string  `json:"encryption"`
	Channel    int     `json:"channel"`
	QoS        int     `json:"qos"`
	DHCP       string  `json:"dhcp"`
	FirstTime  string  `json:"firsttime"`
	LastTime   string  `json:"lasttime"`
	LastUpdate string  `json:"lastupdt"`
	Type       string  `json:"type"`
	Road       string  `json:"road"`
	City       string  `json:"city"`
	Region     string  `json:"region"`
	Country    string  `json:"country"`
}

// IsOpen reports whether the network advertises no encryption.
func (n Network) IsOpen() bool {
	return strings.EqualFold(n.Encryption, "none") || strings.EqualFold(n.Encryption, "open")
}

// LastSeen parses LastTime, falling back to LastUpdate.
func (n Network) LastSeen() (time.Time, bool) {
	for _, v := range []string{n.LastTime, n.LastUpdate} {
		if v == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.000Z", "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

// SearchResponse is the body of /network/search.
type SearchResponse struct {
	Success      bool      `json:"success"`
	Message      string    `json:"message,omitempty"`
	TotalResults int       `json:"totalResults"`
	ResultCount  int       `json:"resultCount"`
	SearchAfter  string    `json:"searchAfter,omitempty"`
	Results      []Network `json:"results"`
}

// SiteStats is the body of /stats/site, passed through as-is.
type SiteStats map[string]interface{}

// Search queries networks inside the params' bounding box
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.get(ctx, "/network/search", params.Query(), &resp); err != nil {
		return nil, fmt.Errorf("failed to search networks: %w", err)
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "search was not successful"
		}
		return nil, &APIError{StatusCode: http.StatusOK, Message: msg}
	}

	return &resp, nil
}

// SiteStats returns the WiGLE site-wide statistics
func (c *Client) SiteStats(ctx context.Context) (SiteStats, error) {
	var stats SiteStats
	if err := c.get(ctx, "/stats/site", nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to get site stats: %w", err)
	}
	return stats, nil
}

// APIError defines an unsuccessful response from the API
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wigle: %s (Status: %d)", e.Message, e.StatusCode)
}

// get performs an authenticated GET request and unmarshals the response
func (c *Client) get(ctx context.Context, path string, query url.Values, resp interface{}) error {
	if c.config.APIName == "" || c.config.APIToken == "" {
		return ErrNotConfigured
	}

	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.SetBasicAuth(c.config.APIName, c.config.APIToken)

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	// Check for non-success status code
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		var apiErr APIError
		if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			return &APIError{
				StatusCode: httpResp.StatusCode,
				Message:    fmt.Sprintf("request failed with status code %d", httpResp.StatusCode),
			}
		}

		apiErr.StatusCode = httpResp.StatusCode
		return &apiErr
	}

	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

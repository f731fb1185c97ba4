package wigle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&Config{
		BaseURL:  server.URL,
		APIName:  "name",
		APIToken: "token",
		Timeout:  2 * time.Second,
	})
}

func TestNewClient(t *testing.T) {
	client := NewClient(nil)
	assert.Equal(t, "https://api.wigle.net/api/v2", client.config.BaseURL)
	assert.Equal(t, http.DefaultClient, client.client)
}

func TestSSIDPattern(t *testing.T) {
	assert.Equal(t, "", SSIDPattern("  "))
	assert.Equal(t, "%cafe%", SSIDPattern("cafe"))
	assert.Equal(t, "Star%", SSIDPattern("Star*"))
	assert.Equal(t, "%bucks%", SSIDPattern("*bucks*"))
	assert.Equal(t, "Cafe%", SSIDPattern("Cafe%"))
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/network/search", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "name", user)
		assert.Equal(t, "token", pass)

		q := r.URL.Query()
		assert.Equal(t, "37.7", q.Get("latrange1"))
		assert.Equal(t, "37.8", q.Get("latrange2"))
		assert.Equal(t, "%cafe%", q.Get("ssidlike"))
		assert.Equal(t, "100", q.Get("resultsPerPage"))
		assert.Equal(t, "false", q.Get("onlymine"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":      true,
			"totalResults": 2,
			"searchAfter":  "abc",
			"results": []map[string]interface{}{
				{"ssid": "Cafe", "netid": "AA:BB:CC:DD:EE:FF", "trilat": 37.75, "trilong": -122.41, "encryption": "wpa2", "lasttime": "2024-05-01T10:00:00.000Z", "channel": 6},
				{"ssid": "", "netid": "11:22:33:44:55:66", "trilat": 37.76, "trilong": -122.42, "encryption": "none"},
			},
		})
	})

	resp, err := client.Search(context.Background(), SearchParams{
		LatRange1: 37.7, LatRange2: 37.8, LongRange1: -122.5, LongRange2: -122.3,
		ClosestLat: 37.75, ClosestLong: -122.4, SSIDLike: SSIDPattern("cafe"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalResults)
	assert.Equal(t, "abc", resp.SearchAfter)
	require.Len(t, resp.Results, 2)

	first := resp.Results[0]
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", first.NetID)
	assert.False(t, first.IsOpen())
	seen, ok := first.LastSeen()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), seen)
	assert.True(t, resp.Results[1].IsOpen())
}

func TestSearchUnsuccessful(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"too many queries today"}`))
	})

	_, err := client.Search(context.Background(), SearchParams{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "too many queries today", apiErr.Message)
}

func TestSearchHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`not json`))
	})

	_, err := client.Search(context.Background(), SearchParams{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestSearchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(server.Close)

	client := NewClient(&Config{BaseURL: server.URL, APIName: "n", APIToken: "t", Timeout: 50 * time.Millisecond})
	_, err := client.Search(context.Background(), SearchParams{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSearchNotConfigured(t *testing.T) {
	client := NewClient(&Config{BaseURL: "http://127.0.0.1:1"})
	_, err := client.Search(context.Background(), SearchParams{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSiteStats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats/site", r.URL.Path)
		w.Write([]byte(`{"netwpa2":123,"netloc":456}`))
	})

	stats, err := client.SiteStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(456), stats["netloc"])
}

type failingSource struct {
	calls atomic.Int32
}

func (f *failingSource) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	f.calls.Add(1)
	return nil, errors.New("connection refused")
}

func (f *failingSource) SiteStats(ctx context.Context) (SiteStats, error) {
	f.calls.Add(1)
	return nil, errors.New("connection refused")
}

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	source := &failingSource{}
	client := NewCircuitBreakerClient(source, BreakerSettings{
		MinRequests:  3,
		FailureRatio: 0.5,
		OpenTimeout:  time.Minute,
		Interval:     time.Minute,
	})

	for i := 0; i < 3; i++ {
		_, err := client.Search(context.Background(), SearchParams{})
		assert.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, client.State())

	_, err := client.Search(context.Background(), SearchParams{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), source.calls.Load(), "open breaker must not call the API")
}

func TestCircuitBreakerPassesResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"totalResults":0,"results":[]}`))
	})

	cbc := NewCircuitBreakerClient(client, DefaultBreakerSettings())
	resp, err := cbc.Search(context.Background(), SearchParams{})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, gobreaker.StateClosed, cbc.State())
}

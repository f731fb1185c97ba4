package wigle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/apmap/internal/metrics"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerSettings tune the circuit breaker around the API.
type BreakerSettings struct {
	// MinRequests before the failure ratio is considered
	MinRequests uint32
	// FailureRatio at or above which the circuit opens
	FailureRatio float64
	// OpenTimeout before a half-open probe is allowed
	OpenTimeout time.Duration
	// Interval after which closed-state counts reset
	Interval time.Duration
}

// DefaultBreakerSettings opens after 60% failures over at least 5 requests
// and probes again after a minute.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MinRequests:  5,
		FailureRatio: 0.6,
		OpenTimeout:  time.Minute,
		Interval:     time.Minute,
	}
}

// CircuitBreakerClient wraps a Source so a failing WiGLE API is not called
// on every request. Calls are made once, never retried.
type CircuitBreakerClient struct {
	source Source
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps source with a circuit breaker
func NewCircuitBreakerClient(source Source, settings BreakerSettings) *CircuitBreakerClient {
	name := "wigle-api"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    settings.Interval,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= settings.FailureRatio
		},
		// Cancellation by the caller says nothing about the API's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrNotConfigured)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state transition", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &CircuitBreakerClient{source: source, cb: cb, name: name}
}

// Search implements Source
func (c *CircuitBreakerClient) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	return castResult[SearchResponse](c.execute("search", func() (interface{}, error) {
		return c.source.Search(ctx, params)
	}))
}

// SiteStats implements Source
func (c *CircuitBreakerClient) SiteStats(ctx context.Context) (SiteStats, error) {
	result, err := c.execute("site_stats", func() (interface{}, error) {
		return c.source.SiteStats(ctx)
	})
	if err != nil {
		return nil, err
	}
	stats, ok := result.(SiteStats)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return stats, nil
}

// State returns the current breaker state
func (c *CircuitBreakerClient) State() gobreaker.State {
	return c.cb.State()
}

func (c *CircuitBreakerClient) execute(endpoint string, fn func() (interface{}, error)) (interface{}, error) {
	result, err := c.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.WigleRequestsTotal.WithLabelValues(endpoint, "rejected").Inc()
		} else {
			metrics.WigleRequestsTotal.WithLabelValues(endpoint, "failure").Inc()
		}
		return nil, err
	}

	metrics.WigleRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	return result, nil
}

// castResult safely type-casts the circuit breaker result
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

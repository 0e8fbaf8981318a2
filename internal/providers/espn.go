package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const userAgent = "golf-agent/1.0"

// Tour names the two upstream data partitions.
const (
	TourPGA  = "pga"
	TourLPGA = "lpga"
)

// UpstreamError is returned for any non-2xx upstream response. There is no
// retry or backoff; the failed call fails the whole handler invocation.
type UpstreamError struct {
	Status int
	URL    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d for %s", e.Status, e.URL)
}

// GolfClient fetches tournament data from the public golf statistics API.
type GolfClient struct {
	httpClient *http.Client
	baseURL    string
	breakers   map[string]*gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

// NewGolfClient creates an upstream client with a circuit breaker per tour.
func NewGolfClient(baseURL string, timeout time.Duration, breakerThreshold int, breakerCooldown time.Duration, logger *logrus.Logger) *GolfClient {
	settings := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        name,
			MaxRequests: uint32(breakerThreshold),
			Timeout:     breakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.WithFields(logrus.Fields{
					"component": "circuit_breaker",
					"tour":      name,
					"from":      from.String(),
					"to":        to.String(),
				}).Info("Circuit breaker state changed")
			},
		}
	}

	return &GolfClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		breakers: map[string]*gobreaker.CircuitBreaker{
			TourPGA:  gobreaker.NewCircuitBreaker(settings(TourPGA)),
			TourLPGA: gobreaker.NewCircuitBreaker(settings(TourLPGA)),
		},
		logger: logger,
	}
}

// Events fetches the event list for a tour.
func (c *GolfClient) Events(ctx context.Context, tour string) (*EventsResponse, error) {
	var out EventsResponse
	if err := c.fetch(ctx, tour, fmt.Sprintf("/%s/events", tour), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Scoreboard fetches the scoreboard for a tour, optionally scoped to a single
// event.
func (c *GolfClient) Scoreboard(ctx context.Context, tour string, eventID string) (*ScoreboardResponse, error) {
	path := fmt.Sprintf("/%s/scoreboard", tour)
	if eventID != "" {
		path += "?event=" + url.QueryEscape(eventID)
	}
	var out ScoreboardResponse
	if err := c.fetch(ctx, tour, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BreakerState reports the circuit breaker state for a tour, for health
// output.
func (c *GolfClient) BreakerState(tour string) string {
	if breaker, ok := c.breakers[tour]; ok {
		return breaker.State().String()
	}
	return gobreaker.StateClosed.String()
}

func (c *GolfClient) fetch(ctx context.Context, tour string, path string, out interface{}) error {
	breaker, ok := c.breakers[tour]
	if !ok {
		return fmt.Errorf("unknown tour %q", tour)
	}

	_, err := breaker.Execute(func() (interface{}, error) {
		return nil, c.doFetch(ctx, path, out)
	})
	return err
}

func (c *GolfClient) doFetch(ctx context.Context, path string, out interface{}) error {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create upstream request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch upstream data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Status: resp.StatusCode, URL: fullURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read upstream response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse upstream response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"component":   "upstream",
		"path":        path,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Upstream fetch completed")

	return nil
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairway-labs/golf-agent/internal/agent"
	"github.com/fairway-labs/golf-agent/internal/billing"
	"github.com/fairway-labs/golf-agent/internal/golf"
	"github.com/fairway-labs/golf-agent/internal/providers"
)

func ptr[T any](v T) *T {
	return &v
}

type stubUpstream struct {
	eventsFn     func(tour string) (*providers.EventsResponse, error)
	scoreboardFn func(tour, eventID string) (*providers.ScoreboardResponse, error)
}

func (s *stubUpstream) Events(_ context.Context, tour string) (*providers.EventsResponse, error) {
	return s.eventsFn(tour)
}

func (s *stubUpstream) Scoreboard(_ context.Context, tour, eventID string) (*providers.ScoreboardResponse, error) {
	return s.scoreboardFn(tour, eventID)
}

func fixtureEvent(n int) providers.Event {
	competitors := make([]providers.Competitor, 0, n)
	for i := 0; i < n; i++ {
		score := providers.FlexString("E")
		competitors = append(competitors, providers.Competitor{
			ID: fmt.Sprintf("c%d", i+1),
			Athlete: &providers.Athlete{
				ID:          fmt.Sprintf("p%d", i+1),
				DisplayName: fmt.Sprintf("Player %d", i+1),
				ShortName:   ptr(fmt.Sprintf("IRL.Player %d", i+1)),
			},
			Score: &score,
		})
	}
	return providers.Event{
		ID:           "401",
		Name:         "Test Championship",
		Status:       &providers.EventStatus{Type: &providers.StatusType{Description: ptr("Final")}},
		Competitions: []providers.Competition{{Competitors: competitors}},
	}
}

func setupRouter(t *testing.T, upstream golf.Upstream, tracker *billing.Tracker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	svc := golf.NewService(upstream, log)
	app := agent.New("golf-agent", "test", "1.0.0", "http://localhost:3000", tracker, log)
	RegisterEntrypoints(app, NewEntrypointHandler(svc, tracker, log))

	router := gin.New()
	app.Bind(router)
	return router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, path, nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeOutput(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Output map[string]interface{} `json:"output"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Output
}

func liveUpstream() *stubUpstream {
	return &stubUpstream{
		eventsFn: func(tour string) (*providers.EventsResponse, error) {
			event := fixtureEvent(20)
			return &providers.EventsResponse{Events: []providers.Event{event}}, nil
		},
		scoreboardFn: func(tour, eventID string) (*providers.ScoreboardResponse, error) {
			event := fixtureEvent(20)
			return &providers.ScoreboardResponse{
				Events:  []providers.Event{event},
				Leagues: []providers.League{{Calendar: []providers.CalendarEntry{{Label: ptr("Next Open")}}}},
			}, nil
		},
	}
}

func TestOverviewEnvelope(t *testing.T) {
	router := setupRouter(t, liveUpstream(), nil)

	w := post(router, "/entrypoints/overview", "")
	require.Equal(t, http.StatusOK, w.Code)

	output := decodeOutput(t, w)
	leaderboard := output["leaderboard"].([]interface{})
	assert.Len(t, leaderboard, 10)
	first := leaderboard[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["position"])
	assert.Equal(t, "IRL", first["country"])
	assert.NotEmpty(t, output["fetchedAt"])
}

func TestLeaderboardLimit(t *testing.T) {
	router := setupRouter(t, liveUpstream(), nil)

	w := post(router, "/entrypoints/pga-leaderboard", `{"limit": 5}`)
	require.Equal(t, http.StatusOK, w.Code)
	output := decodeOutput(t, w)
	assert.Len(t, output["leaderboard"].([]interface{}), 5)

	w = post(router, "/entrypoints/pga-leaderboard", `{"limit": 100}`)
	require.Equal(t, http.StatusOK, w.Code)
	output = decodeOutput(t, w)
	assert.Len(t, output["leaderboard"].([]interface{}), 20)
}

func TestScorecardRequiresPlayerID(t *testing.T) {
	router := setupRouter(t, liveUpstream(), nil)

	w := post(router, "/entrypoints/player-scorecard", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScorecardUnknownPlayerIsNotAnError(t *testing.T) {
	router := setupRouter(t, liveUpstream(), nil)

	w := post(router, "/entrypoints/player-scorecard", `{"playerId": "ghost"}`)
	require.Equal(t, http.StatusOK, w.Code)

	output := decodeOutput(t, w)
	assert.Contains(t, output["error"], "ghost")
	assert.Len(t, output["availablePlayers"].([]interface{}), 10)
}

func TestUpstreamFailureReturnsBadGateway(t *testing.T) {
	router := setupRouter(t, &stubUpstream{
		eventsFn: func(string) (*providers.EventsResponse, error) {
			return nil, &providers.UpstreamError{Status: http.StatusServiceUnavailable}
		},
	}, nil)

	w := post(router, "/entrypoints/overview", "")
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(http.StatusServiceUnavailable), body["status"])
}

func TestMalformedInputRejected(t *testing.T) {
	router := setupRouter(t, liveUpstream(), nil)

	w := post(router, "/entrypoints/pga-leaderboard", `{"limit": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsWithoutTracker(t *testing.T) {
	router := setupRouter(t, liveUpstream(), nil)

	w := post(router, "/entrypoints/analytics", "")
	require.Equal(t, http.StatusOK, w.Code)
	output := decodeOutput(t, w)
	assert.Equal(t, "0.000000", output["totalRevenue"])
	assert.Equal(t, float64(0), output["totalCalls"])

	w = post(router, "/entrypoints/analytics-transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listEnvelope struct {
		Output []interface{} `json:"output"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listEnvelope))
	assert.Empty(t, listEnvelope.Output)

	w = post(router, "/entrypoints/analytics-csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	var csvEnvelope struct {
		Output string `json:"output"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &csvEnvelope))
	assert.Equal(t, "", csvEnvelope.Output)
}

func TestPaidCallsShowUpInAnalytics(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	tracker := billing.NewTracker(nil, log)
	router := setupRouter(t, liveUpstream(), tracker)

	w := post(router, "/entrypoints/pga-leaderboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = post(router, "/entrypoints/overview", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = post(router, "/entrypoints/analytics", "")
	require.Equal(t, http.StatusOK, w.Code)
	output := decodeOutput(t, w)
	// Only the priced call is charged; overview is free.
	assert.Equal(t, "0.001000", output["totalRevenue"])
	assert.Equal(t, float64(1), output["totalCalls"])
}

func TestCatalogMatchesPricingTable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	svc := golf.NewService(liveUpstream(), log)
	app := agent.New("golf-agent", "test", "1.0.0", "http://localhost:3000", nil, log)
	RegisterEntrypoints(app, NewEntrypointHandler(svc, nil, log))

	expected := map[string]int64{
		"overview":               0,
		"pga-leaderboard":        1000,
		"player-scorecard":       2000,
		"pga-schedule":           2000,
		"lpga-leaderboard":       3000,
		"full-report":            5000,
		"analytics":              0,
		"analytics-transactions": 0,
		"analytics-csv":          0,
	}

	descriptor := app.Descriptor()
	require.Len(t, descriptor.Entrypoints, len(expected))
	for _, endpoint := range descriptor.Entrypoints {
		price, ok := expected[endpoint.Key]
		require.True(t, ok, "unexpected entrypoint %s", endpoint.Key)
		assert.Equal(t, price, endpoint.PriceMinor, endpoint.Key)
	}
}

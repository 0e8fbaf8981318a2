package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fairway-labs/golf-agent/internal/billing"
	"github.com/fairway-labs/golf-agent/internal/golf"
	"github.com/fairway-labs/golf-agent/internal/providers"
)

// Input defaults per entrypoint.
const (
	defaultLeaderboardLimit     = 50
	defaultLPGALeaderboardLimit = 30
	defaultScheduleLimit        = 10
	defaultTransactionsLimit    = 50
)

// EntrypointHandler serves the billable capability surface. Every response
// is wrapped in an {"output": ...} envelope.
type EntrypointHandler struct {
	svc     *golf.Service
	tracker *billing.Tracker
	logger  *logrus.Logger
}

// NewEntrypointHandler creates the handler set. tracker may be nil; the
// analytics entrypoints then degrade to empty results.
func NewEntrypointHandler(svc *golf.Service, tracker *billing.Tracker, logger *logrus.Logger) *EntrypointHandler {
	return &EntrypointHandler{
		svc:     svc,
		tracker: tracker,
		logger:  logger,
	}
}

type limitInput struct {
	Limit *int `json:"limit"`
}

type scorecardInput struct {
	PlayerID string `json:"playerId"`
}

type analyticsInput struct {
	WindowMs *int64 `json:"windowMs"`
	Limit    *int   `json:"limit"`
}

// bindInput decodes an optional JSON body. An empty body leaves defaults in
// place; malformed JSON is a caller error.
func bindInput(c *gin.Context, out interface{}) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON input"})
		return false
	}
	return true
}

// sendOutput wraps a result in the entrypoint envelope.
func sendOutput(c *gin.Context, output interface{}) {
	c.JSON(http.StatusOK, gin.H{"output": output})
}

// sendUpstreamError surfaces an upstream transport/status failure. This is
// the only hard-failure path; domain misses ride inside 200 payloads.
func (h *EntrypointHandler) sendUpstreamError(c *gin.Context, err error) {
	entry := h.logger.WithError(err).WithField("path", c.FullPath())

	var upstreamErr *providers.UpstreamError
	if errors.As(err, &upstreamErr) {
		entry.Warn("Upstream request failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "upstream request failed",
			"status": upstreamErr.Status,
		})
		return
	}

	entry.Warn("Upstream request failed")
	c.JSON(http.StatusBadGateway, gin.H{"error": "upstream request failed"})
}

// Overview handles the free current-tournament snapshot.
func (h *EntrypointHandler) Overview(c *gin.Context) {
	report, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		h.sendUpstreamError(c, err)
		return
	}
	sendOutput(c, report)
}

// PGALeaderboard handles the primary-tour leaderboard entrypoint.
func (h *EntrypointHandler) PGALeaderboard(c *gin.Context) {
	h.leaderboard(c, providers.TourPGA, defaultLeaderboardLimit)
}

// LPGALeaderboard handles the secondary-tour leaderboard entrypoint.
func (h *EntrypointHandler) LPGALeaderboard(c *gin.Context) {
	h.leaderboard(c, providers.TourLPGA, defaultLPGALeaderboardLimit)
}

func (h *EntrypointHandler) leaderboard(c *gin.Context, tour string, defaultLimit int) {
	var input limitInput
	if !bindInput(c, &input) {
		return
	}
	limit := defaultLimit
	if input.Limit != nil && *input.Limit > 0 {
		limit = *input.Limit
	}

	report, err := h.svc.Leaderboard(c.Request.Context(), tour, limit)
	if err != nil {
		h.sendUpstreamError(c, err)
		return
	}
	sendOutput(c, report)
}

// PlayerScorecard handles the scorecard entrypoint. playerId is required.
func (h *EntrypointHandler) PlayerScorecard(c *gin.Context) {
	var input scorecardInput
	if !bindInput(c, &input) {
		return
	}
	if input.PlayerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId is required"})
		return
	}

	report, err := h.svc.Scorecard(c.Request.Context(), input.PlayerID)
	if err != nil {
		h.sendUpstreamError(c, err)
		return
	}
	sendOutput(c, report)
}

// PGASchedule handles the schedule entrypoint.
func (h *EntrypointHandler) PGASchedule(c *gin.Context) {
	var input limitInput
	if !bindInput(c, &input) {
		return
	}
	limit := defaultScheduleLimit
	if input.Limit != nil && *input.Limit > 0 {
		limit = *input.Limit
	}

	report, err := h.svc.Schedule(c.Request.Context(), limit)
	if err != nil {
		h.sendUpstreamError(c, err)
		return
	}
	sendOutput(c, report)
}

// FullReport handles the aggregate report entrypoint.
func (h *EntrypointHandler) FullReport(c *gin.Context) {
	report, err := h.svc.FullReport(c.Request.Context())
	if err != nil {
		h.sendUpstreamError(c, err)
		return
	}
	sendOutput(c, report)
}

// Analytics returns the usage summary. With no tracker configured the
// summary is zeroed, never an error.
func (h *EntrypointHandler) Analytics(c *gin.Context) {
	var input analyticsInput
	if !bindInput(c, &input) {
		return
	}
	sendOutput(c, h.tracker.Summarize(windowOf(input.WindowMs)))
}

// AnalyticsTransactions returns tracked charges, newest first.
func (h *EntrypointHandler) AnalyticsTransactions(c *gin.Context) {
	var input analyticsInput
	if !bindInput(c, &input) {
		return
	}
	limit := defaultTransactionsLimit
	if input.Limit != nil && *input.Limit > 0 {
		limit = *input.Limit
	}
	sendOutput(c, h.tracker.Transactions(windowOf(input.WindowMs), limit))
}

// AnalyticsCSV returns tracked charges as CSV text. An absent tracker yields
// an empty string.
func (h *EntrypointHandler) AnalyticsCSV(c *gin.Context) {
	var input analyticsInput
	if !bindInput(c, &input) {
		return
	}
	sendOutput(c, h.tracker.CSV(windowOf(input.WindowMs)))
}

func windowOf(windowMs *int64) time.Duration {
	if windowMs == nil || *windowMs <= 0 {
		return 0
	}
	return time.Duration(*windowMs) * time.Millisecond
}

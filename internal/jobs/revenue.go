package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/fairway-labs/golf-agent/internal/billing"
)

// RevenueSummaryJob logs a daily usage/revenue summary from the tracker.
// A nil tracker makes the job a no-op.
type RevenueSummaryJob struct {
	tracker *billing.Tracker
	cron    *cron.Cron
	logger  *logrus.Entry
}

func NewRevenueSummaryJob(tracker *billing.Tracker, logger *logrus.Logger) *RevenueSummaryJob {
	return &RevenueSummaryJob{
		tracker: tracker,
		cron:    cron.New(),
		logger:  logger.WithField("component", "revenue_summary"),
	}
}

// Start schedules the daily summary at midnight UTC.
func (j *RevenueSummaryJob) Start() {
	if _, err := j.cron.AddFunc("0 0 * * *", j.run); err != nil {
		j.logger.WithError(err).Error("Failed to schedule revenue summary job")
		return
	}
	j.cron.Start()
}

// Stop halts the scheduler.
func (j *RevenueSummaryJob) Stop() {
	j.cron.Stop()
}

func (j *RevenueSummaryJob) run() {
	if j.tracker == nil {
		return
	}
	summary := j.tracker.Summarize(24 * time.Hour)
	j.logger.WithFields(logrus.Fields{
		"total_revenue": summary.TotalRevenue,
		"currency":      summary.Currency,
		"total_calls":   summary.TotalCalls,
		"paid_calls":    summary.PaidCalls,
	}).Info("Daily revenue summary")
}

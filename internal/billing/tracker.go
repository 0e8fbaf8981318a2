package billing

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	redisChargeList = "golf-agent:charges"
	redisChargeCap  = 1000
)

// Charge records one priced entrypoint invocation.
type Charge struct {
	ID         string    `json:"id"`
	Entrypoint string    `json:"entrypoint"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Success    bool      `json:"success"`
	Timestamp  time.Time `json:"timestamp"`
}

// TransactionRecord is the outward shape of a charge; the amount is a
// decimal string, never a float.
type TransactionRecord struct {
	ID         string `json:"id"`
	Entrypoint string `json:"entrypoint"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Success    bool   `json:"success"`
	Timestamp  string `json:"timestamp"`
}

// EntrypointStats summarizes one entrypoint's usage inside a Summary.
type EntrypointStats struct {
	Calls   int    `json:"calls"`
	Revenue string `json:"revenue"`
}

// Summary aggregates tracked usage over a window.
type Summary struct {
	TotalRevenue string                     `json:"totalRevenue"`
	Currency     string                     `json:"currency"`
	TotalCalls   int                        `json:"totalCalls"`
	PaidCalls    int                        `json:"paidCalls"`
	ByEntrypoint map[string]EntrypointStats `json:"byEntrypoint"`
	WindowMs     int64                      `json:"windowMs,omitempty"`
}

// Tracker is the usage-metering collaborator. It keeps an in-memory ledger
// and, when a redis client is configured, mirrors each charge there for
// external inspection. A nil *Tracker is valid: every method degrades to an
// empty/zeroed result, matching the "collaborator absent" contract.
type Tracker struct {
	mu      sync.Mutex
	charges []Charge
	redis   *redis.Client
	logger  *logrus.Entry
}

// NewTracker creates a usage tracker. redisClient may be nil for a purely
// in-memory ledger.
func NewTracker(redisClient *redis.Client, logger *logrus.Logger) *Tracker {
	return &Tracker{
		redis:  redisClient,
		logger: logger.WithField("component", "usage_tracker"),
	}
}

// Record appends a charge for a priced invocation.
func (t *Tracker) Record(ctx context.Context, entrypoint string, amount int64, success bool) Charge {
	charge := Charge{
		ID:         uuid.New().String(),
		Entrypoint: entrypoint,
		Amount:     amount,
		Currency:   Currency,
		Success:    success,
		Timestamp:  time.Now().UTC(),
	}

	t.mu.Lock()
	t.charges = append(t.charges, charge)
	t.mu.Unlock()

	if t.redis != nil {
		payload, err := json.Marshal(charge)
		if err == nil {
			pipe := t.redis.Pipeline()
			pipe.LPush(ctx, redisChargeList, payload)
			pipe.LTrim(ctx, redisChargeList, 0, redisChargeCap-1)
			if _, err := pipe.Exec(ctx); err != nil {
				t.logger.WithError(err).Warn("Failed to mirror charge to redis")
			}
		}
	}

	t.logger.WithFields(logrus.Fields{
		"entrypoint": entrypoint,
		"amount":     FormatMinorUnits(amount),
		"currency":   Currency,
	}).Debug("Charge recorded")

	return charge
}

// Summarize aggregates charges within the window. A zero window covers the
// full ledger. Safe on a nil tracker.
func (t *Tracker) Summarize(window time.Duration) Summary {
	summary := Summary{
		TotalRevenue: FormatMinorUnits(0),
		Currency:     Currency,
		ByEntrypoint: map[string]EntrypointStats{},
	}
	if window > 0 {
		summary.WindowMs = window.Milliseconds()
	}
	if t == nil {
		return summary
	}

	t.mu.Lock()
	charges := t.snapshot(window)
	t.mu.Unlock()

	var total int64
	revenueByKey := map[string]int64{}
	callsByKey := map[string]int{}
	for _, charge := range charges {
		summary.TotalCalls++
		if charge.Amount > 0 {
			summary.PaidCalls++
		}
		total += charge.Amount
		revenueByKey[charge.Entrypoint] += charge.Amount
		callsByKey[charge.Entrypoint]++
	}
	summary.TotalRevenue = FormatMinorUnits(total)
	for key, calls := range callsByKey {
		summary.ByEntrypoint[key] = EntrypointStats{
			Calls:   calls,
			Revenue: FormatMinorUnits(revenueByKey[key]),
		}
	}
	return summary
}

// Transactions returns up to limit charges within the window, newest first.
// Safe on a nil tracker.
func (t *Tracker) Transactions(window time.Duration, limit int) []TransactionRecord {
	if t == nil {
		return []TransactionRecord{}
	}

	t.mu.Lock()
	charges := t.snapshot(window)
	t.mu.Unlock()

	sort.Slice(charges, func(i, j int) bool {
		return charges[i].Timestamp.After(charges[j].Timestamp)
	})
	if limit > 0 && limit < len(charges) {
		charges = charges[:limit]
	}

	records := make([]TransactionRecord, 0, len(charges))
	for _, charge := range charges {
		records = append(records, TransactionRecord{
			ID:         charge.ID,
			Entrypoint: charge.Entrypoint,
			Amount:     FormatMinorUnits(charge.Amount),
			Currency:   charge.Currency,
			Success:    charge.Success,
			Timestamp:  charge.Timestamp.Format(time.RFC3339),
		})
	}
	return records
}

// CSV renders charges within the window as CSV text, newest first. Safe on a
// nil tracker, which yields an empty string.
func (t *Tracker) CSV(window time.Duration) string {
	if t == nil {
		return ""
	}

	records := t.Transactions(window, 0)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "entrypoint", "amount", "currency", "success", "timestamp"})
	for _, record := range records {
		_ = w.Write([]string{
			record.ID,
			record.Entrypoint,
			record.Amount,
			record.Currency,
			strconv.FormatBool(record.Success),
			record.Timestamp,
		})
	}
	w.Flush()
	return buf.String()
}

// snapshot copies charges within the window. Callers hold the lock.
func (t *Tracker) snapshot(window time.Duration) []Charge {
	if window <= 0 {
		out := make([]Charge, len(t.charges))
		copy(out, t.charges)
		return out
	}
	cutoff := time.Now().UTC().Add(-window)
	out := make([]Charge, 0, len(t.charges))
	for _, charge := range t.charges {
		if !charge.Timestamp.Before(cutoff) {
			out = append(out, charge)
		}
	}
	return out
}

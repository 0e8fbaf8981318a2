package handlers

import (
	"github.com/fairway-labs/golf-agent/internal/agent"
)

// Nominal entrypoint prices in minor units (micro-USDC).
const (
	priceOverview        = 0
	pricePGALeaderboard  = 1000
	pricePlayerScorecard = 2000
	pricePGASchedule     = 2000
	priceLPGALeaderboard = 3000
	priceFullReport      = 5000
)

func objectSchema(required []string, props map[string]agent.Property) agent.InputSchema {
	return agent.InputSchema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// RegisterEntrypoints declares the full billable capability surface on the
// agent. Called once at startup.
func RegisterEntrypoints(a *agent.Agent, h *EntrypointHandler) {
	a.Register(agent.Entrypoint{
		Key:         "overview",
		Description: "Free snapshot of the current PGA tournament with the top of the leaderboard",
		Price:       priceOverview,
		Input:       objectSchema(nil, nil),
		Handle:      h.Overview,
	})

	a.Register(agent.Entrypoint{
		Key:         "pga-leaderboard",
		Description: "Full leaderboard for the current PGA tournament",
		Price:       pricePGALeaderboard,
		Input: objectSchema(nil, map[string]agent.Property{
			"limit": {
				Type:        "number",
				Description: "Maximum number of leaderboard entries to return",
				Default:     defaultLeaderboardLimit,
			},
		}),
		Handle: h.PGALeaderboard,
	})

	a.Register(agent.Entrypoint{
		Key:         "player-scorecard",
		Description: "Round-by-round scorecard for one player in the current PGA tournament",
		Price:       pricePlayerScorecard,
		Input: objectSchema([]string{"playerId"}, map[string]agent.Property{
			"playerId": {
				Type:        "string",
				Description: "Player id as listed on the leaderboard",
			},
		}),
		Handle: h.PlayerScorecard,
	})

	a.Register(agent.Entrypoint{
		Key:         "pga-schedule",
		Description: "Upcoming PGA tour schedule",
		Price:       pricePGASchedule,
		Input: objectSchema(nil, map[string]agent.Property{
			"limit": {
				Type:        "number",
				Description: "Maximum number of schedule entries to return",
				Default:     defaultScheduleLimit,
			},
		}),
		Handle: h.PGASchedule,
	})

	a.Register(agent.Entrypoint{
		Key:         "lpga-leaderboard",
		Description: "Full leaderboard for the current LPGA tournament",
		Price:       priceLPGALeaderboard,
		Input: objectSchema(nil, map[string]agent.Property{
			"limit": {
				Type:        "number",
				Description: "Maximum number of leaderboard entries to return",
				Default:     defaultLPGALeaderboardLimit,
			},
		}),
		Handle: h.LPGALeaderboard,
	})

	a.Register(agent.Entrypoint{
		Key:         "full-report",
		Description: "Combined PGA and LPGA tournament report with upcoming schedule",
		Price:       priceFullReport,
		Input:       objectSchema(nil, nil),
		Handle:      h.FullReport,
	})

	a.Register(agent.Entrypoint{
		Key:         "analytics",
		Description: "Usage and revenue summary for this agent",
		Price:       0,
		Input: objectSchema(nil, map[string]agent.Property{
			"windowMs": {
				Type:        "number",
				Description: "Only include charges within this many milliseconds",
			},
		}),
		Handle: h.Analytics,
	})

	a.Register(agent.Entrypoint{
		Key:         "analytics-transactions",
		Description: "Recent charges recorded by the usage tracker",
		Price:       0,
		Input: objectSchema(nil, map[string]agent.Property{
			"windowMs": {
				Type:        "number",
				Description: "Only include charges within this many milliseconds",
			},
			"limit": {
				Type:        "number",
				Description: "Maximum number of transactions to return",
				Default:     defaultTransactionsLimit,
			},
		}),
		Handle: h.AnalyticsTransactions,
	})

	a.Register(agent.Entrypoint{
		Key:         "analytics-csv",
		Description: "Charges recorded by the usage tracker as CSV text",
		Price:       0,
		Input: objectSchema(nil, map[string]agent.Property{
			"windowMs": {
				Type:        "number",
				Description: "Only include charges within this many milliseconds",
			},
		}),
		Handle: h.AnalyticsCSV,
	})
}

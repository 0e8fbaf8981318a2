package golf

// Output contracts for the entrypoints. All reports carry an RFC3339
// timestamp captured at response construction. Domain "not found" conditions
// live in the Error/Message fields of otherwise successful payloads.

// TournamentSummary describes the current event of a tour.
type TournamentSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Round  int    `json:"round"`
	Date   string `json:"date"`
}

// LeaderboardEntry is one competitor row. Position is assigned from input
// order, 1-based; the upstream ordering is preserved as-is.
type LeaderboardEntry struct {
	Position int    `json:"position"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Score    string `json:"score"`
	Thru     string `json:"thru,omitempty"`
}

// OverviewReport is the free snapshot of the primary tour.
type OverviewReport struct {
	Message     string             `json:"message,omitempty"`
	Tournament  *TournamentSummary `json:"tournament,omitempty"`
	Leaderboard []LeaderboardEntry `json:"leaderboard,omitempty"`
	FetchedAt   string             `json:"fetchedAt"`
}

// LeaderboardReport is the full leaderboard of a tour's current event.
type LeaderboardReport struct {
	Error       string             `json:"error,omitempty"`
	Tour        string             `json:"tour,omitempty"`
	Tournament  *TournamentSummary `json:"tournament,omitempty"`
	Leaderboard []LeaderboardEntry `json:"leaderboard,omitempty"`
	FetchedAt   string             `json:"fetchedAt"`
}

// PlayerRef identifies a competitor, also used as a discovery hint when a
// scorecard lookup misses.
type PlayerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Hole is one hole of a round.
type Hole struct {
	Hole    int    `json:"hole"`
	Strokes *int   `json:"strokes"`
	ToPar   string `json:"toPar"`
}

// Round is one round of a player's scorecard.
type Round struct {
	Round int    `json:"round"`
	Score string `json:"score"`
	Holes []Hole `json:"holes"`
}

// ScorecardReport is a player's round-by-round scorecard, or a help payload
// listing available players when the lookup misses.
type ScorecardReport struct {
	Error            string      `json:"error,omitempty"`
	AvailablePlayers []PlayerRef `json:"availablePlayers,omitempty"`
	Player           *PlayerRef  `json:"player,omitempty"`
	Rounds           []Round     `json:"rounds"`
	FetchedAt        string      `json:"fetchedAt"`
}

// ScheduleEntry is one upcoming event, passed through from the upstream
// calendar without date validation or timezone normalization.
type ScheduleEntry struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ScheduleReport is the truncated tour calendar.
type ScheduleReport struct {
	Events    []ScheduleEntry `json:"events"`
	FetchedAt string          `json:"fetchedAt"`
}

// FullReport aggregates both tours plus a truncated schedule. Either tour
// section is null when that tour has no active event.
type FullReport struct {
	PGA         *TournamentSummary `json:"pga"`
	LPGA        *TournamentSummary `json:"lpga"`
	Schedule    []ScheduleEntry    `json:"schedule"`
	GeneratedAt string             `json:"generatedAt"`
}

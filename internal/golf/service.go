package golf

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fairway-labs/golf-agent/internal/providers"
)

const (
	overviewEntries   = 10
	playerHintLimit   = 10
	reportScheduleMax = 5
)

// Upstream is the slice of the golf API client this service consumes.
type Upstream interface {
	Events(ctx context.Context, tour string) (*providers.EventsResponse, error)
	Scoreboard(ctx context.Context, tour string, eventID string) (*providers.ScoreboardResponse, error)
}

// Service maps upstream tournament and competitor records into the output
// contracts. It holds no state between requests.
type Service struct {
	upstream Upstream
	logger   *logrus.Logger
}

func NewService(upstream Upstream, logger *logrus.Logger) *Service {
	return &Service{
		upstream: upstream,
		logger:   logger,
	}
}

// Overview returns the current primary-tour tournament with its top
// competitors. An empty event list is a normal response, not an error.
func (s *Service) Overview(ctx context.Context) (*OverviewReport, error) {
	resp, err := s.upstream.Events(ctx, providers.TourPGA)
	if err != nil {
		return nil, err
	}

	if len(resp.Events) == 0 {
		return &OverviewReport{
			Message:   "No active tournament this week",
			FetchedAt: timestamp(),
		}, nil
	}

	event := &resp.Events[0]
	return &OverviewReport{
		Tournament:  summarize(event),
		Leaderboard: mapLeaderboard(competitorsOf(event), overviewEntries, countryFromShortName, false),
		FetchedAt:   timestamp(),
	}, nil
}

// Leaderboard returns the full leaderboard of a tour's current event,
// truncated to limit. A limit larger than the field simply returns everyone.
func (s *Service) Leaderboard(ctx context.Context, tour string, limit int) (*LeaderboardReport, error) {
	events, err := s.upstream.Events(ctx, tour)
	if err != nil {
		return nil, err
	}

	if len(events.Events) == 0 {
		return &LeaderboardReport{
			Error:     "No active tournament found",
			FetchedAt: timestamp(),
		}, nil
	}

	eventID := events.Events[0].ID
	board, err := s.upstream.Scoreboard(ctx, tour, eventID)
	if err != nil {
		return nil, err
	}

	event := findEvent(board, eventID)
	if event == nil {
		return &LeaderboardReport{
			Error:     "Tournament data unavailable",
			FetchedAt: timestamp(),
		}, nil
	}

	country := countryFromShortName
	if tour == providers.TourLPGA {
		country = countryFromFlagURL
	}

	return &LeaderboardReport{
		Tour:        tour,
		Tournament:  summarize(event),
		Leaderboard: mapLeaderboard(competitorsOf(event), limit, country, true),
		FetchedAt:   timestamp(),
	}, nil
}

// Scorecard returns a player's round-by-round scorecard from the current
// primary-tour event. An unknown player id yields a help payload listing
// available players, never an error.
func (s *Service) Scorecard(ctx context.Context, playerID string) (*ScorecardReport, error) {
	events, err := s.upstream.Events(ctx, providers.TourPGA)
	if err != nil {
		return nil, err
	}

	if len(events.Events) == 0 {
		return &ScorecardReport{
			Error:     "No active tournament found",
			FetchedAt: timestamp(),
		}, nil
	}

	eventID := events.Events[0].ID
	board, err := s.upstream.Scoreboard(ctx, providers.TourPGA, eventID)
	if err != nil {
		return nil, err
	}

	event := findEvent(board, eventID)
	competitors := competitorsOf(event)

	for i := range competitors {
		competitor := &competitors[i]
		if playerIDOf(competitor) != playerID {
			continue
		}
		return &ScorecardReport{
			Player: &PlayerRef{
				ID:   playerIDOf(competitor),
				Name: playerNameOf(competitor),
			},
			Rounds:    mapRounds(competitor.Linescores),
			FetchedAt: timestamp(),
		}, nil
	}

	hints := make([]PlayerRef, 0, playerHintLimit)
	for i := range competitors {
		if len(hints) == playerHintLimit {
			break
		}
		hints = append(hints, PlayerRef{
			ID:   playerIDOf(&competitors[i]),
			Name: playerNameOf(&competitors[i]),
		})
	}

	return &ScorecardReport{
		Error:            fmt.Sprintf("Player %s not found in current tournament", playerID),
		AvailablePlayers: hints,
		FetchedAt:        timestamp(),
	}, nil
}

// Schedule returns the upcoming primary-tour calendar truncated to limit.
// Dates pass through exactly as the upstream provides them.
func (s *Service) Schedule(ctx context.Context, limit int) (*ScheduleReport, error) {
	board, err := s.upstream.Scoreboard(ctx, providers.TourPGA, "")
	if err != nil {
		return nil, err
	}

	return &ScheduleReport{
		Events:    mapCalendar(board, limit),
		FetchedAt: timestamp(),
	}, nil
}

// FullReport composes both tours and a truncated schedule from three
// concurrent upstream calls. Any one call failing fails the whole report;
// there is no partial-result fallback.
func (s *Service) FullReport(ctx context.Context) (*FullReport, error) {
	var (
		wg         sync.WaitGroup
		pgaEvents  *providers.EventsResponse
		lpgaEvents *providers.EventsResponse
		board      *providers.ScoreboardResponse
	)
	errs := make([]error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		pgaEvents, errs[0] = s.upstream.Events(ctx, providers.TourPGA)
	}()
	go func() {
		defer wg.Done()
		lpgaEvents, errs[1] = s.upstream.Events(ctx, providers.TourLPGA)
	}()
	go func() {
		defer wg.Done()
		board, errs[2] = s.upstream.Scoreboard(ctx, providers.TourPGA, "")
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	report := &FullReport{
		Schedule:    mapCalendar(board, reportScheduleMax),
		GeneratedAt: timestamp(),
	}
	if len(pgaEvents.Events) > 0 {
		report.PGA = summarize(&pgaEvents.Events[0])
	}
	if len(lpgaEvents.Events) > 0 {
		report.LPGA = summarize(&lpgaEvents.Events[0])
	}
	return report, nil
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func summarize(event *providers.Event) *TournamentSummary {
	summary := &TournamentSummary{
		ID:     event.ID,
		Name:   event.Name,
		Status: "Unknown",
		Round:  1,
		Date:   notAvailable,
	}
	if event.Status != nil {
		if event.Status.Type != nil && event.Status.Type.Description != nil {
			summary.Status = *event.Status.Type.Description
		}
		if event.Status.Period != nil {
			summary.Round = *event.Status.Period
		}
	}
	if event.Date != nil {
		summary.Date = *event.Date
	}
	return summary
}

func competitorsOf(event *providers.Event) []providers.Competitor {
	if event == nil || len(event.Competitions) == 0 {
		return nil
	}
	return event.Competitions[0].Competitors
}

func findEvent(board *providers.ScoreboardResponse, eventID string) *providers.Event {
	for i := range board.Events {
		if board.Events[i].ID == eventID {
			return &board.Events[i]
		}
	}
	if len(board.Events) > 0 {
		return &board.Events[0]
	}
	return nil
}

func playerIDOf(competitor *providers.Competitor) string {
	if competitor.Athlete != nil && competitor.Athlete.ID != "" {
		return competitor.Athlete.ID
	}
	return competitor.ID
}

func playerNameOf(competitor *providers.Competitor) string {
	if competitor.Athlete != nil && competitor.Athlete.DisplayName != "" {
		return competitor.Athlete.DisplayName
	}
	return "Unknown"
}

func mapLeaderboard(competitors []providers.Competitor, limit int, country func(*providers.Athlete) string, includeThru bool) []LeaderboardEntry {
	if limit > len(competitors) {
		limit = len(competitors)
	}
	entries := make([]LeaderboardEntry, 0, limit)
	for i := 0; i < limit; i++ {
		competitor := &competitors[i]
		entry := LeaderboardEntry{
			Position: i + 1,
			PlayerID: playerIDOf(competitor),
			Name:     playerNameOf(competitor),
			Country:  country(competitor.Athlete),
			Score:    scoreOf(competitor),
		}
		if includeThru {
			entry.Thru = thruOf(competitor)
		}
		entries = append(entries, entry)
	}
	return entries
}

func scoreOf(competitor *providers.Competitor) string {
	if competitor.Score == nil || competitor.Score.String() == "" {
		return notAvailable
	}
	return competitor.Score.String()
}

// thruOf defaults to "F" when the upstream omits holes-completed, matching
// the convention that a missing thru means the round is finished.
func thruOf(competitor *providers.Competitor) string {
	if competitor.Status == nil || competitor.Status.Thru == nil {
		return "F"
	}
	return strconv.Itoa(*competitor.Status.Thru)
}

func mapRounds(linescores []providers.RoundLinescore) []Round {
	rounds := make([]Round, 0, len(linescores))
	for i, line := range linescores {
		round := Round{
			Round: i + 1,
			Score: notAvailable,
			Holes: make([]Hole, 0, len(line.Linescores)),
		}
		if line.Period != nil {
			round.Round = *line.Period
		}
		if line.DisplayValue != nil && *line.DisplayValue != "" {
			round.Score = *line.DisplayValue
		}
		for j, holeLine := range line.Linescores {
			hole := Hole{
				Hole:  j + 1,
				ToPar: notAvailable,
			}
			if holeLine.Period != nil {
				hole.Hole = *holeLine.Period
			}
			if holeLine.Value != nil {
				strokes := int(*holeLine.Value)
				hole.Strokes = &strokes
			}
			if holeLine.ScoreType != nil && holeLine.ScoreType.DisplayName != nil {
				hole.ToPar = *holeLine.ScoreType.DisplayName
			}
			round.Holes = append(round.Holes, hole)
		}
		rounds = append(rounds, round)
	}
	return rounds
}

func mapCalendar(board *providers.ScoreboardResponse, limit int) []ScheduleEntry {
	var calendar []providers.CalendarEntry
	if len(board.Leagues) > 0 {
		calendar = board.Leagues[0].Calendar
	}
	if limit > len(calendar) {
		limit = len(calendar)
	}
	entries := make([]ScheduleEntry, 0, limit)
	for i := 0; i < limit; i++ {
		item := calendar[i]
		entry := ScheduleEntry{
			ID:        notAvailable,
			Label:     notAvailable,
			StartDate: notAvailable,
			EndDate:   notAvailable,
		}
		if item.Event != nil && item.Event.ID != "" {
			entry.ID = item.Event.ID
		}
		if item.Label != nil {
			entry.Label = *item.Label
		}
		if item.StartDate != nil {
			entry.StartDate = *item.StartDate
		}
		if item.EndDate != nil {
			entry.EndDate = *item.EndDate
		}
		entries = append(entries, entry)
	}
	return entries
}

package providers

import (
	"bytes"
	"encoding/json"
)

// Upstream payloads are loosely typed JSON; every optional field is a pointer
// so that missing data decodes to nil instead of a zero value that looks real.

// FlexString decodes either a JSON string or a JSON number into a string.
// The upstream serializes scores sometimes as "E"/"-12" and sometimes as raw
// numbers depending on event state.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f *FlexString) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// EventsResponse is the `/{tour}/events` payload.
type EventsResponse struct {
	Events []Event `json:"events"`
}

// ScoreboardResponse is the `/{tour}/scoreboard` payload. The calendar rides
// along under leagues.
type ScoreboardResponse struct {
	Events  []Event  `json:"events"`
	Leagues []League `json:"leagues"`
}

type League struct {
	Calendar []CalendarEntry `json:"calendar"`
}

type CalendarEntry struct {
	Label     *string   `json:"label"`
	StartDate *string   `json:"startDate"`
	EndDate   *string   `json:"endDate"`
	Event     *EventRef `json:"event"`
}

type EventRef struct {
	ID string `json:"id"`
}

type Event struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Date         *string       `json:"date"`
	Status       *EventStatus  `json:"status"`
	Competitions []Competition `json:"competitions"`
}

type EventStatus struct {
	Period *int        `json:"period"`
	Type   *StatusType `json:"type"`
}

type StatusType struct {
	State       *string `json:"state"`
	Description *string `json:"description"`
	Detail      *string `json:"detail"`
}

type Competition struct {
	Competitors []Competitor `json:"competitors"`
}

type Competitor struct {
	ID         string            `json:"id"`
	Athlete    *Athlete          `json:"athlete"`
	Score      *FlexString       `json:"score"`
	Status     *CompetitorStatus `json:"status"`
	Linescores []RoundLinescore  `json:"linescores"`
}

type Athlete struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	ShortName   *string `json:"shortName"`
	Flag        *Flag   `json:"flag"`
}

type Flag struct {
	Href *string `json:"href"`
	Alt  *string `json:"alt"`
}

type CompetitorStatus struct {
	Thru   *int        `json:"thru"`
	Period *int        `json:"period"`
	Type   *StatusType `json:"type"`
}

// RoundLinescore is one round of a competitor's scorecard; its nested
// linescores are per-hole entries.
type RoundLinescore struct {
	Period       *int            `json:"period"`
	Value        *float64        `json:"value"`
	DisplayValue *string         `json:"displayValue"`
	Linescores   []HoleLinescore `json:"linescores"`
}

type HoleLinescore struct {
	Period    *int       `json:"period"`
	Value     *float64   `json:"value"`
	ScoreType *ScoreType `json:"scoreType"`
}

type ScoreType struct {
	DisplayName *string `json:"displayName"`
}

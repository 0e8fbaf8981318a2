package golf

import (
	"regexp"
	"strings"

	"github.com/fairway-labs/golf-agent/internal/providers"
)

const notAvailable = "N/A"

var flagCountryPattern = regexp.MustCompile(`/countries/[^/]+/([A-Za-z]{2,4})\.`)

// countryFromShortName extracts a country token from a dotted short name
// ("USA.Smith" -> "USA"). Used for the primary tour only; the secondary tour
// encodes countries differently (see countryFromFlagURL) and the two
// heuristics are deliberately kept separate.
func countryFromShortName(athlete *providers.Athlete) string {
	if athlete == nil || athlete.ShortName == nil {
		return notAvailable
	}
	token := strings.Split(*athlete.ShortName, ".")[0]
	if token == "" {
		return notAvailable
	}
	return token
}

// countryFromFlagURL extracts a country code embedded in a flag image URL
// ("/countries/500/ENG.png" -> "ENG"). Used for the secondary tour only.
func countryFromFlagURL(athlete *providers.Athlete) string {
	if athlete == nil || athlete.Flag == nil || athlete.Flag.Href == nil {
		return notAvailable
	}
	match := flagCountryPattern.FindStringSubmatch(*athlete.Flag.Href)
	if match == nil {
		return notAvailable
	}
	return match[1]
}

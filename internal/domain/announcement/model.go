package announcement

import (
	"regexp"
	"strings"
	"time"
)

// Regions is the closed set of top-level Korean administrative regions used
// for tagging and filtering, in display order.
var Regions = []string{
	"서울", "인천", "경기", "부산", "대구", "대전", "광주", "울산", "세종",
	"강원", "충북", "충남", "전북", "전남", "경북", "경남", "제주",
}

var regionSet = func() map[string]struct{} {
	out := make(map[string]struct{}, len(Regions))
	for _, region := range Regions {
		out[region] = struct{}{}
	}
	return out
}()

// Announcement is one confirmed match posting. A single raw submission may
// produce several announcements sharing OriginalText and Password.
type Announcement struct {
	ID           string
	TeamName     *string
	HasCourt     bool
	LocationRaw  *string
	RegionTag    *string
	MatchDate    *string
	MatchTime    *string
	MatchType    *string
	Level        *string
	Contact      *string
	Cost         *string
	Note         *string
	OriginalText string
	Password     string
	CreatedAt    time.Time
}

// Candidate is one extracted announcement before human confirmation.
type Candidate struct {
	TeamName    *string
	HasCourt    bool
	LocationRaw *string
	RegionTag   *string
	MatchDate   *string
	MatchTime   *string
	MatchType   *string
	Level       *string
	Contact     *string
	Cost        *string
	Note        *string
}

// Filters narrows a listing query. Zero value means no filtering.
type Filters struct {
	Regions      []string
	HasCourtOnly bool
	Date         string
}

func IsValidRegion(value string) bool {
	_, ok := regionSet[strings.TrimSpace(value)]
	return ok
}

var matchTypeRegex = regexp.MustCompile(`(?i)^\s*(\d+)\s*(?:vs\.?|대|:)\s*(\d+)\s*$`)

// NormalizeMatchType unifies "5vs5", "5 vs 5", "5대5" and "5:5" to "5:5".
// Unrecognized values pass through trimmed.
func NormalizeMatchType(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	groups := matchTypeRegex.FindStringSubmatch(trimmed)
	if groups == nil {
		return trimmed
	}
	return groups[1] + ":" + groups[2]
}

var clockRegex = regexp.MustCompile(`^(\d{1,2})(?:[:시](\d{2})?)?분?$`)

// NormalizeTimeRange unifies "19시~21시", "19:00-21:00" and "20시" to the
// "HH:MM" / "HH:MM~HH:MM" form. Unrecognized values pass through trimmed.
func NormalizeTimeRange(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	separator := ""
	switch {
	case strings.Contains(trimmed, "~"):
		separator = "~"
	case strings.Contains(trimmed, "-"):
		separator = "-"
	}

	if separator == "" {
		if clock, ok := normalizeClock(trimmed); ok {
			return clock
		}
		return trimmed
	}

	parts := strings.SplitN(trimmed, separator, 2)
	start, okStart := normalizeClock(parts[0])
	end, okEnd := normalizeClock(parts[1])
	if !okStart || !okEnd {
		return trimmed
	}
	return start + "~" + end
}

func normalizeClock(value string) (string, bool) {
	groups := clockRegex.FindStringSubmatch(strings.TrimSpace(value))
	if groups == nil {
		return "", false
	}
	hour := groups[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	minute := groups[2]
	if minute == "" {
		minute = "00"
	}
	return hour + ":" + minute, true
}

var calendarDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsCalendarDate reports whether value is a normalized YYYY-MM-DD date.
// Free-text phrases like "2월 중 평일" are kept verbatim and do not match.
func IsCalendarDate(value string) bool {
	return calendarDateRegex.MatchString(strings.TrimSpace(value))
}

var courtConfirmedMarkers = map[string]struct{}{
	"o": {}, "예": {}, "완료": {}, "true": {}, "yes": {}, "있음": {},
}

// CourtConfirmed maps textual court-reservation markers to the boolean the
// record carries. Anything outside the confirmed set, including "미정" and
// absence, means no court.
func CourtConfirmed(value string) bool {
	_, ok := courtConfirmedMarkers[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

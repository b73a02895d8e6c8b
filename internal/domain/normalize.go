package domain

import (
	"strconv"
	"strings"
	"time"
)

// monthAbbrevs is the fixed month table for feed dates. Index+1 is the
// calendar month number.
var monthAbbrevs = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// weekdayAbbrevs are stripped from date and time fields after the marker
// prefix pass, in case the feed scatters them mid-string.
var weekdayAbbrevs = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// endOfDay closes out events with no declared end time.
var endOfDay = clockTime{hour: 23, minute: 59}

// NormalizeRow parses one raw feed row into a canonical Event. It is
// deterministic given the package clock (year inference) and never
// touches the network. Locally recoverable garbage (a malformed hour, a
// stray suffix) degrades to zero values; a date that cannot be parsed at
// all returns a RowParseError and the caller drops just that row.
func NormalizeRow(row RawRow, region Region) (Event, error) {
	date := stripWeekdays(strings.ToLower(row.Date))
	tod := stripWeekdays(strings.ToLower(row.Time))

	// Collapse suffix variants before range splitting: "-am"/"-pm" are
	// spellings of "am"/"pm", and "-late" declares no end time at all.
	tod = strings.ReplaceAll(tod, "-am", "am")
	tod = strings.ReplaceAll(tod, "-pm", "pm")
	tod = strings.ReplaceAll(tod, "-late", "")

	var startClock, endClock clockTime
	hasEnd := false
	if strings.Contains(tod, "-") {
		parts := strings.Split(tod, "-")
		startClock = parseClockTime(parts[0])
		endClock = parseClockTime(parts[1])
		hasEnd = true
	} else {
		startClock = parseClockTime(tod)
	}

	var startDate, endDate calendarDate
	if strings.Contains(date, "-") {
		parts := strings.Split(date, "-")
		var err error
		if startDate, err = parseCalendarDate(parts[0]); err != nil {
			return Event{}, err
		}
		if endDate, err = parseCalendarDate(parts[1]); err != nil {
			return Event{}, err
		}
		if !hasEnd {
			endClock = endOfDay
		}
	} else {
		var err error
		if startDate, err = parseCalendarDate(date); err != nil {
			return Event{}, err
		}
		endDate = startDate
		switch {
		case hasEnd && endClock.before(startClock):
			// An end time earlier than the start on a single stated date
			// means the event runs past midnight.
			endDate = startDate.addDays(1)
		case !hasEnd:
			endClock = endOfDay
		}
	}

	return Event{
		StartTime:  combine(startDate, startClock),
		EndTime:    combine(endDate, endClock),
		Name:       row.Name,
		Genres:     splitGenres(row.Genres),
		Price:      normalizePrice(row.Price),
		AgeMinimum: normalizeAge(row.Age),
		Organizer:  row.Organizer,
		TicketLink: row.TicketLink,
		EventLink:  row.EventLink,
		RegionKey:  region.Key,
	}, nil
}

// stripWeekdays removes weekday markers from an already-lowercased field:
// first any "xxx: " prefix pattern anywhere in the string, then the seven
// weekday abbreviations wherever they still appear.
func stripWeekdays(s string) string {
	s = removeDayMarker(s)
	for _, day := range weekdayAbbrevs {
		s = strings.ReplaceAll(s, day, "")
	}
	return s
}

// removeDayMarker drops every three-letter-colon-space sequence, the
// feed's "Fri: " style marker.
func removeDayMarker(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if i+5 <= len(s) && isLetter(s[i]) && isLetter(s[i+1]) && isLetter(s[i+2]) && s[i+3] == ':' && s[i+4] == ' ' {
			i += 5
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}

// clockTime is a wall-clock time of day. Hour may exceed 23 when the feed
// says something like "13pm"; time.Date normalizes the overflow.
type clockTime struct {
	hour   int
	minute int
}

func (t clockTime) before(u clockTime) bool {
	if t.hour != u.hour {
		return t.hour < u.hour
	}
	return t.minute < u.minute
}

// parseClockTime parses one time token like "9pm", "10:30pm", or "22:00".
// Malformed numeric text degrades to zero rather than failing the row.
func parseClockTime(s string) clockTime {
	s = strings.TrimSpace(s)

	meridiem := ""
	if strings.Contains(s, "am") || strings.Contains(s, "pm") {
		meridiem = s[len(s)-2:]
		s = s[:len(s)-2]
	}

	var hour, minute int
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		hour = twoDigitNumber(parts[0])
		minute = twoDigitNumber(parts[1])
	} else {
		if len(s) > 2 {
			s = s[:2]
		}
		hour = twoDigitNumber(s)
	}

	if meridiem == "pm" && hour != 12 {
		hour += 12
	} else if meridiem == "am" && hour == 12 {
		hour = 0
	}
	return clockTime{hour: hour, minute: minute}
}

// twoDigitNumber strips everything but digits, keeps at most the first
// two, and parses them. Anything unparseable is 0.
func twoDigitNumber(s string) int {
	var digits strings.Builder
	for i := 0; i < len(s) && digits.Len() < 2; i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits.WriteByte(s[i])
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

type calendarDate struct {
	year  int
	month time.Month
	day   int
}

func (d calendarDate) addDays(n int) calendarDate {
	t := time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return calendarDate{year: t.Year(), month: t.Month(), day: t.Day()}
}

// parseCalendarDate parses a "<month-abbrev> <day>" token. The feed never
// states a year: a month strictly before the current one is assumed to be
// next year, the current month and later stay in the current year.
func parseCalendarDate(s string) (calendarDate, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) < 2 {
		return calendarDate{}, &RowParseError{Field: "date", Reason: "expected month and day in " + strconv.Quote(s)}
	}

	monthStr := strings.ReplaceAll(fields[0], ",", "")
	month := 0
	for i, abbrev := range monthAbbrevs {
		if monthStr == abbrev {
			month = i + 1
			break
		}
	}
	if month == 0 {
		return calendarDate{}, &RowParseError{Field: "date", Reason: "unrecognized month " + strconv.Quote(monthStr)}
	}

	day, err := strconv.Atoi(strings.ReplaceAll(fields[1], ",", ""))
	if err != nil {
		return calendarDate{}, &RowParseError{Field: "date", Reason: "bad day " + strconv.Quote(fields[1])}
	}

	now := clock.Now()
	year := now.Year()
	if month < int(now.Month()) {
		year++
	}
	return calendarDate{year: year, month: time.Month(month), day: day}, nil
}

// combine builds the wall-clock timestamp. The UTC marker zone is a
// carrier only; see the package doc.
func combine(d calendarDate, t clockTime) time.Time {
	return time.Date(d.year, d.month, d.day, t.hour, t.minute, 0, 0, time.UTC)
}

// splitGenres splits the raw genre field on commas, trimming entries and
// discarding empty ones. Order is preserved and duplicates survive.
func splitGenres(raw string) []string {
	var genres []string
	for _, g := range strings.Split(raw, ",") {
		g = strings.TrimSpace(g)
		if g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// normalizeAge maps the free-text age field onto {0, 18, 21}. A blank
// field and unmarked text both mean all ages.
func normalizeAge(raw string) int {
	age := strings.TrimSpace(raw)
	switch {
	case strings.Contains(age, "21"):
		return 21
	case strings.Contains(age, "18"):
		return 18
	default:
		return 0
	}
}

// normalizePrice turns a blank-after-trim price into absent, never an
// empty string.
func normalizePrice(raw string) *string {
	p := strings.TrimSpace(raw)
	if p == "" {
		return nil
	}
	return &p
}

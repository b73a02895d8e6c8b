package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRegion = Region{Key: "BayArea", Name: "Northern California", Timezone: "America/Los_Angeles"}

// freezeClock pins the package clock so year inference is deterministic.
func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })
}

func TestNormalizeRow_Timestamps(t *testing.T) {
	freezeClock(t, time.Date(2024, time.April, 26, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name      string
		date      string
		tod       string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			"single date with start time only",
			"Jun 6", "9pm",
			time.Date(2024, 6, 6, 21, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 6, 23, 59, 0, 0, time.UTC),
		},
		{
			"end time past midnight rolls to next day",
			"Jun 6", "11pm-2am",
			time.Date(2024, 6, 6, 23, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 7, 2, 0, 0, 0, time.UTC),
		},
		{
			"end time same evening stays same day",
			"Jun 6", "7pm-11pm",
			time.Date(2024, 6, 6, 19, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 6, 23, 0, 0, 0, time.UTC),
		},
		{
			"date range without end time",
			"Aug 29-Aug 31", "10pm",
			time.Date(2024, 8, 29, 22, 0, 0, 0, time.UTC),
			time.Date(2024, 8, 31, 23, 59, 0, 0, time.UTC),
		},
		{
			"date range with time range",
			"Aug 29-Aug 31", "10pm-4am",
			time.Date(2024, 8, 29, 22, 0, 0, 0, time.UTC),
			time.Date(2024, 8, 31, 4, 0, 0, 0, time.UTC),
		},
		{
			"weekday prefix stripped",
			"Fri: Jun 6", "Fri: 9:30pm",
			time.Date(2024, 6, 6, 21, 30, 0, 0, time.UTC),
			time.Date(2024, 6, 6, 23, 59, 0, 0, time.UTC),
		},
		{
			"stray weekday abbreviation stripped",
			"sat Jun 6", "9pm",
			time.Date(2024, 6, 6, 21, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 6, 23, 59, 0, 0, time.UTC),
		},
		{
			"late suffix means no declared end",
			"Jun 6", "10pm-late",
			time.Date(2024, 6, 6, 22, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 6, 23, 59, 0, 0, time.UTC),
		},
		{
			"dash am suffix collapses",
			"Jun 6", "10-pm",
			time.Date(2024, 6, 6, 22, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 6, 23, 59, 0, 0, time.UTC),
		},
		{
			"noon and midnight",
			"Jun 6", "12pm-12am",
			time.Date(2024, 6, 6, 12, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			"unparseable time degrades to midnight",
			"Jun 6", "???",
			time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 6, 23, 59, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := NormalizeRow(RawRow{Date: tt.date, Time: tt.tod}, testRegion)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, event.StartTime)
			assert.Equal(t, tt.wantEnd, event.EndTime)
			assert.Equal(t, testRegion.Key, event.RegionKey)
		})
	}
}

func TestNormalizeRow_StartNeverAfterEnd(t *testing.T) {
	freezeClock(t, time.Date(2024, time.April, 26, 12, 0, 0, 0, time.UTC))

	rows := []RawRow{
		{Date: "Jun 6", Time: "9pm"},
		{Date: "Jun 6", Time: "11pm-2am"},
		{Date: "Jun 6", Time: "8pm-11:30pm"},
		{Date: "Jul 1-Jul 4", Time: ""},
		{Date: "Dec 31", Time: "10pm-late"},
	}
	for _, row := range rows {
		event, err := NormalizeRow(row, testRegion)
		require.NoError(t, err)
		assert.False(t, event.StartTime.After(event.EndTime),
			"start %v after end %v for date=%q time=%q", event.StartTime, event.EndTime, row.Date, row.Time)
	}
}

func TestNormalizeRow_YearInference(t *testing.T) {
	// Frozen in April: months already past belong to next year, the
	// current month and later stay in this year.
	freezeClock(t, time.Date(2024, time.April, 26, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		date     string
		wantYear int
	}{
		{"earlier month infers next year", "Mar 5", 2025},
		{"current month stays in current year", "Apr 10", 2024},
		{"later month stays in current year", "Jun 6", 2024},
		{"december stays in current year", "Dec 31", 2024},
		{"january infers next year", "Jan 2", 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := NormalizeRow(RawRow{Date: tt.date, Time: "9pm"}, testRegion)
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, event.StartTime.Year())
		})
	}
}

func TestNormalizeRow_BadDateFailsRow(t *testing.T) {
	freezeClock(t, time.Date(2024, time.April, 26, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name string
		date string
	}{
		{"unrecognized month", "Foo 6"},
		{"missing day", "Jun"},
		{"empty date", ""},
		{"day not a number", "Jun sixth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeRow(RawRow{Date: tt.date, Time: "9pm"}, testRegion)
			require.Error(t, err)
			var parseErr *RowParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestNormalizeRow_Fields(t *testing.T) {
	freezeClock(t, time.Date(2024, time.April, 26, 12, 0, 0, 0, time.UTC))

	row := RawRow{
		Date:       "Jun 6",
		Name:       "Warehouse Night",
		Genres:     "Techno, House,  ",
		Time:       "10pm",
		Price:      " $15 ",
		Age:        "21+",
		Organizer:  "Collective",
		TicketLink: "https://tickets.example/1",
		EventLink:  "https://events.example/1",
	}

	event, err := NormalizeRow(row, testRegion)
	require.NoError(t, err)

	assert.Equal(t, "Warehouse Night", event.Name)
	assert.Equal(t, []string{"Techno", "House"}, event.Genres)
	require.NotNil(t, event.Price)
	assert.Equal(t, "$15", *event.Price)
	assert.Equal(t, 21, event.AgeMinimum)
	assert.Equal(t, "Collective", event.Organizer)
	assert.Equal(t, "https://tickets.example/1", event.TicketLink)
	assert.Equal(t, "https://events.example/1", event.EventLink)
}

func TestNormalizeRow_BlankPriceIsAbsent(t *testing.T) {
	freezeClock(t, time.Date(2024, time.April, 26, 12, 0, 0, 0, time.UTC))

	event, err := NormalizeRow(RawRow{Date: "Jun 6", Time: "9pm", Price: "   "}, testRegion)
	require.NoError(t, err)
	assert.Nil(t, event.Price)
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  clockTime
	}{
		{"evening hour", "9pm", clockTime{21, 0}},
		{"evening with minutes", "9:30pm", clockTime{21, 30}},
		{"morning hour", "7am", clockTime{7, 0}},
		{"noon", "12pm", clockTime{12, 0}},
		{"midnight", "12am", clockTime{0, 0}},
		{"24 hour with colon", "22:15", clockTime{22, 15}},
		{"leading space", " 10pm", clockTime{22, 0}},
		{"garbage", "???", clockTime{0, 0}},
		{"empty", "", clockTime{0, 0}},
		{"unparseable hour with pm marker", "ca. 9pm", clockTime{12, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseClockTime(tt.input))
		})
	}
}

func TestSplitGenres(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"trailing empty entry discarded", "Techno, House,  ", []string{"Techno", "House"}},
		{"single genre", "Drum & Bass", []string{"Drum & Bass"}},
		{"duplicates survive", "House, House", []string{"House", "House"}},
		{"empty field", "", nil},
		{"only commas", ", ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitGenres(tt.input))
		})
	}
}

func TestNormalizeAge(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"twenty one plus", "21+", 21},
		{"eighteen plus", "18+", 18},
		{"all ages text", "All Ages", 0},
		{"blank", "", 0},
		{"twenty one buried in text", "21+ w/ ID", 21},
		{"eighteen or twenty one prefers twenty one", "18+/21+", 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeAge(tt.input))
		})
	}
}

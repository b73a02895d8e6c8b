package domain

import "time"

// RawRow is one feed record exactly as delivered: ten string fields with
// no validation guarantees. Any field may be empty or malformed.
type RawRow struct {
	Date       string
	Name       string
	Genres     string
	Location   string
	Time       string
	Price      string
	Age        string
	Organizer  string
	TicketLink string
	EventLink  string
}

// Location is a resolved venue position. State is always a full region or
// state name, never an abbreviation; it falls back to the owning region's
// display name when the venue string carries no location. Lat and Lon are
// nil when gazetteer lookup fails.
type Location struct {
	Venue string   `json:"venue"`
	City  string   `json:"city"`
	State string   `json:"state"`
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
}

// Event is the canonical, normalized form of one feed row.
type Event struct {
	// StartTime and EndTime are local wall-clock values in the owning
	// region's timezone (see the package doc); StartTime <= EndTime
	// except where upstream data explicitly contradicts it.
	StartTime time.Time `json:"timestamp_start"`
	EndTime   time.Time `json:"timestamp_end"`

	Name string `json:"name"`
	// Genres is trimmed and non-empty, in feed order. Duplicates survive
	// here; only aggregation counts them.
	Genres   []string `json:"genres"`
	Location Location `json:"location"`
	// Price is nil when the feed field is blank after trimming.
	Price *string `json:"price"`
	// AgeMinimum is the normalized admission age: 0, 18, or 21.
	AgeMinimum int    `json:"age"`
	Organizer  string `json:"organizer"`
	TicketLink string `json:"ticket_link"`
	EventLink  string `json:"event_link"`

	// RegionKey names the owning Region.
	RegionKey string `json:"region"`
}

// Snapshot is the unit of publication: the complete queryable result of
// one refresh cycle. A Snapshot is immutable once published; refresh
// builds a brand-new value and swaps the current reference atomically.
type Snapshot struct {
	EventsByRegion map[string][]Event        `json:"events_by_region"`
	GenreCounts    map[string]int            `json:"genre_counts"`
	CityCounts     map[string]map[string]int `json:"city_counts"`
	GeneratedAt    time.Time                 `json:"generated_at"`
}

// EmptySnapshot returns a snapshot with all tables allocated, including
// the synthetic "all" city table, so readers never see nil maps.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		EventsByRegion: map[string][]Event{},
		GenreCounts:    map[string]int{},
		CityCounts:     map[string]map[string]int{"all": {}},
	}
}

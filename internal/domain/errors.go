package domain

import "fmt"

// The pipeline degrades gracefully: every error kind below is scoped to a
// region, a row, or a side effect, and none of them abort a refresh cycle.

// FetchError reports a failed feed fetch for one region. The scheduler
// responds by retaining the region's previous event list; the next cycle
// is the retry mechanism.
type FetchError struct {
	Region string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch region %s: %v", e.Region, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// RowParseError reports a single feed row whose date or time grammar
// could not be parsed at all. The row is dropped; the feed survives.
type RowParseError struct {
	Field  string
	Reason string
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("parse row %s: %s", e.Field, e.Reason)
}

// LocationResolutionError reports a venue string whose state could not be
// resolved. The event survives with an unresolved state and nil
// coordinates.
type LocationResolutionError struct {
	Raw    string
	Abbrev string
}

func (e *LocationResolutionError) Error() string {
	return fmt.Sprintf("resolve location %q: unknown state abbreviation %q", e.Raw, e.Abbrev)
}

// PersistenceError reports a failed snapshot write. Publication of the
// in-memory snapshot is never blocked by it.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist snapshot to %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

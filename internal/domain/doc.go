// Package domain models electronic music event listings published as
// per-region CSV feeds.
//
// # Data Source
//
// Listings come from 19hz.info, which publishes one CSV file per metro
// region (e.g. events_BayArea.csv). Each row has ten columns: date, event
// name, genres, venue/location, time, price, minimum age, organizer,
// ticket link, and event link. The files are hand-maintained and follow a
// loose, inconsistent grammar rather than a machine format.
//
// # Feed Conventions
//
// Date column:
//
//	"<month-abbrev> <day>" for a single day, e.g. "Jun 6".
//	"<start>-<end>" for multi-day events, e.g. "Aug 29-Aug 31".
//	Often prefixed with a weekday marker ("Fri: Jun 6") and sometimes
//	littered with stray weekday abbreviations. No year is ever given;
//	it is inferred relative to the current month (see [NormalizeRow]).
//
// Time column:
//
//	12-hour clock with optional minutes: "9pm", "9:30pm".
//	"<start>-<end>" for a declared end time: "10pm-2am". An end time
//	earlier than the start time means the event runs past midnight.
//	Suffix variants "-am"/"-pm" collapse to "am"/"pm"; a "-late" suffix
//	means no declared end and is dropped. Events without a declared end
//	are closed out at 23:59:00 on their end date.
//
// Location column:
//
//	"<venue> (<city>[, <state-abbrev>])", e.g.
//	"The Independent (San Francisco, CA)". With two commas the first
//	parenthetical segment is a secondary locality and is discarded.
//	Without parentheses the whole string is the venue and the region's
//	display name stands in for the state.
//
// Age column:
//
//	Free text. Any text containing "21" means 21+, containing "18" means
//	18+, anything else (including blank) is all ages.
//
// Timestamps are local wall-clock values in the owning region's declared
// IANA timezone. They are never converted to UTC; the time.Time values
// carry a UTC marker zone purely so equal wall clocks compare equal.
package domain

package domain

import "strings"

// Gazetteer resolves a (city, full state/admin name) pair to coordinates.
// Implementations are pure lookups loaded once at startup.
type Gazetteer interface {
	Lookup(city, admin string) (lat, lon float64, ok bool)
}

// stateNames expands US state/territory and Canadian province
// abbreviations found in feed location strings.
var stateNames = map[string]string{
	"AK": "Alaska", "AL": "Alabama", "AR": "Arkansas", "AS": "American Samoa",
	"AZ": "Arizona", "CA": "California", "CO": "Colorado", "CT": "Connecticut",
	"DC": "District of Columbia", "DE": "Delaware", "FL": "Florida", "GA": "Georgia",
	"GU": "Guam", "HI": "Hawaii", "IA": "Iowa", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "KS": "Kansas", "KY": "Kentucky",
	"LA": "Louisiana", "MA": "Massachusetts", "MD": "Maryland", "ME": "Maine",
	"MI": "Michigan", "MN": "Minnesota", "MO": "Missouri", "MP": "Northern Mariana Islands",
	"MS": "Mississippi", "MT": "Montana", "NA": "National", "NC": "North Carolina",
	"ND": "North Dakota", "NE": "Nebraska", "NH": "New Hampshire", "NJ": "New Jersey",
	"NM": "New Mexico", "NV": "Nevada", "NY": "New York", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "PR": "Puerto Rico",
	"RI": "Rhode Island", "SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee",
	"TX": "Texas", "UT": "Utah", "VA": "Virginia", "VI": "Virgin Islands",
	"VT": "Vermont", "WA": "Washington", "WI": "Wisconsin", "WV": "West Virginia",
	"WY": "Wyoming",
	"AB": "Alberta", "BC": "British Columbia", "MB": "Manitoba", "NB": "New Brunswick",
	"NL": "Newfoundland and Labrador", "NT": "Northwest Territories", "NS": "Nova Scotia",
	"NU": "Nunavut", "ON": "Ontario", "PE": "Prince Edward Island", "QC": "Quebec",
	"SK": "Saskatchewan", "YT": "Yukon",
}

// ResolveLocation parses a raw venue string into a Location and looks up
// coordinates in the gazetteer. The grammar is
// "<venue> (<city>[, <abbrev>])"; with two commas the first parenthetical
// segment is discarded as a secondary locality. Without parentheses the
// whole string is the venue and the region's display name stands in for
// the state.
//
// Resolution failures are non-fatal: an unknown state abbreviation
// returns the partially resolved Location together with a
// LocationResolutionError, and a gazetteer miss simply leaves Lat/Lon
// nil.
func ResolveLocation(raw string, region Region, gz Gazetteer) (Location, error) {
	loc := Location{State: region.Name}

	open := strings.Index(raw, "(")
	closing := strings.Index(raw, ")")
	if open >= 0 && closing > open {
		loc.Venue = strings.TrimSpace(raw[:open])
		inner := raw[open+1 : closing]

		switch strings.Count(inner, ",") {
		case 1:
			parts := strings.Split(inner, ",")
			loc.City = strings.TrimSpace(parts[0])
			abbrev := strings.TrimSpace(parts[1])
			name, ok := stateNames[abbrev]
			if !ok {
				loc.State = ""
				return loc, &LocationResolutionError{Raw: raw, Abbrev: abbrev}
			}
			loc.State = name
		case 2:
			// First segment is a secondary locality; drop it.
			parts := strings.Split(inner, ",")
			loc.City = strings.TrimSpace(parts[1])
			abbrev := strings.TrimSpace(parts[2])
			name, ok := stateNames[abbrev]
			if !ok {
				loc.State = ""
				return loc, &LocationResolutionError{Raw: raw, Abbrev: abbrev}
			}
			loc.State = name
		default:
			loc.City = inner
		}
	} else {
		loc.Venue = strings.TrimSpace(raw)
	}

	// Regional sub-labels like "Northern California" collapse to the one
	// gazetteer admin name.
	if strings.Contains(loc.State, "California") {
		loc.State = "California"
	}

	if gz != nil {
		if lat, lon, ok := gz.Lookup(loc.City, loc.State); ok {
			loc.Lat = &lat
			loc.Lon = &lon
		}
	}
	return loc, nil
}

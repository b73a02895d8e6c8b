// Package gazetteer loads the static city/state/coordinate reference
// table used for location resolution. The table is read once before the
// first refresh cycle and never mutated.
package gazetteer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Column layout of the simplemaps world-cities CSV:
// city_ascii, lat, lng, country, iso2, iso3, admin_name, capital, population, id.
const (
	colCity  = 0
	colLat   = 1
	colLon   = 2
	colAdmin = 6
)

type coords struct {
	lat float64
	lon float64
}

// Table is an in-memory gazetteer implementing domain.Gazetteer.
// Lookup is a case-insensitive exact match on (city, admin name); when
// the source lists a pair twice, the first row wins.
type Table struct {
	entries map[string]coords
}

// Load reads the gazetteer CSV at path. The header row is skipped; rows
// too short or with unparseable coordinates are dropped and counted.
func Load(path string, logger *slog.Logger) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gazetteer: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	t := &Table{entries: make(map[string]coords)}
	skipped := 0
	header := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read gazetteer: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(rec) <= colAdmin {
			skipped++
			continue
		}
		lat, errLat := strconv.ParseFloat(rec[colLat], 64)
		lon, errLon := strconv.ParseFloat(rec[colLon], 64)
		if errLat != nil || errLon != nil {
			skipped++
			continue
		}
		k := key(rec[colCity], rec[colAdmin])
		if _, ok := t.entries[k]; !ok {
			t.entries[k] = coords{lat: lat, lon: lon}
		}
	}

	logger.Info("gazetteer loaded", "path", path, "entries", len(t.entries), "skipped", skipped)
	return t, nil
}

// Lookup resolves a (city, admin name) pair to coordinates.
func (t *Table) Lookup(city, admin string) (float64, float64, bool) {
	c, ok := t.entries[key(city, admin)]
	if !ok {
		return 0, 0, false
	}
	return c.lat, c.lon, true
}

// Len reports the number of loaded entries.
func (t *Table) Len() int {
	return len(t.entries)
}

func key(city, admin string) string {
	return strings.ToLower(city) + "|" + strings.ToLower(admin)
}

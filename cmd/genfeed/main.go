// Command genfeed writes deterministic sample feed CSVs, one per region,
// in the upstream 10-column layout. Serve the output directory with any
// static file server and point FEED_BASE_URL at it for local runs.
//
// Usage:
//
//	go run ./cmd/genfeed -out testdata/feeds
//	go run ./cmd/genfeed -out testdata/feeds -regions BayArea,LosAngeles
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gigwatch/event-listings-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory for events_<Region>.csv files")
	regionList := flag.String("regions", "", "comma-separated region keys (default: all built-in regions)")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	regions, err := selectRegions(*regionList)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, region := range regions {
		path := filepath.Join(*out, "events_"+region.Key+".csv")
		if err := writeFeed(path, region); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Printf("%s: %d rows", path, len(sampleRows(region)))
	}
	return nil
}

func selectRegions(list string) ([]domain.Region, error) {
	all := domain.DefaultRegions()
	if list == "" {
		return all, nil
	}

	byKey := make(map[string]domain.Region, len(all))
	for _, r := range all {
		byKey[r.Key] = r
	}

	var regions []domain.Region
	for _, key := range strings.Split(list, ",") {
		key = strings.TrimSpace(key)
		r, ok := byKey[key]
		if !ok {
			return nil, fmt.Errorf("unknown region key %q", key)
		}
		regions = append(regions, r)
	}
	return regions, nil
}

func writeFeed(path string, region domain.Region) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range sampleRows(region) {
		record := []string{
			row.Date, row.Name, row.Genres, row.Location, row.Time,
			row.Price, row.Age, row.Organizer, row.TicketLink, row.EventLink,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// sampleRows covers the feed grammar's common shapes: weekday markers,
// am/pm ranges, midnight rollover, date ranges, missing end times, and
// the parenthesized location variants.
func sampleRows(region domain.Region) []domain.RawRow {
	city := region.Name
	return []domain.RawRow{
		{
			Date:       "Fri: Jun 6",
			Name:       "Warehouse Night feat. Local Selectors",
			Genres:     "Techno, House",
			Location:   "The Foundry (" + city + ", CA)",
			Time:       "9pm-2am",
			Price:      "$15",
			Age:        "21+",
			Organizer:  "Foundry Collective",
			TicketLink: "https://tickets.example.com/warehouse-night",
			EventLink:  "https://events.example.com/warehouse-night",
		},
		{
			Date:      "Sat: Jun 7",
			Name:      "Daybreak Rooftop",
			Genres:    "Disco, Funk",
			Location:  "Sky Lounge (" + city + ")",
			Time:      "2pm-8pm",
			Price:     "Free",
			Age:       "18+",
			Organizer: "Daybreak Crew",
		},
		{
			Date:     "Jun 13 - Jun 15",
			Name:     "Open Air Weekender",
			Genres:   "Trance",
			Location: city,
			Time:     "12pm",
			Price:    "$80",
			Age:      "All ages",
		},
		{
			Date:     "Thu: Jun 19",
			Name:     "Basement Sessions",
			Genres:   "Drum & Bass",
			Location: "Substation (" + city + ", CA)",
			Time:     "10pm-late",
			Age:      "21+",
		},
	}
}

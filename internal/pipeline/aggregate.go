package pipeline

import "github.com/gigwatch/event-listings-service/internal/domain"

// Aggregate folds one cycle's per-region event lists into genre and city
// frequency tables. Genre counts increment once per genre string per
// event with no de-duplication; city counts use the resolved city
// verbatim (the empty string is a countable key) and accumulate both into
// the owning region's table and the synthetic "all" table.
func Aggregate(eventsByRegion map[string][]domain.Event) (map[string]int, map[string]map[string]int) {
	genres := make(map[string]int)
	cities := map[string]map[string]int{"all": {}}

	for key, events := range eventsByRegion {
		cities[key] = map[string]int{}
		for _, event := range events {
			for _, genre := range event.Genres {
				genres[genre]++
			}
			city := event.Location.City
			cities[key][city]++
			cities["all"][city]++
		}
	}
	return genres, cities
}

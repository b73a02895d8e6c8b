package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gigwatch/event-listings-service/internal/domain"
)

func eventWith(city string, genres ...string) domain.Event {
	return domain.Event{
		Genres:   genres,
		Location: domain.Location{City: city},
	}
}

func TestAggregate_SumsGenresAcrossRegions(t *testing.T) {
	genres, _ := Aggregate(map[string][]domain.Event{
		"BayArea": {eventWith("San Francisco", "Techno", "House")},
		"CHI":     {eventWith("Chicago", "House")},
	})

	assert.Equal(t, map[string]int{"Techno": 1, "House": 2}, genres)
}

func TestAggregate_DuplicateGenreCountsTwice(t *testing.T) {
	genres, _ := Aggregate(map[string][]domain.Event{
		"BayArea": {eventWith("Oakland", "House", "House")},
	})

	assert.Equal(t, 2, genres["House"])
}

func TestAggregate_CityCountsPerRegionAndAll(t *testing.T) {
	_, cities := Aggregate(map[string][]domain.Event{
		"BayArea": {
			eventWith("San Francisco", "Techno"),
			eventWith("San Francisco"),
			eventWith("Oakland"),
		},
		"CHI": {eventWith("Chicago")},
	})

	assert.Equal(t, map[string]int{"San Francisco": 2, "Oakland": 1}, cities["BayArea"])
	assert.Equal(t, map[string]int{"Chicago": 1}, cities["CHI"])
	assert.Equal(t, map[string]int{"San Francisco": 2, "Oakland": 1, "Chicago": 1}, cities["all"])
}

func TestAggregate_EmptyCityIsCountable(t *testing.T) {
	_, cities := Aggregate(map[string][]domain.Event{
		"BayArea": {eventWith(""), eventWith("")},
	})

	assert.Equal(t, 2, cities["BayArea"][""])
	assert.Equal(t, 2, cities["all"][""])
}

func TestAggregate_NoEvents(t *testing.T) {
	genres, cities := Aggregate(map[string][]domain.Event{"BayArea": nil})

	assert.Empty(t, genres)
	assert.Empty(t, cities["BayArea"])
	assert.Empty(t, cities["all"])
}

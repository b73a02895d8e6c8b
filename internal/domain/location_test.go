package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGazetteer matches on lowercased (city, admin) pairs.
type stubGazetteer struct {
	entries map[string][2]float64
}

func (g *stubGazetteer) Lookup(city, admin string) (float64, float64, bool) {
	coords, ok := g.entries[strings.ToLower(city)+"|"+strings.ToLower(admin)]
	if !ok {
		return 0, 0, false
	}
	return coords[0], coords[1], true
}

func newStubGazetteer() *stubGazetteer {
	return &stubGazetteer{entries: map[string][2]float64{
		"san francisco|california": {37.7562, -122.443},
		"oakland|california":       {37.7903, -122.2165},
		"brooklyn|new york":        {40.6501, -73.9496},
	}}
}

func TestResolveLocation_VenueWithCityAndState(t *testing.T) {
	loc, err := ResolveLocation("The Independent (San Francisco, CA)", testRegion, newStubGazetteer())
	require.NoError(t, err)

	assert.Equal(t, "The Independent", loc.Venue)
	assert.Equal(t, "San Francisco", loc.City)
	assert.Equal(t, "California", loc.State)
	require.NotNil(t, loc.Lat)
	require.NotNil(t, loc.Lon)
	assert.InDelta(t, 37.7562, *loc.Lat, 0.0001)
	assert.InDelta(t, -122.443, *loc.Lon, 0.0001)
}

func TestResolveLocation_NoParentheses(t *testing.T) {
	loc, err := ResolveLocation("  Secret Warehouse  ", testRegion, newStubGazetteer())
	require.NoError(t, err)

	assert.Equal(t, "Secret Warehouse", loc.Venue)
	assert.Equal(t, "", loc.City)
	// Region display name stands in for the state; the "California"
	// substring collapse applies to it like any other state value.
	assert.Equal(t, "California", loc.State)
	assert.Nil(t, loc.Lat)
	assert.Nil(t, loc.Lon)
}

func TestResolveLocation_NoParenthesesNonCaliforniaRegion(t *testing.T) {
	chicago := Region{Key: "CHI", Name: "Chicago", Timezone: "America/Chicago"}
	loc, err := ResolveLocation("Smartbar", chicago, newStubGazetteer())
	require.NoError(t, err)

	assert.Equal(t, "Smartbar", loc.Venue)
	assert.Equal(t, "Chicago", loc.State)
}

func TestResolveLocation_CityOnlyParenthetical(t *testing.T) {
	loc, err := ResolveLocation("The New Parish (Oakland)", testRegion, newStubGazetteer())
	require.NoError(t, err)

	assert.Equal(t, "The New Parish", loc.Venue)
	assert.Equal(t, "Oakland", loc.City)
	assert.Equal(t, "California", loc.State)
	require.NotNil(t, loc.Lat)
}

func TestResolveLocation_TwoCommasDiscardsFirstSegment(t *testing.T) {
	loc, err := ResolveLocation("Output (Williamsburg, Brooklyn, NY)", testRegion, newStubGazetteer())
	require.NoError(t, err)

	assert.Equal(t, "Output", loc.Venue)
	assert.Equal(t, "Brooklyn", loc.City)
	assert.Equal(t, "New York", loc.State)
	require.NotNil(t, loc.Lat)
	assert.InDelta(t, 40.6501, *loc.Lat, 0.0001)
}

func TestResolveLocation_UnknownAbbreviationIsNonFatal(t *testing.T) {
	loc, err := ResolveLocation("Club Vertigo (Tijuana, MX)", testRegion, newStubGazetteer())
	require.Error(t, err)

	var resErr *LocationResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "MX", resErr.Abbrev)

	// The event still gets the partial resolution.
	assert.Equal(t, "Club Vertigo", loc.Venue)
	assert.Equal(t, "Tijuana", loc.City)
	assert.Equal(t, "", loc.State)
	assert.Nil(t, loc.Lat)
	assert.Nil(t, loc.Lon)
}

func TestResolveLocation_ThreeCommasFallsBackToWholeParenthetical(t *testing.T) {
	loc, err := ResolveLocation("Venue (a, b, c, d)", testRegion, newStubGazetteer())
	require.NoError(t, err)

	assert.Equal(t, "a, b, c, d", loc.City)
	assert.Equal(t, "California", loc.State)
	assert.Nil(t, loc.Lat)
}

func TestResolveLocation_GazetteerMissLeavesCoordinatesNil(t *testing.T) {
	loc, err := ResolveLocation("Somewhere (Fresno, CA)", testRegion, newStubGazetteer())
	require.NoError(t, err)

	assert.Equal(t, "Fresno", loc.City)
	assert.Equal(t, "California", loc.State)
	assert.Nil(t, loc.Lat)
	assert.Nil(t, loc.Lon)
}

func TestResolveLocation_LookupIsCaseInsensitive(t *testing.T) {
	loc, err := ResolveLocation("Venue (SAN FRANCISCO, CA)", testRegion, newStubGazetteer())
	require.NoError(t, err)
	require.NotNil(t, loc.Lat)
}

func TestResolveLocation_NilGazetteer(t *testing.T) {
	loc, err := ResolveLocation("The Independent (San Francisco, CA)", testRegion, nil)
	require.NoError(t, err)
	assert.Nil(t, loc.Lat)
}

package domain

// Region is one upstream feed source: a metro area with its own CSV key
// and local timezone. The region set is static configuration; it is never
// discovered at runtime, and a Region outlives every Event that points
// back at it.
type Region struct {
	// Key is the feed identifier, e.g. "BayArea" in events_BayArea.csv.
	Key string `yaml:"key" json:"key"`
	// Name is the human-facing area label, e.g. "Northern California".
	Name string `yaml:"name" json:"name"`
	// Timezone is the IANA identifier for the region's local wall clock.
	Timezone string `yaml:"timezone" json:"timezone"`
}

// DefaultRegions returns the built-in region table matching the upstream
// feed set. Deployments can override it via a regions file.
func DefaultRegions() []Region {
	return []Region{
		{Key: "BayArea", Name: "Northern California", Timezone: "America/Los_Angeles"},
		{Key: "LosAngeles", Name: "Southern California", Timezone: "America/Los_Angeles"},
		{Key: "Texas", Name: "Texas", Timezone: "America/Chicago"},
		{Key: "Miami", Name: "Florida", Timezone: "America/New_York"},
		{Key: "Atlanta", Name: "Atlanta", Timezone: "America/New_York"},
		{Key: "Seattle", Name: "Seattle", Timezone: "America/Los_Angeles"},
		{Key: "DC", Name: "Washington DC", Timezone: "America/New_York"},
		{Key: "Iowa", Name: "Iowa / Nebraska", Timezone: "America/Chicago"},
		{Key: "CHI", Name: "Chicago", Timezone: "America/Chicago"},
		{Key: "Detroit", Name: "Detroit", Timezone: "America/Detroit"},
		{Key: "Massachusetts", Name: "Massachusetts", Timezone: "America/New_York"},
		{Key: "LasVegas", Name: "Las Vegas", Timezone: "America/Los_Angeles"},
		{Key: "Phoenix", Name: "Phoenix", Timezone: "America/Phoenix"},
		{Key: "PNW", Name: "Portland / Vancouver", Timezone: "America/Los_Angeles"},
	}
}

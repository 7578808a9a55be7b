package models

// CityRecord identifies a city in the QWeather location database. It is
// used both as a search result and as the resolved current location.
// Lat and Lon stay strings, matching the upstream wire format.
type CityRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Adm1 string `json:"adm1"`
	Adm2 string `json:"adm2"`
	Lat  string `json:"lat"`
	Lon  string `json:"lon"`
}

// CitySource records how the current city was determined.
type CitySource string

const (
	CitySourceManual     CitySource = "manual"
	CitySourceGeolocated CitySource = "geolocated"
	CitySourceCached     CitySource = "cached"
	CitySourceDefault    CitySource = "default"
)

// ResolvedCity is the outcome of the location resolution flow. When the
// flow falls back to the default city only Name is populated; callers must
// tolerate that degraded shape.
type ResolvedCity struct {
	CityRecord
	Source CitySource `json:"source"`
}

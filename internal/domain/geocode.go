package domain

import "strings"

type cityCoords struct {
	city string
	pos  LatLng
}

// GeoFallback is the centre of Germany, used for remote and unknown places.
var GeoFallback = LatLng{Lat: 51.1657, Lng: 10.4515}

// ordered: the first city contained in the name wins
var knownCities = []cityCoords{
	{"Solingen", LatLng{51.1652, 7.0671}},
	{"Stuttgart", LatLng{48.7758, 9.1829}},
	{"München", LatLng{48.1351, 11.5820}},
	{"Hamburg", LatLng{53.5511, 9.9937}},
	{"Köln", LatLng{50.9375, 6.9603}},
	{"Coburg", LatLng{50.2612, 10.9627}},
	{"Karlsruhe", LatLng{49.0069, 8.4037}},
	{"Leipzig", LatLng{51.3397, 12.3731}},
	{"Remote", GeoFallback},
}

// Geocode resolves a location name against the static city table.
func Geocode(name string) LatLng {
	lower := strings.ToLower(name)
	for _, c := range knownCities {
		if strings.Contains(lower, strings.ToLower(c.city)) {
			return c.pos
		}
	}
	return GeoFallback
}

// GeocodedLocation builds a Location for name using Geocode.
func GeocodedLocation(name string) Location {
	pos := Geocode(name)
	return Location{Name: name, Lat: pos.Lat, Lng: pos.Lng}
}

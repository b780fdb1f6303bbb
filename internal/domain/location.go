package domain

import "encoding/json"

// LocationParams is the caller-facing input for a Location.
// Pointer fields distinguish "absent" from a zero coordinate.
type LocationParams struct {
	Name *string  `json:"name,omitempty"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

// Immutable geographic point with an optional display name.
// Location is comparable; == compares name, lat and lng.
type Location struct {
	name    string
	hasName bool
	lat     float64
	lng     float64
}

func NewLocation(p LocationParams) (Location, error) {
	if p.Lat == nil || p.Lng == nil {
		return Location{}, NewValidationError("location", "'lat' and 'lng' parameters must be provided")
	}

	loc := Location{lat: *p.Lat, lng: *p.Lng}
	if p.Name != nil {
		loc.name = *p.Name
		loc.hasName = true
	}
	return loc, nil
}

func (l Location) Name() string { return l.name }
func (l Location) HasName() bool { return l.hasName }
func (l Location) Lat() float64 { return l.lat }
func (l Location) Lng() float64 { return l.lng }

type locationJSON struct {
	Name *string `json:"name,omitempty"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

func (l Location) MarshalJSON() ([]byte, error) {
	out := locationJSON{Lat: l.lat, Lng: l.lng}
	if l.hasName {
		name := l.name
		out.Name = &name
	}
	return json.Marshal(out)
}

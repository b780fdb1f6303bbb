package domain

import (
	"encoding/json"
	"fmt"
	"maps"
)

// TimeWindow is one allowed service interval, e.g. {"start":"09:00","end":"10:00"}.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// VisitParams is the caller-facing input for a Visit.
// Attributes the model does not name are carried verbatim in Extra.
type VisitParams struct {
	Location    *LocationParams `json:"location"`
	Start       *string         `json:"start,omitempty"`
	End         *string         `json:"end,omitempty"`
	Duration    *int            `json:"duration,omitempty"`
	Load        any             `json:"load,omitempty"`
	Priority    any             `json:"priority,omitempty"`
	Type        *string         `json:"type,omitempty"`
	TimeWindows []TimeWindow    `json:"time_windows,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	Extra       map[string]any  `json:"-"`
}

var visitKnownKeys = map[string]struct{}{
	"location": {}, "start": {}, "end": {}, "duration": {}, "load": {},
	"priority": {}, "type": {}, "time_windows": {}, "notes": {},
}

func (p *VisitParams) UnmarshalJSON(data []byte) error {
	type plain VisitParams
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k, raw := range all {
		if _, ok := visitKnownKeys[k]; ok {
			continue
		}
		var val any
		if err := json.Unmarshal(raw, &val); err != nil {
			return fmt.Errorf("visit attribute %q: %w", k, err)
		}
		if v.Extra == nil {
			v.Extra = make(map[string]any)
		}
		v.Extra[k] = val
	}

	*p = VisitParams(v)
	return nil
}

// Visit is a delivery or pickup task registered under a caller-supplied id.
type Visit struct {
	id       string
	location Location
	params   VisitParams
}

func NewVisit(id string, p VisitParams) (Visit, error) {
	if p.Location == nil {
		return Visit{}, NewValidationError("location", fmt.Sprintf("visit %q: 'location' parameter must be provided", id))
	}

	loc, err := NewLocation(*p.Location)
	if err != nil {
		return Visit{}, fmt.Errorf("visit %q: %w", id, err)
	}

	p.Location = nil
	p.Extra = maps.Clone(p.Extra)
	p.TimeWindows = append([]TimeWindow(nil), p.TimeWindows...)

	return Visit{id: id, location: loc, params: p}, nil
}

func (v Visit) ID() string { return v.id }
func (v Visit) Location() Location { return v.location }
func (v Visit) Start() (string, bool) { return deref(v.params.Start) }
func (v Visit) End() (string, bool) { return deref(v.params.End) }
func (v Visit) Duration() (int, bool) { return deref(v.params.Duration) }
func (v Visit) Type() (string, bool) { return deref(v.params.Type) }
func (v Visit) Notes() (string, bool) { return deref(v.params.Notes) }
func (v Visit) Load() any { return v.params.Load }
func (v Visit) Priority() any { return v.params.Priority }
func (v Visit) TimeWindows() []TimeWindow {
	return append([]TimeWindow(nil), v.params.TimeWindows...)
}

// Attribute returns an extra attribute supplied at construction.
func (v Visit) Attribute(key string) (any, bool) {
	val, ok := v.params.Extra[key]
	return val, ok
}

func (v Visit) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(v.params.Extra)+8)
	for k, val := range v.params.Extra {
		out[k] = val
	}

	out["location"] = v.location
	setIf(out, "start", v.params.Start)
	setIf(out, "end", v.params.End)
	setIf(out, "duration", v.params.Duration)
	setIf(out, "type", v.params.Type)
	setIf(out, "notes", v.params.Notes)
	if v.params.Load != nil {
		out["load"] = v.params.Load
	}
	if v.params.Priority != nil {
		out["priority"] = v.params.Priority
	}
	if len(v.params.TimeWindows) > 0 {
		out["time_windows"] = v.params.TimeWindows
	}

	return json.Marshal(out)
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

func setIf[T any](m map[string]any, key string, p *T) {
	if p != nil {
		m[key] = *p
	}
}

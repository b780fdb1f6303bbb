package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Solution is a caller-declared ordered list of visits for one vehicle,
// used to seed a fix request.
type Solution struct {
	VehicleID string
	Visits    []string
}

func NewSolution(vehicleID string, visits []string) (Solution, error) {
	if visits == nil {
		return Solution{}, NewValidationError("visits", fmt.Sprintf("solution for %q: 'visits' parameter must be an array", vehicleID))
	}
	return Solution{VehicleID: vehicleID, Visits: slices.Clone(visits)}, nil
}

// SolutionFromJSON builds a Solution from a raw visits value; anything but an
// array of strings is rejected.
func SolutionFromJSON(vehicleID string, raw json.RawMessage) (Solution, error) {
	var visits []string
	if err := json.Unmarshal(raw, &visits); err != nil || visits == nil {
		return Solution{}, NewValidationError("visits", fmt.Sprintf("solution for %q: 'visits' parameter must be an array", vehicleID))
	}
	return NewSolution(vehicleID, visits)
}

// SolutionSet maps vehicle ids to ordered visit ids and serializes in insertion order.
type SolutionSet struct {
	ids    []string
	routes map[string][]string
}

func (s SolutionSet) Len() int { return len(s.ids) }

func (s SolutionSet) IsEmpty() bool { return len(s.ids) == 0 }

func (s SolutionSet) VehicleIDs() []string { return slices.Clone(s.ids) }

func (s SolutionSet) Visits(vehicleID string) ([]string, bool) {
	v, ok := s.routes[vehicleID]
	return slices.Clone(v), ok
}

// Map returns a copy of the set as a plain map.
func (s SolutionSet) Map() map[string][]string {
	out := make(map[string][]string, len(s.routes))
	for k, v := range s.routes {
		out[k] = slices.Clone(v)
	}
	return out
}

func (s SolutionSet) MarshalJSON() ([]byte, error) {
	return marshalOrdered(s.ids, func(id string) any { return s.routes[id] })
}

// ValidSolutions keeps, for each fleet vehicle in order, the first stored
// solution naming it. Vehicles outside the fleet are ignored. The result is
// empty, not an error, when nothing matches.
func ValidSolutions(fleetIDs []string, solutions []Solution) SolutionSet {
	set := SolutionSet{routes: make(map[string][]string)}
	for _, id := range fleetIDs {
		if _, dup := set.routes[id]; dup {
			continue
		}
		i := slices.IndexFunc(solutions, func(s Solution) bool { return s.VehicleID == id })
		if i < 0 {
			continue
		}
		set.ids = append(set.ids, id)
		set.routes[id] = slices.Clone(solutions[i].Visits)
	}
	return set
}

// ValidUnserved filters declared unserved ids down to those still registered
// as visits, preserving input order.
func ValidUnserved(declared []string, isVisit func(id string) bool) []string {
	out := make([]string, 0, len(declared))
	for _, id := range declared {
		if isVisit(id) {
			out = append(out, id)
		}
	}
	return out
}

package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// WayPoint is one stop in a vehicle's resolved route.
type WayPoint struct {
	LocationID   string  `json:"location_id"`
	LocationName string  `json:"location_name,omitempty"`
	ArrivalTime  string  `json:"arrival_time,omitempty"`
	FinishTime   string  `json:"finish_time,omitempty"`
	IdleTime     float64 `json:"idle_time"`
}

// VehicleRoute is the ordered way-point sequence assigned to one vehicle.
type VehicleRoute struct {
	VehicleID string
	WayPoints []WayPoint
}

// UnservedVisit is a visit the service could not fit, with its reason when given.
type UnservedVisit struct {
	VisitID string
	Reason  string
}

// Schedule is a parsed solve or fix response.
// Route order and way-point order follow the response payload.
type Schedule struct {
	Status            string
	Routes            []VehicleRoute
	Unserved          []UnservedVisit
	TotalTravelTime   float64
	TotalIdleTime     float64
	TotalWorkingTime  float64
	TotalDistance     float64
	PolylinePrecision *int
	Polylines         map[string]json.RawMessage
}

// Route returns the way points assigned to vehicleID.
func (s *Schedule) Route(vehicleID string) ([]WayPoint, bool) {
	for _, r := range s.Routes {
		if r.VehicleID == vehicleID {
			return slices.Clone(r.WayPoints), true
		}
	}
	return nil, false
}

func (s *Schedule) VehicleIDs() []string {
	ids := make([]string, 0, len(s.Routes))
	for _, r := range s.Routes {
		ids = append(ids, r.VehicleID)
	}
	return ids
}

func (s *Schedule) NumberOfUnserved() int { return len(s.Unserved) }

// scheduleJSON lists the recognized response members. Anything else,
// including num_unserved, is ignored by the decoder.
type scheduleJSON struct {
	Status            *json.RawMessage           `json:"status"`
	Solution          json.RawMessage            `json:"solution"`
	Unserved          json.RawMessage            `json:"unserved"`
	TotalTravelTime   float64                    `json:"total_travel_time"`
	TotalIdleTime     float64                    `json:"total_idle_time"`
	TotalWorkingTime  float64                    `json:"total_working_time"`
	TotalDistance     float64                    `json:"total_distance"`
	PolylinePrecision *int                       `json:"polyline_precision"`
	PlPrecision       *int                       `json:"pl_precision"`
	Polylines         map[string]json.RawMessage `json:"polylines"`
}

// ParseSchedule decodes a response body into a Schedule. A missing status or a
// solution that is not an object of way-point arrays fails with a DecodeError.
func ParseSchedule(body []byte) (*Schedule, error) {
	var raw scheduleJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}

	if raw.Status == nil {
		return nil, &DecodeError{Field: "status", Err: errors.New("missing")}
	}
	var status string
	if err := json.Unmarshal(*raw.Status, &status); err != nil || status == "" {
		return nil, &DecodeError{Field: "status", Err: errors.New("must be a non-empty string")}
	}

	s := &Schedule{
		Status:           status,
		TotalTravelTime:  raw.TotalTravelTime,
		TotalIdleTime:    raw.TotalIdleTime,
		TotalWorkingTime: raw.TotalWorkingTime,
		TotalDistance:    raw.TotalDistance,
		Polylines:        raw.Polylines,
		Routes:           []VehicleRoute{},
		Unserved:         []UnservedVisit{},
	}

	s.PolylinePrecision = raw.PolylinePrecision
	if s.PolylinePrecision == nil {
		s.PolylinePrecision = raw.PlPrecision
	}

	if !isNull(raw.Solution) {
		routes, err := parseRoutes(raw.Solution)
		if err != nil {
			return nil, &DecodeError{Field: "solution", Err: err}
		}
		s.Routes = routes
	}

	if !isNull(raw.Unserved) {
		unserved, err := parseUnserved(raw.Unserved)
		if err != nil {
			return nil, &DecodeError{Field: "unserved", Err: err}
		}
		s.Unserved = unserved
	}

	return s, nil
}

func parseRoutes(data json.RawMessage) ([]VehicleRoute, error) {
	routes := []VehicleRoute{}
	err := DecodeOrderedObject(data, func(vehicleID string, raw json.RawMessage) error {
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return fmt.Errorf("vehicle %q: %w", vehicleID, err)
		}

		points := make([]WayPoint, 0, len(elems))
		for i, elem := range elems {
			p, err := parseWayPoint(elem)
			if err != nil {
				return fmt.Errorf("vehicle %q way point %d: %w", vehicleID, i, err)
			}
			points = append(points, p)
		}
		routes = append(routes, VehicleRoute{VehicleID: vehicleID, WayPoints: points})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return routes, nil
}

// parseWayPoint requires a JSON object carrying a non-empty location_id.
func parseWayPoint(raw json.RawMessage) (WayPoint, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return WayPoint{}, errors.New("must be an object")
	}
	var p WayPoint
	if err := json.Unmarshal(raw, &p); err != nil {
		return WayPoint{}, err
	}
	if p.LocationID == "" {
		return WayPoint{}, errors.New("location_id is required")
	}
	return p, nil
}

// parseUnserved accepts the object form {"visit_id": "reason"} and the array
// form ["visit_id", ...].
func parseUnserved(data json.RawMessage) ([]UnservedVisit, error) {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			return nil, err
		}
		out := make([]UnservedVisit, 0, len(ids))
		for _, id := range ids {
			out = append(out, UnservedVisit{VisitID: id})
		}
		return out, nil
	}

	out := []UnservedVisit{}
	err := DecodeOrderedObject(data, func(id string, raw json.RawMessage) error {
		var reason string
		if !isNull(raw) {
			if err := json.Unmarshal(raw, &reason); err != nil {
				reason = string(bytes.TrimSpace(raw))
			}
		}
		out = append(out, UnservedVisit{VisitID: id, Reason: reason})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

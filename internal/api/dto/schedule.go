package dto

import (
	"encoding/json"
	"vrp-client/internal/domain"
)

type WayPointResponse struct {
	LocationID   string  `json:"location_id"`
	LocationName string  `json:"location_name,omitempty"`
	ArrivalTime  string  `json:"arrival_time,omitempty"`
	FinishTime   string  `json:"finish_time,omitempty"`
	IdleTime     float64 `json:"idle_time"`
}

type RouteResponse struct {
	VehicleID string             `json:"vehicle_id"`
	WayPoints []WayPointResponse `json:"way_points"`
}

type UnservedResponse struct {
	VisitID string `json:"visit_id"`
	Reason  string `json:"reason,omitempty"`
}

// ScheduleResponse lists routes in the order the routing service returned them.
type ScheduleResponse struct {
	Status            string                     `json:"status"`
	Routes            []RouteResponse            `json:"routes"`
	Unserved          []UnservedResponse         `json:"unserved"`
	NumUnserved       int                        `json:"num_unserved"`
	TotalTravelTime   float64                    `json:"total_travel_time"`
	TotalIdleTime     float64                    `json:"total_idle_time"`
	TotalWorkingTime  float64                    `json:"total_working_time"`
	TotalDistance     float64                    `json:"total_distance"`
	PolylinePrecision *int                       `json:"polyline_precision,omitempty"`
	Polylines         map[string]json.RawMessage `json:"polylines,omitempty"`
}

func NewScheduleResponse(s *domain.Schedule) ScheduleResponse {
	res := ScheduleResponse{
		Status:            s.Status,
		Routes:            make([]RouteResponse, 0, len(s.Routes)),
		Unserved:          make([]UnservedResponse, 0, len(s.Unserved)),
		NumUnserved:       s.NumberOfUnserved(),
		TotalTravelTime:   s.TotalTravelTime,
		TotalIdleTime:     s.TotalIdleTime,
		TotalWorkingTime:  s.TotalWorkingTime,
		TotalDistance:     s.TotalDistance,
		PolylinePrecision: s.PolylinePrecision,
		Polylines:         s.Polylines,
	}

	for _, r := range s.Routes {
		wps := make([]WayPointResponse, 0, len(r.WayPoints))
		for _, wp := range r.WayPoints {
			wps = append(wps, WayPointResponse(wp))
		}
		res.Routes = append(res.Routes, RouteResponse{VehicleID: r.VehicleID, WayPoints: wps})
	}
	for _, u := range s.Unserved {
		res.Unserved = append(res.Unserved, UnservedResponse{VisitID: u.VisitID, Reason: u.Reason})
	}

	return res
}

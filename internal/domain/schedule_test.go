package domain

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestParseScheduleMinimal(t *testing.T) {
	body := `{"status":"success","solution":{"v1":[{"location_id":"o1"}]},"unserved":[],"num_unserved":0}`

	s, err := ParseSchedule([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Status != "success" {
		t.Fatalf("status = %q, want success", s.Status)
	}
	wps, ok := s.Route("v1")
	if !ok || len(wps) != 1 {
		t.Fatalf("route v1 = %v (ok=%v), want one way point", wps, ok)
	}
	if wps[0].LocationID != "o1" || wps[0].IdleTime != 0 {
		t.Fatalf("way point = %+v", wps[0])
	}
	if s.NumberOfUnserved() != 0 {
		t.Fatalf("unserved = %d, want 0", s.NumberOfUnserved())
	}
}

func TestParseSchedulePreservesOrder(t *testing.T) {
	body := `{
		"status": "success",
		"total_travel_time": 31.5,
		"total_idle_time": 12,
		"total_working_time": 120,
		"total_distance": 8042.2,
		"pl_precision": 6,
		"extra": {"ignored": true},
		"solution": {
			"vehicle_b": [
				{"location_id": "depot", "location_name": "800 Kingsway", "arrival_time": "08:00"},
				{"location_id": "order_2", "arrival_time": "09:10", "finish_time": "09:25", "idle_time": 5},
				{"location_id": "order_1", "arrival_time": "09:40", "finish_time": "09:55"}
			],
			"vehicle_a": [
				{"location_id": "depot"}
			]
		},
		"unserved": {"order_9": "cannot be visited within time window", "order_3": null}
	}`

	s, err := ParseSchedule([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := s.VehicleIDs(); !slices.Equal(got, []string{"vehicle_b", "vehicle_a"}) {
		t.Fatalf("vehicle order = %v", got)
	}

	wps, _ := s.Route("vehicle_b")
	var ids []string
	for _, w := range wps {
		ids = append(ids, w.LocationID)
	}
	if !slices.Equal(ids, []string{"depot", "order_2", "order_1"}) {
		t.Fatalf("way point order = %v", ids)
	}
	if wps[1].IdleTime != 5 || wps[1].FinishTime != "09:25" {
		t.Fatalf("way point 2 = %+v", wps[1])
	}

	if s.TotalTravelTime != 31.5 || s.TotalIdleTime != 12 || s.TotalWorkingTime != 120 || s.TotalDistance != 8042.2 {
		t.Fatalf("totals = %+v", s)
	}
	if s.PolylinePrecision == nil || *s.PolylinePrecision != 6 {
		t.Fatalf("polyline precision = %v, want 6", s.PolylinePrecision)
	}

	if s.NumberOfUnserved() != 2 {
		t.Fatalf("unserved = %d, want 2", s.NumberOfUnserved())
	}
	if s.Unserved[0].VisitID != "order_9" || s.Unserved[0].Reason == "" {
		t.Fatalf("unserved[0] = %+v", s.Unserved[0])
	}
}

func TestParseScheduleNullUnserved(t *testing.T) {
	s, err := ParseSchedule([]byte(`{"status":"success","unserved":null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Unserved == nil || len(s.Unserved) != 0 {
		t.Fatalf("unserved = %#v, want empty", s.Unserved)
	}
	if len(s.Routes) != 0 {
		t.Fatalf("routes = %v, want none", s.Routes)
	}
}

func TestParseScheduleStructuralErrors(t *testing.T) {
	cases := map[string]string{
		"not json":                      `{`,
		"missing status":                `{"solution":{}}`,
		"null status":                   `{"status":null}`,
		"numeric status":                `{"status":3}`,
		"solution array":                `{"status":"success","solution":[]}`,
		"route not array":               `{"status":"success","solution":{"v1":{"location_id":"a"}}}`,
		"way point scalar":              `{"status":"success","solution":{"v1":["a"]}}`,
		"way point null":                `{"status":"success","solution":{"v1":[null]}}`,
		"way point without location_id": `{"status":"success","solution":{"v1":[{}]}}`,
		"way point with empty location": `{"status":"success","solution":{"v1":[{"location_id":""}]}}`,
		"top level array":               `[]`,
		"unserved mismatch":             `{"status":"success","unserved":[1]}`,
	}

	for name, body := range cases {
		_, err := ParseSchedule([]byte(body))
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		var de *DecodeError
		if !errors.As(err, &de) || !errors.Is(err, ErrDecode) {
			t.Fatalf("%s: err = %v, want *DecodeError", name, err)
		}
		if strings.HasPrefix(name, "way point") && de.Field != "solution" {
			t.Fatalf("%s: field = %q, want solution", name, de.Field)
		}
	}
}

package domain

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func TestNewSolution(t *testing.T) {
	s, err := NewSolution("123", []string{"order_1", "order_id"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.VehicleID != "123" {
		t.Fatalf("vehicle id = %q, want 123", s.VehicleID)
	}
	if !slices.Equal(s.Visits, []string{"order_1", "order_id"}) {
		t.Fatalf("visits = %v", s.Visits)
	}
}

func TestSolutionRejectsNonSequence(t *testing.T) {
	if _, err := NewSolution("12", nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("nil visits: err = %v, want validation error", err)
	}

	for _, raw := range []string{`"12"`, `12`, `null`, `{"a":1}`, `[1,2]`} {
		if _, err := SolutionFromJSON("12", json.RawMessage(raw)); !errors.Is(err, ErrValidation) {
			t.Fatalf("visits %s: err = %v, want validation error", raw, err)
		}
	}

	s, err := SolutionFromJSON("12", json.RawMessage(`[]`))
	if err != nil {
		t.Fatalf("empty array: unexpected error: %v", err)
	}
	if s.Visits == nil || len(s.Visits) != 0 {
		t.Fatalf("visits = %#v, want empty slice", s.Visits)
	}
}

func TestValidSolutions(t *testing.T) {
	solutions := []Solution{
		{VehicleID: "1", Visits: []string{"a", "b"}},
		{VehicleID: "2", Visits: []string{"d", "e"}},
		{VehicleID: "4", Visits: []string{"f", "g"}},
		{VehicleID: "1", Visits: []string{"z"}},
	}

	set := ValidSolutions([]string{"1", "2", "3"}, solutions)

	if !slices.Equal(set.VehicleIDs(), []string{"1", "2"}) {
		t.Fatalf("vehicle ids = %v, want [1 2]", set.VehicleIDs())
	}
	if v, _ := set.Visits("1"); !slices.Equal(v, []string{"a", "b"}) {
		t.Fatalf("vehicle 1 = %v, want first stored solution [a b]", v)
	}

	b, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"1":["a","b"],"2":["d","e"]}`; got != want {
		t.Fatalf("json = %s, want %s", got, want)
	}
}

func TestValidSolutionsFollowsFleetOrder(t *testing.T) {
	solutions := []Solution{
		{VehicleID: "a", Visits: []string{"x"}},
		{VehicleID: "b", Visits: []string{"y"}},
	}

	set := ValidSolutions([]string{"b", "a"}, solutions)
	b, _ := json.Marshal(set)
	if got, want := string(b), `{"b":["y"],"a":["x"]}`; got != want {
		t.Fatalf("json = %s, want %s", got, want)
	}
}

func TestValidSolutionsEmpty(t *testing.T) {
	set := ValidSolutions([]string{"1"}, []Solution{{VehicleID: "9", Visits: []string{"a"}}})
	if !set.IsEmpty() {
		t.Fatalf("expected empty set, got %v", set.Map())
	}
	b, _ := json.Marshal(set)
	if string(b) != "{}" {
		t.Fatalf("json = %s, want {}", b)
	}
}

func TestValidUnserved(t *testing.T) {
	visits := NewRegistry[string]()
	visits.Set("order_1", "")

	if got := ValidUnserved([]string{"order_2"}, visits.Has); len(got) != 0 {
		t.Fatalf("got %v, want []", got)
	}

	visits.Set("order_2", "")
	got := ValidUnserved([]string{"order_3", "order_2", "order_1"}, visits.Has)
	if !slices.Equal(got, []string{"order_2", "order_1"}) {
		t.Fatalf("got %v, want [order_2 order_1]", got)
	}
}

func TestRegistryKeepsFirstPosition(t *testing.T) {
	r := NewRegistry[int]()
	r.Set("b", 1)
	r.Set("a", 2)
	r.Set("b", 3)

	if !slices.Equal(r.IDs(), []string{"b", "a"}) {
		t.Fatalf("ids = %v, want [b a]", r.IDs())
	}
	b, _ := json.Marshal(r)
	if got, want := string(b), `{"b":3,"a":2}`; got != want {
		t.Fatalf("json = %s, want %s", got, want)
	}
}

package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func kingsway() *LocationParams {
	return &LocationParams{Name: ptr("800 Kingsway"), Lat: ptr(49.2553636), Lng: ptr(-123.0873365)}
}

func TestNewVehicleRequiresStartLocation(t *testing.T) {
	_, err := NewVehicle("vehicle_1", VehicleParams{ShiftStart: ptr("8:00")})
	if err == nil {
		t.Fatal("expected error")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %T, want *ValidationError", err)
	}
	if ve.Field != "start_location" {
		t.Fatalf("field = %q, want start_location", ve.Field)
	}
}

func TestNewVehicleRejectsInvalidEndLocation(t *testing.T) {
	_, err := NewVehicle("vehicle_1", VehicleParams{
		StartLocation: kingsway(),
		EndLocation:   &LocationParams{Lat: ptr(1.0)},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestVehicleMarshalOmitsUnsetFields(t *testing.T) {
	v, err := NewVehicle("vehicle_1", VehicleParams{StartLocation: kingsway()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, key := range []string{"end_location", "shift_start", "shift_end", "capacity"} {
		if strings.Contains(string(b), key) {
			t.Fatalf("json %s should not contain %q", b, key)
		}
	}
	if !strings.Contains(string(b), `"start_location":{"name":"800 Kingsway"`) {
		t.Fatalf("json %s missing start_location", b)
	}
}

func TestVehicleMarshalFull(t *testing.T) {
	v, err := NewVehicle("vehicle_1", VehicleParams{
		StartLocation: kingsway(),
		EndLocation:   kingsway(),
		ShiftStart:    ptr("8:00"),
		ShiftEnd:      ptr("12:00"),
		Capacity:      10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, _ := json.Marshal(v)
	want := `{"start_location":{"name":"800 Kingsway","lat":49.2553636,"lng":-123.0873365},` +
		`"end_location":{"name":"800 Kingsway","lat":49.2553636,"lng":-123.0873365},` +
		`"shift_start":"8:00","shift_end":"12:00","capacity":10}`
	if string(b) != want {
		t.Fatalf("json = %s, want %s", b, want)
	}

	end, ok := v.EndLocation()
	if !ok || end != v.StartLocation() {
		t.Fatalf("end location = %+v (ok=%v), want start location", end, ok)
	}
}

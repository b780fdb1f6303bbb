package domain

import (
	"encoding/json"
	"fmt"
)

// VehicleParams is the caller-facing input for a Vehicle.
type VehicleParams struct {
	StartLocation *LocationParams `json:"start_location"`
	EndLocation   *LocationParams `json:"end_location,omitempty"`
	ShiftStart    *string         `json:"shift_start,omitempty"`
	ShiftEnd      *string         `json:"shift_end,omitempty"`
	Capacity      any             `json:"capacity,omitempty"`
}

// Vehicle is one member of the fleet, registered under a caller-supplied id.
// Shift times default on the service side (00:00 and 23:59) when omitted.
type Vehicle struct {
	id            string
	startLocation Location
	endLocation   *Location
	shiftStart    *string
	shiftEnd      *string
	capacity      any
}

func NewVehicle(id string, p VehicleParams) (Vehicle, error) {
	if p.StartLocation == nil {
		return Vehicle{}, NewValidationError("start_location", fmt.Sprintf("vehicle %q: 'start_location' parameter must be provided", id))
	}

	start, err := NewLocation(*p.StartLocation)
	if err != nil {
		return Vehicle{}, fmt.Errorf("vehicle %q start_location: %w", id, err)
	}

	v := Vehicle{
		id:            id,
		startLocation: start,
		shiftStart:    p.ShiftStart,
		shiftEnd:      p.ShiftEnd,
		capacity:      p.Capacity,
	}

	if p.EndLocation != nil {
		end, err := NewLocation(*p.EndLocation)
		if err != nil {
			return Vehicle{}, fmt.Errorf("vehicle %q end_location: %w", id, err)
		}
		v.endLocation = &end
	}

	return v, nil
}

func (v Vehicle) ID() string { return v.id }
func (v Vehicle) StartLocation() Location { return v.startLocation }
func (v Vehicle) ShiftStart() (string, bool) { return deref(v.shiftStart) }
func (v Vehicle) ShiftEnd() (string, bool) { return deref(v.shiftEnd) }
func (v Vehicle) Capacity() any { return v.capacity }

func (v Vehicle) EndLocation() (Location, bool) {
	if v.endLocation == nil {
		return Location{}, false
	}
	return *v.endLocation, true
}

type vehicleJSON struct {
	StartLocation Location  `json:"start_location"`
	EndLocation   *Location `json:"end_location,omitempty"`
	ShiftStart    *string   `json:"shift_start,omitempty"`
	ShiftEnd      *string   `json:"shift_end,omitempty"`
	Capacity      any       `json:"capacity,omitempty"`
}

func (v Vehicle) MarshalJSON() ([]byte, error) {
	return json.Marshal(vehicleJSON{
		StartLocation: v.startLocation,
		EndLocation:   v.endLocation,
		ShiftStart:    v.shiftStart,
		ShiftEnd:      v.shiftEnd,
		Capacity:      v.capacity,
	})
}

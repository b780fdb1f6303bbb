package client

import (
	"encoding/json"
	"errors"
	"vrp-client/internal/domain"
)

// LoadJSON fills the registries from a problem document
//
//	{"visits": {...}, "fleet": {...}, "options": {...}, "solution": {...}, "unserved": [...]}
//
// Visits, fleet and solutions are registered in document order. Unknown
// top-level keys are ignored. Malformed input is reported as a validation error.
func (c *Client) LoadJSON(data []byte) error {
	err := domain.DecodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		if isNull(raw) {
			return nil
		}
		switch key {
		case "visits":
			return c.loadVisits(raw)
		case "fleet":
			return c.loadFleet(raw)
		case "options":
			var params map[string]any
			if err := json.Unmarshal(raw, &params); err != nil {
				return domain.NewValidationError("options", err.Error())
			}
			c.SetOptions(params)
		case "solution":
			return c.loadSolutions(raw)
		case "unserved":
			return c.loadUnserved(raw)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return err
		}
		return domain.NewValidationError("problem", err.Error())
	}
	return nil
}

func (c *Client) loadVisits(raw json.RawMessage) error {
	return decodeMembers(raw, "visits", func(id string, member json.RawMessage) error {
		var p domain.VisitParams
		if err := json.Unmarshal(member, &p); err != nil {
			return domain.NewValidationError("visits."+id, err.Error())
		}
		return c.AddVisit(id, p)
	})
}

func (c *Client) loadFleet(raw json.RawMessage) error {
	return decodeMembers(raw, "fleet", func(id string, member json.RawMessage) error {
		var p domain.VehicleParams
		if err := json.Unmarshal(member, &p); err != nil {
			return domain.NewValidationError("fleet."+id, err.Error())
		}
		return c.AddVehicle(id, p)
	})
}

func (c *Client) loadSolutions(raw json.RawMessage) error {
	return decodeMembers(raw, "solution", func(vehicleID string, member json.RawMessage) error {
		s, err := domain.SolutionFromJSON(vehicleID, member)
		if err != nil {
			return err
		}
		c.solutions = append(c.solutions, s)
		return nil
	})
}

// loadUnserved accepts a list of visit ids or an object keyed by visit id,
// the shape a prior schedule reports them in.
func (c *Client) loadUnserved(raw json.RawMessage) error {
	var ids []string
	if err := json.Unmarshal(raw, &ids); err == nil {
		c.SetUnserved(ids)
		return nil
	}

	ids = ids[:0]
	err := decodeMembers(raw, "unserved", func(id string, _ json.RawMessage) error {
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return err
	}
	c.SetUnserved(ids)
	return nil
}

func decodeMembers(raw json.RawMessage, field string, fn func(string, json.RawMessage) error) error {
	err := domain.DecodeOrderedObject(raw, fn)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	return domain.NewValidationError(field, err.Error())
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

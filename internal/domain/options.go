package domain

import (
	"encoding/json"
	"strings"
)

// Recognized optimization option names, as the service spells them.
const (
	OptTraffic                 = "traffic"
	OptMinVisitsPerVehicle     = "min_visits_per_vehicle"
	OptBalance                 = "balance"
	OptVisitBalanceCoefficient = "visit_balance_coefficient"
	OptMinVehicles             = "min_vehicles"
	OptShortestDistance        = "shortest_distance"
	OptSquashDurations         = "squash_durations"
	OptMaxVehicleOvertime      = "max_vehicle_overtime"
	OptMaxVisitLateness        = "max_visit_lateness"
	OptPolylines               = "polylines"
)

var recognizedOptions = map[string]struct{}{
	OptTraffic:                 {},
	OptMinVisitsPerVehicle:     {},
	OptBalance:                 {},
	OptVisitBalanceCoefficient: {},
	OptMinVehicles:             {},
	OptShortestDistance:        {},
	OptSquashDurations:         {},
	OptMaxVehicleOvertime:      {},
	OptMaxVisitLateness:        {},
	OptPolylines:               {},
}

// Options is a pass-through set of optimization knobs.
// Values are not validated; the service decides what it accepts.
type Options struct {
	values map[string]any
}

// NewOptions keeps recognized keys (after normalization) and drops the rest.
func NewOptions(params map[string]any) Options {
	values := make(map[string]any, len(params))
	for k, v := range params {
		key := normalizeOptionKey(k)
		if _, ok := recognizedOptions[key]; !ok {
			continue
		}
		values[key] = v
	}
	return Options{values: values}
}

func normalizeOptionKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.NewReplacer("-", "_", " ", "_").Replace(k)
}

func (o Options) Get(name string) (any, bool) {
	v, ok := o.values[normalizeOptionKey(name)]
	return v, ok
}

func (o Options) IsEmpty() bool { return len(o.values) == 0 }

func (o Options) Traffic() any { return o.values[OptTraffic] }
func (o Options) MinVisitsPerVehicle() any { return o.values[OptMinVisitsPerVehicle] }
func (o Options) Balance() any { return o.values[OptBalance] }
func (o Options) VisitBalanceCoefficient() any { return o.values[OptVisitBalanceCoefficient] }
func (o Options) MinVehicles() any { return o.values[OptMinVehicles] }
func (o Options) ShortestDistance() any { return o.values[OptShortestDistance] }
func (o Options) SquashDurations() any { return o.values[OptSquashDurations] }
func (o Options) MaxVehicleOvertime() any { return o.values[OptMaxVehicleOvertime] }
func (o Options) MaxVisitLateness() any { return o.values[OptMaxVisitLateness] }
func (o Options) Polylines() any { return o.values[OptPolylines] }

func (o Options) MarshalJSON() ([]byte, error) {
	if o.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(o.values)
}

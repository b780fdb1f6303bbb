package services

import (
	"vrp-client/internal/domain"
)

var (
	ErrNoSolutions = domain.NewValidationError("", "must include a set of solutions to fix")
	ErrNoUnserved  = domain.NewValidationError("", "must include unserved visits")
)

// SolveRequest is the payload of a solve call.
type SolveRequest struct {
	Visits  *domain.Registry[domain.Visit]   `json:"visits"`
	Fleet   *domain.Registry[domain.Vehicle] `json:"fleet"`
	Options *domain.Options                  `json:"options,omitempty"`
}

// FixRequest is the payload of a fix call: a solve request seeded with a
// partial solution and the visits it left unserved.
type FixRequest struct {
	Visits   *domain.Registry[domain.Visit]   `json:"visits"`
	Fleet    *domain.Registry[domain.Vehicle] `json:"fleet"`
	Solution domain.SolutionSet               `json:"solution"`
	Options  *domain.Options                  `json:"options,omitempty"`
	Unserved []string                         `json:"unserved"`
}

type Problem struct {
	Visits    *domain.Registry[domain.Visit]
	Fleet     *domain.Registry[domain.Vehicle]
	Options   domain.Options
	Solutions []domain.Solution
	Unserved  []string
}

// BuildSolveRequest assembles a solve payload. Emptiness of visits or fleet
// is left for the service to judge.
func BuildSolveRequest(p Problem) SolveRequest {
	return SolveRequest{
		Visits:  orEmpty(p.Visits),
		Fleet:   orEmpty(p.Fleet),
		Options: optionsOrNil(p.Options),
	}
}

// BuildFixRequest assembles a fix payload from the solutions and unserved
// visits that still refer to the current fleet and visits. It fails before
// any dispatch when either reconciled set is empty.
func BuildFixRequest(p Problem) (FixRequest, error) {
	visits := orEmpty(p.Visits)
	fleet := orEmpty(p.Fleet)

	solution := domain.ValidSolutions(fleet.IDs(), p.Solutions)
	if solution.IsEmpty() {
		return FixRequest{}, ErrNoSolutions
	}

	unserved := domain.ValidUnserved(p.Unserved, visits.Has)
	if len(unserved) == 0 {
		return FixRequest{}, ErrNoUnserved
	}

	return FixRequest{
		Visits:   visits,
		Fleet:    fleet,
		Solution: solution,
		Options:  optionsOrNil(p.Options),
		Unserved: unserved,
	}, nil
}

func orEmpty[T any](r *domain.Registry[T]) *domain.Registry[T] {
	if r == nil {
		return domain.NewRegistry[T]()
	}
	return r
}

func optionsOrNil(o domain.Options) *domain.Options {
	if o.IsEmpty() {
		return nil
	}
	return &o
}

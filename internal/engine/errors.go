package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoTaxpayers means nobody is left to fund unmet care.
	ErrNoTaxpayers = errors.New("no taxpayers to carry the care burden")

	// ErrNoAdopter means an orphaned child has no living partnered woman to
	// adopt them.
	ErrNoAdopter = errors.New("no eligible adoptive mother")

	// ErrRunComplete is returned by Step once the end year has been simulated.
	ErrRunComplete = errors.New("run complete")
)

// Phase names used in errors and logs.
const (
	PhaseSeeding    = "seeding"
	PhaseDeaths     = "deaths"
	PhaseCare       = "care transitions"
	PhaseAging      = "age transitions"
	PhaseBirths     = "births"
	PhaseDivorces   = "divorces"
	PhaseMarriages  = "marriages"
	PhaseMoving     = "moving"
	PhaseStatistics = "statistics"
	PhaseInvariants = "invariants"
)

// PhaseError reports a failure that aborted a run, with enough context to
// find the offending entity.
type PhaseError struct {
	Year   int
	Phase  string
	Entity string // e.g. "person 42"; empty if not attributable
	Err    error
}

func (e *PhaseError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("year %d %s: %v", e.Year, e.Phase, e.Err)
	}
	return fmt.Sprintf("year %d %s (%s): %v", e.Year, e.Phase, e.Entity, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// InvariantError lists every consistency violation found in one check.
type InvariantError struct {
	Violations []string
}

func (e *InvariantError) Error() string {
	const shown = 5
	v := e.Violations
	if len(v) > shown {
		return fmt.Sprintf("%d invariant violations: %s; ...", len(v), strings.Join(v[:shown], "; "))
	}
	return fmt.Sprintf("%d invariant violations: %s", len(v), strings.Join(v, "; "))
}

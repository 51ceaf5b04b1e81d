// Simulation holds the complete state of one run and advances it a year at a time.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/lives/internal/config"
	"github.com/talgya/lives/internal/entropy"
	"github.com/talgya/lives/internal/housing"
	"github.com/talgya/lives/internal/people"
	"github.com/talgya/lives/internal/rates"
	"github.com/talgya/lives/internal/world"
)

// Options controls how a simulation is seeded.
type Options struct {
	Seed     int64         // 0 = params' favourite seed, else the clock
	Rates    *rates.Tables // nil = parametric mortality and fertility every year
	Map      *world.Map    // Prebuilt map for a fresh population; ignored with Snapshot
	Snapshot *Snapshot     // Resume from a copy of a saved map and population
}

// Simulation is one run: the map, the population on it, and everything
// needed to advance them.
type Simulation struct {
	Params  config.Params
	Year    int // Next year to simulate
	Map     *world.Map
	Pop     *people.Population
	RNG     *entropy.Source
	Housing *housing.Allocator
	Rates   *rates.Tables
	RunID   string

	Stats    *Series
	Pyramid  *Pyramid
	Narrator *Narrator

	// Tallied during the year, read and reset by the statistics pass.
	marriageTally int
	divorceTally  int
}

// New builds a simulation ready to run its first year.
func New(params config.Params, opts Options) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Rates.Check(params.Mortality.EmpiricalAfter, params.Fertility.EmpiricalFrom, params.Run.EndYear); err != nil {
		return nil, fmt.Errorf("rate tables: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = params.Run.FavouriteSeed
	}
	if seed == 0 {
		seed = entropy.ClockSeed()
	}

	s := &Simulation{
		Params:  params,
		Year:    params.Run.StartYear,
		RNG:     entropy.NewSource(seed),
		Rates:   opts.Rates,
		RunID:   uuid.NewString(),
		Stats:   &Series{},
		Pyramid: NewPyramid(params.Care.NumAgeClasses, params.Care.NumCareLevels),
	}

	if opts.Snapshot != nil {
		if err := s.restore(opts.Snapshot); err != nil {
			return nil, err
		}
	} else {
		m := opts.Map
		if m == nil {
			var err error
			if m, err = s.buildMap(); err != nil {
				return nil, fmt.Errorf("build map: %w", err)
			}
		}
		s.Map = m
		s.Pop = people.NewPopulation()
		s.Housing = housing.New(s.Map, s.Pop, s.RNG)
		if err := s.seedPopulation(); err != nil {
			return nil, &PhaseError{Year: s.Year, Phase: PhaseSeeding, Err: err}
		}
	}

	s.Narrator = NewNarrator(s.Map, s.Pop, params.Display.MaxTextUpdateList)
	s.Narrator.Select(s.firstHousehold())
	s.Housing.OnMove = s.Narrator.observeMove

	if s.Rates == nil {
		slog.Warn("no rate tables loaded, using parametric mortality and fertility throughout")
	}
	slog.Info("simulation ready",
		"run_id", s.RunID,
		"seed", seed,
		"year", s.Year,
		"towns", len(s.Map.Towns),
		"houses", s.Map.HouseCount(),
		"population", len(s.Pop.Living),
	)
	return s, nil
}

// buildMap generates the map from the configured grids, or from noise when
// the map is procedural.
func (s *Simulation) buildMap() (*world.Map, error) {
	mp := s.Params.Map
	cfg := world.GenConfig{
		Width:           mp.GridX,
		Height:          mp.GridY,
		TownGrid:        mp.TownGridDimension,
		CDFHouseClasses: mp.CDFHouseClasses,
		Density:         mp.Density,
		ClassBias:       mp.ClassBias,
		DensityModifier: mp.DensityModifier,
	}
	if mp.Procedural {
		cfg.Density, cfg.ClassBias = world.NoiseGrids(mp.GridX, mp.GridY, s.RNG.Int63())
	}
	return world.Generate(cfg, s.RNG)
}

// seedPopulation creates the founding couples and houses them. Men are
// housed first, each in a uniformly drawn house from the pool of houses not
// yet taken; their partners move in with them.
func (s *Simulation) seedPopulation() error {
	r := s.Params.Run
	founders := s.Pop.SpawnFounders(s.RNG, r.InitialPop, r.StartYear, r.MinStartAge, r.MaxStartAge)

	remaining := make([]*world.House, len(s.Map.Houses))
	copy(remaining, s.Map.Houses)

	for _, man := range founders {
		if man.Sex != people.Male {
			continue
		}
		if len(remaining) == 0 {
			return fmt.Errorf("person %d: %w", man.ID, housing.ErrNoVacantHouse)
		}
		i := s.RNG.Pick(len(remaining))
		h := remaining[i]
		remaining = append(remaining[:i], remaining[i+1:]...)

		man.SEC = h.Size
		s.Housing.Place(h, man)
		if woman := s.Pop.PartnerOf(man); woman != nil {
			woman.SEC = man.SEC
			s.Housing.Place(h, woman)
		}
	}
	return nil
}

// restore copies a saved map and population and resumes after its year.
// The snapshot itself is left untouched.
func (s *Simulation) restore(snap *Snapshot) error {
	if snap.Map == nil || snap.Population == nil {
		return errors.New("snapshot is missing its map or population")
	}
	s.Map = snap.Map.Clone()
	s.Pop = snap.Population.Clone()
	s.Year = snap.Year + 1
	s.Map.RebuildOccupied()
	s.Housing = housing.New(s.Map, s.Pop, s.RNG)
	if err := CheckInvariants(s.Map, s.Pop, s.Params.Care.NumCareLevels); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}

// firstHousehold returns the house of the earliest-created living person.
func (s *Simulation) firstHousehold() world.HouseID {
	for _, p := range s.Pop.All {
		if !p.Dead {
			return p.House
		}
	}
	return world.NoHouse
}

// Done reports whether the end year has been simulated.
func (s *Simulation) Done() bool {
	return s.Year > s.Params.Run.EndYear
}

// Seed returns the seed the run's random stream was built from.
func (s *Simulation) Seed() int64 {
	return s.RNG.Seed()
}

// Step simulates one year: every transition phase in order, then the
// statistics pass. It returns ErrRunComplete once the run is over.
func (s *Simulation) Step() error {
	if s.Done() {
		return ErrRunComplete
	}
	s.Narrator.year = s.Year

	phases := []struct {
		name string
		run  func() error
	}{
		{PhaseDeaths, s.doDeaths},
		{PhaseCare, s.doCareTransitions},
		{PhaseAging, s.doAgeTransitions},
		{PhaseBirths, s.doBirths},
		{PhaseDivorces, s.doDivorces},
		{PhaseMarriages, s.doMarriages},
		{PhaseMoving, s.doMovingAround},
		{PhaseStatistics, s.doStats},
	}
	for _, ph := range phases {
		if err := ph.run(); err != nil {
			return s.phaseError(ph.name, err)
		}
	}

	if s.Params.Run.VerboseDebugging {
		if err := CheckInvariants(s.Map, s.Pop, s.Params.Care.NumCareLevels); err != nil {
			return s.phaseError(PhaseInvariants, err)
		}
	}

	s.Narrator.advance()
	s.Year++
	return nil
}

// phaseError wraps err with the current year and phase unless a phase
// already attached that context.
func (s *Simulation) phaseError(phase string, err error) error {
	var pe *PhaseError
	if errors.As(err, &pe) {
		return err
	}
	return &PhaseError{Year: s.Year, Phase: phase, Err: err}
}

func personEntity(p *people.Person) string {
	return fmt.Sprintf("person %d", p.ID)
}

// ageClass returns the decade bracket of p this year, clamped to a modifier
// table of length n.
func (s *Simulation) ageClass(p *people.Person, n int) int {
	return people.AgeClass(p.Age(s.Year), n)
}

// Snapshot exposes the current map and population for serialization. It
// shares the live graph; New copies it when resuming.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{Map: s.Map, Population: s.Pop, Year: s.Year - 1}
}

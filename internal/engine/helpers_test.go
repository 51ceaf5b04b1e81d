package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/lives/internal/config"
	"github.com/talgya/lives/internal/people"
	"github.com/talgya/lives/internal/world"
)

// gridMap lays out a w×h grid of towns, each holding n houses of one size.
func gridMap(w, h, n, size int) *world.Map {
	m := world.NewMap(w, h, n)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := &world.Town{X: x, Y: y, Name: world.TownName(x, y), Density: 1}
			m.AddTown(t)
			for i := 0; i < n; i++ {
				m.AddHouse(&world.House{Name: world.HouseName(t, i, 0), Size: size, Town: t, X: i})
			}
		}
	}
	return m
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

func flat(w, h int, v float64) [][]float64 {
	g := make([][]float64, h)
	for y := range g {
		g[y] = make([]float64, w)
		for x := range g[y] {
			g[y][x] = v
		}
	}
	return g
}

// quietParams starts in 1900 with no founders and every stochastic rate at
// zero, so tests switch on only the behaviour they exercise.
func quietParams() config.Params {
	p := config.Defaults()
	p.Run.InitialPop = 0
	p.Run.StartYear = 1900
	p.Run.EndYear = 1910

	p.Mortality.BaseDieProb = 0
	p.Mortality.BabyDieProb = 0
	p.Mortality.MaleAgeDieProb = 0
	p.Mortality.FemaleAgeDieProb = 0

	p.Care.BaseCareProb = 0
	p.Care.PersonCareProb = 0

	p.Fertility.GrowingPopBirthProb = 0
	p.Fertility.SteadyPopBirthProb = 0

	p.Partnership.BasicFemaleMarriageProb = 0
	p.Partnership.BasicMaleMarriageProb = 0
	p.Partnership.BasicDivorceRate = 0
	p.Partnership.VariableDivorce = 0

	p.Mobility.ProbApartWillMoveTogether = 0
	p.Mobility.CoupleMovesToExistingHousehold = 0
	p.Mobility.BasicProbAdultMoveOut = 0
	p.Mobility.BasicProbSingleMove = 0
	p.Mobility.BasicProbFamilyMove = 0
	p.Mobility.AgingParentsMoveInWithKids = 0
	p.Mobility.VariableMoveBack = 0
	return p
}

// smallWorldParams runs the calibrated model on a 3×3 map with every plot
// built on.
func smallWorldParams() config.Params {
	p := config.Defaults()
	p.Run.InitialPop = 60
	p.Run.StartYear = 1860
	p.Run.EndYear = 1880
	p.Run.VerboseDebugging = true
	p.Map.GridX = 3
	p.Map.GridY = 3
	p.Map.TownGridDimension = 15
	p.Map.Density = flat(3, 3, 1)
	p.Map.ClassBias = flat(3, 3, 0)
	p.Map.DensityModifier = 1
	return p
}

func newSim(t *testing.T, p config.Params, m *world.Map) *Simulation {
	t.Helper()
	s, err := New(p, Options{Seed: 1, Map: m})
	require.NoError(t, err)
	return s
}

// addPerson registers someone born in born and houses them in h.
func addPerson(s *Simulation, h *world.House, born int, sex people.Sex, status people.Status) *people.Person {
	p := s.Pop.Spawn(born, sex, status)
	p.SEC = h.Size
	s.Housing.Place(h, p)
	return p
}

// addChild registers a child of mother and father living in h.
func addChild(s *Simulation, h *world.House, born int, sex people.Sex, mother, father *people.Person) *people.Person {
	c := addPerson(s, h, born, sex, people.Child)
	c.Mother, c.Father = mother.ID, father.ID
	s.Pop.AddChild(mother, c)
	s.Pop.AddChild(father, c)
	return c
}

func requireConsistent(t *testing.T, s *Simulation) {
	t.Helper()
	require.NoError(t, CheckInvariants(s.Map, s.Pop, s.Params.Care.NumCareLevels))
}

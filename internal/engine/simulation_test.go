package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/lives/internal/housing"
	"github.com/talgya/lives/internal/people"
	"github.com/talgya/lives/internal/world"
)

func TestSeedingTwoCouplesIntoFourHouses(t *testing.T) {
	p := quietParams()
	p.Run.InitialPop = 4
	p.Run.StartYear = 1860
	p.Run.EndYear = 1870
	p.Run.MinStartAge = 20
	p.Run.MaxStartAge = 40

	m := gridMap(1, 1, 4, 1)
	s := newSim(t, p, m)

	require.Len(t, s.Pop.Living, 4)
	for _, person := range s.Pop.Living {
		h := m.House(person.House)
		require.NotNil(t, h)
		assert.Equal(t, h.Size, person.SEC)
		age := person.Age(1860)
		assert.GreaterOrEqual(t, age, 20)
		assert.LessOrEqual(t, age, 40)
	}

	occupied := 0
	for _, h := range m.Houses {
		if h.Vacant() {
			continue
		}
		occupied++
		require.Len(t, h.Occupants, 2)
		a, b := s.Pop.Get(h.Occupants[0]), s.Pop.Get(h.Occupants[1])
		assert.Equal(t, people.Male, a.Sex)
		assert.Equal(t, b.ID, a.Partner)
	}
	assert.Equal(t, 2, occupied)
	requireConsistent(t, s)

	// The first person's house is narrated.
	assert.Equal(t, s.Pop.All[0].House, s.Narrator.House())
}

func TestSeedingRunsOutOfHouses(t *testing.T) {
	p := quietParams()
	p.Run.InitialPop = 6

	_, err := New(p, Options{Seed: 1, Map: gridMap(1, 1, 2, 0)})
	require.Error(t, err)
	assert.ErrorIs(t, err, housing.ErrNoVacantHouse)

	var pe *PhaseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PhaseSeeding, pe.Phase)
}

func TestNewRejectsInvalidParams(t *testing.T) {
	p := quietParams()
	p.Run.EndYear = 1800
	_, err := New(p, Options{Seed: 1, Map: gridMap(1, 1, 1, 0)})
	assert.Error(t, err)
}

func TestSingleYearRunRecordsOneRow(t *testing.T) {
	p := quietParams()
	p.Run.InitialPop = 4
	p.Run.EndYear = p.Run.StartYear

	s := newSim(t, p, gridMap(1, 1, 10, 0))
	eng := NewEngine(s)
	var seen []Record
	eng.OnYear = func(rec Record) { seen = append(seen, rec) }

	res, err := eng.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Years)
	assert.Equal(t, 1900, res.FinalYear)
	assert.Equal(t, int64(1), res.Seed)
	assert.Equal(t, s.RunID, res.RunID)
	require.Len(t, seen, 1)
	assert.Equal(t, 1900, seen[0].Year)

	st := s.Stats
	for name, n := range map[string]int{
		"years":       len(st.Years),
		"population":  len(st.Population),
		"households":  len(st.Households),
		"avg size":    len(st.AvgHouseholdSize),
		"marriages":   len(st.Marriages),
		"divorces":    len(st.Divorces),
		"demand":      len(st.CareDemand),
		"supply":      len(st.CareSupply),
		"taxpayers":   len(st.Taxpayers),
		"unmet":       len(st.UnmetNeed),
		"family care": len(st.FamilyCareRatio),
		"tax burden":  len(st.TaxBurden),
		"marriage":    len(st.MarriageProp),
		"ever lived":  len(st.EverLived),
	} {
		assert.Equal(t, 1, n, name)
	}
	assert.Equal(t, 4, st.Population[0])
	assert.Equal(t, 2, st.Households[0])
	assert.Equal(t, 2.0, st.AvgHouseholdSize[0])
	assert.Equal(t, 1.0, st.MarriageProp[0])

	assert.True(t, s.Done())
	assert.ErrorIs(t, s.Step(), ErrRunComplete)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	p := quietParams()
	p.Run.InitialPop = 2
	s := newSim(t, p, gridMap(1, 1, 4, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := NewEngine(s).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Years)
	assert.Equal(t, 0, s.Stats.Len())
}

func TestCalibratedRunKeepsInvariants(t *testing.T) {
	p := smallWorldParams()
	s, err := New(p, Options{Seed: 42})
	require.NoError(t, err)

	levels := make(map[uint64]int)
	for !s.Done() {
		require.NoError(t, s.Step())
		requireConsistent(t, s)

		for _, person := range s.Pop.All {
			prev, ok := levels[uint64(person.ID)]
			if ok {
				assert.GreaterOrEqual(t, person.CareNeedLevel, prev)
			}
			levels[uint64(person.ID)] = person.CareNeedLevel
		}

		// No care hours are created or lost by matching.
		for _, person := range s.Pop.Living {
			demand := p.Care.CareDemandInHours[person.CareNeedLevel]
			assert.InDelta(t, demand, person.CareRequired+person.CareReceived, 1e-9)
		}
	}

	assert.Equal(t, 21, s.Stats.Len())
	assert.Equal(t, 1880, s.Stats.Years[20])
	last, ok := s.Stats.Last()
	require.True(t, ok)
	assert.Equal(t, len(s.Pop.Living), last.Population)
	assert.Equal(t, len(s.Pop.All), last.EverLived)
}

func TestSameSeedSameRun(t *testing.T) {
	p := smallWorldParams()
	p.Run.EndYear = 1870

	run := func() *Series {
		s, err := New(p, Options{Seed: 7})
		require.NoError(t, err)
		_, err = NewEngine(s).Run(context.Background())
		require.NoError(t, err)
		return s.Stats
	}
	assert.Equal(t, run(), run())
}

func TestProceduralMap(t *testing.T) {
	p := smallWorldParams()
	p.Map.Procedural = true
	p.Map.GridX, p.Map.GridY = 6, 6
	p.Map.Density, p.Map.ClassBias = nil, nil
	p.Run.InitialPop = 10

	s, err := New(p, Options{Seed: 3})
	if err != nil {
		// Noise can leave a small map with too few houses of some class.
		require.ErrorIs(t, err, housing.ErrNoVacantHouse)
		return
	}
	assert.Len(t, s.Map.Towns, 36)
	requireConsistent(t, s)
}

func TestResumeFromSnapshot(t *testing.T) {
	p := smallWorldParams()
	a, err := New(p, Options{Seed: 9})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, a.Step())
	}

	snap := a.Snapshot()
	assert.Equal(t, 1862, snap.Year)

	b, err := New(p, Options{Seed: 10, Snapshot: &snap})
	require.NoError(t, err)
	assert.Equal(t, 1863, b.Year)
	assert.Equal(t, len(a.Pop.Living), len(b.Pop.Living))
	assert.NotSame(t, a.Pop, b.Pop)
	assert.NotSame(t, a.Map, b.Map)

	// Stepping the resumed run leaves the first one as it was.
	all, living := len(a.Pop.All), len(a.Pop.Living)
	occupants := make([][]world.PersonID, len(a.Map.Houses))
	for i, h := range a.Map.Houses {
		occupants[i] = append([]world.PersonID(nil), h.Occupants...)
	}
	statuses := make([]people.Status, len(a.Pop.All))
	for i, q := range a.Pop.All {
		statuses[i] = q.Status
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, b.Step())
	}
	requireConsistent(t, b)
	assert.Equal(t, 1866, b.Year)
	assert.Equal(t, 1863, a.Year)
	assert.Len(t, a.Pop.All, all)
	assert.Len(t, a.Pop.Living, living)
	for i, h := range a.Map.Houses {
		assert.Equal(t, occupants[i], append([]world.PersonID(nil), h.Occupants...))
	}
	for i, q := range a.Pop.All {
		assert.Equal(t, statuses[i], q.Status)
	}
	requireConsistent(t, a)
	require.NoError(t, a.Step())
	requireConsistent(t, a)
}

func TestSeriesFrom(t *testing.T) {
	s := &Series{}
	for y := 1900; y < 1905; y++ {
		s.Append(Record{Year: y, Population: y - 1900})
	}
	tail := s.From(1903)
	assert.Equal(t, []int{1903, 1904}, tail.Years)
	assert.Equal(t, []int{3, 4}, tail.Population)
	assert.Equal(t, 5, s.Len())
	assert.Len(t, s.Records(), 5)
	assert.Equal(t, 0, s.From(2000).Len())
}

package engine

import (
	"fmt"

	"github.com/talgya/lives/internal/people"
	"github.com/talgya/lives/internal/world"
)

// CheckInvariants verifies the consistency of the population graph:
// occupancy, partner symmetry, care-level bounds, identity ordering and
// conservation of people. It returns an *InvariantError listing every
// violation, or nil.
func CheckInvariants(m *world.Map, pop *people.Population, numCareLevels int) error {
	var v []string
	fail := func(format string, args ...any) {
		v = append(v, fmt.Sprintf(format, args...))
	}

	var lastID world.PersonID
	dead := 0
	for _, p := range pop.All {
		if p.ID <= lastID {
			fail("person %d created after person %d", p.ID, lastID)
		}
		lastID = p.ID
		if p.Dead {
			dead++
		}
		if p.CareNeedLevel < 0 || p.CareNeedLevel >= numCareLevels {
			fail("person %d care level %d out of range", p.ID, p.CareNeedLevel)
		}
		if p.Partnered() {
			q := pop.PartnerOf(p)
			switch {
			case q == nil:
				fail("person %d partnered to unknown person %d", p.ID, p.Partner)
			case q.Partner != p.ID:
				fail("person %d partnered to %d, whose partner is %d", p.ID, q.ID, q.Partner)
			case p.Dead:
				fail("dead person %d still partnered", p.ID)
			}
		}
	}
	if len(pop.All) != len(pop.Living)+dead {
		fail("%d people ever, %d living, %d dead", len(pop.All), len(pop.Living), dead)
	}

	listed := make(map[world.PersonID]int)
	for _, h := range m.Houses {
		for _, id := range h.Occupants {
			listed[id]++
			p := pop.Get(id)
			switch {
			case p == nil:
				fail("house %s lists unknown person %d", h.Name, id)
			case p.Dead:
				fail("house %s lists dead person %d", h.Name, id)
			case p.House != h.ID:
				fail("house %s lists person %d who lives in house %d", h.Name, id, p.House)
			}
		}
	}
	for _, p := range pop.Living {
		if p.Dead {
			fail("dead person %d in the living index", p.ID)
		}
		if m.House(p.House) == nil {
			fail("living person %d has no house", p.ID)
		}
		if n := listed[p.ID]; n != 1 {
			fail("living person %d listed in %d houses", p.ID, n)
		}
	}

	indexed := make(map[world.HouseID]bool, len(m.Occupied))
	for _, id := range m.Occupied {
		indexed[id] = true
	}
	for _, h := range m.Houses {
		if !h.Vacant() && !indexed[h.ID] {
			fail("occupied house %s missing from the occupied index", h.Name)
		}
	}

	if len(v) > 0 {
		return &InvariantError{Violations: v}
	}
	return nil
}

// Package housing finds vacant houses for people who must move and relocates
// them, keeping house occupant lists and the map's occupied index in step.
package housing

import (
	"errors"
	"fmt"

	"github.com/talgya/lives/internal/entropy"
	"github.com/talgya/lives/internal/people"
	"github.com/talgya/lives/internal/world"
)

// ErrNoVacantHouse means no house of the required size class is vacant
// anywhere on the map. The map was generated too small for the population.
var ErrNoVacantHouse = errors.New("no vacant house of required size class")

// Preference controls how widely the search for a vacancy ranges.
type Preference uint8

const (
	Here Preference = iota // Mover's own town
	Near                   // Own town and the eight surrounding it
	Far                    // Anywhere on the map
)

func (p Preference) String() string {
	switch p {
	case Here:
		return "here"
	case Near:
		return "near"
	default:
		return "far"
	}
}

// Allocator relocates groups of people between houses.
type Allocator struct {
	Map *world.Map
	Pop *people.Population
	RNG *entropy.Source

	// OnMove, if set, is called after every relocation.
	OnMove func(from, to *world.House, movers []*people.Person)
}

// New creates an allocator over the given map and population.
func New(m *world.Map, pop *people.Population, rng *entropy.Source) *Allocator {
	return &Allocator{Map: m, Pop: pop, RNG: rng}
}

// Candidates lists vacant houses of size class sec within the given tier
// around town, in map order.
func (a *Allocator) Candidates(sec int, town *world.Town, tier Preference) []*world.House {
	var out []*world.House
	collect := func(houses []*world.House) {
		for _, h := range houses {
			if h.Vacant() && h.Size == sec {
				out = append(out, h)
			}
		}
	}

	switch tier {
	case Here:
		collect(town.Houses)
	case Near:
		for _, t := range a.Map.Neighbourhood(town) {
			collect(t.Houses)
		}
	default:
		collect(a.Map.Houses)
	}
	return out
}

// FindNewHouse picks a vacant house matching the first mover's class,
// starting at pref and widening the search until something is found, then
// moves the whole group into it.
func (a *Allocator) FindNewHouse(movers []*people.Person, pref Preference) (*world.House, error) {
	if len(movers) == 0 {
		return nil, fmt.Errorf("find new house: no movers")
	}
	lead := movers[0]
	from := a.Map.House(lead.House)
	if from == nil {
		return nil, fmt.Errorf("find new house: person %d has no house", lead.ID)
	}

	for tier := pref; tier <= Far; tier++ {
		candidates := a.Candidates(lead.SEC, from.Town, tier)
		if len(candidates) == 0 {
			continue
		}
		target := candidates[a.RNG.Pick(len(candidates))]
		a.MoveInto(target, movers)
		return target, nil
	}
	return nil, fmt.Errorf("person %d (sec %d) leaving %s: %w", lead.ID, lead.SEC, from.Name, ErrNoVacantHouse)
}

// MoveInto relocates every mover into target in one step.
func (a *Allocator) MoveInto(target *world.House, movers []*people.Person) {
	var departure *world.House
	for i, p := range movers {
		old := a.Map.House(p.House)
		if i == 0 {
			departure = old
		}
		if old != nil {
			old.RemoveOccupant(p.ID)
			if old.Vacant() {
				a.Map.MarkVacant(old.ID)
			}
		}
		target.AddOccupant(p.ID)
		p.House = target.ID
		p.MovedThisYear = true
	}
	a.Map.MarkOccupied(target.ID)

	if a.OnMove != nil {
		a.OnMove(departure, target, movers)
	}
}

// Place puts a person who has no house yet into target (seeding, births).
func (a *Allocator) Place(target *world.House, p *people.Person) {
	wasVacant := target.Vacant()
	target.AddOccupant(p.ID)
	p.House = target.ID
	if wasVacant {
		a.Map.MarkOccupied(target.ID)
	}
}

// Vacate removes a person from their house, e.g. on death.
func (a *Allocator) Vacate(p *people.Person) *world.House {
	h := a.Map.House(p.House)
	if h == nil {
		return nil
	}
	h.RemoveOccupant(p.ID)
	if h.Vacant() {
		a.Map.MarkVacant(h.ID)
	}
	return h
}

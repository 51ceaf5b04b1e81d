// Founding generation and births.
package people

import (
	"github.com/talgya/lives/internal/entropy"
	"github.com/talgya/lives/internal/world"
)

// SpawnFounders creates count/2 couples. Both partners share a birth year
// drawn uniformly so that their ages fall in [minAge, maxAge] at startYear.
// Founders start as partnered independent adults without a house.
func (p *Population) SpawnFounders(rng *entropy.Source, count, startYear, minAge, maxAge int) []*Person {
	founders := make([]*Person, 0, count)
	for i := 0; i < count/2; i++ {
		birthYear := startYear - rng.IntBetween(minAge, maxAge)
		man := p.Spawn(birthYear, Male, IndependentAdult)
		woman := p.Spawn(birthYear, Female, IndependentAdult)
		p.Partner(man, woman)
		founders = append(founders, man, woman)
	}
	return founders
}

// SpawnBaby creates a newborn in the mother's house and class, linked to
// both parents. Sex is drawn uniformly. The caller registers the baby as an
// occupant of the house.
func (p *Population) SpawnBaby(rng *entropy.Source, mother, father *Person, year int) *Person {
	sex := Male
	if rng.Chance(0.5) {
		sex = Female
	}
	baby := p.Spawn(year, sex, Child)
	baby.Mother = mother.ID
	baby.House = mother.House
	baby.SEC = mother.SEC
	p.AddChild(mother, baby)
	if father != nil {
		baby.Father = father.ID
		p.AddChild(father, baby)
	}
	return baby
}

// Household returns the people listed as occupants of h.
func (p *Population) Household(h *world.House) []*Person {
	members := make([]*Person, 0, len(h.Occupants))
	for _, id := range h.Occupants {
		if person := p.Get(id); person != nil {
			members = append(members, person)
		}
	}
	return members
}

package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/lives/internal/people"
)

// doAgeTransitions moves people between life stages and finds new parents
// for orphaned children.
func (s *Simulation) doAgeTransitions() error {
	lc := s.Params.Lifecycle

	notRetired := make([]*people.Person, 0, len(s.Pop.Living))
	for _, p := range s.Pop.Living {
		if p.Status != people.Retired {
			notRetired = append(notRetired, p)
		}
	}

	adoptions := 0
	for _, p := range notRetired {
		switch age := p.Age(s.Year); {
		// Founders seeded below the age of adulthood are already independent
		// and must not be sent back home.
		case age == lc.AgeOfAdulthood && p.Status == people.Child:
			p.Status = people.AdultAtHome
			s.Narrator.Note(p.House, "#%d is now an adult.", p.ID)
		case age == lc.AgeOfRetirement:
			p.Status = people.Retired
			s.Narrator.Note(p.House, "#%d has now retired.", p.ID)
		}

		if p.Status == people.AdultAtHome && s.Pop.ParentsGone(p) {
			p.Status = people.IndependentAdult
			s.Narrator.Note(p.House, "#%d's parents are both dead.", p.ID)
		}

		if p.Status == people.Child && s.Pop.ParentsGone(p) {
			if err := s.adopt(p); err != nil {
				return &PhaseError{Year: s.Year, Phase: PhaseAging, Entity: personEntity(p), Err: err}
			}
			adoptions++
		}
	}

	slog.Debug("age transitions", "year", s.Year, "adoptions", adoptions)
	return nil
}

// adopt gives an orphan a uniformly chosen living, partnered, adult woman
// and her partner as parents, and moves the child into their house.
func (s *Simulation) adopt(child *people.Person) error {
	var eligible []*people.Person
	for _, p := range s.Pop.Living {
		if p.Status != people.Child && p.Sex == people.Female && p.Partnered() {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return ErrNoAdopter
	}
	mother := eligible[s.RNG.Pick(len(eligible))]
	father := s.Pop.PartnerOf(mother)

	s.Narrator.Note(child.House, "#%d will now be adopted.", child.ID)

	child.Mother = mother.ID
	s.Pop.AddChild(mother, child)
	child.Father = father.ID
	s.Pop.AddChild(father, child)

	s.Narrator.Note(mother.House, "#%d has been newly adopted by #%d.", child.ID, mother.ID)

	home := s.Map.House(mother.House)
	if home == nil {
		return fmt.Errorf("adoptive mother %d has no house", mother.ID)
	}
	s.Housing.MoveInto(home, []*people.Person{child})
	return nil
}

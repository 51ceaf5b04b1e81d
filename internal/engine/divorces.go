package engine

import (
	"log/slog"

	"github.com/talgya/lives/internal/housing"
	"github.com/talgya/lives/internal/people"
)

// doDivorces gives each partnered man a chance to split up. He leaves for
// a new house near or far; she stays put.
func (s *Simulation) doDivorces() error {
	ps := s.Params.Partnership

	var men []*people.Person
	for _, p := range s.Pop.Living {
		if p.Sex == people.Male && p.Partnered() {
			men = append(men, p)
		}
	}

	rate := ps.BasicDivorceRate
	if s.Year >= s.Params.Run.ThePresent {
		rate = ps.VariableDivorce
	}

	for _, man := range men {
		prob := rate * ps.DivorceModifierByDecade[s.ageClass(man, len(ps.DivorceModifierByDecade))]
		if !s.RNG.Chance(prob) {
			continue
		}
		wife := s.Pop.PartnerOf(man)
		s.Pop.Separate(man)
		s.divorceTally++

		pref := []housing.Preference{housing.Near, housing.Far}[s.RNG.Pick(2)]
		s.Narrator.Note(man.House, "#%d splits with #%d.", man.ID, wife.ID)
		if _, err := s.Housing.FindNewHouse([]*people.Person{man}, pref); err != nil {
			return &PhaseError{Year: s.Year, Phase: PhaseDivorces, Entity: personEntity(man), Err: err}
		}
	}

	slog.Debug("divorces", "year", s.Year, "count", s.divorceTally)
	return nil
}

package engine

import (
	"log/slog"

	"github.com/talgya/lives/internal/people"
)

// doMarriages matches single adults across the whole population. Towns are
// too small to be separate marriage markets.
func (s *Simulation) doMarriages() error {
	ps := s.Params.Partnership

	var men, women []*people.Person
	for _, p := range s.Pop.Living {
		if p.Status == people.Child || p.Partnered() {
			continue
		}
		if p.Sex == people.Male {
			men = append(men, p)
		} else {
			women = append(women, p)
		}
	}
	if len(men) == 0 || len(women) == 0 {
		return nil
	}

	s.RNG.Shuffle(len(men), func(i, j int) { men[i], men[j] = men[j], men[i] })
	s.RNG.Shuffle(len(women), func(i, j int) { women[i], women[j] = women[j], women[i] })

	interested := make([]*people.Person, 0, len(women))
	for _, w := range women {
		prob := ps.BasicFemaleMarriageProb * ps.FemaleMarriageModifierByDecade[s.ageClass(w, len(ps.FemaleMarriageModifierByDecade))]
		if s.RNG.Chance(prob) {
			interested = append(interested, w)
		}
	}

	for _, m := range men {
		prob := ps.BasicMaleMarriageProb * ps.MaleMarriageModifierByDecade[s.ageClass(m, len(ps.MaleMarriageModifierByDecade))]
		if !s.RNG.Chance(prob) {
			continue
		}
		manAge := m.Age(s.Year)
		for i, w := range interested {
			womanAge := w.Age(s.Year)
			if !s.compatible(m, w, manAge-womanAge) {
				continue
			}
			s.Pop.Partner(m, w)
			interested = append(interested[:i], interested[i+1:]...)
			s.marriageTally++

			line := "#%d (age %d) and #%d (age %d) marry."
			if !s.Narrator.Note(m.House, line, m.ID, manAge, w.ID, womanAge) {
				s.Narrator.Note(w.House, line, m.ID, manAge, w.ID, womanAge)
			}
			break
		}
	}

	slog.Debug("marriages", "year", s.Year, "count", s.marriageTally, "men", len(men), "women", len(women), "interested", len(interested))
	return nil
}

// compatible applies the age-gap window (man's age minus woman's, both
// bounds exclusive) and refuses a shared mother. Two people without a
// recorded mother count as sharing one, so founders never marry each other.
func (s *Simulation) compatible(m, w *people.Person, gap int) bool {
	ps := s.Params.Partnership
	if gap >= ps.MaxAgeGap || gap <= ps.MinAgeGap {
		return false
	}
	return m.Mother != w.Mother
}

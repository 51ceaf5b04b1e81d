// Mortality: an empirical age × year table after the historical cutoff,
// a parametric exponential hazard up to it.
package engine

import (
	"log/slog"
	"math"

	"github.com/talgya/lives/internal/people"
)

// doDeaths gives every living person one chance to die this year.
func (s *Simulation) doDeaths() error {
	deaths := 0
	for _, p := range s.Pop.Living {
		age := p.Age(s.Year)
		if !s.RNG.Chance(s.deathProbability(p, age)) {
			continue
		}
		s.kill(p, age)
		deaths++
	}
	s.Pop.CompactLiving()

	slog.Debug("deaths", "year", s.Year, "count", deaths, "living", len(s.Pop.Living))
	return nil
}

// deathProbability returns p's chance of dying this year at the given age.
// Ages past the table are treated as its oldest age.
func (s *Simulation) deathProbability(p *people.Person, age int) float64 {
	m := s.Params.Mortality
	if s.Year > m.EmpiricalAfter && s.Rates != nil {
		table := s.Rates.MaleDeath
		if p.Sex == people.Female {
			table = s.Rates.FemaleDeath
		}
		if table != nil {
			return table.At(age, s.Year)
		}
	}
	return s.parametricDeathProbability(p, age)
}

// parametricDeathProbability sums a flat base rate, an infant rate for
// babies under one, and a sex-specific hazard growing exponentially with age.
func (s *Simulation) parametricDeathProbability(p *people.Person, age int) float64 {
	m := s.Params.Mortality
	scaling, ageProb := m.MaleAgeScaling, m.MaleAgeDieProb
	if p.Sex == people.Female {
		scaling, ageProb = m.FemaleAgeScaling, m.FemaleAgeDieProb
	}
	prob := m.BaseDieProb + math.Exp(float64(age)/scaling)*ageProb
	if age < 1 {
		prob += m.BabyDieProb
	}
	return prob
}

// kill records a death: the person leaves their house and their partner.
// They stay in the population's history; the caller compacts Living.
func (s *Simulation) kill(p *people.Person, age int) {
	s.Narrator.Note(p.House, "#%d died aged %d.", p.ID, age)
	s.Housing.Vacate(p)
	s.Pop.Bury(p)
}

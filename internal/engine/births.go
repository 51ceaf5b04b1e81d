package engine

import (
	"log/slog"

	"github.com/talgya/lives/internal/people"
)

// doBirths gives each partnered woman of reproductive age one chance to
// have a baby this year.
func (s *Simulation) doBirths() error {
	f := s.Params.Fertility
	share := s.marriedShare(f.MarriedShareMinAge)

	var mothers []*people.Person
	for _, p := range s.Pop.Living {
		age := p.Age(s.Year)
		if p.Sex == people.Female && age > f.MinPregnancyAge && age < f.MaxPregnancyAge && p.Partnered() {
			mothers = append(mothers, p)
		}
	}

	births := 0
	for _, woman := range mothers {
		if !s.RNG.Chance(s.birthProbability(woman.Age(s.Year), share)) {
			continue
		}
		baby := s.Pop.SpawnBaby(s.RNG, woman, s.Pop.PartnerOf(woman), s.Year)
		if home := s.Map.House(woman.House); home != nil {
			s.Housing.Place(home, baby)
		}
		births++
		s.Narrator.Note(woman.House, "#%d had a baby, #%d.", woman.ID, baby.ID)
	}

	slog.Debug("births", "year", s.Year, "count", births, "married_share", share)
	return nil
}

// birthProbability is the empirical rate for a mother's age, rescaled from
// married women onto all women by the married share. Without a table, or
// before it applies, a flat rate is used.
func (s *Simulation) birthProbability(age int, marriedShare float64) float64 {
	f := s.Params.Fertility
	if s.Year >= f.EmpiricalFrom && s.Rates != nil && s.Rates.Fertility != nil {
		if marriedShare <= 0 {
			return 0
		}
		return s.Rates.Fertility.At(age, s.Year) / marriedShare
	}
	if s.Year < f.TransitionYear {
		return f.GrowingPopBirthProb
	}
	return f.SteadyPopBirthProb
}

// marriedShare is the proportion of living women aged minAge or over who
// are partnered, 0 if there are none.
func (s *Simulation) marriedShare(minAge int) float64 {
	adult, married := 0, 0
	for _, p := range s.Pop.Living {
		if p.Sex != people.Female || p.Age(s.Year) < minAge {
			continue
		}
		adult++
		if p.Partnered() {
			married++
		}
	}
	if adult == 0 {
		return 0
	}
	return float64(married) / float64(adult)
}

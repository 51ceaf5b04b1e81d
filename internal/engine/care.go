package engine

import (
	"log/slog"
	"math"

	"github.com/talgya/lives/internal/people"
)

// doCareTransitions lets each person below the top care level develop more
// severe needs. Levels only ever rise.
func (s *Simulation) doCareTransitions() error {
	c := s.Params.Care
	top := c.NumCareLevels - 1

	candidates := make([]*people.Person, 0, len(s.Pop.Living))
	for _, p := range s.Pop.Living {
		if p.CareNeedLevel < top {
			candidates = append(candidates, p)
		}
	}

	changed := 0
	for _, p := range candidates {
		scaling := c.MaleAgeCareScaling
		if p.Sex == people.Female {
			scaling = c.FemaleAgeCareScaling
		}
		prob := c.BaseCareProb + math.Exp(float64(p.Age(s.Year))/scaling)*c.PersonCareProb
		if !s.RNG.Chance(prob) {
			continue
		}

		p.CareNeedLevel += careSteps(s.RNG.Float(), c.CDFCareTransition)
		if p.CareNeedLevel > top {
			p.CareNeedLevel = top
		}
		changed++
		s.Narrator.Note(p.House, "#%d now has %s care needs.", p.ID, c.LevelName(p.CareNeedLevel))
	}

	slog.Debug("care transitions", "year", s.Year, "changed", changed)
	return nil
}

// careSteps maps a uniform draw onto how many levels a care transition
// jumps: 1 below cdf[0], 2 below cdf[1], and so on. Draws past the
// second-to-last threshold take the largest jump.
func careSteps(r float64, cdf []float64) int {
	for i := 0; i < len(cdf)-1; i++ {
		if r < cdf[i] {
			return i + 1
		}
	}
	return len(cdf)
}

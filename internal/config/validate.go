package config

import "fmt"

// Validate rejects parameter sets the engine cannot run.
func (p Params) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
	}

	r := p.Run
	if r.EndYear < r.StartYear {
		return fail("endYear %d before startYear %d", r.EndYear, r.StartYear)
	}
	if r.InitialPop < 0 || r.InitialPop%2 != 0 {
		return fail("initialPop %d must be a non-negative even number", r.InitialPop)
	}
	if r.MinStartAge < 0 || r.MaxStartAge < r.MinStartAge {
		return fail("start ages [%d, %d] are not a valid range", r.MinStartAge, r.MaxStartAge)
	}

	c := p.Care
	if c.NumCareLevels < 1 {
		return fail("numCareLevels must be at least 1")
	}
	if len(c.CareDemandInHours) != c.NumCareLevels {
		return fail("careDemandInHours has %d entries, want %d", len(c.CareDemandInHours), c.NumCareLevels)
	}
	if len(c.CareLevelNames) != c.NumCareLevels {
		return fail("careLevelNames has %d entries, want %d", len(c.CareLevelNames), c.NumCareLevels)
	}
	if len(c.CDFCareTransition) == 0 {
		return fail("cdfCareTransition is empty")
	}
	if c.NumAgeClasses < 1 {
		return fail("num5YearAgeClasses must be at least 1")
	}
	if c.WeeksPerYear <= 0 {
		return fail("weeksPerYear must be positive")
	}

	for name, table := range map[string][]float64{
		"femaleMarriageModifierByDecade":   p.Partnership.FemaleMarriageModifierByDecade,
		"maleMarriageModifierByDecade":     p.Partnership.MaleMarriageModifierByDecade,
		"divorceModifierByDecade":          p.Partnership.DivorceModifierByDecade,
		"probAdultMoveOutModifierByDecade": p.Mobility.ProbAdultMoveOutModifierByDecade,
		"probSingleMoveModifierByDecade":   p.Mobility.ProbSingleMoveModifierByDecade,
		"probFamilyMoveModifierByDecade":   p.Mobility.ProbFamilyMoveModifierByDecade,
	} {
		if len(table) == 0 {
			return fail("%s is empty", name)
		}
	}

	if p.Fertility.MaxPregnancyAge <= p.Fertility.MinPregnancyAge {
		return fail("pregnancy ages (%d, %d) leave no fertile years", p.Fertility.MinPregnancyAge, p.Fertility.MaxPregnancyAge)
	}
	if p.Lifecycle.AgeOfRetirement <= p.Lifecycle.AgeOfAdulthood {
		return fail("ageOfRetirement %d must follow ageOfAdulthood %d", p.Lifecycle.AgeOfRetirement, p.Lifecycle.AgeOfAdulthood)
	}

	m := p.Map
	if m.GridX <= 0 || m.GridY <= 0 || m.TownGridDimension <= 0 {
		return fail("map dimensions must be positive")
	}
	if len(m.CDFHouseClasses) == 0 {
		return fail("cdfHouseClasses is empty")
	}
	if !m.Procedural {
		if len(m.Density) != m.GridY || len(m.ClassBias) != m.GridY {
			return fail("density and class-bias grids need %d rows", m.GridY)
		}
		for y := 0; y < m.GridY; y++ {
			if len(m.Density[y]) != m.GridX || len(m.ClassBias[y]) != m.GridX {
				return fail("density and class-bias row %d need %d columns", y, m.GridX)
			}
		}
	}

	if p.Display.MaxTextUpdateList < 1 {
		return fail("maxTextUpdateList must be at least 1")
	}
	return nil
}

// LevelName returns the display name of a care level.
func (c CareParams) LevelName(level int) string {
	if level >= 0 && level < len(c.CareLevelNames) {
		return c.CareLevelNames[level]
	}
	return fmt.Sprintf("level %d", level)
}

package rates

import (
	"fmt"
	"path/filepath"
)

// File names and layout of the empirical projections.
const (
	MaleDeathFile   = "deathrate.male.csv"
	FemaleDeathFile = "deathrate.fem.csv"
	FertilityFile   = "babyrate.txt.csv"

	DeathFirstAge      = 0
	DeathFirstYear     = 1950
	FertilityFirstAge  = 16
	FertilityFirstYear = 1950
)

// Tables bundles the empirical tables a run uses.
type Tables struct {
	MaleDeath   *Table
	FemaleDeath *Table
	Fertility   *Table
}

// Load reads all three tables from dir.
func Load(dir string) (*Tables, error) {
	male, err := LoadCSV(filepath.Join(dir, MaleDeathFile), DeathFirstAge, DeathFirstYear)
	if err != nil {
		return nil, fmt.Errorf("male mortality: %w", err)
	}
	female, err := LoadCSV(filepath.Join(dir, FemaleDeathFile), DeathFirstAge, DeathFirstYear)
	if err != nil {
		return nil, fmt.Errorf("female mortality: %w", err)
	}
	fert, err := LoadCSV(filepath.Join(dir, FertilityFile), FertilityFirstAge, FertilityFirstYear)
	if err != nil {
		return nil, fmt.Errorf("fertility: %w", err)
	}
	return &Tables{MaleDeath: male, FemaleDeath: female, Fertility: fert}, nil
}

// Check verifies that mortality covers every year after deathCutoff and
// fertility every year from fertilityFrom, up to endYear.
func (t *Tables) Check(deathCutoff, fertilityFrom, endYear int) error {
	if t == nil {
		return nil
	}
	if t.MaleDeath != nil {
		if err := t.MaleDeath.CoversYears(deathCutoff+1, endYear); err != nil {
			return err
		}
	}
	if t.FemaleDeath != nil {
		if err := t.FemaleDeath.CoversYears(deathCutoff+1, endYear); err != nil {
			return err
		}
	}
	if t.Fertility != nil {
		if err := t.Fertility.CoversYears(fertilityFrom, endYear); err != nil {
			return err
		}
	}
	return nil
}

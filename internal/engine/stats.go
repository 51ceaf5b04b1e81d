// Annual statistics and the resolution of care need against informal supply.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/lives/internal/people"
)

// careEpsilon is the smallest amount of care treated as non-zero.
const careEpsilon = 0.000001

// Record is one year's row of statistics.
type Record struct {
	Year             int     `json:"year" db:"year"`
	Population       int     `json:"population" db:"population"`
	Households       int     `json:"households" db:"households"`
	AvgHouseholdSize float64 `json:"avg_household_size" db:"avg_household_size"`
	Marriages        int     `json:"marriages" db:"marriages"`
	Divorces         int     `json:"divorces" db:"divorces"`
	CareDemand       float64 `json:"care_demand" db:"care_demand"`
	CareSupply       float64 `json:"care_supply" db:"care_supply"`
	Taxpayers        int     `json:"taxpayers" db:"taxpayers"`
	UnmetNeed        float64 `json:"unmet_need" db:"unmet_need"`
	FamilyCareRatio  float64 `json:"family_care_ratio" db:"family_care_ratio"`
	TaxBurden        float64 `json:"tax_burden" db:"tax_burden"`
	MarriageProp     float64 `json:"marriage_prop" db:"marriage_prop"`
	EverLived        int     `json:"ever_lived" db:"ever_lived"`
}

// Series holds one ordered slice per statistic, one entry per simulated year.
type Series struct {
	Years            []int     `json:"years"`
	Population       []int     `json:"population"`
	Households       []int     `json:"households"`
	AvgHouseholdSize []float64 `json:"avg_household_size"`
	Marriages        []int     `json:"marriages"`
	Divorces         []int     `json:"divorces"`
	CareDemand       []float64 `json:"care_demand"`
	CareSupply       []float64 `json:"care_supply"`
	Taxpayers        []int     `json:"taxpayers"`
	UnmetNeed        []float64 `json:"unmet_need"`
	FamilyCareRatio  []float64 `json:"family_care_ratio"`
	TaxBurden        []float64 `json:"tax_burden"`
	MarriageProp     []float64 `json:"marriage_prop"`
	EverLived        []int     `json:"ever_lived"`
}

// Append adds one year's record to every series.
func (s *Series) Append(r Record) {
	s.Years = append(s.Years, r.Year)
	s.Population = append(s.Population, r.Population)
	s.Households = append(s.Households, r.Households)
	s.AvgHouseholdSize = append(s.AvgHouseholdSize, r.AvgHouseholdSize)
	s.Marriages = append(s.Marriages, r.Marriages)
	s.Divorces = append(s.Divorces, r.Divorces)
	s.CareDemand = append(s.CareDemand, r.CareDemand)
	s.CareSupply = append(s.CareSupply, r.CareSupply)
	s.Taxpayers = append(s.Taxpayers, r.Taxpayers)
	s.UnmetNeed = append(s.UnmetNeed, r.UnmetNeed)
	s.FamilyCareRatio = append(s.FamilyCareRatio, r.FamilyCareRatio)
	s.TaxBurden = append(s.TaxBurden, r.TaxBurden)
	s.MarriageProp = append(s.MarriageProp, r.MarriageProp)
	s.EverLived = append(s.EverLived, r.EverLived)
}

// Len returns the number of recorded years.
func (s *Series) Len() int {
	return len(s.Years)
}

// At returns the i-th recorded year as a record.
func (s *Series) At(i int) Record {
	return Record{
		Year:             s.Years[i],
		Population:       s.Population[i],
		Households:       s.Households[i],
		AvgHouseholdSize: s.AvgHouseholdSize[i],
		Marriages:        s.Marriages[i],
		Divorces:         s.Divorces[i],
		CareDemand:       s.CareDemand[i],
		CareSupply:       s.CareSupply[i],
		Taxpayers:        s.Taxpayers[i],
		UnmetNeed:        s.UnmetNeed[i],
		FamilyCareRatio:  s.FamilyCareRatio[i],
		TaxBurden:        s.TaxBurden[i],
		MarriageProp:     s.MarriageProp[i],
		EverLived:        s.EverLived[i],
	}
}

// Last returns the most recent record and false if nothing is recorded.
func (s *Series) Last() (Record, bool) {
	if s.Len() == 0 {
		return Record{}, false
	}
	return s.At(s.Len() - 1), true
}

// Records returns every recorded year in order.
func (s *Series) Records() []Record {
	out := make([]Record, s.Len())
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// From returns a copy holding only the years from year onwards.
func (s *Series) From(year int) *Series {
	out := &Series{}
	for i, y := range s.Years {
		if y >= year {
			out.Append(s.At(i))
		}
	}
	return out
}

// CareTally is the outcome of one care-matching pass.
type CareTally struct {
	Demand    float64
	Supply    float64
	Unmet     float64
	Taxpayers int
}

// FamilyCareRatio is the share of demand met informally, 0 without demand.
func (t CareTally) FamilyCareRatio() float64 {
	if t.Demand == 0 {
		return 0
	}
	return (t.Demand - t.Unmet) / t.Demand
}

// doStats records the year's statistics and resets the annual tallies.
func (s *Simulation) doStats() error {
	s.Pyramid.Update(s.Year, s.Pop.Living)

	population := len(s.Pop.Living)
	households := s.Map.PruneOccupied()
	avgSize := 0.0
	if households > 0 {
		avgSize = float64(population) / float64(households)
	}

	care := s.resolveCare()
	if care.Taxpayers == 0 {
		return ErrNoTaxpayers
	}
	c := s.Params.Care
	taxBurden := care.Unmet * c.HourlyCostOfCare * c.WeeksPerYear / float64(care.Taxpayers)

	rec := Record{
		Year:             s.Year,
		Population:       population,
		Households:       households,
		AvgHouseholdSize: avgSize,
		Marriages:        s.marriageTally,
		Divorces:         s.divorceTally,
		CareDemand:       care.Demand,
		CareSupply:       care.Supply,
		Taxpayers:        care.Taxpayers,
		UnmetNeed:        care.Unmet,
		FamilyCareRatio:  care.FamilyCareRatio(),
		TaxBurden:        taxBurden,
		MarriageProp:     s.marriedShare(s.Params.Partnership.AdultWomanAge),
		EverLived:        len(s.Pop.All),
	}
	s.Stats.Append(rec)
	s.marriageTally = 0
	s.divorceTally = 0

	slog.Info("yearly report",
		"year", rec.Year,
		"population", rec.Population,
		"households", rec.Households,
		"avg_household", fmt.Sprintf("%.2f", rec.AvgHouseholdSize),
		"marriages", rec.Marriages,
		"divorces", rec.Divorces,
		"unmet_need", fmt.Sprintf("%.1f", rec.UnmetNeed),
		"tax_burden", fmt.Sprintf("%.2f", rec.TaxBurden),
	)
	return nil
}

// resolveCare sets every living person's need and supply for the year and
// matches them greedily: first against housemates, then against living
// children in the same town, in children-list order.
func (s *Simulation) resolveCare() CareTally {
	c := s.Params.Care
	var t CareTally

	for _, p := range s.Pop.Living {
		p.CareRequired = c.CareDemandInHours[p.CareNeedLevel]
		p.CareReceived = 0
		t.Demand += p.CareRequired

		supply := s.baseSupply(p.Status)
		if p.Status.IsTaxpayer() {
			t.Taxpayers++
		}
		switch {
		case p.CareNeedLevel > 1:
			supply = 0
		case p.CareNeedLevel == 1:
			supply *= c.LowCareHandicap
		}
		p.CareAvailable = supply
		t.Supply += supply
	}

	for _, p := range s.Pop.Living {
		if p.CareRequired > careEpsilon {
			if home := s.Map.House(p.House); home != nil {
				for _, donor := range s.Pop.Household(home) {
					if donor.ID == p.ID {
						continue
					}
					if give(donor, p) {
						break
					}
				}
			}
		}

		if p.CareRequired > careEpsilon {
			home := s.Map.House(p.House)
			for _, donor := range s.Pop.Children(p) {
				if donor.Dead {
					continue
				}
				theirs := s.Map.House(donor.House)
				if home == nil || theirs == nil || theirs.Town != home.Town {
					continue
				}
				if give(donor, p) {
					break
				}
			}
		}
	}

	for _, p := range s.Pop.Living {
		t.Unmet += p.CareRequired
	}
	return t
}

// give transfers care hours from donor to recipient. It returns true once
// the recipient's need is fully met.
func give(donor, recipient *people.Person) bool {
	if donor.CareAvailable <= careEpsilon {
		return false
	}
	if donor.CareAvailable > recipient.CareRequired {
		swap := recipient.CareRequired
		recipient.CareRequired = 0
		recipient.CareReceived += swap
		donor.CareAvailable -= swap
		return true
	}
	swap := donor.CareAvailable
	donor.CareAvailable = 0
	recipient.CareRequired -= swap
	recipient.CareReceived += swap
	return false
}

func (s *Simulation) baseSupply(st people.Status) float64 {
	c := s.Params.Care
	switch st {
	case people.Child:
		return c.ChildHours
	case people.AdultAtHome:
		return c.HomeAdultHours
	case people.IndependentAdult:
		return c.WorkingAdultHours
	default:
		return c.RetiredHours
	}
}

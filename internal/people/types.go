// Package people provides the person data model and the population registry
// that owns person identity.
package people

import "github.com/talgya/lives/internal/world"

// Sex is assigned at creation and never changes.
type Sex uint8

const (
	Male   Sex = 0
	Female Sex = 1
)

func (s Sex) String() string {
	if s == Female {
		return "female"
	}
	return "male"
}

// Status is a person's stage of life. Transitions are driven by the
// age-transition and moving phases of the annual pipeline.
type Status uint8

const (
	Child            Status = iota // Lives with parents, supplies little care
	AdultAtHome                    // Adult who has not yet left the parental home
	IndependentAdult               // Runs their own household
	Retired
)

func (s Status) String() string {
	switch s {
	case Child:
		return "child"
	case AdultAtHome:
		return "adult at home"
	case IndependentAdult:
		return "independent adult"
	case Retired:
		return "retired"
	default:
		return "unknown"
	}
}

// IsTaxpayer reports whether people with this status fund unmet care.
func (s Status) IsTaxpayer() bool {
	return s == AdultAtHome || s == IndependentAdult
}

// Person is one simulated individual. Relationships are held as IDs and
// resolved through the Population.
type Person struct {
	ID        world.PersonID `json:"id"`
	BirthYear int            `json:"birth_year"`
	Sex       Sex            `json:"sex"`
	Status    Status         `json:"status"`
	Dead      bool           `json:"dead"`

	// Care
	CareNeedLevel int     `json:"care_need_level"` // 0..numCareLevels-1, never decreases
	CareRequired  float64 `json:"-"`               // Outstanding need this year (hours/week)
	CareAvailable float64 `json:"-"`               // Unspent supply this year
	CareReceived  float64 `json:"-"`               // Supplied to this person this year

	// Family
	Mother   world.PersonID   `json:"mother,omitempty"`
	Father   world.PersonID   `json:"father,omitempty"`
	Partner  world.PersonID   `json:"partner,omitempty"`
	Children []world.PersonID `json:"children,omitempty"` // Append-only, birth/adoption order

	// Housing
	House         world.HouseID `json:"house"`
	SEC           int           `json:"sec"`
	MovedThisYear bool          `json:"-"`
}

// Age returns the person's age in the given year.
func (p *Person) Age(year int) int {
	return year - p.BirthYear
}

// Partnered reports whether the person currently has a partner.
func (p *Person) Partnered() bool {
	return p.Partner != world.NoPerson
}

// AgeClass returns the decade bracket used to index modifier tables,
// clamped to the table length.
func AgeClass(age, tableLen int) int {
	c := age / 10
	if c < 0 {
		return 0
	}
	if c >= tableLen {
		return tableLen - 1
	}
	return c
}

package engine

import "github.com/talgya/lives/internal/people"

// Pyramid counts the living by five-year age class and care level, per sex.
// The last age class is open-ended.
type Pyramid struct {
	Year   int     `json:"year"`
	Male   [][]int `json:"male"`   // [ageClass][careLevel]
	Female [][]int `json:"female"` // [ageClass][careLevel]
}

// NewPyramid allocates an empty pyramid.
func NewPyramid(ageClasses, careLevels int) *Pyramid {
	return &Pyramid{
		Male:   grid(ageClasses, careLevels),
		Female: grid(ageClasses, careLevels),
	}
}

func grid(rows, cols int) [][]int {
	g := make([][]int, rows)
	for i := range g {
		g[i] = make([]int, cols)
	}
	return g
}

// Update recounts the pyramid for year from the living population.
func (p *Pyramid) Update(year int, living []*people.Person) {
	p.Year = year
	for _, g := range [][][]int{p.Male, p.Female} {
		for _, row := range g {
			clear(row)
		}
	}
	last := len(p.Male) - 1
	for _, person := range living {
		class := person.Age(year) / 5
		if class > last {
			class = last
		}
		if class < 0 {
			class = 0
		}
		g := p.Male
		if person.Sex == people.Female {
			g = p.Female
		}
		g[class][person.CareNeedLevel]++
	}
}

// Total returns the number of people counted.
func (p *Pyramid) Total() int {
	n := 0
	for _, g := range [][][]int{p.Male, p.Female} {
		for _, row := range g {
			for _, v := range row {
				n += v
			}
		}
	}
	return n
}

// Clone returns a deep copy.
func (p *Pyramid) Clone() *Pyramid {
	out := &Pyramid{Year: p.Year, Male: make([][]int, len(p.Male)), Female: make([][]int, len(p.Female))}
	for i := range p.Male {
		out.Male[i] = append([]int(nil), p.Male[i]...)
	}
	for i := range p.Female {
		out.Female[i] = append([]int(nil), p.Female[i]...)
	}
	return out
}

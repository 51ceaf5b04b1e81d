// Display-house narration: a capped log of what happens to one household.
package engine

import (
	"fmt"

	"github.com/talgya/lives/internal/people"
	"github.com/talgya/lives/internal/world"
)

// Narrator follows a single house and keeps the most recent lines about
// the people in it. It never draws from the run's random stream.
type Narrator struct {
	m    *world.Map
	pop  *people.Population
	max  int
	year int

	house world.HouseID // Narrated house
	next  world.HouseID // Where the narrated household last moved to
	lines []string
}

// NewNarrator creates a narrator keeping at most max lines.
func NewNarrator(m *world.Map, pop *people.Population, max int) *Narrator {
	return &Narrator{m: m, pop: pop, max: max}
}

// House returns the narrated house.
func (n *Narrator) House() world.HouseID {
	return n.house
}

// Select switches narration to another house.
func (n *Narrator) Select(id world.HouseID) {
	n.house = id
	n.next = world.NoHouse
}

// Vacant reports whether nobody lives in the narrated house any more.
func (n *Narrator) Vacant() bool {
	h := n.m.House(n.house)
	return h == nil || h.Vacant()
}

// Suggested returns the house the narrated household moved to, if any.
func (n *Narrator) Suggested() world.HouseID {
	return n.next
}

// Lines returns a copy of the retained lines, oldest first.
func (n *Narrator) Lines() []string {
	return append([]string(nil), n.lines...)
}

// Resume continues a saved run's narration: the saved house if anyone still
// lives there, and its retained lines, capped as usual.
func (n *Narrator) Resume(h world.HouseID, lines []string) {
	if house := n.m.House(h); house != nil && !house.Vacant() {
		n.Select(h)
	}
	n.lines = nil
	for _, line := range lines {
		n.add(line)
	}
}

// Note records a line if h is the narrated house, and reports whether it did.
func (n *Narrator) Note(h world.HouseID, format string, args ...any) bool {
	if h == world.NoHouse || h != n.house {
		return false
	}
	n.add(fmt.Sprintf("%d: ", n.year) + fmt.Sprintf(format, args...))
	return true
}

func (n *Narrator) add(line string) {
	n.lines = append(n.lines, line)
	if n.max > 0 && len(n.lines) > n.max {
		n.lines = append(n.lines[:0], n.lines[len(n.lines)-n.max:]...)
	}
}

// observeMove is the allocator's relocation hook.
func (n *Narrator) observeMove(from, to *world.House, movers []*people.Person) {
	if to != nil && to.ID == n.house {
		n.add(fmt.Sprintf("%d: New people are moving into %s", n.year, to.Name))
		ids := ""
		for _, p := range movers {
			ids += fmt.Sprintf("#%d ", p.ID)
		}
		n.add(ids)
	}
	if from != nil && from.ID == n.house && to != nil {
		n.next = to.ID
	}
}

// advance follows the household when the narrated house has emptied, or
// falls back to the oldest living person's house.
func (n *Narrator) advance() {
	if !n.Vacant() {
		return
	}
	if h := n.m.House(n.next); h != nil && !h.Vacant() {
		n.Select(h.ID)
		return
	}
	for _, p := range n.pop.Living {
		if h := n.m.House(p.House); h != nil {
			n.Select(h.ID)
			n.add(fmt.Sprintf("%d: Display house empty, going to %s.", n.year, h.Name))
			return
		}
	}
}

package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/lives/internal/people"
)

func TestNarratorNotesOnlyItsHouse(t *testing.T) {
	m := gridMap(1, 1, 2, 0)
	n := NewNarrator(m, nil, 10)
	n.year = 1900
	n.Select(m.Houses[0].ID)

	assert.True(t, n.Note(m.Houses[0].ID, "#%d died aged %d.", 3, 70))
	assert.False(t, n.Note(m.Houses[1].ID, "elsewhere"))
	assert.Equal(t, []string{"1900: #3 died aged 70."}, n.Lines())
}

func TestNarratorKeepsLatestLines(t *testing.T) {
	m := gridMap(1, 1, 1, 0)
	n := NewNarrator(m, nil, 3)
	n.Select(m.Houses[0].ID)
	for i := 0; i < 5; i++ {
		n.Note(m.Houses[0].ID, "line %d", i)
	}
	assert.Equal(t, []string{"0: line 2", "0: line 3", "0: line 4"}, n.Lines())
}

func TestNarratorFollowsHousehold(t *testing.T) {
	p := quietParams()
	m := gridMap(1, 1, 3, 0)
	s := newSim(t, p, m)

	old, next := m.Houses[0], m.Houses[1]
	a := addPerson(s, old, 1870, people.Male, people.IndependentAdult)
	b := addPerson(s, old, 1870, people.Female, people.IndependentAdult)
	s.Narrator.Select(old.ID)
	s.Narrator.year = 1900

	s.Housing.MoveInto(next, []*people.Person{a, b})
	assert.True(t, s.Narrator.Vacant())
	assert.Equal(t, next.ID, s.Narrator.Suggested())

	s.Narrator.advance()
	assert.Equal(t, next.ID, s.Narrator.House())
	assert.Equal(t, 0, int(s.Narrator.Suggested()))

	// Arrivals at the narrated house are announced.
	c := addPerson(s, m.Houses[2], 1880, people.Male, people.IndependentAdult)
	s.Housing.MoveInto(next, []*people.Person{c})
	lines := s.Narrator.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "1900: New people are moving into "+next.Name, lines[0])
	assert.Equal(t, fmt.Sprintf("#%d ", c.ID), lines[1])
}

func TestNarratorFallsBackToFirstLiving(t *testing.T) {
	p := quietParams()
	m := gridMap(1, 1, 3, 0)
	s := newSim(t, p, m)

	gone := addPerson(s, m.Houses[0], 1820, people.Male, people.Retired)
	other := addPerson(s, m.Houses[2], 1870, people.Female, people.IndependentAdult)
	s.Narrator.Select(m.Houses[0].ID)
	s.Narrator.year = 1900

	s.kill(gone, 80)
	s.Pop.CompactLiving()
	s.Narrator.advance()

	assert.Equal(t, other.House, s.Narrator.House())
	lines := s.Narrator.Lines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "1900: Display house empty, going to "+m.Houses[2].Name+".", lines[len(lines)-1])
}

func TestNarratorResume(t *testing.T) {
	m := gridMap(1, 1, 3, 0)
	m.Houses[1].AddOccupant(7)
	n := NewNarrator(m, nil, 2)
	n.Select(m.Houses[0].ID)
	n.add("stale")

	n.Resume(m.Houses[1].ID, []string{"a", "b", "c"})
	assert.Equal(t, m.Houses[1].ID, n.House())
	assert.Equal(t, []string{"b", "c"}, n.Lines())

	// A house emptied since the save keeps the current choice.
	n.Resume(m.Houses[2].ID, nil)
	assert.Equal(t, m.Houses[1].ID, n.House())
	assert.Empty(t, n.Lines())
}

package people

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/lives/internal/entropy"
	"github.com/talgya/lives/internal/world"
)

func TestSpawnIssuesIncreasingIDs(t *testing.T) {
	pop := NewPopulation()
	a := pop.Spawn(1900, Male, Child)
	b := pop.Spawn(1900, Female, Child)
	c := pop.Spawn(1901, Male, Child)

	assert.Equal(t, world.PersonID(1), a.ID)
	assert.Less(t, a.ID, b.ID)
	assert.Less(t, b.ID, c.ID)
	assert.Equal(t, world.PersonID(4), pop.NextID())
	assert.Same(t, b, pop.Get(b.ID))
	assert.Nil(t, pop.Get(world.NoPerson))
}

func TestSpawnFounders(t *testing.T) {
	pop := NewPopulation()
	founders := pop.SpawnFounders(entropy.NewSource(5), 10, 1860, 20, 40)
	require.Len(t, founders, 10)

	for i := 0; i < len(founders); i += 2 {
		man, woman := founders[i], founders[i+1]
		assert.Equal(t, Male, man.Sex)
		assert.Equal(t, Female, woman.Sex)
		assert.Equal(t, man.BirthYear, woman.BirthYear)
		assert.Equal(t, woman.ID, man.Partner)
		assert.Equal(t, man.ID, woman.Partner)
		assert.Equal(t, IndependentAdult, man.Status)
		age := man.Age(1860)
		assert.GreaterOrEqual(t, age, 20)
		assert.LessOrEqual(t, age, 40)
	}
	assert.Len(t, pop.Living, 10)
}

func TestSpawnBaby(t *testing.T) {
	pop := NewPopulation()
	mother := pop.Spawn(1880, Female, IndependentAdult)
	father := pop.Spawn(1878, Male, IndependentAdult)
	pop.Partner(mother, father)
	mother.House = 3
	mother.SEC = 2

	baby := pop.SpawnBaby(entropy.NewSource(1), mother, father, 1905)

	assert.Equal(t, Child, baby.Status)
	assert.Equal(t, 1905, baby.BirthYear)
	assert.Equal(t, world.HouseID(3), baby.House)
	assert.Equal(t, 2, baby.SEC)
	assert.Equal(t, mother.ID, baby.Mother)
	assert.Equal(t, father.ID, baby.Father)
	assert.Equal(t, []world.PersonID{baby.ID}, mother.Children)
	assert.Equal(t, []world.PersonID{baby.ID}, father.Children)
}

func TestBuryAndCompact(t *testing.T) {
	pop := NewPopulation()
	a := pop.Spawn(1900, Male, IndependentAdult)
	b := pop.Spawn(1900, Female, IndependentAdult)
	c := pop.Spawn(1930, Female, Child)
	pop.Partner(a, b)

	pop.Bury(a)
	assert.True(t, a.Dead)
	assert.False(t, a.Partnered())
	assert.False(t, b.Partnered())

	pop.CompactLiving()
	assert.Equal(t, []*Person{b, c}, pop.Living)
	assert.Len(t, pop.All, 3)
	assert.Equal(t, 1, pop.DeadCount())
	assert.Equal(t, len(pop.All), len(pop.Living)+pop.DeadCount())
}

func TestParentsGone(t *testing.T) {
	pop := NewPopulation()
	mother := pop.Spawn(1900, Female, IndependentAdult)
	father := pop.Spawn(1900, Male, IndependentAdult)
	child := pop.Spawn(1925, Male, Child)
	child.Mother, child.Father = mother.ID, father.ID

	assert.False(t, pop.ParentsGone(child))
	pop.Bury(mother)
	assert.False(t, pop.ParentsGone(child))
	pop.Bury(father)
	assert.True(t, pop.ParentsGone(child))

	founder := pop.Spawn(1890, Male, IndependentAdult)
	assert.True(t, pop.ParentsGone(founder))
}

func TestRestore(t *testing.T) {
	pop := NewPopulation()
	require.NoError(t, pop.Restore(&Person{ID: 4}))
	require.NoError(t, pop.Restore(&Person{ID: 9, Dead: true}))
	assert.Error(t, pop.Restore(&Person{ID: 4}))
	assert.Error(t, pop.Restore(&Person{}))

	assert.Len(t, pop.All, 2)
	assert.Len(t, pop.Living, 1)
	assert.Equal(t, world.PersonID(10), pop.NextID())
}

func TestCloneIsIndependent(t *testing.T) {
	pop := NewPopulation()
	mother := pop.Spawn(1900, Female, IndependentAdult)
	father := pop.Spawn(1900, Male, IndependentAdult)
	pop.Partner(mother, father)
	child := pop.Spawn(1925, Male, Child)
	pop.AddChild(mother, child)
	gone := pop.Spawn(1850, Female, Retired)
	pop.Bury(gone)
	pop.CompactLiving()

	c := pop.Clone()
	require.Len(t, c.All, 4)
	require.Len(t, c.Living, 3)
	assert.Equal(t, pop.NextID(), c.NextID())
	assert.NotSame(t, mother, c.Get(mother.ID))
	assert.Equal(t, *mother, *c.Get(mother.ID))
	assert.Same(t, c.Get(father.ID), c.PartnerOf(c.Get(mother.ID)))

	c.Bury(c.Get(mother.ID))
	c.AddChild(c.Get(father.ID), c.Get(child.ID))
	c.Spawn(1930, Female, Child)
	assert.False(t, mother.Dead)
	assert.Equal(t, father.ID, mother.Partner)
	assert.Empty(t, father.Children)
	assert.Len(t, pop.All, 4)
	assert.Equal(t, world.PersonID(5), pop.NextID())
}

func TestAgeClass(t *testing.T) {
	assert.Equal(t, 0, AgeClass(9, 16))
	assert.Equal(t, 3, AgeClass(35, 16))
	assert.Equal(t, 15, AgeClass(212, 16))
	assert.Equal(t, 0, AgeClass(-1, 16))
}

func TestStatus(t *testing.T) {
	assert.True(t, AdultAtHome.IsTaxpayer())
	assert.True(t, IndependentAdult.IsTaxpayer())
	assert.False(t, Child.IsTaxpayer())
	assert.False(t, Retired.IsTaxpayer())
	assert.Equal(t, "adult at home", AdultAtHome.String())
	assert.Equal(t, "female", Female.String())
}

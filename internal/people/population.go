package people

import (
	"fmt"

	"github.com/talgya/lives/internal/world"
)

// Population is the registry of everyone who has ever lived in a run.
// It owns the person ID counter.
type Population struct {
	All    []*Person // Append-only, includes the dead
	Living []*Person // Default sampling pool for uniform choices

	index  map[world.PersonID]*Person
	nextID world.PersonID
}

// NewPopulation creates an empty registry whose first ID is 1.
func NewPopulation() *Population {
	return &Population{
		index:  make(map[world.PersonID]*Person),
		nextID: 1,
	}
}

// NextID returns the ID the next spawned person will receive.
func (p *Population) NextID() world.PersonID {
	return p.nextID
}

// SetNextID sets the next ID to issue (used when restoring a snapshot).
func (p *Population) SetNextID(id world.PersonID) {
	p.nextID = id
}

// Spawn creates a living person with a fresh ID and registers them.
// The caller places them in a house.
func (p *Population) Spawn(birthYear int, sex Sex, status Status) *Person {
	person := &Person{
		ID:        p.nextID,
		BirthYear: birthYear,
		Sex:       sex,
		Status:    status,
	}
	p.nextID++
	p.All = append(p.All, person)
	p.Living = append(p.Living, person)
	p.index[person.ID] = person
	return person
}

// Restore registers a person loaded from a snapshot, keeping their ID.
func (p *Population) Restore(person *Person) error {
	if person.ID == world.NoPerson {
		return fmt.Errorf("person has no id")
	}
	if _, dup := p.index[person.ID]; dup {
		return fmt.Errorf("duplicate person id %d", person.ID)
	}
	p.All = append(p.All, person)
	if !person.Dead {
		p.Living = append(p.Living, person)
	}
	p.index[person.ID] = person
	if person.ID >= p.nextID {
		p.nextID = person.ID + 1
	}
	return nil
}

// Clone returns a deep copy of the registry with the same ID counter.
// Living keeps its order.
func (p *Population) Clone() *Population {
	out := NewPopulation()
	for _, person := range p.All {
		c := *person
		c.Children = append([]world.PersonID(nil), person.Children...)
		out.All = append(out.All, &c)
		if !c.Dead {
			out.Living = append(out.Living, &c)
		}
		out.index[c.ID] = &c
	}
	out.nextID = p.nextID
	return out
}

// Get returns the person with the given ID, or nil.
func (p *Population) Get(id world.PersonID) *Person {
	if id == world.NoPerson {
		return nil
	}
	return p.index[id]
}

// PartnerOf returns the person's partner, or nil.
func (p *Population) PartnerOf(person *Person) *Person {
	return p.Get(person.Partner)
}

// MotherOf returns the person's mother, or nil for the founding generation.
func (p *Population) MotherOf(person *Person) *Person {
	return p.Get(person.Mother)
}

// FatherOf returns the person's father, or nil for the founding generation.
func (p *Population) FatherOf(person *Person) *Person {
	return p.Get(person.Father)
}

// Children resolves the person's children list in order.
func (p *Population) Children(person *Person) []*Person {
	kids := make([]*Person, 0, len(person.Children))
	for _, id := range person.Children {
		if c := p.Get(id); c != nil {
			kids = append(kids, c)
		}
	}
	return kids
}

// ParentsGone reports whether neither parent is alive. Unknown parents
// count as gone.
func (p *Population) ParentsGone(person *Person) bool {
	mother := p.MotherOf(person)
	father := p.FatherOf(person)
	return (mother == nil || mother.Dead) && (father == nil || father.Dead)
}

// Partner links two people symmetrically.
func (p *Population) Partner(a, b *Person) {
	a.Partner = b.ID
	b.Partner = a.ID
}

// Separate clears a partnership on both sides.
func (p *Population) Separate(a *Person) {
	if b := p.PartnerOf(a); b != nil && b.Partner == a.ID {
		b.Partner = world.NoPerson
	}
	a.Partner = world.NoPerson
}

// AddChild appends a child to a parent's children list.
func (p *Population) AddChild(parent, child *Person) {
	parent.Children = append(parent.Children, child.ID)
}

// Bury marks a person dead and breaks their partnership. They stay in All
// and in back-references; call CompactLiving to drop them from Living.
func (p *Population) Bury(person *Person) {
	person.Dead = true
	p.Separate(person)
}

// CompactLiving removes the dead from Living, preserving order.
func (p *Population) CompactLiving() {
	kept := p.Living[:0]
	for _, person := range p.Living {
		if !person.Dead {
			kept = append(kept, person)
		}
	}
	for i := len(kept); i < len(p.Living); i++ {
		p.Living[i] = nil
	}
	p.Living = kept
}

// DeadCount returns how many people in All are dead.
func (p *Population) DeadCount() int {
	n := 0
	for _, person := range p.All {
		if person.Dead {
			n++
		}
	}
	return n
}

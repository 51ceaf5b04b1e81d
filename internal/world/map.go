// Package world provides the map of towns and houses the population lives on.
// Houses live in an arena indexed by HouseID; residents are referenced by PersonID.
package world

import "fmt"

// HouseID identifies a house on the map. IDs start at 1; 0 means no house.
type HouseID int

// PersonID identifies a resident. IDs are issued by the population registry,
// start at 1 and are never reused; 0 means nobody.
type PersonID uint64

// NoHouse is the zero HouseID.
const NoHouse HouseID = 0

// NoPerson is the zero PersonID.
const NoPerson PersonID = 0

// House is a single dwelling. Its size class doubles as the socio-economic
// class of whoever is first housed in it.
type House struct {
	ID        HouseID    `json:"id"`
	Name      string     `json:"name"`
	Size      int        `json:"size"`
	Town      *Town      `json:"-"`
	X         int        `json:"x"`
	Y         int        `json:"y"`
	Occupants []PersonID `json:"occupants"`
}

// Vacant reports whether nobody lives in the house.
func (h *House) Vacant() bool {
	return len(h.Occupants) == 0
}

// AddOccupant appends a resident to the occupant list.
func (h *House) AddOccupant(id PersonID) {
	h.Occupants = append(h.Occupants, id)
}

// RemoveOccupant removes a resident, preserving the order of the others.
// Returns false if the resident was not living here.
func (h *House) RemoveOccupant(id PersonID) bool {
	for i, o := range h.Occupants {
		if o == id {
			h.Occupants = append(h.Occupants[:i], h.Occupants[i+1:]...)
			return true
		}
	}
	return false
}

// Hosts returns true if the resident is listed as living here.
func (h *House) Hosts(id PersonID) bool {
	for _, o := range h.Occupants {
		if o == id {
			return true
		}
	}
	return false
}

// Town is one cell of the map grid.
type Town struct {
	X         int      `json:"x"`
	Y         int      `json:"y"`
	Name      string   `json:"name"`
	Density   float64  `json:"density"`
	ClassBias float64  `json:"class_bias"`
	Houses    []*House `json:"-"`
}

// Map holds every town and house being simulated.
type Map struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	TownGrid int      `json:"town_grid"`
	Towns    []*Town  `json:"-"` // Row-major: index y*Width + x
	Houses   []*House `json:"-"` // Arena: index id-1

	// Occupied lists houses with at least one resident. Duplicates are
	// tolerated between prunes; occupancy truth lives on the houses.
	Occupied []HouseID `json:"-"`
}

// NewMap creates an empty map with the given grid dimensions.
func NewMap(width, height, townGrid int) *Map {
	return &Map{
		Width:    width,
		Height:   height,
		TownGrid: townGrid,
		Towns:    make([]*Town, 0, width*height),
	}
}

// TownName returns the canonical name of the town at (x, y).
func TownName(x, y int) string {
	return fmt.Sprintf("%d-%d", x, y)
}

// HouseName returns the canonical name of a house at (hx, hy) within a town.
func HouseName(t *Town, hx, hy int) string {
	return fmt.Sprintf("%s-%d-%d", t.Name, hx, hy)
}

// AddTown appends a town. Towns must be added in row-major order.
func (m *Map) AddTown(t *Town) {
	m.Towns = append(m.Towns, t)
}

// AddHouse registers a house in its town and in the arena, assigning its ID.
func (m *Map) AddHouse(h *House) {
	h.ID = HouseID(len(m.Houses) + 1)
	m.Houses = append(m.Houses, h)
	h.Town.Houses = append(h.Town.Houses, h)
}

// Clone returns a deep copy of the map. Houses keep their IDs and occupant
// order; towns in the copy own the copied houses.
func (m *Map) Clone() *Map {
	out := NewMap(m.Width, m.Height, m.TownGrid)
	towns := make(map[*Town]*Town, len(m.Towns))
	for _, t := range m.Towns {
		c := &Town{X: t.X, Y: t.Y, Name: t.Name, Density: t.Density, ClassBias: t.ClassBias}
		towns[t] = c
		out.AddTown(c)
	}
	for _, h := range m.Houses {
		out.AddHouse(&House{
			Name:      h.Name,
			Size:      h.Size,
			Town:      towns[h.Town],
			X:         h.X,
			Y:         h.Y,
			Occupants: append([]PersonID(nil), h.Occupants...),
		})
	}
	out.Occupied = append([]HouseID(nil), m.Occupied...)
	return out
}

// TownAt returns the town at grid position (x, y), or nil if out of bounds.
func (m *Map) TownAt(x, y int) *Town {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return nil
	}
	idx := y*m.Width + x
	if idx >= len(m.Towns) {
		return nil
	}
	return m.Towns[idx]
}

// House returns the house with the given ID, or nil.
func (m *Map) House(id HouseID) *House {
	if id <= 0 || int(id) > len(m.Houses) {
		return nil
	}
	return m.Houses[id-1]
}

// Neighbourhood returns the town itself plus every town within one grid
// cell in each direction.
func (m *Map) Neighbourhood(t *Town) []*Town {
	towns := make([]*Town, 0, 9)
	for y := t.Y - 1; y <= t.Y+1; y++ {
		for x := t.X - 1; x <= t.X+1; x++ {
			if nt := m.TownAt(x, y); nt != nil {
				towns = append(towns, nt)
			}
		}
	}
	return towns
}

// MarkOccupied records that a house has residents. Duplicates are allowed.
func (m *Map) MarkOccupied(id HouseID) {
	m.Occupied = append(m.Occupied, id)
}

// MarkVacant drops the first index entry for a house that has just emptied.
func (m *Map) MarkVacant(id HouseID) {
	for i, o := range m.Occupied {
		if o == id {
			m.Occupied = append(m.Occupied[:i], m.Occupied[i+1:]...)
			return
		}
	}
}

// PruneOccupied removes duplicate and now-empty entries from the occupied
// index and returns the number of distinct occupied houses.
func (m *Map) PruneOccupied() int {
	seen := make(map[HouseID]bool, len(m.Occupied))
	kept := m.Occupied[:0]
	for _, id := range m.Occupied {
		h := m.House(id)
		if h == nil || h.Vacant() || seen[id] {
			continue
		}
		seen[id] = true
		kept = append(kept, id)
	}
	m.Occupied = kept
	return len(kept)
}

// RebuildOccupied recomputes the occupied index from house occupancy.
func (m *Map) RebuildOccupied() {
	m.Occupied = m.Occupied[:0]
	for _, h := range m.Houses {
		if !h.Vacant() {
			m.Occupied = append(m.Occupied, h.ID)
		}
	}
}

// HouseCount returns the total number of houses on the map.
func (m *Map) HouseCount() int {
	return len(m.Houses)
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d towns, houses=%d)", m.Width, m.Height, m.HouseCount())
}

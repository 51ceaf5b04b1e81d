package persistence

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/talgya/lives/internal/engine"
	"github.com/talgya/lives/internal/people"
	"github.com/talgya/lives/internal/world"
)

type townRow struct {
	X         int     `db:"x"`
	Y         int     `db:"y"`
	Name      string  `db:"name"`
	Density   float64 `db:"density"`
	ClassBias float64 `db:"class_bias"`
}

type houseRow struct {
	ID            int    `db:"id"`
	Name          string `db:"name"`
	Size          int    `db:"size"`
	TownX         int    `db:"town_x"`
	TownY         int    `db:"town_y"`
	X             int    `db:"x"`
	Y             int    `db:"y"`
	OccupantsJSON string `db:"occupants_json"`
}

type personRow struct {
	ID            int64  `db:"id"`
	BirthYear     int    `db:"birth_year"`
	Sex           int    `db:"sex"`
	Status        int    `db:"status"`
	Dead          bool   `db:"dead"`
	CareNeedLevel int    `db:"care_need_level"`
	Mother        int64  `db:"mother"`
	Father        int64  `db:"father"`
	Partner       int64  `db:"partner"`
	House         int    `db:"house"`
	SEC           int    `db:"sec"`
	ChildrenJSON  string `db:"children_json"`
}

// SaveSnapshot writes the map and population (full replace) and records
// the snapshot year and map layout in metadata.
func (db *DB) SaveSnapshot(snap engine.Snapshot) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"towns", "houses", "people"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	for _, t := range snap.Map.Towns {
		_, err := tx.Exec(
			"INSERT INTO towns (x, y, name, density, class_bias) VALUES (?, ?, ?, ?, ?)",
			t.X, t.Y, t.Name, t.Density, t.ClassBias,
		)
		if err != nil {
			return fmt.Errorf("insert town %s: %w", t.Name, err)
		}
	}

	houseStmt, err := tx.Preparex(`INSERT INTO houses
		(id, name, size, town_x, town_y, x, y, occupants_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer houseStmt.Close()

	for _, h := range snap.Map.Houses {
		occJSON, err := json.Marshal(h.Occupants)
		if err != nil {
			return err
		}
		_, err = houseStmt.Exec(h.ID, h.Name, h.Size, h.Town.X, h.Town.Y, h.X, h.Y, string(occJSON))
		if err != nil {
			return fmt.Errorf("insert house %d: %w", h.ID, err)
		}
	}

	personStmt, err := tx.Preparex(`INSERT INTO people
		(id, birth_year, sex, status, dead, care_need_level,
		 mother, father, partner, house, sec, children_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer personStmt.Close()

	for _, p := range snap.Population.All {
		children := p.Children
		if children == nil {
			children = []world.PersonID{}
		}
		childJSON, err := json.Marshal(children)
		if err != nil {
			return err
		}
		dead := 0
		if p.Dead {
			dead = 1
		}
		_, err = personStmt.Exec(
			int64(p.ID), p.BirthYear, int(p.Sex), int(p.Status), dead, p.CareNeedLevel,
			int64(p.Mother), int64(p.Father), int64(p.Partner), int(p.House), p.SEC,
			string(childJSON),
		)
		if err != nil {
			return fmt.Errorf("insert person %d: %w", p.ID, err)
		}
	}

	meta := map[string]string{
		MetaLastYear:     strconv.Itoa(snap.Year),
		MetaNextPersonID: strconv.FormatUint(uint64(snap.Population.NextID()), 10),
		MetaMapWidth:     strconv.Itoa(snap.Map.Width),
		MetaMapHeight:    strconv.Itoa(snap.Map.Height),
		MetaTownGrid:     strconv.Itoa(snap.Map.TownGrid),
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("save meta %s: %w", k, err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot rebuilds the map and population saved by SaveSnapshot.
func (db *DB) LoadSnapshot() (*engine.Snapshot, error) {
	ok, err := db.HasSnapshot()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSnapshot
	}

	year, err := db.metaInt(MetaLastYear)
	if err != nil {
		return nil, err
	}
	m, err := db.loadMap()
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}
	pop, err := db.loadPopulation()
	if err != nil {
		return nil, fmt.Errorf("load population: %w", err)
	}
	return &engine.Snapshot{Map: m, Population: pop, Year: int(year)}, nil
}

func (db *DB) loadMap() (*world.Map, error) {
	var dims [3]int64
	for i, key := range []string{MetaMapWidth, MetaMapHeight, MetaTownGrid} {
		v, err := db.metaInt(key)
		if err != nil {
			return nil, err
		}
		dims[i] = v
	}
	m := world.NewMap(int(dims[0]), int(dims[1]), int(dims[2]))

	var towns []townRow
	if err := db.conn.Select(&towns, "SELECT x, y, name, density, class_bias FROM towns ORDER BY y, x"); err != nil {
		return nil, err
	}
	if len(towns) != m.Width*m.Height {
		return nil, fmt.Errorf("%d towns saved for a %dx%d map", len(towns), m.Width, m.Height)
	}
	for _, r := range towns {
		m.AddTown(&world.Town{X: r.X, Y: r.Y, Name: r.Name, Density: r.Density, ClassBias: r.ClassBias})
	}

	var houses []houseRow
	if err := db.conn.Select(&houses, "SELECT * FROM houses ORDER BY id"); err != nil {
		return nil, err
	}
	for _, r := range houses {
		town := m.TownAt(r.TownX, r.TownY)
		if town == nil {
			return nil, fmt.Errorf("house %d in unknown town %d-%d", r.ID, r.TownX, r.TownY)
		}
		h := &world.House{Name: r.Name, Size: r.Size, Town: town, X: r.X, Y: r.Y}
		if err := json.Unmarshal([]byte(r.OccupantsJSON), &h.Occupants); err != nil {
			return nil, fmt.Errorf("house %d occupants: %w", r.ID, err)
		}
		m.AddHouse(h)
		if int(h.ID) != r.ID {
			return nil, fmt.Errorf("house ids not contiguous at %d", r.ID)
		}
	}
	m.RebuildOccupied()
	return m, nil
}

func (db *DB) loadPopulation() (*people.Population, error) {
	var rows []personRow
	if err := db.conn.Select(&rows, "SELECT * FROM people ORDER BY id"); err != nil {
		return nil, err
	}

	pop := people.NewPopulation()
	for _, r := range rows {
		p := &people.Person{
			ID:            world.PersonID(r.ID),
			BirthYear:     r.BirthYear,
			Sex:           people.Sex(r.Sex),
			Status:        people.Status(r.Status),
			Dead:          r.Dead,
			CareNeedLevel: r.CareNeedLevel,
			Mother:        world.PersonID(r.Mother),
			Father:        world.PersonID(r.Father),
			Partner:       world.PersonID(r.Partner),
			House:         world.HouseID(r.House),
			SEC:           r.SEC,
		}
		if err := json.Unmarshal([]byte(r.ChildrenJSON), &p.Children); err != nil {
			return nil, fmt.Errorf("person %d children: %w", r.ID, err)
		}
		if err := pop.Restore(p); err != nil {
			return nil, err
		}
	}

	if next, err := db.metaInt(MetaNextPersonID); err == nil && world.PersonID(next) > pop.NextID() {
		pop.SetNextID(world.PersonID(next))
	}
	return pop, nil
}

// Residential mobility: couples moving in together, young adults leaving
// home, singles relocating, retirees moving in with their children, and
// families moving on.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/lives/internal/housing"
	"github.com/talgya/lives/internal/people"
	"github.com/talgya/lives/internal/world"
)

// doMovingAround makes a single pass over the living. Each person is
// handled by the first rule that fits them; anyone already moved this year,
// on their own account or someone else's, is skipped.
func (s *Simulation) doMovingAround() error {
	for _, p := range s.Pop.Living {
		p.MovedThisYear = false
	}

	moves := 0
	for _, p := range s.Pop.Living {
		if p.MovedThisYear {
			continue
		}
		moved, err := s.considerMove(p)
		if err != nil {
			return &PhaseError{Year: s.Year, Phase: PhaseMoving, Entity: personEntity(p), Err: err}
		}
		if moved {
			moves++
		}
	}

	slog.Debug("moving", "year", s.Year, "moves", moves)
	return nil
}

func (s *Simulation) considerMove(p *people.Person) (bool, error) {
	mob := s.Params.Mobility
	partner := s.Pop.PartnerOf(p)

	switch {
	case partner != nil && p.House != partner.House:
		if !s.RNG.Chance(mob.ProbApartWillMoveTogether) {
			return false, nil
		}
		return true, s.moveInTogether(p, partner)

	case p.Status == people.AdultAtHome && partner == nil:
		prob := mob.BasicProbAdultMoveOut * mob.ProbAdultMoveOutModifierByDecade[s.ageClass(p, len(mob.ProbAdultMoveOutModifierByDecade))]
		if !s.RNG.Chance(prob) {
			return false, nil
		}
		movers := append([]*people.Person{p}, s.bringTheKids(p)...)
		pref := s.pickPreference(housing.Here, housing.Near)
		s.Narrator.Note(p.House, "#%d moves out, aged %d.", p.ID, p.Age(s.Year))
		if _, err := s.Housing.FindNewHouse(movers, pref); err != nil {
			return false, err
		}
		p.Status = people.IndependentAdult
		return true, nil

	case p.Status == people.IndependentAdult && partner == nil:
		prob := mob.BasicProbSingleMove * mob.ProbSingleMoveModifierByDecade[s.ageClass(p, len(mob.ProbSingleMoveModifierByDecade))]
		if !s.RNG.Chance(prob) {
			return false, nil
		}
		movers := append([]*people.Person{p}, s.bringTheKids(p)...)
		pref := s.pickPreference(housing.Here, housing.Near)
		s.Narrator.Note(p.House, "#%d moves to meet new people.", p.ID)
		_, err := s.Housing.FindNewHouse(movers, pref)
		return err == nil, err

	case p.Status == people.Retired && s.livesAlone(p):
		return s.moveInWithChild(p)

	case partner != nil:
		prob := mob.BasicProbFamilyMove * mob.ProbFamilyMoveModifierByDecade[s.ageClass(p, len(mob.ProbFamilyMoveModifierByDecade))]
		if !s.RNG.Chance(prob) {
			return false, nil
		}
		movers := s.familyUnit(p, partner)
		pref := s.pickPreference(housing.Here, housing.Near, housing.Far)
		line := "#%d and #%d move house."
		if len(movers) > 2 {
			line = "#%d and #%d move house with kids."
		}
		s.Narrator.Note(p.House, line, p.ID, partner.ID)
		_, err := s.Housing.FindNewHouse(movers, pref)
		return err == nil, err
	}
	return false, nil
}

// moveInTogether reunites a couple living apart, with any children living
// with either of them: into the less crowded of their two homes, or into a
// new house nearby. Neither partner is still living with their parents
// afterwards.
func (s *Simulation) moveInTogether(p, partner *people.Person) error {
	mob := s.Params.Mobility
	movers := s.familyUnit(p, partner)

	if s.RNG.Chance(mob.CoupleMovesToExistingHousehold) {
		mine := s.Map.House(p.House)
		yours := s.Map.House(partner.House)
		if mine == nil || yours == nil {
			return fmt.Errorf("couple %d and %d: missing house", p.ID, partner.ID)
		}
		target := mine
		if len(yours.Occupants) < len(mine.Occupants) {
			target = yours
		}
		s.Narrator.Note(p.House, "#%d and #%d move to existing household.", p.ID, partner.ID)
		s.Housing.MoveInto(target, movers)
	} else {
		pref := s.pickPreference(housing.Here, housing.Near)
		line := "#%d moves out to live with #%d."
		if len(movers) > 2 {
			line = "#%d moves out to live with #%d, bringing the kids."
		}
		s.Narrator.Note(p.House, line, p.ID, partner.ID)
		if _, err := s.Housing.FindNewHouse(movers, pref); err != nil {
			return err
		}
	}

	for _, q := range []*people.Person{p, partner} {
		if q.Status == people.AdultAtHome {
			q.Status = people.IndependentAdult
		}
	}
	return nil
}

// moveInWithChild considers each living child in turn, nearer children
// being likelier, and moves the retiree in with the first one drawn.
func (s *Simulation) moveInWithChild(p *people.Person) (bool, error) {
	mob := s.Params.Mobility
	base := mob.AgingParentsMoveInWithKids
	if s.Year >= s.Params.Run.ThePresent {
		base = mob.VariableMoveBack
	}

	home := s.Map.House(p.House)
	if home == nil {
		return false, fmt.Errorf("no house")
	}
	for _, c := range s.Pop.Children(p) {
		if c.Dead {
			continue
		}
		theirs := s.Map.House(c.House)
		if theirs == nil {
			continue
		}
		distance := float64(world.ManhattanDistance(home.Town, theirs.Town)) + 1
		if !s.RNG.Chance(base / distance) {
			continue
		}
		s.Narrator.Note(p.House, "#%d is going to live with one of their children.", p.ID)
		s.Housing.MoveInto(theirs, []*people.Person{p})
		return true, nil
	}
	return false, nil
}

// bringTheKids returns p's living children who are still children and live
// in p's house, in children-list order.
func (s *Simulation) bringTheKids(p *people.Person) []*people.Person {
	var kids []*people.Person
	for _, c := range s.Pop.Children(p) {
		if c.House == p.House && c.Status == people.Child && !c.Dead {
			kids = append(kids, c)
		}
	}
	return kids
}

// familyUnit is a couple plus the children living with either partner.
// A child of both appears once.
func (s *Simulation) familyUnit(p, partner *people.Person) []*people.Person {
	movers := []*people.Person{p, partner}
	seen := map[world.PersonID]bool{p.ID: true, partner.ID: true}
	for _, parent := range movers[:2] {
		for _, kid := range s.bringTheKids(parent) {
			if !seen[kid.ID] {
				seen[kid.ID] = true
				movers = append(movers, kid)
			}
		}
	}
	return movers
}

func (s *Simulation) livesAlone(p *people.Person) bool {
	h := s.Map.House(p.House)
	return h != nil && len(h.Occupants) == 1
}

// pickPreference draws one of the given preferences uniformly.
func (s *Simulation) pickPreference(prefs ...housing.Preference) housing.Preference {
	return prefs[s.RNG.Pick(len(prefs))]
}

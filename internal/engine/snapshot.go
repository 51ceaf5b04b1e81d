package engine

import (
	"github.com/talgya/lives/internal/people"
	"github.com/talgya/lives/internal/world"
)

// Snapshot is a map and population as of the end of Year. A simulation
// started from it resumes with Year+1.
type Snapshot struct {
	Map        *world.Map
	Population *people.Population
	Year       int
}

// Map generation: towns on a rectangular grid, each filled with houses whose
// number and size mix follow a local density and class-bias value.
package world

import (
	"fmt"

	"github.com/talgya/lives/internal/entropy"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Width           int         // Towns across
	Height          int         // Towns down
	TownGrid        int         // House plots per town side
	CDFHouseClasses []float64   // Cumulative thresholds per size class
	Density         [][]float64 // [y][x] chance a plot holds a house
	ClassBias       [][]float64 // [y][x] shift subtracted from every CDF threshold
	DensityModifier float64     // Global multiplier on Density
}

// Validate checks the grids match the declared dimensions.
func (c GenConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.TownGrid <= 0 {
		return fmt.Errorf("map dimensions must be positive: %dx%d towns, town grid %d", c.Width, c.Height, c.TownGrid)
	}
	if len(c.CDFHouseClasses) == 0 {
		return fmt.Errorf("no house classes configured")
	}
	if err := checkGrid("density", c.Density, c.Width, c.Height); err != nil {
		return err
	}
	return checkGrid("class bias", c.ClassBias, c.Width, c.Height)
}

func checkGrid(name string, grid [][]float64, w, h int) error {
	if len(grid) != h {
		return fmt.Errorf("%s grid has %d rows, want %d", name, len(grid), h)
	}
	for y, row := range grid {
		if len(row) != w {
			return fmt.Errorf("%s grid row %d has %d columns, want %d", name, y, len(row), w)
		}
	}
	return nil
}

// Generate builds a map from cfg, drawing every random value from rng.
func Generate(cfg GenConfig, rng *entropy.Source) (*Map, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := NewMap(cfg.Width, cfg.Height, cfg.TownGrid)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			t := &Town{
				X:         x,
				Y:         y,
				Name:      TownName(x, y),
				Density:   cfg.Density[y][x],
				ClassBias: cfg.ClassBias[y][x],
			}
			m.AddTown(t)
			populateTown(m, t, cfg, rng)
		}
	}
	return m, nil
}

// populateTown places a house on each plot with probability density × modifier.
func populateTown(m *Map, t *Town, cfg GenConfig, rng *entropy.Source) {
	if t.Density <= 0 {
		return
	}
	adjusted := t.Density * cfg.DensityModifier
	for hy := 0; hy < cfg.TownGrid; hy++ {
		for hx := 0; hx < cfg.TownGrid; hx++ {
			if !rng.Chance(adjusted) {
				continue
			}
			m.AddHouse(&House{
				Name: HouseName(t, hx, hy),
				Size: SampleSizeClass(rng.Float(), cfg.CDFHouseClasses, t.ClassBias),
				Town: t,
				X:    hx,
				Y:    hy,
			})
		}
	}
}

// SampleSizeClass maps a uniform draw r onto a size class. Each threshold is
// shifted by the class bias without renormalising, so thresholds may exceed
// 1 or fall below 0. Draws beyond the last threshold land in the last class.
func SampleSizeClass(r float64, cdf []float64, bias float64) int {
	i := 0
	for r > cdf[i]-bias {
		if i == len(cdf)-1 {
			break
		}
		i++
	}
	return i
}

// SizeCounts returns the number of houses per size class.
func SizeCounts(m *Map) map[int]int {
	counts := make(map[int]int)
	for _, h := range m.Houses {
		counts[h.Size]++
	}
	return counts
}

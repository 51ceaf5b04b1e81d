// Procedural density and class-bias grids from layered simplex noise, used
// when no surveyed grid is configured.
package world

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Noise shaping. Below densityFloor a cell stays empty countryside.
const (
	densityFloor   = 0.45
	maxClassBias   = 0.1
	densityOctaves = 4
	biasOctaves    = 2
)

// NoiseGrids returns [y][x] density and class-bias grids for a width×height
// map. Density is in [0, 1]; bias is in [-maxClassBias, maxClassBias].
func NoiseGrids(width, height int, seed int64) (density, bias [][]float64) {
	densNoise := opensimplex.NewNormalized(seed)
	biasNoise := opensimplex.NewNormalized(seed + 1)

	density = make([][]float64, height)
	bias = make([][]float64, height)
	for y := 0; y < height; y++ {
		density[y] = make([]float64, width)
		bias[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			fx, fy := float64(x), float64(y)

			d := octaveNoise(densNoise, fx, fy, densityOctaves, 0.35, 0.5)
			if d < densityFloor {
				d = 0
			} else {
				d = (d - densityFloor) / (1 - densityFloor)
			}
			density[y][x] = math.Round(d*100) / 100

			b := octaveNoise(biasNoise, fx, fy, biasOctaves, 0.25, 0.5)
			bias[y][x] = math.Round((b*2-1)*maxClassBias*100) / 100
		}
	}
	return density, bias
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

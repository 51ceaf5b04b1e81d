package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	p := Defaults()
	require.NoError(t, p.Validate())

	assert.Equal(t, 1860, p.Run.StartYear)
	assert.Equal(t, 2050, p.Run.EndYear)
	assert.Len(t, p.Map.Density, p.Map.GridY)
	assert.Len(t, p.Care.CareDemandInHours, p.Care.NumCareLevels)
	assert.Equal(t, "moderate", p.Care.LevelName(2))
	assert.Equal(t, "level 9", p.Care.LevelName(9))
}

func TestParseOverlaysDefaults(t *testing.T) {
	p, err := Parse([]byte(`
run:
  initialPop: 100
  endYear: 1900
care:
  hourlyCostOfCare: 25.5
map:
  procedural: true
  mapGridXDimension: 4
  mapGridYDimension: 4
`))
	require.NoError(t, err)

	assert.Equal(t, 100, p.Run.InitialPop)
	assert.Equal(t, 1900, p.Run.EndYear)
	assert.Equal(t, 1860, p.Run.StartYear)
	assert.Equal(t, 25.5, p.Care.HourlyCostOfCare)
	assert.Equal(t, 52.18, p.Care.WeeksPerYear)
	assert.True(t, p.Map.Procedural)
}

func TestParseEmptyDocument(t *testing.T) {
	p, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), p)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("run:\n  startYaer: 1900\n"))
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(p *Params){
		"end before start":   func(p *Params) { p.Run.EndYear = p.Run.StartYear - 1 },
		"odd population":     func(p *Params) { p.Run.InitialPop = 3 },
		"start ages swapped": func(p *Params) { p.Run.MinStartAge, p.Run.MaxStartAge = 40, 20 },
		"care table length":  func(p *Params) { p.Care.CareDemandInHours = p.Care.CareDemandInHours[:3] },
		"empty house cdf":    func(p *Params) { p.Map.CDFHouseClasses = nil },
		"grid rows":          func(p *Params) { p.Map.Density = p.Map.Density[:5] },
		"empty divorce table": func(p *Params) {
			p.Partnership.DivorceModifierByDecade = nil
		},
		"no fertile years": func(p *Params) { p.Fertility.MaxPregnancyAge = p.Fertility.MinPregnancyAge },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := Defaults()
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidParams)
		})
	}
}

func TestProceduralSkipsGridCheck(t *testing.T) {
	p := Defaults()
	p.Map.Procedural = true
	p.Map.Density = nil
	p.Map.ClassBias = nil
	assert.NoError(t, p.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run:\n  favouriteSeed: 1234\n"), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), p.Run.FavouriteSeed)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRuntime(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LIVES_SEED", "77")
	t.Setenv("LIVES_API_PORT", "8080")
	t.Setenv("LIVES_CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("LIVES_RESUME", "true")

	rt, err := LoadRuntime()
	require.NoError(t, err)
	assert.Equal(t, int64(77), rt.Seed)
	assert.Equal(t, 8080, rt.API.Port)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, rt.API.CORSOrigins)
	assert.True(t, rt.Resume)
	assert.Equal(t, "info", rt.Logging.Level)
	assert.Equal(t, "data/lives.db", rt.DBPath)

	t.Setenv("LIVES_SEED", "not-a-number")
	_, err = LoadRuntime()
	assert.Error(t, err)
}

func TestRuntimeLoadParams(t *testing.T) {
	p, err := Runtime{}.LoadParams()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), p)
}

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/lives/internal/config"
	"github.com/talgya/lives/internal/engine"
)

func testSim(t *testing.T, years int) *engine.Simulation {
	t.Helper()
	p := config.Defaults()
	p.Run.InitialPop = 20
	p.Run.StartYear = 1860
	p.Run.EndYear = 1880
	p.Run.StatsCollectFrom = 1861
	p.Map.GridX = 2
	p.Map.GridY = 1
	p.Map.TownGridDimension = 10
	p.Map.Density = [][]float64{{1, 1}}
	p.Map.ClassBias = [][]float64{{0, 0}}
	p.Map.DensityModifier = 1

	sim, err := engine.New(p, engine.Options{Seed: 5})
	require.NoError(t, err)
	for i := 0; i < years; i++ {
		require.NoError(t, sim.Step())
	}
	return sim
}

func testServer(t *testing.T, years int) (*Server, *engine.Simulation) {
	t.Helper()
	sim := testSim(t, years)
	feed := NewFeed()
	feed.Publish(sim)
	return NewServer(feed, Config{CORSOrigins: []string{"http://localhost:3000"}}), sim
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStatus(t *testing.T) {
	srv, sim := testServer(t, 3)
	rec := get(t, srv.Handler(), "/api/v1/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var st Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, sim.RunID, st.RunID)
	assert.Equal(t, int64(5), st.Seed)
	assert.Equal(t, 1862, st.Year)
	assert.Equal(t, 1860, st.StartYear)
	assert.Equal(t, 1880, st.EndYear)
	assert.Equal(t, len(sim.Pop.Living), st.Population)
	assert.False(t, st.Done)
}

func TestStatsHistory(t *testing.T) {
	srv, sim := testServer(t, 4)
	h := srv.Handler()

	rec := get(t, h, "/api/v1/stats/history")
	require.Equal(t, http.StatusOK, rec.Code)
	var all engine.Series
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Equal(t, []int{1861, 1862, 1863}, all.Years, "years before collection are held back")
	assert.Equal(t, sim.Stats.Population[1:], all.Population)

	rec = get(t, h, "/api/v1/stats/history?from=1862")
	require.Equal(t, http.StatusOK, rec.Code)
	var tail engine.Series
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tail))
	assert.Equal(t, []int{1862, 1863}, tail.Years)

	rec = get(t, h, "/api/v1/stats/history?from=soon")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNarration(t *testing.T) {
	srv, sim := testServer(t, 2)
	rec := get(t, srv.Handler(), "/api/v1/narration")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		House string   `json:"house"`
		Lines []string `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, sim.Map.House(sim.Narrator.House()).Name, body.House)
	assert.Equal(t, len(sim.Narrator.Lines()), len(body.Lines))
}

func TestPyramid(t *testing.T) {
	empty := NewServer(NewFeed(), Config{})
	assert.Equal(t, http.StatusNotFound, get(t, empty.Handler(), "/api/v1/pyramid").Code)

	srv, sim := testServer(t, 1)
	rec := get(t, srv.Handler(), "/api/v1/pyramid")
	require.Equal(t, http.StatusOK, rec.Code)

	var py engine.Pyramid
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &py))
	assert.Equal(t, 1860, py.Year)
	assert.Equal(t, len(sim.Pop.Living), py.Total())
}

func TestFeedIsACopy(t *testing.T) {
	sim := testSim(t, 1)
	feed := NewFeed()
	feed.Publish(sim)
	require.NoError(t, sim.Step())

	assert.Equal(t, 1860, feed.Status().Year)
	assert.Equal(t, 0, feed.Series(0).Len())
	assert.Equal(t, 1860, feed.Pyramid().Year)
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := testServer(t, 1)
	assert.Equal(t, http.StatusNotFound, get(t, srv.Handler(), "/api/v1/people").Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRateLimit(t *testing.T) {
	srv := NewServer(NewFeed(), Config{RateLimitRPS: 0.001, RateLimitBurst: 2})
	h := srv.Handler()

	assert.Equal(t, http.StatusOK, get(t, h, "/api/v1/status").Code)
	assert.Equal(t, http.StatusOK, get(t, h, "/api/v1/status").Code)
	rec := get(t, h, "/api/v1/status")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	other := httptest.NewRecorder()
	h.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	srv := NewServer(NewFeed(), Config{})
	h := srv.Handler()
	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, get(t, h, "/api/v1/status").Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.2:5555"
	assert.Equal(t, "198.51.100.2", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", clientIP(req))
}

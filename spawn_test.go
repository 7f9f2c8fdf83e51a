package main

import (
	"math"
	"testing"
)

func TestSpawnEmptyWorld(t *testing.T) {
	cfg := testConfig()
	rng := &seqRand{vals: []float64{0.25, 0.75}}
	pos := FindSafeSpawnLocation(rng, cfg, nil, nil, 100)
	if pos.X != 500 || pos.Y != 1500 {
		t.Errorf("expected first sample (500,1500), got %+v", pos)
	}
}

func TestSpawnSkipsUnsafe(t *testing.T) {
	cfg := testConfig()
	ais := []*AICell{{X: 500, Y: 1500, Score: 50}}
	rng := &seqRand{vals: []float64{0.25, 0.75, 0.9, 0.1}}
	pos := FindSafeSpawnLocation(rng, cfg, ais, nil, 100)
	if pos.X != 1800 || pos.Y != 200 {
		t.Errorf("expected second sample (1800,200), got %+v", pos)
	}
}

func TestSpawnAvoidsPlayerCells(t *testing.T) {
	cfg := testConfig()
	cells := []*PlayerCell{{X: 500, Y: 1500, Score: 100}}
	rng := &seqRand{vals: []float64{0.25, 0.75, 0.9, 0.1}}
	pos := FindSafeSpawnLocation(rng, cfg, nil, cells, 100)
	if Distance(pos.X, pos.Y, 500, 1500) < Size(100)+100 {
		t.Errorf("spawn %+v too close to player cell", pos)
	}
}

func TestSpawnFallbackPicksFarthest(t *testing.T) {
	cfg := testConfig()
	cfg.Spawn.Attempts = 2
	cfg.Spawn.FallbackSamples = 2
	// Radius covers the whole world, so nothing is ever safe
	ais := []*AICell{{X: 0, Y: 0, Score: 1e8}}
	rng := &seqRand{vals: []float64{
		0.1, 0.1, 0.1, 0.1, // attempts
		0.2, 0.2, // initial best
		0.3, 0.3, 0.9, 0.9, // fallback samples
	}}
	pos := FindSafeSpawnLocation(rng, cfg, ais, nil, 100)
	if pos.X != 1800 || pos.Y != 1800 {
		t.Errorf("expected farthest sample (1800,1800), got %+v", pos)
	}
}

func TestSpawnIgnoresBadEntries(t *testing.T) {
	cfg := testConfig()
	ais := []*AICell{nil, {X: math.NaN(), Y: 10, Score: 50}}
	cells := []*PlayerCell{nil, {X: 500, Y: 1500, Score: math.Inf(1)}}
	rng := &seqRand{vals: []float64{0.25, 0.75}}
	pos := FindSafeSpawnLocation(rng, cfg, ais, cells, 100)
	if pos.X != 500 || pos.Y != 1500 {
		t.Errorf("bad entries should be ignored, got %+v", pos)
	}
}

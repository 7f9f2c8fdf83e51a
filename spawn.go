package main

import "math"

// FindSafeSpawnLocation samples positions until one keeps at least
// Size(score)+minDistance from every AI and player cell. When the attempt
// budget runs out it returns the best of a few extra samples, ranked by
// distance to the nearest entity, whether or not that one is safe.
// nil entries and entries with non-finite fields are ignored.
func FindSafeSpawnLocation(rng Rand, cfg *Config, ais []*AICell, cells []*PlayerCell, minDistance float64) Vec2 {
	world := cfg.World.Size

	for attempt := 0; attempt < cfg.Spawn.Attempts; attempt++ {
		pos := RandomPosition(rng, world)
		if isSafe(pos, ais, cells, minDistance) {
			return pos
		}
	}

	best := RandomPosition(rng, world)
	bestMin := 0.0
	for i := 0; i < cfg.Spawn.FallbackSamples; i++ {
		pos := RandomPosition(rng, world)
		nearest := nearestEntity(pos, ais, cells)
		if nearest > bestMin {
			bestMin = nearest
			best = pos
		}
	}
	return best
}

func isSafe(pos Vec2, ais []*AICell, cells []*PlayerCell, minDistance float64) bool {
	for _, ai := range ais {
		if ai == nil || !finite(ai.X, ai.Y, ai.Score) {
			continue
		}
		if Distance(pos.X, pos.Y, ai.X, ai.Y) < Size(ai.Score)+minDistance {
			return false
		}
	}
	for _, c := range cells {
		if c == nil || !finite(c.X, c.Y, c.Score) {
			continue
		}
		if Distance(pos.X, pos.Y, c.X, c.Y) < Size(c.Score)+minDistance {
			return false
		}
	}
	return true
}

func nearestEntity(pos Vec2, ais []*AICell, cells []*PlayerCell) float64 {
	nearest := math.Inf(1)
	for _, ai := range ais {
		if ai == nil || !finite(ai.X, ai.Y) {
			continue
		}
		nearest = math.Min(nearest, Distance(pos.X, pos.Y, ai.X, ai.Y))
	}
	for _, c := range cells {
		if c == nil || !finite(c.X, c.Y) {
			continue
		}
		nearest = math.Min(nearest, Distance(pos.X, pos.Y, c.X, c.Y))
	}
	return nearest
}

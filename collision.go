package main

import "sort"

// handleFoodCollisions lets player cells, then AI cells, absorb every food
// pellet whose center lies inside their radius
func (s *Simulation) handleFoodCollisions(r *TickReport) {
	if len(s.food) == 0 {
		return
	}
	s.grid.Clear()
	for i, f := range s.food {
		s.grid.Insert(f.X, f.Y, EntityRef{Kind: KindFood, Idx: i})
	}
	eaten := make([]bool, len(s.food))

	for _, c := range s.player.Cells {
		if gained := s.eatFood(c.X, c.Y, c.Size(), eaten); gained > 0 {
			c.Score += gained
			c.LastFoodTime = s.now
		}
	}
	for _, ai := range s.ais {
		if gained := s.eatFood(ai.X, ai.Y, ai.Size(), eaten); gained > 0 {
			ai.Score += gained
			ai.LastFoodTime = s.now
		}
	}

	before := len(s.food)
	s.food = compact(s.food, eaten)
	r.FoodEaten += before - len(s.food)
}

// eatFood marks uneaten food within radius of (x, y) as eaten, in ascending
// index order, and returns the total score gained
func (s *Simulation) eatFood(x, y, radius float64, eaten []bool) float64 {
	s.refBuf = s.grid.QueryBuf(x, y, radius, s.refBuf[:0])
	sort.Slice(s.refBuf, func(i, j int) bool { return s.refBuf[i].Idx < s.refBuf[j].Idx })

	gained := 0.0
	for _, ref := range s.refBuf {
		if ref.Kind != KindFood || eaten[ref.Idx] {
			continue
		}
		f := s.food[ref.Idx]
		if Distance(x, y, f.X, f.Y) < radius {
			eaten[ref.Idx] = true
			gained += f.Score
		}
	}
	return gained
}

// handlePlayerAICollisions resolves predation between player cells and AI
// cells in either direction
func (s *Simulation) handlePlayerAICollisions(r *TickReport) {
	cells := s.player.Cells
	if len(cells) == 0 || len(s.ais) == 0 {
		return
	}
	threshold := s.cfg.World.CollisionThreshold
	cellGone := make([]bool, len(cells))
	aiGone := make([]bool, len(s.ais))

	for i, c := range cells {
		for j, ai := range s.ais {
			if cellGone[i] {
				break
			}
			if aiGone[j] {
				continue
			}
			switch {
			case canEat(c.X, c.Y, c.Score, ai.X, ai.Y, ai.Score, threshold):
				c.Score += ai.Score
				c.LastFoodTime = s.now
				aiGone[j] = true
				r.AIEaten++
			case canEat(ai.X, ai.Y, ai.Score, c.X, c.Y, c.Score, threshold):
				ai.Score += c.Score
				ai.LastFoodTime = s.now
				cellGone[i] = true
				r.PlayerCellsLost++
			}
		}
	}

	s.player.Cells = compact(cells, cellGone)
	s.ais = compact(s.ais, aiGone)
}

// handleAIAICollisions resolves predation among AI cells, lower index first
func (s *Simulation) handleAIAICollisions(r *TickReport) {
	if len(s.ais) < 2 {
		return
	}
	threshold := s.cfg.World.CollisionThreshold
	gone := make([]bool, len(s.ais))

	for i := 0; i < len(s.ais); i++ {
		for j := i + 1; j < len(s.ais); j++ {
			if gone[i] {
				break
			}
			if gone[j] {
				continue
			}
			a, b := s.ais[i], s.ais[j]
			switch {
			case canEat(a.X, a.Y, a.Score, b.X, b.Y, b.Score, threshold):
				a.Score += b.Score
				a.LastFoodTime = s.now
				gone[j] = true
				r.AIEaten++
			case canEat(b.X, b.Y, b.Score, a.X, a.Y, a.Score, threshold):
				b.Score += a.Score
				b.LastFoodTime = s.now
				gone[i] = true
				r.AIEaten++
			}
		}
	}

	s.ais = compact(s.ais, gone)
}

// respawnEntities refills food and AI to their target counts and gives the
// player a fresh cell if it has none
func (s *Simulation) respawnEntities(r *TickReport) {
	cfg := s.cfg
	for len(s.food) < cfg.World.FoodCount {
		s.food = append(s.food, NewFood(s.rng, s.newID("f"), cfg))
		r.FoodRespawned++
	}

	for len(s.ais) < cfg.World.AICount {
		pos := FindSafeSpawnLocation(s.rng, cfg, s.ais, s.player.Cells, cfg.Spawn.SafeDistance)
		s.ais = append(s.ais, NewAICell(s.rng, s.newID("a"), pos, cfg.World.AIStartingScore, s.now))
		r.AIRespawned++
	}

	if len(s.player.Cells) == 0 {
		pos := FindSafeSpawnLocation(s.rng, cfg, s.ais, nil, cfg.Spawn.SafeDistance)
		s.player.Cells = append(s.player.Cells, &PlayerCell{
			ID:           s.newID("c"),
			X:            pos.X,
			Y:            pos.Y,
			Score:        cfg.World.StartingScore,
			LastFoodTime: s.now,
		})
		r.PlayerRespawned = true
	}
}

// compact drops the entries flagged in gone, keeping order
func compact[T any](items []T, gone []bool) []T {
	kept := items[:0]
	for i, it := range items {
		if !gone[i] {
			kept = append(kept, it)
		}
	}
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	return kept
}

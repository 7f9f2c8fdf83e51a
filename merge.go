package main

import "math"

// Distance bands for a pair of same-owner cells, with c = Size(a)+Size(b)
// and d the distance between their centers:
//
//	mergeable, d <= c+Merge.Distance             consolidate
//	mergeable, d <= c*Merge.AttractRange         attract (Merge.Force)
//	cooling down, d < c                          repel (Merge.StartForce)
//
// Anything else leaves the pair alone.

// MergeCooldown is how long after a split two cells must wait to merge
func (cfg *Config) MergeCooldown() float64 {
	return math.Max(cfg.Split.Cooldown, cfg.Merge.Cooldown)
}

// UpdateMerging applies merge forces between the player's cells and
// consolidates touching pairs whose cooldown has elapsed. Pairs are visited
// in ascending index order and a cell takes part in at most one
// consolidation per call. Returns the number of consolidations.
func (p *Player) UpdateMerging(cfg *Config, now, deltaMillis float64) int {
	cells := p.Cells
	if len(cells) < 2 {
		return 0
	}
	frames := deltaMillis / FrameMillis
	if !(frames > 0) {
		frames = 1
	}
	cooldown := cfg.MergeCooldown()
	merged := make([]bool, len(cells))
	absorbed := make([]bool, len(cells))
	merges := 0

	for i := 0; i < len(cells); i++ {
		if merged[i] {
			continue
		}
		for j := i + 1; j < len(cells); j++ {
			if merged[i] {
				break
			}
			if merged[j] {
				continue
			}
			a, b := cells[i], cells[j]
			contact := a.Size() + b.Size()
			d := Distance(a.X, a.Y, b.X, b.Y)
			mergeable := now-math.Max(a.SplitTime, b.SplitTime) >= cooldown

			switch {
			case mergeable && d <= contact+cfg.Merge.Distance:
				consolidate(a, b)
				merged[i], merged[j] = true, true
				absorbed[j] = true
				merges++
			case mergeable && d <= contact*cfg.Merge.AttractRange:
				pushPair(a, b, d, -cfg.Merge.Force*frames, 0)
			case !mergeable && d < contact:
				overlap := (contact - d) / contact
				pushPair(a, b, d, cfg.Merge.StartForce*overlap*frames, 1)
			}
		}
	}

	if merges == 0 {
		return 0
	}
	kept := cells[:0]
	for i, c := range cells {
		if !absorbed[i] {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(cells); i++ {
		cells[i] = nil
	}
	p.Cells = kept
	return merges
}

// consolidate folds b into a: scores add, position and velocity become the
// mass-weighted mean, and the later split time carries over.
func consolidate(a, b *PlayerCell) {
	total := a.Score + b.Score
	if total > 0 {
		a.X = (a.X*a.Score + b.X*b.Score) / total
		a.Y = (a.Y*a.Score + b.Y*b.Score) / total
		a.VX = (a.VX*a.Score + b.VX*b.Score) / total
		a.VY = (a.VY*a.Score + b.VY*b.Score) / total
	}
	a.Score = total
	a.SplitTime = math.Max(a.SplitTime, b.SplitTime)
	a.LastFoodTime = math.Max(a.LastFoodTime, b.LastFoodTime)
}

// pushPair adds an impulse of the given strength along the a→b axis, pushing
// apart for positive strength and together for negative. Each cell moves in
// proportion to the other's share of the pair's mass. fallback selects the
// axis used when the centers coincide: 0 skips, 1 uses ±X.
func pushPair(a, b *PlayerCell, d, strength float64, fallback int) {
	var ux, uy float64
	if d > 0 && finite(d) {
		ux = (b.X - a.X) / d
		uy = (b.Y - a.Y) / d
	} else if fallback == 1 {
		ux, uy = 1, 0
	} else {
		return
	}

	shareA, shareB := 0.5, 0.5
	if total := a.Score + b.Score; total > 0 {
		shareA = b.Score / total
		shareB = a.Score / total
	}
	a.VX -= ux * strength * shareA
	a.VY -= uy * strength * shareA
	b.VX += ux * strength * shareB
	b.VY += uy * strength * shareB
}

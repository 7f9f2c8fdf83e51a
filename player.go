package main

import "math"

// FrameMillis is the reference frame length that velocities are expressed in
const FrameMillis = 1000.0 / 60.0

// PlayerIntent is the player's input sampled at the start of a tick
type PlayerIntent struct {
	TargetX, TargetY float64 // pointer in world coords
	Boost            bool
	Split            bool
}

// Player owns a set of cells and the boost state shared by all of them
type Player struct {
	Name       string
	Cells      []*PlayerCell
	Boosting   bool
	boostLatch bool // boost flag seen on the previous tick
}

// NewPlayer creates a player owning a single cell
func NewPlayer(name string, cell *PlayerCell) *Player {
	return &Player{Name: name, Cells: []*PlayerCell{cell}}
}

// TotalScore sums the score of every owned cell
func (p *Player) TotalScore() float64 {
	total := 0.0
	for _, c := range p.Cells {
		total += c.Score
	}
	return total
}

// UpdateBoost applies the boost intent and drains mass while boosting.
// Boost turns off for the whole player as soon as any cell hits the floor,
// and only re-arms after the boost flag has been released.
func (p *Player) UpdateBoost(cfg BoostConfig, want bool, deltaMillis float64) {
	if !want {
		p.Boosting = false
	} else if !p.boostLatch {
		p.Boosting = true
	}
	p.boostLatch = want

	if !p.Boosting || !(deltaMillis > 0) {
		return
	}
	dt := deltaMillis / 1000
	for _, c := range p.Cells {
		loss := c.Score * cfg.MassLossRate * dt
		c.Score = math.Max(cfg.MinScore, c.Score-loss)
		if c.Score <= cfg.MinScore {
			p.Boosting = false
		}
	}
}

// Move steers every cell toward the pointer. Max speed falls with size.
func (p *Player) Move(cfg *Config, target Vec2, deltaMillis float64) {
	frames := deltaMillis / FrameMillis
	if !(frames > 0) {
		return
	}
	steer := math.Min(1, cfg.Movement.PlayerSteer*frames)
	world := cfg.World.Size

	for _, c := range p.Cells {
		var wantVX, wantVY float64
		dx := target.X - c.X
		dy := target.Y - c.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist > 0 && finite(dist) {
			speed := cfg.Movement.PlayerSpeed / c.Size()
			if p.Boosting {
				speed *= cfg.Boost.SpeedMultiplier
			}
			if cfg.Movement.PlayerSlowRadius > 0 {
				speed *= math.Min(1, dist/cfg.Movement.PlayerSlowRadius)
			}
			wantVX = dx / dist * speed
			wantVY = dy / dist * speed
		}

		c.VX += (wantVX - c.VX) * steer
		c.VY += (wantVY - c.VY) * steer

		c.X = Clamp(c.X+c.VX*frames, 0, world)
		c.Y = Clamp(c.Y+c.VY*frames, 0, world)
	}
}

// Split halves every eligible cell while the player is below the cell cap.
// The new half is launched toward the pointer. Returns the number of splits.
func (p *Player) Split(cfg *Config, target Vec2, now float64, newID func() string) int {
	splits := 0
	n := len(p.Cells)
	for i := 0; i < n; i++ {
		if len(p.Cells) >= cfg.Split.MaxCells {
			break
		}
		c := p.Cells[i]
		if c.Score < cfg.Split.MinScore {
			continue
		}

		dirX, dirY := splitDirection(c, target)
		half := math.Max(c.Score/2, cfg.Split.MinScore/2)
		c.Score = half
		c.SplitTime = now

		offset := Size(half)
		child := &PlayerCell{
			ID:           newID(),
			X:            Clamp(c.X+dirX*offset, 0, cfg.World.Size),
			Y:            Clamp(c.Y+dirY*offset, 0, cfg.World.Size),
			Score:        half,
			VX:           c.VX + dirX*cfg.Split.Velocity,
			VY:           c.VY + dirY*cfg.Split.Velocity,
			SplitTime:    now,
			LastFoodTime: c.LastFoodTime,
		}
		p.Cells = append(p.Cells, child)
		splits++
	}
	return splits
}

// splitDirection is the unit vector toward the pointer, falling back to the
// cell's heading and then +X when either is zero length.
func splitDirection(c *PlayerCell, target Vec2) (float64, float64) {
	dx := target.X - c.X
	dy := target.Y - c.Y
	if d := math.Sqrt(dx*dx + dy*dy); d > 0 && finite(d) {
		return dx / d, dy / d
	}
	if s := c.Speed(); s > 0 && finite(s) {
		return c.VX / s, c.VY / s
	}
	return 1, 0
}

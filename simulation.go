package main

import (
	"math"
	"strconv"
)

// TickReport summarizes what changed during one tick. Hosts read it after
// Tick returns instead of subscribing to population events.
type TickReport struct {
	Tick            uint64
	FoodEaten       int
	AIEaten         int // AI cells consumed by the player or other AI
	PlayerCellsLost int
	Splits          int
	Merges          int
	FoodRespawned   int
	AIRespawned     int
	PlayerRespawned bool
}

// Add accumulates o into r
func (r *TickReport) Add(o TickReport) {
	r.Tick = o.Tick
	r.FoodEaten += o.FoodEaten
	r.AIEaten += o.AIEaten
	r.PlayerCellsLost += o.PlayerCellsLost
	r.Splits += o.Splits
	r.Merges += o.Merges
	r.FoodRespawned += o.FoodRespawned
	r.AIRespawned += o.AIRespawned
	r.PlayerRespawned = r.PlayerRespawned || o.PlayerRespawned
}

// Simulation is the authoritative world state. It is not safe for
// concurrent use; the host serializes calls.
type Simulation struct {
	cfg    *Config
	rng    Rand
	now    float64 // sim clock, ms
	tick   uint64
	nextID uint64

	player *Player
	ais    []*AICell
	food   []*Food

	grid   *SpatialGrid
	refBuf []EntityRef
}

// NewSimulation creates a world with one player cell at the center and the
// food and AI populations filled to their targets
func NewSimulation(cfg *Config, rng Rand, playerName string) *Simulation {
	s := newSimulation(cfg, rng, playerName)
	center := cfg.World.Size / 2
	s.player.Cells = append(s.player.Cells, &PlayerCell{
		ID:    s.newID("c"),
		X:     center,
		Y:     center,
		Score: cfg.World.StartingScore,
	})
	s.respawnEntities(&TickReport{})
	return s
}

// newSimulation creates an empty world
func newSimulation(cfg *Config, rng Rand, playerName string) *Simulation {
	return &Simulation{
		cfg:    cfg,
		rng:    rng,
		player: &Player{Name: playerName},
		grid:   NewSpatialGrid(cfg.World.Size, cfg.World.Size),
	}
}

func (s *Simulation) newID(prefix string) string {
	s.nextID++
	return prefix + strconv.FormatUint(s.nextID, 10)
}

// Tick advances the world by deltaMillis of elapsed time. Negative or
// non-finite deltas are treated as zero.
func (s *Simulation) Tick(deltaMillis float64, intent PlayerIntent) TickReport {
	if !(deltaMillis > 0) || math.IsInf(deltaMillis, 0) {
		deltaMillis = 0
	}
	s.tick++
	s.now += deltaMillis
	r := TickReport{Tick: s.tick}

	target := Vec2{X: intent.TargetX, Y: intent.TargetY}
	if !finite(target.X, target.Y) {
		target = s.Camera()
	}

	p := s.player
	p.UpdateBoost(s.cfg.Boost, intent.Boost, deltaMillis)
	for _, c := range p.Cells {
		ApplyDecay(s.cfg.Decay, c, deltaMillis, s.now)
	}
	for _, ai := range s.ais {
		ApplyDecay(s.cfg.Decay, ai, deltaMillis, s.now)
	}

	p.Move(s.cfg, target, deltaMillis)
	if intent.Split {
		r.Splits = p.Split(s.cfg, target, s.now, func() string { return s.newID("c") })
	}
	r.Merges = p.UpdateMerging(s.cfg, s.now, deltaMillis)

	for _, ai := range s.ais {
		ai.Update(s.rng, s.cfg, deltaMillis)
	}

	s.handleFoodCollisions(&r)
	s.handlePlayerAICollisions(&r)
	s.handleAIAICollisions(&r)
	s.respawnEntities(&r)
	return r
}

// Now returns the sim clock in milliseconds
func (s *Simulation) Now() float64 { return s.now }

// TickCount returns the number of ticks run
func (s *Simulation) TickCount() uint64 { return s.tick }

// Player returns the player's name and boost state
func (s *Simulation) Player() (name string, boosting bool) {
	return s.player.Name, s.player.Boosting
}

// SetPlayerName renames the player
func (s *Simulation) SetPlayerName(name string) { s.player.Name = name }

// PlayerCells returns a copy of the player's cells
func (s *Simulation) PlayerCells() []PlayerCell {
	out := make([]PlayerCell, len(s.player.Cells))
	for i, c := range s.player.Cells {
		out[i] = *c
	}
	return out
}

// AICells returns a copy of the AI population
func (s *Simulation) AICells() []AICell {
	out := make([]AICell, len(s.ais))
	for i, a := range s.ais {
		out[i] = *a
	}
	return out
}

// Food returns a copy of the food population
func (s *Simulation) Food() []Food {
	out := make([]Food, len(s.food))
	for i, f := range s.food {
		out[i] = *f
	}
	return out
}

// Camera returns the player's center of mass, the anchor for the view
func (s *Simulation) Camera() Vec2 {
	return CenterOfMass(s.player.Cells)
}

// PlayerScore returns the player's total score
func (s *Simulation) PlayerScore() float64 {
	return s.player.TotalScore()
}

// Snapshot returns the wire form of the current world
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     s.tick,
		Time:     s.now,
		Camera:   s.Camera(),
		Score:    round1(s.PlayerScore()),
		Boosting: s.player.Boosting,
		Cells:    make([]CellState, 0, len(s.player.Cells)),
		AIs:      make([]AIState, 0, len(s.ais)),
		Food:     make([]FoodState, 0, len(s.food)),
	}
	for _, c := range s.player.Cells {
		snap.Cells = append(snap.Cells, c.ToState())
	}
	for _, a := range s.ais {
		snap.AIs = append(snap.AIs, a.ToState())
	}
	for _, f := range s.food {
		snap.Food = append(snap.Food, f.ToState())
	}
	return snap
}

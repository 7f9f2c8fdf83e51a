package main

import (
	"fmt"
	"math"
)

var aiNames = []string{
	"Blob", "Amoeba", "Nucleus", "Spore", "Plankton",
	"Mitosis", "Vacuole", "Ribosome", "Cytoplasm", "Flagellum",
	"Protist", "Diatom",
}

// NewAICell creates an AI cell at pos with a random name, color and heading
func NewAICell(rng Rand, id string, pos Vec2, score, now float64) *AICell {
	hue := int(rng.Float64() * 360)
	return &AICell{
		ID:           id,
		Name:         aiNames[int(rng.Float64()*float64(len(aiNames)))%len(aiNames)],
		Color:        fmt.Sprintf("hsl(%d, 70%%, 50%%)", hue),
		X:            pos.X,
		Y:            pos.Y,
		Score:        score,
		Direction:    rng.Float64() * 2 * math.Pi,
		LastFoodTime: now,
	}
}

// Update wanders the AI: with a small chance per tick it picks a new random
// heading, then advances along the current heading. Smaller cells move faster.
func (a *AICell) Update(rng Rand, cfg *Config, deltaMillis float64) {
	if rng.Float64() < cfg.AI.DirectionChangeChance {
		a.Direction = rng.Float64() * 2 * math.Pi
	}

	frames := deltaMillis / FrameMillis
	if !(frames > 0) {
		return
	}
	speed := cfg.AI.Speed / a.Size()
	world := cfg.World.Size
	a.X = Clamp(a.X+math.Cos(a.Direction)*speed*frames, 0, world)
	a.Y = Clamp(a.Y+math.Sin(a.Direction)*speed*frames, 0, world)
}

package main

import (
	"crypto/rand"
	"encoding/hex"
	"math"
)

// BaseRadius is the radius of a cell with zero score
const BaseRadius = 20.0

// Rand is the randomness source used by the simulation.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Vec2 is a point or vector in world space
type Vec2 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// GenerateID returns a random hex string of the given byte length
func GenerateID(byteLen int) string {
	b := make([]byte, byteLen)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Distance returns the distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Size returns the collision radius for a score
func Size(score float64) float64 {
	return math.Sqrt(math.Max(score, 0)) + BaseRadius
}

// CenterOfMass returns the score-weighted centroid of the cells.
// Empty input or zero total score yields the origin.
func CenterOfMass(cells []*PlayerCell) Vec2 {
	var total, sx, sy float64
	for _, c := range cells {
		if c == nil {
			continue
		}
		total += c.Score
		sx += c.X * c.Score
		sy += c.Y * c.Score
	}
	if total == 0 {
		return Vec2{}
	}
	return Vec2{X: sx / total, Y: sy / total}
}

// RandomPosition samples a point uniformly over [0, worldSize)²
func RandomPosition(rng Rand, worldSize float64) Vec2 {
	return Vec2{
		X: rng.Float64() * worldSize,
		Y: rng.Float64() * worldSize,
	}
}

// finite reports whether every value is a real number
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

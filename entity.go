package main

// EntityKind tags the variant of an Entity
type EntityKind uint8

const (
	KindFood EntityKind = iota
	KindAI
	KindPlayer
)

func (k EntityKind) String() string {
	switch k {
	case KindFood:
		return "food"
	case KindAI:
		return "ai"
	case KindPlayer:
		return "player"
	}
	return "unknown"
}

// Entity is implemented by *Food, *AICell and *PlayerCell.
// Code that needs variant fields switches on the concrete type.
type Entity interface {
	Kind() EntityKind
	Mass() float64
}

// Food is a static pellet with a fixed score
type Food struct {
	ID    string
	X, Y  float64
	Score float64
	Color string
}

// AICell is an autonomous wandering cell
type AICell struct {
	ID           string
	Name         string
	Color        string
	X, Y         float64
	Score        float64
	Direction    float64 // radians
	LastFoodTime float64 // sim clock ms
}

// PlayerCell is one of the player's cells
type PlayerCell struct {
	ID           string
	X, Y         float64
	Score        float64
	VX, VY       float64 // units per reference frame
	SplitTime    float64 // sim clock ms of the last split touching this cell
	LastFoodTime float64 // sim clock ms
}

func (f *Food) Kind() EntityKind { return KindFood }
func (f *Food) Mass() float64 { return f.Score }

func (a *AICell) Kind() EntityKind { return KindAI }
func (a *AICell) Mass() float64 { return a.Score }

func (c *PlayerCell) Kind() EntityKind { return KindPlayer }
func (c *PlayerCell) Mass() float64 { return c.Score }

// Speed returns the magnitude of the cell's velocity
func (c *PlayerCell) Speed() float64 {
	return Distance(0, 0, c.VX, c.VY)
}

// Size returns the cell's collision radius
func (c *PlayerCell) Size() float64 { return Size(c.Score) }

// Size returns the cell's collision radius
func (a *AICell) Size() float64 { return Size(a.Score) }

// canEat reports whether a predator of score pred at (px,py) consumes a
// victim of score victim at (vx,vy): the victim's center lies inside the
// predator's radius and the predator is at least threshold times larger.
func canEat(px, py, pred, vx, vy, victim, threshold float64) bool {
	ps := Size(pred)
	if Distance(px, py, vx, vy) >= ps {
		return false
	}
	return ps/Size(victim) >= threshold
}

// ToState converts to the wire form
func (f *Food) ToState() FoodState {
	return FoodState{ID: f.ID, X: round1(f.X), Y: round1(f.Y), Color: f.Color}
}

// ToState converts to the wire form
func (a *AICell) ToState() AIState {
	return AIState{
		ID:    a.ID,
		Name:  a.Name,
		Color: a.Color,
		X:     round1(a.X),
		Y:     round1(a.Y),
		Score: round1(a.Score),
		R:     round1(a.Size()),
	}
}

// ToState converts to the wire form
func (c *PlayerCell) ToState() CellState {
	return CellState{
		ID:    c.ID,
		X:     round1(c.X),
		Y:     round1(c.Y),
		VX:    round1(c.VX),
		VY:    round1(c.VY),
		Score: round1(c.Score),
		R:     round1(c.Size()),
	}
}

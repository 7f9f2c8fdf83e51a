package main

var foodColors = []string{
	"#ff5252", "#ffb74d", "#fff176", "#81c784",
	"#4fc3f7", "#9575cd", "#f06292",
}

// NewFood spawns a food pellet at a uniformly random position
func NewFood(rng Rand, id string, cfg *Config) *Food {
	pos := RandomPosition(rng, cfg.World.Size)
	return &Food{
		ID:    id,
		X:     pos.X,
		Y:     pos.Y,
		Score: cfg.World.FoodScore,
		Color: foodColors[int(rng.Float64()*float64(len(foodColors)))%len(foodColors)],
	}
}

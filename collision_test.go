package main

import "testing"

// emptySim returns a simulation with no entities and zero population targets
func emptySim() *Simulation {
	cfg := testConfig()
	cfg.World.FoodCount = 0
	cfg.World.AICount = 0
	return newSimulation(cfg, &seqRand{vals: []float64{0.5}}, "Test")
}

func TestFoodEatenByPlayerCell(t *testing.T) {
	s := emptySim()
	s.now = 3000
	s.player.Cells = []*PlayerCell{{X: 500, Y: 500, Score: 100}}
	s.food = []*Food{
		{ID: "f1", X: 510, Y: 500, Score: 10},
		{ID: "f2", X: 900, Y: 900, Score: 10},
		{ID: "f3", X: 500, Y: 520, Score: 10},
	}

	var r TickReport
	s.handleFoodCollisions(&r)

	c := s.player.Cells[0]
	if c.Score != 120 {
		t.Errorf("expected score 120, got %v", c.Score)
	}
	if c.LastFoodTime != 3000 {
		t.Errorf("expected last food time 3000, got %v", c.LastFoodTime)
	}
	if r.FoodEaten != 2 {
		t.Errorf("expected 2 food eaten, got %d", r.FoodEaten)
	}
	if len(s.food) != 1 || s.food[0].ID != "f2" {
		t.Errorf("expected only f2 to remain, got %d food", len(s.food))
	}
}

func TestFoodPlayerBeforeAI(t *testing.T) {
	s := emptySim()
	s.player.Cells = []*PlayerCell{{X: 500, Y: 500, Score: 100}}
	s.ais = []*AICell{{X: 505, Y: 500, Score: 100}}
	s.food = []*Food{{X: 502, Y: 500, Score: 10}}

	var r TickReport
	s.handleFoodCollisions(&r)
	if s.player.Cells[0].Score != 110 {
		t.Errorf("player cell should get the food, score %v", s.player.Cells[0].Score)
	}
	if s.ais[0].Score != 100 {
		t.Errorf("AI should not get eaten food, score %v", s.ais[0].Score)
	}
}

func TestFoodEatenByAI(t *testing.T) {
	s := emptySim()
	s.now = 500
	s.ais = []*AICell{{X: 100, Y: 100, Score: 50}}
	s.food = []*Food{{X: 110, Y: 110, Score: 10}}

	var r TickReport
	s.handleFoodCollisions(&r)
	if s.ais[0].Score != 60 || s.ais[0].LastFoodTime != 500 {
		t.Errorf("AI should eat food, got %+v", *s.ais[0])
	}
	if len(s.food) != 0 {
		t.Errorf("expected no food left, got %d", len(s.food))
	}
}

func TestPlayerEatsAI(t *testing.T) {
	s := emptySim()
	s.now = 100
	s.player.Cells = []*PlayerCell{{X: 500, Y: 500, Score: 400}}
	s.ais = []*AICell{
		{ID: "a1", X: 520, Y: 500, Score: 50},
		{ID: "a2", X: 1500, Y: 1500, Score: 50},
	}

	var r TickReport
	s.handlePlayerAICollisions(&r)
	if s.player.Cells[0].Score != 450 {
		t.Errorf("expected 450, got %v", s.player.Cells[0].Score)
	}
	if r.AIEaten != 1 {
		t.Errorf("expected 1 AI eaten, got %d", r.AIEaten)
	}
	if len(s.ais) != 1 || s.ais[0].ID != "a2" {
		t.Errorf("expected only a2 to remain, got %d", len(s.ais))
	}
}

func TestAIEatsPlayerCell(t *testing.T) {
	s := emptySim()
	s.now = 100
	s.player.Cells = []*PlayerCell{
		{ID: "c1", X: 520, Y: 500, Score: 50},
		{ID: "c2", X: 1500, Y: 1500, Score: 50},
	}
	s.ais = []*AICell{{X: 500, Y: 500, Score: 400}}

	var r TickReport
	s.handlePlayerAICollisions(&r)
	if s.ais[0].Score != 450 || s.ais[0].LastFoodTime != 100 {
		t.Errorf("AI should absorb the cell, got %+v", *s.ais[0])
	}
	if r.PlayerCellsLost != 1 {
		t.Errorf("expected 1 cell lost, got %d", r.PlayerCellsLost)
	}
	if len(s.player.Cells) != 1 || s.player.Cells[0].ID != "c2" {
		t.Errorf("expected only c2 to remain, got %d", len(s.player.Cells))
	}
}

func TestSimilarSizesDoNotEat(t *testing.T) {
	s := emptySim()
	s.player.Cells = []*PlayerCell{{X: 500, Y: 500, Score: 100}}
	s.ais = []*AICell{{X: 505, Y: 500, Score: 105}}

	var r TickReport
	s.handlePlayerAICollisions(&r)
	if len(s.player.Cells) != 1 || len(s.ais) != 1 {
		t.Error("near-equal cells should not consume each other")
	}
}

func TestEatenCellNotMatchedAgain(t *testing.T) {
	s := emptySim()
	s.player.Cells = []*PlayerCell{{X: 500, Y: 500, Score: 50}}
	s.ais = []*AICell{
		{ID: "big1", X: 505, Y: 500, Score: 400},
		{ID: "big2", X: 495, Y: 500, Score: 400},
	}

	var r TickReport
	s.handlePlayerAICollisions(&r)
	if s.ais[0].Score != 450 || s.ais[1].Score != 400 {
		t.Errorf("only the first AI should eat the cell: %v, %v", s.ais[0].Score, s.ais[1].Score)
	}
	if r.PlayerCellsLost != 1 {
		t.Errorf("expected 1 cell lost, got %d", r.PlayerCellsLost)
	}
}

func TestAIEatsAI(t *testing.T) {
	s := emptySim()
	s.ais = []*AICell{
		{ID: "small", X: 500, Y: 500, Score: 50},
		{ID: "big", X: 510, Y: 500, Score: 400},
		{ID: "far", X: 1500, Y: 1500, Score: 50},
	}

	var r TickReport
	s.handleAIAICollisions(&r)
	if r.AIEaten != 1 {
		t.Errorf("expected 1 AI eaten, got %d", r.AIEaten)
	}
	if len(s.ais) != 2 {
		t.Fatalf("expected 2 AIs, got %d", len(s.ais))
	}
	if s.ais[0].ID != "big" || s.ais[0].Score != 450 {
		t.Errorf("higher index should eat the smaller lower one, got %+v", *s.ais[0])
	}
	if s.ais[1].ID != "far" {
		t.Errorf("order should be preserved, got %s", s.ais[1].ID)
	}
}

func TestRespawnFillsPopulations(t *testing.T) {
	cfg := testConfig()
	s := newSimulation(cfg, &seqRand{vals: []float64{0.13, 0.71, 0.42, 0.97, 0.05, 0.66}}, "Test")
	s.player.Cells = []*PlayerCell{{X: 1000, Y: 1000, Score: 300}}
	for i := 0; i < cfg.World.FoodCount/2; i++ {
		s.food = append(s.food, &Food{X: 10, Y: 10, Score: 10})
	}

	var r TickReport
	s.respawnEntities(&r)
	if len(s.food) != cfg.World.FoodCount {
		t.Errorf("expected %d food, got %d", cfg.World.FoodCount, len(s.food))
	}
	if len(s.ais) != cfg.World.AICount {
		t.Errorf("expected %d AIs, got %d", cfg.World.AICount, len(s.ais))
	}
	if r.FoodRespawned != cfg.World.FoodCount/2 || r.AIRespawned != cfg.World.AICount {
		t.Errorf("unexpected respawn counts %+v", r)
	}
	for _, ai := range s.ais {
		if ai.Score != cfg.World.AIStartingScore {
			t.Errorf("AI should start at %v, got %v", cfg.World.AIStartingScore, ai.Score)
		}
	}
	if r.PlayerRespawned || len(s.player.Cells) != 1 || s.player.Cells[0].Score != 300 {
		t.Error("player with cells should not respawn")
	}
}

func TestRespawnPlayer(t *testing.T) {
	s := emptySim()
	s.now = 9000
	var r TickReport
	s.respawnEntities(&r)
	if !r.PlayerRespawned {
		t.Fatal("player without cells should respawn")
	}
	if len(s.player.Cells) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(s.player.Cells))
	}
	c := s.player.Cells[0]
	if c.Score != s.cfg.World.StartingScore || c.VX != 0 || c.VY != 0 {
		t.Errorf("unexpected respawned cell %+v", *c)
	}
	if c.LastFoodTime != 9000 {
		t.Errorf("respawned cell should not start starving, got %v", c.LastFoodTime)
	}
}

func TestCompactKeepsOrder(t *testing.T) {
	items := []*Food{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	backing := items
	kept := compact(items, []bool{false, true, false, true})
	if len(kept) != 2 || kept[0].ID != "a" || kept[1].ID != "c" {
		t.Errorf("unexpected result %v", kept)
	}
	if backing[2] != nil || backing[3] != nil {
		t.Error("trailing slots should be cleared")
	}
}

package main

import (
	"fmt"
	"testing"
)

func idGen() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("n%d", n)
	}
}

func TestPlayerTotalScore(t *testing.T) {
	p := NewPlayer("Test", &PlayerCell{Score: 100})
	p.Cells = append(p.Cells, &PlayerCell{Score: 50})
	if p.TotalScore() != 150 {
		t.Errorf("expected 150, got %v", p.TotalScore())
	}
}

func TestPlayerMoveTowardTarget(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer("Test", &PlayerCell{X: 1000, Y: 1000, Score: 100})
	p.Move(cfg, Vec2{X: 1500, Y: 1000}, FrameMillis)

	c := p.Cells[0]
	if c.VX <= 0 {
		t.Errorf("expected positive VX, got %v", c.VX)
	}
	if c.VY != 0 {
		t.Errorf("expected zero VY, got %v", c.VY)
	}
	if c.X <= 1000 {
		t.Errorf("cell should have moved right, x=%v", c.X)
	}
	// one frame of steering from rest
	want := cfg.Movement.PlayerSpeed / Size(100) * cfg.Movement.PlayerSteer
	if !approx(c.VX, want, 1e-9) {
		t.Errorf("expected VX %v, got %v", want, c.VX)
	}
}

func TestPlayerMoveSlowsNearTarget(t *testing.T) {
	cfg := testConfig()
	far := NewPlayer("far", &PlayerCell{X: 1000, Y: 1000, Score: 100})
	near := NewPlayer("near", &PlayerCell{X: 1000, Y: 1000, Score: 100})
	far.Move(cfg, Vec2{X: 1500, Y: 1000}, FrameMillis)
	near.Move(cfg, Vec2{X: 1010, Y: 1000}, FrameMillis)
	if near.Cells[0].VX >= far.Cells[0].VX {
		t.Errorf("cell near the pointer should be slower: %v vs %v", near.Cells[0].VX, far.Cells[0].VX)
	}
}

func TestPlayerMoveLargerIsSlower(t *testing.T) {
	cfg := testConfig()
	small := NewPlayer("s", &PlayerCell{X: 1000, Y: 1000, Score: 100})
	big := NewPlayer("b", &PlayerCell{X: 1000, Y: 1000, Score: 10000})
	target := Vec2{X: 2000, Y: 1000}
	for i := 0; i < 30; i++ {
		small.Move(cfg, target, FrameMillis)
		big.Move(cfg, target, FrameMillis)
	}
	if small.Cells[0].X <= big.Cells[0].X {
		t.Errorf("small cell should outrun big one: %v vs %v", small.Cells[0].X, big.Cells[0].X)
	}
}

func TestPlayerMoveClampsToWorld(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer("Test", &PlayerCell{X: 1, Y: 1, Score: 100, VX: -50, VY: -50})
	p.Move(cfg, Vec2{X: 0, Y: 0}, FrameMillis)
	c := p.Cells[0]
	if c.X != 0 || c.Y != 0 {
		t.Errorf("expected clamp to (0,0), got (%v,%v)", c.X, c.Y)
	}

	p = NewPlayer("Test", &PlayerCell{X: cfg.World.Size - 1, Y: 10, Score: 100, VX: 50})
	p.Move(cfg, Vec2{X: cfg.World.Size + 500, Y: 10}, FrameMillis)
	if p.Cells[0].X != cfg.World.Size {
		t.Errorf("expected clamp to world edge, got %v", p.Cells[0].X)
	}
}

func TestPlayerMoveAtTarget(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer("Test", &PlayerCell{X: 500, Y: 500, Score: 100})
	p.Move(cfg, Vec2{X: 500, Y: 500}, FrameMillis)
	c := p.Cells[0]
	if c.X != 500 || c.Y != 500 || c.VX != 0 || c.VY != 0 {
		t.Errorf("cell on its target should stay put, got %+v", *c)
	}
}

func TestPlayerBoostSpeedsUp(t *testing.T) {
	cfg := testConfig()
	plain := NewPlayer("a", &PlayerCell{X: 1000, Y: 1000, Score: 100})
	boosted := NewPlayer("b", &PlayerCell{X: 1000, Y: 1000, Score: 100})
	boosted.Boosting = true
	plain.Move(cfg, Vec2{X: 1500, Y: 1000}, FrameMillis)
	boosted.Move(cfg, Vec2{X: 1500, Y: 1000}, FrameMillis)
	want := plain.Cells[0].VX * cfg.Boost.SpeedMultiplier
	if !approx(boosted.Cells[0].VX, want, 1e-9) {
		t.Errorf("expected boosted VX %v, got %v", want, boosted.Cells[0].VX)
	}
}

func TestPlayerBoostDrainsMass(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer("Test", &PlayerCell{Score: 100})
	p.UpdateBoost(cfg.Boost, true, 1000)
	if !p.Boosting {
		t.Fatal("boost should activate on press")
	}
	want := 100 - 100*cfg.Boost.MassLossRate
	if !approx(p.Cells[0].Score, want, 1e-9) {
		t.Errorf("expected %v, got %v", want, p.Cells[0].Score)
	}

	p.UpdateBoost(cfg.Boost, false, 1000)
	if p.Boosting {
		t.Error("boost should stop on release")
	}
	if !approx(p.Cells[0].Score, want, 1e-9) {
		t.Error("no drain while not boosting")
	}
}

func TestPlayerBoostEdgeTriggered(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer("Test", &PlayerCell{Score: cfg.Boost.MinScore + 1})

	p.UpdateBoost(cfg.Boost, true, 1000)
	if p.Boosting {
		t.Error("boost should end when a cell hits the floor")
	}
	if p.Cells[0].Score != cfg.Boost.MinScore {
		t.Errorf("score should floor at %v, got %v", cfg.Boost.MinScore, p.Cells[0].Score)
	}

	// Holding the key does not re-arm
	p.UpdateBoost(cfg.Boost, true, 16)
	if p.Boosting {
		t.Error("held boost should not restart")
	}

	// Release then press does
	p.Cells[0].Score = 100
	p.UpdateBoost(cfg.Boost, false, 16)
	p.UpdateBoost(cfg.Boost, true, 16)
	if !p.Boosting {
		t.Error("boost should restart after release and press")
	}
}

func TestPlayerSplit(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer("Test", &PlayerCell{ID: "c1", X: 1000, Y: 1000, Score: 100, LastFoodTime: 42})
	n := p.Split(cfg, Vec2{X: 1500, Y: 1000}, 7000, idGen())
	if n != 1 {
		t.Fatalf("expected 1 split, got %d", n)
	}
	if len(p.Cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(p.Cells))
	}
	parent, child := p.Cells[0], p.Cells[1]
	if parent.Score != 50 || child.Score != 50 {
		t.Errorf("expected halves of 50, got %v and %v", parent.Score, child.Score)
	}
	if !approx(child.X, 1000+Size(50), 1e-9) || child.Y != 1000 {
		t.Errorf("child should sit one radius toward the pointer, got (%v,%v)", child.X, child.Y)
	}
	if child.VX != cfg.Split.Velocity || child.VY != 0 {
		t.Errorf("child launch velocity wrong: (%v,%v)", child.VX, child.VY)
	}
	if parent.SplitTime != 7000 || child.SplitTime != 7000 {
		t.Error("both halves should be stamped with the split time")
	}
	if child.ID != "n1" || child.LastFoodTime != 42 {
		t.Errorf("unexpected child %+v", *child)
	}
	if p.TotalScore() != 100 {
		t.Errorf("split should conserve score, got %v", p.TotalScore())
	}
}

func TestPlayerSplitTooSmall(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer("Test", &PlayerCell{Score: cfg.Split.MinScore - 1})
	if n := p.Split(cfg, Vec2{X: 100}, 0, idGen()); n != 0 {
		t.Errorf("expected no split, got %d", n)
	}
}

func TestPlayerSplitRespectsCap(t *testing.T) {
	cfg := testConfig()
	cfg.Split.MaxCells = 3
	p := NewPlayer("Test", &PlayerCell{X: 100, Y: 100, Score: 100})
	p.Cells = append(p.Cells, &PlayerCell{X: 300, Y: 100, Score: 100})
	if n := p.Split(cfg, Vec2{X: 1000, Y: 100}, 0, idGen()); n != 1 {
		t.Errorf("expected 1 split under cap, got %d", n)
	}
	if len(p.Cells) != 3 {
		t.Errorf("expected 3 cells, got %d", len(p.Cells))
	}
	if p.Cells[1].Score != 100 {
		t.Error("second cell should not split once the cap is reached")
	}
}

func TestPlayerSplitOnlyOriginalCells(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer("Test", &PlayerCell{X: 100, Y: 100, Score: 400})
	if n := p.Split(cfg, Vec2{X: 1000, Y: 100}, 0, idGen()); n != 1 {
		t.Errorf("new halves should not split again in the same call, got %d", n)
	}
}

func TestSplitDirectionFallbacks(t *testing.T) {
	c := &PlayerCell{X: 100, Y: 100, VX: 0, VY: -2}
	dx, dy := splitDirection(c, Vec2{X: 100, Y: 100})
	if dx != 0 || dy != -1 {
		t.Errorf("expected heading (0,-1), got (%v,%v)", dx, dy)
	}

	c.VY = 0
	dx, dy = splitDirection(c, Vec2{X: 100, Y: 100})
	if dx != 1 || dy != 0 {
		t.Errorf("expected +X fallback, got (%v,%v)", dx, dy)
	}
}

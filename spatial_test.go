package main

import (
	"math"
	"testing"
)

func hasRef(refs []EntityRef, want EntityRef) bool {
	for _, r := range refs {
		if r == want {
			return true
		}
	}
	return false
}

func TestSpatialGridInsertAndQuery(t *testing.T) {
	grid := NewSpatialGrid(2000, 2000)

	ref := EntityRef{Kind: KindFood, Idx: 0}
	grid.Insert(100, 100, ref)

	if !hasRef(grid.Query(100, 100, 50), ref) {
		t.Error("expected to find entity at (100,100)")
	}
	if hasRef(grid.Query(1500, 1500, 50), ref) {
		t.Error("should not find entity at (1500,1500)")
	}
}

func TestSpatialGridClear(t *testing.T) {
	grid := NewSpatialGrid(2000, 2000)
	grid.Insert(500, 500, EntityRef{Kind: KindAI, Idx: 0})
	grid.Clear()

	if results := grid.Query(500, 500, 100); len(results) != 0 {
		t.Errorf("expected 0 results after clear, got %d", len(results))
	}
}

func TestSpatialGridQuerySpansCells(t *testing.T) {
	grid := NewSpatialGrid(2000, 2000)
	ref := EntityRef{Kind: KindFood, Idx: 7}
	// Neighbouring grid cell, within radius of the query point
	grid.Insert(210, 150, ref)
	if !hasRef(grid.Query(190, 150, 30), ref) {
		t.Error("query should reach into the neighbouring cell")
	}
}

func TestSpatialGridBoundaryClamp(t *testing.T) {
	grid := NewSpatialGrid(2000, 2000)

	grid.Insert(-10, -10, EntityRef{Kind: KindFood, Idx: 0})
	if !hasRef(grid.Query(0, 0, 50), EntityRef{Kind: KindFood, Idx: 0}) {
		t.Error("negative coords should clamp into the first cell")
	}

	grid.Insert(5000, 5000, EntityRef{Kind: KindFood, Idx: 1})
	if !hasRef(grid.Query(2000, 2000, 50), EntityRef{Kind: KindFood, Idx: 1}) {
		t.Error("coords past the edge should clamp into the last cell")
	}
}

func TestSpatialGridNonFinite(t *testing.T) {
	grid := NewSpatialGrid(2000, 2000)
	grid.Insert(math.NaN(), math.Inf(1), EntityRef{Kind: KindAI, Idx: 3})
	// must not panic
	grid.Query(math.NaN(), math.NaN(), math.Inf(1))
}

func TestSpatialGridQueryBufReuse(t *testing.T) {
	grid := NewSpatialGrid(2000, 2000)
	grid.Insert(100, 100, EntityRef{Kind: KindFood, Idx: 0})
	grid.Insert(110, 100, EntityRef{Kind: KindFood, Idx: 1})

	buf := make([]EntityRef, 0, 8)
	buf = grid.QueryBuf(100, 100, 20, buf[:0])
	if len(buf) != 2 {
		t.Errorf("expected 2 refs, got %d", len(buf))
	}
	buf = grid.QueryBuf(100, 100, 20, buf[:0])
	if len(buf) != 2 {
		t.Errorf("reused buffer should hold 2 refs, got %d", len(buf))
	}
}

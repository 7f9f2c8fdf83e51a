package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks
type WindowStats struct {
	WindowEndTick uint64  `csv:"window_end"`
	SimTimeMs     float64 `csv:"sim_time_ms"`

	// Population at window end
	PlayerScore float64 `csv:"player_score"`
	PlayerCells int     `csv:"player_cells"`
	AICount     int     `csv:"ai"`
	FoodCount   int     `csv:"food"`

	// Events during window
	FoodEaten       int `csv:"food_eaten"`
	AIEaten         int `csv:"ai_eaten"`
	PlayerCellsLost int `csv:"player_cells_lost"`
	Splits          int `csv:"splits"`
	Merges          int `csv:"merges"`
	AIRespawned     int `csv:"ai_respawned"`
	PlayerRespawns  int `csv:"player_respawns"`

	// AI mass distribution (sampled at window end)
	AIMassMean float64 `csv:"ai_mass_mean"`
	AIMassStd  float64 `csv:"ai_mass_std"`
	AIMassP10  float64 `csv:"ai_mass_p10"`
	AIMassP50  float64 `csv:"ai_mass_p50"`
	AIMassP90  float64 `csv:"ai_mass_p90"`
}

// Collector accumulates tick reports and emits WindowStats every
// windowTicks ticks
type Collector struct {
	windowTicks int
	ticks       int
	acc         TickReport
	respawns    int
}

// NewCollector creates a collector; windows shorter than one tick are
// rounded up
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// Observe records one tick. When the window is complete it returns the
// window's stats and true.
func (c *Collector) Observe(sim *Simulation, r TickReport) (WindowStats, bool) {
	c.acc.Add(r)
	if r.PlayerRespawned {
		c.respawns++
	}
	c.ticks++
	if c.ticks < c.windowTicks {
		return WindowStats{}, false
	}

	ws := WindowStats{
		WindowEndTick:   sim.TickCount(),
		SimTimeMs:       sim.Now(),
		PlayerScore:     round1(sim.PlayerScore()),
		PlayerCells:     len(sim.player.Cells),
		AICount:         len(sim.ais),
		FoodCount:       len(sim.food),
		FoodEaten:       c.acc.FoodEaten,
		AIEaten:         c.acc.AIEaten,
		PlayerCellsLost: c.acc.PlayerCellsLost,
		Splits:          c.acc.Splits,
		Merges:          c.acc.Merges,
		AIRespawned:     c.acc.AIRespawned,
		PlayerRespawns:  c.respawns,
	}

	masses := make([]float64, 0, len(sim.ais))
	for _, a := range sim.ais {
		masses = append(masses, a.Score)
	}
	ws.AIMassMean, ws.AIMassStd, ws.AIMassP10, ws.AIMassP50, ws.AIMassP90 = massStats(masses)

	c.ticks = 0
	c.acc = TickReport{}
	c.respawns = 0
	return ws, true
}

// massStats returns mean, std, p10, p50 and p90 of values. Empty input
// yields zeros.
func massStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}
	if len(values) == 1 {
		v := values[0]
		return v, 0, v, v, v
	}
	mean, std = stat.MeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, std, p10, p50, p90
}

// TelemetryWriter appends WindowStats rows to a CSV file. A nil writer
// discards everything.
type TelemetryWriter struct {
	f             *os.File
	headerWritten bool
}

// NewTelemetryWriter creates the CSV file at path. Returns nil if path is
// empty (telemetry disabled).
func NewTelemetryWriter(path string) (*TelemetryWriter, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry file: %w", err)
	}
	return &TelemetryWriter{f: f}, nil
}

// Write appends one row; the first write includes the header
func (tw *TelemetryWriter) Write(stats WindowStats) error {
	if tw == nil {
		return nil
	}
	records := []WindowStats{stats}
	if !tw.headerWritten {
		if err := gocsv.Marshal(records, tw.f); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		tw.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, tw.f); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Close closes the underlying file
func (tw *TelemetryWriter) Close() error {
	if tw == nil {
		return nil
	}
	return tw.f.Close()
}

package main

import (
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Game drives one Simulation for a session: one pilot, any number of
// watchers
type Game struct {
	mu        sync.RWMutex
	cfg       *Config
	sessionID string
	sim       *Simulation
	pilot     Broadcaster
	watchers  map[Broadcaster]bool

	input        ClientInput
	splitPending bool

	totals    TickReport
	peak      float64
	pilotName string
	idleSince time.Time
	lastTick  time.Time
	stopped   bool
	stop      chan struct{}
	db        *DB
	analytics *Analytics
}

// NewGame creates a Game. A zero seed picks one from the clock.
func NewGame(cfg *Config, sessionID string, seed int64, db *DB, analytics *Analytics) *Game {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim := NewSimulation(cfg, rand.New(rand.NewSource(seed)), "")
	return &Game{
		cfg:       cfg,
		sessionID: sessionID,
		sim:       sim,
		watchers:  make(map[Broadcaster]bool),
		input:     ClientInput{MX: math.NaN(), MY: math.NaN()},
		peak:      sim.PlayerScore(),
		idleSince: time.Now(),
		stop:      make(chan struct{}),
		db:        db,
		analytics: analytics,
	}
}

// Run starts the game loop
func (g *Game) Run() {
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return
	}
	g.lastTick = time.Now()
	g.mu.Unlock()

	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.Server.TickRate))
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			g.mu.Lock()
			dt := float64(now.Sub(g.lastTick)) / float64(time.Millisecond)
			g.lastTick = now
			g.mu.Unlock()
			g.step(math.Min(dt, g.cfg.Server.MaxFrameMillis))
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the game loop and records the run if anyone piloted it.
// Safe to call more than once.
func (g *Game) Stop() {
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return
	}
	g.stopped = true
	close(g.stop)
	run := g.runRow()
	piloted := g.pilotName != ""
	g.mu.Unlock()

	g.analytics.Track(EvtSessionEnd, g.sessionID, "")
	if !piloted || g.db == nil {
		return
	}
	if _, err := g.db.RecordRun(run); err != nil {
		log.Printf("record run %s: %v", g.sessionID, err)
	}
}

// SetPilot seats b as the pilot. Returns false if the seat is taken.
func (g *Game) SetPilot(b Broadcaster, name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pilot != nil {
		return false
	}
	g.pilot = b
	g.pilotName = name
	g.sim.SetPlayerName(name)
	return true
}

// IsPilot reports whether b is the pilot
func (g *Game) IsPilot(b Broadcaster) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pilot != nil && g.pilot == b
}

// HasPilot reports whether the pilot seat is taken
func (g *Game) HasPilot() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pilot != nil
}

// AddWatcher adds a spectator
func (g *Game) AddWatcher(b Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.watchers[b] = true
}

// RemoveWatcher removes a spectator
func (g *Game) RemoveWatcher(b Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.watchers, b)
	if g.pilot == nil && len(g.watchers) == 0 {
		g.idleSince = time.Now()
	}
}

// WatcherCount returns the number of spectators
func (g *Game) WatcherCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.watchers)
}

// IdleSince returns when the session last had nobody attached, or the zero
// time if it is attended
func (g *Game) IdleSince() time.Time {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.pilot != nil || len(g.watchers) > 0 {
		return time.Time{}
	}
	return g.idleSince
}

// HandleInput records the pilot's latest input. Split presses latch until
// the next tick consumes them.
func (g *Game) HandleInput(input ClientInput) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if finite(input.MX, input.MY) {
		g.input.MX = input.MX
		g.input.MY = input.MY
	}
	g.input.Boost = input.Boost
	if input.Split {
		g.splitPending = true
	}
}

// Info returns the session list entry for this game
func (g *Game) Info() (pilot string, watchers int, score float64) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pilotName, len(g.watchers), round1(g.sim.PlayerScore())
}

// Peak returns the highest total score reached
func (g *Game) Peak() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.peak
}

// step runs one simulation tick of dtMillis
func (g *Game) step(dtMillis float64) TickReport {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent := PlayerIntent{
		TargetX: g.input.MX,
		TargetY: g.input.MY,
		Boost:   g.input.Boost,
		Split:   g.splitPending,
	}
	g.splitPending = false

	r := g.sim.Tick(dtMillis, intent)
	g.totals.Add(r)
	if s := g.sim.PlayerScore(); s > g.peak {
		g.peak = s
	}
	g.track(r)

	every := uint64(g.cfg.Server.BroadcastEvery)
	if every == 0 || r.Tick%every == 0 {
		g.broadcastState()
	}
	return r
}

// track forwards a tick's events to analytics
func (g *Game) track(r TickReport) {
	g.analytics.TrackCount(EvtAIConsumed, g.sessionID, r.AIEaten)
	g.analytics.TrackCount(EvtPlayerCellLost, g.sessionID, r.PlayerCellsLost)
	g.analytics.TrackCount(EvtSplit, g.sessionID, r.Splits)
	g.analytics.TrackCount(EvtMerge, g.sessionID, r.Merges)
	if r.PlayerRespawned {
		g.analytics.Track(EvtPlayerRespawn, g.sessionID, "")
	}
}

func (g *Game) runRow() RunRow {
	return RunRow{
		SessionID:       g.sessionID,
		Pilot:           g.pilotName,
		PeakScore:       round1(g.peak),
		FinalScore:      round1(g.sim.PlayerScore()),
		Ticks:           g.sim.TickCount(),
		DurationMs:      g.sim.Now(),
		FoodEaten:       g.totals.FoodEaten,
		AIEaten:         g.totals.AIEaten,
		PlayerCellsLost: g.totals.PlayerCellsLost,
		Splits:          g.totals.Splits,
		Merges:          g.totals.Merges,
	}
}

// broadcastState sends the current snapshot to the pilot and watchers
func (g *Game) broadcastState() {
	if g.pilot == nil && len(g.watchers) == 0 {
		return
	}
	data, err := msgpack.Marshal(g.sim.Snapshot())
	if err != nil {
		log.Printf("marshal snapshot: %v", err)
		return
	}
	if g.pilot != nil {
		g.pilot.SendBinary(data)
	}
	for w := range g.watchers {
		w.SendBinary(data)
	}
}

// broadcastMsg sends a message to everyone attached to the session
func (g *Game) broadcastMsg(msg Envelope) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.pilot != nil {
		g.pilot.SendJSON(msg)
	}
	for w := range g.watchers {
		w.SendJSON(msg)
	}
}

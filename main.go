package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config overlay (default: embedded defaults)")
	addr := flag.String("addr", "", "HTTP listen address (overrides server.addr)")
	clientDir := flag.String("client", "", "Path to client directory (overrides server.client_dir)")
	dbPath := flag.String("db", "", "SQLite database path (overrides server.db_path)")
	dumpConfig := flag.String("dump-config", "", "Write the effective config as YAML and exit")
	headless := flag.Bool("headless", false, "Run the simulation without a server")
	ticks := flag.Int("ticks", 3600, "Ticks to run in headless mode")
	seed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	telemetryPath := flag.String("telemetry", "", "Headless telemetry CSV path (overrides telemetry.path)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *clientDir != "" {
		cfg.Server.ClientDir = *clientDir
	}
	if *dbPath != "" {
		cfg.Server.DBPath = *dbPath
	}
	if *telemetryPath != "" {
		cfg.Telemetry.Path = *telemetryPath
	}

	if *dumpConfig != "" {
		if err := cfg.WriteYAML(*dumpConfig); err != nil {
			log.Fatalf("dump config: %v", err)
		}
		return
	}

	if *headless {
		if err := runHeadless(cfg, *ticks, *seed); err != nil {
			log.Fatalf("headless: %v", err)
		}
		return
	}

	if cfg.Server.ClientDir == "" {
		exe, _ := os.Executable()
		dir := filepath.Join(filepath.Dir(exe), "..", "client")
		// Fallback for development
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			dir = "../client"
		}
		if _, err := os.Stat(dir); err == nil {
			cfg.Server.ClientDir = dir
		}
	}

	var db *DB
	if cfg.Server.DBPath != "" {
		db, err = OpenDB(cfg.Server.DBPath)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
	}
	var analytics *Analytics
	if db != nil {
		analytics = NewAnalytics(db)
	}

	sessions := NewSessionManager(cfg, db, analytics)
	hub := NewHub(sessions, analytics)
	go hub.Run()

	janitorStop := make(chan struct{})
	go sessions.RunJanitor(janitorStop)

	mux := SetupRoutes(hub, db, analytics, cfg.Server.ClientDir)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{Addr: cfg.Server.Addr, Handler: mux}

	go func() {
		log.Printf("Server starting on %s", cfg.Server.Addr)
		if cfg.Server.ClientDir != "" {
			log.Printf("Serving client files from %s", cfg.Server.ClientDir)
		}
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down...")
	server.Close()
	close(janitorStop)
	sessions.CloseAll()
	analytics.Stop()
}

// runHeadless steps a simulation at the reference frame rate with a
// wandering pointer and writes windowed telemetry
func runHeadless(cfg *Config, ticks int, seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	sim := NewSimulation(cfg, rng, "headless")

	tw, err := NewTelemetryWriter(cfg.Telemetry.Path)
	if err != nil {
		return err
	}
	defer tw.Close()
	collector := NewCollector(cfg.Telemetry.WindowTicks)

	pilot := rand.New(rand.NewSource(seed + 1))
	target := RandomPosition(pilot, cfg.World.Size)
	var total TickReport
	start := time.Now()

	for i := 0; i < ticks; i++ {
		// Retarget roughly once a second, split occasionally
		if pilot.Float64() < 1.0/60 {
			target = RandomPosition(pilot, cfg.World.Size)
		}
		intent := PlayerIntent{
			TargetX: target.X,
			TargetY: target.Y,
			Split:   pilot.Float64() < 0.002,
		}
		r := sim.Tick(FrameMillis, intent)
		total.Add(r)

		if ws, ok := collector.Observe(sim, r); ok {
			if err := tw.Write(ws); err != nil {
				return err
			}
		}
	}

	fmt.Printf("seed=%d ticks=%d sim=%.1fs wall=%s score=%.1f cells=%d food_eaten=%d ai_eaten=%d cells_lost=%d splits=%d merges=%d\n",
		seed, ticks, sim.Now()/1000, time.Since(start).Round(time.Millisecond), sim.PlayerScore(),
		len(sim.PlayerCells()), total.FoodEaten, total.AIEaten, total.PlayerCellsLost, total.Splits, total.Merges)
	return nil
}

package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the simulation and the host service
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Decay     DecayConfig     `yaml:"decay"`
	Split     SplitConfig     `yaml:"split"`
	Merge     MergeConfig     `yaml:"merge"`
	Boost     BoostConfig     `yaml:"boost"`
	Movement  MovementConfig  `yaml:"movement"`
	AI        AIConfig        `yaml:"ai"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WorldConfig holds world size, population targets and scoring
type WorldConfig struct {
	Size               float64 `yaml:"size"`
	FoodCount          int     `yaml:"food_count"`
	AICount            int     `yaml:"ai_count"`
	StartingScore      float64 `yaml:"starting_score"`
	AIStartingScore    float64 `yaml:"ai_starting_score"`
	FoodScore          float64 `yaml:"food_score"`
	CollisionThreshold float64 `yaml:"collision_threshold"` // predator/victim size ratio
}

// DecayConfig holds the passive mass loss model
type DecayConfig struct {
	Enabled              bool    `yaml:"enabled"`
	Rate                 float64 `yaml:"rate"`                  // base score lost per second
	Threshold            float64 `yaml:"threshold"`             // floor, decay stops here
	MovementMultiplier   float64 `yaml:"movement_multiplier"`
	SizeFactor           float64 `yaml:"size_factor"`           // exponent on score
	StarvationThreshold  float64 `yaml:"starvation_threshold"`  // seconds without food
	StarvationMultiplier float64 `yaml:"starvation_multiplier"`
}

// SplitConfig holds split mechanics
type SplitConfig struct {
	MinScore float64 `yaml:"min_score"`
	Velocity float64 `yaml:"velocity"`  // launch speed per reference frame
	MaxCells int     `yaml:"max_cells"`
	Cooldown float64 `yaml:"cooldown"`  // ms
}

// MergeConfig holds the same-owner attraction/repulsion model
type MergeConfig struct {
	Cooldown     float64 `yaml:"cooldown"`      // ms
	Force        float64 `yaml:"force"`         // attraction impulse once mergeable
	StartForce   float64 `yaml:"start_force"`   // repulsion impulse while cooling down
	Distance     float64 `yaml:"distance"`      // contact tolerance for consolidation
	AttractRange float64 `yaml:"attract_range"` // multiple of the contact distance
}

// BoostConfig holds the mass-for-speed trade
type BoostConfig struct {
	MassLossRate    float64 `yaml:"mass_loss_rate"` // fraction of score per second
	MinScore        float64 `yaml:"min_score"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// MovementConfig holds player steering parameters
type MovementConfig struct {
	PlayerSpeed      float64 `yaml:"player_speed"`       // divided by size
	PlayerSlowRadius float64 `yaml:"player_slow_radius"` // pointer distance for full speed
	PlayerSteer      float64 `yaml:"player_steer"`       // velocity blend per frame
}

// AIConfig holds AI wander parameters
type AIConfig struct {
	Speed                 float64 `yaml:"speed"` // divided by size
	DirectionChangeChance float64 `yaml:"direction_change_chance"`
}

// SpawnConfig holds safe spawn search parameters
type SpawnConfig struct {
	SafeDistance    float64 `yaml:"safe_distance"`
	Attempts        int     `yaml:"attempts"`
	FallbackSamples int     `yaml:"fallback_samples"`
}

// ServerConfig holds the host loop and network settings
type ServerConfig struct {
	Addr           string  `yaml:"addr"`
	ClientDir      string  `yaml:"client_dir"`
	DBPath         string  `yaml:"db_path"`
	TickRate       int     `yaml:"tick_rate"`
	BroadcastEvery int     `yaml:"broadcast_every"`
	MaxFrameMillis float64 `yaml:"max_frame_millis"`
}

// TelemetryConfig holds headless telemetry output settings
type TelemetryConfig struct {
	Path        string `yaml:"path"`
	WindowTicks int    `yaml:"window_ticks"`
}

// DefaultConfig returns the embedded defaults
func DefaultConfig() Config {
	cfg, err := LoadConfig("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return *cfg
}

// LoadConfig loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with
func (c *Config) Validate() error {
	switch {
	case c.World.Size <= 0:
		return fmt.Errorf("world.size must be positive, got %v", c.World.Size)
	case c.World.FoodCount < 0 || c.World.AICount < 0:
		return fmt.Errorf("population targets must not be negative")
	case c.World.CollisionThreshold < 1:
		return fmt.Errorf("world.collision_threshold must be >= 1, got %v", c.World.CollisionThreshold)
	case c.Split.MaxCells < 1:
		return fmt.Errorf("split.max_cells must be >= 1, got %d", c.Split.MaxCells)
	case c.Spawn.Attempts < 0 || c.Spawn.FallbackSamples < 0:
		return fmt.Errorf("spawn sample counts must not be negative")
	case c.Server.TickRate <= 0:
		return fmt.Errorf("server.tick_rate must be positive, got %d", c.Server.TickRate)
	case c.Server.MaxFrameMillis <= 0:
		return fmt.Errorf("server.max_frame_millis must be positive, got %v", c.Server.MaxFrameMillis)
	case c.Server.BroadcastEvery < 0:
		return fmt.Errorf("server.broadcast_every must not be negative, got %d", c.Server.BroadcastEvery)
	}
	return nil
}

// WriteYAML saves the configuration as YAML
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window     WindowConfig     `toml:"window"`
	Logging    LoggingConfig    `toml:"logging"`
	Assets     AssetsConfig     `toml:"assets"`
	Player     PlayerConfig     `toml:"player"`
	Projectile ProjectileConfig `toml:"projectile"`
	Camera     CameraConfig     `toml:"camera"`
	Debug      DebugConfig      `toml:"debug"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
	TPS       int    `toml:"tps"` // frames per second of the update loop
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type AssetsConfig struct {
	Dir          string `toml:"dir"`
	Copter       string `toml:"copter"` // relative to Dir
	Map          string `toml:"map"`    // relative to Dir; the tileset path is relative to the map
	TerrainLayer string `toml:"terrain_layer"`
}

type PlayerConfig struct {
	SpawnX        float64       `toml:"spawn_x"`
	SpawnY        float64       `toml:"spawn_y"`
	Width         int           `toml:"width"`
	Height        int           `toml:"height"`
	HitWidth      float64       `toml:"hit_width"`
	HitHeight     float64       `toml:"hit_height"`
	MoveSpeed     float64       `toml:"move_speed"` // added per frame while a direction is held
	MaxSpeed      float64       `toml:"max_speed"`
	Tilt          float64       `toml:"tilt"` // radians
	ShootCooldown time.Duration `toml:"shoot_cooldown"`
}

type ProjectileConfig struct {
	Speed          float64       `toml:"speed"`
	Lifetime       time.Duration `toml:"lifetime"`
	Radius         float64       `toml:"radius"`
	MuzzleOffsetX  float64       `toml:"muzzle_offset_x"`
	MuzzleOffsetY  float64       `toml:"muzzle_offset_y"`
	MuzzleDistance float64       `toml:"muzzle_distance"`
	ArmTime        time.Duration `toml:"arm_time"` // projectiles ignore the player until this old
}

type CameraConfig struct {
	ViewportHeight float64 `toml:"viewport_height"` // world units
}

type DebugConfig struct {
	Overlay  bool `toml:"overlay"`
	LogTiles bool `toml:"log_tiles"`
}

// Load reads the TOML file at path over Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Window.TPS <= 0:
		return fmt.Errorf("window tps %d must be positive", c.Window.TPS)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("player size %dx%d must be positive", c.Player.Width, c.Player.Height)
	case c.Player.MaxSpeed < 0 || c.Player.MoveSpeed < 0:
		return fmt.Errorf("player speeds must not be negative")
	case c.Projectile.Lifetime <= 0:
		return fmt.Errorf("projectile lifetime %s must be positive", c.Projectile.Lifetime)
	case c.Camera.ViewportHeight <= 0:
		return fmt.Errorf("camera viewport height %g must be positive", c.Camera.ViewportHeight)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "Quadcopter",
			Width:     1024,
			Height:    768,
			Resizable: true,
			TPS:       60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Assets: AssetsConfig{
			Dir:          "assets",
			Copter:       "heli.png",
			Map:          "map.yaml",
			TerrainLayer: "terrain",
		},
		Player: PlayerConfig{
			SpawnX:        100,
			SpawnY:        100,
			Width:         95,
			Height:        32,
			HitWidth:      20,
			HitHeight:     64,
			MoveSpeed:     10,
			MaxSpeed:      200,
			Tilt:          0.2,
			ShootCooldown: 250 * time.Millisecond,
		},
		Projectile: ProjectileConfig{
			Speed:          400,
			Lifetime:       10 * time.Second,
			Radius:         2,
			MuzzleOffsetX:  16,
			MuzzleOffsetY:  30,
			MuzzleDistance: 32,
			ArmTime:        250 * time.Millisecond,
		},
		Camera: CameraConfig{
			ViewportHeight: 480,
		},
	}
}

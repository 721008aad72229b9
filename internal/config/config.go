// Package config loads the blackjack HCL configuration file
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/state"
)

// Config represents the complete configuration. Every block is optional.
type Config struct {
	Game       *GameConfig       `hcl:"game,block"`
	Animation  *AnimationConfig  `hcl:"animation,block"`
	Layout     *LayoutConfig     `hcl:"layout,block"`
	Assets     *AssetsConfig     `hcl:"assets,block"`
	Log        *LogConfig        `hcl:"log,block"`
	Server     *ServerConfig     `hcl:"server,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// GameConfig controls how a hand is dealt and greeted
type GameConfig struct {
	DealOrder       string `hcl:"deal_order,optional"`
	Seed            int64  `hcl:"seed,optional"`
	WelcomeTitle    string `hcl:"welcome_title,optional"`
	WelcomeSubtitle string `hcl:"welcome_subtitle,optional"`
}

// AnimationConfig controls card movement timing
type AnimationConfig struct {
	Duration string `hcl:"duration,optional"`
}

// LayoutConfig overrides table coordinates. Unset fields keep the
// default layout, so zero is a valid coordinate.
type LayoutConfig struct {
	PlayerX       *float64 `hcl:"player_x,optional"`
	PlayerY       *float64 `hcl:"player_y,optional"`
	DealerX       *float64 `hcl:"dealer_x,optional"`
	DealerY       *float64 `hcl:"dealer_y,optional"`
	PlayerSpacing *float64 `hcl:"player_spacing,optional"`
	DealerSpacing *float64 `hcl:"dealer_spacing,optional"`
	SpawnX        *float64 `hcl:"spawn_x,optional"`
	SpawnY        *float64 `hcl:"spawn_y,optional"`
}

// AssetsConfig points at the card image manifest
type AssetsConfig struct {
	Manifest string `hcl:"manifest,optional"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// ServerConfig contains the WebSocket listener settings
type ServerConfig struct {
	Address string `hcl:"address,optional"`
	Port    int    `hcl:"port,optional"`
}

// SimulationConfig controls headless batch play
type SimulationConfig struct {
	Hands    int `hcl:"hands,optional"`
	Workers  int `hcl:"workers,optional"`
	HitBelow int `hcl:"hit_below,optional"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	welcome := state.DefaultWelcome()
	return &Config{
		Game: &GameConfig{
			DealOrder:       string(state.DealAlternate),
			WelcomeTitle:    welcome.Title,
			WelcomeSubtitle: welcome.Subtitle,
		},
		Animation: &AnimationConfig{Duration: "250ms"},
		Layout:    &LayoutConfig{},
		Assets:    &AssetsConfig{Manifest: "assets/cards.hcl"},
		Log: &LogConfig{
			Level: "info",
			File:  "blackjack.log",
		},
		Server: &ServerConfig{
			Address: "localhost",
			Port:    8080,
		},
		Simulation: &SimulationConfig{
			Hands:    1000,
			Workers:  4,
			HitBelow: 17,
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Game == nil {
		c.Game = defaults.Game
	}
	if c.Game.DealOrder == "" {
		c.Game.DealOrder = defaults.Game.DealOrder
	}
	if c.Game.WelcomeTitle == "" {
		c.Game.WelcomeTitle = defaults.Game.WelcomeTitle
	}
	if c.Game.WelcomeSubtitle == "" {
		c.Game.WelcomeSubtitle = defaults.Game.WelcomeSubtitle
	}

	if c.Animation == nil {
		c.Animation = defaults.Animation
	}
	if c.Animation.Duration == "" {
		c.Animation.Duration = defaults.Animation.Duration
	}

	if c.Layout == nil {
		c.Layout = defaults.Layout
	}

	if c.Assets == nil {
		c.Assets = defaults.Assets
	}
	if c.Assets.Manifest == "" {
		c.Assets.Manifest = defaults.Assets.Manifest
	}

	if c.Log == nil {
		c.Log = defaults.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}

	if c.Server == nil {
		c.Server = defaults.Server
	}
	if c.Server.Address == "" {
		c.Server.Address = defaults.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Server.Port
	}

	if c.Simulation == nil {
		c.Simulation = defaults.Simulation
	}
	if c.Simulation.Hands == 0 {
		c.Simulation.Hands = defaults.Simulation.Hands
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = defaults.Simulation.Workers
	}
	if c.Simulation.HitBelow == 0 {
		c.Simulation.HitBelow = defaults.Simulation.HitBelow
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := state.ParseDealOrder(c.Game.DealOrder); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	d, err := time.ParseDuration(c.Animation.Duration)
	if err != nil {
		return fmt.Errorf("animation: invalid duration %q: %w", c.Animation.Duration, err)
	}
	if d < 0 {
		return fmt.Errorf("animation: duration must not be negative")
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Simulation.Hands < 1 {
		return fmt.Errorf("simulation: hands must be positive")
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation: workers must be positive")
	}
	if c.Simulation.HitBelow < 2 || c.Simulation.HitBelow > game.BlackjackValue+1 {
		return fmt.Errorf("simulation: hit_below must be between 2 and %d", game.BlackjackValue+1)
	}

	return nil
}

// ServerAddress returns the full listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// AnimationDuration returns the parsed animation duration. Call Validate
// first; an invalid value yields zero.
func (c *Config) AnimationDuration() time.Duration {
	d, _ := time.ParseDuration(c.Animation.Duration)
	return d
}

// DealOrder returns the validated deal order
func (c *Config) DealOrder() state.DealOrder {
	o, _ := state.ParseDealOrder(c.Game.DealOrder)
	return o
}

// Welcome returns the setup state's greeting
func (c *Config) Welcome() state.Welcome {
	return state.Welcome{Title: c.Game.WelcomeTitle, Subtitle: c.Game.WelcomeSubtitle}
}

// LogLevel returns the configured level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// TableLayout overlays the configured coordinates on the default layout
func (c *Config) TableLayout() game.Layout {
	l := game.DefaultLayout()
	if c.Layout == nil {
		return l
	}
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&l.PlayerX, c.Layout.PlayerX)
	set(&l.PlayerY, c.Layout.PlayerY)
	set(&l.DealerX, c.Layout.DealerX)
	set(&l.DealerY, c.Layout.DealerY)
	set(&l.PlayerSpacing, c.Layout.PlayerSpacing)
	set(&l.DealerSpacing, c.Layout.DealerSpacing)
	set(&l.SpawnX, c.Layout.SpawnX)
	set(&l.SpawnY, c.Layout.SpawnY)
	return l
}

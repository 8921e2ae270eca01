// Package config loads session settings from defaults, a YAML file, a .env
// file and VITALIS_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/omnivirtus/vitalis/internal/core/loom"
	"github.com/omnivirtus/vitalis/internal/core/models"
	"github.com/omnivirtus/vitalis/internal/core/observability/log"
	"github.com/omnivirtus/vitalis/internal/core/weaver"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "VITALIS_"

// MaxRegionRadius bounds the seeded region square.
const MaxRegionRadius = 64

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Seed drives every contest roll. Zero means draw one at startup.
	Seed int64 `yaml:"seed" env:"SEED"`
	// SeedPhrase, when set, is hashed into Seed.
	SeedPhrase string `yaml:"seed_phrase" env:"SEED_PHRASE"`

	Player PlayerConfig `yaml:"player" envPrefix:"PLAYER_"`
	Region RegionConfig `yaml:"region" envPrefix:"REGION_"`

	// TickInterval is how often background work is drained into the session.
	TickInterval time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`

	Log LogConfig `yaml:"log" envPrefix:"LOG_"`
}

type PlayerConfig struct {
	Name string `yaml:"name" env:"NAME"`
	X    int    `yaml:"x" env:"X"`
	Y    int    `yaml:"y" env:"Y"`
}

type RegionConfig struct {
	Description  string `yaml:"description" env:"DESCRIPTION"`
	Radius       int    `yaml:"radius" env:"RADIUS"`
	Intelligence int    `yaml:"intelligence" env:"INTELLIGENCE"`
	Charisma     int    `yaml:"charisma" env:"CHARISMA"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	// Path is where entries go; the terminal belongs to the UI. Empty disables logging.
	Path     string `yaml:"path" env:"PATH"`
	Encoding string `yaml:"encoding" env:"ENCODING"`
}

func Default() Config {
	world := loom.DefaultWorld()
	return Config{
		Player: PlayerConfig{
			Name: world.PlayerName,
			X:    world.PlayerStart.X,
			Y:    world.PlayerStart.Y,
		},
		Region: RegionConfig{
			Description:  world.RegionDescription,
			Radius:       world.RegionRadius,
			Intelligence: world.RegionIntelligence,
			Charisma:     world.RegionCharisma,
		},
		TickInterval: 100 * time.Millisecond,
		Log: LogConfig{
			Level:    "info",
			Path:     "vitalis.log",
			Encoding: "json",
		},
	}
}

// Sources says where Load reads from. Zero values skip a source; a nil
// Environment means the process environment.
type Sources struct {
	File        string
	DotEnv      string
	Environment map[string]string
	// Overrides runs after every other source and before Validate, for
	// command-line flags.
	Overrides func(*Config)
}

// Load builds a validated Config. Missing files are errors only when named
// explicitly; the default ".env" may be absent.
func Load(src Sources) (Config, error) {
	cfg := Default()

	if src.File != "" {
		if err := cfg.mergeFile(src.File); err != nil {
			return Config{}, err
		}
	}

	environment, err := mergeEnvironment(src)
	if err != nil {
		return Config{}, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix, Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if src.Overrides != nil {
		src.Overrides(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return c.Decode(f)
}

// Decode merges YAML from r over c. Unknown keys are rejected.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// mergeEnvironment overlays the environment on the .env file; real variables win.
func mergeEnvironment(src Sources) (map[string]string, error) {
	environment := src.Environment
	if environment == nil {
		environment = env.ToMap(os.Environ())
	}
	if src.DotEnv == "" {
		return environment, nil
	}

	dotenv, err := godotenv.Read(src.DotEnv)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && src.DotEnv == ".env" {
			return environment, nil
		}
		return nil, fmt.Errorf("read dotenv: %w", err)
	}
	merged := make(map[string]string, len(dotenv)+len(environment))
	for k, v := range dotenv {
		merged[k] = v
	}
	for k, v := range environment {
		merged[k] = v
	}
	return merged, nil
}

// Validate reports every problem at once, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Player.Name) == "" {
		problems = append(problems, "player.name must not be empty")
	}
	if c.Region.Radius < 0 || c.Region.Radius > MaxRegionRadius {
		problems = append(problems, fmt.Sprintf("region.radius %d outside [0,%d]", c.Region.Radius, MaxRegionRadius))
	}
	for name, v := range map[string]int{
		"region.intelligence": c.Region.Intelligence,
		"region.charisma":     c.Region.Charisma,
	} {
		if v < weaver.AttributeMin || v > weaver.AttributeMax {
			problems = append(problems, fmt.Sprintf("%s %d outside [%d,%d]", name, v, weaver.AttributeMin, weaver.AttributeMax))
		}
	}
	if c.TickInterval <= 0 {
		problems = append(problems, "tick_interval must be positive")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log.encoding %q is not json or console", c.Log.Encoding))
	}
	if len(problems) == 0 {
		return nil
	}
	slices.Sort(problems)
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

// SetSeed makes seed the only seed source, dropping any phrase.
func (c *Config) SetSeed(seed int64) {
	c.Seed = seed
	c.SeedPhrase = ""
}

// SetSeedPhrase makes phrase the only seed source, dropping any numeric seed.
func (c *Config) SetSeedPhrase(phrase string) {
	c.SeedPhrase = phrase
	c.Seed = 0
}

// ResolveSeed returns the configured seed, hashing SeedPhrase or drawing a
// fresh one as needed.
func (c Config) ResolveSeed() (int64, error) {
	switch {
	case c.SeedPhrase != "":
		return weaver.SeedFromPhrase(c.SeedPhrase), nil
	case c.Seed != 0:
		return c.Seed, nil
	default:
		return weaver.NewSeed()
	}
}

// World is the initial session content described by c.
func (c Config) World() loom.World {
	return loom.World{
		PlayerName:         c.Player.Name,
		PlayerStart:        models.Pos(c.Player.X, c.Player.Y),
		RegionRadius:       c.Region.Radius,
		RegionDescription:  c.Region.Description,
		RegionIntelligence: c.Region.Intelligence,
		RegionCharisma:     c.Region.Charisma,
	}
}

// LogOptions converts the log section. It assumes c has been validated.
func (c Config) LogOptions() log.Options {
	level, _ := log.ParseLevel(c.Log.Level)
	return log.Options{Level: level, Path: c.Log.Path, Encoding: c.Log.Encoding}
}

// YAML renders c as a config file.
func (c Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tvm-engine/internal/finance"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML or TOML).
type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Finance  FinanceConfig  `yaml:"finance" toml:"finance"`
	Sessions SessionsConfig `yaml:"sessions" toml:"sessions"`
}

type ServerConfig struct {
	Port        int      `yaml:"port" toml:"port"`
	Env         string   `yaml:"env" toml:"env"`
	CORSOrigins []string `yaml:"cors_origins" toml:"cors_origins"`
}

type FinanceConfig struct {
	DiscountRate    float64      `yaml:"discount_rate" toml:"discount_rate"`
	DecliningFactor float64      `yaml:"declining_factor" toml:"declining_factor"`
	Solver          SolverConfig `yaml:"solver" toml:"solver"`
}

type SolverConfig struct {
	Tolerance         float64 `yaml:"tolerance" toml:"tolerance"`
	MaxIterations     int     `yaml:"max_iterations" toml:"max_iterations"`
	DivergenceCeiling float64 `yaml:"divergence_ceiling" toml:"divergence_ceiling"`
}

type SessionsConfig struct {
	TTL           Duration `yaml:"ttl" toml:"ttl"`
	SweepInterval Duration `yaml:"sweep_interval" toml:"sweep_interval"`
}

// Duration reads "30m"-style strings from either format.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	s := finance.DefaultSolver()
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Env:         "development",
			CORSOrigins: []string{"*"},
		},
		Finance: FinanceConfig{
			DiscountRate:    finance.DefaultRate,
			DecliningFactor: 2,
			Solver: SolverConfig{
				Tolerance:         s.Tolerance,
				MaxIterations:     s.MaxIterations,
				DivergenceCeiling: s.DivergenceCeiling,
			},
		},
		Sessions: SessionsConfig{
			TTL:           Duration{30 * time.Minute},
			SweepInterval: Duration{5 * time.Minute},
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	c := Defaults()
	if path != "" {
		file, err := LoadUnchecked(path)
		if err != nil {
			return nil, err
		}
		c = Merge(c, file)
	}
	if err := ApplyEnv(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked parses a config file without defaults or validation.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(raw), &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return &c, nil
}

// ApplyEnv overrides the server section from API_PORT and API_ENV.
func ApplyEnv(c *Config) error {
	if v := os.Getenv("API_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("API_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Finance.DiscountRate <= -1 {
		return fmt.Errorf("finance.discount_rate must be > -1, got %g", c.Finance.DiscountRate)
	}
	if c.Finance.DecliningFactor <= 0 {
		return fmt.Errorf("finance.declining_factor must be > 0, got %g", c.Finance.DecliningFactor)
	}
	if err := c.Finance.Solver.ToSolverParams().Validate(); err != nil {
		return fmt.Errorf("finance.solver invalid: %w", err)
	}
	if c.Sessions.TTL.Duration <= 0 {
		return errors.New("sessions.ttl must be > 0")
	}
	if c.Sessions.SweepInterval.Duration < 0 {
		return errors.New("sessions.sweep_interval must be >= 0")
	}
	return nil
}

// Production reports whether the server runs in release mode.
func (c *Config) Production() bool {
	return c.Server.Env == "production"
}

func (s SolverConfig) ToSolverParams() finance.SolverParams {
	return finance.SolverParams{
		Tolerance:         s.Tolerance,
		MaxIterations:     s.MaxIterations,
		DivergenceCeiling: s.DivergenceCeiling,
	}
}

// Merge overlays non-zero fields from override onto base.
func Merge(base, override *Config) *Config {
	out := *base
	out.Server.CORSOrigins = append([]string(nil), base.Server.CORSOrigins...)

	if override.Server.Port != 0 {
		out.Server.Port = override.Server.Port
	}
	if override.Server.Env != "" {
		out.Server.Env = override.Server.Env
	}
	if len(override.Server.CORSOrigins) > 0 {
		out.Server.CORSOrigins = append([]string(nil), override.Server.CORSOrigins...)
	}
	// A zero rate reads as unset.
	if override.Finance.DiscountRate != 0 {
		out.Finance.DiscountRate = override.Finance.DiscountRate
	}
	if override.Finance.DecliningFactor != 0 {
		out.Finance.DecliningFactor = override.Finance.DecliningFactor
	}
	if override.Finance.Solver.Tolerance != 0 {
		out.Finance.Solver.Tolerance = override.Finance.Solver.Tolerance
	}
	if override.Finance.Solver.MaxIterations != 0 {
		out.Finance.Solver.MaxIterations = override.Finance.Solver.MaxIterations
	}
	if override.Finance.Solver.DivergenceCeiling != 0 {
		out.Finance.Solver.DivergenceCeiling = override.Finance.Solver.DivergenceCeiling
	}
	if override.Sessions.TTL.Duration != 0 {
		out.Sessions.TTL = override.Sessions.TTL
	}
	if override.Sessions.SweepInterval.Duration != 0 {
		out.Sessions.SweepInterval = override.Sessions.SweepInterval
	}
	return &out
}

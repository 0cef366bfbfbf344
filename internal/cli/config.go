package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orrery/pkg/cache"
	"github.com/matzehuels/orrery/pkg/solver"
)

// configFileName is searched for in the working directory first, then in
// the user config directory (~/.config/orrery/).
const configFileName = "orrery.toml"

// =============================================================================
// Config Schema
// =============================================================================

// Config holds the optional orrery.toml settings. Zero values defer to the
// built-in defaults, so an empty or missing file changes nothing.
type Config struct {
	Solve  SolveConfig  `toml:"solve"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// SolveConfig overrides the solver's separation, radius, and budget
// defaults. Values become the defaults for the matching CLI flags.
type SolveConfig struct {
	SepX   float64 `toml:"sep_x"`
	SepY   float64 `toml:"sep_y"`
	Radius float64 `toml:"radius"`
	Budget int     `toml:"budget"`
}

// CacheConfig selects the layout cache backend.
type CacheConfig struct {
	// Backend is "file" (default), "redis", or "none".
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	TTLHours  int    `toml:"ttl_hours"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db"`
}

// =============================================================================
// Loading
// =============================================================================

// loadConfig reads the first orrery.toml found. A missing file is not an
// error; a malformed one is.
func loadConfig() (Config, error) {
	var cfg Config
	path, err := findConfig()
	if err != nil || path == "" {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// findConfig returns the path of the config file to use, or "" when none
// exists.
func findConfig() (string, error) {
	candidates := []string{configFileName}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, configFileName))
	}
	for _, path := range candidates {
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

// configDir returns the config directory using XDG standard (~/.config/orrery/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Derived Values
// =============================================================================

// solverOptions lowers the [solve] section onto solver options. Zero fields
// stay zero; the solver substitutes its own defaults during the solve.
func (c Config) solverOptions() solver.Options {
	return solver.Options{
		SepX:   c.Solve.SepX,
		SepY:   c.Solve.SepY,
		Radius: c.Solve.Radius,
		Budget: c.Solve.Budget,
	}
}

// cacheTTL returns the configured cache lifetime, or the package default.
func (c Config) cacheTTL() time.Duration {
	if c.Cache.TTLHours <= 0 {
		return cache.TTLLayout
	}
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// redisAddr returns the configured redis address, or the conventional
// localhost default.
func (c Config) redisAddr() string {
	if c.Cache.RedisAddr != "" {
		return c.Cache.RedisAddr
	}
	return "localhost:6379"
}

// serverAddr returns the configured listen address, or the default port.
func (c Config) serverAddr() string {
	if c.Server.Addr != "" {
		return c.Server.Addr
	}
	return ":8080"
}

// mongoDB returns the configured database name, or the application name.
func (c Config) mongoDB() string {
	if c.Server.MongoDB != "" {
		return c.Server.MongoDB
	}
	return appName
}

// Package config holds the scan configuration. The shell-era edit-time
// constants became named fields on an explicit struct, loaded from a YAML
// file with env-file overrides so runs are reproducible without editing
// source.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all behavioral toggles and paths for a scan.
type Config struct {
	// BaseDir is the working root that owns scope/, scans/, lists/ and the
	// history database.
	BaseDir string `yaml:"base_dir"`

	// Debug enables per-tool timing logs and purges prior sessions for the
	// scanned scope before starting. Destructive, meant for repeatable test
	// runs only.
	Debug bool `yaml:"debug"`

	// DNSBruteforce enables the active wordlist bruteforce stage.
	DNSBruteforce bool `yaml:"dns_bruteforce"`

	// ValidateResolversOnStart regenerates the validated resolver list with
	// dnsvalidator before the pipeline runs.
	ValidateResolversOnStart bool `yaml:"validate_resolvers_on_start"`

	// StrictResolverValidation aborts the scan when resolver validation
	// produces no output instead of falling back to the raw cached list.
	StrictResolverValidation bool `yaml:"strict_resolver_validation"`

	// UseLargeResolverList selects the extended trickest resolver list over
	// the default one. The two sources are mutually exclusive.
	UseLargeResolverList bool `yaml:"use_large_resolver_list"`

	// Threads is passed to discovery tools that take a concurrency flag.
	Threads int `yaml:"threads"`

	// DNSThreads is passed to DNS-heavy tools (shuffledns, puredns, dnsx,
	// dnsvalidator).
	DNSThreads int `yaml:"dns_threads"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	baseDir := filepath.Join(home, "auto-recon")
	if err != nil {
		baseDir = "./auto-recon"
	}

	return &Config{
		BaseDir:    baseDir,
		Threads:    25,
		DNSThreads: 100,
	}
}

// ConfigDir returns the directory holding config.yaml and the optional .env.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".auto-recon"
	}
	return filepath.Join(home, ".auto-recon")
}

func configPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load builds the effective configuration: defaults, then config.yaml,
// then env overrides (a .env next to the config file or in the working
// directory, plus the process environment).
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(configPath()); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath(), err)
		}
	}

	// Missing .env files are fine, godotenv only fills in what exists.
	godotenv.Load(filepath.Join(ConfigDir(), ".env"))
	godotenv.Load()

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays AUTORECON_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("AUTORECON_BASE_DIR"); v != "" {
		c.BaseDir = v
	}
	if v, ok := envBool("AUTORECON_DEBUG"); ok {
		c.Debug = v
	}
	if v, ok := envBool("AUTORECON_DNS_BRUTEFORCE"); ok {
		c.DNSBruteforce = v
	}
	if v, ok := envBool("AUTORECON_VALIDATE_RESOLVERS"); ok {
		c.ValidateResolversOnStart = v
	}
	if v, ok := envBool("AUTORECON_STRICT_VALIDATION"); ok {
		c.StrictResolverValidation = v
	}
	if v, ok := envBool("AUTORECON_LARGE_RESOLVER_LIST"); ok {
		c.UseLargeResolverList = v
	}
	if v, ok := envInt("AUTORECON_THREADS"); ok {
		c.Threads = v
	}
	if v, ok := envInt("AUTORECON_DNS_THREADS"); ok {
		c.DNSThreads = v
	}
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// EnsureConfigExists writes a template config.yaml on first run so users
// have something to edit instead of hunting for field names.
func EnsureConfigExists() error {
	path := configPath()
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(ConfigDir(), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ScopeDir returns the scope registry directory.
func (c *Config) ScopeDir() string { return filepath.Join(c.BaseDir, "scope") }

// ScansDir returns the directory holding timestamped scan sessions.
func (c *Config) ScansDir() string { return filepath.Join(c.BaseDir, "scans") }

// ListsDir returns the cached list directory.
func (c *Config) ListsDir() string { return filepath.Join(c.BaseDir, "lists") }

// HistoryDBPath returns the session history database path.
func (c *Config) HistoryDBPath() string { return filepath.Join(c.BaseDir, "history.db") }

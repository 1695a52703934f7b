package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	if cfg.BaseDir == "" {
		t.Fatal("BaseDir must default to a non-empty path")
	}
	if cfg.Debug || cfg.DNSBruteforce || cfg.ValidateResolversOnStart || cfg.UseLargeResolverList {
		t.Fatal("behavioral toggles must default to off")
	}
	if cfg.Threads <= 0 || cfg.DNSThreads <= 0 {
		t.Fatal("thread defaults must be positive")
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AUTORECON_DEBUG", "true")
	t.Setenv("AUTORECON_DNS_BRUTEFORCE", "1")
	t.Setenv("AUTORECON_THREADS", "7")
	t.Setenv("AUTORECON_BASE_DIR", "/tmp/recon-test")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug || !cfg.DNSBruteforce {
		t.Fatalf("env bools not applied: %+v", cfg)
	}
	if cfg.Threads != 7 {
		t.Fatalf("Threads = %d, want 7", cfg.Threads)
	}
	if cfg.BaseDir != "/tmp/recon-test" {
		t.Fatalf("BaseDir = %q, want /tmp/recon-test", cfg.BaseDir)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".auto-recon")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	yaml := "dns_bruteforce: true\nuse_large_resolver_list: true\ndns_threads: 42\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.DNSBruteforce || !cfg.UseLargeResolverList {
		t.Fatalf("yaml bools not applied: %+v", cfg)
	}
	if cfg.DNSThreads != 42 {
		t.Fatalf("DNSThreads = %d, want 42", cfg.DNSThreads)
	}
}

func TestPathHelpers(t *testing.T) {
	cfg := &Config{BaseDir: "/data/recon"}
	if got := cfg.ScopeDir(); got != "/data/recon/scope" {
		t.Fatalf("ScopeDir() = %q", got)
	}
	if got := cfg.ScansDir(); got != "/data/recon/scans" {
		t.Fatalf("ScansDir() = %q", got)
	}
	if got := cfg.ListsDir(); got != "/data/recon/lists" {
		t.Fatalf("ListsDir() = %q", got)
	}
	if got := cfg.HistoryDBPath(); got != "/data/recon/history.db" {
		t.Fatalf("HistoryDBPath() = %q", got)
	}
}

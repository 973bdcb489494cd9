package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(path, home) {
		t.Errorf("configPath() = %q, should be under home %q", path, home)
	}
	expected := filepath.Join(home, ".config", appName, "config.toml")
	if path != expected {
		t.Errorf("configPath() = %q, want %q", path, expected)
	}
}

func TestConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-config", appName, "config.toml")
	if path != expected {
		t.Errorf("configPath() with XDG_CONFIG_HOME = %q, want %q", path, expected)
	}
}

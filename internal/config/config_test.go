package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Port != 6770 {
		t.Errorf("Expected Port 6770, got %d", cfg.Port)
	}

	if cfg.LogLimit != 50 {
		t.Errorf("Expected LogLimit 50, got %d", cfg.LogLimit)
	}

	if cfg.Disabled {
		t.Error("Expected Disabled false by default")
	}

	if cfg.MDNS {
		t.Error("Expected MDNS false by default")
	}

	if cfg.PushInterval != time.Second {
		t.Errorf("Expected PushInterval 1s, got %v", cfg.PushInterval)
	}
}

func TestLoad_NoFile(t *testing.T) {
	// Load config when no file exists - should return defaults
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("Expected default Port, got %d", cfg.Port)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CHANSCOPE_PORT", "7001")
	t.Setenv("CHANSCOPE_LOG_LIMIT", "5")
	t.Setenv("CHANSCOPE_DISABLED", "true")
	t.Setenv("CHANSCOPE_PUSH_INTERVAL", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 7001 {
		t.Errorf("Expected Port 7001 from env, got %d", cfg.Port)
	}
	if cfg.LogLimit != 5 {
		t.Errorf("Expected LogLimit 5 from env, got %d", cfg.LogLimit)
	}
	if !cfg.Disabled {
		t.Error("Expected Disabled true from env")
	}
	if cfg.PushInterval != 250*time.Millisecond {
		t.Errorf("Expected PushInterval 250ms from env, got %v", cfg.PushInterval)
	}
}

func TestLoad_InvalidValuesClamped(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CHANSCOPE_PORT", "99999")
	t.Setenv("CHANSCOPE_LOG_LIMIT", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("Expected out-of-range port clamped to %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.LogLimit != DefaultLogLimit {
		t.Errorf("Expected zero log limit clamped to %d, got %d", DefaultLogLimit, cfg.LogLimit)
	}
}

func TestAddr(t *testing.T) {
	cfg := &Config{Port: 6770}
	if cfg.Addr() != "127.0.0.1:6770" {
		t.Errorf("Expected 127.0.0.1:6770, got %s", cfg.Addr())
	}
}

package internal

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.StoragePath != "" {
		t.Errorf("StoragePath = %q, want empty default", cfg.StoragePath)
	}
	if cfg.ListenAddr != "127.0.0.1:8732" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("CURSOR_THREADS_STORAGE_PATH", "/custom/cursor")
	t.Setenv("CURSOR_THREADS_LISTEN_ADDR", "0.0.0.0:9000")
	t.Setenv("CURSOR_THREADS_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.StoragePath != "/custom/cursor" {
		t.Errorf("StoragePath = %q", cfg.StoragePath)
	}
	if cfg.ListenAddr != "0.0.0.0:9000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdhender/sdc/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("non-existent file", func(t *testing.T) {
		cfg, err := config.Load("non-existent-file.json", false)
		if err != nil {
			t.Errorf("expected no error for non-existent file, got %v", err)
		}
		if cfg == nil {
			t.Errorf("expected non-nil config")
		}
		if cfg.Stories.Path != "data/stories" {
			t.Errorf("expected default stories path, got %q", cfg.Stories.Path)
		}
	})

	t.Run("directory error", func(t *testing.T) {
		tmpDir := t.TempDir()
		_, err := config.Load(tmpDir, false)
		if err == nil {
			t.Errorf("expected error for directory, got nil")
		}
	})

	t.Run("empty config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		if err := os.WriteFile(configFile, []byte("{}"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, false)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if cfg.Stories.Path != "data/stories" {
			t.Errorf("expected default stories path to survive an empty file, got %q", cfg.Stories.Path)
		}
	})

	t.Run("partial config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		testConfig := config.Config{
			AllowConfig: true,
			Stories: config.Stories_t{
				Path: "/tmp/stories",
			},
		}

		data, err := json.Marshal(testConfig)
		if err != nil {
			t.Fatalf("failed to marshal test config: %v", err)
		}
		if err = os.WriteFile(configFile, data, 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, false)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if cfg.Stories.Path != "/tmp/stories" {
			t.Errorf("expected stories path '/tmp/stories', got %q", cfg.Stories.Path)
		}
		if !cfg.AllowConfig {
			t.Errorf("expected AllowConfig to be true")
		}
		// CacheSize was not set, so Load must fall back to its floor value.
		if cfg.Stories.CacheSize != 1 {
			t.Errorf("expected CacheSize to fall back to 1, got %d", cfg.Stories.CacheSize)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		if err := os.WriteFile(configFile, []byte("invalid json"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, true)
		if err != nil {
			t.Errorf("expected no error for invalid JSON, got %v", err)
		}
		if cfg.Stories.Path != "data/stories" {
			t.Errorf("expected default stories path for invalid JSON, got %q", cfg.Stories.Path)
		}
	})
}

func TestCopyNonZeroFields(t *testing.T) {
	t.Run("copy only non-zero fields", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		testConfig := config.Config{
			Stories: config.Stories_t{
				Path:      "/tmp/stories",
				CacheSize: 42,
			},
			// DebugFlags.Parser is left unset and must remain false.
		}

		data, err := json.Marshal(testConfig)
		if err != nil {
			t.Fatalf("failed to marshal test config: %v", err)
		}
		if err = os.WriteFile(configFile, data, 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, true)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if cfg.Stories.CacheSize != 42 {
			t.Errorf("expected CacheSize 42, got %d", cfg.Stories.CacheSize)
		}
		if cfg.DebugFlags.Parser {
			t.Errorf("expected DebugFlags.Parser to remain false (default)")
		}
	})
}

package main

import (
	"path/filepath"
	"testing"
	"time"
)

// Configuration Tests

func TestLoadDefaultConfig(t *testing.T) {
	config, err := LoadDefaultConfig()
	if err != nil {
		t.Fatalf("embedded defaults must parse: %v", err)
	}

	if config.Server.Addr != ":8080" {
		t.Errorf("server addr: got %q", config.Server.Addr)
	}
	if config.Scenario.Modality != "CDI 105%" {
		t.Errorf("default modality: got %q", config.Scenario.Modality)
	}
	if _, err := ModalityByName(config.Scenario.Modality); err != nil {
		t.Errorf("default modality must exist in the catalog: %v", err)
	}
	if !config.Scenario.ApplyTax {
		t.Error("taxation should default to on")
	}
	if config.RefreshInterval() != 12*time.Hour {
		t.Errorf("refresh interval: got %v", config.RefreshInterval())
	}
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	config, err := LoadDefaultConfig()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	config.Scenario.InitialCapital = 75000
	config.Scenario.Modality = "LCI/LCA"
	config.Market.RefreshHours = 6

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := SaveConfig(config, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Scenario.InitialCapital != 75000 {
		t.Errorf("initial capital lost: %.2f", loaded.Scenario.InitialCapital)
	}
	if loaded.Scenario.Modality != "LCI/LCA" {
		t.Errorf("modality lost: %q", loaded.Scenario.Modality)
	}
	if loaded.RefreshInterval() != 6*time.Hour {
		t.Errorf("refresh interval lost: %v", loaded.RefreshInterval())
	}
}

func TestLoadConfigOrDefault_MissingFile(t *testing.T) {
	config, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if config.Scenario.Modality == "" {
		t.Error("fallback config is empty")
	}
}

func TestConfig_RateCacheSelection(t *testing.T) {
	config, err := LoadDefaultConfig()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}

	if _, ok := config.NewRateCache().(*FileRateCache); !ok {
		t.Error("default cache backend should be the file cache")
	}

	config.Market.RedisAddr = "localhost:6379"
	if _, ok := config.NewRateCache().(*RedisRateCache); !ok {
		t.Error("setting a Redis address should switch the backend")
	}
}

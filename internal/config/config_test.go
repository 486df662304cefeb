package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oyilmaz/firsat/internal/types"
)

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	if defaults.Quit != "q" {
		t.Errorf("Default Quit key = %s, want q", defaults.Quit)
	}
	if defaults.GrabDeal != "g" {
		t.Errorf("Default GrabDeal key = %s, want g", defaults.GrabDeal)
	}
	if defaults.ViewDeal != " " {
		t.Errorf("Default ViewDeal key = %s, want space", defaults.ViewDeal)
	}
}

func TestDefaultStages(t *testing.T) {
	cfg := Default()

	stages := cfg.StageModels()

	// One column per backend status value, in pipeline order. A default
	// outside the backend enum would make every drop into it a 422.
	want := []types.StageID{
		types.StageLead,
		types.StageOpportunity,
		types.StageQuoteSent,
		types.StageOrderReceived,
		types.StageInvoiced,
		types.StageLost,
	}
	if len(stages) != len(want) {
		t.Fatalf("default stage count = %d, want %d", len(stages), len(want))
	}
	for i, id := range want {
		if stages[i].ID != id {
			t.Errorf("stage[%d] = %v, want %v", i, stages[i].ID, id)
		}
	}
	if stages[0].Label != "Aday" {
		t.Errorf("Lead label = %q, want Aday", stages[0].Label)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", origXDG)

	tempDir := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tempDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("default BaseURL = %s, want http://localhost:8000", cfg.API.BaseURL)
	}
	if cfg.KeyMappings.Quit != "q" {
		t.Errorf("Loaded config Quit key = %s, want q (default)", cfg.KeyMappings.Quit)
	}
	if len(cfg.Transitions) != 0 {
		t.Errorf("default transitions should be empty (allow all), got %d entries", len(cfg.Transitions))
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", origXDG)

	tempDir := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tempDir)

	configDir := filepath.Join(tempDir, "firsat")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	configContent := `api:
  base_url: "http://backend.local:9000"
  tenant_id: 5
stages:
  - id: "Lead"
    label: "Aday"
    color: "#89b4fa"
  - id: "Lost"
    label: "Kaybedildi"
    color: "#f38ba8"
transitions:
  Lost: []
key_mappings:
  quit: "x"
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with config file failed: %v", err)
	}

	if cfg.API.BaseURL != "http://backend.local:9000" {
		t.Errorf("BaseURL = %s, want custom value", cfg.API.BaseURL)
	}
	if cfg.API.TenantID != 5 {
		t.Errorf("TenantID = %d, want 5", cfg.API.TenantID)
	}
	if len(cfg.Stages) != 2 {
		t.Errorf("stage count = %d, want 2 from file", len(cfg.Stages))
	}
	if cfg.KeyMappings.Quit != "x" {
		t.Errorf("Quit key = %s, want x", cfg.KeyMappings.Quit)
	}

	// Terminal stage: no transitions out of Lost
	if cfg.Transitions.Allowed(types.StageLost, types.StageLead) {
		t.Error("Lost -> Lead should be blocked by the configured matrix")
	}
	if !cfg.Transitions.Allowed(types.StageLead, types.StageLost) {
		t.Error("Lead -> Lost should be allowed, Lead has no restriction entry")
	}
}

func TestEnvOverrides(t *testing.T) {
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	origURL := os.Getenv("FIRSAT_API_URL")
	origToken := os.Getenv("FIRSAT_TOKEN")
	defer func() {
		os.Setenv("XDG_CONFIG_HOME", origXDG)
		os.Setenv("FIRSAT_API_URL", origURL)
		os.Setenv("FIRSAT_TOKEN", origToken)
	}()

	os.Setenv("XDG_CONFIG_HOME", t.TempDir())
	os.Setenv("FIRSAT_API_URL", "http://override:8001")
	os.Setenv("FIRSAT_TOKEN", "env-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.API.BaseURL != "http://override:8001" {
		t.Errorf("BaseURL = %s, want env override", cfg.API.BaseURL)
	}
	if cfg.API.Token != "env-token" {
		t.Errorf("Token = %s, want env override", cfg.API.Token)
	}
}

func TestTransitionsAllowed(t *testing.T) {
	matrix := Transitions{
		"Lead":     {"Opportunity", "Lost"},
		"Invoiced": {},
	}

	tests := []struct {
		name string
		from types.StageID
		to   types.StageID
		want bool
	}{
		{"listed target", types.StageLead, types.StageOpportunity, true},
		{"second listed target", types.StageLead, types.StageLost, true},
		{"unlisted target", types.StageLead, types.StageInvoiced, false},
		{"terminal stage", types.StageInvoiced, types.StageLead, false},
		{"unrestricted origin", types.StageQuoteSent, types.StageLost, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matrix.Allowed(tt.from, tt.to); got != tt.want {
				t.Errorf("Allowed(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestEmptyTransitionsAllowsEverything(t *testing.T) {
	var matrix Transitions
	if !matrix.Allowed(types.StageLost, types.StageLead) {
		t.Error("empty matrix should allow every transition")
	}
}

func TestColorSchemeDefaults(t *testing.T) {
	var scheme ColorScheme
	scheme.ApplyDefaults()

	if scheme.Accent == "" {
		t.Error("Accent should get a default")
	}
	if scheme.StatusBarBg == "" {
		t.Error("StatusBarBg should get a default")
	}

	// Partially filled schemes only get the gaps filled
	custom := ColorScheme{Accent: "#ff0000"}
	custom.ApplyDefaults()
	if custom.Accent != "#ff0000" {
		t.Errorf("Accent = %s, custom value should survive", custom.Accent)
	}
	if custom.Title == "" {
		t.Error("Title should be filled with a default")
	}
}

func TestMonochromePreset(t *testing.T) {
	scheme := ColorScheme{Preset: "monochrome"}
	scheme.ApplyDefaults()

	mono := MonochromeColorScheme()
	if scheme.Accent != mono.Accent {
		t.Errorf("preset Accent = %s, want monochrome %s", scheme.Accent, mono.Accent)
	}
}

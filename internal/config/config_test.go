package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.DBPath != "atelier.db" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Model.Name != "gpt-3.5-turbo" || cfg.Model.MaxTokens != 250 {
		t.Fatalf("model defaults = %+v", cfg.Model)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ATELIER_ADDR", ":9090")
	t.Setenv("ATELIER_MAX_TOKENS", "500")
	t.Setenv("ATELIER_TEMPERATURE", "0.2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.Model.MaxTokens != 500 || cfg.Model.Temperature != 0.2 {
		t.Fatalf("overrides = %+v", cfg)
	}
}

func TestLoadBadNumbers(t *testing.T) {
	t.Setenv("ATELIER_MAX_TOKENS", "many")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric max tokens")
	}
}

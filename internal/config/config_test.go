package config

import (
	"strings"
	"testing"
)

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error without GEMINI_API_KEY")
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("error should name the missing variable, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.API.Port != 8080 {
		t.Errorf("default port = %d", cfg.API.Port)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash-lite" {
		t.Errorf("default model = %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.TimeoutSeconds != 60 {
		t.Errorf("default timeout = %d", cfg.Gemini.TimeoutSeconds)
	}
	if cfg.Autofill.DefaultVariant != "Placement" {
		t.Errorf("default variant = %q", cfg.Autofill.DefaultVariant)
	}
	if !strings.Contains(cfg.Database.DSN(), "dbname=formpilot") {
		t.Errorf("DSN = %q", cfg.Database.DSN())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("GEMINI_TIMEOUT_SECONDS", "15")
	t.Setenv("PROFILE_VARIANT", "Research")
	t.Setenv("API_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.API.Port != 9090 {
		t.Errorf("port = %d", cfg.API.Port)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.Timeout().Seconds() != 15 {
		t.Errorf("timeout = %v", cfg.Gemini.Timeout())
	}
	if cfg.Autofill.DefaultVariant != "Research" {
		t.Errorf("variant = %q", cfg.Autofill.DefaultVariant)
	}
}

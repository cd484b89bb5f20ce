package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mingpan/mingpan/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "ws")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ConfigFile), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return root
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := writeConfig(t, "mingpan:\n  masking:\n    enabled: false\n")

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Masking.Enabled {
		t.Fatalf("expected masking=false")
	}
	def := domain.DefaultConfig()
	if cfg.Defaults != def.Defaults {
		t.Fatalf("expected default location, got %+v", cfg.Defaults)
	}
	if cfg.Data != def.Data || cfg.Paths != def.Paths || cfg.Cache != def.Cache || cfg.Geocode != def.Geocode {
		t.Fatalf("expected defaults to survive a partial file, got %+v", cfg)
	}
}

func TestLoadConfig_OverridesEverySection(t *testing.T) {
	root := writeConfig(t, `mingpan:
  defaults:
    timezone: Asia/Tokyo
    longitude: 139.6917
    place: 東京
  data:
    char_codes: ref/codes.txt
    code_strokes: ref/strokes.txt
    stroke_cache: ref/cache.json
  cache:
    names: 10
    pillars: 0
  paths:
    readings_dir: out
    places_file: my-places.yaml
    casebooks_dir: suites
  geocode:
    enabled: true
    api_key_env: MAPS_KEY
    timeout_ms: 2500
`)

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Defaults.TimeZone != "Asia/Tokyo" || cfg.Defaults.Longitude != 139.6917 || cfg.Defaults.Place != "東京" {
		t.Fatalf("unexpected defaults %+v", cfg.Defaults)
	}
	if cfg.Data.CodeStrokes != "ref/strokes.txt" || cfg.Data.StrokeCache != "ref/cache.json" {
		t.Fatalf("unexpected data paths %+v", cfg.Data)
	}
	if cfg.Cache.Names != 10 || cfg.Cache.Pillars != 50 {
		t.Fatalf("expected names=10 and default pillars, got %+v", cfg.Cache)
	}
	if cfg.Paths.ReadingsDir != "out" || cfg.Paths.CaseBooksDir != "suites" {
		t.Fatalf("unexpected paths %+v", cfg.Paths)
	}
	if !cfg.Geocode.Enabled || cfg.Geocode.APIKeyEnv != "MAPS_KEY" || cfg.Geocode.TimeoutMS != 2500 {
		t.Fatalf("unexpected geocode %+v", cfg.Geocode)
	}
	if cfg.Geocode.BaseURL != domain.DefaultConfig().Geocode.BaseURL {
		t.Fatalf("base url should keep its default, got %q", cfg.Geocode.BaseURL)
	}
}

func TestLoadConfig_BadLongitude(t *testing.T) {
	root := writeConfig(t, "mingpan:\n  defaults:\n    longitude: 500\n")
	_, err := LoadConfig(root)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if cfg.Defaults.TimeZone != "Asia/Taipei" {
		t.Fatalf("expected defaults on error, got %+v", cfg.Defaults)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	root := writeConfig(t, "mingpan: [unclosed\n")
	if _, err := LoadConfig(root); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

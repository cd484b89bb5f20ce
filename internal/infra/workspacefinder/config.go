package workspacefinder

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mingpan/mingpan/internal/domain"
)

// LoadConfig loads mingpan.yaml from the workspace root and overlays it on the defaults.
// On error the defaults are still returned.
func LoadConfig(root string) (domain.Config, error) {
	const op = "workspacefinder.loadconfig"
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{Op: op, Kind: domain.KindNotFound, Path: path, Err: err}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}

	m := y.Mingpan
	if m.Masking.Enabled != nil {
		cfg.Masking.Enabled = *m.Masking.Enabled
	}

	setString(&cfg.Defaults.TimeZone, m.Defaults.TimeZone)
	setString(&cfg.Defaults.Place, m.Defaults.Place)
	if m.Defaults.Longitude != nil {
		if err := domain.ValidateLongitude(*m.Defaults.Longitude); err != nil {
			return domain.DefaultConfig(), &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Path: path, Err: err}
		}
		cfg.Defaults.Longitude = *m.Defaults.Longitude
	}

	setString(&cfg.Data.CharCodes, m.Data.CharCodes)
	setString(&cfg.Data.CodeStrokes, m.Data.CodeStrokes)
	setString(&cfg.Data.StrokeCache, m.Data.StrokeCache)

	if m.Cache.Names != nil && *m.Cache.Names > 0 {
		cfg.Cache.Names = *m.Cache.Names
	}
	if m.Cache.Pillars != nil && *m.Cache.Pillars > 0 {
		cfg.Cache.Pillars = *m.Cache.Pillars
	}

	setString(&cfg.Paths.ReadingsDir, m.Paths.ReadingsDir)
	setString(&cfg.Paths.PlacesFile, m.Paths.PlacesFile)
	setString(&cfg.Paths.CaseBooksDir, m.Paths.CaseBooksDir)

	if m.Geocode.Enabled != nil {
		cfg.Geocode.Enabled = *m.Geocode.Enabled
	}
	setString(&cfg.Geocode.APIKeyEnv, m.Geocode.APIKeyEnv)
	setString(&cfg.Geocode.BaseURL, m.Geocode.BaseURL)
	if m.Geocode.TimeoutMS != nil && *m.Geocode.TimeoutMS > 0 {
		cfg.Geocode.TimeoutMS = *m.Geocode.TimeoutMS
	}

	return cfg, nil
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

type yamlConfig struct {
	Mingpan struct {
		Masking struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"masking"`

		Defaults struct {
			TimeZone  string   `yaml:"timezone"`
			Longitude *float64 `yaml:"longitude"`
			Place     string   `yaml:"place"`
		} `yaml:"defaults"`

		Data struct {
			CharCodes   string `yaml:"char_codes"`
			CodeStrokes string `yaml:"code_strokes"`
			StrokeCache string `yaml:"stroke_cache"`
		} `yaml:"data"`

		Cache struct {
			Names   *int `yaml:"names"`
			Pillars *int `yaml:"pillars"`
		} `yaml:"cache"`

		Paths struct {
			ReadingsDir  string `yaml:"readings_dir"`
			PlacesFile   string `yaml:"places_file"`
			CaseBooksDir string `yaml:"casebooks_dir"`
		} `yaml:"paths"`

		Geocode struct {
			Enabled   *bool  `yaml:"enabled"`
			APIKeyEnv string `yaml:"api_key_env"`
			BaseURL   string `yaml:"base_url"`
			TimeoutMS *int   `yaml:"timeout_ms"`
		} `yaml:"geocode"`
	} `yaml:"mingpan"`
}

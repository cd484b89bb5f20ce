package domain

// Config represents the mingpan workspace configuration loaded from mingpan.yaml.
type Config struct {
	Masking  MaskingConfig
	Defaults DefaultsConfig
	Data     DataConfig
	Cache    CacheConfig
	Paths    PathsConfig
	Geocode  GeocodeConfig
}

type MaskingConfig struct {
	Enabled bool
}

type DefaultsConfig struct {
	TimeZone  string
	Longitude float64
	Place     string
}

// DataConfig points at the stroke reference tables and the cache artifact,
// relative to the workspace root unless absolute.
type DataConfig struct {
	CharCodes   string
	CodeStrokes string
	StrokeCache string
}

type CacheConfig struct {
	Names   int
	Pillars int
}

type PathsConfig struct {
	ReadingsDir  string
	PlacesFile   string
	CaseBooksDir string
}

type GeocodeConfig struct {
	Enabled   bool
	APIKeyEnv string
	BaseURL   string
	TimeoutMS int
}

// DefaultLocation returns the configured fallback place.
func (c Config) DefaultLocation() Location {
	return Location{
		Name:      c.Defaults.Place,
		Longitude: c.Defaults.Longitude,
		TimeZone:  c.Defaults.TimeZone,
		Source:    "default",
	}
}

// DefaultConfig provides sane defaults if mingpan.yaml is partially missing.
func DefaultConfig() Config {
	def := DefaultLocation()
	return Config{
		Masking: MaskingConfig{Enabled: true},
		Defaults: DefaultsConfig{
			TimeZone:  def.TimeZone,
			Longitude: def.Longitude,
			Place:     def.Name,
		},
		Data: DataConfig{
			CharCodes:   "data/CNS2UNICODE_Unicode_BMP.txt",
			CodeStrokes: "data/CNS_stroke.txt",
			StrokeCache: "data/char_stroke_cache.json",
		},
		Cache: CacheConfig{
			Names:   100,
			Pillars: 50,
		},
		Paths: PathsConfig{
			ReadingsDir:  "readings",
			PlacesFile:   "places.yaml",
			CaseBooksDir: "cases",
		},
		Geocode: GeocodeConfig{
			Enabled:   false,
			APIKeyEnv: "GOOGLE_API_KEY",
			BaseURL:   "https://maps.googleapis.com/maps/api",
			TimeoutMS: 10000,
		},
	}
}

// WorkspaceSpec describes where a workspace is scaffolded.
type WorkspaceSpec struct {
	Root string
}

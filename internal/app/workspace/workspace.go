// Package workspace wires the engine and its collaborators for one workspace root.
package workspace

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/infra/geocode"
	"github.com/mingpan/mingpan/internal/infra/httpclient"
	"github.com/mingpan/mingpan/internal/infra/places"
	"github.com/mingpan/mingpan/internal/infra/readingstore"
	"github.com/mingpan/mingpan/internal/infra/strokes"
	"github.com/mingpan/mingpan/internal/infra/workspacefinder"
	"github.com/mingpan/mingpan/internal/infra/yamlcases"
	"github.com/mingpan/mingpan/internal/infra/zones"
	"github.com/mingpan/mingpan/internal/ports"
	"github.com/mingpan/mingpan/internal/usecase"
	"github.com/mingpan/mingpan/internal/usecase/numerology"
	"github.com/mingpan/mingpan/internal/usecase/pillars"
)

// Workspace holds the configured components of one workspace.
type Workspace struct {
	Root   string
	Config domain.Config
	Log    *slog.Logger

	StrokeLoader *strokes.Loader
	Strokes      *strokes.Table
	Names        *numerology.Calculator
	Pillars      *pillars.Calculator
	Places       *places.Catalog
	Geocoder     ports.Geocoder
	CaseBooks    *yamlcases.Loader
	Store        *readingstore.JSONStore
}

// Open loads mingpan.yaml under root and builds every component. Nothing is
// read from disk beyond the config until first use.
func Open(root string, log *slog.Logger) (*Workspace, error) {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	loader := strokes.NewLoader(strokes.PathsFromConfig(root, cfg), strokes.WithLogger(log))
	table := strokes.NewTable(loader)
	catalog := places.NewCatalog(resolve(root, cfg.Paths.PlacesFile))

	ws := &Workspace{
		Root:         root,
		Config:       cfg,
		Log:          log,
		StrokeLoader: loader,
		Strokes:      table,
		Names:        numerology.NewCalculator(table, numerology.WithCacheSize(cfg.Cache.Names), numerology.WithLogger(log)),
		Pillars: pillars.NewCalculator(
			zones.NewResolver(cfg.Defaults.TimeZone, zones.WithLogger(log)),
			pillars.WithCacheSize(cfg.Cache.Pillars),
			pillars.WithLogger(log),
		),
		Places:    catalog,
		CaseBooks: yamlcases.NewLoader(yamlcases.WithCaseBooksDir(cfg.Paths.CaseBooksDir)),
		Store:     readingstore.NewJSONStore(root, cfg, readingstore.WithIndex(true)),
	}
	ws.Geocoder = geocode.NewChain(cfg.DefaultLocation(), log, catalog, remoteGeocoder(cfg, log))
	return ws, nil
}

// remoteGeocoder returns nil unless remote lookups are enabled and a key is set.
func remoteGeocoder(cfg domain.Config, log *slog.Logger) ports.Geocoder {
	if !cfg.Geocode.Enabled {
		return nil
	}
	key := strings.TrimSpace(os.Getenv(cfg.Geocode.APIKeyEnv))
	if key == "" {
		log.Warn("geocode.disabled", "reason", "api key not set", "env", cfg.Geocode.APIKeyEnv)
		return nil
	}
	hc := httpclient.FromGeocode(cfg.Geocode)
	exec := httpclient.NewExecutor(httpclient.WithClient(httpclient.New(hc)), httpclient.WithTimeout(hc.Timeout))
	return geocode.NewGoogle(exec, cfg.Geocode.BaseURL, key)
}

// GenerateReading builds the reading usecase with persistence enabled.
func (ws *Workspace) GenerateReading() *usecase.GenerateReading {
	return usecase.NewGenerateReading(ws.Names, ws.Pillars, ws.Geocoder,
		usecase.WithStore(ws.Store),
		usecase.WithLogger(ws.Log),
	)
}

func (ws *Workspace) DescribeName() *usecase.DescribeName {
	return usecase.NewDescribeName(ws.Names)
}

func (ws *Workspace) VerifyCases() *usecase.VerifyCases {
	return usecase.NewVerifyCases(ws.CaseBooks, ws.Names, ws.Pillars)
}

func (ws *Workspace) BuildStrokeCache() *usecase.BuildStrokeCache {
	return usecase.NewBuildStrokeCache(ws.StrokeLoader)
}

// CaseBookPath resolves a casebook argument: a path, a file name under the
// casebooks dir, a bare name with .yaml/.yml, or a casebook "name" field.
func (ws *Workspace) CaseBookPath(arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", domain.InvalidInput("workspace.casebook", "casebook is required")
	}

	if LooksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.Root, p)
		}
		return filepath.Clean(p), nil
	}

	dir := filepath.Join(ws.Root, ws.Config.Paths.CaseBooksDir)
	if HasYAMLExt(in) {
		if p := filepath.Join(dir, in); FileExists(p) {
			return p, nil
		}
	}
	for _, ext := range []string{".yaml", ".yml"} {
		if p := filepath.Join(dir, in+ext); FileExists(p) {
			return p, nil
		}
	}

	refs, err := ws.CaseBooks.ListCaseBooks(ws.Root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}
	return "", &domain.OpError{Op: "workspace.casebook", Kind: domain.KindNotFound, Path: dir, Err: domain.ErrNotFound}
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func LooksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func HasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

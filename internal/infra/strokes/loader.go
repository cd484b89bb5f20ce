// Package strokes builds the character stroke table from two reference files and
// persists it as a JSON cache.
package strokes

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/ports"
)

// Paths locates the reference tables and the cache artifact.
type Paths struct {
	CharCodes   string
	CodeStrokes string
	Cache       string
}

// PathsFromConfig resolves the configured data files against the workspace root.
func PathsFromConfig(root string, cfg domain.Config) Paths {
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	return Paths{
		CharCodes:   resolve(cfg.Data.CharCodes),
		CodeStrokes: resolve(cfg.Data.CodeStrokes),
		Cache:       resolve(cfg.Data.StrokeCache),
	}
}

type Loader struct {
	paths Paths
	log   *slog.Logger
}

type Option func(*Loader)

func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.log = l
		}
	}
}

func NewLoader(paths Paths, opts ...Option) *Loader {
	ld := &Loader{
		paths: paths,
		log:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load returns the cached table when present, otherwise builds and persists it.
// It never fails: missing or unreadable inputs yield a partial (possibly empty) table.
func (ld *Loader) Load() domain.StrokeTable {
	t, err := ld.readCache()
	if err == nil {
		ld.log.Info("strokes.cache.loaded", "path", ld.paths.Cache, "entries", len(t))
		return t
	}
	if errors.Is(err, fs.ErrNotExist) {
		ld.log.Warn("strokes.cache.missing", "path", ld.paths.Cache)
	} else {
		ld.log.Warn("strokes.cache.unreadable", "path", ld.paths.Cache, "err", err)
	}

	t = ld.build()
	if len(t) == 0 {
		ld.log.Error("strokes.build.empty", "char_codes", ld.paths.CharCodes, "code_strokes", ld.paths.CodeStrokes)
		return t
	}
	if err := ld.writeCache(t); err != nil {
		ld.log.Error("strokes.cache.write_failed", "path", ld.paths.Cache, "err", err)
	}
	return t
}

// Rebuild ignores any existing cache, joins the reference tables and overwrites the cache.
func (ld *Loader) Rebuild() (domain.StrokeTable, error) {
	t := ld.build()
	if len(t) == 0 {
		return t, &domain.OpError{
			Op:   "strokes.rebuild",
			Kind: domain.KindResourceUnavailable,
			Path: ld.paths.CharCodes,
			Err:  domain.ErrResourceUnavailable,
		}
	}
	if err := ld.writeCache(t); err != nil {
		return t, err
	}
	ld.log.Info("strokes.cache.rebuilt", "path", ld.paths.Cache, "entries", len(t))
	return t, nil
}

func (ld *Loader) build() domain.StrokeTable {
	charCodes := map[rune]string{}
	if f, err := os.Open(ld.paths.CharCodes); err != nil {
		ld.log.Error("strokes.char_codes.unreadable", "path", ld.paths.CharCodes, "err", err)
	} else {
		charCodes, err = ParseCharCodes(f, ld.log)
		_ = f.Close()
		if err != nil {
			ld.log.Error("strokes.char_codes.read_failed", "path", ld.paths.CharCodes, "err", err)
		}
	}

	codeStrokes := map[string]int{}
	if f, err := os.Open(ld.paths.CodeStrokes); err != nil {
		ld.log.Error("strokes.code_strokes.unreadable", "path", ld.paths.CodeStrokes, "err", err)
	} else {
		codeStrokes, err = ParseCodeStrokes(f, ld.log)
		_ = f.Close()
		if err != nil {
			ld.log.Error("strokes.code_strokes.read_failed", "path", ld.paths.CodeStrokes, "err", err)
		}
	}

	t := Join(charCodes, codeStrokes)
	ld.log.Info("strokes.built", "chars", len(charCodes), "codes", len(codeStrokes), "entries", len(t))
	return t
}

func (ld *Loader) readCache() (domain.StrokeTable, error) {
	b, err := os.ReadFile(ld.paths.Cache)
	if err != nil {
		return nil, err
	}
	var raw map[string]int
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	t := make(domain.StrokeTable, len(raw))
	for k, v := range raw {
		r, size := utf8.DecodeRuneInString(k)
		if r == utf8.RuneError || size != len(k) {
			continue
		}
		t[r] = v
	}
	return t, nil
}

// writeCache persists the table keyed by character. Concurrent writers race;
// the content is deterministic so the last rename wins.
func (ld *Loader) writeCache(t domain.StrokeTable) error {
	b, err := encodeCache(t)
	if err != nil {
		return &domain.OpError{Op: "strokes.cache.marshal", Kind: domain.KindExecution, Path: ld.paths.Cache, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(ld.paths.Cache), 0o755); err != nil {
		return &domain.OpError{Op: "strokes.cache.mkdir", Kind: domain.KindExecution, Path: ld.paths.Cache, Err: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(ld.paths.Cache), filepath.Base(ld.paths.Cache)+".*.tmp")
	if err != nil {
		return &domain.OpError{Op: "strokes.cache.write", Kind: domain.KindExecution, Path: ld.paths.Cache, Err: err}
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return &domain.OpError{Op: "strokes.cache.write", Kind: domain.KindExecution, Path: tmp.Name(), Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return &domain.OpError{Op: "strokes.cache.write", Kind: domain.KindExecution, Path: tmp.Name(), Err: err}
	}
	if err := os.Rename(tmp.Name(), ld.paths.Cache); err != nil {
		_ = os.Remove(tmp.Name())
		return &domain.OpError{Op: "strokes.cache.rename", Kind: domain.KindExecution, Path: ld.paths.Cache, Err: err}
	}
	return nil
}

// encodeCache renders the table as a character-keyed JSON object. Keys are written
// verbatim, with no \uXXXX escapes for CJK or for <, > and &.
func encodeCache(t domain.StrokeTable) ([]byte, error) {
	raw := make(map[string]int, len(t))
	for r, n := range t {
		raw[string(r)] = n
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Table is a process-wide, lazily loaded stroke lookup. Reads after the first
// load are lock-free.
type Table struct {
	loader *Loader
	once   sync.Once
	table  domain.StrokeTable
}

var _ ports.StrokeLookup = (*Table)(nil)

func NewTable(loader *Loader) *Table {
	return &Table{loader: loader}
}

// Strokes loads the table on first use and looks up r.
func (t *Table) Strokes(r rune) domain.StrokeCount {
	t.once.Do(t.load)
	return t.table.Lookup(r)
}

// Len loads the table if needed and reports its entry count.
func (t *Table) Len() int {
	t.once.Do(t.load)
	return len(t.table)
}

func (t *Table) load() {
	t.table = t.loader.Load()
}

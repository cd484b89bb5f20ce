// Package readingstore persists readings as JSON artifacts under the workspace.
package readingstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/ports"
)

const (
	defaultReadingsDir = "readings"
	maskRune           = '*'
	indexFile          = "index.jsonl"
)

type JSONStore struct {
	rootDir        string
	readingsDir    string
	maskingEnabled bool
	writeIndex     bool
	now            func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a JSONL index: readings/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	dir := cfg.Paths.ReadingsDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultReadingsDir
	}

	s := &JSONStore{
		rootDir:        root,
		readingsDir:    dir,
		maskingEnabled: cfg.Masking.Enabled,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ReadingStore = (*JSONStore)(nil)

// SaveReading writes <UTC timestamp>_<slug>.json and returns its id (the file name
// without extension). Existing files are never overwritten.
func (s *JSONStore) SaveReading(r domain.Reading) (string, error) {
	dir := filepath.Join(s.rootDir, s.readingsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{Op: "readingstore.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
	}

	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	r.CreatedAt = r.CreatedAt.UTC()

	slug := "reading"
	if s.maskingEnabled {
		r = maskReading(r)
	} else if sl := slugify(r.Name); sl != "" {
		slug = sl
	}

	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", &domain.OpError{Op: "readingstore.marshal", Kind: domain.KindExecution, Err: err}
	}

	base := fmt.Sprintf("%s_%s", r.CreatedAt.Format("20060102T150405Z"), slug)
	id, path, err := s.create(dir, base, b)
	if err != nil {
		return "", err
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filepath.Base(path), r)
	}
	return id, nil
}

// create claims a free file name with O_EXCL, suffixing _2, _3... on collision,
// then fills it through a temp file and rename.
func (s *JSONStore) create(dir, base string, b []byte) (string, string, error) {
	for n := 1; n < 1000; n++ {
		id := base
		if n > 1 {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		path := filepath.Join(dir, id+".json")

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", "", &domain.OpError{Op: "readingstore.create", Kind: domain.KindExecution, Path: path, Err: err}
		}
		_ = f.Close()

		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, b, 0o600); err != nil {
			_ = os.Remove(path)
			return "", "", &domain.OpError{Op: "readingstore.write", Kind: domain.KindExecution, Path: tmp, Err: err}
		}
		if err := os.Rename(tmp, path); err != nil {
			_ = os.Remove(tmp)
			_ = os.Remove(path)
			return "", "", &domain.OpError{Op: "readingstore.rename", Kind: domain.KindExecution, Path: path, Err: err}
		}
		return id, path, nil
	}
	return "", "", &domain.OpError{Op: "readingstore.create", Kind: domain.KindExecution, Path: base, Err: fmt.Errorf("too many readings with the same timestamp")}
}

func (s *JSONStore) appendIndex(dir, id, filename string, r domain.Reading) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Name      string    `json:"name"`
		Pillars   string    `json:"pillars"`
		Place     string    `json:"place"`
		CreatedAt time.Time `json:"created_at"`
	}
	line, err := json.Marshal(idx{
		ID:        id,
		File:      filename,
		Name:      r.Name,
		Pillars:   r.Pillars.String(),
		Place:     r.Location.Name,
		CreatedAt: r.CreatedAt,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// maskReading returns a copy with the personal name reduced to its surname.
// Per-character strokes are dropped because they spell the name.
func maskReading(r domain.Reading) domain.Reading {
	out := r
	out.Name = MaskName(r.Name)
	out.FiveGrid.Name = MaskName(r.FiveGrid.Name)
	out.FiveGrid.Strokes = nil
	return out
}

// MaskName keeps the first character and replaces the rest: 王小明 -> 王**.
func MaskName(name string) string {
	rs := []rune(strings.TrimSpace(name))
	if len(rs) <= 1 {
		return string(rs)
	}
	return string(rs[0]) + strings.Repeat(string(maskRune), len(rs)-1)
}

// slugify produces a safe filename component; letters of any script are kept.
func slugify(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

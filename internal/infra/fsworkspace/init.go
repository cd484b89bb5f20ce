// Package fsworkspace scaffolds a mingpan workspace on disk.
package fsworkspace

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/ports"
)

const gitignoreHeader = "# mingpan"

var gitignoreEntries = []string{
	".mingpan/",
	"readings/",
	"data/char_stroke_cache.json",
}

var workspaceDirs = []string{
	"readings",
	"cases",
	"data",
	filepath.Join(".mingpan", "logs"),
}

// Initializer scaffolds a workspace from the embedded templates.
type Initializer struct {
	log *slog.Logger
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

type Option func(*Initializer)

func WithLogger(l *slog.Logger) Option {
	return func(i *Initializer) {
		if l != nil {
			i.log = l
		}
	}
}

func NewInitializer(opts ...Option) *Initializer {
	i := &Initializer{log: slog.New(slog.NewJSONHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Init creates the workspace directories, merges the .gitignore block and copies
// every template. Existing files are kept unless force is set.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	const op = "fsworkspace.init"
	root := filepath.Clean(spec.Root)

	for _, d := range workspaceDirs {
		dir := filepath.Join(root, d)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: dir, Err: err}
		}
	}

	if err := ensureGitignore(root); err != nil {
		return &domain.OpError{Op: "fsworkspace.gitignore", Kind: domain.KindExecution, Path: root, Err: err}
	}

	written, skipped := 0, 0
	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel := strings.TrimPrefix(p, "templates/")
		dst := filepath.Join(root, filepath.FromSlash(rel))
		if !force && fileExists(dst) {
			skipped++
			i.log.Debug("workspace.template.skipped", "path", rel)
			return nil
		}
		if err := copyTemplate(p, dst); err != nil {
			return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: dst, Err: err}
		}
		written++
		return nil
	})
	if err != nil {
		return err
	}

	i.log.Info("workspace.initialized", "root", root, "written", written, "skipped", skipped, "force", force)
	return nil
}

func copyTemplate(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	b, err := fs.ReadFile(templatesFS, path.Clean(src))
	if err != nil {
		return err
	}
	return os.WriteFile(dst, b, 0o644)
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func ensureGitignore(root string) error {
	p := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(p)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	merged, changed := mergeGitignore(string(b))
	if !changed {
		return nil
	}
	return os.WriteFile(p, []byte(merged), 0o644)
}

// mergeGitignore appends the mingpan block entries missing from existing.
func mergeGitignore(existing string) (string, bool) {
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			present[trimmed] = true
		}
	}

	var missing []string
	for _, e := range gitignoreEntries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return existing, false
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)
	if existing != "" {
		out.WriteString(existing)
		if !strings.HasSuffix(existing, "\n") {
			out.WriteByte('\n')
		}
		out.WriteByte('\n')
	}
	if !present[gitignoreHeader] {
		out.WriteString(gitignoreHeader + "\n")
	}
	for _, e := range missing {
		out.WriteString(e + "\n")
	}
	return out.String(), true
}

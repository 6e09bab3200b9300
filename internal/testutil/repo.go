// Package testutil provides reusable fixtures for repository tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cairnlog/cairn/internal/config"
	"github.com/cairnlog/cairn/internal/slugs"
)

// TestRepo is a builder for a temporary records repository.
type TestRepo struct {
	t        *testing.T
	extended bool
	dir      string
	files    map[string]string

	// Settings is populated by Build.
	Settings *config.Settings
}

// NewTestRepo creates a repository builder. Call Build to materialize it.
func NewTestRepo(t *testing.T) *TestRepo {
	t.Helper()
	return &TestRepo{
		t:     t,
		dir:   config.DefaultDir,
		files: make(map[string]string),
	}
}

// Extended switches the repository to the extended encoding.
func (r *TestRepo) Extended() *TestRepo {
	r.extended = true
	return r
}

// WithDir overrides the records directory relative to the root.
func (r *TestRepo) WithDir(dir string) *TestRepo {
	r.dir = dir
	return r
}

// WithFile adds a file to the records directory.
func (r *TestRepo) WithFile(name, content string) *TestRepo {
	r.files[name] = content
	return r
}

// WithLegacyRecord adds a minimal legacy record. Extra status lines (link
// sentences or prose) go after the status keyword.
func (r *TestRepo) WithLegacyRecord(number int, title, status string, statusLines ...string) *TestRepo {
	body := fmt.Sprintf("# %d. %s\n\nDate: 2024-01-15\n\n## Status\n\n%s\n", number, title, status)
	for _, line := range statusLines {
		body += "\n" + line + "\n"
	}
	body += "\n## Context\n\nContext prose.\n\n## Decision\n\nDecision prose.\n\n## Consequences\n\nConsequences prose.\n"
	return r.WithFile(recordName(number, title), body)
}

// Build creates the directory tree, writes the configuration marker, and
// resolves settings.
func (r *TestRepo) Build() *TestRepo {
	r.t.Helper()

	root := r.t.TempDir()
	settings, err := config.Init(root, r.dir, r.extended)
	if err != nil {
		r.t.Fatalf("init repository: %v", err)
	}

	for name, content := range r.files {
		path := filepath.Join(settings.Dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			r.t.Fatalf("create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			r.t.Fatalf("write %s: %v", name, err)
		}
	}

	r.Settings = settings
	return r
}

// ReadRecord reads a file from the records directory.
func (r *TestRepo) ReadRecord(name string) string {
	r.t.Helper()
	content, err := os.ReadFile(filepath.Join(r.Settings.Dir, name))
	if err != nil {
		r.t.Fatalf("read %s: %v", name, err)
	}
	return string(content)
}

// RecordExists reports whether a file exists in the records directory.
func (r *TestRepo) RecordExists(name string) bool {
	r.t.Helper()
	_, err := os.Stat(filepath.Join(r.Settings.Dir, name))
	return err == nil
}

func recordName(number int, title string) string {
	return fmt.Sprintf("%04d-%s.md", number, slugs.Slugify(title))
}

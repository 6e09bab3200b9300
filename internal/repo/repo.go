// Package repo loads and maintains the on-disk record corpus. A Repository
// is an in-memory index over one records directory: load once, query and
// mutate through it, and every write goes back to disk atomically in the
// configured encoding.
package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cairnlog/cairn/internal/config"
	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/parser"
)

// parseConcurrency bounds how many files are parsed at once during Load.
const parseConcurrency = 8

// Repository is the loaded index over a records directory.
type Repository struct {
	settings *config.Settings

	mu       sync.Mutex
	records  []*model.Record
	byNumber map[int]*model.Record
	reserved map[int]bool

	problems   []*parser.ParseError
	warnings   []parser.Warning
	duplicates map[int][]string
	strays     []string
}

// Load scans the records directory and parses every record file. Files are
// parsed concurrently; per-file failures are collected as problems and
// never abort the scan. Markdown files whose names do not follow the
// numbered convention are recorded as strays, not parsed.
func Load(ctx context.Context, settings *config.Settings) (*Repository, error) {
	entries, err := os.ReadDir(settings.Dir)
	if err != nil {
		return nil, fmt.Errorf("read records directory %s: %w", settings.Dir, err)
	}

	var paths []string
	r := &Repository{
		settings: settings,
		byNumber: make(map[int]*model.Record),
		reserved: make(map[int]bool),
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(settings.Dir, entry.Name())
		if !parser.ConformingFilename(entry.Name()) {
			r.strays = append(r.strays, path)
			continue
		}
		paths = append(paths, path)
	}

	type result struct {
		rec      *model.Record
		warnings []parser.Warning
		err      *parser.ParseError
	}
	results := make([]result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parseConcurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, warnings, err := parser.ParseFile(path)
			if err != nil {
				perr, ok := err.(*parser.ParseError)
				if !ok {
					perr = &parser.ParseError{Path: path, Reason: err.Error(), Err: err}
				}
				results[i] = result{err: perr}
				return nil
			}
			results[i] = result{rec: rec, warnings: warnings}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, res := range results {
		switch {
		case res.err != nil:
			r.problems = append(r.problems, res.err)
		case res.rec != nil:
			r.warnings = append(r.warnings, res.warnings...)
			r.add(res.rec)
		}
	}

	sort.Slice(r.records, func(i, j int) bool {
		if r.records[i].Number != r.records[j].Number {
			return r.records[i].Number < r.records[j].Number
		}
		return r.records[i].Path < r.records[j].Path
	})
	return r, nil
}

// add indexes a parsed record. The first record seen for a number owns it;
// later ones with the same number are kept in the list and reported as
// duplicates.
func (r *Repository) add(rec *model.Record) {
	r.records = append(r.records, rec)
	if existing, ok := r.byNumber[rec.Number]; ok {
		if r.duplicates == nil {
			r.duplicates = make(map[int][]string)
		}
		if len(r.duplicates[rec.Number]) == 0 {
			r.duplicates[rec.Number] = append(r.duplicates[rec.Number], existing.Path)
		}
		r.duplicates[rec.Number] = append(r.duplicates[rec.Number], rec.Path)
		return
	}
	r.byNumber[rec.Number] = rec
}

// Settings returns the configuration the repository was loaded with.
func (r *Repository) Settings() *config.Settings { return r.settings }

// Records returns all parsed records sorted by number. Duplicated numbers
// appear once per file.
func (r *Repository) Records() []*model.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Record, len(r.records))
	copy(out, r.records)
	return out
}

// Get returns the record owning a number, or nil.
func (r *Repository) Get(number int) *model.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byNumber[number]
}

// Problems returns the per-file parse failures collected during Load.
func (r *Repository) Problems() []*parser.ParseError { return r.problems }

// Warnings returns non-fatal conditions noticed during Load.
func (r *Repository) Warnings() []parser.Warning { return r.warnings }

// Duplicates returns numbers claimed by more than one file, with every
// claiming path, sorted by number.
func (r *Repository) Duplicates() map[int][]string { return r.duplicates }

// Strays returns markdown files in the records directory whose names do
// not follow the numbered convention.
func (r *Repository) Strays() []string { return r.strays }

// NextNumber returns the lowest number above every existing and reserved
// one. Gaps left by deleted records are never reused.
func (r *Repository) NextNumber() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextLocked()
}

func (r *Repository) nextLocked() int {
	max := 0
	for n := range r.byNumber {
		if n > max {
			max = n
		}
	}
	for n := range r.reserved {
		if n > max {
			max = n
		}
	}
	return max + 1
}

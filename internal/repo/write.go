package repo

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cairnlog/cairn/internal/atomicfile"
	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/parser"
)

// template holds the Nygard prompts a fresh record starts with.
//
//go:embed template.md
var template string

var templateSections = parser.ExtractSections(template)

// Create allocates the next number, builds a record from the template, and
// writes it to disk. The number is reserved before the write, so concurrent
// creates in one process never collide.
func (r *Repository) Create(title string) (*model.Record, error) {
	r.mu.Lock()
	n := r.nextLocked()
	r.reserved[n] = true
	r.mu.Unlock()

	rec := model.New(n, title)
	for _, s := range templateSections {
		rec.SetSection(s.Name, s.Body)
	}
	rec.Encoding = r.settings.Encoding

	if err := r.Save(rec); err != nil {
		r.mu.Lock()
		delete(r.reserved, n)
		r.mu.Unlock()
		return nil, err
	}
	return rec, nil
}

// Save serializes a record in the configured encoding and writes it
// atomically. New records are indexed; existing ones replaced. When a
// record already lives at a different path, the file is written there to
// keep the original name.
func (r *Repository) Save(rec *model.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	lookup := parser.LookupFromRecords(r.records)
	r.mu.Unlock()

	data, err := parser.Serialize(rec, r.settings.Encoding, lookup)
	if err != nil {
		return err
	}

	path := rec.Path
	if path == "" {
		path = filepath.Join(r.settings.Dir, rec.Filename())
	}
	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	rec.Path = path

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reserved, rec.Number)
	if existing, ok := r.byNumber[rec.Number]; ok {
		if existing != rec {
			for i, candidate := range r.records {
				if candidate == existing {
					r.records[i] = rec
					break
				}
			}
			r.byNumber[rec.Number] = rec
		}
		return nil
	}
	r.byNumber[rec.Number] = rec
	r.records = append(r.records, rec)
	for i := len(r.records) - 1; i > 0 && r.records[i-1].Number > rec.Number; i-- {
		r.records[i], r.records[i-1] = r.records[i-1], r.records[i]
	}
	return nil
}

// Remove deletes a record's file and drops it from the index. Used by
// renumbering to retire old paths after their replacements are written.
func (r *Repository) Remove(rec *model.Record) error {
	if rec.Path != "" {
		if err := os.Remove(rec.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", rec.Path, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byNumber[rec.Number] == rec {
		delete(r.byNumber, rec.Number)
	}
	for i, candidate := range r.records {
		if candidate == rec {
			r.records = append(r.records[:i], r.records[i+1:]...)
			break
		}
	}
	return nil
}

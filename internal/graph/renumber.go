package graph

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cairnlog/cairn/internal/atomicfile"
	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/parser"
)

// Mapping is one old→new number assignment in a renumbering batch.
type Mapping struct {
	Old int `json:"old"`
	New int `json:"new"`
}

// Rewrite records a link target substitution inside the incoming set.
type Rewrite struct {
	// Record is the link's owning record, identified by its old number.
	Record    int `json:"record"`
	OldTarget int `json:"old_target"`
	NewTarget int `json:"new_target"`
}

// Warning flags a link whose target lies outside the incoming set. The
// target number is left unchanged; it may or may not exist in the
// destination repository.
type Warning struct {
	Record int `json:"record"`
	Target int `json:"target"`
}

func (w Warning) String() string {
	return fmt.Sprintf("record %d links to %d, which is outside the incoming set; target left unchanged", w.Record, w.Target)
}

// StagedFile is one fully-computed write: the renumbered record and the
// exact bytes destined for its new filename.
type StagedFile struct {
	Record *model.Record
	Name   string
	Data   []byte
}

// Plan is the complete, side-effect-free computation of a renumbering
// batch. Dry-run and commit share one Plan; commit only adds the writes.
type Plan struct {
	Mappings   []Mapping
	Rewrites   []Rewrite
	Warnings   []Warning
	Collisions []int
	Staged     []StagedFile

	overwrite bool
}

// NewNumber returns the new number assigned to an old one.
func (p *Plan) NewNumber(old int) (int, bool) {
	for _, m := range p.Mappings {
		if m.Old == old {
			return m.New, true
		}
	}
	return 0, false
}

// CollisionError aborts a batch whose destination numbers are already
// occupied and overwriting was not allowed. It is raised before any write.
type CollisionError struct {
	Numbers []int
}

func (e *CollisionError) Error() string {
	parts := make([]string, len(e.Numbers))
	for i, n := range e.Numbers {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("renumber would collide with existing records: %s (re-run with overwrite to replace them)", strings.Join(parts, ", "))
}

// WriteError reports a commit that stopped partway: every already-written
// file and the one that failed.
type WriteError struct {
	Written []string
	Path    string
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("renumber commit stopped at %s after %d of %d writes: %v", e.Path, len(e.Written), len(e.Written)+1, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// PlanRenumber computes the renumbering of an incoming record set into
// this repository, assigning new numbers from start in the incoming
// order. Links between members of the set are rewritten to the new
// numbers; links leaving the set keep their targets and produce warnings.
// Nothing is written; the incoming records are not mutated.
func (e *Engine) PlanRenumber(incoming []*model.Record, start int, overwrite bool) (*Plan, error) {
	if start <= 0 {
		return nil, &model.ValidationError{Field: "number", Reason: fmt.Sprintf("renumber start must be positive, got %d", start)}
	}

	oldToNew := make(map[int]int, len(incoming))
	plan := &Plan{overwrite: overwrite}
	next := start
	for _, rec := range incoming {
		if _, ok := oldToNew[rec.Number]; ok {
			return nil, &model.ValidationError{Field: "number", Reason: fmt.Sprintf("incoming set contains %d twice", rec.Number)}
		}
		oldToNew[rec.Number] = next
		plan.Mappings = append(plan.Mappings, Mapping{Old: rec.Number, New: next})
		next++
	}

	staged := make([]*model.Record, 0, len(incoming))
	for _, rec := range incoming {
		c := rec.Clone()
		c.Number = oldToNew[rec.Number]
		c.Path = ""
		for i, l := range c.Links {
			if newTarget, ok := oldToNew[l.Target]; ok {
				if newTarget != l.Target {
					plan.Rewrites = append(plan.Rewrites, Rewrite{Record: rec.Number, OldTarget: l.Target, NewTarget: newTarget})
				}
				c.Links[i].Target = newTarget
				continue
			}
			plan.Warnings = append(plan.Warnings, Warning{Record: rec.Number, Target: l.Target})
		}
		if e.repo.Get(c.Number) != nil {
			plan.Collisions = append(plan.Collisions, c.Number)
		}
		staged = append(staged, c)
	}
	sort.Ints(plan.Collisions)

	lookup := e.stagedLookup(staged)
	for _, rec := range staged {
		data, err := parser.Serialize(rec, e.repo.Settings().Encoding, lookup)
		if err != nil {
			return nil, err
		}
		plan.Staged = append(plan.Staged, StagedFile{Record: rec, Name: rec.Filename(), Data: data})
	}
	return plan, nil
}

// stagedLookup resolves link targets first against the renumbered set,
// then against the destination repository.
func (e *Engine) stagedLookup(staged []*model.Record) parser.TargetLookup {
	existing := parser.LookupFromRecords(e.repo.Records())
	return func(n int) (string, string, bool) {
		for _, rec := range staged {
			if rec.Number == n {
				return rec.Title, rec.Filename(), true
			}
		}
		return existing(n)
	}
}

// Apply commits a plan. With unresolved collisions and no overwrite
// permission the whole batch is rejected before any write. A write failure
// stops the commit and reports exactly which files made it to disk.
func (e *Engine) Apply(plan *Plan) ([]string, error) {
	if len(plan.Collisions) > 0 && !plan.overwrite {
		return nil, &CollisionError{Numbers: plan.Collisions}
	}

	var written []string
	for _, sf := range plan.Staged {
		if existing := e.repo.Get(sf.Record.Number); existing != nil && filepath.Base(existing.Path) != sf.Name {
			if err := e.repo.Remove(existing); err != nil {
				return written, &WriteError{Written: written, Path: existing.Path, Err: err}
			}
		}
		path := filepath.Join(e.repo.Settings().Dir, sf.Name)
		if err := atomicfile.WriteFile(path, sf.Data, 0o644); err != nil {
			return written, &WriteError{Written: written, Path: path, Err: err}
		}
		written = append(written, path)
	}
	return written, nil
}

// Renumber is the single entry point for both modes: it always computes
// the plan, and commits it only when commit is set.
func (e *Engine) Renumber(incoming []*model.Record, start int, overwrite, commit bool) (*Plan, []string, error) {
	plan, err := e.PlanRenumber(incoming, start, overwrite)
	if err != nil {
		return nil, nil, err
	}
	if !commit {
		if len(plan.Collisions) > 0 && !overwrite {
			return plan, nil, &CollisionError{Numbers: plan.Collisions}
		}
		return plan, nil, nil
	}
	written, err := e.Apply(plan)
	return plan, written, err
}

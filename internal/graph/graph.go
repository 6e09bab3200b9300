// Package graph mutates the cross-reference structure of a loaded
// repository. Links are always created in complementary pairs, and status
// transitions keep the supersede relationship bidirectional, so the link
// graph stays symmetric under every mutation this package performs.
package graph

import (
	"fmt"

	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/repo"
)

// Engine applies link and status mutations against one repository.
type Engine struct {
	repo *repo.Repository
}

// New creates an Engine over a loaded repository.
func New(r *repo.Repository) *Engine {
	return &Engine{repo: r}
}

// NotFoundError reports a mutation that referenced a missing record number.
type NotFoundError struct {
	Number int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no record numbered %d", e.Number)
}

// CreateLink adds a link pair: the forward link on source and the reverse
// on target. An empty reverse kind is derived from the forward kind.
// Both records are persisted; a link that already exists on either side is
// not duplicated.
func (e *Engine) CreateLink(source int, kind model.LinkKind, target int, reverse model.LinkKind) error {
	if source == target {
		return &model.ValidationError{Field: "links", Reason: fmt.Sprintf("record %d must not link to itself", source)}
	}

	src := e.repo.Get(source)
	if src == nil {
		return &NotFoundError{Number: source}
	}
	dst := e.repo.Get(target)
	if dst == nil {
		return &NotFoundError{Number: target}
	}

	if reverse == "" {
		reverse = kind.Reverse()
	}

	if !src.HasLink(kind, target) {
		src.AddLink(model.Link{Kind: kind, Target: target})
	}
	if !dst.HasLink(reverse, source) {
		dst.AddLink(model.Link{Kind: reverse, Target: source})
	}

	if err := e.repo.Save(src); err != nil {
		return err
	}
	return e.repo.Save(dst)
}

// Transition changes a record's status. Moving to superseded requires the
// number of the superseding record and creates the supersede link pair
// alongside the status update; without it the transition is rejected and
// nothing changes.
func (e *Engine) Transition(number int, status model.Status, supersededBy int) error {
	rec := e.repo.Get(number)
	if rec == nil {
		return &NotFoundError{Number: number}
	}

	if status.Equal(model.StatusSuperseded) {
		if supersededBy == 0 {
			return &model.ValidationError{Field: "status", Reason: "superseded requires the superseding record"}
		}
		if e.repo.Get(supersededBy) == nil {
			return &NotFoundError{Number: supersededBy}
		}
	} else if supersededBy != 0 {
		return &model.ValidationError{Field: "status", Reason: fmt.Sprintf("a superseding record only applies to superseded, not %q", status)}
	}

	rec.Status = status
	if err := e.repo.Save(rec); err != nil {
		return err
	}

	if supersededBy != 0 {
		return e.CreateLink(number, model.KindSupersededBy, supersededBy, model.KindSupersedes)
	}
	return nil
}

// Supersede creates a new-over-old relationship: the old record is marked
// superseded and linked both ways to its replacement.
func (e *Engine) Supersede(old, replacement int) error {
	return e.Transition(old, model.StatusSuperseded, replacement)
}

// Package resolver handles record reference resolution. A reference is a
// bare number ("7"), an exact title, a filename, or an approximate title
// fragment; anything short of an exact hit falls through to fuzzy matching.
package resolver

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/slugs"
)

// Resolver resolves references against a fixed set of records.
type Resolver struct {
	records []*model.Record
}

// New creates a Resolver over the given records.
func New(records []*model.Record) *Resolver {
	return &Resolver{records: records}
}

// Result represents the outcome of resolving one reference.
type Result struct {
	// Record is the resolved record (nil if unresolved).
	Record *model.Record

	// Ambiguous is true if the reference matches multiple records equally.
	Ambiguous bool

	// Matches contains all candidates for ambiguous references.
	Matches []*model.Record

	// Error message if resolution failed.
	Error string
}

// maxAmbiguousMatches caps the candidates reported for an ambiguous
// reference.
const maxAmbiguousMatches = 5

// Resolve resolves a single reference. Numbers resolve exactly; everything
// else tries the exact title, then the filename slug, then a fuzzy match
// over titles. A fuzzy candidate wins only when its score more than
// doubles the runner-up's; anything closer is ambiguous rather than
// silently picking one.
func (r *Resolver) Resolve(ref string) Result {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Result{Error: "empty reference"}
	}

	if n, err := strconv.Atoi(ref); err == nil {
		for _, rec := range r.records {
			if rec.Number == n {
				return Result{Record: rec}
			}
		}
		return Result{Error: "no record numbered " + ref}
	}

	for _, rec := range r.records {
		if strings.EqualFold(rec.Title, ref) {
			return Result{Record: rec}
		}
	}

	slug := slugs.Slugify(strings.TrimSuffix(ref, ".md"))
	for _, rec := range r.records {
		name := rec.Filename()
		if name == ref || strings.TrimSuffix(name, ".md") == slug || slugs.Slugify(rec.Title) == slug {
			return Result{Record: rec}
		}
	}

	ranked := r.Search(ref)
	switch len(ranked) {
	case 0:
		return Result{Error: "no record matches " + strconv.Quote(ref)}
	case 1:
		return Result{Record: ranked[0].Record}
	}
	if clearWinner(ranked[0].Score, ranked[1].Score) {
		return Result{Record: ranked[0].Record}
	}

	var matches []*model.Record
	for _, m := range ranked {
		if len(matches) == maxAmbiguousMatches {
			break
		}
		matches = append(matches, m.Record)
	}
	return Result{
		Ambiguous: true,
		Matches:   matches,
		Error:     "ambiguous reference " + strconv.Quote(ref),
	}
}

// clearWinner reports whether the top fuzzy score beats the runner-up by
// enough of a margin to resolve without asking.
func clearWinner(top, second int) bool {
	return top > second*2
}

// Match is one fuzzy search hit.
type Match struct {
	Record *model.Record
	Score  int
}

// Search ranks records against a free-text term by fuzzy-matching their
// titles. Results are ordered by score, then by number so equal scores
// are stable.
func (r *Resolver) Search(term string) []Match {
	titles := make([]string, len(r.records))
	for i, rec := range r.records {
		titles[i] = rec.Title
	}

	hits := fuzzy.Find(term, titles)
	matches := make([]Match, 0, len(hits))
	for _, hit := range hits {
		matches = append(matches, Match{Record: r.records[hit.Index], Score: hit.Score})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Record.Number < matches[j].Record.Number
	})
	return matches
}

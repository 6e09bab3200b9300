// Package doctor audits a loaded repository for structural problems. The
// scan is read-only: it reports findings and never repairs anything.
package doctor

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/repo"
)

// Level grades one finding.
type Level int

const (
	// OK marks an informational finding, such as a legal numbering gap.
	OK Level = iota

	// Warn marks a problem worth fixing that does not block anything.
	Warn

	// Error marks a problem that breaks repository invariants.
	Error
)

func (l Level) String() string {
	switch l {
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "OK"
	}
}

// MarshalText renders the level into JSON reports.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Finding is one observation about the repository.
type Finding struct {
	Level   Level  `json:"level"`
	Check   string `json:"check"`
	Message string `json:"message"`
}

// Check names, one per audit.
const (
	CheckFilenames  = "filenames"
	CheckDuplicates = "duplicates"
	CheckGaps       = "gaps"
	CheckLinks      = "links"
	CheckSupersede  = "supersede"
	CheckParse      = "parse"
)

// Report aggregates every finding from one scan.
type Report struct {
	Findings []Finding `json:"findings"`
}

// HasBlocking reports whether any finding is an error. Warnings never
// block.
func (r *Report) HasBlocking() bool {
	for _, f := range r.Findings {
		if f.Level == Error {
			return true
		}
	}
	return false
}

// Counts returns how many findings sit at each level.
func (r *Report) Counts() (ok, warn, errs int) {
	for _, f := range r.Findings {
		switch f.Level {
		case Error:
			errs++
		case Warn:
			warn++
		default:
			ok++
		}
	}
	return
}

// Run executes every check against a loaded repository. Checks are
// independent; the order of findings follows the order of checks but no
// check depends on another's outcome.
func Run(r *repo.Repository) *Report {
	report := &Report{}
	checkFilenames(r, report)
	checkDuplicates(r, report)
	checkGaps(r, report)
	checkLinks(r, report)
	checkSupersede(r, report)
	checkParseFailures(r, report)
	return report
}

// checkFilenames verifies that each record's filename carries the number
// the content declares, and flags markdown files that do not follow the
// naming convention at all.
func checkFilenames(r *repo.Repository, report *Report) {
	for _, w := range r.Warnings() {
		report.Findings = append(report.Findings, Finding{
			Level:   Warn,
			Check:   CheckFilenames,
			Message: w.String(),
		})
	}
	for _, path := range r.Strays() {
		report.Findings = append(report.Findings, Finding{
			Level:   Warn,
			Check:   CheckFilenames,
			Message: fmt.Sprintf("%s does not follow the NNNN-title.md naming convention", filepath.Base(path)),
		})
	}
}

func checkDuplicates(r *repo.Repository, report *Report) {
	numbers := make([]int, 0, len(r.Duplicates()))
	for n := range r.Duplicates() {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	for _, n := range numbers {
		paths := r.Duplicates()[n]
		names := make([]string, len(paths))
		for i, p := range paths {
			names[i] = filepath.Base(p)
		}
		report.Findings = append(report.Findings, Finding{
			Level:   Error,
			Check:   CheckDuplicates,
			Message: fmt.Sprintf("number %d is claimed by %d files: %v", n, len(names), names),
		})
	}
}

// checkGaps reports unused numbers below the maximum. Gaps are legal;
// the finding is informational.
func checkGaps(r *repo.Repository, report *Report) {
	present := make(map[int]bool)
	max := 0
	for _, rec := range r.Records() {
		present[rec.Number] = true
		if rec.Number > max {
			max = rec.Number
		}
	}
	for n := 1; n < max; n++ {
		if !present[n] {
			report.Findings = append(report.Findings, Finding{
				Level:   OK,
				Check:   CheckGaps,
				Message: fmt.Sprintf("number %d is unused", n),
			})
		}
	}
}

func checkLinks(r *repo.Repository, report *Report) {
	for _, rec := range r.Records() {
		for _, l := range rec.Links {
			if r.Get(l.Target) == nil {
				report.Findings = append(report.Findings, Finding{
					Level:   Error,
					Check:   CheckLinks,
					Message: fmt.Sprintf("record %d links to %d (%s), which does not exist", rec.Number, l.Target, l.Kind),
				})
			}
		}
	}
}

// checkSupersede verifies that superseded records carry a superseded-by
// link and that the superseding side links back.
func checkSupersede(r *repo.Repository, report *Report) {
	for _, rec := range r.Records() {
		if !rec.Status.Equal(model.StatusSuperseded) {
			continue
		}

		var targets []int
		for _, l := range rec.Links {
			if l.Kind.Equal(model.KindSupersededBy) {
				targets = append(targets, l.Target)
			}
		}
		if len(targets) == 0 {
			report.Findings = append(report.Findings, Finding{
				Level:   Warn,
				Check:   CheckSupersede,
				Message: fmt.Sprintf("record %d is superseded but has no superseded-by link", rec.Number),
			})
			continue
		}
		for _, target := range targets {
			other := r.Get(target)
			if other == nil {
				continue // the links check already reports the dangling target
			}
			if !other.HasLink(model.KindSupersedes, rec.Number) {
				report.Findings = append(report.Findings, Finding{
					Level:   Warn,
					Check:   CheckSupersede,
					Message: fmt.Sprintf("record %d supersedes %d but carries no supersedes link back", target, rec.Number),
				})
			}
		}
	}
}

func checkParseFailures(r *repo.Repository, report *Report) {
	for _, p := range r.Problems() {
		report.Findings = append(report.Findings, Finding{
			Level:   Error,
			Check:   CheckParse,
			Message: p.Error(),
		})
	}
}

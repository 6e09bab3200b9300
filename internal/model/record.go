// Package model defines the in-memory representation of a decision record.
// Records are markdown files in one of two encodings; the model itself is
// encoding-agnostic and carries the source encoding only as provenance.
package model

import (
	"fmt"
	"time"

	"github.com/cairnlog/cairn/internal/slugs"
)

// DateLayout is the calendar date format used everywhere a record date is
// read or written.
const DateLayout = "2006-01-02"

// Encoding identifies which on-disk representation a record was parsed from.
type Encoding int

const (
	// EncodingLegacy is the adr-tools compatible form: plain markdown with
	// the status and links expressed as prose inside a "## Status" section.
	EncodingLegacy Encoding = iota

	// EncodingExtended is the front-matter form: a YAML header block holding
	// number, title, status, date, links and metadata, followed by prose.
	EncodingExtended
)

func (e Encoding) String() string {
	switch e {
	case EncodingExtended:
		return "extended"
	default:
		return "legacy"
	}
}

// Section is one named body section (context, decision, consequences, ...).
// Sections are kept as an ordered slice because their order in the source
// document is meaningful to readers.
type Section struct {
	Name string
	Body string
}

// Record is a single decision record.
type Record struct {
	// Number is the record's sequence number, unique within a repository.
	Number int

	// Title is the human-readable decision title, without the number prefix.
	Title string

	// Status is the current decision status.
	Status Status

	// StatusNote is supplementary prose that followed the status keyword in
	// the legacy encoding's status section. Often empty.
	StatusNote string

	// Date is the calendar date of the decision.
	Date time.Time

	// Sections are the prose body sections in document order.
	Sections []Section

	// Links are the outgoing links to other records, in document order.
	Links []Link

	// Deciders, Consulted, Informed and Tags are optional metadata carried
	// only by the extended encoding. A nil slice means "not set".
	Deciders  []string
	Consulted []string
	Informed  []string
	Tags      []string

	// Encoding records which on-disk form this record was parsed from.
	// It is provenance, not a user-settable field.
	Encoding Encoding

	// Path is the file path the record was loaded from, if any.
	Path string
}

// New returns a record with the given number and title, dated today and
// with status proposed.
func New(number int, title string) *Record {
	return &Record{
		Number: number,
		Title:  title,
		Status: StatusProposed,
		Date:   time.Now(),
	}
}

// Filename returns the canonical filename for the record:
// a zero-padded number, a hyphen, the slugified title, ".md".
func (r *Record) Filename() string {
	return fmt.Sprintf("%04d-%s.md", r.Number, slugs.Slugify(r.Title))
}

// FullTitle returns the numbered title as it appears in a legacy heading,
// e.g. "7. Authentication Mechanism".
func (r *Record) FullTitle() string {
	return fmt.Sprintf("%d. %s", r.Number, r.Title)
}

// Section returns the body of the named section and whether it exists.
// Lookup is case-insensitive; the stored name is preserved.
func (r *Record) Section(name string) (string, bool) {
	for _, s := range r.Sections {
		if equalFold(s.Name, name) {
			return s.Body, true
		}
	}
	return "", false
}

// SetSection replaces the named section's body, or appends a new section
// when none exists yet.
func (r *Record) SetSection(name, body string) {
	for i, s := range r.Sections {
		if equalFold(s.Name, name) {
			r.Sections[i].Body = body
			return
		}
	}
	r.Sections = append(r.Sections, Section{Name: name, Body: body})
}

// AddLink appends a link to the record.
func (r *Record) AddLink(l Link) {
	r.Links = append(r.Links, l)
}

// HasLink reports whether the record already carries a link with the same
// kind and target.
func (r *Record) HasLink(kind LinkKind, target int) bool {
	for _, l := range r.Links {
		if l.Target == target && l.Kind.Equal(kind) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the record. Mutating the copy's sections,
// links, or metadata never touches the original.
func (r *Record) Clone() *Record {
	out := *r
	out.Sections = append([]Section(nil), r.Sections...)
	out.Links = append([]Link(nil), r.Links...)
	out.Deciders = append([]string(nil), r.Deciders...)
	out.Consulted = append([]string(nil), r.Consulted...)
	out.Informed = append([]string(nil), r.Informed...)
	out.Tags = append([]string(nil), r.Tags...)
	return &out
}

// Validate checks the structural invariants of a record: a positive number,
// a non-empty title, and no link targeting the record itself.
func (r *Record) Validate() error {
	if r.Number <= 0 {
		return &ValidationError{Field: "number", Reason: fmt.Sprintf("must be positive, got %d", r.Number)}
	}
	if r.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	for _, l := range r.Links {
		if l.Target == r.Number {
			return &ValidationError{Field: "links", Reason: fmt.Sprintf("record %d must not link to itself", r.Number)}
		}
	}
	return nil
}

// ValidationError describes a rejected record mutation or creation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record: %s %s", e.Field, e.Reason)
}

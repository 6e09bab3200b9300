// Package interchange converts records to and from the JSON interchange
// document used for bulk import and export. Reading auto-detects three
// shapes: a bulk document, a single-record wrapper, and a bare record
// object.
package interchange

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cairnlog/cairn/internal/buildinfo"
	"github.com/cairnlog/cairn/internal/model"
)

const (
	// Version is the interchange schema version this codec produces.
	Version = "1.0.0"

	// SchemaURL identifies the published schema for bulk documents.
	SchemaURL = "https://raw.githubusercontent.com/cairnlog/cairn/main/schema/json-adr/v1.json"
)

// Document is the bulk interchange shape: schema metadata plus an ordered
// list of records.
type Document struct {
	Schema      string          `json:"$schema,omitempty"`
	Version     string          `json:"version"`
	GeneratedAt string          `json:"generated_at,omitempty"`
	Tool        *Tool           `json:"tool,omitempty"`
	Repository  *RepositoryInfo `json:"repository,omitempty"`
	Records     []Record        `json:"records"`
}

// Single wraps one record with the schema metadata.
type Single struct {
	Schema  string `json:"$schema,omitempty"`
	Version string `json:"version"`
	Record  Record `json:"record"`
}

// Tool identifies the program that generated a document.
type Tool struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// RepositoryInfo carries optional source-repository metadata.
type RepositoryInfo struct {
	Name      string `json:"name,omitempty"`
	Directory string `json:"directory"`
}

// Record is one decision record in interchange form.
type Record struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Date      string    `json:"date,omitempty"`
	Deciders  []string  `json:"deciders,omitempty"`
	Consulted []string  `json:"consulted,omitempty"`
	Informed  []string  `json:"informed,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Sections  []Section `json:"sections,omitempty"`
	Links     []Link    `json:"links,omitempty"`

	// Path is an optional source-location reference for federation
	// scenarios; it is informational and never used to write files.
	Path string `json:"path,omitempty"`
}

// Section preserves the order of prose sections, which a plain map could
// not.
type Section struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// Link is a typed reference to another record.
type Link struct {
	Type        string `json:"type"`
	Target      int    `json:"target"`
	Description string `json:"description,omitempty"`
}

// Encode builds a bulk document from records, stamped with generation
// metadata.
func Encode(records []*model.Record, repository *RepositoryInfo) *Document {
	doc := &Document{
		Schema:      SchemaURL,
		Version:     Version,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Tool: &Tool{
			Name:    buildinfo.ToolName,
			Version: buildinfo.DisplayVersion(),
		},
		Repository: repository,
		Records:    make([]Record, 0, len(records)),
	}
	for _, rec := range records {
		doc.Records = append(doc.Records, fromModel(rec))
	}
	return doc
}

// EncodeRecord converts one record to its interchange form.
func EncodeRecord(rec *model.Record) Record {
	return fromModel(rec)
}

// Marshal renders a document as indented JSON with a trailing newline.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode parses interchange JSON in any of the three accepted shapes and
// returns the contained records in document order.
func Decode(data []byte) ([]*model.Record, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("interchange: not a JSON object: %w", err)
	}

	switch {
	case probe["records"] != nil:
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("interchange: bulk document: %w", err)
		}
		return toModels(doc.Records)
	case probe["record"] != nil:
		var single Single
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("interchange: single wrapper: %w", err)
		}
		return toModels([]Record{single.Record})
	case probe["number"] != nil && probe["title"] != nil:
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("interchange: bare record: %w", err)
		}
		return toModels([]Record{rec})
	default:
		return nil, fmt.Errorf("interchange: unrecognized document shape")
	}
}

func fromModel(rec *model.Record) Record {
	out := Record{
		Number:    rec.Number,
		Title:     rec.Title,
		Status:    string(rec.Status),
		Deciders:  rec.Deciders,
		Consulted: rec.Consulted,
		Informed:  rec.Informed,
		Tags:      rec.Tags,
	}
	if !rec.Date.IsZero() {
		out.Date = rec.Date.Format(model.DateLayout)
	}
	for _, s := range rec.Sections {
		out.Sections = append(out.Sections, Section{Name: s.Name, Body: s.Body})
	}
	for _, l := range rec.Links {
		out.Links = append(out.Links, Link{Type: l.Kind.Slug(), Target: l.Target, Description: l.Description})
	}
	if rec.Path != "" {
		out.Path = filepath.Base(rec.Path)
	}
	return out
}

func toModels(records []Record) ([]*model.Record, error) {
	out := make([]*model.Record, 0, len(records))
	for i, jr := range records {
		rec, err := toModel(jr)
		if err != nil {
			return nil, fmt.Errorf("interchange: record %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func toModel(jr Record) (*model.Record, error) {
	rec := &model.Record{
		Number:    jr.Number,
		Title:     jr.Title,
		Status:    model.ParseStatus(jr.Status),
		Deciders:  jr.Deciders,
		Consulted: jr.Consulted,
		Informed:  jr.Informed,
		Tags:      jr.Tags,
	}
	if jr.Status == "" {
		rec.Status = model.StatusProposed
	}
	if jr.Date != "" {
		date, err := time.Parse(model.DateLayout, jr.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", jr.Date)
		}
		rec.Date = date
	}
	for _, s := range jr.Sections {
		rec.Sections = append(rec.Sections, model.Section{Name: s.Name, Body: s.Body})
	}
	for _, l := range jr.Links {
		rec.Links = append(rec.Links, model.Link{
			Kind:        model.ParseLinkKind(l.Type),
			Target:      l.Target,
			Description: l.Description,
		})
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

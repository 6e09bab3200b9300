package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cairnlog/cairn/internal/model"
)

// TargetLookup resolves a link target number to its title and filename so
// legacy link sentences can name the target. When nil, or when the target
// is unknown, placeholder text is written the way adr-tools does.
type TargetLookup func(number int) (title, filename string, ok bool)

// Serialize renders a record in the given encoding. Parsing the output in
// the same encoding yields a semantically identical record.
func Serialize(rec *model.Record, enc model.Encoding, lookup TargetLookup) ([]byte, error) {
	switch enc {
	case model.EncodingExtended:
		return serializeExtended(rec)
	default:
		return serializeLegacy(rec, lookup), nil
	}
}

// serializeExtended writes the front-matter encoding: the header block
// carries everything machine-readable, the body only prose sections.
func serializeExtended(rec *model.Record) ([]byte, error) {
	fm := frontmatter{
		Number:    rec.Number,
		Title:     rec.Title,
		Status:    statusForStorage(rec.Status),
		Date:      rec.Date.Format(model.DateLayout),
		Deciders:  rec.Deciders,
		Consulted: rec.Consulted,
		Informed:  rec.Informed,
		Tags:      rec.Tags,
	}
	for _, l := range rec.Links {
		fm.Links = append(fm.Links, frontmatterLink{
			Target:      l.Target,
			Kind:        l.Kind.Slug(),
			Description: l.Description,
		})
	}

	header, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, fmt.Errorf("marshal front-matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n")
	for _, s := range rec.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", s.Name, s.Body)
	}
	return []byte(b.String()), nil
}

// serializeLegacy writes the adr-tools compatible encoding.
func serializeLegacy(rec *model.Record, lookup TargetLookup) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", rec.FullTitle())
	if !rec.Date.IsZero() {
		fmt.Fprintf(&b, "\nDate: %s\n", rec.Date.Format(model.DateLayout))
	}

	b.WriteString("\n## Status\n\n")
	b.WriteString(rec.Status.Display())
	b.WriteString("\n")
	if rec.StatusNote != "" {
		b.WriteString("\n" + rec.StatusNote + "\n")
	}
	for _, l := range rec.Links {
		title, filename := "...", fmt.Sprintf("%04d-....md", l.Target)
		if lookup != nil {
			if t, f, ok := lookup(l.Target); ok {
				title, filename = t, f
			}
		}
		fmt.Fprintf(&b, "\n%s [%d. %s](%s)\n", l.Kind, l.Target, title, filename)
	}

	for _, s := range rec.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", s.Name, s.Body)
	}
	return []byte(b.String())
}

// statusForStorage lowercases well-known statuses for the machine-readable
// header; custom statuses are stored as written.
func statusForStorage(s model.Status) string {
	if s.Known() {
		return strings.ToLower(string(s))
	}
	return string(s)
}

// LookupFromRecords builds a TargetLookup over a set of records, typically
// a loaded index.
func LookupFromRecords(records []*model.Record) TargetLookup {
	byNumber := make(map[int]*model.Record, len(records))
	for _, r := range records {
		byNumber[r.Number] = r
	}
	return func(number int) (string, string, bool) {
		r, ok := byNumber[number]
		if !ok {
			return "", "", false
		}
		return r.Title, r.Filename(), true
	}
}

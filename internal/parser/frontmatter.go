package parser

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cairnlog/cairn/internal/model"
)

// frontmatter is the YAML header block of the extended encoding. Field
// order here is the order the serializer writes.
type frontmatter struct {
	Number    int               `yaml:"number"`
	Title     string            `yaml:"title"`
	Status    string            `yaml:"status"`
	Date      string            `yaml:"date"`
	Links     []frontmatterLink `yaml:"links,omitempty"`
	Deciders  []string          `yaml:"deciders,omitempty"`
	Consulted []string          `yaml:"consulted,omitempty"`
	Informed  []string          `yaml:"informed,omitempty"`
	Tags      []string          `yaml:"tags,omitempty"`

	// MADR spells the deciders list "decision-makers"; accepted on read,
	// never written.
	DecisionMakers []string `yaml:"decision-makers,omitempty"`
}

type frontmatterLink struct {
	Target      int    `yaml:"target"`
	Kind        string `yaml:"kind"`
	Description string `yaml:"description,omitempty"`
}

// splitFrontmatter separates the YAML header from the body. The opening
// delimiter has already been detected.
func splitFrontmatter(content string) (header, body string, err error) {
	lines := strings.Split(content, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), nil
		}
	}
	return "", "", &ParseError{Reason: "front-matter block is never closed"}
}

// parseExtended parses the front-matter encoding.
func parseExtended(content string) (*model.Record, error) {
	header, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return nil, &ParseError{Reason: "invalid front-matter YAML", Err: err}
	}

	rec := &model.Record{
		Number:    fm.Number,
		Title:     fm.Title,
		Status:    model.ParseStatus(fm.Status),
		Deciders:  fm.Deciders,
		Consulted: fm.Consulted,
		Informed:  fm.Informed,
		Tags:      fm.Tags,
		Encoding:  model.EncodingExtended,
	}
	if rec.Deciders == nil {
		rec.Deciders = fm.DecisionMakers
	}

	if fm.Date != "" {
		date, err := time.Parse(model.DateLayout, fm.Date)
		if err != nil {
			return nil, &ParseError{Reason: "invalid date " + fm.Date, Err: err}
		}
		rec.Date = date
	}

	for _, l := range fm.Links {
		rec.AddLink(model.Link{
			Kind:        model.ParseLinkKind(l.Kind),
			Target:      l.Target,
			Description: l.Description,
		})
	}

	rec.Sections = ExtractSections(body)
	return rec, nil
}

package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/cairnlog/cairn/internal/model"
)

// ExtractSections splits a markdown body into its level-2 sections.
// Section bodies are the raw source between headings, so lists, code
// fences and tables survive untouched. A "##" inside a fenced code block
// is not a heading; goldmark gets this right where a line scanner would
// not.
func ExtractSections(content string) []model.Section {
	src := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	type headingPos struct {
		name      string
		lineStart int // offset of the start of the heading's line
		lineEnd   int // offset just past the heading's line
	}
	var headings []headingPos

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 2 || h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}

		var name strings.Builder
		for child := h.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				name.Write(t.Segment.Value(src))
			}
		}

		seg := h.Lines().At(0)
		start := seg.Start
		for start > 0 && src[start-1] != '\n' {
			start--
		}
		end := seg.Stop
		for end < len(src) && src[end] != '\n' {
			end++
		}
		if end < len(src) {
			end++
		}

		headings = append(headings, headingPos{
			name:      strings.TrimSpace(name.String()),
			lineStart: start,
			lineEnd:   end,
		})
		return ast.WalkContinue, nil
	})

	sections := make([]model.Section, 0, len(headings))
	for i, h := range headings {
		stop := len(src)
		if i+1 < len(headings) {
			stop = headings[i+1].lineStart
		}
		sections = append(sections, model.Section{
			Name: h.name,
			Body: strings.TrimSpace(string(src[h.lineEnd:stop])),
		})
	}
	return sections
}

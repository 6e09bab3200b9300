package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cairnlog/cairn/internal/model"
)

// statusLinkPattern matches a legacy status-section link sentence such as
// "Supersedes [1. Use MySQL](0001-use-mysql.md)".
var statusLinkPattern = regexp.MustCompile(`^([A-Za-z][\w ]*?)\s+\[(\d+)\.\s*[^\]]*\]\((\d{4})-[^)]*\.md\)$`)

// statusKeywords are the words recognized as a status on the first plain
// line of a status section. Draft and rejected are not part of the core
// vocabulary but adr-tools era repositories use them, so they parse as
// custom statuses rather than prose.
var statusKeywords = map[string]bool{
	"proposed":   true,
	"accepted":   true,
	"deprecated": true,
	"superseded": true,
	"superceded": true,
	"draft":      true,
	"rejected":   true,
}

// parseLegacy parses the adr-tools compatible encoding: an H1 title
// carrying the number, an optional Date line, and a "## Status" section
// whose prose encodes status and links.
func parseLegacy(content string) (*model.Record, error) {
	rec := &model.Record{
		Status:   model.StatusProposed,
		Encoding: model.EncodingLegacy,
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if title, ok := strings.CutPrefix(trimmed, "# "); ok {
			number, rest := splitNumberedTitle(strings.TrimSpace(title))
			rec.Number = number
			rec.Title = rest
			break
		}
	}

	if dateLine := findDateLine(content); dateLine != "" {
		date, err := time.Parse(model.DateLayout, dateLine)
		if err != nil {
			return nil, &ParseError{Reason: "invalid date " + dateLine, Err: err}
		}
		rec.Date = date
	}

	for _, s := range ExtractSections(content) {
		if strings.EqualFold(s.Name, "Status") {
			parseStatusSection(rec, s.Body)
			continue
		}
		rec.Sections = append(rec.Sections, s)
	}

	return rec, nil
}

// parseStatusSection reads the status keyword, link sentences, and any
// supplementary prose out of a legacy status section. Prose is kept, not
// rejected: multi-line free text after the keyword is legal.
func parseStatusSection(rec *model.Record, body string) {
	var prose []string
	statusSet := false

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := statusLinkPattern.FindStringSubmatch(line); m != nil {
			target, err := strconv.Atoi(m[2])
			if err != nil || target <= 0 {
				continue
			}
			kind := model.ParseLinkKind(m[1])
			rec.AddLink(model.Link{Kind: kind, Target: target})

			// adr-tools does not always write a separate status line for
			// superseded records; the link alone carries the meaning.
			if kind.Equal(model.KindSupersededBy) && !statusSet {
				rec.Status = model.StatusSuperseded
			}
			continue
		}

		word, rest, _ := strings.Cut(line, " ")
		if !statusSet && statusKeywords[strings.ToLower(word)] {
			rec.Status = model.ParseStatus(word)
			statusSet = true
			if rest = strings.TrimSpace(rest); rest != "" {
				prose = append(prose, rest)
			}
			continue
		}

		prose = append(prose, line)
	}

	rec.StatusNote = strings.Join(prose, "\n")
}

// splitNumberedTitle splits "7. Authentication Mechanism" into its number
// and title. Titles without the number prefix return 0.
func splitNumberedTitle(title string) (int, string) {
	num, rest, ok := strings.Cut(title, ". ")
	if !ok {
		return 0, title
	}
	n, err := strconv.Atoi(num)
	if err != nil || n <= 0 {
		return 0, title
	}
	return n, rest
}

// findDateLine returns the value of the first "Date:" line before any
// section heading, or "".
func findDateLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") {
			return ""
		}
		if v, ok := strings.CutPrefix(trimmed, "Date:"); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Package parser converts decision record files to and from the in-memory
// model. Two encodings coexist on disk: the legacy adr-tools form and the
// extended front-matter form. Detection is a pure function of the raw text,
// so reading never depends on repository configuration.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cairnlog/cairn/internal/model"
)

// filenameNumberPattern extracts the zero-padded number from a record
// filename like "0042-some-decision.md".
var filenameNumberPattern = regexp.MustCompile(`^(\d{4})-.*\.md$`)

// Warning is a non-fatal condition noticed while parsing; the record is
// still usable.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	if w.Path == "" {
		return w.Message
	}
	return w.Path + ": " + w.Message
}

// ParseError is a structured parse failure for a single file.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "parse: " + e.Reason
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse converts raw text into a record. The encoding is detected from the
// text itself: a front-matter block means the extended form, anything else
// is treated as legacy.
func Parse(content string) (*model.Record, error) {
	if hasFrontmatter(content) {
		return parseExtended(content)
	}
	return parseLegacy(content)
}

// ParseFile reads and parses one record file. The number encoded in the
// filename is cross-checked against the content: it fills the number in
// when the content has none, and a disagreement is surfaced as a warning,
// not a failure.
func ParseFile(path string) (*model.Record, []Warning, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &ParseError{Path: path, Reason: "read file", Err: err}
	}

	rec, err := Parse(string(content))
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Path = path
			return nil, nil, perr
		}
		return nil, nil, &ParseError{Path: path, Reason: err.Error(), Err: err}
	}

	var warnings []Warning
	if n, ok := numberFromFilename(path); ok {
		switch {
		case rec.Number == 0:
			rec.Number = n
		case rec.Number != n:
			warnings = append(warnings, Warning{
				Path:    path,
				Message: fmt.Sprintf("filename number %d disagrees with content number %d", n, rec.Number),
			})
		}
	}

	if rec.Number <= 0 {
		return nil, nil, &ParseError{Path: path, Reason: "no record number in content or filename"}
	}

	rec.Path = path
	return rec, warnings, nil
}

// ConformingFilename reports whether a base name follows the numbered
// record convention, "0042-some-decision.md".
func ConformingFilename(name string) bool {
	return filenameNumberPattern.MatchString(name)
}

// numberFromFilename extracts the record number encoded in a filename.
func numberFromFilename(path string) (int, bool) {
	m := filenameNumberPattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// hasFrontmatter reports whether content opens with a front-matter block.
// Only the opening delimiter matters for detection; an unclosed block is a
// parse error, not a legacy document.
func hasFrontmatter(content string) bool {
	line, _, _ := strings.Cut(content, "\n")
	return strings.TrimSpace(line) == "---"
}

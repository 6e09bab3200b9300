// Package slugs provides the canonical title slugification used in record
// filenames, built on gosimple/slug.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// Slugify converts a record title to the kebab-cased form used in
// filenames, e.g. "Use PostgreSQL!" -> "use-postgresql".
func Slugify(title string) string {
	s := goslug.Make(title)
	if s == "" {
		s = strings.ToLower(strings.Join(strings.Fields(title), "-"))
	}
	return s
}

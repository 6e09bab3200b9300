package model

import "strings"

// LinkKind is the relationship label on a link, e.g. "Supersedes".
// Unknown kinds are carried verbatim.
type LinkKind string

// The well-known link kinds and their display forms.
const (
	KindSupersedes   LinkKind = "Supersedes"
	KindSupersededBy LinkKind = "Superseded by"
	KindAmends       LinkKind = "Amends"
	KindAmendedBy    LinkKind = "Amended by"
	KindRelatesTo    LinkKind = "Relates to"
)

// Link is a directed, typed reference from one record to another.
type Link struct {
	// Kind is the relationship label.
	Kind LinkKind

	// Target is the referenced record's number.
	Target int

	// Description is optional free text shown alongside the link.
	Description string
}

// ParseLinkKind normalizes a kind string to its display form. Both prose
// ("superseded by") and slug ("superseded-by") spellings are recognized;
// unknown kinds are preserved as written.
func ParseLinkKind(s string) LinkKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "supersedes":
		return KindSupersedes
	case "superseded by", "superseded-by":
		return KindSupersededBy
	case "amends":
		return KindAmends
	case "amended by", "amended-by":
		return KindAmendedBy
	case "relates to", "relates-to":
		return KindRelatesTo
	default:
		return LinkKind(strings.TrimSpace(s))
	}
}

// reversePairs maps each well-known kind to its complement.
var reversePairs = map[LinkKind]LinkKind{
	KindSupersedes:   KindSupersededBy,
	KindSupersededBy: KindSupersedes,
	KindAmends:       KindAmendedBy,
	KindAmendedBy:    KindAmends,
	KindRelatesTo:    KindRelatesTo,
}

// Reverse returns the complementary kind for the reverse direction of a
// link pair. Unknown kinds reverse to themselves.
func (k LinkKind) Reverse() LinkKind {
	if r, ok := reversePairs[ParseLinkKind(string(k))]; ok {
		return r
	}
	return k
}

// Equal compares two kinds case-insensitively after normalization.
func (k LinkKind) Equal(other LinkKind) bool {
	return equalFold(string(ParseLinkKind(string(k))), string(ParseLinkKind(string(other))))
}

// Slug returns the hyphenated lowercase form used by the interchange
// format, e.g. "superseded-by".
func (k LinkKind) Slug() string {
	return strings.ToLower(strings.ReplaceAll(string(ParseLinkKind(string(k))), " ", "-"))
}

func (k LinkKind) String() string { return string(k) }

// Package buildinfo carries build metadata injected at release time.
package buildinfo

// These values are injected via ldflags for release binaries and default to
// empty for local/dev builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// ToolName is the name reported in interchange export metadata.
const ToolName = "cairn"

// DisplayVersion returns the version string, or "dev" when unset.
func DisplayVersion() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

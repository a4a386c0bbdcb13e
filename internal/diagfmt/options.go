// Package diagfmt renders diagnostics and token dumps for the terminal and
// for tools.
package diagfmt

// PathMode selects how file paths are displayed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // as given, or the base name of long absolute paths
	PathModeAbsolute
	PathModeRelative // relative to the FileSet base directory
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color     bool
	Context   int // source lines shown around the primary line
	PathMode  PathMode
	ShowNotes bool
	ShowFixes bool
	Max       int // stop after this many diagnostics; 0 means all
}

// JSONOpts configures JSON.
type JSONOpts struct {
	IncludePositions bool // add line/column to every location
	PathMode         PathMode
	Max              int // trims the output, not the Bag
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool // before/after lines for each fix edit
}

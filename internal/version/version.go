// Package version holds the build fingerprint of macrokit.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

const Tool = "macrokit"

const Tagline = "one body, many copies"

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

type Info struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

// Collect reads the ldflags variables, falling back to the VCS stamp of the
// running binary for the commit and date.
func Collect() Info {
	info := Info{
		Version:    strings.TrimSpace(Version),
		GitCommit:  strings.TrimSpace(GitCommit),
		GitMessage: strings.TrimSpace(GitMessage),
		BuildDate:  strings.TrimSpace(BuildDate),
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			}
		}
	}
	return info
}

// Colorize paints the major, minor and patch components of v.
// Anything that is not dotted numbers is returned unchanged.
func Colorize(v string, enabled bool) string {
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	paint := func(c *color.Color, s string) string {
		if !enabled {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}
	out := paint(majorColor, parts[0]) + "." + paint(minorColor, parts[1]) + "." + paint(patchColor, parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Detail selects the optional fields rendered.
type Detail struct {
	Hash    bool
	Message bool
	Date    bool
}

func (d Detail) any() bool { return d.Hash || d.Message || d.Date }

func RenderPretty(w io.Writer, info Info, d Detail, colored bool) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s\n", Tool, Colorize(info.Version, colored), Tagline)
	if d.Hash {
		fmt.Fprintf(&b, "commit:  %s\n", orUnknown(info.GitCommit))
	}
	if d.Message {
		fmt.Fprintf(&b, "message: %s\n", orUnknown(info.GitMessage))
	}
	if d.Date {
		fmt.Fprintf(&b, "built:   %s\n", orUnknown(info.BuildDate))
	}
	if !d.any() {
		b.WriteString("set --hash, --message, --date, or --full for more build details\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type payload struct {
	Tool    string `json:"tool"`
	Tagline string `json:"tagline"`
	Info
}

func RenderJSON(w io.Writer, info Info, d Detail) error {
	p := payload{Tool: Tool, Tagline: Tagline, Info: Info{Version: info.Version}}
	if d.Hash {
		p.GitCommit = orUnknown(info.GitCommit)
	}
	if d.Message {
		p.GitMessage = orUnknown(info.GitMessage)
	}
	if d.Date {
		p.BuildDate = orUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

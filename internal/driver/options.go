// Package driver runs macrokit over files and directories: it loads sources,
// runs the expansion pass or the derive generators, formats the result and
// hands back per-file outputs with their diagnostics.
package driver

import (
	"fmt"
	"strings"

	"github.com/elk-cloner/proc-macro-workshop/internal/derive"
	"github.com/elk-cloner/proc-macro-workshop/internal/expand"
	"github.com/elk-cloner/proc-macro-workshop/internal/pipeline"
	"github.com/elk-cloner/proc-macro-workshop/internal/project"
	"github.com/elk-cloner/proc-macro-workshop/internal/seq"
)

// GofmtMode controls whether expansion output goes through go/format.
type GofmtMode uint8

const (
	GofmtAuto GofmtMode = iota // only when the output path ends in .go
	GofmtOn
	GofmtOff
)

func (m GofmtMode) String() string {
	switch m {
	case GofmtOn:
		return "on"
	case GofmtOff:
		return "off"
	default:
		return "auto"
	}
}

func ParseGofmt(s string) (GofmtMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return GofmtAuto, nil
	case "on":
		return GofmtOn, nil
	case "off":
		return GofmtOff, nil
	default:
		return GofmtAuto, fmt.Errorf("invalid gofmt mode %q (expected auto|on|off)", s)
	}
}

type Options struct {
	Expand        expand.Options
	Suffix        string // input extension for ExpandDir, stripped for the output name
	Gofmt         GofmtMode
	PreserveLines bool

	Derive       derive.Options
	DeriveSuffix string

	MaxDiagnostics int
	Cache          *DiskCache // nil disables caching
	Progress       pipeline.ProgressSink
	Timings        *pipeline.Timings
}

func DefaultOptions() Options {
	return OptionsFromConfig(project.Default())
}

// OptionsFromConfig maps a manifest onto driver options. Values the manifest
// validated are taken as is; an unknown gofmt mode falls back to auto.
func OptionsFromConfig(cfg project.Config) Options {
	gofmt, err := ParseGofmt(cfg.Expand.Gofmt)
	if err != nil {
		gofmt = GofmtAuto
	}
	return Options{
		Expand: expand.Options{
			Macros: cfg.Expand.Macros,
			Seq: seq.Options{
				MaxDepth:      cfg.Expand.MaxDepth,
				MaxIterations: cfg.Expand.MaxIterations,
				Lint:          cfg.Expand.LintSplice,
			},
		},
		Suffix:         cfg.Expand.Suffix,
		Gofmt:          gofmt,
		PreserveLines:  cfg.Expand.PreserveLines,
		Derive:         derive.Options{Directive: cfg.Derive.Directive},
		DeriveSuffix:   cfg.Derive.Suffix,
		MaxDiagnostics: cfg.Diagnostics.Max,
	}
}

// fingerprint lists every option that changes expansion output.
func (o Options) fingerprint(outPath string) []string {
	macros := o.Expand.Macros
	if len(macros) == 0 {
		macros = expand.DefaultMacros
	}
	return []string{
		"macros=" + strings.Join(macros, ","),
		fmt.Sprintf("depth=%d", o.Expand.Seq.MaxDepth),
		fmt.Sprintf("iter=%d", o.Expand.Seq.MaxIterations),
		fmt.Sprintf("lint=%t", o.Expand.Seq.Lint),
		fmt.Sprintf("lines=%t", o.PreserveLines),
		"gofmt=" + o.Gofmt.String(),
		fmt.Sprintf("gofile=%t", strings.HasSuffix(outPath, ".go")),
	}
}

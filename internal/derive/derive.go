package derive

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

const (
	DefaultDirective = "macrokit:derive"
	DefaultSuffix    = "_derive.go"
)

type Options struct {
	// Directive is the `tool:name` comment that requests derives.
	Directive string
}

func DefaultOptions() Options {
	return Options{Directive: DefaultDirective}
}

// generator writes the code for one derive of one target.
type generator func(u *unit, t Target, w *Writer, imports map[string]string) bool

var generators = map[string]generator{
	"Builder":     genBuilder,
	"CustomDebug": genDebug,
}

// Known lists the derive names Generate understands.
func Known() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Result describes the companion file generated for one input.
type Result struct {
	Package string
	Targets []string // type names that requested at least one derive
	Code    []byte   // gofmt-ed source; nil when nothing was requested
}

// Generate runs every requested derive in src. It reports through r and
// returns false when any derive fails, in which case Code is nil.
func Generate(src *source.File, opts Options, r diag.Reporter) (Result, bool) {
	if opts.Directive == "" {
		opts.Directive = DefaultDirective
	}
	u, ok := parseUnit(src, r)
	if !ok {
		return Result{}, false
	}
	res := Result{Package: u.file.Name.Name}

	imports := map[string]string{}
	var body Writer
	for _, t := range u.targets(opts.Directive) {
		res.Targets = append(res.Targets, t.Name)
		if !u.generateTarget(t, &body, imports) {
			ok = false
		}
	}
	if !ok || len(res.Targets) == 0 {
		return res, ok
	}

	var w Writer
	w.Linef("// Code generated by macrokit derive from %s. DO NOT EDIT.", filepath.Base(src.Path))
	w.Line("")
	w.Linef("package %s", res.Package)
	if len(imports) > 0 {
		paths := make([]string, 0, len(imports))
		for p := range imports {
			paths = append(paths, p)
		}
		slices.Sort(paths)
		w.Line("")
		w.Line("import (")
		for _, p := range paths {
			if name := imports[p]; name != "" {
				w.Linef("%s %q", name, p)
			} else {
				w.Linef("%q", p)
			}
		}
		w.Line(")")
	}
	_, _ = w.Write(body.Bytes())

	code, err := w.Fmt()
	if err != nil {
		diag.ReportError(r, diag.DrvGoParseError, source.Span{File: src.ID},
			fmt.Sprintf("generated code does not parse: %v", err)).Emit()
		return res, false
	}
	res.Code = code
	return res, true
}

func (u *unit) generateTarget(t Target, w *Writer, imports map[string]string) bool {
	ok := true
	seen := map[string]bool{}
	for _, name := range t.Derives {
		gen, known := generators[name]
		if !known {
			diag.ReportError(u.r, diag.DrvUnknownDerive, t.DirSpan,
				fmt.Sprintf("unknown derive `%s`; known derives are %s", name, strings.Join(Known(), ", "))).Emit()
			ok = false
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		if t.Struct == nil {
			diag.ReportError(u.r, diag.DrvUnsupportedShape, u.nodeSpan(t.Spec),
				fmt.Sprintf("%s can only be derived for struct types, `%s` is not a struct", name, t.Name)).
				WithNote(t.DirSpan, "derive requested here").
				Emit()
			ok = false
			continue
		}
		var part Writer
		if !gen(u, t, &part, imports) {
			ok = false
			continue
		}
		w.Line("")
		_, _ = w.Write(part.Bytes())
	}
	return ok
}

// OutputPath names the companion file for a Go source path: `cmd.go` gives
// `cmd_derive.go` with the default suffix.
func OutputPath(path, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return strings.TrimSuffix(path, ".go") + suffix
}

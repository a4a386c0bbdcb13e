package derive

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/printer"
	"go/scanner"
	gotoken "go/token"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/token"
)

// Target is one struct type together with the derives requested for it.
type Target struct {
	Name       string
	Spec       *ast.TypeSpec
	Struct     *ast.StructType // nil when the type is not a struct
	Derives    []string
	DirSpan    source.Span // the directive comment
	TypeParams []typeParam
}

type typeParam struct {
	Name       string
	Constraint string
}

// unit is one parsed Go file and the helpers shared by the generators.
type unit struct {
	src     *source.File
	fset    *gotoken.FileSet
	file    *ast.File
	r       diag.Reporter
	imports map[string]*ast.ImportSpec // by the name the file refers to it with
}

func parseUnit(src *source.File, r diag.Reporter) (*unit, bool) {
	fset := gotoken.NewFileSet()
	f, err := goparser.ParseFile(fset, src.Path, src.Content, goparser.ParseComments|goparser.SkipObjectResolution)
	u := &unit{src: src, fset: fset, file: f, r: r, imports: map[string]*ast.ImportSpec{}}
	if err != nil {
		u.reportParseError(err)
		return u, false
	}
	for _, spec := range f.Imports {
		u.imports[importName(spec)] = spec
	}
	return u, true
}

// importName guesses the package name of an unaliased import from its path:
// the last element, skipping a major version element and a `.vN` suffix.
func importName(spec *ast.ImportSpec) string {
	if spec.Name != nil {
		return spec.Name.Name
	}
	p, err := strconv.Unquote(spec.Path.Value)
	if err != nil {
		return ""
	}
	elems := strings.Split(p, "/")
	name := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersion(name) {
		name = elems[len(elems)-2]
	}
	if i := strings.LastIndex(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}
	return strings.TrimPrefix(name, "go-")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}

// collectImports adds the imports that e refers to through `pkg.Name`.
func (u *unit) collectImports(e ast.Expr, into map[string]string) {
	ast.Inspect(e, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, isIdent := sel.X.(*ast.Ident); isIdent {
			if spec, found := u.imports[id.Name]; found {
				path, _ := strconv.Unquote(spec.Path.Value)
				alias := ""
				if spec.Name != nil {
					alias = spec.Name.Name
				}
				into[path] = alias
			}
		}
		return false
	})
}

// maxParseErrors bounds how many go/parser errors are reported per file.
const maxParseErrors = 10

func (u *unit) reportParseError(err error) {
	var list scanner.ErrorList
	if !errors.As(err, &list) {
		diag.ReportError(u.r, diag.DrvGoParseError, source.Span{File: u.src.ID}, err.Error()).Emit()
		return
	}
	for i, e := range list {
		if i == maxParseErrors {
			break
		}
		sp := source.Span{File: u.src.ID}
		if off, convErr := safecast.Conv[uint32](e.Pos.Offset); convErr == nil {
			sp.Start, sp.End = off, off
			if int(off) < len(u.src.Content) {
				sp.End = off + 1
			}
		}
		diag.ReportError(u.r, diag.DrvGoParseError, sp, e.Msg).Emit()
	}
}

// span maps a go/token range of this file onto the shared source model.
func (u *unit) span(from, to gotoken.Pos) source.Span {
	sp := source.Span{File: u.src.ID}
	if !from.IsValid() {
		return sp
	}
	start, err := safecast.Conv[uint32](u.fset.Position(from).Offset)
	if err != nil {
		return sp
	}
	sp.Start, sp.End = start, start
	if to.IsValid() {
		if end, err := safecast.Conv[uint32](u.fset.Position(to).Offset); err == nil && end >= start {
			sp.End = end
		}
	}
	return sp
}

func (u *unit) nodeSpan(n ast.Node) source.Span {
	return u.span(n.Pos(), n.End())
}

// expr prints a type expression as Go source.
func (u *unit) expr(e ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, u.fset, e); err != nil {
		return fmt.Sprintf("/* %v */", err)
	}
	return buf.String()
}

// targets lists the struct types carrying the derive directive in their doc
// comment, in source order.
func (u *unit) targets(directive string) []Target {
	var out []Target
	for _, decl := range u.file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != gotoken.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			names, dirSpan, found := u.findDirective(doc, directive)
			if !found {
				continue
			}
			t := Target{
				Name:       ts.Name.Name,
				Spec:       ts,
				Derives:    names,
				DirSpan:    dirSpan,
				TypeParams: u.typeParams(ts),
			}
			t.Struct, _ = ts.Type.(*ast.StructType)
			out = append(out, t)
		}
	}
	return out
}

func (u *unit) findDirective(doc *ast.CommentGroup, directive string) ([]string, source.Span, bool) {
	if doc == nil {
		return nil, source.Span{}, false
	}
	var names []string
	var sp source.Span
	found := false
	for _, c := range doc.List {
		d, ok := token.ParseDirective(c.Text)
		if !ok || d.Tool+":"+d.Name != directive {
			continue
		}
		if !found {
			sp = u.nodeSpan(c)
		}
		found = true
		names = append(names, strings.FieldsFunc(d.Payload, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})...)
	}
	return names, sp, found
}

func (u *unit) typeParams(ts *ast.TypeSpec) []typeParam {
	if ts.TypeParams == nil {
		return nil
	}
	var out []typeParam
	for _, f := range ts.TypeParams.List {
		constraint := u.expr(f.Type)
		for _, n := range f.Names {
			out = append(out, typeParam{Name: n.Name, Constraint: constraint})
		}
	}
	return out
}

// field is one named struct field; `a, b int` yields two.
type field struct {
	Name string
	Type ast.Expr
	Tag  reflect.StructTag
	Node *ast.Field
}

// fields flattens the struct's field list. Embedded fields are reported as
// unsupported for derive.
func (u *unit) fields(t Target, derive string) ([]field, bool) {
	var out []field
	ok := true
	for _, f := range t.Struct.Fields.List {
		if len(f.Names) == 0 {
			diag.ReportError(u.r, diag.DrvUnsupportedShape, u.nodeSpan(f),
				fmt.Sprintf("%s cannot be derived for a struct with embedded fields", derive)).
				WithNote(u.nodeSpan(t.Spec.Name), "in "+t.Name).
				Emit()
			ok = false
			continue
		}
		var tag reflect.StructTag
		if f.Tag != nil {
			if s, err := strconv.Unquote(f.Tag.Value); err == nil {
				tag = reflect.StructTag(s)
			}
		}
		for _, n := range f.Names {
			out = append(out, field{Name: n.Name, Type: f.Type, Tag: tag, Node: f})
		}
	}
	return out, ok
}

// typeRef is the generic instantiation `Name[K, V]`, or Name alone.
func (t Target) typeRef(name string) string {
	if len(t.TypeParams) == 0 {
		return name
	}
	names := make([]string, len(t.TypeParams))
	for i, p := range t.TypeParams {
		names[i] = p.Name
	}
	return name + "[" + strings.Join(names, ", ") + "]"
}

// typeDecl is the declaration form `Name[K comparable, V any]`.
func (t Target) typeDecl(name string) string {
	if len(t.TypeParams) == 0 {
		return name
	}
	parts := make([]string, len(t.TypeParams))
	for i, p := range t.TypeParams {
		parts[i] = p.Name + " " + p.Constraint
	}
	return name + "[" + strings.Join(parts, ", ") + "]"
}

// scopeNames collects identifiers a generated method must not redeclare: the
// type parameters and every name used in constraints or field types.
func (t Target) scopeNames() map[string]bool {
	names := map[string]bool{}
	collect := func(root ast.Node) {
		ast.Inspect(root, func(n ast.Node) bool {
			if id, ok := n.(*ast.Ident); ok {
				names[id.Name] = true
			}
			return true
		})
	}
	if t.Spec.TypeParams != nil {
		collect(t.Spec.TypeParams)
	}
	if t.Struct != nil {
		for _, f := range t.Struct.Fields.List {
			collect(f.Type)
		}
	}
	return names
}

// freshName returns base, or base with the smallest numeric suffix not in
// taken, and marks the result as taken.
func freshName(base string, taken map[string]bool) string {
	name := base
	for i := 1; taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	taken[name] = true
	return name
}

// checkPackageShadowing rejects type parameters named after a package the
// generated methods call into.
func (u *unit) checkPackageShadowing(t Target, derive string, pkgs ...string) bool {
	ok := true
	for _, p := range t.TypeParams {
		if !slices.Contains(pkgs, p.Name) {
			continue
		}
		diag.ReportError(u.r, diag.DrvDuplicateMethod, u.nodeSpan(t.Spec.TypeParams),
			fmt.Sprintf("%s code for %s uses package %s, which type parameter `%s` shadows", derive, t.Name, p.Name, p.Name)).Emit()
		ok = false
	}
	return ok
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	out := string(unicode.ToLower(r)) + s[n:]
	if gotoken.IsKeyword(out) {
		out += "_"
	}
	return out
}

// hasMethod reports whether the file declares method on typeName or *typeName.
func (u *unit) hasMethod(typeName, method string) bool {
	for _, decl := range u.file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 || fn.Name.Name != method {
			continue
		}
		if receiverName(fn.Recv.List[0].Type) == typeName {
			return true
		}
	}
	return false
}

func receiverName(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.StarExpr:
		return receiverName(x.X)
	case *ast.IndexExpr:
		return receiverName(x.X)
	case *ast.IndexListExpr:
		return receiverName(x.X)
	case *ast.ParenExpr:
		return receiverName(x.X)
	}
	return ""
}

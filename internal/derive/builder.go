package derive

import (
	"fmt"
	"go/ast"
	gotoken "go/token"
	"strings"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
)

type storageKind uint8

const (
	required storageKind = iota // T, stored as *T
	optional                    // *T, stored as is
	repeated                    // []T with `each`, stored as is
)

// builderField is a struct field as the builder stores and sets it.
type builderField struct {
	field
	kind    storageKind
	storage string // field of the builder struct
	method  string // setter name
	param   string // setter argument type
}

// genBuilder writes `<Name>Builder`, its constructor, one setter per field
// and Build.
func genBuilder(u *unit, t Target, w *Writer, imports map[string]string) bool {
	fields, ok := u.fields(t, "Builder")
	if !ok {
		return false
	}
	bfs := make([]builderField, 0, len(fields))
	for _, f := range fields {
		bf, fok := u.builderField(f)
		ok = ok && fok
		bfs = append(bfs, bf)
	}
	if !ok || !u.checkBuilderNames(t, bfs) {
		return false
	}
	var pkgs []string
	for _, bf := range bfs {
		u.collectImports(bf.Type, imports)
		switch bf.kind {
		case required:
			pkgs = append(pkgs, "errors")
		case repeated:
			pkgs = append(pkgs, "slices")
		}
	}
	if !u.checkPackageShadowing(t, "Builder", pkgs...) {
		return false
	}
	if t.Spec.TypeParams != nil {
		for _, p := range t.Spec.TypeParams.List {
			u.collectImports(p.Type, imports)
		}
	}

	taken := t.scopeNames()
	recv := freshName("b", taken)
	arg := freshName("v", taken)

	builder := t.Name + "Builder"
	self := t.typeRef(builder)
	ctor := "New" + builder
	if !gotoken.IsExported(t.Name) {
		ctor = "new" + upperFirst(builder)
	}

	w.Linef("// %s builds %s values field by field.", builder, t.Name)
	w.Linef("type %s struct {", t.typeDecl(builder))
	for _, bf := range bfs {
		switch bf.kind {
		case required:
			w.Linef("%s *%s", bf.storage, u.expr(bf.Type))
		default:
			w.Linef("%s %s", bf.storage, u.expr(bf.Type))
		}
	}
	w.Line("}")
	w.Line("")

	w.Linef("// %s returns a %s with no field set.", ctor, builder)
	w.Linef("func %s() *%s {", t.typeDecl(ctor), self)
	w.Linef("return &%s{}", self)
	w.Line("}")

	for _, bf := range bfs {
		w.Line("")
		w.Linef("func (%s *%s) %s(%s %s) *%s {", recv, self, bf.method, arg, bf.param, self)
		switch bf.kind {
		case repeated:
			w.Linef("%s.%s = append(%s.%s, %s)", recv, bf.storage, recv, bf.storage, arg)
		default:
			w.Linef("%s.%s = &%s", recv, bf.storage, arg)
		}
		w.Linef("return %s", recv)
		w.Line("}")
	}

	w.Line("")
	w.Linef("// Build returns the %s, or an error naming the first required field", t.Name)
	w.Line("// that was never set.")
	w.Linef("func (%s *%s) Build() (*%s, error) {", recv, self, t.typeRef(t.Name))
	for _, bf := range bfs {
		if bf.kind != required {
			continue
		}
		imports["errors"] = ""
		w.Linef("if %s.%s == nil {", recv, bf.storage)
		w.Linef("return nil, errors.New(%q)", fmt.Sprintf("field `%s` is not set", bf.Name))
		w.Line("}")
	}
	w.Linef("return &%s{", t.typeRef(t.Name))
	for _, bf := range bfs {
		switch bf.kind {
		case required:
			w.Linef("%s: *%s.%s,", bf.Name, recv, bf.storage)
		case repeated:
			imports["slices"] = ""
			w.Linef("%s: slices.Clone(%s.%s),", bf.Name, recv, bf.storage)
		default:
			w.Linef("%s: %s.%s,", bf.Name, recv, bf.storage)
		}
	}
	w.Line("}, nil")
	w.Line("}")
	return true
}

func (u *unit) builderField(f field) (builderField, bool) {
	bf := builderField{
		field:   f,
		storage: lowerFirst(f.Name),
		method:  upperFirst(f.Name),
		param:   u.expr(f.Type),
	}
	if star, isPtr := f.Type.(*ast.StarExpr); isPtr {
		bf.kind = optional
		bf.param = u.expr(star.X)
	}

	attr, has := f.Tag.Lookup("builder")
	if !has {
		return bf, true
	}
	key, each, found := strings.Cut(attr, "=")
	if !found || strings.TrimSpace(key) != "each" || !gotoken.IsIdentifier(strings.TrimSpace(each)) {
		diag.ReportError(u.r, diag.DrvBadBuilderAttr, u.nodeSpan(f.Node.Tag),
			fmt.Sprintf("expected `builder:\"each=<name>\"`, found `builder:%q`", attr)).Emit()
		return bf, false
	}
	slice, isSlice := f.Type.(*ast.ArrayType)
	if !isSlice || slice.Len != nil {
		diag.ReportError(u.r, diag.DrvEachNotSlice, u.nodeSpan(f.Type),
			fmt.Sprintf("`each` requires a slice field, but `%s` is `%s`", f.Name, u.expr(f.Type))).
			WithNote(u.nodeSpan(f.Node.Tag), "requested here").
			Emit()
		return bf, false
	}
	bf.kind = repeated
	bf.method = upperFirst(strings.TrimSpace(each))
	bf.param = u.expr(slice.Elt)
	return bf, true
}

// checkBuilderNames rejects setters and storage fields that would share a
// name, since Go keeps fields and methods in one namespace.
func (u *unit) checkBuilderNames(t Target, bfs []builderField) bool {
	owner := map[string]string{"Build": "the Build method"}
	ok := true
	claim := func(name string, bf builderField) {
		if prev, taken := owner[name]; taken {
			diag.ReportError(u.r, diag.DrvDuplicateMethod, u.nodeSpan(bf.Node),
				fmt.Sprintf("%sBuilder.%s generated for field `%s` collides with %s", t.Name, name, bf.Name, prev)).Emit()
			ok = false
			return
		}
		owner[name] = fmt.Sprintf("field `%s`", bf.Name)
	}
	for _, bf := range bfs {
		claim(bf.storage, bf)
		claim(bf.method, bf)
	}
	return ok
}

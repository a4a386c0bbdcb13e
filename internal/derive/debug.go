package derive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
)

// genDebug writes a GoString method rendering `Name{field: value, ...}`.
func genDebug(u *unit, t Target, w *Writer, imports map[string]string) bool {
	fields, ok := u.fields(t, "CustomDebug")
	if !ok {
		return false
	}
	if u.hasMethod(t.Name, "GoString") {
		diag.ReportError(u.r, diag.DrvDuplicateMethod, u.nodeSpan(t.Spec.Name),
			fmt.Sprintf("%s already has a GoString method", t.Name)).Emit()
		return false
	}

	recv := freshName("x", t.scopeNames())

	var layout strings.Builder
	layout.WriteString(t.Name + "{")
	args := make([]string, 0, len(fields))
	for i, f := range fields {
		verb := "%#v"
		if custom, has := f.Tag.Lookup("debug"); has {
			if n := countVerbs(custom); n != 1 {
				msg := fmt.Sprintf("debug format %q has %d formatting verbs, want exactly one", custom, n)
				if n < 0 {
					msg = fmt.Sprintf("debug format %q has a `%%` without a formatting verb", custom)
				}
				diag.ReportError(u.r, diag.DrvBadDebugFormat, u.nodeSpan(f.Node.Tag), msg).Emit()
				ok = false
				continue
			}
			verb = custom
		}
		if i > 0 {
			layout.WriteString(", ")
		}
		layout.WriteString(f.Name + ": " + verb)
		args = append(args, recv+"."+f.Name)
	}
	layout.WriteString("}")
	if !ok {
		return false
	}

	if len(args) > 0 && !u.checkPackageShadowing(t, "CustomDebug", "fmt") {
		return false
	}
	w.Linef("func (%s %s) GoString() string {", recv, t.typeRef(t.Name))
	if len(args) == 0 {
		w.Linef("return %s", strconv.Quote(t.Name+"{}"))
	} else {
		imports["fmt"] = ""
		w.Linef("return fmt.Sprintf(%s, %s)", strconv.Quote(layout.String()), strings.Join(args, ", "))
	}
	w.Line("}")
	return true
}

// countVerbs counts the fmt verbs in format; `%%` is a literal percent. A
// `%` must be followed by a verb letter after any flags, width and
// precision, otherwise the format is malformed and the result is -1.
func countVerbs(format string) int {
	n := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		j := i + 1
		for j < len(format) && strings.IndexByte("+-# 0123456789.", format[j]) >= 0 {
			j++
		}
		if j >= len(format) {
			return -1
		}
		if format[j] == '%' && j == i+1 {
			i = j
			continue
		}
		if !isVerb(format[j]) {
			return -1
		}
		n++
		i = j
	}
	return n
}

func isVerb(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

package diag

import "github.com/elk-cloner/proc-macro-workshop/internal/source"

type siteKey struct {
	code Code
	span source.Span
}

// DedupReporter forwards the first diagnostic reported for each code and
// primary span and drops the rest. Derives that share a target report the
// same shape problem once each; the user only needs to see it once.
type DedupReporter struct {
	next       Reporter
	seen       map[siteKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: map[siteKey]struct{}{}}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil {
		return
	}
	key := siteKey{code: code, span: primary}
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}

// Suppressed counts the dropped duplicates.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elk-cloner/proc-macro-workshop/internal/pipeline"
)

// printTimings writes the phase table followed by per-stage totals summed
// over all files.
func (s *settings) printTimings(out io.Writer) {
	if !s.timings {
		return
	}
	var b strings.Builder
	b.WriteString(s.timer.Summary())
	for _, st := range []pipeline.Stage{pipeline.StageLex, pipeline.StageExpand, pipeline.StageDerive, pipeline.StageFormat} {
		if d := s.stages.Duration(st); d > 0 {
			fmt.Fprintf(&b, "  %-20s %9.3f ms  // summed over files\n", st, toMillis(d))
		}
	}
	_, _ = io.WriteString(out, b.String())
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

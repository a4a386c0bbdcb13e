package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/pipeline"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/trace"
)

// forEach runs fn for 0..n-1 on at most jobs goroutines. Each index is
// handled once, so fn may write results[i] without locking. It stops
// starting new work once ctx is done and returns the context error.
func forEach(ctx context.Context, n, jobs int, fn func(ctx context.Context, i int)) error {
	if n == 0 {
		return ctx.Err()
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, n))
	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(gctx, i)
			return nil
		})
	}
	return g.Wait()
}

// loadAll reads every path into fs up front so workers only read from it.
// A file that cannot be read is registered empty and gets an IO5001
// diagnostic in loadErrs.
func loadAll(fs *source.FileSet, paths []string) (ids []source.FileID, loadErrs map[int]diag.Diagnostic) {
	ids = make([]source.FileID, len(paths))
	for i, path := range paths {
		id, err := fs.Load(path)
		if err != nil {
			id = fs.Add(path, nil, source.FileVirtual)
			if loadErrs == nil {
				loadErrs = make(map[int]diag.Diagnostic)
			}
			loadErrs[i] = diag.NewError(diag.IOLoadFailed, source.Span{File: id}, "failed to load file: "+err.Error())
		}
		ids[i] = id
	}
	return ids, loadErrs
}

// listFiles walks dir for files accepted by keep, skipping hidden
// directories and testdata. The result is sorted.
func listFiles(dir string, keep func(path string) bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if keep(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// fileRun tracks one file through its stages.
type fileRun struct {
	opts    *Options
	path    string
	tracer  trace.Tracer
	span    *trace.Span
	started time.Time
	stage   pipeline.Stage
}

func beginFile(ctx context.Context, opts *Options, path string) *fileRun {
	tracer := trace.FromContext(ctx)
	return &fileRun{
		opts:    opts,
		path:    path,
		tracer:  tracer,
		span:    trace.Begin(tracer, trace.ScopeFile, path, trace.ParentFromContext(ctx)),
		started: time.Now(),
	}
}

// step runs fn as stage st, reporting progress, trace and timings.
func (fr *fileRun) step(st pipeline.Stage, fn func() bool) bool {
	fr.stage = st
	pipeline.Emit(fr.opts.Progress, pipeline.Event{File: fr.path, Stage: st, Status: pipeline.StatusWorking})
	span := trace.Begin(fr.tracer, trace.ScopePass, string(st), fr.span.ID())
	start := time.Now()
	ok := fn()
	fr.opts.Timings.Add(st, time.Since(start))
	if ok {
		span.End("")
	} else {
		span.End("failed")
	}
	return ok
}

// finish closes the file span and sends the final progress event.
func (fr *fileRun) finish(failed bool, errors int, cached bool) time.Duration {
	elapsed := time.Since(fr.started)
	ev := pipeline.Event{File: fr.path, Stage: fr.stage, Status: pipeline.StatusDone, Elapsed: elapsed}
	switch {
	case failed:
		ev.Status = pipeline.StatusError
		ev.Err = errorCount(max(errors, 1))
	case cached:
		ev.Status = pipeline.StatusCached
	}
	fr.span.WithExtra("status", string(ev.Status)).End("")
	pipeline.Emit(fr.opts.Progress, ev)
	return elapsed
}

type errorCount int

func (n errorCount) Error() string {
	if n == 1 {
		return "1 error"
	}
	return strconv.Itoa(int(n)) + " errors"
}

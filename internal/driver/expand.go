package driver

import (
	"context"
	"go/format"
	"strconv"
	"strings"
	"time"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/expand"
	"github.com/elk-cloner/proc-macro-workshop/internal/pipeline"
	"github.com/elk-cloner/proc-macro-workshop/internal/project"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/trace"
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

// FileResult is the expansion of one input file.
type FileResult struct {
	Path    string // input path as given
	OutPath string
	FileID  source.FileID
	Output  []byte // nil when the file has errors
	Stats   expand.Stats
	Bag     *diag.Bag
	Cached  bool
	Elapsed time.Duration

	failed bool
}

// Failed reports whether the file had errors, including ones the Bag limit
// dropped.
func (r *FileResult) Failed() bool { return r.failed || r.Bag.HasErrors() }

// ExpandOutputPath strips suffix from path: `gen/tables.go.seq` becomes
// `gen/tables.go`. Paths without the suffix get `.out` appended.
func ExpandOutputPath(path, suffix string) string {
	if suffix != "" && len(path) > len(suffix) && strings.HasSuffix(path, suffix) {
		return strings.TrimSuffix(path, suffix)
	}
	return path + ".out"
}

// ExpandFile expands a single file. The error is only for a file that
// cannot be read; everything else is reported in the result's Bag.
func ExpandFile(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fs, nil, err
	}
	res := expandSource(ctx, fs, id, path, &opts)
	return fs, &res, nil
}

// ExpandFiles expands paths on up to jobs goroutines. Results are in the
// order of paths. The error is non-nil only when ctx was cancelled.
func ExpandFiles(ctx context.Context, paths []string, baseDir string, opts Options, jobs int) (*source.FileSet, []FileResult, error) {
	fs := source.NewFileSetWithBase(baseDir)
	ids, loadErrs := loadAll(fs, paths)
	results := make([]FileResult, len(paths))
	err := forEach(ctx, len(paths), jobs, func(ctx context.Context, i int) {
		if d, failed := loadErrs[i]; failed {
			results[i] = failedLoad(paths[i], ids[i], d, &opts)
			return
		}
		results[i] = expandSource(ctx, fs, ids[i], paths[i], &opts)
	})
	return fs, results, err
}

// ListInputs returns the files under dir ending in suffix.
func ListInputs(dir, suffix string) ([]string, error) {
	return listFiles(dir, func(path string) bool { return strings.HasSuffix(path, suffix) })
}

// ExpandDir expands every file under dir ending in opts.Suffix.
func ExpandDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []FileResult, error) {
	files, err := ListInputs(dir, opts.Suffix)
	if err != nil {
		return nil, nil, err
	}
	pipeline.Queue(opts.Progress, files)
	return ExpandFiles(ctx, files, dir, opts, jobs)
}

func failedLoad(path string, id source.FileID, d diag.Diagnostic, opts *Options) FileResult {
	res := FileResult{Path: path, OutPath: ExpandOutputPath(path, opts.Suffix), FileID: id, Bag: diag.NewBag(opts.MaxDiagnostics), failed: true}
	res.Bag.Add(d)
	pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageLex, Status: pipeline.StatusError, Err: errorCount(1)})
	return res
}

func expandSource(ctx context.Context, fs *source.FileSet, id source.FileID, path string, opts *Options) (res FileResult) {
	file := fs.Get(id)
	res = FileResult{
		Path:    path,
		OutPath: ExpandOutputPath(path, opts.Suffix),
		FileID:  id,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	run := beginFile(ctx, opts, path)
	defer func() { res.Elapsed = run.finish(res.Failed(), res.Bag.ErrorCount(), res.Cached) }()

	var key project.Digest
	if opts.Cache != nil {
		key = opts.Cache.Key(file, res.OutPath, *opts)
		var payload CachePayload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			trace.Point(run.tracer, trace.ScopeFile, "cache", err.Error(), run.span.ID())
		case hit:
			payload.restore(&res, id)
			return res
		}
	}

	r := diag.BagReporter{Bag: res.Bag}
	var stream tt.Stream
	if !run.step(pipeline.StageLex, func() bool {
		var ok bool
		stream, ok = tt.Lex(file, r)
		return ok
	}) {
		res.failed = true
		return res
	}

	var out tt.Stream
	if !run.step(pipeline.StageExpand, func() bool {
		var ok bool
		out, res.Stats, ok = expand.File(stream, opts.Expand, r)
		return ok
	}) {
		res.failed = true
		return res
	}
	run.span.WithExtra("calls", strconv.Itoa(res.Stats.Invocations))

	text := tt.Print(out, tt.PrintOptions{PreserveLines: opts.PreserveLines})
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	output := []byte(text)
	if opts.wantGofmt(res.OutPath) {
		res.failed = !run.step(pipeline.StageFormat, func() bool {
			var ok bool
			output, ok = formatGo(output, source.Span{File: id}, opts.Gofmt, r)
			return ok
		})
	}
	if res.Failed() {
		return res
	}
	res.Output = output

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, newPayload(&res)); err != nil {
			trace.Point(run.tracer, trace.ScopeFile, "cache", err.Error(), run.span.ID())
		}
	}
	return res
}

func (o *Options) wantGofmt(outPath string) bool {
	switch o.Gofmt {
	case GofmtOn:
		return true
	case GofmtOff:
		return false
	default:
		return strings.HasSuffix(outPath, ".go")
	}
}

// formatGo runs go/format over src. A failure is an error when formatting
// was asked for explicitly and a warning in auto mode; src is returned
// unchanged in both cases.
func formatGo(src []byte, at source.Span, mode GofmtMode, r diag.Reporter) ([]byte, bool) {
	formatted, err := format.Source(src)
	if err == nil {
		return formatted, true
	}
	msg := "expanded output is not valid Go: " + err.Error()
	if mode == GofmtOn {
		diag.ReportError(r, diag.IOFormatFailed, at, msg).Emit()
		return src, false
	}
	diag.ReportWarning(r, diag.IOFormatFailed, at, msg).
		WithNote(at, "set gofmt = \"off\" for outputs that are not Go").
		Emit()
	return src, true
}

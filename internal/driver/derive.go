package driver

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/elk-cloner/proc-macro-workshop/internal/derive"
	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/pipeline"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

// DeriveResult is the derive output for one Go file.
type DeriveResult struct {
	Path    string
	OutPath string
	FileID  source.FileID
	Result  derive.Result // Code is nil when nothing was requested or a derive failed
	Bag     *diag.Bag
	Elapsed time.Duration

	failed bool
}

func (r *DeriveResult) Failed() bool { return r.failed || r.Bag.HasErrors() }

// ListGoSources expands directories in paths to the Go files under them,
// leaving out files that are themselves derive outputs.
func ListGoSources(paths []string, suffix string) ([]string, error) {
	if suffix == "" {
		suffix = derive.DefaultSuffix
	}
	keep := func(path string) bool {
		return strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, suffix)
	}
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		files, err := listFiles(p, keep)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

// Derive runs the derive generators over files on up to jobs goroutines.
// The error is non-nil only when ctx was cancelled.
func Derive(ctx context.Context, files []string, opts Options, jobs int) (*source.FileSet, []DeriveResult, error) {
	fs := source.NewFileSet()
	ids, loadErrs := loadAll(fs, files)
	results := make([]DeriveResult, len(files))
	err := forEach(ctx, len(files), jobs, func(ctx context.Context, i int) {
		res := DeriveResult{
			Path:    files[i],
			OutPath: derive.OutputPath(files[i], opts.DeriveSuffix),
			FileID:  ids[i],
			Bag:     diag.NewBag(opts.MaxDiagnostics),
		}
		if d, failed := loadErrs[i]; failed {
			res.failed = true
			res.Bag.Add(d)
			pipeline.Emit(opts.Progress, pipeline.Event{File: files[i], Stage: pipeline.StageDerive, Status: pipeline.StatusError, Err: errorCount(1)})
			results[i] = res
			return
		}
		run := beginFile(ctx, &opts, files[i])
		res.failed = !run.step(pipeline.StageDerive, func() bool {
			var ok bool
			res.Result, ok = derive.Generate(fs.Get(ids[i]), opts.Derive, diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag}))
			return ok
		})
		res.Elapsed = run.finish(res.Failed(), res.Bag.ErrorCount(), false)
		results[i] = res
	})
	return fs, results, err
}

package driver

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/pipeline"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

// Write stores Output at OutPath. Failed results are skipped.
func (r *FileResult) Write(sink pipeline.ProgressSink) error {
	if r.Failed() || r.Output == nil {
		return nil
	}
	return writeOutput(r.Path, r.OutPath, r.Output, source.Span{File: r.FileID}, sink, r.Bag)
}

// Write stores the generated code at OutPath. Results without code are skipped.
func (r *DeriveResult) Write(sink pipeline.ProgressSink) error {
	if r.Failed() || r.Result.Code == nil {
		return nil
	}
	return writeOutput(r.Path, r.OutPath, r.Result.Code, source.Span{File: r.FileID}, sink, r.Bag)
}

// writeOutput replaces path with data atomically. Progress is reported under
// key, the input the output belongs to. A failure also lands in bag as IO5002.
func writeOutput(key, path string, data []byte, at source.Span, sink pipeline.ProgressSink, bag *diag.Bag) error {
	pipeline.Emit(sink, pipeline.Event{File: key, Stage: pipeline.StageWrite, Status: pipeline.StatusWorking})
	if err := writeAtomic(path, data); err != nil {
		err = fmt.Errorf("write %s: %w", path, err)
		diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOWriteFailed, at, err.Error()).Emit()
		pipeline.Emit(sink, pipeline.Event{File: key, Stage: pipeline.StageWrite, Status: pipeline.StatusError, Err: err})
		return err
	}
	pipeline.Emit(sink, pipeline.Event{File: key, Stage: pipeline.StageWrite, Status: pipeline.StatusDone})
	return nil
}

// UpToDate reports whether path already holds exactly data.
func UpToDate(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(existing, data), nil
}

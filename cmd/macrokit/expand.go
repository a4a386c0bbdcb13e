package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/driver"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] file|dir",
	Short: "Expand seq! calls in template files",
	Long: `Expand replaces every seq! call in the input with its expansion.
A file named tables.go.seq is written to tables.go. For a directory, every
file ending in the configured suffix is expanded.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	f := expandCmd.Flags()
	f.StringP("out", "o", "", "output path (single file only)")
	f.Bool("stdout", false, "print the expansion instead of writing files")
	f.Bool("check", false, "fail when an output is missing or out of date; write nothing")
	f.String("gofmt", "auto", "format Go outputs (auto|on|off)")
	f.Bool("no-lint", false, "disable incomplete-splice and unused-variable warnings")
	f.Bool("cache", false, "reuse expansions from the on-disk cache")
}

func runExpand(cmd *cobra.Command, args []string) error {
	s := current
	opts, err := s.driverOptions(cmd)
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("out")
	toStdout, _ := cmd.Flags().GetBool("stdout")
	check, _ := cmd.Flags().GetBool("check")
	if toStdout && check {
		return errors.New("--stdout and --check are mutually exclusive")
	}

	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if info.IsDir() && outPath != "" {
		return errors.New("--out needs a single input file")
	}

	var (
		fs      *source.FileSet
		results []driver.FileResult
	)
	err = s.timer.Measure("expand", func() (string, error) {
		if !info.IsDir() {
			var (
				res  *driver.FileResult
				lerr error
			)
			fs, res, lerr = driver.ExpandFile(cmd.Context(), target, opts)
			if lerr != nil {
				return "", lerr
			}
			if outPath != "" {
				res.OutPath = outPath
			}
			results = []driver.FileResult{*res}
			return target, nil
		}
		files, err := driver.ListInputs(target, opts.Suffix)
		if err != nil {
			return "", err
		}
		run := func(o driver.Options) ([]driver.FileResult, error) {
			var (
				r    []driver.FileResult
				rerr error
			)
			fs, r, rerr = driver.ExpandFiles(cmd.Context(), files, target, o, s.jobs)
			return r, rerr
		}
		if shouldUseTUI(s.ui, len(files), s.quiet) {
			results, err = runWithUI("expanding "+target, files, opts, run)
		} else {
			results, err = run(opts)
		}
		return fmt.Sprintf("%d file(s)", len(files)), err
	})
	if err != nil {
		return err
	}

	failed, stale, calls := 0, 0, 0
	err = s.timer.Measure("output", func() (string, error) {
		out := cmd.OutOrStdout()
		for i := range results {
			res := &results[i]
			calls += res.Stats.Invocations
			if res.Failed() {
				failed++
				continue
			}
			switch {
			case toStdout:
				if len(results) > 1 {
					fmt.Fprintf(out, "==> %s <==\n", res.OutPath)
				}
				if _, err := out.Write(res.Output); err != nil {
					return "", err
				}
			case check:
				ok, err := driver.UpToDate(res.OutPath, res.Output)
				if err != nil {
					return "", err
				}
				if !ok {
					stale++
					fmt.Fprintf(cmd.ErrOrStderr(), "stale: %s\n", res.OutPath)
				}
			default:
				if err := res.Write(nil); err != nil {
					failed++
				}
			}
		}
		return "", nil
	})
	if err != nil {
		return err
	}

	bags := make([]*diag.Bag, 0, len(results))
	for i := range results {
		bags = append(bags, results[i].Bag)
	}
	if err := s.printDiagnostics(cmd.ErrOrStderr(), collect(bags...), fs); err != nil {
		return err
	}
	if !s.quiet && !toStdout {
		summarize(cmd.ErrOrStderr(), "expanded", len(results), failed, calls, "call")
	}
	s.printTimings(cmd.ErrOrStderr())

	switch {
	case failed > 0:
		return errReported
	case stale > 0:
		return fmt.Errorf("%d output(s) out of date", stale)
	}
	return nil
}

func summarize(w io.Writer, verb string, files, failed, units int, unit string) {
	msg := fmt.Sprintf("%s %d file(s), %d %s(s)", verb, files-failed, units, unit)
	if failed > 0 {
		msg += fmt.Sprintf(", %d failed", failed)
	}
	fmt.Fprintln(w, msg)
}

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elk-cloner/proc-macro-workshop/internal/derive"
	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/driver"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

var deriveCmd = &cobra.Command{
	Use:   "derive [flags] file|dir...",
	Short: "Generate Builder and CustomDebug code for annotated structs",
	Long: `Derive scans Go files for struct types whose doc comment carries a
derive directive, for example

	//macrokit:derive Builder, CustomDebug

and writes the generated methods to a companion file (cmd.go gives
cmd_derive.go). Known derives: ` + strings.Join(derive.Known(), ", ") + `.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDerive,
}

func init() {
	deriveCmd.Flags().Bool("stdout", false, "print generated code instead of writing files")
	deriveCmd.Flags().Bool("check", false, "fail when a companion file is missing or out of date; write nothing")
}

func runDerive(cmd *cobra.Command, args []string) error {
	s := current
	opts, err := s.driverOptions(cmd)
	if err != nil {
		return err
	}
	toStdout, _ := cmd.Flags().GetBool("stdout")
	check, _ := cmd.Flags().GetBool("check")
	if toStdout && check {
		return errors.New("--stdout and --check are mutually exclusive")
	}

	files, err := driver.ListGoSources(args, opts.DeriveSuffix)
	if err != nil {
		return err
	}

	var (
		fs      *source.FileSet
		results []driver.DeriveResult
	)
	err = s.timer.Measure("derive", func() (string, error) {
		run := func(o driver.Options) ([]driver.DeriveResult, error) {
			var (
				r    []driver.DeriveResult
				rerr error
			)
			fs, r, rerr = driver.Derive(cmd.Context(), files, o, s.jobs)
			return r, rerr
		}
		var rerr error
		if shouldUseTUI(s.ui, len(files), s.quiet) {
			results, rerr = runWithUI("deriving", files, opts, run)
		} else {
			results, rerr = run(opts)
		}
		return fmt.Sprintf("%d file(s)", len(files)), rerr
	})
	if err != nil {
		return err
	}

	failed, stale, targets := 0, 0, 0
	out := cmd.OutOrStdout()
	for i := range results {
		res := &results[i]
		targets += len(res.Result.Targets)
		if res.Failed() {
			failed++
			continue
		}
		if res.Result.Code == nil {
			continue
		}
		switch {
		case toStdout:
			fmt.Fprintf(out, "==> %s <==\n", res.OutPath)
			if _, err := out.Write(res.Result.Code); err != nil {
				return err
			}
		case check:
			ok, err := driver.UpToDate(res.OutPath, res.Result.Code)
			if err != nil {
				return err
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

	bags := make([]*diag.Bag, 0, len(results))
	for i := range results {
		bags = append(bags, results[i].Bag)
	}
	if err := s.printDiagnostics(cmd.ErrOrStderr(), collect(bags...), fs); err != nil {
		return err
	}
	if !s.quiet && !toStdout {
		summarize(cmd.ErrOrStderr(), "derived", len(results), failed, targets, "type")
	}
	s.printTimings(cmd.ErrOrStderr())

	switch {
	case failed > 0:
		return errReported
	case stale > 0:
		return fmt.Errorf("%d companion file(s) out of date", stale)
	}
	return nil
}

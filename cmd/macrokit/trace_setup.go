package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elk-cloner/proc-macro-workshop/internal/prof"
	"github.com/elk-cloner/proc-macro-workshop/internal/trace"
)

var (
	activeTracer trace.Tracer = trace.Nop
	tracerFormat trace.Format
	driverSpan   *trace.Span
	profSession  *prof.Session
)

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	opts.CPU, _ = flags.GetString("cpu-profile")
	opts.Mem, _ = flags.GetString("mem-profile")
	opts.Trace, _ = flags.GetString("runtime-trace")
	if !opts.Enabled() {
		return nil
	}
	s, err := prof.Start(opts)
	if err != nil {
		return err
	}
	profSession = s
	return nil
}

// setupTracing reads the trace flags, installs the tracer in the command
// context and opens the driver span every file span hangs off.
func setupTracing(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	output, _ := flags.GetString("trace")
	levelStr, _ := flags.GetString("trace-level")
	modeStr, _ := flags.GetString("trace-mode")
	formatStr, _ := flags.GetString("trace-format")
	ringSize, _ := flags.GetInt("trace-ring-size")

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	// --trace alone implies phase-level tracing
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer, tracerFormat = tracer, format

	driverSpan = trace.Begin(tracer, trace.ScopeDriver, cmd.CommandPath(), 0)
	if current != nil && current.manifestPath != "" {
		driverSpan.WithExtra("manifest", current.manifestPath)
	}
	ctx := trace.WithParent(trace.WithTracer(cmd.Context(), tracer), driverSpan)
	cmd.SetContext(ctx)
	return nil
}

// finishRun stops profiling, closes the driver span and flushes the tracer.
// A failed run in ring mode dumps the ring to stderr.
func finishRun(runErr error) {
	if err := profSession.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", err)
	}
	profSession = nil
	if activeTracer == trace.Nop {
		return
	}
	detail := "ok"
	if runErr != nil {
		detail = "failed"
	}
	driverSpan.End(detail)
	if runErr != nil {
		if _, err := trace.DumpRing(activeTracer, os.Stderr, tracerFormat); err != nil {
			fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
		}
	}
	if err := activeTracer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "trace: flush error: %v\n", err)
	}
	if err := activeTracer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "trace: close error: %v\n", err)
	}
}

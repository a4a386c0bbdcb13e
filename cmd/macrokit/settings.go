package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elk-cloner/proc-macro-workshop/internal/driver"
	"github.com/elk-cloner/proc-macro-workshop/internal/observ"
	"github.com/elk-cloner/proc-macro-workshop/internal/pipeline"
	"github.com/elk-cloner/proc-macro-workshop/internal/project"
)

// settings is everything a command needs after flags and the manifest have
// been combined. Flags win over the manifest.
type settings struct {
	cfg          project.Config
	manifestPath string
	color        bool
	quiet        bool
	timings      bool
	jobs         int
	ui           uiMode
	timer        *observ.Timer
	stages       *pipeline.Timings
}

var current *settings

func setupRun(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	current = s
	if err := startProfiling(cmd); err != nil {
		return err
	}
	return setupTracing(cmd)
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	s := &settings{cfg: project.Default(), timer: observ.NewTimer(), stages: &pipeline.Timings{}}

	configPath, _ := flags.GetString("config")
	err := s.timer.Measure("config", func() (string, error) {
		if configPath != "" {
			cfg, err := project.LoadConfig(configPath)
			if err != nil {
				return "", err
			}
			s.cfg, s.manifestPath = cfg, configPath
			return configPath, nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		m, ok, err := project.LoadManifest(wd)
		if err != nil || !ok {
			return "defaults", err
		}
		s.cfg, s.manifestPath = m.Config, m.Path
		return m.Path, nil
	})
	if err != nil {
		return nil, err
	}

	if flags.Changed("max-diagnostics") {
		s.cfg.Diagnostics.Max, _ = flags.GetInt("max-diagnostics")
	}
	if flags.Changed("diag-format") {
		format, _ := flags.GetString("diag-format")
		format = strings.ToLower(format)
		if !slices.Contains(project.DiagFormats, format) {
			return nil, fmt.Errorf("invalid --diag-format %q (expected %s)", format, strings.Join(project.DiagFormats, "|"))
		}
		s.cfg.Diagnostics.Format = format
	}

	colorFlag, _ := flags.GetString("color")
	switch strings.ToLower(colorFlag) {
	case "on":
		s.color = true
	case "off":
	case "auto":
		s.color = isTerminal(os.Stderr)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	s.quiet, _ = flags.GetBool("quiet")
	s.timings, _ = flags.GetBool("timings")
	s.jobs, _ = flags.GetInt("jobs")
	uiFlag, _ := flags.GetString("ui")
	if s.ui, err = readUIMode(uiFlag); err != nil {
		return nil, err
	}
	return s, nil
}

// driverOptions applies the expand flags of cmd on top of the manifest.
func (s *settings) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	f := cmd.Flags()
	if f.Lookup("gofmt") != nil && f.Changed("gofmt") {
		s.cfg.Expand.Gofmt, _ = f.GetString("gofmt")
	}
	if f.Lookup("no-lint") != nil && f.Changed("no-lint") {
		noLint, _ := f.GetBool("no-lint")
		s.cfg.Expand.LintSplice = !noLint
	}
	if f.Lookup("cache") != nil && f.Changed("cache") {
		s.cfg.Expand.Cache, _ = f.GetBool("cache")
	}
	opts := driver.OptionsFromConfig(s.cfg)
	if _, err := driver.ParseGofmt(s.cfg.Expand.Gofmt); err != nil {
		return opts, err
	}
	opts.Timings = s.stages
	if s.cfg.Expand.Cache {
		cache, err := driver.OpenDiskCache("macrokit")
		if err != nil {
			return opts, fmt.Errorf("open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elk-cloner/proc-macro-workshop/internal/diagfmt"
	"github.com/elk-cloner/proc-macro-workshop/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Print the tokens or token trees of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	tokenizeCmd.Flags().Bool("trees", false, "print token trees instead of flat tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	s := current
	format, _ := cmd.Flags().GetString("format")
	trees, _ := cmd.Flags().GetBool("trees")

	var result *driver.TokenizeResult
	err := s.timer.Measure("tokenize", func() (string, error) {
		var err error
		result, err = driver.Tokenize(args[0], s.cfg.Diagnostics.Max)
		return args[0], err
	})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		if err := s.printDiagnostics(cmd.ErrOrStderr(), result.Bag.Items(), result.FileSet); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "pretty":
		if trees {
			err = diagfmt.FormatTreesPretty(out, result.Trees, result.FileSet)
		} else {
			err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
		}
	case "json":
		if trees {
			err = diagfmt.FormatTreesJSON(out, result.Trees)
		} else {
			err = diagfmt.FormatTokensJSON(out, result.Tokens)
		}
	case "yaml":
		if trees {
			err = diagfmt.FormatTreesYAML(out, result.Trees)
		} else {
			err = diagfmt.FormatTokensYAML(out, result.Tokens)
		}
	default:
		return fmt.Errorf("unknown format %q (expected pretty|json|yaml)", format)
	}
	if err != nil {
		return err
	}
	s.printTimings(cmd.ErrOrStderr())
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/elk-cloner/proc-macro-workshop/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default macrokit manifest",
	Long: `Init writes macrokit.toml (or macrokit.yaml with --yaml) holding every
option at its default value. The directory is created when missing; an
existing manifest is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("yaml", false, "write macrokit.yaml instead of macrokit.toml")
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := project.ManifestNames[0]
	if useYAML, _ := cmd.Flags().GetBool("yaml"); useYAML {
		name = "macrokit.yaml"
	}
	for _, existing := range project.ManifestNames {
		if _, err := os.Stat(filepath.Join(target, existing)); err == nil {
			return fmt.Errorf("project already initialized: %s exists", filepath.Join(target, existing))
		}
	}
	path, err := project.WriteDefault(target, name)
	if err != nil {
		return err
	}
	if !current.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	}
	return nil
}

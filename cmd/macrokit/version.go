package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elk-cloner/proc-macro-workshop/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show macrokit build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	f := versionCmd.Flags()
	f.Bool("hash", false, "include git commit hash")
	f.Bool("message", false, "include git commit message")
	f.Bool("date", false, "include build timestamp")
	f.Bool("full", false, "show every recorded bit of build metadata")
	f.String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	full, _ := f.GetBool("full")
	hash, _ := f.GetBool("hash")
	message, _ := f.GetBool("message")
	date, _ := f.GetBool("date")
	detail := version.Detail{Hash: hash || full, Message: message || full, Date: date || full}

	format, _ := f.GetString("format")
	info := version.Collect()
	switch strings.ToLower(format) {
	case "json":
		return version.RenderJSON(cmd.OutOrStdout(), info, detail)
	case "pretty":
		return version.RenderPretty(cmd.OutOrStdout(), info, detail, current.color)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

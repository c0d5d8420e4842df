package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

// readBuildInfo collects the version information of the binary.
// Priority: ldflags > debug.ReadBuildInfo > placeholder
func readBuildInfo() buildInfo {
	info := buildInfo{
		Version:   "(devel)",
		Commit:    "unknown",
		Date:      "unknown",
		GoVersion: runtime.Version(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Version != "" {
			info.Version = bi.Main.Version
		}
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				info.Commit = setting.Value[:min(len(setting.Value), 7)]
			case "vcs.time":
				info.Date = setting.Value
			}
		}
	}

	if version != "" {
		info.Version = version
	}
	if commit != "" {
		info.Commit = commit
	}
	if date != "" {
		info.Date = date
	}
	return info
}

// getVersion returns the version string shown by --version.
func getVersion() string {
	return readBuildInfo().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date and Go version of seoreport.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return err
			}

			info := readBuildInfo()
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, info.Version)
				return nil
			}
			fmt.Fprintf(out, "seoreport version %s\n", info.Version)
			fmt.Fprintf(out, "  commit: %s\n", info.Commit)
			fmt.Fprintf(out, "  built:  %s\n", info.Date)
			fmt.Fprintf(out, "  go:     %s\n", info.GoVersion)
			return nil
		},
	}

	cmd.Flags().BoolP("short", "s", false, "Print the version number only")

	return cmd
}

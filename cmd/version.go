// File: cmd/version.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build metadata. These values are intended to be set at build time using
// ldflags.
// Example: go build -ldflags "-X github.com/xkilldash9x/browsertap/cmd.Version=1.0.0"
var (
	Version = "0.1.0"
	Commit  = "none"
	Date    = "unknown"
)

// newVersionCmd creates the `version` command. It overrides the root's
// PersistentPreRunE so it stays runnable with a broken config file.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print version and build information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "browsertap %s (commit %s, built %s)\n", Version, Commit, Date)
		},
	}
}

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// NewRootCmd builds the mockigd command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mockigd",
		Short: "mockigd is a mock UPnP Internet Gateway Device",
		Long: `mockigd answers UPnP IGD discovery, description and SOAP control requests
with configurable canned behavior, so port-mapping clients can be tested
without a real router.

Configuration can be provided via flags, MOCKIGD_* environment variables,
or a YAML/JSON configuration file.`,
		// No Run function here means 'mockigd' with no args will print help text by default.
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newDescribeCmd())
	root.AddCommand(newOperationsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command with the process arguments.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "mockigd %s (commit %s, built %s)\n", Version, Commit, BuildDate)
}

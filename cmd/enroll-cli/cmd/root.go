package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the enroll-cli command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "enroll-cli",
		Short: "Member registration support tool",
		Long: `enroll-cli runs the registration wizard's rules outside the web server.

Available commands:
  validate    Check a single form value against its field rule
  password    Evaluate a password against the password policy
  config      Print the effective server configuration
  version     Print the version

Use "enroll-cli [command] --help" for more information about a specific command.`,
		SilenceUsage: true,
	}
	root.AddCommand(newVersionCmd(), newValidateCmd(), newPasswordCmd(), newConfigCmd())
	return root
}

// Execute executes the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

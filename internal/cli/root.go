// Package cli provides the command-line interface for lmread.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/lmread/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return execute(NewRootCommand())
}

func execute(rootCmd *cobra.Command) int {
	commands.ExitCode = 0
	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &commands.ReadOptions{}

	rootCmd := &cobra.Command{
		Use:   "lmread [flags] <dir>...",
		Short: "Decode binary log packet files",
		Long: `lmread decodes binary log packet files and prints their contents.

Each packet file holds a fixed 24-byte header followed by tagged chunks
(message text, file, function, line number, thread, clock and so on).
Files are discovered recursively under the given directories and read in
the numeric order of their hexadecimal file names.

Exit codes:
  0 - All files decoded
  1 - At least one file failed to decode
  2 - Configuration or runtime error`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return commands.RunRead(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	commands.AddReadFlags(rootCmd, opts)

	// Add subcommands
	rootCmd.AddCommand(commands.NewReadCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/lmread/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate an lmread configuration file without reading any packets.

Checks:
  - YAML or TOML syntax
  - Output format and mismatch policy names
  - Extension list entries
  - Log level`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(w, "Validating %s...\n", configPath)

	// Load and validate config
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	printConfig(w, cfg)
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	exts := "any"
	if len(cfg.Extensions) > 0 {
		exts = fmt.Sprintf("%v", cfg.Extensions)
	}
	maxSize := "default"
	if cfg.MaxFileSize > 0 {
		maxSize = fmt.Sprintf("%d bytes", cfg.MaxFileSize)
	}

	_, _ = fmt.Fprintf(w, "\nConfiguration valid!\n")
	_, _ = fmt.Fprintf(w, "  Output:        %s\n", cfg.Output)
	_, _ = fmt.Fprintf(w, "  Show header:   %t\n", cfg.ShowHeader)
	_, _ = fmt.Fprintf(w, "  On mismatch:   %s\n", cfg.OnMismatch)
	_, _ = fmt.Fprintf(w, "  Extensions:    %s\n", exts)
	_, _ = fmt.Fprintf(w, "  Max file size: %s\n", maxSize)
	_, _ = fmt.Fprintf(w, "  Log level:     %s\n", cfg.LogLevel)
}

package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/lmread/internal/logging"
	"github.com/ccollicutt/lmread/pkg/config"
	"github.com/ccollicutt/lmread/pkg/discovery"
	"github.com/ccollicutt/lmread/pkg/output"
	"github.com/ccollicutt/lmread/pkg/reader"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ReadOptions holds command-line options for the read command.
type ReadOptions struct {
	ConfigPath string
	Output     string
	ShowHeader bool
	OnMismatch string
	Extensions []string
	LogLevel   string
	Verbose    bool
}

// NewReadCommand creates the read command. The root command runs the same
// logic, so `lmread <dir>` and `lmread read <dir>` are equivalent.
func NewReadCommand() *cobra.Command {
	opts := &ReadOptions{}

	cmd := &cobra.Command{
		Use:   "read <dir>...",
		Short: "Decode every log packet file under the given directories",
		Long: `Decode binary log packet files and print their contents.

Each directory is walked recursively. Files whose name (without extension)
is a hexadecimal number are decoded in ascending numeric order across all
directories; other files are ignored.

Exit codes:
  0 - All files decoded
  1 - At least one file failed to decode
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunRead(cmd, args, opts)
		},
	}

	AddReadFlags(cmd, opts)
	return cmd
}

// AddReadFlags registers the read flags on cmd.
func AddReadFlags(cmd *cobra.Command, opts *ReadOptions) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (YAML or TOML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "Output format (text|json|yaml)")
	cmd.Flags().BoolVar(&opts.ShowHeader, "show-header", false, "Include packet header fields in text output")
	cmd.Flags().StringVar(&opts.OnMismatch, "on-mismatch", string(config.DefaultOnMismatch), "Payload size mismatch policy (partial|discard)")
	cmd.Flags().StringSliceVar(&opts.Extensions, "ext", nil, "Only read files with this extension (can be repeated)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "Diagnostic log level")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Debug logging and a run summary")
}

// RunRead decodes the packet files under args and writes them to the
// command's output stream.
func RunRead(cmd *cobra.Command, args []string, opts *ReadOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(ctx, cmd, opts)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger := logging.New(level, cmd.ErrOrStderr())

	entries, discoverErr := discovery.Discover(ctx, args, discovery.WithExtensions(cfg.Extensions))
	if discoverErr != nil {
		if len(entries) == 0 {
			return fmt.Errorf("discovering packet files: %w", discoverErr)
		}
		logger.Warn().Err(discoverErr).Msg("some directories could not be read")
	}
	logger.Debug().Int("files", len(entries)).Strs("roots", args).Msg("discovered packet files")

	formatter, err := output.New(cfg.Output, output.FormatOptions{
		ShowHeader: cfg.ShowHeader,
		Verbose:    opts.Verbose,
	})
	if err != nil {
		return err
	}

	r := reader.New(formatter,
		reader.WithMismatchPolicy(cfg.OnMismatch),
		reader.WithMaxFileSize(cfg.EffectiveMaxFileSize()),
		reader.WithLogger(logger),
	)

	summary, err := r.Run(ctx, entries, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	logSummary(logger, summary)

	if discoverErr != nil {
		return fmt.Errorf("discovering packet files: %w", discoverErr)
	}

	// Set exit code based on results
	if summary.HasFailures() {
		ExitCode = 1
	}

	return nil
}

// resolveConfig layers defaults, the config file, environment and flags.
func resolveConfig(ctx context.Context, cmd *cobra.Command, opts *ReadOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.ConfigPath != "" {
		loaded, err := config.Load(ctx, opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
		cfg.ApplyEnvironmentOverrides()
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("show-header") {
		cfg.ShowHeader = opts.ShowHeader
	}
	if flags.Changed("on-mismatch") {
		cfg.OnMismatch = config.MismatchPolicy(opts.OnMismatch)
	}
	if flags.Changed("ext") {
		cfg.Extensions = opts.Extensions
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func logSummary(logger zerolog.Logger, s output.Summary) {
	ev := logger.Debug()
	if s.HasFailures() {
		ev = logger.Info()
	}
	ev.Int("files", s.Files).
		Int("decoded", s.Decoded).
		Int("failed", s.Failed).
		Int("partial", s.Partial).
		Msg("run complete")
}


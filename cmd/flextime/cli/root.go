package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/odyssey-erp/flextime/internal/app"
	"github.com/odyssey-erp/flextime/internal/resolve"
	"github.com/odyssey-erp/flextime/timestamp"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Execute runs the flextime command line with args and returns the process
// exit code.
func Execute(ctx context.Context, cfg *app.Config, logger *slog.Logger, args []string, stdout, stderr io.Writer) int {
	if cfg == nil {
		cfg = &app.Config{}
	}
	service := resolve.NewService(logger, nil, resolve.ServiceConfig{MaxConcurrency: cfg.BatchMaxConcurrency})
	resolver := NewResolveCLI(service)

	exitCode := ExitOK
	var jsonOutput bool

	startCmd := &cobra.Command{
		Use:   "start VALUE...",
		Short: "Print the start boundary of each timestamp",
		Example: `  flextime start 2023 2023-02 "2023-02-03 4:05"
  flextime start --json 2023-02-03T04:05:06`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			exitCode = resolver.StartCommand(cmd.Context(), StartOptions{
				Values:     args,
				JSONOutput: jsonOutput,
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
			})
		},
	}

	var since, until timestamp.Flag
	rangeCmd := &cobra.Command{
		Use:   "range",
		Short: "Resolve and validate a --since/--until pair",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			opts := RangeOptions{
				Since:      since.Start(),
				JSONOutput: jsonOutput,
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
			}
			if until.IsSet() {
				u := until.Start()
				opts.Until = &u
			}
			exitCode = resolver.RangeCommand(opts)
		},
	}
	rangeCmd.Flags().Var(&since, "since", "Start of the range (e.g. 2023, 2023-02, \"2023-02-03 4:05\")")
	rangeCmd.Flags().Var(&until, "until", "Optional end of the range, resolved to its start boundary")
	_ = rangeCmd.MarkFlagRequired("since")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the flextime HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Serve(cmd.Context(), ServeOptions{Config: cfg, Logger: logger})
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of flextime",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "flextime version %s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
		},
	}

	rootCmd := &cobra.Command{
		Use:          "flextime",
		Short:        "Resolve flexible CLI timestamps to the start of the period they name",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of human readable output")
	rootCmd.AddCommand(startCmd, rangeCmd, serveCmd, versionCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return ExitUsage
	}
	return exitCode
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"shoplist-csv/internal/config"
	"shoplist-csv/internal/crawler"
	"shoplist-csv/internal/render"
	"shoplist-csv/internal/runner"
	"shoplist-csv/pkg/logger"
)

// exitError carries a status through cobra without printing anything more.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shoplist-csv",
		Short: "Shopping list to CSV",
		Long: `Shopping list to CSV

Fetches a printable shopping list page and saves its items to a CSV file.`,
		Example: `  shoplist-csv -u 'URL' -c 'file.csv' -d 'dest_dir' -t -s 'STYLE'

  run with URL, writing results into dest_dir/<title>_file_<timestamp>.csv
  and printing them as a table.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	config.RegisterFlags(cmd.Flags())
	cmd.Flags().Lookup(config.KeyStyle).Usage += " (" + strings.Join(render.ThemeNames(), ", ") + ")"
	return cmd
}

func run(ctx context.Context, opts config.Options, stdout, stderr io.Writer) error {
	if opts.DebugStyles {
		render.DebugStyles(stdout)
		return nil
	}
	if opts.URL == "" {
		fmt.Fprintln(stderr, "Error: URL to parse not found")
		return nil
	}

	log := logger.New(opts.Verbose)
	defer log.Sync()

	client := crawler.NewHTTPClient(opts.HTTP, log)
	_, err := runner.New(client, log, stdout).Run(ctx, opts)

	outcome := runner.Classify(err)
	switch outcome {
	case runner.OutcomeOK, runner.OutcomeCancelled:
	case runner.OutcomeNoData:
		log.Infof("No valid data to parse, exiting ...")
	case runner.OutcomeTransport, runner.OutcomeFilesystem:
		log.Errorf("%v", err)
	default:
		log.Errorf("ERROR: %#v", err)
		return fmt.Errorf("run failed: %w", err)
	}
	if code := outcome.ExitCode(); code != 0 {
		return exitError{code: code}
	}
	return nil
}

func execute(ctx context.Context, args []string) int {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}

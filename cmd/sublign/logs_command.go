package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sublign/internal/logging"
	"sublign/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent lines from the run log",
		Long: `Print the tail of the shared run log that every sync run appends to.

With --follow the command keeps polling the file and prints new lines as
they are written, which is useful while a long sync run is in progress.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logPath := logging.RunLogPath(cfg)
			if logPath == "" {
				return errors.New("no log directory configured; set paths.log_dir")
			}

			offset := int64(-1)
			limit := lines
			if limit < 0 {
				limit = 0
			}
			if limit == 0 {
				// Zero means the whole file, so read forward from the start.
				offset = 0
			}

			printed := false
			for {
				result, err := logs.Tail(cmd.Context(), logPath, logs.TailOptions{
					Offset: offset,
					Limit:  limit,
					Follow: follow,
					Wait:   time.Second,
				})
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return fmt.Errorf("tail run log: %w", err)
				}
				for _, line := range result.Lines {
					fmt.Fprintln(cmd.OutOrStdout(), line)
					printed = true
				}
				offset = result.Offset
				limit = 0
				if !follow {
					if !printed {
						fmt.Fprintln(cmd.OutOrStdout(), "No log entries yet")
					}
					return nil
				}
				select {
				case <-cmd.Context().Done():
					return nil
				default:
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow log output")
	cmd.Flags().IntVarP(&lines, "lines", "n", 40, "Number of lines to show (0 for all)")
	return cmd
}

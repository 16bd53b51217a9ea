package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sublign/internal/config"
	"sublign/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past sync decisions",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int
	var subtitleFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sync decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			var records []history.Record
			if subtitle := strings.TrimSpace(subtitleFlag); subtitle != "" {
				expanded, pathErr := config.ExpandPath(subtitle)
				if pathErr != nil {
					return pathErr
				}
				records, err = store.ForSubtitle(cmd.Context(), expanded)
			} else {
				records, err = store.Recent(cmd.Context(), limitFlag)
			}
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sync history yet")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "When", "Subtitle", "Offset", "Loss", "Result"},
				buildHistoryRows(records),
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum records to display")
	cmd.Flags().StringVar(&subtitleFlag, "subtitle", "", "Show every decision for one subtitle path")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all sync history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d history records\n", removed)
			return nil
		},
	}
}

func buildHistoryRows(records []history.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		result := "rejected"
		if record.Accepted {
			result = "shifted"
		}
		rows = append(rows, []string{
			strconv.FormatInt(record.ID, 10),
			record.CreatedAt.Format(time.RFC3339),
			filepath.Base(record.SubtitlePath),
			fmt.Sprintf("%+.3fs", record.OffsetSeconds),
			fmt.Sprintf("%.4f", record.BestLoss),
			result,
		})
	}
	return rows
}

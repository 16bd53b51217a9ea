package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sublign/internal/config"
	"sublign/internal/deps"
	"sublign/internal/history"
	"sublign/internal/logging"
	"sublign/internal/notify"
	"sublign/internal/predict"
	"sublign/internal/syncer"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var marginFlag float64
	var unsafeFlag bool
	var plotFlag bool
	var backupFlag bool
	var modelFlag string
	var noHistoryFlag bool

	cmd := &cobra.Command{
		Use:   "sync [path...]",
		Short: "Shift sidecar subtitles onto the speech in their media files",
		Long: `Sync discovers media under the given paths (default: the current
directory), pairs each file with the .srt subtitles that share its name,
and searches for the constant shift that best lines the cues up with
detected speech. Confident shifts rewrite the subtitle in place; anything
the confidence gate rejects is left untouched.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applySyncFlags(cmd, cfg, marginFlag, unsafeFlag, plotFlag, backupFlag, modelFlag)

			if len(args) == 0 {
				args = []string{"."}
			}
			targets := make([]string, 0, len(args))
			for _, arg := range args {
				target, err := config.ExpandPath(arg)
				if err != nil {
					return err
				}
				targets = append(targets, target)
			}

			predictor, err := predict.LoadModel(cfg.Sync.ModelPath, cfg.Sync.ONNXRuntimeLibrary)
			if err != nil {
				return err
			}
			defer predictor.Close()

			statuses := deps.CheckBinaries(deps.Required(cfg.FFmpegBinary(), cfg.FFprobeBinary()))
			statuses = append(statuses, deps.CheckWorkDir(cfg.Paths.WorkDir))
			if missing := deps.FirstMissing(statuses); missing != nil {
				return fmt.Errorf("%s unavailable: %s (run 'sublign deps' for details)", missing.Name, missing.Detail)
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			var store *history.Store
			if !noHistoryFlag {
				store, err = history.Open(cfg)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			summary, err := syncer.New(cfg, logger, predictor, store, notify.NewService(cfg)).Run(cmd.Context(), targets...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(summary.Results) == 0 {
				fmt.Fprintln(out, "No subtitles found next to the discovered media")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Subtitle", "Offset", "Status"},
				buildSyncRows(summary),
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "Shifted %d of %d subtitles (%d left alone, %d failed) in %s\n",
				summary.Shifted, summary.Subtitles, summary.Unchanged, summary.Failed,
				summary.Duration.Round(time.Millisecond))
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d subtitles failed", summary.Failed, summary.Subtitles)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&marginFlag, "margin", 0, "Maximum shift to search in seconds (overrides config)")
	cmd.Flags().BoolVar(&unsafeFlag, "unsafe", false, "Apply the best shift even when the confidence gate rejects it")
	cmd.Flags().BoolVar(&plotFlag, "plot", false, "Write a loss curve PNG next to each subtitle")
	cmd.Flags().BoolVar(&backupFlag, "backup", false, "Keep a .bak copy of each rewritten subtitle")
	cmd.Flags().StringVar(&modelFlag, "model", "", "Speech model path (overrides config)")
	cmd.Flags().BoolVar(&noHistoryFlag, "no-history", false, "Skip recording decisions in the history database")
	return cmd
}

func applySyncFlags(cmd *cobra.Command, cfg *config.Config, margin float64, unsafeMode, plot, backup bool, model string) {
	if cmd.Flags().Changed("margin") && margin > 0 {
		cfg.Sync.MarginSeconds = margin
	}
	if unsafeMode {
		cfg.Sync.Safe = false
	}
	if plot {
		cfg.Sync.Plot = true
	}
	if backup {
		cfg.Sync.Backup = true
	}
	if model = strings.TrimSpace(model); model != "" {
		cfg.Sync.ModelPath = model
	}
}

func buildSyncRows(summary *syncer.Summary) [][]string {
	rows := make([][]string, 0, len(summary.Results))
	for _, result := range summary.Results {
		offset := fmt.Sprintf("%+.3fs", result.OffsetSeconds)
		status := "left alone"
		switch {
		case result.Err != nil:
			offset = "-"
			status = "failed: " + result.Err.Error()
		case result.Decision.Accepted:
			status = "shifted"
		}
		rows = append(rows, []string{filepath.Base(result.SubtitlePath), offset, status})
	}
	return rows
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sublign/internal/config"
	"sublign/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external tools and the speech model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			statuses := deps.CheckBinaries(deps.Required(cfg.FFmpegBinary(), cfg.FFprobeBinary()))
			statuses = append(statuses, deps.CheckWorkDir(cfg.Paths.WorkDir))
			for _, status := range statuses {
				kind := statusOK
				message := status.Description
				if !status.Available {
					kind = statusError
					message = status.Detail
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
			}

			modelKind, modelMessage := modelStatus(cfg)
			fmt.Fprintln(out, renderStatusLine("Speech model", modelKind, modelMessage, colorize))

			if missing := deps.FirstMissing(statuses); missing != nil {
				return fmt.Errorf("%s unavailable", missing.Name)
			}
			return nil
		},
	}
}

func modelStatus(cfg *config.Config) (statusKind, string) {
	path := strings.TrimSpace(cfg.Sync.ModelPath)
	if path == "" {
		return statusWarn, "sync.model_path is not configured"
	}
	if _, err := os.Stat(path); err != nil {
		return statusError, fmt.Sprintf("model %q not found", path)
	}
	return statusOK, path
}

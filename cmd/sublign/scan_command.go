package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"sublign/internal/config"
	"sublign/internal/media"
)

func newScanCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "scan [path]",
		Short:       "List media files and the sidecar subtitles they pair with",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			target, err := config.ExpandPath(target)
			if err != nil {
				return err
			}

			items, err := media.Discover(target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No supported media found")
				return nil
			}

			rows := make([][]string, 0, len(items))
			subtitleCount := 0
			for _, item := range items {
				subtitles, err := item.Subtitles()
				if err != nil {
					return err
				}
				if len(subtitles) == 0 {
					rows = append(rows, []string{filepath.Base(item.Path), "(none)"})
					continue
				}
				for _, subtitlePath := range subtitles {
					rows = append(rows, []string{filepath.Base(item.Path), filepath.Base(subtitlePath)})
					subtitleCount++
				}
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Media", "Subtitle"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d media files, %d subtitles\n", len(items), subtitleCount)
			return nil
		},
	}
}

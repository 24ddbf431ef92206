package main

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/taigrr/swraster/pkg/scene"
)

func newBatchCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "batch config.toml...",
		Short: "Render several configs concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := scene.Batch(cmd.Context(), args, jobs, slog.Default())

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", r.Path, r.Err)
					continue
				}
				fmt.Fprintf(out, "ok   %s -> %s (%v)\n", r.Path, r.Result.Output, r.Result.Total())
			}
			if err != nil {
				return fmt.Errorf("%d of %d renders failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "renders to run at once")
	return cmd
}

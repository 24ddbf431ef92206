// swraster - software rasterizer
// Renders OBJ and glTF meshes to BMP, PNG, WebP or TGA without a GPU.
//
// Usage:
//
//	swraster render mesh.obj -o out.bmp --scale 0.5,0.5,0.5
//	swraster render --config scene.toml --watch
//	swraster batch a.toml b.toml --jobs 4
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "swraster",
		Short: "Software 3D rasterizer",
		Long: `swraster rasterizes triangle and quad meshes on the CPU.

Meshes are flat shaded from +Z, or drawn as wireframes, and written as
24-bit images. Settings come from a TOML file, flags override it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newRenderCmd(), newBatchCmd())
	return root
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cascii/internal/ipc"
	"cascii/internal/transcoder"
)

func newFFmpegCommand(ctx *commandContext) *cobra.Command {
	ffmpegCmd := &cobra.Command{
		Use:   "ffmpeg",
		Short: "Transcoder binary diagnostics",
	}

	ffmpegCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Probe ffmpeg/ffprobe availability via the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				system, err := client.CheckSystemFFmpeg()
				if err != nil {
					return err
				}
				sidecar, err := client.CheckSidecarFFmpeg()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "System ffmpeg:  %s\n", yesNo(system.Available))
				fmt.Fprintf(out, "Sidecar ffmpeg: %s\n", yesNo(sidecar.Available))
				return nil
			})
		},
	})

	ffmpegCmd.AddCommand(&cobra.Command{
		Use:         "which",
		Short:       "Resolve the binary pair locally without the daemon",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var sidecarDir string
			if cfg, err := ctx.ensureConfig(); err == nil && cfg != nil {
				sidecarDir = cfg.Paths.SidecarDir
			}
			binaries, err := transcoder.Resolve(cmd.Context(), transcoder.SourceSystem, sidecarDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ffmpeg:  %s\n", binaries.FFmpeg)
			fmt.Fprintf(out, "ffprobe: %s\n", binaries.FFprobe)
			fmt.Fprintf(out, "source:  %s\n", binaries.Source)
			return nil
		},
	})

	return ffmpegCmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cascii/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Running:        %s\n", yesNo(status.Running))
				fmt.Fprintf(out, "PID:            %d\n", status.PID)
				fmt.Fprintf(out, "Database:       %s\n", status.DatabasePath)
				fmt.Fprintf(out, "Settings:       %s\n", status.SettingsPath)
				fmt.Fprintf(out, "System ffmpeg:  %s\n", yesNo(status.SystemFFmpeg))
				fmt.Fprintf(out, "Sidecar ffmpeg: %s\n", yesNo(status.SidecarFFmpeg))
				return nil
			})
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cascii/internal/ipc"
)

func newEventsCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var afterSeq uint64
	var waitMillis int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail the daemon event stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				out := cmd.OutOrStdout()
				cursor := afterSeq
				for {
					wait := 0
					if follow {
						wait = waitMillis
					}
					tail, err := client.EventTail(cursor, wait)
					if err != nil {
						return err
					}
					for _, event := range tail.Events {
						fmt.Fprintf(out, "%d %s %s %s\n",
							event.Seq,
							event.Time.Local().Format("15:04:05.000"),
							event.Channel,
							string(event.Payload),
						)
					}
					cursor = tail.NextSeq
					if !follow {
						return nil
					}
					select {
					case <-cmd.Context().Done():
						return cmd.Context().Err()
					default:
					}
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep polling for new events")
	cmd.Flags().Uint64Var(&afterSeq, "after", 0, "Start after this sequence number")
	cmd.Flags().IntVar(&waitMillis, "wait", 5000, "Poll wait per request in milliseconds")
	return cmd
}

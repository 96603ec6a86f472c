package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cascii/internal/ipc"
	"cascii/internal/settings"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change user settings",
	}

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current settings document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				loaded, err := client.LoadSettings()
				if err != nil {
					return err
				}
				doc := loaded.Settings
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "output_directory:      %s\n", doc.OutputDirectory)
				fmt.Fprintf(out, "default_behavior:      %s\n", doc.DefaultBehavior)
				fmt.Fprintf(out, "delete_mode:           %s\n", doc.DeleteMode)
				fmt.Fprintf(out, "debug_logs:            %s\n", yesNo(doc.DebugLogs))
				fmt.Fprintf(out, "loop_enabled:          %s\n", yesNo(doc.LoopEnabled))
				fmt.Fprintf(out, "color_frames_default:  %s\n", yesNo(doc.ColorFramesDefault))
				fmt.Fprintf(out, "extract_audio_default: %s\n", yesNo(doc.ExtractAudioDefault))
				fmt.Fprintf(out, "ffmpeg_source:         %s\n", doc.FFmpegSource)
				return nil
			})
		},
	})

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting and persist the document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				loaded, err := client.LoadSettings()
				if err != nil {
					return err
				}
				doc := loaded.Settings
				if err := applySetting(&doc, args[0], args[1]); err != nil {
					return err
				}
				if _, err := client.SaveSettings(doc); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
				return nil
			})
		},
	})

	return settingsCmd
}

func applySetting(doc *settings.Settings, key, value string) error {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "output_directory":
		doc.OutputDirectory = value
	case "default_behavior":
		doc.DefaultBehavior = settings.Behavior(value)
	case "delete_mode":
		doc.DeleteMode = settings.DeleteMode(value)
	case "debug_logs":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parse %q as bool: %w", value, err)
		}
		doc.DebugLogs = parsed
	case "loop_enabled":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parse %q as bool: %w", value, err)
		}
		doc.LoopEnabled = parsed
	case "color_frames_default":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parse %q as bool: %w", value, err)
		}
		doc.ColorFramesDefault = parsed
	case "extract_audio_default":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parse %q as bool: %w", value, err)
		}
		doc.ExtractAudioDefault = parsed
	case "ffmpeg_source":
		doc.FFmpegSource = settings.FFmpegSource(value)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

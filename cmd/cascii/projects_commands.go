package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"cascii/internal/ipc"
)

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect and manage projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProjects(ctx, cmd)
		},
	}

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "show <project-id>",
		Short: "Show one project and its artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProject(ctx, cmd, args[0])
		},
	})

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "rename <project-id> <name>",
		Short: "Change a project's display name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.RenameProject(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed project %s to %q\n", args[0], args[1])
				return nil
			})
		},
	})

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project, its records, and its folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.DeleteProject(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
				return nil
			})
		},
	})

	return projectsCmd
}

func listProjects(ctx *commandContext, cmd *cobra.Command) error {
	return ctx.withClient(func(client *ipc.Client) error {
		listed, err := client.ListProjects()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(listed.Projects) == 0 {
			fmt.Fprintln(out, "No projects")
			return nil
		}

		rows := make([][]string, 0, len(listed.Projects))
		for _, project := range listed.Projects {
			rows = append(rows, []string{
				project.ID,
				project.Name,
				string(project.Type),
				strconv.Itoa(project.Frames),
				formatBytes(project.Size),
				project.LastModified.Local().Format(time.DateTime),
			})
		}
		headers := []string{"ID", "Name", "Type", "Frames", "Size", "Modified"}
		if stdoutIsTerminal() {
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		}
		fmt.Fprintln(out, strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Fprintln(out, strings.Join(row, "\t"))
		}
		return nil
	})
}

func showProject(ctx *commandContext, cmd *cobra.Command, id string) error {
	return ctx.withClient(func(client *ipc.Client) error {
		project, err := client.GetProject(id)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Project:  %s (%s)\n", project.Project.Name, project.Project.ID)
		fmt.Fprintf(out, "Type:     %s\n", project.Project.Type)
		fmt.Fprintf(out, "Folder:   %s\n", project.Project.Path)
		fmt.Fprintf(out, "Frames:   %d\n", project.Project.Frames)
		fmt.Fprintf(out, "Size:     %s\n", formatBytes(project.Project.Size))

		sources, err := client.ProjectSources(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nSources (%d):\n", len(sources.Sources))
		for _, source := range sources.Sources {
			name := source.CustomName
			if name == "" {
				name = source.FilePath
			}
			fmt.Fprintf(out, "  %s  %s  %s\n", source.ID, source.ContentType, name)
		}

		conversions, err := client.ProjectConversions(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nConversions (%d):\n", len(conversions.Conversions))
		for _, conversion := range conversions.Conversions {
			fmt.Fprintf(out, "  %s  %4d frames  %s\n", conversion.ID, conversion.FrameCount, conversion.FolderName)
		}

		cuts, err := client.ProjectCuts(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nCuts (%d):\n", len(cuts.Cuts))
		for _, cut := range cuts.Cuts {
			fmt.Fprintf(out, "  %s  %.3fs-%.3fs  %s\n", cut.ID, cut.Start, cut.End, cut.FilePath)
		}

		extractions, err := client.ProjectAudioExtractions(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nAudio extractions (%d):\n", len(extractions.Extractions))
		for _, extraction := range extractions.Extractions {
			fmt.Fprintf(out, "  %s  %s\n", extraction.ID, extraction.FolderName)
		}
		return nil
	})
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "List raw workspace entries",
	Long:  `List the physical workspace storage entries on disk, before any attribution.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}

		entries, err := engine.ListWorkspaceEntries()
		if err != nil {
			return fmt.Errorf("failed to list workspaces: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println(headerStyle.Render("No workspaces found"))
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d workspace(s)", len(entries))))
		fmt.Println()

		w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Folder")+"\t"+titleStyle.Render("Last Modified")+"\t")
		_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

		for _, entry := range entries {
			folder := entry.FolderPath
			if folder == "" {
				folder = "—"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n",
				idStyle.Render(entry.ID),
				projectStyle.Render(folder),
				dateStyle.Render(entry.LastModified.Format("2006-01-02 15:04")))
		}

		_ = w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workspacesCmd)
}

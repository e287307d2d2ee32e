package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	Long:  `List all known projects with their conversation counts, sorted by recency.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}

		projects, err := engine.ListProjects()
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		if len(projects) == 0 {
			fmt.Println(headerStyle.Render("No projects found"))
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d project(s)", len(projects))))
		fmt.Println()

		w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, titleStyle.Render("Name")+"\t"+titleStyle.Render("Conversations")+"\t"+titleStyle.Render("Last Modified")+"\t"+titleStyle.Render("ID")+"\t")
		_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

		for _, project := range projects {
			count := countStyle.Render(strconv.Itoa(project.ConversationCount))
			modified := dateStyle.Render(project.LastModified.Format("2006-01-02 15:04"))
			id := idStyle.Render(project.ID)
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", projectStyle.Render(project.Name), count, modified, id)
		}

		_ = w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

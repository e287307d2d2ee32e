package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iksnae/cursor-threads/internal"
)

var listProjectID string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations",
	Long:  `List reconstructed conversations, newest first. Use --project to filter by project id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}

		conversations, err := engine.ListConversations(listProjectID)
		if err != nil {
			return fmt.Errorf("failed to list conversations: %w", err)
		}

		displayConversations(conversations)
		return nil
	},
}

func displayConversations(conversations []*internal.Conversation) {
	if len(conversations) == 0 {
		fmt.Println(headerStyle.Render("No conversations found"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d conversation(s)", len(conversations))))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Turns")+"\t"+titleStyle.Render("Updated")+"\t"+titleStyle.Render("Project")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 110))

	for _, conv := range conversations {
		title := conv.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}

		updated := dateStyle.Render("—")
		if conv.Timestamp > 0 {
			updated = dateStyle.Render(formatRelativeDate(time.UnixMilli(conv.Timestamp)))
		}

		project := dateStyle.Render("—")
		if conv.ProjectID != "" {
			project = projectStyle.Render(shortenID(conv.ProjectID))
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			idStyle.Render(shortenID(conv.ID)),
			title,
			countStyle.Render(strconv.Itoa(len(conv.Turns))),
			updated,
			project)
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("Tip: use the full ID with `cursor-threads show <id>`"))
}

func formatRelativeDate(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func shortenID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listProjectID, "project", "", "Only list conversations attributed to this project id")
}

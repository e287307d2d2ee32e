package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iksnae/cursor-threads/internal"
)

var showCmd = &cobra.Command{
	Use:   "show <conversation-id>",
	Short: "Show one conversation",
	Long:  `Show a reconstructed conversation with all its turns in timeline order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}

		conv, err := engine.GetConversation(args[0])
		if err != nil {
			if internal.IsNotFound(err) {
				return fmt.Errorf("no conversation with id %s", args[0])
			}
			return fmt.Errorf("failed to load conversation: %w", err)
		}

		fmt.Println(headerStyle.Render(conv.Title))
		fmt.Println(idStyle.Render(fmt.Sprintf("id: %s  source: %s  turns: %d", conv.ID, conv.Source, len(conv.Turns))))
		if conv.ProjectID != "" {
			fmt.Println(projectStyle.Render("project: " + conv.ProjectID))
		}
		fmt.Println()

		for _, turn := range conv.Turns {
			style := assistantStyle
			if turn.Role == "user" {
				style = userStyle
			}

			label := turn.Role
			if turn.Timestamp > 0 {
				label += " " + time.UnixMilli(turn.Timestamp).Format("2006-01-02 15:04:05")
			}
			fmt.Println(style.Render(label))
			fmt.Println(turn.Text)
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

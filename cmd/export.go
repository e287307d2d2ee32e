package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iksnae/cursor-threads/internal"
	"github.com/iksnae/cursor-threads/internal/export"
)

var (
	exportFormat    string
	exportOutput    string
	exportProjectID string
)

var exportCmd = &cobra.Command{
	Use:   "export [conversation-id...]",
	Short: "Export conversations to files",
	Long: `Export reconstructed conversations, one file per conversation.

Without arguments every conversation is exported; pass conversation ids to
export a subset, or --project to export one project's conversations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		var conversations []*internal.Conversation
		if len(args) > 0 {
			for _, id := range args {
				conv, err := engine.GetConversation(id)
				if err != nil {
					if internal.IsNotFound(err) {
						return fmt.Errorf("no conversation with id %s", id)
					}
					return err
				}
				conversations = append(conversations, conv)
			}
		} else {
			conversations, err = engine.ListConversations(exportProjectID)
			if err != nil {
				return fmt.Errorf("failed to list conversations: %w", err)
			}
		}

		if len(conversations) == 0 {
			fmt.Println(headerStyle.Render("Nothing to export"))
			return nil
		}

		if err := os.MkdirAll(exportOutput, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		exported := 0
		for _, conv := range conversations {
			path := filepath.Join(exportOutput, fmt.Sprintf("%s.%s", conv.ID, exporter.Extension()))
			if err := writeConversation(exporter, conv, path); err != nil {
				internal.LogWarn("failed to export %s: %v", conv.ID, err)
				continue
			}
			exported++
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Exported %d conversation(s) to %s", exported, exportOutput)))
		return nil
	},
}

func writeConversation(exporter export.Exporter, conv *internal.Conversation, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return exporter.Export(conv, f)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format (md, json, jsonl, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "./cursor-threads-export", "Output directory")
	exportCmd.Flags().StringVar(&exportProjectID, "project", "", "Only export conversations attributed to this project id")
}

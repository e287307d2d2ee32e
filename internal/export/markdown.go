package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/cursor-threads/internal"
)

// MarkdownExporter exports conversations in Markdown format
type MarkdownExporter struct{}

// Export exports a conversation to Markdown format
func (e *MarkdownExporter) Export(conv *internal.Conversation, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", conv.Title)

	_, _ = fmt.Fprintf(w, "**ID:** %s  \n", conv.ID)
	if conv.ProjectID != "" {
		_, _ = fmt.Fprintf(w, "**Project:** %s  \n", conv.ProjectID)
	}
	_, _ = fmt.Fprintf(w, "**Source:** %s  \n", conv.Source)
	_, _ = fmt.Fprintf(w, "**Turns:** %d\n\n", len(conv.Turns))

	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, turn := range conv.Turns {
		timestamp := ""
		if turn.Timestamp > 0 {
			timestamp = fmt.Sprintf(" (%s)", time.UnixMilli(turn.Timestamp).Format(time.RFC3339))
		}

		content := escapeMarkdown(turn.Text)
		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", turn.Role, timestamp, content)

		if i < len(conv.Turns)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes emphasis markers outside code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}

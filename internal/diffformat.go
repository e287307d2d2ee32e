package internal

import (
	"fmt"
	"strings"
)

// FormatDiffEvent renders a diff/tool-action payload as text. The twelve
// optional sections are checked in a fixed order so identical payloads always
// yield byte-identical output. An event with no populated section yields "".
func FormatDiffEvent(diff *CodeDiffEvent) string {
	var sections []string

	if len(diff.CodeChanges) > 0 {
		var b strings.Builder
		b.WriteString("Code changes:")
		for _, change := range diff.CodeChanges {
			b.WriteString("\n")
			if change.FilePath != "" {
				b.WriteString(change.FilePath + "\n")
			}
			fmt.Fprintf(&b, "```%s\n%s\n```", change.Language, change.Content)
		}
		sections = append(sections, b.String())
	}

	if diff.FilePath != "" {
		sections = append(sections, "File: "+diff.FilePath)
	}

	if diff.Command != "" {
		sections = append(sections, fmt.Sprintf("Command:\n```\n%s\n```", diff.Command))
	}

	if diff.CommandOutput != "" {
		sections = append(sections, fmt.Sprintf("Output:\n```\n%s\n```", diff.CommandOutput))
	}

	if len(diff.SearchResults) > 0 {
		var b strings.Builder
		b.WriteString("Search results:")
		for _, result := range diff.SearchResults {
			if result.Line > 0 {
				fmt.Fprintf(&b, "\n- %s:%d", result.File, result.Line)
			} else {
				fmt.Fprintf(&b, "\n- %s", result.File)
			}
			if result.Snippet != "" {
				b.WriteString(" " + result.Snippet)
			}
		}
		sections = append(sections, b.String())
	}

	if len(diff.WebResults) > 0 {
		sections = append(sections, formatWebResults("Web results:", diff.WebResults))
	}

	if diff.Tool != nil && diff.Tool.Name != "" {
		var b strings.Builder
		b.WriteString("Tool: " + diff.Tool.Name)
		if len(diff.Tool.Parameters) > 0 {
			fmt.Fprintf(&b, "\nParameters: %s", string(diff.Tool.Parameters))
		}
		if diff.Tool.Result != "" {
			fmt.Fprintf(&b, "\nResult:\n```\n%s\n```", diff.Tool.Result)
		}
		sections = append(sections, b.String())
	}

	if len(diff.ActionsTaken) > 0 {
		sections = append(sections, "Actions taken:"+formatList(diff.ActionsTaken))
	}

	if len(diff.FilesModified) > 0 {
		sections = append(sections, "Files modified:"+formatList(diff.FilesModified))
	}

	if diff.GitStatus != "" {
		sections = append(sections, fmt.Sprintf("Git status:\n```\n%s\n```", diff.GitStatus))
	}

	if len(diff.DirectoryListing) > 0 {
		sections = append(sections, "Directory listing:"+formatList(diff.DirectoryListing))
	}

	if len(diff.WebSearchResults) > 0 {
		sections = append(sections, formatWebResults("Web search results:", diff.WebSearchResults))
	}

	return strings.Join(sections, "\n\n")
}

func formatList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString("\n- " + item)
	}
	return b.String()
}

func formatWebResults(heading string, results []WebResult) string {
	var b strings.Builder
	b.WriteString(heading)
	for _, result := range results {
		if result.Title != "" {
			fmt.Fprintf(&b, "\n- %s (%s)", result.Title, result.URL)
		} else {
			fmt.Fprintf(&b, "\n- %s", result.URL)
		}
	}
	return b.String()
}

package internal

import (
	"fmt"
	"strings"
)

// ExtractBubbleText produces the display text for a bubble:
//  1. the direct text field when non-empty,
//  2. otherwise the flattened richText tree,
//  3. then any attached code blocks appended as fenced sections regardless
//     of which branch produced the base text.
//
// Extraction is total: a bubble with no extractable content yields "".
func ExtractBubbleText(bubble *RawBubble) string {
	var parts []string

	if bubble.Text != "" {
		parts = append(parts, bubble.Text)
	} else if bubble.RichText != "" {
		flat, err := FlattenRichText(bubble.RichText)
		if err != nil {
			LogDebug("failed to flatten richText for bubble %s: %v", bubble.BubbleID, err)
		} else if flat != "" {
			parts = append(parts, flat)
		}
	}

	for _, block := range bubble.CodeBlocks {
		if block.Content == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("```%s\n%s\n```", block.Language, block.Content))
	}

	return strings.Join(parts, "\n\n")
}

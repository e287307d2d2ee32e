package internal

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RichTextNode is one node of the nested rich-text tree stored alongside
// plain bubble text
type RichTextNode struct {
	Type     string         `json:"type"`
	Text     string         `json:"text,omitempty"`
	Children []RichTextNode `json:"children,omitempty"`
}

// richTextRoot wraps the common {"root": {...}} envelope
type richTextRoot struct {
	Root RichTextNode `json:"root"`
}

// FlattenRichText parses a richText JSON payload and flattens it depth-first:
// leaf text nodes are concatenated, "code"-typed nodes are wrapped in fenced
// blocks. An empty payload yields an empty string, not an error.
func FlattenRichText(richTextJSON string) (string, error) {
	if richTextJSON == "" {
		return "", nil
	}

	// Most payloads carry a {"root": {...}} envelope.
	var envelope richTextRoot
	if err := json.Unmarshal([]byte(richTextJSON), &envelope); err == nil {
		if text := flattenNode(envelope.Root); text != "" {
			return text, nil
		}
	}

	// Bare node.
	var node RichTextNode
	if err := json.Unmarshal([]byte(richTextJSON), &node); err == nil {
		if text := flattenNode(node); text != "" {
			return text, nil
		}
		return "", nil
	}

	// Bare node array.
	var nodes []RichTextNode
	if err := json.Unmarshal([]byte(richTextJSON), &nodes); err == nil {
		return flattenChildren(nodes), nil
	}

	return "", fmt.Errorf("unrecognized richText payload")
}

func flattenNode(node RichTextNode) string {
	switch node.Type {
	case "text":
		return node.Text
	case "code":
		code := flattenChildren(node.Children)
		if code == "" {
			return ""
		}
		return "\n```\n" + code + "\n```\n"
	default:
		var b strings.Builder
		if node.Text != "" {
			b.WriteString(node.Text)
		}
		b.WriteString(flattenChildren(node.Children))
		return b.String()
	}
}

func flattenChildren(children []RichTextNode) string {
	var b strings.Builder
	for _, child := range children {
		b.WriteString(flattenNode(child))
	}
	return b.String()
}

package internal

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Conversation is an assembled, ordered thread of turns
type Conversation struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ProjectID string `json:"projectId,omitempty"` // empty = unattributed
	Source    string `json:"source"`              // "global" or "workspace"
	CreatedAt int64  `json:"createdAt,omitempty"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
	Timestamp int64  `json:"timestamp"` // resolved display timestamp, ms
	Turns     []Turn `json:"turns"`
}

// Turn is one displayed message after merging all contributing sections
type Turn struct {
	Role      string `json:"role"` // "user" or "assistant"
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// Provenance tags for merged conversations
const (
	SourceGlobal    = "global"
	SourceWorkspace = "workspace"
)

const (
	diffTurnLabel = "[Code Diff]"
	maxTitleLen   = 100
)

// Assembler merges headers, bubbles, diff events and context annotations
// into conversations. All indices are built before assembly and never
// mutated by it.
type Assembler struct {
	bubbles  map[string]*RawBubble
	diffs    map[string][]*CodeDiffEvent
	contexts map[string][]*MessageContext // keyed by conversation id
	now      func() time.Time
}

// NewAssembler creates an Assembler over prebuilt indices
func NewAssembler(bubbles map[string]*RawBubble, diffs map[string][]*CodeDiffEvent, contexts map[string][]*MessageContext) *Assembler {
	return &Assembler{
		bubbles:  bubbles,
		diffs:    diffs,
		contexts: contexts,
		now:      time.Now,
	}
}

// Assemble builds one conversation from its header record. Orphan headers
// (no matching bubble) are skipped, turns that end up empty after all
// merging are excluded entirely, and the final sequence is stable-sorted by
// timestamp ascending.
func (a *Assembler) Assemble(composer *RawComposer) *Conversation {
	conv := &Conversation{
		ID:        composer.ComposerID,
		Source:    SourceGlobal,
		CreatedAt: composer.CreatedAt,
		UpdatedAt: composer.LastUpdatedAt,
	}

	contextsByBubble := make(map[string][]*MessageContext)
	for _, ctx := range a.contexts[composer.ComposerID] {
		contextsByBubble[ctx.BubbleID] = append(contextsByBubble[ctx.BubbleID], ctx)
	}

	for _, header := range composer.Headers() {
		bubble, ok := a.bubbles[header.BubbleID]
		if !ok {
			LogDebug("conversation %s: orphan header %s", composer.ComposerID, header.BubbleID)
			continue
		}

		text := ExtractBubbleText(bubble)
		if sections := contextSections(contextsByBubble[header.BubbleID]); sections != "" {
			if text != "" {
				text += "\n\n" + sections
			} else {
				text = sections
			}
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		conv.Turns = append(conv.Turns, Turn{
			Role:      roleForType(header.Type),
			Text:      text,
			Timestamp: bubble.Timestamp,
		})
	}

	// Diff events become synthetic assistant turns. They are timestamped
	// "now" and appended after the headers, so the stable sort keeps them
	// last among equal timestamps.
	nowMilli := a.now().UnixMilli()
	for _, diff := range a.diffs[composer.ComposerID] {
		formatted := FormatDiffEvent(diff)
		if strings.TrimSpace(formatted) == "" {
			continue
		}
		conv.Turns = append(conv.Turns, Turn{
			Role:      "assistant",
			Text:      diffTurnLabel + "\n\n" + formatted,
			Timestamp: nowMilli,
		})
	}

	sort.SliceStable(conv.Turns, func(i, j int) bool {
		return conv.Turns[i].Timestamp < conv.Turns[j].Timestamp
	})

	conv.Title = resolveTitle(composer.Name, conv.Turns, composer.ComposerID)
	conv.Timestamp = resolveTimestamp(composer.LastUpdatedAt, composer.CreatedAt, nowMilli)

	return conv
}

// AssembleAll assembles every conversation header, resolving project
// attribution through the given resolver
func (a *Assembler) AssembleAll(composers []*RawComposer, resolver *Resolver) []*Conversation {
	conversations := make([]*Conversation, 0, len(composers))
	for _, composer := range composers {
		conv := a.Assemble(composer)
		conv.ProjectID = resolver.Resolve(composer, a.contexts[composer.ComposerID], a.bubbles)
		if conv.ProjectID == "" {
			LogDebug("conversation %s: unattributed", conv.ID)
		}
		conversations = append(conversations, conv)
	}
	return conversations
}

// contextSections renders the context annotations for one bubble. Per
// context the sections appear in a fixed order: git status, terminal files,
// attached folders with their files, rules, related conversations.
func contextSections(contexts []*MessageContext) string {
	var sections []string

	for _, ctx := range contexts {
		if ctx.GitStatus != "" {
			sections = append(sections, fmt.Sprintf("Git status:\n```\n%s\n```", ctx.GitStatus))
		}
		if len(ctx.TerminalFiles) > 0 {
			sections = append(sections, "Terminal files:"+formatList(ctx.TerminalFiles))
		}
		for _, folder := range ctx.AttachedFolders {
			var b strings.Builder
			b.WriteString("Attached folder")
			if folder.RelativePath != "" {
				b.WriteString(" " + folder.RelativePath)
			}
			b.WriteString(":")
			b.WriteString(formatList(folder.Files))
			sections = append(sections, b.String())
		}
		if len(ctx.Rules) > 0 {
			var b strings.Builder
			b.WriteString("Rules:")
			for _, rule := range ctx.Rules {
				b.WriteString("\n- " + rule.Name)
				if rule.Description != "" {
					b.WriteString(": " + rule.Description)
				}
			}
			sections = append(sections, b.String())
		}
		if len(ctx.RelatedConversations) > 0 {
			var b strings.Builder
			b.WriteString("Related conversations:")
			for _, related := range ctx.RelatedConversations {
				b.WriteString("\n- " + related.Name)
				if related.Summary != "" {
					b.WriteString(": " + related.Summary)
				}
			}
			sections = append(sections, b.String())
		}
	}

	return strings.Join(sections, "\n\n")
}

func roleForType(headerType int) string {
	if headerType == 1 {
		return "user"
	}
	return "assistant"
}

// resolveTitle applies the title fallback chain: explicit name, first turn's
// first non-empty line hard-cut at maxTitleLen, placeholder from the id
func resolveTitle(name string, turns []Turn, id string) string {
	if name != "" {
		return name
	}

	for _, turn := range turns {
		line := firstNonEmptyLine(turn.Text)
		if line == "" {
			continue
		}
		if runes := []rune(line); len(runes) > maxTitleLen {
			return string(runes[:maxTitleLen]) + "..."
		}
		return line
	}

	return "Conversation " + shortID(id)
}

func firstNonEmptyLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func resolveTimestamp(updated, created, now int64) int64 {
	if updated > 0 {
		return updated
	}
	if created > 0 {
		return created
	}
	return now
}

package internal

import (
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.UnixMilli(1700000999000)
}

func newTestAssembler(bubbles map[string]*RawBubble, diffs map[string][]*CodeDiffEvent, contexts map[string][]*MessageContext) *Assembler {
	a := NewAssembler(bubbles, diffs, contexts)
	a.now = fixedNow
	return a
}

func TestAssembleBasicConversation(t *testing.T) {
	bubbles := map[string]*RawBubble{
		"b1": {BubbleID: "b1", Text: "Fix the bug", Timestamp: 1700000001000},
		"b2": {BubbleID: "b2", Text: "Done, the nil check was missing", Timestamp: 1700000002000},
	}
	composer := &RawComposer{
		ComposerID: "conv-1",
		FullConversationHeadersOnly: []ConversationHeader{
			{BubbleID: "b1", Type: 1},
			{BubbleID: "b2", Type: 2},
		},
		CreatedAt:     1700000000000,
		LastUpdatedAt: 1700000002000,
	}

	conv := newTestAssembler(bubbles, nil, nil).Assemble(composer)

	if conv.ID != "conv-1" {
		t.Errorf("ID = %q", conv.ID)
	}
	if conv.Source != SourceGlobal {
		t.Errorf("Source = %q, want %q", conv.Source, SourceGlobal)
	}
	if len(conv.Turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(conv.Turns))
	}
	if conv.Turns[0].Role != "user" || conv.Turns[0].Text != "Fix the bug" {
		t.Errorf("first turn = %+v", conv.Turns[0])
	}
	if conv.Turns[1].Role != "assistant" {
		t.Errorf("second turn role = %q", conv.Turns[1].Role)
	}
	if conv.Title != "Fix the bug" {
		t.Errorf("Title = %q, want first user line", conv.Title)
	}
	if conv.Timestamp != 1700000002000 {
		t.Errorf("Timestamp = %d, want lastUpdatedAt", conv.Timestamp)
	}
}

func TestAssembleExplicitNameWins(t *testing.T) {
	bubbles := map[string]*RawBubble{
		"b1": {BubbleID: "b1", Text: "hello", Timestamp: 1},
	}
	composer := &RawComposer{
		ComposerID:                  "conv-1",
		Name:                        "Refactor session",
		FullConversationHeadersOnly: []ConversationHeader{{BubbleID: "b1", Type: 1}},
	}

	conv := newTestAssembler(bubbles, nil, nil).Assemble(composer)
	if conv.Title != "Refactor session" {
		t.Errorf("Title = %q", conv.Title)
	}
}

func TestAssembleTitleFromFirstLine(t *testing.T) {
	bubbles := map[string]*RawBubble{
		"b1": {BubbleID: "b1", Text: "Fix the bug\nIt crashes on empty input", Timestamp: 1},
	}
	composer := &RawComposer{
		ComposerID:                  "conv-1",
		FullConversationHeadersOnly: []ConversationHeader{{BubbleID: "b1", Type: 1}},
	}

	conv := newTestAssembler(bubbles, nil, nil).Assemble(composer)
	if conv.Title != "Fix the bug" {
		t.Errorf("Title = %q, want first line only", conv.Title)
	}
}

func TestAssembleTitleTruncation(t *testing.T) {
	long := strings.Repeat("x", 150)
	bubbles := map[string]*RawBubble{
		"b1": {BubbleID: "b1", Text: long, Timestamp: 1},
	}
	composer := &RawComposer{
		ComposerID:                  "conv-1",
		FullConversationHeadersOnly: []ConversationHeader{{BubbleID: "b1", Type: 1}},
	}

	conv := newTestAssembler(bubbles, nil, nil).Assemble(composer)
	want := strings.Repeat("x", 100) + "..."
	if conv.Title != want {
		t.Errorf("Title length = %d, want 100-rune cut with ellipsis", len(conv.Title))
	}
}

func TestAssemblePlaceholderTitle(t *testing.T) {
	composer := &RawComposer{ComposerID: "abcdef1234567890"}
	conv := newTestAssembler(nil, nil, nil).Assemble(composer)
	if conv.Title != "Conversation abcdef12" {
		t.Errorf("Title = %q", conv.Title)
	}
}

func TestAssembleSkipsOrphanHeaders(t *testing.T) {
	bubbles := map[string]*RawBubble{
		"b2": {BubbleID: "b2", Text: "present", Timestamp: 2},
	}
	composer := &RawComposer{
		ComposerID: "conv-1",
		FullConversationHeadersOnly: []ConversationHeader{
			{BubbleID: "missing", Type: 1},
			{BubbleID: "b2", Type: 2},
		},
	}

	conv := newTestAssembler(bubbles, nil, nil).Assemble(composer)
	if len(conv.Turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(conv.Turns))
	}
	if conv.Turns[0].Text != "present" {
		t.Errorf("turn = %+v", conv.Turns[0])
	}
}

func TestAssembleDropsEmptyTurns(t *testing.T) {
	bubbles := map[string]*RawBubble{
		"b1": {BubbleID: "b1", Text: "   \n\t  ", Timestamp: 1},
		"b2": {BubbleID: "b2", Text: "real content", Timestamp: 2},
	}
	composer := &RawComposer{
		ComposerID: "conv-1",
		FullConversationHeadersOnly: []ConversationHeader{
			{BubbleID: "b1", Type: 1},
			{BubbleID: "b2", Type: 2},
		},
	}

	conv := newTestAssembler(bubbles, nil, nil).Assemble(composer)
	if len(conv.Turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(conv.Turns))
	}
}

func TestAssembleOrdersByTimestamp(t *testing.T) {
	// Headers list b2 first but b1 carries the earlier timestamp.
	bubbles := map[string]*RawBubble{
		"b1": {BubbleID: "b1", Text: "first", Timestamp: 1700000001000},
		"b2": {BubbleID: "b2", Text: "second", Timestamp: 1700000002000},
	}
	composer := &RawComposer{
		ComposerID: "conv-1",
		FullConversationHeadersOnly: []ConversationHeader{
			{BubbleID: "b2", Type: 2},
			{BubbleID: "b1", Type: 1},
		},
	}

	conv := newTestAssembler(bubbles, nil, nil).Assemble(composer)
	if len(conv.Turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(conv.Turns))
	}
	if conv.Turns[0].Text != "first" || conv.Turns[1].Text != "second" {
		t.Errorf("turns out of order: %q then %q", conv.Turns[0].Text, conv.Turns[1].Text)
	}
}

func TestAssembleDiffEventsBecomeAssistantTurns(t *testing.T) {
	bubbles := map[string]*RawBubble{
		"b1": {BubbleID: "b1", Text: "run it", Timestamp: 1700000001000},
	}
	diffs := map[string][]*CodeDiffEvent{
		"conv-1": {
			{ComposerID: "conv-1", Command: "make test"},
			{ComposerID: "conv-1"}, // empty event, no turn
		},
	}
	composer := &RawComposer{
		ComposerID:                  "conv-1",
		FullConversationHeadersOnly: []ConversationHeader{{BubbleID: "b1", Type: 1}},
	}

	conv := newTestAssembler(bubbles, diffs, nil).Assemble(composer)
	if len(conv.Turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(conv.Turns))
	}

	diffTurn := conv.Turns[1]
	if diffTurn.Role != "assistant" {
		t.Errorf("diff turn role = %q", diffTurn.Role)
	}
	if !strings.HasPrefix(diffTurn.Text, "[Code Diff]\n\n") {
		t.Errorf("diff turn text = %q", diffTurn.Text)
	}
	if diffTurn.Timestamp != fixedNow().UnixMilli() {
		t.Errorf("diff turn timestamp = %d", diffTurn.Timestamp)
	}
}

func TestAssembleContextSections(t *testing.T) {
	bubbles := map[string]*RawBubble{
		"b1": {BubbleID: "b1", Text: "what changed?", Timestamp: 1},
	}
	contexts := map[string][]*MessageContext{
		"conv-1": {
			{
				ComposerID:    "conv-1",
				BubbleID:      "b1",
				GitStatus:     "M main.go",
				TerminalFiles: []string{"build.log"},
				AttachedFolders: []AttachedFolder{
					{RelativePath: "pkg/api", Files: []string{"server.go"}},
				},
				Rules:                []RuleRef{{Name: "style", Description: "keep it short"}},
				RelatedConversations: []RelatedConversation{{Name: "earlier", Summary: "setup"}},
			},
		},
	}
	composer := &RawComposer{
		ComposerID:                  "conv-1",
		FullConversationHeadersOnly: []ConversationHeader{{BubbleID: "b1", Type: 1}},
	}

	conv := newTestAssembler(bubbles, nil, contexts).Assemble(composer)
	if len(conv.Turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(conv.Turns))
	}

	text := conv.Turns[0].Text
	if !strings.HasPrefix(text, "what changed?") {
		t.Errorf("bubble text should lead: %q", text)
	}

	order := []string{
		"Git status:",
		"Terminal files:",
		"Attached folder pkg/api:",
		"Rules:",
		"Related conversations:",
	}
	last := -1
	for _, heading := range order {
		idx := strings.Index(text, heading)
		if idx < 0 {
			t.Fatalf("missing section %q in:\n%s", heading, text)
		}
		if idx < last {
			t.Errorf("section %q out of order in:\n%s", heading, text)
		}
		last = idx
	}
}

func TestAssembleContextOnlyTurnSurvives(t *testing.T) {
	// A bubble with no text of its own still yields a turn when context
	// sections attach to it.
	bubbles := map[string]*RawBubble{
		"b1": {BubbleID: "b1", Timestamp: 1},
	}
	contexts := map[string][]*MessageContext{
		"conv-1": {{ComposerID: "conv-1", BubbleID: "b1", GitStatus: "clean"}},
	}
	composer := &RawComposer{
		ComposerID:                  "conv-1",
		FullConversationHeadersOnly: []ConversationHeader{{BubbleID: "b1", Type: 1}},
	}

	conv := newTestAssembler(bubbles, nil, contexts).Assemble(composer)
	if len(conv.Turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(conv.Turns))
	}
	if !strings.HasPrefix(conv.Turns[0].Text, "Git status:") {
		t.Errorf("turn text = %q", conv.Turns[0].Text)
	}
}

func TestAssembleTimestampFallback(t *testing.T) {
	tests := []struct {
		name     string
		composer RawComposer
		want     int64
	}{
		{
			name:     "updated preferred",
			composer: RawComposer{ComposerID: "c", CreatedAt: 100, LastUpdatedAt: 200},
			want:     200,
		},
		{
			name:     "created fallback",
			composer: RawComposer{ComposerID: "c", CreatedAt: 100},
			want:     100,
		},
		{
			name:     "now fallback",
			composer: RawComposer{ComposerID: "c"},
			want:     fixedNow().UnixMilli(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := newTestAssembler(nil, nil, nil).Assemble(&tt.composer)
			if conv.Timestamp != tt.want {
				t.Errorf("Timestamp = %d, want %d", conv.Timestamp, tt.want)
			}
		})
	}
}

func TestAssembleAllSetsProjectID(t *testing.T) {
	bubbles := map[string]*RawBubble{
		"b1": {BubbleID: "b1", Text: "hi", Timestamp: 1, RelevantFiles: []string{"/work/demo/main.go"}},
	}
	composers := []*RawComposer{
		{ComposerID: "conv-1", FullConversationHeadersOnly: []ConversationHeader{{BubbleID: "b1", Type: 1}}},
		{ComposerID: "conv-2"},
	}

	resolver := NewResolver([]WorkspaceEntry{{ID: "ws-demo", FolderPath: "/work/demo"}}, "")
	conversations := newTestAssembler(bubbles, nil, nil).AssembleAll(composers, resolver)

	if len(conversations) != 2 {
		t.Fatalf("got %d conversations, want 2", len(conversations))
	}
	if conversations[0].ProjectID != "ws-demo" {
		t.Errorf("conv-1 ProjectID = %q", conversations[0].ProjectID)
	}
	if conversations[1].ProjectID != "" {
		t.Errorf("conv-2 ProjectID = %q, want unattributed", conversations[1].ProjectID)
	}
}
